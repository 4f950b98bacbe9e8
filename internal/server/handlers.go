// internal/server/handlers.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xeipuuv/gojsonschema"

	stderrors "minus-backend/internal/common/errors"
	"minus-backend/internal/common/logger"
	"minus-backend/internal/common/metrics"
	"minus-backend/internal/payload"
	"minus-backend/internal/questionnaire"
	"minus-backend/internal/webhook"
)

// analyzeSchema validates the submission envelope before decoding.
const analyzeSchema = `{
	"type": "object",
	"required": ["formData"],
	"properties": {
		"formData": {"type": "object"}
	}
}`

var analyzeSchemaLoader = gojsonschema.NewStringLoader(analyzeSchema)

// ReportGenerator produces reports for both intake modes.
type ReportGenerator interface {
	GenerateStream(ctx context.Context, sub payload.Submission, onDelta func(string) error) (string, error)
	Generate(ctx context.Context, sub payload.Submission) (string, error)
}

// Handler owns the HTTP surface.
type Handler struct {
	reports        ReportGenerator
	hasProviderKey bool
	log            logger.Logger
}

func NewHandler(reports ReportGenerator, hasProviderKey bool, log logger.Logger) *Handler {
	return &Handler{
		reports:        reports,
		hasProviderKey: hasProviderKey,
		log:            log,
	}
}

// Routes wires every endpoint onto a fresh mux.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/analyze", h.handleAnalyze)
	mux.HandleFunc("POST /webhook/typeform", h.handleTypeform)
	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// handleAnalyze streams a generated report as chunked plain text. Failures
// before the first byte return JSON {"error": ...}; once streaming has begun
// the connection simply ends.
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	result, err := gojsonschema.Validate(analyzeSchemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil || !result.Valid() {
		writeError(w, http.StatusBadRequest, "No data provided in body")
		return
	}

	var envelope struct {
		FormData payload.Submission `json:"formData"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed submission payload")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-transform")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	started := false
	_, err = h.reports.GenerateStream(r.Context(), envelope.FormData, func(delta string) error {
		if !started {
			started = true
			w.WriteHeader(http.StatusOK)
		}
		if _, werr := io.WriteString(w, delta); werr != nil {
			return werr
		}
		flusher.Flush()
		return nil
	})

	if err != nil {
		if started {
			// Status is already on the wire; nothing left but to log.
			h.log.WithError(err).Error("report stream aborted mid-flight", nil)
			return
		}

		h.log.WithError(err).Error("report generation failed", nil)
		switch {
		case stderrors.IsConfiguration(err):
			writeError(w, http.StatusInternalServerError, "Server Configuration Error: API Key missing.")
		case stderrors.IsTimeout(err):
			writeError(w, http.StatusGatewayTimeout, errorMessage(err))
		default:
			writeError(w, http.StatusInternalServerError, errorMessage(err))
		}
	}
}

// handleTypeform accepts form-service webhooks, answering connectivity pings
// and feeding real submissions through the report pipeline.
func (h *Handler) handleTypeform(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "Error", http.StatusInternalServerError)
		return
	}

	env, err := webhook.ParseEnvelope(body)
	if err != nil {
		h.log.WithError(err).Warn("rejected webhook payload", nil)
		http.Error(w, "Error", http.StatusBadRequest)
		return
	}

	if env.IsPing() {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "Pong!")
		return
	}

	answers, err := webhook.Flatten(env)
	if err != nil {
		h.log.WithError(err).Warn("rejected webhook payload", nil)
		http.Error(w, "Error", http.StatusBadRequest)
		return
	}
	metrics.WebhookIntakes.Inc()

	// No browser ran the questionnaire for this submission, so the full
	// validation pass runs here before anything reaches the provider.
	if verrs := questionnaire.ValidateAll(answers); len(verrs) > 0 {
		fields := make([]string, 0, len(verrs))
		for _, ve := range verrs {
			fields = append(fields, ve.Field)
		}
		h.log.Warn("rejected incomplete webhook submission", map[string]interface{}{
			"event_id": env.EventID,
			"fields":   strings.Join(fields, ","),
		})
		http.Error(w, "Error", http.StatusBadRequest)
		return
	}

	if _, err := h.reports.Generate(r.Context(), payload.Normalize(answers)); err != nil {
		h.log.WithError(err).Error("webhook report generation failed", map[string]interface{}{
			"event_id": env.EventID,
		})
		http.Error(w, "Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	genai := "missing"
	if h.hasProviderKey {
		genai = "active"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"genai":  genai,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func errorMessage(err error) string {
	var stdErr *stderrors.StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Message
	}
	return "Failed to generate report"
}
