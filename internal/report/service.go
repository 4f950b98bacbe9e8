// internal/report/service.go
package report

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	stderrors "minus-backend/internal/common/errors"
	"minus-backend/internal/common/logger"
	"minus-backend/internal/common/metrics"
	"minus-backend/internal/common/observability"
	"minus-backend/internal/payload"
)

// Provider generates report text from the rulebook and a user prompt.
type Provider interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Stream(ctx context.Context, system, user string, onDelta func(string) error) error
}

// Archiver persists a completed submission with its report.
type Archiver interface {
	Archive(ctx context.Context, sub payload.Submission, report string) error
}

// Notifier delivers a finished report out of band. Implementations are
// best-effort and must not block report generation on failure.
type Notifier interface {
	Deliver(ctx context.Context, sub payload.Submission, report string)
}

// Service orchestrates report generation, archival and delivery.
type Service struct {
	provider Provider
	archiver Archiver
	notifier Notifier
	obs      *observability.Metrics
	log      logger.Logger
}

func NewService(provider Provider, archiver Archiver, notifier Notifier, obs *observability.Metrics, log logger.Logger) *Service {
	return &Service{
		provider: provider,
		archiver: archiver,
		notifier: notifier,
		obs:      obs,
		log:      log,
	}
}

// GenerateStream produces a report for the interactive path, forwarding each
// fragment to onDelta as it arrives and returning the accumulated text.
func (s *Service) GenerateStream(ctx context.Context, sub payload.Submission, onDelta func(string) error) (string, error) {
	started := time.Now()

	user, err := buildUserPrompt(sub)
	if err != nil {
		s.recordFailure(ctx, metrics.ModeAPI, err)
		return "", err
	}

	var full strings.Builder
	streamErr := s.provider.Stream(ctx, Rulebook, user, func(delta string) error {
		full.WriteString(delta)
		return onDelta(delta)
	})
	if streamErr != nil {
		s.recordFailure(ctx, metrics.ModeAPI, streamErr)
		return full.String(), streamErr
	}

	text := full.String()
	s.recordSuccess(ctx, metrics.ModeAPI, started)
	s.archive(ctx, sub, text)
	return text, nil
}

// Generate produces a report in one shot for the webhook path, then archives
// and delivers it.
func (s *Service) Generate(ctx context.Context, sub payload.Submission) (string, error) {
	started := time.Now()

	user, err := buildUserPrompt(sub)
	if err != nil {
		s.recordFailure(ctx, metrics.ModeWebhook, err)
		return "", err
	}

	text, err := s.provider.Complete(ctx, Rulebook, user)
	if err != nil {
		s.recordFailure(ctx, metrics.ModeWebhook, err)
		return "", err
	}

	s.recordSuccess(ctx, metrics.ModeWebhook, started)
	s.archive(ctx, sub, text)

	if s.notifier != nil {
		s.notifier.Deliver(ctx, sub, text)
	}
	return text, nil
}

func buildUserPrompt(sub payload.Submission) (string, error) {
	data, err := json.MarshalIndent(sub, "", "  ")
	if err != nil {
		return "", stderrors.NewProviderRequestFailedError(err)
	}
	return UserPrompt(string(data)), nil
}

// archive is best-effort. The report already streamed to the caller, so a
// failed write degrades to a log line.
func (s *Service) archive(ctx context.Context, sub payload.Submission, text string) {
	if s.archiver == nil {
		return
	}
	if err := s.archiver.Archive(ctx, sub, text); err != nil {
		s.log.WithError(err).Error("failed to archive submission", map[string]interface{}{
			"phone": sub.Phone,
		})
	}
}

func (s *Service) recordSuccess(ctx context.Context, mode string, started time.Time) {
	elapsed := time.Since(started).Seconds()
	metrics.ReportsGenerated.WithLabelValues(mode).Inc()
	metrics.ReportDuration.WithLabelValues(mode).Observe(elapsed)
	if s.obs != nil {
		s.obs.ReportsProcessed.Add(ctx, 1)
		s.obs.ReportDuration.Record(ctx, elapsed)
	}
}

func (s *Service) recordFailure(ctx context.Context, mode string, err error) {
	code := stderrors.CodeOf(err)
	if code == "" {
		code = "internal"
	}
	metrics.ReportsFailed.WithLabelValues(mode, string(code)).Inc()
}
