// internal/consumer/consumer.go
package consumer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"minus-backend/internal/common/config"
	stderrors "minus-backend/internal/common/errors"
	"minus-backend/internal/common/logger"
	"minus-backend/internal/payload"
	"minus-backend/internal/questionnaire"
	"minus-backend/internal/session"
)

// State is the consumer lifecycle phase.
type State string

const (
	StateCollecting State = "collecting"
	StateSubmitting State = "submitting"
	StateDisplayed  State = "displayed"
	StateFailed     State = "failed"
)

var statusPhrases = []string{
	"Auditing interest leakage...",
	"Mapping your cashflow structure...",
	"Running the negative spread analysis...",
	"Applying the 28th Rule...",
	"Charting your safest exit from debt...",
}

// Consumer submits a normalized answer set to the report endpoint and folds
// the chunked response into an append-only report buffer. Only one submission
// is in flight at a time; a newer one silently supersedes the previous.
type Consumer struct {
	endpoint string
	client   *http.Client
	store    session.Store
	log      logger.Logger

	minDisplayBytes int
	submitTimeout   time.Duration
	statusInterval  time.Duration

	mu         sync.Mutex
	state      State
	buffer     bytes.Buffer
	carry      []byte // undecoded tail of a rune split across chunks
	generation int
	cancel     context.CancelFunc
	lastErr    error
	startedAt  time.Time
}

func New(endpoint string, cfg config.ReportConfig, store session.Store, log logger.Logger) *Consumer {
	if store == nil {
		store = session.NoopStore{}
	}
	return &Consumer{
		endpoint:        endpoint,
		client:          &http.Client{},
		store:           store,
		log:             log,
		minDisplayBytes: cfg.MinDisplayBytes,
		submitTimeout:   config.GetDuration(cfg.SubmitTimeout),
		statusInterval:  config.GetDuration(cfg.StatusInterval),
		state:           StateCollecting,
	}
}

// State returns the current lifecycle phase.
func (c *Consumer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Report returns the accumulated report text.
func (c *Consumer) Report() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffer.String()
}

// Err returns the failure that moved the consumer to StateFailed.
func (c *Consumer) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// StatusPhrase rotates through the waiting copy while a submission runs.
func (c *Consumer) StatusPhrase() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateSubmitting || c.statusInterval <= 0 {
		return ""
	}
	idx := int(time.Since(c.startedAt)/c.statusInterval) % len(statusPhrases)
	return statusPhrases[idx]
}

// Submit sends the answers for analysis and blocks until the stream finishes,
// fails, or is superseded by a newer submission. A superseded attempt returns
// nil and leaves all visible state to its successor.
func (c *Consumer) Submit(ctx context.Context, answers questionnaire.AnswerSet) error {
	// The caller keeps editing the live set while a superseded attempt
	// drains; everything below works from a snapshot.
	answers = answers.Clone()
	sub := payload.Normalize(answers)

	c.mu.Lock()
	c.generation++
	gen := c.generation
	if c.cancel != nil {
		c.cancel()
	}
	attemptCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = StateSubmitting
	c.buffer.Reset()
	c.carry = nil
	c.lastErr = nil
	c.startedAt = time.Now()
	c.mu.Unlock()
	defer cancel()

	// Draft survives a crash mid-submission; cleared once the report lands.
	sessionKey := sessionKeyFor(answers)
	c.store.Save(ctx, sessionKey, answers)

	body, err := json.Marshal(map[string]payload.Submission{"formData": sub})
	if err != nil {
		return c.fail(gen, stderrors.NewTransportFailedError(err.Error()))
	}

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return c.fail(gen, stderrors.NewTransportFailedError(err.Error()))
	}
	req.Header.Set("Content-Type", "application/json")

	// Guard timeout covers only the wait for headers. It is disarmed as soon
	// as the server responds; a slow stream after that is not a timeout.
	timedOut := make(chan struct{})
	guard := time.AfterFunc(c.submitTimeout, func() {
		close(timedOut)
		cancel()
	})

	resp, err := c.client.Do(req)
	if !guard.Stop() {
		select {
		case <-timedOut:
			if resp != nil {
				resp.Body.Close()
			}
			return c.fail(gen, stderrors.NewSubmitTimeoutError())
		default:
		}
	}
	if err != nil {
		if c.superseded(gen) {
			return nil
		}
		return c.fail(gen, stderrors.NewTransportFailedError(err.Error()))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(gen, stderrors.NewTransportFailedError(readServerError(resp)))
	}

	return c.consume(gen, resp.Body, sessionKey)
}

// consume folds the response body into the buffer chunk by chunk.
func (c *Consumer) consume(gen int, body io.Reader, sessionKey string) error {
	chunk := make([]byte, 4096)
	total := 0

	for {
		n, err := body.Read(chunk)
		if n > 0 {
			total += n
			if !c.appendChunk(gen, chunk[:n]) {
				return nil // superseded mid-stream
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			if c.superseded(gen) {
				return nil
			}
			// A broken stream after the report is visible is swallowed; the
			// partial report stands.
			c.mu.Lock()
			displayed := c.state == StateDisplayed
			c.mu.Unlock()
			if displayed {
				c.log.WithError(err).Warn("stream ended early after display", nil)
				c.store.Clear(context.Background(), sessionKey)
				return nil
			}
			return c.fail(gen, stderrors.NewTransportFailedError(err.Error()))
		}
	}

	if total == 0 {
		return c.fail(gen, stderrors.NewTransportFailedError("Empty response from analysis engine"))
	}

	c.mu.Lock()
	if gen == c.generation {
		c.state = StateDisplayed
	}
	c.mu.Unlock()
	c.store.Clear(context.Background(), sessionKey)
	return nil
}

// appendChunk decodes as much of the chunk as forms complete runes, holding
// back a split trailing rune for the next chunk. Returns false when a newer
// submission owns the buffer.
func (c *Consumer) appendChunk(gen int, chunk []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return false
	}

	data := append(c.carry, chunk...)
	complete := len(data)
	for i := len(data) - 1; i >= 0 && len(data)-i < utf8.UTFMax; i-- {
		if utf8.RuneStart(data[i]) {
			if !utf8.FullRune(data[i:]) {
				complete = i
			}
			break
		}
	}

	c.buffer.Write(data[:complete])
	c.carry = append([]byte(nil), data[complete:]...)

	if c.state == StateSubmitting && c.buffer.Len() >= c.minDisplayBytes {
		c.state = StateDisplayed
	}
	return true
}

func (c *Consumer) fail(gen int, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return nil
	}
	// Once the report is on screen, later failures are swallowed.
	if c.state == StateDisplayed {
		return nil
	}
	c.state = StateFailed
	c.lastErr = err
	return err
}

func (c *Consumer) superseded(gen int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gen != c.generation
}

// readServerError extracts the error message from a non-2xx response. The
// endpoint reports failures as {"error": "..."}.
func readServerError(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var out struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &out) == nil && strings.TrimSpace(out.Error) != "" {
			return out.Error
		}
	}
	return fmt.Sprintf("Analysis request failed with status %d", resp.StatusCode)
}

func sessionKeyFor(answers questionnaire.AnswerSet) string {
	if phone := answers.Get("phone"); phone != "" {
		return phone
	}
	return "draft"
}
