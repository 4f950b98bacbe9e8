// internal/consumer/consumer_test.go
package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minus-backend/internal/common/config"
	stderrors "minus-backend/internal/common/errors"
	"minus-backend/internal/common/logger"
	"minus-backend/internal/questionnaire"
)

type recordingStore struct {
	mu        sync.Mutex
	saves     []string
	clears    []string
	lastSaved questionnaire.AnswerSet
}

func (r *recordingStore) Save(_ context.Context, key string, answers questionnaire.AnswerSet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, key)
	r.lastSaved = answers
}

func (r *recordingStore) Load(context.Context, string) (questionnaire.AnswerSet, bool) {
	return nil, false
}

func (r *recordingStore) Clear(_ context.Context, key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clears = append(r.clears, key)
}

func createTestConsumer(t *testing.T, endpoint string, cfg config.ReportConfig) (*Consumer, *recordingStore) {
	t.Helper()
	if cfg.MinDisplayBytes == 0 {
		cfg.MinDisplayBytes = 10
	}
	if cfg.SubmitTimeout == 0 {
		cfg.SubmitTimeout = 2000
	}
	if cfg.StatusInterval == 0 {
		cfg.StatusInterval = 100
	}
	store := &recordingStore{}
	return New(endpoint, cfg, store, logger.NewTestLogger(t)), store
}

func testAnswers() questionnaire.AnswerSet {
	return questionnaire.AnswerSet{
		"name":  "Asha",
		"phone": "9876543210",
	}
}

func decodeFormData(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	require.Contains(t, body, "formData")
	return body["formData"]
}

func TestSubmitStreamsReport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		form := decodeFormData(t, r)
		assert.Equal(t, "+919876543210", form["phone"])

		flusher := w.(http.Flusher)
		fmt.Fprint(w, "### I. Current Financial Snapshot\n")
		flusher.Flush()
		fmt.Fprint(w, "Classification: Class B\n")
		flusher.Flush()
	}))
	defer server.Close()

	c, store := createTestConsumer(t, server.URL, config.ReportConfig{})
	require.NoError(t, c.Submit(context.Background(), testAnswers()))

	assert.Equal(t, StateDisplayed, c.State())
	assert.Equal(t, "### I. Current Financial Snapshot\nClassification: Class B\n", c.Report())
	assert.NoError(t, c.Err())

	// Draft saved before submit, cleared on success.
	assert.Equal(t, []string{"9876543210"}, store.saves)
	assert.Equal(t, []string{"9876543210"}, store.clears)
}

func TestSubmitWorksFromSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "report text long enough")
	}))
	defer server.Close()

	c, store := createTestConsumer(t, server.URL, config.ReportConfig{})

	answers := testAnswers()
	require.NoError(t, c.Submit(context.Background(), answers))

	// Edits to the caller's set after submission must not reach the draft
	// the store received.
	answers.Set("name", "changed")
	assert.Equal(t, "Asha", store.lastSaved.Get("name"))
}

func TestSubmitBelowThresholdDisplaysAtEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "short")
	}))
	defer server.Close()

	c, _ := createTestConsumer(t, server.URL, config.ReportConfig{MinDisplayBytes: 1 << 20})
	require.NoError(t, c.Submit(context.Background(), testAnswers()))

	assert.Equal(t, StateDisplayed, c.State())
	assert.Equal(t, "short", c.Report())
}

func TestSubmitEmptyBodyFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c, store := createTestConsumer(t, server.URL, config.ReportConfig{})
	err := c.Submit(context.Background(), testAnswers())

	require.Error(t, err)
	assert.Equal(t, StateFailed, c.State())
	assert.Equal(t, stderrors.ErrCodeTransportFailed, stderrors.CodeOf(err))
	assert.Empty(t, store.clears)
}

func TestSubmitSurfacesServerErrorText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":"Server Configuration Error: API Key missing."}`)
	}))
	defer server.Close()

	c, _ := createTestConsumer(t, server.URL, config.ReportConfig{})
	err := c.Submit(context.Background(), testAnswers())

	require.Error(t, err)
	assert.Equal(t, StateFailed, c.State())

	stdErr := err.(*stderrors.StandardError)
	assert.Equal(t, "Server Configuration Error: API Key missing.", stdErr.Message)
}

func TestSubmitTimesOutBeforeHeaders(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		fmt.Fprint(w, "late bytes that must never surface")
	}))
	defer server.Close()
	defer close(release)

	c, _ := createTestConsumer(t, server.URL, config.ReportConfig{SubmitTimeout: 50})
	err := c.Submit(context.Background(), testAnswers())

	require.Error(t, err)
	assert.Equal(t, stderrors.ErrCodeSubmitTimeout, stderrors.CodeOf(err))
	assert.Equal(t, StateFailed, c.State())

	// The late response must not mutate the buffer after failure.
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, c.Report())
}

func TestSubmitSupersedesInFlightAttempt(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		form := decodeFormData(t, r)
		if form["name"] == "first" {
			close(firstStarted)
			w.(http.Flusher).Flush()
			<-releaseFirst
			fmt.Fprint(w, "FIRST REPORT")
			return
		}
		fmt.Fprint(w, "SECOND REPORT WINS")
	}))
	defer server.Close()
	defer close(releaseFirst)

	c, _ := createTestConsumer(t, server.URL, config.ReportConfig{})

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- c.Submit(context.Background(), questionnaire.AnswerSet{"name": "first", "phone": "1111111111"})
	}()
	<-firstStarted

	require.NoError(t, c.Submit(context.Background(), questionnaire.AnswerSet{"name": "second", "phone": "2222222222"}))

	// The superseded attempt surfaces no error and leaves no trace.
	assert.NoError(t, <-firstDone)
	assert.Equal(t, StateDisplayed, c.State())
	assert.Equal(t, "SECOND REPORT WINS", c.Report())
	assert.NoError(t, c.Err())
}

func TestStreamFailureAfterDisplayIsSwallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "enough bytes to cross the display threshold")
		w.(http.Flusher).Flush()

		// Drop the connection mid-stream without terminating the chunked
		// encoding, which surfaces as a read error on the client.
		conn, _, err := w.(http.Hijacker).Hijack()
		require.NoError(t, err)
		conn.Close()
	}))
	defer server.Close()

	c, _ := createTestConsumer(t, server.URL, config.ReportConfig{MinDisplayBytes: 10})
	err := c.Submit(context.Background(), testAnswers())

	assert.NoError(t, err)
	assert.Equal(t, StateDisplayed, c.State())
	assert.Equal(t, "enough bytes to cross the display threshold", c.Report())
}

func TestAppendChunkReassemblesSplitRunes(t *testing.T) {
	c, _ := createTestConsumer(t, "http://unused", config.ReportConfig{MinDisplayBytes: 1})
	c.generation = 1
	c.state = StateSubmitting

	rupee := []byte("₹") // three bytes
	require.Len(t, rupee, 3)

	require.True(t, c.appendChunk(1, append([]byte("Pay "), rupee[0])))
	assert.Equal(t, "Pay ", c.Report(), "partial rune held back")

	require.True(t, c.appendChunk(1, rupee[1:]))
	require.True(t, c.appendChunk(1, []byte("500")))
	assert.Equal(t, "Pay ₹500", c.Report())
}

func TestAppendChunkRejectsStaleGeneration(t *testing.T) {
	c, _ := createTestConsumer(t, "http://unused", config.ReportConfig{})
	c.generation = 2
	c.state = StateSubmitting

	assert.False(t, c.appendChunk(1, []byte("stale data")))
	assert.Empty(t, c.Report())
}

func TestStatusPhraseRotates(t *testing.T) {
	c, _ := createTestConsumer(t, "http://unused", config.ReportConfig{StatusInterval: 10})

	assert.Empty(t, c.StatusPhrase(), "no phrase while collecting")

	c.mu.Lock()
	c.state = StateSubmitting
	c.startedAt = time.Now()
	c.mu.Unlock()

	first := c.StatusPhrase()
	assert.Contains(t, statusPhrases, first)

	time.Sleep(15 * time.Millisecond)
	assert.Contains(t, statusPhrases, c.StatusPhrase())
}
