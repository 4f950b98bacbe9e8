// internal/report/client_test.go
package report

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minus-backend/internal/common/config"
	stderrors "minus-backend/internal/common/errors"
	"minus-backend/internal/common/logger"
)

func createTestClient(baseURL string) *Client {
	return NewClient(config.GenAIConfig{
		BaseURL:         baseURL,
		APIKey:          "test-key",
		Model:           "gpt-4o",
		Temperature:     0.1,
		MaxOutputTokens: 4000,
		Timeout:         5000,
	}, logger.NewNoOpLogger())
}

func sseChunk(content string) string {
	return fmt.Sprintf(`data: {"choices":[{"delta":{"content":%q}}]}`+"\n\n", content)
}

func TestClientStream(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/chat/completions", r.URL.Path)

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, sseChunk("## Economic"))
		fmt.Fprint(w, sseChunk(" Hygiene Report"))
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	var deltas []string
	err := createTestClient(server.URL).Stream(context.Background(), Rulebook, "user prompt", func(d string) error {
		deltas = append(deltas, d)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"## Economic", " Hygiene Report"}, deltas)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestClientStreamOutlivesRequestTimeout(t *testing.T) {
	const deltas = 10
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for i := 0; i < deltas; i++ {
			fmt.Fprint(w, sseChunk("chunk"))
			flusher.Flush()
			time.Sleep(30 * time.Millisecond)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	// The flat timeout expires long before the stream finishes; a healthy
	// stream must still run to completion.
	client := NewClient(config.GenAIConfig{
		BaseURL:         server.URL,
		APIKey:          "test-key",
		Model:           "gpt-4o",
		MaxOutputTokens: 4000,
		Timeout:         100,
	}, logger.NewNoOpLogger())

	received := 0
	err := client.Stream(context.Background(), Rulebook, "user", func(string) error {
		received++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, deltas, received)
}

func TestClientStreamEmptyIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	err := createTestClient(server.URL).Stream(context.Background(), Rulebook, "user", func(string) error {
		return nil
	})

	require.Error(t, err)
	assert.Equal(t, stderrors.ErrCodeEmptyReport, stderrors.CodeOf(err))
}

func TestClientStreamProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"Rate limit reached","type":"rate_limit_error"}}`)
	}))
	defer server.Close()

	err := createTestClient(server.URL).Stream(context.Background(), Rulebook, "user", func(string) error {
		return nil
	})

	require.Error(t, err)
	assert.Equal(t, stderrors.ErrCodeProviderRequestFailed, stderrors.CodeOf(err))
	assert.Contains(t, err.(*stderrors.StandardError).Details, "Rate limit reached")
}

func TestClientMissingKey(t *testing.T) {
	client := NewClient(config.GenAIConfig{
		BaseURL: "http://localhost:0",
		APIKey:  "  ",
		Timeout: 1000,
	}, logger.NewNoOpLogger())

	_, err := client.Complete(context.Background(), Rulebook, "user")
	require.Error(t, err)
	assert.Equal(t, stderrors.ErrCodeProviderKeyMissing, stderrors.CodeOf(err))
	assert.True(t, stderrors.IsConfiguration(err))

	err = client.Stream(context.Background(), Rulebook, "user", func(string) error { return nil })
	assert.Equal(t, stderrors.ErrCodeProviderKeyMissing, stderrors.CodeOf(err))
}

func TestClientComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"full report text"}}]}`)
	}))
	defer server.Close()

	text, err := createTestClient(server.URL).Complete(context.Background(), Rulebook, "user")
	require.NoError(t, err)
	assert.Equal(t, "full report text", text)
}

func TestClientCompleteEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"   "}}]}`)
	}))
	defer server.Close()

	_, err := createTestClient(server.URL).Complete(context.Background(), Rulebook, "user")
	require.Error(t, err)
	assert.Equal(t, stderrors.ErrCodeEmptyReport, stderrors.CodeOf(err))
}

func TestClientStreamAbortsOnCallbackError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for i := 0; i < 50; i++ {
			fmt.Fprint(w, sseChunk("chunk"))
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	calls := 0
	stop := fmt.Errorf("downstream gone")
	err := createTestClient(server.URL).Stream(context.Background(), Rulebook, "user", func(string) error {
		calls++
		if calls == 2 {
			return stop
		}
		return nil
	})

	require.ErrorIs(t, err, stop)
	assert.Equal(t, 2, calls)
}

func TestUserPromptWrapsSubmission(t *testing.T) {
	prompt := UserPrompt(`{"name":"Asha"}`)
	assert.True(t, strings.Contains(prompt, `{"name":"Asha"}`))
	assert.Contains(t, prompt, "Minus Rulebook (Version 2.4)")
	assert.Contains(t, prompt, "Hardened Output Structure (V14.1)")
}
