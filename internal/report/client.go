// internal/report/client.go
package report

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"minus-backend/internal/common/config"
	stderrors "minus-backend/internal/common/errors"
	httpclient "minus-backend/internal/common/http"
	"minus-backend/internal/common/logger"
)

// ChatMessage is one turn in a chat-completions conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream,omitempty"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	Delta        ChatMessage `json:"delta"`
	FinishReason string      `json:"finish_reason"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Error   *apiError    `json:"error,omitempty"`
}

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	cfg    config.GenAIConfig
	http   *httpclient.Client
	stream *httpclient.Client
	log    logger.Logger
}

func NewClient(cfg config.GenAIConfig, log logger.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: httpclient.NewClient(config.GetDuration(cfg.Timeout)),
		// A flat client timeout bounds the whole body read, which would cut
		// off a healthy generation that outlives it. Streaming calls are
		// bounded by the request context only.
		stream: httpclient.NewClient(0),
		log:    log,
	}
}

func (c *Client) newRequest(ctx context.Context, system, user string, stream bool) (*http.Request, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return nil, stderrors.NewProviderKeyMissingError()
	}

	body := chatRequest{
		Model: c.cfg.Model,
		Messages: []ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxOutputTokens,
		Stream:      stream,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	return req, nil
}

// Complete performs a single non-streaming generation and returns the full
// text. A 2xx response with no content is an empty-result error.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	req, err := c.newRequest(ctx, system, user, false)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", c.classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", stderrors.NewProviderRequestFailedError(err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.providerError(resp.StatusCode, data)
	}

	var out chatResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", stderrors.NewProviderRequestFailedError(fmt.Errorf("malformed provider response: %w", err))
	}
	if out.Error != nil {
		return "", stderrors.NewProviderRequestFailedError(errors.New(out.Error.Message))
	}

	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", stderrors.NewEmptyReportError()
	}
	return out.Choices[0].Message.Content, nil
}

// Stream performs a streaming generation, invoking onDelta for every content
// fragment in arrival order. Returning an error from onDelta aborts the
// stream. A stream that finishes without emitting any content is an
// empty-result error.
func (c *Client) Stream(ctx context.Context, system, user string, onDelta func(string) error) error {
	req, err := c.newRequest(ctx, system, user, true)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.stream.DoWithContext(ctx, req)
	if err != nil {
		return c.classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return c.providerError(resp.StatusCode, data)
	}

	emitted := false
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "[DONE]" {
			break
		}

		var chunk chatResponse
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			c.log.Warn("skipping malformed stream chunk", map[string]interface{}{
				"error": err.Error(),
			})
			continue
		}
		if chunk.Error != nil {
			return stderrors.NewProviderRequestFailedError(errors.New(chunk.Error.Message))
		}
		if len(chunk.Choices) == 0 {
			continue
		}

		if text := chunk.Choices[0].Delta.Content; text != "" {
			emitted = true
			if err := onDelta(text); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return c.classifyTransportError(ctx, err)
	}

	if !emitted {
		return stderrors.NewEmptyReportError()
	}
	return nil
}

func (c *Client) classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return stderrors.NewProviderTimeoutError()
	}
	return stderrors.NewProviderRequestFailedError(err)
}

func (c *Client) providerError(status int, body []byte) error {
	var out struct {
		Error *apiError `json:"error"`
	}
	if err := json.Unmarshal(body, &out); err == nil && out.Error != nil && out.Error.Message != "" {
		return stderrors.NewProviderRequestFailedError(
			fmt.Errorf("provider returned status %d: %s", status, out.Error.Message))
	}
	return stderrors.NewProviderRequestFailedError(fmt.Errorf("provider returned status %d", status))
}
