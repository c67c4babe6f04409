// Package gingai is a thin client over the GingAI conversation API. The API
// wraps every response in a `{data, code, message}` envelope where code 200
// is the only success value, even when the HTTP status is 200.
package gingai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// ConversationError is raised for transport failures, retry exhaustion, and
// non-success application codes.
type ConversationError struct {
	Message string
}

func (e *ConversationError) Error() string {
	return "gingai: " + e.Message
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
}

type chatInfo struct {
	ChatID  string `json:"chat_id"`
	ID      string `json:"id"`
	Operate bool   `json:"operate"`
	Content string `json:"content"`
	IsEnd   bool   `json:"is_end"`
}

type Config struct {
	APIBase       string
	APIKey        string
	ApplicationID string
}

type Client struct {
	cfg        Config
	httpClient *http.Client

	maxAttempts int
	backoffBase time.Duration
}

func New(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		maxAttempts: 3,
		backoffBase: time.Second,
	}
}

// OpenConversation requests a new conversation identifier for the configured
// application.
func (c *Client) OpenConversation(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/application/%s/chat/open", c.cfg.APIBase, c.cfg.ApplicationID)

	env, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	var chatID string
	if err := json.Unmarshal(env.Data, &chatID); err != nil {
		return "", &ConversationError{Message: fmt.Sprintf("decoding chat id: %v", err)}
	}
	return chatID, nil
}

// SendTurn posts one message to an existing conversation and returns the
// textual reply. Conversation history lives entirely server-side, keyed by
// chat id.
func (c *Client) SendTurn(ctx context.Context, chatID, message string) (string, error) {
	url := fmt.Sprintf("%s/application/chat_message/%s", c.cfg.APIBase, chatID)
	body := map[string]any{
		"message": message,
		"re_chat": false,
		"stream":  false,
	}

	env, err := c.do(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", err
	}

	var info chatInfo
	if err := json.Unmarshal(env.Data, &info); err != nil {
		return "", &ConversationError{Message: fmt.Sprintf("decoding chat response: %v", err)}
	}
	return info.Content, nil
}

// do issues the request with bounded retry: up to maxAttempts tries with
// doubling backoff on transport errors and retryable HTTP statuses
// (429, 500, 502, 503, 504).
func (c *Client) do(ctx context.Context, method, url string, body any) (*envelope, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, &ConversationError{Message: fmt.Sprintf("encoding request: %v", err)}
		}
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			backoff := c.backoffBase * time.Duration(1<<(attempt-2))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, &ConversationError{Message: ctx.Err().Error()}
			}
		}

		env, retryable, err := c.doOnce(ctx, method, url, payload)
		if err == nil {
			return env, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
		slog.WarnContext(ctx, "gingai request failed, retrying",
			"url", url,
			"attempt", attempt,
			"error", err,
		)
	}

	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, method, url string, payload []byte) (env *envelope, retryable bool, err error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, false, &ConversationError{Message: fmt.Sprintf("building request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("AUTHORIZATION", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, &ConversationError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if isRetryableStatus(resp.StatusCode) {
		return nil, true, &ConversationError{Message: fmt.Sprintf("http %d", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, &ConversationError{Message: fmt.Sprintf("http %d", resp.StatusCode)}
	}

	var e envelope
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		return nil, false, &ConversationError{Message: fmt.Sprintf("invalid JSON response: %v", err)}
	}

	// Application-level status: anything but 200 is an error even on HTTP 200.
	if e.Code != 200 {
		msg := e.Message
		if msg == "" {
			msg = "unknown error"
		}
		return nil, false, &ConversationError{Message: msg}
	}

	return &e, false, nil
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
