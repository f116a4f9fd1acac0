// Package chatbot provides the HTTP client for the remote resume chat service.
//
// Every section has its own chatbot under {base}/api/v1/chatbot/{section}.
// Responses share one envelope: {"status": bool, "message": string, "data": ...}.
package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
	"github.com/custodia-labs/resumechat/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.ChatBackend = (*Client)(nil)

// Remote operation names, used in errors and logs.
const (
	OpStartChat = "start_chat"
	OpChat      = "chat"
	OpResult    = "resume"
)

// APIKeyHeader carries the user's API key on every request.
const APIKeyHeader = "x-api-key"

// maxBodySize bounds how much of a response is read.
const maxBodySize = 4 << 20

// Config holds configuration for the chat service client.
type Config struct {
	// BaseURL is the service root (default: domain.DefaultBaseURL).
	BaseURL string

	// RateLimit is requests per second; zero or less disables throttling.
	RateLimit float64

	// HTTPClient is used for requests (default: a client with no timeout;
	// callers bound each request with a context deadline).
	HTTPClient *http.Client
}

// Client talks to the chat service.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *RateLimiter
}

// envelope is the response shape shared by every endpoint.
type envelope struct {
	Status  *bool           `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// turnData is the data of start_chat and chat responses.
type turnData struct {
	ChatID     domain.FlexString  `json:"chat_id"`
	AIResponse domain.FlexString  `json:"ai_response"`
	Percentage domain.FlexFloat   `json:"percentage"`
	Status     domain.FieldStatus `json:"status"`
	IsComplete domain.FlexBool    `json:"is_complete"`
}

type startChatRequest struct {
	UserID string `json:"user_id"`
}

type chatRequest struct {
	UserMessage string `json:"user_message"`
}

// NewClient creates a new chat service client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}

	return &Client{
		client:  cfg.HTTPClient,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: NewRateLimiter(cfg.RateLimit),
	}
}

// StartChat opens a chat for section.
func (c *Client) StartChat(ctx context.Context, section domain.SectionKind, creds domain.Credentials) (*domain.ChatTurn, error) {
	body := startChatRequest{UserID: creds.UserID}

	data, status, err := c.do(ctx, OpStartChat, http.MethodPost, c.endpoint(section, "start_chat"), body, creds)
	if err != nil {
		return nil, err
	}

	turn, err := decodeTurn(data)
	if err != nil {
		return nil, &domain.TransportError{Op: OpStartChat, StatusCode: status, Err: err}
	}
	if turn.ChatID == "" {
		return nil, &domain.TransportError{Op: OpStartChat, StatusCode: status, Err: errors.New("response has no chat_id")}
	}
	return turn, nil
}

// SendMessage posts one user message to an open chat.
func (c *Client) SendMessage(
	ctx context.Context,
	section domain.SectionKind,
	chatID, message string,
	creds domain.Credentials,
) (*domain.ChatTurn, error) {
	body := chatRequest{UserMessage: message}

	data, status, err := c.do(ctx, OpChat, http.MethodPost, c.endpoint(section, "chat", chatID), body, creds)
	if err != nil {
		return nil, err
	}

	turn, err := decodeTurn(data)
	if err != nil {
		return nil, &domain.TransportError{Op: OpChat, StatusCode: status, Err: err}
	}
	return turn, nil
}

// FetchResult returns the structured data the chat collected.
// The payload is returned as sent; normalization happens in the core.
func (c *Client) FetchResult(
	ctx context.Context,
	section domain.SectionKind,
	chatID string,
	creds domain.Credentials,
) (json.RawMessage, error) {
	data, _, err := c.do(ctx, OpResult, http.MethodGet, c.endpoint(section, "resume", "json", chatID), nil, creds)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// endpoint builds {base}/api/v1/chatbot/{section}/{parts...}, escaping each part.
func (c *Client) endpoint(section domain.SectionKind, parts ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	b.WriteString("/api/v1/chatbot/")
	b.WriteString(url.PathEscape(section.String()))
	for _, p := range parts {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(p))
	}
	return b.String()
}

// do sends one request and unwraps the envelope. The body is decoded
// whatever the HTTP status; a body that is not an envelope is a
// transport failure carrying the status.
func (c *Client) do(
	ctx context.Context,
	op, method, endpoint string,
	body any,
	creds domain.Credentials,
) (json.RawMessage, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, &domain.TransportError{Op: op, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, 0, &domain.TransportError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(APIKeyHeader, creds.APIKey)

	logger.Debug("%s %s (key %s)", method, endpoint, logger.Redact(creds.APIKey))
	defer logger.Elapsed(op, time.Now())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		c.limiter.RecordRateLimited(retryAfter(resp.Header.Get("Retry-After")))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, resp.StatusCode, &domain.TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, resp.StatusCode, &domain.TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if env.Status == nil {
		return nil, resp.StatusCode, &domain.TransportError{Op: op, StatusCode: resp.StatusCode, Err: errors.New("decode response: missing status")}
	}
	if !*env.Status {
		logger.Warn("%s rejected (status %d): %s", op, resp.StatusCode, env.Message)
		return nil, resp.StatusCode, &domain.ApplicationError{Op: op, Message: env.Message}
	}

	return env.Data, resp.StatusCode, nil
}

func decodeTurn(data json.RawMessage) (*domain.ChatTurn, error) {
	var d turnData
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}
	return &domain.ChatTurn{
		ChatID:     d.ChatID.String(),
		AIResponse: d.AIResponse.String(),
		Progress: domain.Progress{
			Percentage: float64(d.Percentage),
			Status:     d.Status,
			IsComplete: bool(d.IsComplete),
		},
	}, nil
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(v string) time.Duration {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
