package llm

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"ContentCurator/internal/config"
	"ContentCurator/internal/domain"
	"ContentCurator/internal/ports"
)

const (
	speakerHuman     = "human"
	speakerAssistant = "assistant"
)

type message struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

type completionRequest struct {
	Temperature       float64   `json:"temperature"`
	TopK              int       `json:"topK"`
	TopP              int       `json:"topP"`
	MaxTokensToSample int       `json:"maxTokensToSample"`
	Messages          []message `json:"messages"`
}

// Client implements ports.Completer against a streaming completions endpoint.
type Client struct {
	endpoint    string
	apiKey      string
	temperature float64
	maxTokens   int
	timeout     time.Duration
	httpClient  *http.Client
}

var _ ports.Completer = (*Client)(nil)

// NewClient builds a client from configuration. Certificate verification is
// only disabled when cfg.InsecureSkipVerify is set.
func NewClient(cfg config.CompletionConfig, logger *slog.Logger) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in for self-signed internal endpoints
		if logger != nil {
			logger.Warn("TLS certificate verification disabled for completion client", "endpoint", cfg.URL)
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultCompletionTimeout
	}

	return &Client{
		endpoint:    cfg.URL,
		apiKey:      cfg.APIKey,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     timeout,
		httpClient:  &http.Client{Transport: transport},
	}
}

// Complete sends one prompt with an optional system prompt and decodes the
// event-stream answer.
func (c *Client) Complete(ctx context.Context, prompt, systemPrompt string) (string, error) {
	if c == nil || c.endpoint == "" {
		return "", &domain.RemoteError{Err: fmt.Errorf("completion client misconfigured")}
	}

	messages := make([]message, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, message{Speaker: speakerAssistant, Text: systemPrompt})
	}
	messages = append(messages, message{Speaker: speakerHuman, Text: prompt})

	body, err := json.Marshal(completionRequest{
		Temperature:       c.temperature,
		TopK:              -1,
		TopP:              -1,
		MaxTokensToSample: c.maxTokens,
		Messages:          messages,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &domain.RemoteError{Err: fmt.Errorf("new request: %w", err)}
	}
	req.Header.Set("Authorization", "token "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.RemoteError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		return "", &domain.RemoteError{StatusCode: resp.StatusCode}
	}

	var dec StreamDecoder
	if _, err := io.Copy(&dec, resp.Body); err != nil {
		return "", &domain.RemoteError{Err: fmt.Errorf("read completion stream: %w", err)}
	}

	return dec.Result()
}
