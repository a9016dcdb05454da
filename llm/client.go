// Package llm is the transport layer for the three supported LLM HTTP
// APIs. Configuration is explicit: the caller resolves a Config once
// per request and injects it; there is no ambient provider or key
// state.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Default request ceiling when the config does not set one.
const defaultMaxTokens = 8192

// Message represents a conversation message.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// Config selects and parameterizes a provider for one request.
type Config struct {
	Provider  string // "anthropic", "openai" or "ollama"
	Model     string
	APIKey    string
	BaseURL   string // optional override; required for openai-compatible gateways
	MaxTokens int
}

func (c Config) maxTokens() int {
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return defaultMaxTokens
}

// Response is the result of one completion.
type Response struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Duration     time.Duration
	Model        string
	StopReason   string
}

// WasTruncated returns true if the response hit the token limit.
func (r *Response) WasTruncated() bool {
	return r.StopReason == "max_tokens" || r.StopReason == "length"
}

// TokenFunc receives streamed text fragments. Token delivery is
// best-effort progress reporting only; the final Response carries the
// complete joined text.
type TokenFunc func(token string)

// Client is the interface for LLM providers.
type Client interface {
	// Complete sends the conversation and returns the full response.
	Complete(ctx context.Context, system string, messages []Message) (*Response, error)

	// Stream sends the conversation and delivers text fragments to
	// onToken as they arrive. onToken may be nil.
	Stream(ctx context.Context, system string, messages []Message, onToken TokenFunc) (*Response, error)
}

// New builds a client for the configured provider.
func New(cfg Config) (Client, error) {
	switch cfg.Provider {
	case "anthropic", "":
		return NewAnthropicClient(cfg), nil
	case "openai":
		return NewOpenAIClient(cfg), nil
	case "ollama":
		return NewOllamaClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// CompleteWithRetry attempts a completion with exponential backoff.
// Context cancellation stops retrying immediately.
func CompleteWithRetry(ctx context.Context, c Client, system string, messages []Message, maxRetries int) (*Response, error) {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		resp, err := c.Complete(ctx, system, messages)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		backoff := time.Duration(1<<uint(i)) * time.Second
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}

// newHTTPClient builds the shared http client. Completions can take a
// while on large diagrams.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Minute}
}
