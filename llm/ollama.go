package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const ollamaDefaultURL = "http://localhost:11434/api/chat"

// OllamaClient implements the Client interface for a local Ollama
// server. No API key is required.
type OllamaClient struct {
	cfg        Config
	httpClient *http.Client
}

// NewOllamaClient creates a new Ollama client.
func NewOllamaClient(cfg Config) *OllamaClient {
	if cfg.Model == "" {
		cfg.Model = "llama3.1"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = ollamaDefaultURL
	}
	return &OllamaClient{
		cfg:        cfg,
		httpClient: newHTTPClient(),
	}
}

type ollamaRequest struct {
	Model    string      `json:"model"`
	Messages []openAIMsg `json:"messages"`
	Stream   bool        `json:"stream"`
}

// ollamaChunk is one newline-delimited JSON object in the response;
// the non-streaming reply is a single chunk with done=true.
type ollamaChunk struct {
	Model   string `json:"model"`
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Done            bool   `json:"done"`
	DoneReason      string `json:"done_reason"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
	Error           string `json:"error"`
}

func (c *OllamaClient) newRequest(ctx context.Context, system string, messages []Message, stream bool) (*http.Request, error) {
	msgs := make([]openAIMsg, 0, len(messages)+1)
	if system != "" {
		msgs = append(msgs, openAIMsg{Role: "system", Content: system})
	}
	for _, m := range messages {
		msgs = append(msgs, openAIMsg{Role: m.Role, Content: m.Content})
	}

	body, err := json.Marshal(ollamaRequest{
		Model:    c.cfg.Model,
		Messages: msgs,
		Stream:   stream,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// Complete sends the conversation and returns the response.
func (c *OllamaClient) Complete(ctx context.Context, system string, messages []Message) (*Response, error) {
	start := time.Now()

	req, err := c.newRequest(ctx, system, messages, false)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(body))
	}

	var chunk ollamaChunk
	if err := json.Unmarshal(body, &chunk); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if chunk.Error != "" {
		return nil, fmt.Errorf("ollama error: %s", chunk.Error)
	}

	return &Response{
		Content:      chunk.Message.Content,
		InputTokens:  chunk.PromptEvalCount,
		OutputTokens: chunk.EvalCount,
		Duration:     time.Since(start),
		Model:        chunk.Model,
		StopReason:   chunk.DoneReason,
	}, nil
}

// Stream sends the conversation and delivers content fragments from
// the newline-delimited JSON stream.
func (c *OllamaClient) Stream(ctx context.Context, system string, messages []Message, onToken TokenFunc) (*Response, error) {
	start := time.Now()

	req, err := c.newRequest(ctx, system, messages, true)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(body))
	}

	out := &Response{Model: c.cfg.Model}
	var content strings.Builder

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var chunk ollamaChunk
		if err := json.Unmarshal(scanner.Bytes(), &chunk); err != nil {
			continue
		}
		if chunk.Error != "" {
			return nil, fmt.Errorf("ollama error: %s", chunk.Error)
		}
		if chunk.Message.Content != "" {
			content.WriteString(chunk.Message.Content)
			if onToken != nil {
				onToken(chunk.Message.Content)
			}
		}
		if chunk.Done {
			out.StopReason = chunk.DoneReason
			out.InputTokens = chunk.PromptEvalCount
			out.OutputTokens = chunk.EvalCount
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("stream interrupted: %w", err)
	}

	out.Content = content.String()
	out.Duration = time.Since(start)
	return out, nil
}
