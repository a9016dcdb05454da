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

const openAIDefaultURL = "https://api.openai.com/v1/chat/completions"

// OpenAIClient implements the Client interface for the OpenAI chat
// completions API and any compatible gateway (set BaseURL).
type OpenAIClient struct {
	cfg        Config
	httpClient *http.Client
}

// NewOpenAIClient creates a new OpenAI-compatible API client.
func NewOpenAIClient(cfg Config) *OpenAIClient {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = openAIDefaultURL
	}
	return &OpenAIClient{
		cfg:        cfg,
		httpClient: newHTTPClient(),
	}
}

type openAIRequest struct {
	Model     string      `json:"model"`
	MaxTokens int         `json:"max_tokens,omitempty"`
	Messages  []openAIMsg `json:"messages"`
	Stream    bool        `json:"stream,omitempty"`
}

type openAIMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message      openAIMsg `json:"message"`
		Delta        openAIMsg `json:"delta"`
		FinishReason string    `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *OpenAIClient) newRequest(ctx context.Context, system string, messages []Message, stream bool) (*http.Request, error) {
	msgs := make([]openAIMsg, 0, len(messages)+1)
	if system != "" {
		msgs = append(msgs, openAIMsg{Role: "system", Content: system})
	}
	for _, m := range messages {
		msgs = append(msgs, openAIMsg{Role: m.Role, Content: m.Content})
	}

	body, err := json.Marshal(openAIRequest{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.maxTokens(),
		Messages:  msgs,
		Stream:    stream,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	return req, nil
}

func openAIStatusError(status int, body []byte) error {
	var apiResp openAIResponse
	if err := json.Unmarshal(body, &apiResp); err == nil && apiResp.Error != nil {
		return fmt.Errorf("API error (%d): %s - %s", status, apiResp.Error.Type, apiResp.Error.Message)
	}
	return fmt.Errorf("API error (%d): %s", status, string(body))
}

// Complete sends the conversation and returns the response.
func (c *OpenAIClient) Complete(ctx context.Context, system string, messages []Message) (*Response, error) {
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
		return nil, openAIStatusError(resp.StatusCode, body)
	}

	var apiResp openAIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(apiResp.Choices) == 0 {
		return nil, fmt.Errorf("response contained no choices")
	}

	return &Response{
		Content:      apiResp.Choices[0].Message.Content,
		InputTokens:  apiResp.Usage.PromptTokens,
		OutputTokens: apiResp.Usage.CompletionTokens,
		Duration:     time.Since(start),
		Model:        apiResp.Model,
		StopReason:   apiResp.Choices[0].FinishReason,
	}, nil
}

// Stream sends the conversation and delivers content deltas as they
// arrive.
func (c *OpenAIClient) Stream(ctx context.Context, system string, messages []Message, onToken TokenFunc) (*Response, error) {
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
		return nil, openAIStatusError(resp.StatusCode, body)
	}

	out := &Response{Model: c.cfg.Model}
	var content strings.Builder

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		data, ok := strings.CutPrefix(scanner.Text(), "data: ")
		if !ok || data == "[DONE]" {
			continue
		}

		var chunk openAIResponse
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		if delta := chunk.Choices[0].Delta.Content; delta != "" {
			content.WriteString(delta)
			if onToken != nil {
				onToken(delta)
			}
		}
		if reason := chunk.Choices[0].FinishReason; reason != "" {
			out.StopReason = reason
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("stream interrupted: %w", err)
	}

	out.Content = content.String()
	out.Duration = time.Since(start)
	return out, nil
}
