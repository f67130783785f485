package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// CompletionProvider is the single polymorphic text-completion
// capability. Provider selection happens through configuration, not
// through parallel client implementations.
type CompletionProvider interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
	IsAvailable() bool
}

// ChatCompletionClient talks to any OpenAI-compatible chat-completions
// endpoint (OpenRouter, OpenAI, self-hosted gateways).
type ChatCompletionClient struct {
	httpClient *http.Client
	apiKey     string
	apiURL     string
	model      string
	maxRetries int
}

func NewChatCompletionClient(apiKey, apiURL, model string, maxRetries int) *ChatCompletionClient {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &ChatCompletionClient{
		httpClient: &http.Client{Timeout: 90 * time.Second},
		apiKey:     apiKey,
		apiURL:     apiURL,
		model:      model,
		maxRetries: maxRetries,
	}
}

func (c *ChatCompletionClient) IsAvailable() bool {
	return c.apiKey != ""
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends the prompt and returns the raw completion text.
// Transient failures (network errors, 429, 5xx) are retried a bounded
// number of times with linear backoff before surfacing.
func (c *ChatCompletionClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	if !c.IsAvailable() {
		return "", fmt.Errorf("completion provider is not configured")
	}

	messages := []chatMessage{}
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	jsonBody, err := json.Marshal(chatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		content, retryable, err := c.doRequest(ctx, jsonBody)
		if err == nil {
			return content, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
	}
	return "", fmt.Errorf("completion failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *ChatCompletionClient) doRequest(ctx context.Context, jsonBody []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", true, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", false, fmt.Errorf("failed to parse API response: %w", err)
	}
	if chatResp.Error != nil {
		return "", false, fmt.Errorf("API error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", false, fmt.Errorf("empty response from completion provider")
	}
	return chatResp.Choices[0].Message.Content, false, nil
}
