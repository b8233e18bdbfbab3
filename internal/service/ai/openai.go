package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/uptura/site/backend/internal/model/chat"
)

// OpenAIClient talks to an OpenAI-compatible /chat/completions endpoint.
type OpenAIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewOpenAIClient returns a client for baseURL (e.g. "https://api.openai.com/v1").
// A nil httpClient uses a client without its own timeout; callers bound each
// call through the context.
func NewOpenAIClient(baseURL, apiKey string, httpClient *http.Client) *OpenAIClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &OpenAIClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type completionPayload struct {
	Model     string         `json:"model"`
	Messages  []chat.Message `json:"messages"`
	MaxTokens int            `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error json.RawMessage `json:"error"`
}

// Complete posts req and returns the first choice's content untrimmed.
// A body carrying a truthy "error" field yields an *UpstreamError whatever
// the HTTP status. A first choice without content is a plain error.
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	body, err := json.Marshal(completionPayload{
		Model:     req.Model,
		Messages:  req.Messages,
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("send completion request: %w", err)
	}
	defer resp.Body.Close()

	var decoded completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode completion response (status %d): %w", resp.StatusCode, err)
	}

	if hasError(decoded.Error) {
		return "", &UpstreamError{Status: resp.StatusCode, Detail: string(decoded.Error)}
	}

	if len(decoded.Choices) == 0 {
		return "", errors.New("completion response contained no choices")
	}

	content := decoded.Choices[0].Message.Content
	if content == nil {
		return "", errors.New("completion response choice has no message content")
	}
	return *content, nil
}

// hasError reports whether the "error" value is set. null, false, 0 and ""
// count as unset.
func hasError(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}

	var value any
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return true
	}
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}
