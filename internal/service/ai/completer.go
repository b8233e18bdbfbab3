package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptura/site/backend/internal/config"
	"github.com/uptura/site/backend/internal/model/chat"
)

var (
	// ErrMissingAPIKey means no upstream credential is configured.
	ErrMissingAPIKey = errors.New("upstream api key missing")
	// ErrUpstream means the provider reported an error or did not answer in time.
	ErrUpstream = errors.New("upstream service error")
)

// UpstreamError carries the provider's own error payload. It is for logs
// only and must never be written to a client.
type UpstreamError struct {
	Status int
	Detail string
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream error (status %d): %s", e.Status, e.Detail)
	}
	return "upstream error: " + e.Detail
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}

// CompletionRequest is one chat-completion call.
type CompletionRequest struct {
	Model     string
	Messages  []chat.Message
	MaxTokens int
}

// Completer sends a conversation to a chat-completion provider and returns
// the first choice's raw content.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// NewCompleter builds the provider selected by cfg.Provider.
func NewCompleter(ctx context.Context, cfg config.AIConfig) (Completer, error) {
	if !cfg.Configured() {
		return nil, ErrMissingAPIKey
	}

	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		return NewOpenAIClient(cfg.BaseURL, cfg.APIKey, nil), nil
	case config.ProviderArk:
		return NewArkCompleter(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
}
