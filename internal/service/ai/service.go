package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/uptura/site/backend/internal/config"
	"github.com/uptura/site/backend/internal/model/chat"
	"github.com/uptura/site/backend/internal/model/persona"
)

// Service turns a visitor message into an assistant reply.
type Service struct {
	completer    Completer
	cfg          config.AIConfig
	persona      persona.Persona
	systemPrompt string
}

// NewService resolves the configured persona and system prompt once.
// completer may be nil when cfg has no API key; Reply then reports
// ErrMissingAPIKey on every call.
func NewService(completer Completer, cfg config.AIConfig, personas persona.Store) (*Service, error) {
	p, err := persona.Lookup(personas, cfg.PersonaID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve assistant persona: %w", err)
	}

	systemPrompt := cfg.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = BuildSystemPrompt(p, cfg.PromptVariant)
	}

	return &Service{
		completer:    completer,
		cfg:          cfg,
		persona:      p,
		systemPrompt: systemPrompt,
	}, nil
}

// Configured reports whether Reply can reach a provider at all.
func (s *Service) Configured() bool {
	return s != nil && s.completer != nil && s.cfg.Configured()
}

// Persona returns the assistant persona replies are generated as.
func (s *Service) Persona() persona.Persona {
	return s.persona
}

// SystemPrompt returns the instruction message prepended to every call.
func (s *Service) SystemPrompt() string {
	return s.systemPrompt
}

// BuildMessages returns the system turn followed by the untouched user turn.
func (s *Service) BuildMessages(userMessage string) []chat.Message {
	return []chat.Message{
		{Role: chat.RoleSystem, Content: s.systemPrompt},
		{Role: chat.RoleUser, Content: userMessage},
	}
}

// Reply calls the provider once and returns the trimmed first choice.
// Errors wrap ErrMissingAPIKey or ErrUpstream where they apply; a call
// that outlives cfg.Timeout is reported as ErrUpstream.
func (s *Service) Reply(ctx context.Context, userMessage string) (string, error) {
	if !s.Configured() {
		return "", ErrMissingAPIKey
	}

	callCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	content, err := s.completer.Complete(callCtx, CompletionRequest{
		Model:     s.cfg.Model,
		Messages:  s.BuildMessages(userMessage),
		MaxTokens: s.cfg.MaxTokens,
	})
	if err != nil {
		if ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: no response within %s: %w", ErrUpstream, s.cfg.Timeout, err)
		}
		return "", err
	}

	reply := strings.TrimSpace(content)
	log.Printf("[ai] generated reply, persona=%s, length=%d", s.persona.ID, len(reply))
	return reply, nil
}
