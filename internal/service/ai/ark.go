package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/uptura/site/backend/internal/config"
	"github.com/uptura/site/backend/internal/model/chat"
)

// ArkCompleter adapts an eino chat model (Volcengine Ark by default) to Completer.
type ArkCompleter struct {
	chatModel model.BaseChatModel
}

// NewArkCompleter creates an Ark chat model from cfg.
func NewArkCompleter(ctx context.Context, cfg config.AIConfig) (*ArkCompleter, error) {
	maxTokens := cfg.MaxTokens

	chatModel, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL:   cfg.BaseURL,
		Region:    cfg.Region,
		APIKey:    cfg.APIKey,
		Model:     cfg.Model,
		MaxTokens: &maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ark chat model: %w", err)
	}

	return newArkCompleter(chatModel), nil
}

func newArkCompleter(chatModel model.BaseChatModel) *ArkCompleter {
	return &ArkCompleter{chatModel: chatModel}
}

// Complete runs one Generate call. Any error the model returns is treated as
// a provider-side failure.
func (c *ArkCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	input := make([]*schema.Message, 0, len(req.Messages))
	for _, msg := range req.Messages {
		switch msg.Role {
		case chat.RoleSystem:
			input = append(input, schema.SystemMessage(msg.Content))
		case chat.RoleUser:
			input = append(input, schema.UserMessage(msg.Content))
		case chat.RoleAssistant:
			input = append(input, schema.AssistantMessage(msg.Content, nil))
		default:
			return "", fmt.Errorf("unsupported message role %q", msg.Role)
		}
	}

	var opts []model.Option
	if req.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(req.MaxTokens))
	}

	resp, err := c.chatModel.Generate(ctx, input, opts...)
	if err != nil {
		return "", &UpstreamError{Detail: err.Error()}
	}
	if resp == nil {
		return "", errors.New("chat model returned no message")
	}

	return resp.Content, nil
}
