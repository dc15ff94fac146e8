// Package llm talks to an OpenAI-compatible hosted inference service.
package llm

import (
	"context"
	"fmt"
	"time"

	"shopmate-chat/config"
	"shopmate-chat/internal/domain/chat"
	apperrors "shopmate-chat/pkg/errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const requestTimeout = 50 * time.Second

type Client struct {
	client openai.Client
	model  string
}

func NewClient(cfg *config.Config) *Client {
	opts := []option.RequestOption{option.WithAPIKey(cfg.ModelAPIKey)}
	if cfg.ModelBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.ModelBaseURL))
	}

	return &Client{
		client: openai.NewClient(opts...),
		model:  cfg.ModelName,
	}
}

// Complete sends the ordered context and returns the model reply.
func (c *Client) Complete(ctx context.Context, messages []chat.PromptMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Messages: toCompletionMessages(messages),
		Model:    c.model,
	}

	res, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", apperrors.ErrUpstream)
	}

	return res.Choices[0].Message.Content, nil
}

func toCompletionMessages(messages []chat.PromptMessage) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case chat.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case chat.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
