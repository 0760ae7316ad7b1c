package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
)

// EinoCompleter 基于 eino ChatModel 的补全实现（openai / azure / ark）
type EinoCompleter struct {
	chatModel model.BaseChatModel
	provider  string
}

// NewEinoCompleter 创建 EinoCompleter
func NewEinoCompleter(chatModel model.BaseChatModel, provider string) *EinoCompleter {
	return &EinoCompleter{
		chatModel: chatModel,
		provider:  provider,
	}
}

// Complete 调用 ChatModel.Generate
func (c *EinoCompleter) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	if c.chatModel == nil {
		return "", fmt.Errorf("chatModel is required")
	}

	messages, err := toEinoMessages(req)
	if err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := c.chatModel.Generate(ctx, messages, einoOptions(req)...)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).
			Str("provider", c.provider).
			Str("task", string(req.Task)).
			Str("subject", req.Subject).
			Dur("latency", time.Since(start)).
			Msg("completion failed")
		return "", err
	}
	if resp == nil {
		return "", nil
	}

	event := log.Ctx(ctx).Debug().
		Str("provider", c.provider).
		Str("task", string(req.Task)).
		Str("subject", req.Subject).
		Dur("latency", time.Since(start))
	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		event = event.
			Int("prompt_tokens", resp.ResponseMeta.Usage.PromptTokens).
			Int("completion_tokens", resp.ResponseMeta.Usage.CompletionTokens)
	}
	event.Msg("completion finished")

	return resp.Content, nil
}

func einoOptions(req *CompletionRequest) []model.Option {
	var opts []model.Option
	if req.Model != "" {
		opts = append(opts, model.WithModel(req.Model))
	}
	if req.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(req.MaxTokens))
	}
	if req.Temperature != nil {
		opts = append(opts, model.WithTemperature(float32(*req.Temperature)))
	}
	return opts
}

// toEinoMessages 把 CompletionRequest 转换为 eino 消息
// 纯文本请求使用 Content，含图片时使用 MultiContent
func toEinoMessages(req *CompletionRequest) ([]*schema.Message, error) {
	var messages []*schema.Message
	if req.System != "" {
		messages = append(messages, schema.SystemMessage(req.System))
	}

	if !req.HasImage() {
		return append(messages, schema.UserMessage(req.Text())), nil
	}

	parts := make([]schema.ChatMessagePart, 0, len(req.Parts))
	for _, part := range req.Parts {
		switch p := part.(type) {
		case TextPart:
			parts = append(parts, schema.ChatMessagePart{
				Type: schema.ChatMessagePartTypeText,
				Text: p.Text,
			})
		case ImagePart:
			parts = append(parts, schema.ChatMessagePart{
				Type: schema.ChatMessagePartTypeImageURL,
				ImageURL: &schema.ChatMessageImageURL{
					URL:    p.URL,
					Detail: schema.ImageURLDetailAuto,
				},
			})
		default:
			return nil, fmt.Errorf("unsupported content part %T", part)
		}
	}

	return append(messages, &schema.Message{
		Role:         schema.User,
		MultiContent: parts,
	}), nil
}
