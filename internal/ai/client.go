package ai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"svgsmith/internal/ai/component"
	"svgsmith/internal/config"
)

// NewCompleter 根据配置创建补全实现
// 未配置 API key 时退化为 MockCompleter
func NewCompleter(ctx context.Context, cfg *config.AIConfig) (Completer, error) {
	if cfg.APIKey == "" {
		log.Warn().Msg("AI API key not configured, using mock mode")
		return NewMockCompleter(), nil
	}

	if cfg.Provider == "gemini" {
		return NewGeminiCompleter(ctx, cfg)
	}

	chatModel, err := component.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	log.Info().Str("provider", cfg.Provider).Str("model", cfg.Model).Msg("initialized chat model")
	return NewEinoCompleter(chatModel, cfg.Provider), nil
}
