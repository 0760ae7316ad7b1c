package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"svgsmith/internal/ai"
	"svgsmith/internal/config"
	"svgsmith/internal/model"
)

// VerifyService 上游视觉模型连通性检查
type VerifyService interface {
	// Analyze 让视觉模型描述图片内容，返回原始文本
	Analyze(ctx context.Context, image *model.UploadedFile) (string, error)
}

type verifyService struct {
	completer ai.Completer
	model     string
	opts      config.CompletionOptions
}

// NewVerifyService 创建验证服务
func NewVerifyService(completer ai.Completer, verifyModel string, opts config.CompletionOptions) VerifyService {
	return &verifyService{
		completer: completer,
		model:     verifyModel,
		opts:      opts,
	}
}

func (s *verifyService) Analyze(ctx context.Context, image *model.UploadedFile) (string, error) {
	if image == nil || len(image.Data) == 0 {
		return "", fmt.Errorf("%w: empty image", ErrVerificationFailed)
	}

	req := &ai.CompletionRequest{
		Task:    ai.TaskAnalyze,
		Subject: image.FileName,
		Parts: []ai.ContentPart{
			ai.TextPart{Text: analyzeInstruction},
			ai.ImagePart{URL: image.DataURL()},
		},
		Model:       s.model,
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
	}

	content, err := s.completer.Complete(ctx, req)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("file", image.FileName).Msg("图片分析调用失败")
		return "", fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}
	if strings.TrimSpace(content) == "" {
		return "", ErrNoAnalysis
	}

	log.Ctx(ctx).Info().Str("file", image.FileName).Int64("size", image.Size).Msg("图片分析完成")
	return content, nil
}
