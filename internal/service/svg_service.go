package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"svgsmith/internal/ai"
	"svgsmith/internal/config"
	"svgsmith/internal/pkg/imageproc"
	"svgsmith/internal/pkg/svgutil"
)

// SVGService 单个 SVG 生成服务
type SVGService interface {
	// GenerateSVG 根据文本提示词和/或已处理的图片生成一个 SVG
	// 调用方负责事先完成请求校验，失败时返回包装了 ErrSVGFailed 的错误
	GenerateSVG(ctx context.Context, textPrompt string, image *imageproc.ProcessedImage) (string, error)
}

type svgService struct {
	completer ai.Completer
	opts      config.CompletionOptions
}

// NewSVGService 创建 SVG 生成服务
func NewSVGService(completer ai.Completer, opts config.CompletionOptions) SVGService {
	return &svgService{
		completer: completer,
		opts:      opts,
	}
}

func (s *svgService) GenerateSVG(ctx context.Context, textPrompt string, image *imageproc.ProcessedImage) (string, error) {
	textPrompt = strings.TrimSpace(textPrompt)

	var imageURL string
	if image != nil {
		imageURL = image.DataURL()
	}
	if textPrompt == "" && imageURL == "" {
		return "", fmt.Errorf("%w: %w", ErrSVGFailed, ErrEmptyInput)
	}

	subject := textPrompt
	if subject == "" {
		subject = "image"
	}

	req := &ai.CompletionRequest{
		Task:        ai.TaskSVG,
		Subject:     subject,
		System:      svgSystemPrompt,
		Parts:       svgUserParts(textPrompt, imageURL),
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
	}

	svg, err := completeSVG(ctx, s.completer, req)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Bool("has_image", image != nil).Msg("SVG 生成失败")
		return "", fmt.Errorf("%w: %w", ErrSVGFailed, err)
	}

	log.Ctx(ctx).Info().Bool("has_image", image != nil).Int("svg_length", len(svg)).Msg("SVG 生成完成")
	return svg, nil
}

// completeSVG 调用模型并从回复中提取第一个 SVG 片段
func completeSVG(ctx context.Context, completer ai.Completer, req *ai.CompletionRequest) (string, error) {
	content, err := completer.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	if content == "" {
		return "", ErrNoResponse
	}
	svg, ok := svgutil.Extract(content)
	if !ok {
		return "", ErrNoSVG
	}
	return svg, nil
}
