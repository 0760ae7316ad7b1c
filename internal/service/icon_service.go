package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"svgsmith/internal/ai"
	"svgsmith/internal/config"
	"svgsmith/internal/model"
)

// IconSetParams 图标集生成参数
type IconSetParams struct {
	StylePrompt string
	Concepts    []model.IconConcept
	Style       model.IconStyle
	Reference   *ReferenceIcon
}

// IconService 图标集生成服务
type IconService interface {
	// GenerateIconSet 按输入顺序逐个生成图标
	// 单个图标失败只记录在对应条目中，不会中断整个批次
	// 只有系统指令无法构建时才返回错误（包装 ErrIconSetFailed）
	GenerateIconSet(ctx context.Context, params *IconSetParams) (*model.IconSetResult, error)

	// AddIconToSet 使用同一套风格参数为已有图标集追加一个图标
	AddIconToSet(ctx context.Context, params *IconSetParams, concept model.IconConcept) (model.GeneratedIcon, error)
}

type iconService struct {
	completer ai.Completer
	opts      config.CompletionOptions
	delay     time.Duration
	sleep     func(ctx context.Context, d time.Duration)
}

// NewIconService 创建图标集生成服务
// delay 为相邻两次上游调用之间的间隔
func NewIconService(completer ai.Completer, opts config.CompletionOptions, delay time.Duration) IconService {
	return &iconService{
		completer: completer,
		opts:      opts,
		delay:     delay,
		sleep:     sleepContext,
	}
}

func (s *iconService) GenerateIconSet(ctx context.Context, params *IconSetParams) (*model.IconSetResult, error) {
	systemPrompt, err := s.systemPrompt(params)
	if err != nil {
		return nil, err
	}

	result := &model.IconSetResult{Icons: make([]model.GeneratedIcon, 0, len(params.Concepts))}
	for i, concept := range params.Concepts {
		result.Icons = append(result.Icons, s.generateOne(ctx, i, systemPrompt, concept, params.Reference))

		if i < len(params.Concepts)-1 && s.delay > 0 {
			s.sleep(ctx, s.delay)
		}
	}

	log.Ctx(ctx).Info().
		Int("total", result.Total()).
		Int("successful", result.Successful()).
		Int("failed", result.Failed()).
		Msg("图标集生成完成")

	return result, nil
}

func (s *iconService) AddIconToSet(ctx context.Context, params *IconSetParams, concept model.IconConcept) (model.GeneratedIcon, error) {
	systemPrompt, err := s.systemPrompt(params)
	if err != nil {
		return model.GeneratedIcon{}, err
	}
	return s.generateOne(ctx, 0, systemPrompt, concept, params.Reference), nil
}

func (s *iconService) systemPrompt(params *IconSetParams) (string, error) {
	if params == nil {
		return "", fmt.Errorf("%w: %w", ErrIconSetFailed, ErrInvalidIconParams)
	}
	prompt, err := BuildIconSystemPrompt(params.StylePrompt, params.Style, params.Reference != nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIconSetFailed, err)
	}
	return prompt, nil
}

// generateOne 生成单个图标，任何错误都转换为失败条目
func (s *iconService) generateOne(ctx context.Context, index int, systemPrompt string, concept model.IconConcept, ref *ReferenceIcon) model.GeneratedIcon {
	req := &ai.CompletionRequest{
		Task:        ai.TaskIcon,
		Subject:     concept.Name,
		System:      systemPrompt,
		Parts:       iconUserParts(concept, ref),
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
	}

	svg, err := completeSVG(ctx, s.completer, req)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).
			Str("icon", concept.Name).
			Int("index", index).
			Bool("success", false).
			Msg("图标生成失败")
		return model.GeneratedIcon{
			Name:    concept.Name,
			SVG:     "",
			Success: false,
			Error:   err.Error(),
		}
	}

	log.Ctx(ctx).Info().
		Str("icon", concept.Name).
		Int("index", index).
		Bool("success", true).
		Int("svg_length", len(svg)).
		Msg("图标生成成功")
	return model.GeneratedIcon{
		Name:    concept.Name,
		SVG:     svg,
		Success: true,
	}
}

// sleepContext 等待 d 或 ctx 结束
func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
