package ai

import (
	"context"
	"strings"
)

// Task 补全调用的用途，用于日志和 mock 输出
type Task string

const (
	TaskSVG     Task = "svg"
	TaskIcon    Task = "icon"
	TaskAnalyze Task = "analyze"
)

// ContentPart 用户消息中的一段内容，只能是 TextPart 或 ImagePart
type ContentPart interface {
	isContentPart()
}

// TextPart 文本内容
type TextPart struct {
	Text string
}

// ImagePart 图片内容，URL 通常是 data URL
type ImagePart struct {
	URL string
}

func (TextPart) isContentPart()  {}
func (ImagePart) isContentPart() {}

// CompletionRequest 一次补全调用
type CompletionRequest struct {
	Task        Task
	Subject     string // 简短主题，用于日志
	System      string
	Parts       []ContentPart
	Model       string // 为空时使用默认模型
	MaxTokens   int
	Temperature *float64 // nil 表示不设置
}

// Text 拼接所有文本片段
func (r *CompletionRequest) Text() string {
	var texts []string
	for _, part := range r.Parts {
		if p, ok := part.(TextPart); ok {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// HasImage 是否包含图片
func (r *CompletionRequest) HasImage() bool {
	for _, part := range r.Parts {
		if _, ok := part.(ImagePart); ok {
			return true
		}
	}
	return false
}

// Completer 多模态补全能力
// 返回模型输出的原始文本，空字符串表示模型没有返回内容
type Completer interface {
	Complete(ctx context.Context, req *CompletionRequest) (string, error)
}
