// Package validation 生成请求的校验规则
//
// 所有函数都是纯函数：不记录日志、不访问外部资源，校验失败通过 Result 返回，
// 而不是 error。检查按固定顺序执行，第一条失败的规则决定错误信息。
package validation

import (
	"errors"
	"strings"

	"svgsmith/internal/config"
	"svgsmith/internal/model"
)

const (
	MinTextPromptLength  = 10
	MinStylePromptLength = 5
	MaxIconConcepts      = 20

	MaxImageSize         = 20 * 1024 * 1024 // 20MB
	MaxReferenceIconSize = 10 * 1024 * 1024 // 10MB
)

// 校验错误信息，前端直接展示
const (
	MsgPromptOrImageRequired = "Either text prompt or image is required"
	MsgPromptTooShort        = "Please enter at least 10 characters"
	MsgImageType             = "Please upload a JPEG, PNG, or WebP image"
	MsgImageSize             = "File size must be less than 20MB"

	MsgStylePromptTooShort = "Style prompt must be at least 5 characters"
	MsgConceptsRequired    = "At least one icon concept is required"
	MsgConceptIncomplete   = "Each icon concept must have a name and description"
	MsgTooManyConcepts     = "Maximum 20 icons can be generated at once"
	MsgReferenceType       = "Reference icon must be JPEG, PNG, WebP, or SVG"
	MsgReferenceSize       = "Reference icon must be less than 10MB"
)

var (
	imageTypes = map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	}
	referenceTypes = map[string]bool{
		"image/jpeg":    true,
		"image/png":     true,
		"image/webp":    true,
		"image/svg+xml": true,
	}
)

// Result 校验结果
type Result struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty"`
}

// FileMeta 校验所需的上传文件信息
type FileMeta struct {
	MimeType string
	Size     int64
}

func valid() Result {
	return Result{IsValid: true}
}

func invalid(msg string) Result {
	return Result{IsValid: false, Error: msg}
}

// IsImageType 是否为 SVG 生成接口接受的图片类型
func IsImageType(mimeType string) bool {
	return imageTypes[mimeType]
}

// ValidateGenerationRequest 校验单个 SVG 生成请求
// 空字符串的 textPrompt 视为未提供
func ValidateGenerationRequest(textPrompt *string, image *FileMeta) Result {
	hasPrompt := textPrompt != nil && *textPrompt != ""

	if !hasPrompt && image == nil {
		return invalid(MsgPromptOrImageRequired)
	}

	if hasPrompt && len([]rune(strings.TrimSpace(*textPrompt))) < MinTextPromptLength {
		return invalid(MsgPromptTooShort)
	}

	if image != nil {
		if !imageTypes[image.MimeType] {
			return invalid(MsgImageType)
		}
		if image.Size > MaxImageSize {
			return invalid(MsgImageSize)
		}
	}

	return valid()
}

// ValidateIconSetRequest 校验图标集生成请求
// concepts 为 nil 表示请求中没有提供图标概念
func ValidateIconSetRequest(stylePrompt *string, concepts []model.IconConcept, reference *FileMeta) Result {
	if stylePrompt == nil || len([]rune(strings.TrimSpace(*stylePrompt))) < MinStylePromptLength {
		return invalid(MsgStylePromptTooShort)
	}

	if len(concepts) == 0 {
		return invalid(MsgConceptsRequired)
	}

	// 结构检查先于数量检查
	for _, concept := range concepts {
		if concept.Name == "" || concept.Description == "" {
			return invalid(MsgConceptIncomplete)
		}
	}

	if len(concepts) > MaxIconConcepts {
		return invalid(MsgTooManyConcepts)
	}

	if reference != nil {
		if !referenceTypes[reference.MimeType] {
			return invalid(MsgReferenceType)
		}
		if reference.Size > MaxReferenceIconSize {
			return invalid(MsgReferenceSize)
		}
	}

	return valid()
}

// ValidateEnvironment 检查必需的外部服务凭证
func ValidateEnvironment(cfg *config.AIConfig) error {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return errors.New("Missing required environment variables: OPENAI_API_KEY")
	}
	return nil
}
