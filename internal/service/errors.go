package service

import "errors"

// 上游调用与内容提取错误，消息直接写入单个图标的 error 字段
var (
	ErrNoResponse = errors.New("No response from OpenAI")
	ErrNoSVG      = errors.New("No valid SVG found in response")
)

// 整体请求失败时的包装错误
var (
	ErrSVGFailed          = errors.New("Failed to generate SVG")
	ErrIconSetFailed      = errors.New("Failed to generate icon set")
	ErrInvalidIconParams  = errors.New("invalid icon set parameters")
	ErrEmptyInput         = errors.New("text prompt or image is required")
	ErrNoAnalysis         = errors.New("No analysis content received")
	ErrVerificationFailed = errors.New("API verification failed")
)
