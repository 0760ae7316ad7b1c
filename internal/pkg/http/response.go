package http

import "time"

// TimestampLayout ISO-8601 UTC，精确到毫秒
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// ErrorResponse 错误响应（所有API共用）
type ErrorResponse struct {
	Success   bool   `json:"success"`           // 固定为 false
	Error     string `json:"error"`             // 错误类别
	Message   string `json:"message,omitempty"` // 面向用户的说明（可选）
	Timestamp string `json:"timestamp"`
}

// Timestamp 当前时间的 ISO-8601 字符串
func Timestamp() string {
	return FormatTimestamp(time.Now())
}

// FormatTimestamp 按 TimestampLayout 格式化时间
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(errMsg string, message ...string) *ErrorResponse {
	resp := &ErrorResponse{
		Success:   false,
		Error:     errMsg,
		Timestamp: Timestamp(),
	}
	if len(message) > 0 && message[0] != "" {
		resp.Message = message[0]
	}
	return resp
}
