package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpPkg "svgsmith/internal/pkg/http"
)

// 请求体超限时的错误信息
const (
	ErrFileTooLarge     = "File too large"
	MsgFileTooLargeHint = "File size must be less than 20MB"
)

// BodyLimit 限制请求体大小
// Content-Length 已知时直接拒绝，否则由 MaxBytesReader 在读取时截断
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			AbortBodyTooLarge(c)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// AbortBodyTooLarge 以 400 结束请求
func AbortBodyTooLarge(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, httpPkg.NewErrorResponse(ErrFileTooLarge, MsgFileTooLargeHint))
}
