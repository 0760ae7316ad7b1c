package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	httpPkg "svgsmith/internal/pkg/http"
	"svgsmith/internal/pkg/ratelimit"
)

// RateLimit 按客户端 IP 限流
// 限流器自身出错时放行请求，只记录日志
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		ok, err := limiter.Allow(c.Request.Context(), ip)
		if err != nil {
			log.Ctx(c.Request.Context()).Warn().Err(err).Str("client_ip", ip).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				httpPkg.NewErrorResponse("Rate limit exceeded", "Too many requests. Please try again later."))
			return
		}
		c.Next()
	}
}
