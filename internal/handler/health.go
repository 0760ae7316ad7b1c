package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "svgsmith/internal/pkg/http"
)

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// HealthHandler 健康检查处理器
type HealthHandler struct{}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health 健康检查
// @Summary      健康检查
// @Tags         系统
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: httputil.Timestamp(),
	})
}

// Ready 就绪检查
// @Summary      就绪检查
// @Tags         系统
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ready",
		Timestamp: httputil.Timestamp(),
	})
}

// NotFound 未匹配路由
func (h *HealthHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, httputil.NewErrorResponse("Not found"))
}
