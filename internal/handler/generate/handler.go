package generate

import (
	"svgsmith/internal/service"
)

// Handler 生成模块处理器
type Handler struct {
	svgService  service.SVGService
	iconService service.IconService
}

// NewHandler 创建生成模块处理器
func NewHandler(svgService service.SVGService, iconService service.IconService) *Handler {
	return &Handler{
		svgService:  svgService,
		iconService: iconService,
	}
}
