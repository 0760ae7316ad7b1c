package verify

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	httputil "svgsmith/internal/pkg/http"
	"svgsmith/internal/server/middleware"
	"svgsmith/internal/service"
	"svgsmith/internal/validation"
)

// MaxImageSize 验证接口接受的图片上限
const MaxImageSize = 10 * 1024 * 1024

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// VerifyResponse 验证响应
type VerifyResponse struct {
	Success   bool   `json:"success"`
	Analysis  string `json:"analysis"`
	Timestamp string `json:"timestamp"`
}

// Handler 上游连通性验证处理器
type Handler struct {
	verifyService service.VerifyService
}

// NewHandler 创建验证处理器
func NewHandler(verifyService service.VerifyService) *Handler {
	return &Handler{
		verifyService: verifyService,
	}
}

// VerifyGeneration 让视觉模型描述上传的图片，用于确认上游服务可用
// @Summary      验证上游模型
// @Description  上传一张图片，由视觉模型返回描述文本
// @Tags         验证
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "图片（JPEG/PNG/WebP，不超过 10MB）"
// @Success      200  {object}  VerifyResponse
// @Failure      400  {object}  ErrorResponse  "请求参数错误"
// @Failure      500  {object}  ErrorResponse  "上游模型调用失败"
// @Router       /api/verify-generation [post]
func (h *Handler) VerifyGeneration(c *gin.Context) {
	if err := httputil.ParseForm(c); err != nil && httputil.IsBodyTooLarge(err) {
		middleware.AbortBodyTooLarge(c)
		return
	}

	image, err := httputil.ReadFormFile(c, "image")
	if err != nil && httputil.IsBodyTooLarge(err) {
		middleware.AbortBodyTooLarge(c)
		return
	}
	if image == nil {
		c.JSON(http.StatusBadRequest, httputil.NewErrorResponse("No image file provided"))
		return
	}

	if !validation.IsImageType(image.MimeType) {
		c.JSON(http.StatusBadRequest, httputil.NewErrorResponse("Invalid file type. Only JPEG, PNG, and WebP are allowed."))
		return
	}
	if image.Size > MaxImageSize {
		c.JSON(http.StatusBadRequest, httputil.NewErrorResponse(middleware.ErrFileTooLarge, "File size must be less than 10MB"))
		return
	}

	analysis, err := h.verifyService.Analyze(c.Request.Context(), image)
	if err != nil {
		log.Ctx(c.Request.Context()).Error().Err(err).Msg("verification failed")
		errMsg := "API verification failed"
		if errors.Is(err, service.ErrNoAnalysis) {
			errMsg = "No analysis content received"
		}
		c.JSON(http.StatusInternalServerError, httputil.NewErrorResponse(errMsg))
		return
	}

	c.JSON(http.StatusOK, VerifyResponse{
		Success:   true,
		Analysis:  analysis,
		Timestamp: httputil.Timestamp(),
	})
}
