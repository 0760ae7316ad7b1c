package generate

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"svgsmith/internal/pkg/imageproc"
	httputil "svgsmith/internal/pkg/http"
	"svgsmith/internal/validation"
)

// SVGMetadata SVG 生成响应元数据
type SVGMetadata struct {
	HasTextPrompt bool   `json:"hasTextPrompt"`
	HasImage      bool   `json:"hasImage"`
	ImageSize     int64  `json:"imageSize,omitempty"` // 上传图片字节数
	Timestamp     string `json:"timestamp"`
}

// SVGResponse SVG 生成响应
type SVGResponse struct {
	Success  bool        `json:"success"`
	SVG      string      `json:"svg"`
	Metadata SVGMetadata `json:"metadata"`
}

// GenerateSVG 生成单个 SVG
// @Summary      生成 SVG
// @Description  根据文本提示词和/或参考图片生成一个 SVG，两者至少提供一个
// @Tags         生成
// @Accept       multipart/form-data
// @Produce      json
// @Param        textPrompt  formData  string  false  "文本提示词（至少 10 个字符）"
// @Param        image       formData  file    false  "参考图片（JPEG/PNG/WebP，不超过 20MB）"
// @Success      200  {object}  SVGResponse
// @Failure      400  {object}  ErrorResponse  "请求参数错误"
// @Failure      429  {object}  ErrorResponse  "请求过于频繁"
// @Failure      502  {object}  ErrorResponse  "上游模型调用失败"
// @Router       /api/generate/svg [post]
func (h *Handler) GenerateSVG(c *gin.Context) {
	if !parseForm(c) {
		return
	}

	textPrompt := httputil.OptionalPostForm(c, "textPrompt")
	image, ok := readFile(c, "image")
	if !ok {
		return
	}

	if res := validation.ValidateGenerationRequest(textPrompt, fileMeta(image)); !res.IsValid {
		abortValidation(c, res)
		return
	}

	var processed *imageproc.ProcessedImage
	if image != nil {
		if processed, ok = processImage(c, image); !ok {
			return
		}
	}

	var prompt string
	if textPrompt != nil {
		prompt = *textPrompt
	}

	svg, err := h.svgService.GenerateSVG(c.Request.Context(), prompt, processed)
	if err != nil {
		log.Ctx(c.Request.Context()).Error().Err(err).Msg("SVG generation error")
		abortWithError(c, http.StatusBadGateway, errGenerateSVG, msgServiceUnavailable)
		return
	}

	meta := SVGMetadata{
		HasTextPrompt: prompt != "",
		HasImage:      image != nil,
		Timestamp:     httputil.Timestamp(),
	}
	if image != nil {
		meta.ImageSize = image.Size
	}

	c.JSON(http.StatusOK, SVGResponse{
		Success:  true,
		SVG:      svg,
		Metadata: meta,
	})
}
