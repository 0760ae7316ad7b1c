package generate

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"svgsmith/internal/model"
	httputil "svgsmith/internal/pkg/http"
	"svgsmith/internal/service"
	"svgsmith/internal/validation"
)

// IconSetMetadata 图标集响应元数据
type IconSetMetadata struct {
	TotalIcons      int    `json:"totalIcons"`
	SuccessfulIcons int    `json:"successfulIcons"`
	FailedIcons     int    `json:"failedIcons"`
	Timestamp       string `json:"timestamp"`
}

// IconSetResponse 图标集生成响应
type IconSetResponse struct {
	Success  bool                  `json:"success"`
	IconSet  []model.GeneratedIcon `json:"iconSet"`
	Metadata IconSetMetadata       `json:"metadata"`
}

// GenerateIconSet 批量生成风格一致的图标
// @Summary      生成图标集
// @Description  按顺序逐个生成图标，单个图标失败不影响其余图标
// @Tags         生成
// @Accept       multipart/form-data
// @Produce      json
// @Param        stylePrompt    formData  string  true   "风格描述（至少 5 个字符）"
// @Param        iconConcepts   formData  string  true   "图标概念 JSON 数组，如 [{\"name\":\"home\",\"description\":\"House icon\"}]"
// @Param        referenceIcon  formData  file    false  "参考图标（JPEG/PNG/WebP/SVG，不超过 10MB）"
// @Param        iconSize       formData  string  false  "图标尺寸，默认 24x24"
// @Param        strokeWidth    formData  string  false  "描边宽度，默认 2px"
// @Param        colorPalette   formData  string  false  "配色，默认 monochrome"
// @Success      200  {object}  IconSetResponse
// @Failure      400  {object}  ErrorResponse  "请求参数错误"
// @Failure      429  {object}  ErrorResponse  "请求过于频繁"
// @Failure      500  {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/generate/icon-set [post]
func (h *Handler) GenerateIconSet(c *gin.Context) {
	if !parseForm(c) {
		return
	}

	stylePrompt := httputil.OptionalPostForm(c, "stylePrompt")

	var concepts []model.IconConcept
	if raw, ok := c.GetPostForm("iconConcepts"); ok {
		parsed, err := parseConcepts(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, errInvalidConcepts)
			return
		}
		concepts = parsed
	}

	reference, ok := readFile(c, "referenceIcon")
	if !ok {
		return
	}

	if res := validation.ValidateIconSetRequest(stylePrompt, concepts, fileMeta(reference)); !res.IsValid {
		abortValidation(c, res)
		return
	}

	ref, ok := referenceIcon(c, reference)
	if !ok {
		return
	}

	result, err := h.iconService.GenerateIconSet(c.Request.Context(), &service.IconSetParams{
		StylePrompt: *stylePrompt,
		Concepts:    concepts,
		Style:       iconStyle(c),
		Reference:   ref,
	})
	if err != nil {
		log.Ctx(c.Request.Context()).Error().Err(err).Msg("Icon set generation error")
		abortWithError(c, http.StatusInternalServerError, errGenerateIconSet, err.Error())
		return
	}

	c.JSON(http.StatusOK, IconSetResponse{
		Success: true,
		IconSet: result.Icons,
		Metadata: IconSetMetadata{
			TotalIcons:      result.Total(),
			SuccessfulIcons: result.Successful(),
			FailedIcons:     result.Failed(),
			Timestamp:       httputil.Timestamp(),
		},
	})
}
