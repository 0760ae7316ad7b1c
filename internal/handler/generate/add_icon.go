package generate

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"svgsmith/internal/model"
	httputil "svgsmith/internal/pkg/http"
	"svgsmith/internal/service"
	"svgsmith/internal/validation"
)

// AddIconMetadata 追加图标响应元数据
type AddIconMetadata struct {
	Timestamp string `json:"timestamp"`
}

// AddIconResponse 追加图标响应
type AddIconResponse struct {
	Success  bool                `json:"success"`
	Icon     model.GeneratedIcon `json:"icon"`
	Metadata AddIconMetadata     `json:"metadata"`
}

// AddIconToSet 为已有图标集追加一个图标
// @Summary      追加图标
// @Description  使用与图标集相同的风格参数生成单个图标，用于重试失败的图标或扩充图标集
// @Tags         生成
// @Accept       multipart/form-data
// @Produce      json
// @Param        stylePrompt    formData  string  true   "风格描述（至少 5 个字符）"
// @Param        iconConcept    formData  string  true   "图标概念 JSON 对象，如 {\"name\":\"cart\",\"description\":\"Shopping cart\"}"
// @Param        referenceIcon  formData  file    false  "参考图标（JPEG/PNG/WebP/SVG，不超过 10MB）"
// @Param        iconSize       formData  string  false  "图标尺寸，默认 24x24"
// @Param        strokeWidth    formData  string  false  "描边宽度，默认 2px"
// @Param        colorPalette   formData  string  false  "配色，默认 monochrome"
// @Success      200  {object}  AddIconResponse
// @Failure      400  {object}  ErrorResponse  "请求参数错误"
// @Failure      429  {object}  ErrorResponse  "请求过于频繁"
// @Failure      500  {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/generate/icon-set/add [post]
func (h *Handler) AddIconToSet(c *gin.Context) {
	if !parseForm(c) {
		return
	}

	raw := strings.TrimSpace(c.PostForm("iconConcept"))
	if raw == "" {
		abortWithError(c, http.StatusBadRequest, errConceptRequired)
		return
	}
	concept, err := parseConcept(raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, errInvalidConcept)
		return
	}

	stylePrompt := httputil.OptionalPostForm(c, "stylePrompt")
	reference, ok := readFile(c, "referenceIcon")
	if !ok {
		return
	}

	concepts := []model.IconConcept{concept}
	if res := validation.ValidateIconSetRequest(stylePrompt, concepts, fileMeta(reference)); !res.IsValid {
		abortValidation(c, res)
		return
	}

	ref, ok := referenceIcon(c, reference)
	if !ok {
		return
	}

	icon, err := h.iconService.AddIconToSet(c.Request.Context(), &service.IconSetParams{
		StylePrompt: *stylePrompt,
		Concepts:    concepts,
		Style:       iconStyle(c),
		Reference:   ref,
	}, concept)
	if err != nil {
		log.Ctx(c.Request.Context()).Error().Err(err).Msg("Single icon generation error")
		abortWithError(c, http.StatusInternalServerError, errGenerateIconSet, err.Error())
		return
	}

	c.JSON(http.StatusOK, AddIconResponse{
		Success:  true,
		Icon:     icon,
		Metadata: AddIconMetadata{Timestamp: httputil.Timestamp()},
	})
}
