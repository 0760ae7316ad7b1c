package generate

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"svgsmith/internal/model"
	"svgsmith/internal/pkg/imageproc"
	httputil "svgsmith/internal/pkg/http"
	"svgsmith/internal/server/middleware"
	"svgsmith/internal/service"
	"svgsmith/internal/validation"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// 错误信息
const (
	errInvalidConcepts      = "Invalid icon concepts format"
	errConceptRequired      = "Icon concept is required"
	errInvalidConcept       = "Invalid icon concept format"
	errInvalidUpload        = "Invalid file upload"
	errProcessImage         = "Failed to process image"
	errGenerateSVG          = "Failed to generate SVG"
	errGenerateIconSet      = "Failed to generate icon set"
	msgServiceUnavailable   = "AI service is temporarily unavailable. Please try again later."
	msgInvalidImageContents = "The uploaded image could not be decoded"
)

func abortWithError(c *gin.Context, status int, errMsg string, message ...string) {
	c.AbortWithStatusJSON(status, httputil.NewErrorResponse(errMsg, message...))
}

// abortValidation 校验失败，error 字段直接给出校验信息
func abortValidation(c *gin.Context, res validation.Result) {
	abortWithError(c, http.StatusBadRequest, res.Error)
}

// parseForm 解析表单，失败时已写入响应
func parseForm(c *gin.Context) bool {
	if err := httputil.ParseForm(c); err != nil {
		if httputil.IsBodyTooLarge(err) {
			middleware.AbortBodyTooLarge(c)
			return false
		}
		abortWithError(c, http.StatusBadRequest, errInvalidUpload, err.Error())
		return false
	}
	return true
}

// readFile 读取可选的上传文件，失败时已写入响应
func readFile(c *gin.Context, field string) (*model.UploadedFile, bool) {
	file, err := httputil.ReadFormFile(c, field)
	if err != nil {
		if httputil.IsBodyTooLarge(err) {
			middleware.AbortBodyTooLarge(c)
			return nil, false
		}
		log.Ctx(c.Request.Context()).Warn().Err(err).Str("field", field).Msg("failed to read upload")
		abortWithError(c, http.StatusBadRequest, errInvalidUpload, err.Error())
		return nil, false
	}
	return file, true
}

func fileMeta(file *model.UploadedFile) *validation.FileMeta {
	if file == nil {
		return nil
	}
	return &validation.FileMeta{MimeType: file.MimeType, Size: file.Size}
}

// processImage 位图归一化，失败时已写入响应
func processImage(c *gin.Context, file *model.UploadedFile) (*imageproc.ProcessedImage, bool) {
	processed, err := imageproc.Process(file.Data)
	if err != nil {
		log.Ctx(c.Request.Context()).Warn().Err(err).Str("file", file.FileName).Str("mime_type", file.MimeType).Msg("image processing failed")
		abortWithError(c, http.StatusBadRequest, errProcessImage, msgInvalidImageContents)
		return nil, false
	}
	if meta, err := imageproc.ReadMetadata(file.Data); err == nil {
		log.Ctx(c.Request.Context()).Debug().
			Str("format", meta.Format).
			Int("width", meta.Width).
			Int("height", meta.Height).
			Int("processed_width", processed.Width).
			Int("processed_height", processed.Height).
			Msg("upload normalized")
	}
	return processed, true
}

// referenceIcon 构建参考图标，SVG 不做栅格化
func referenceIcon(c *gin.Context, file *model.UploadedFile) (*service.ReferenceIcon, bool) {
	if file == nil {
		return nil, true
	}
	if file.IsSVG() {
		return &service.ReferenceIcon{SVGSource: string(file.Data)}, true
	}
	processed, ok := processImage(c, file)
	if !ok {
		return nil, false
	}
	return &service.ReferenceIcon{ImageURL: processed.DataURL()}, true
}

// iconStyle 读取风格参数并填充默认值
func iconStyle(c *gin.Context) model.IconStyle {
	return model.IconStyle{
		IconSize:     c.PostForm("iconSize"),
		StrokeWidth:  c.PostForm("strokeWidth"),
		ColorPalette: c.PostForm("colorPalette"),
	}.WithDefaults()
}

var errNotObject = errors.New("icon concept must be a JSON object")

// parseConcepts 解析 iconConcepts 字段
// JSON 语法错误返回 error；合法 JSON 但不是数组时返回 nil，由校验器报告缺失
func parseConcepts(raw string) ([]model.IconConcept, error) {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, err
	}
	items, ok := value.([]any)
	if !ok {
		return nil, nil
	}
	concepts := make([]model.IconConcept, len(items))
	for i, item := range items {
		if obj, ok := item.(map[string]any); ok {
			concepts[i] = conceptFromObject(obj)
		}
	}
	return concepts, nil
}

// parseConcept 解析单个 iconConcept 字段
func parseConcept(raw string) (model.IconConcept, error) {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return model.IconConcept{}, err
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return model.IconConcept{}, errNotObject
	}
	return conceptFromObject(obj), nil
}

func conceptFromObject(obj map[string]any) model.IconConcept {
	return model.IconConcept{
		Name:        stringField(obj["name"]),
		Description: stringField(obj["description"]),
	}
}

func stringField(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
