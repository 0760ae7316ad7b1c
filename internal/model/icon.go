package model

// 图标风格参数默认值，在 HTTP 边界处填充
const (
	DefaultIconSize     = "24x24"
	DefaultStrokeWidth  = "2px"
	DefaultColorPalette = "monochrome"
)

// IconConcept 待生成的单个图标概念
type IconConcept struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// IconStyle 图标集共享的风格参数（已填充默认值）
type IconStyle struct {
	IconSize     string
	StrokeWidth  string
	ColorPalette string
}

// WithDefaults 返回空字段被默认值替换后的副本
func (s IconStyle) WithDefaults() IconStyle {
	if s.IconSize == "" {
		s.IconSize = DefaultIconSize
	}
	if s.StrokeWidth == "" {
		s.StrokeWidth = DefaultStrokeWidth
	}
	if s.ColorPalette == "" {
		s.ColorPalette = DefaultColorPalette
	}
	return s
}

// GeneratedIcon 单个图标的生成结果，创建后不再修改
type GeneratedIcon struct {
	Name    string `json:"name"`
	SVG     string `json:"svg"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// IconSetResult 图标集生成结果，顺序与输入的图标概念一致
type IconSetResult struct {
	Icons []GeneratedIcon
}

// Total 图标总数
func (r *IconSetResult) Total() int {
	return len(r.Icons)
}

// Successful 成功生成的图标数
func (r *IconSetResult) Successful() int {
	n := 0
	for _, icon := range r.Icons {
		if icon.Success {
			n++
		}
	}
	return n
}

// Failed 生成失败的图标数
func (r *IconSetResult) Failed() int {
	return r.Total() - r.Successful()
}
