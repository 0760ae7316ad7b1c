package svgutil

import "regexp"

var svgPattern = regexp.MustCompile(`(?i)<svg[\s\S]*?</svg>`)

// Extract 从模型输出中取出第一个完整的 <svg>...</svg> 片段
func Extract(text string) (string, bool) {
	match := svgPattern.FindString(text)
	if match == "" {
		return "", false
	}
	return match, true
}
