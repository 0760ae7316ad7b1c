package ai

import (
	"context"
	"html"
	"strings"
)

// mockSVGs 无 API key 时按关键字返回的示例 SVG，按顺序匹配
var mockSVGs = []struct {
	keyword string
	svg     string
}{
	{"sun", `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><circle cx="50" cy="50" r="20" fill="#ffeb3b" stroke="#ff9800" stroke-width="2"/><g stroke="#ff9800" stroke-width="3"><line x1="50" y1="10" x2="50" y2="20"/><line x1="50" y1="80" x2="50" y2="90"/><line x1="10" y1="50" x2="20" y2="50"/><line x1="80" y1="50" x2="90" y2="50"/><line x1="21.5" y1="21.5" x2="28.5" y2="28.5"/><line x1="71.5" y1="71.5" x2="78.5" y2="78.5"/><line x1="71.5" y1="28.5" x2="78.5" y2="21.5"/><line x1="21.5" y1="78.5" x2="28.5" y2="71.5"/></g></svg>`},
	{"star", `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><polygon points="50,15 61,35 85,35 67,50 73,75 50,60 27,75 33,50 15,35 39,35" fill="#ffd700" stroke="#ffb300" stroke-width="2"/></svg>`},
	{"heart", `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><path d="M50,85 C50,85 20,60 20,40 C20,25 30,15 45,20 C47,21 50,25 50,25 C50,25 53,21 55,20 C70,15 80,25 80,40 C80,60 50,85 50,85 Z" fill="#e91e63" stroke="#c2185b" stroke-width="2"/></svg>`},
	{"tree", `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><rect x="45" y="60" width="10" height="25" fill="#8d6e63"/><circle cx="50" cy="40" r="25" fill="#4caf50" stroke="#388e3c" stroke-width="2"/></svg>`},
	{"house", `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><polygon points="50,20 20,50 80,50" fill="#f44336" stroke="#d32f2f" stroke-width="2"/><rect x="30" y="50" width="40" height="30" fill="#ffeb3b" stroke="#fbc02d" stroke-width="2"/><rect x="40" y="60" width="8" height="12" fill="#8d6e63"/><rect x="52" y="60" width="8" height="8" fill="#2196f3"/></svg>`},
}

const mockIconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><rect x="3" y="3" width="18" height="18" rx="4"/><circle cx="12" cy="12" r="4"/></svg>`

const mockAnalysis = "Mock analysis: the image shows simple geometric shapes with flat colors and clean outlines."

// MockCompleter 未配置 API key 时使用的本地实现，输出固定内容
type MockCompleter struct{}

// NewMockCompleter 创建 MockCompleter
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

// Complete 返回与请求主题匹配的示例内容
func (m *MockCompleter) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch req.Task {
	case TaskAnalyze:
		return mockAnalysis, nil
	case TaskIcon:
		if svg, ok := matchMockSVG(req.Subject); ok {
			return svg, nil
		}
		return mockIconSVG, nil
	default:
		if svg, ok := matchMockSVG(req.Subject); ok {
			return svg, nil
		}
		return genericMockSVG(req.Subject), nil
	}
}

func matchMockSVG(subject string) (string, bool) {
	lower := strings.ToLower(subject)
	for _, m := range mockSVGs {
		if strings.Contains(lower, m.keyword) {
			return m.svg, true
		}
	}
	return "", false
}

// genericMockSVG 蓝色圆形 + 主题前 10 个字符
func genericMockSVG(subject string) string {
	label := []rune(subject)
	if len(label) > 10 {
		label = label[:10]
	}
	return `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><circle cx="50" cy="50" r="30" fill="#2196f3" stroke="#1976d2" stroke-width="3"/><text x="50" y="55" text-anchor="middle" fill="white" font-family="Arial" font-size="8">` +
		html.EscapeString(string(label)) + `</text></svg>`
}
