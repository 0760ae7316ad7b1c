package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	. "github.com/smartystreets/goconvey/convey"

	"svgsmith/internal/ai"
	"svgsmith/internal/config"
	"svgsmith/internal/model"
	"svgsmith/internal/pkg/imageproc"
)

// scriptedCompleter 按 Subject 返回预设结果，并记录所有调用
type scriptedCompleter struct {
	mu       sync.Mutex
	replies  map[string]string
	failures map[string]error
	fallback string
	calls    []*ai.CompletionRequest
}

func (c *scriptedCompleter) Complete(ctx context.Context, req *ai.CompletionRequest) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, req)
	if err, ok := c.failures[req.Subject]; ok {
		return "", err
	}
	if reply, ok := c.replies[req.Subject]; ok {
		return reply, nil
	}
	return c.fallback, nil
}

func temperature(v float64) *float64 {
	return &v
}

var (
	svgOpts  = config.CompletionOptions{MaxTokens: 2000, Temperature: temperature(0.7)}
	iconOpts = config.CompletionOptions{MaxTokens: 1000, Temperature: temperature(0.3)}
)

func defaultStyle() model.IconStyle {
	return model.IconStyle{}.WithDefaults()
}

func newTestIconService(c ai.Completer, delay time.Duration, slept *[]time.Duration) *iconService {
	s := NewIconService(c, iconOpts, delay).(*iconService)
	s.sleep = func(ctx context.Context, d time.Duration) {
		*slept = append(*slept, d)
	}
	return s
}

func TestBuildIconSystemPrompt(t *testing.T) {
	Convey("BuildIconSystemPrompt", t, func() {
		Convey("包含风格参数", func() {
			prompt, err := BuildIconSystemPrompt("Minimalist line icons", defaultStyle(), false)
			So(err, ShouldBeNil)
			So(prompt, ShouldContainSubstring, "- Size: 24x24")
			So(prompt, ShouldContainSubstring, "- Stroke width: 2px")
			So(prompt, ShouldContainSubstring, "- Color palette: monochrome")
			So(prompt, ShouldContainSubstring, "- Style: Minimalist line icons")
			So(prompt, ShouldContainSubstring, `viewBox="0 0 24 24"`)
			So(prompt, ShouldNotContainSubstring, "reference icon")
		})

		Convey("有参考图标时增加风格匹配要求", func() {
			prompt, err := BuildIconSystemPrompt("Minimalist line icons", defaultStyle(), true)
			So(err, ShouldBeNil)
			So(prompt, ShouldContainSubstring, "- Match the style of the reference icon provided")
		})

		Convey("缺少风格参数返回错误", func() {
			_, err := BuildIconSystemPrompt("   ", defaultStyle(), false)
			So(errors.Is(err, ErrInvalidIconParams), ShouldBeTrue)

			_, err = BuildIconSystemPrompt("Minimalist", model.IconStyle{IconSize: "24x24"}, false)
			So(errors.Is(err, ErrInvalidIconParams), ShouldBeTrue)
		})
	})
}

func TestIconService_GenerateIconSet(t *testing.T) {
	Convey("GenerateIconSet", t, func() {
		ctx := context.Background()
		var slept []time.Duration

		Convey("全部成功并保持输入顺序", func() {
			completer := &scriptedCompleter{replies: map[string]string{
				"home":     `Here you go: <svg viewBox="0 0 24 24"><path d="M1"/></svg> enjoy`,
				"user":     `<svg viewBox="0 0 24 24"><circle r="4"/></svg>`,
				"settings": `<SVG viewBox="0 0 24 24"></SVG>`,
			}}
			svc := newTestIconService(completer, 500*time.Millisecond, &slept)

			result, err := svc.GenerateIconSet(ctx, &IconSetParams{
				StylePrompt: "Minimalist line icons",
				Style:       defaultStyle(),
				Concepts: []model.IconConcept{
					{Name: "home", Description: "House icon"},
					{Name: "user", Description: "Person icon"},
					{Name: "settings", Description: "Gear icon"},
				},
			})

			So(err, ShouldBeNil)
			So(result.Total(), ShouldEqual, 3)
			So(result.Successful(), ShouldEqual, 3)
			So(result.Failed(), ShouldEqual, 0)
			So(result.Icons[0].Name, ShouldEqual, "home")
			So(result.Icons[0].SVG, ShouldEqual, `<svg viewBox="0 0 24 24"><path d="M1"/></svg>`)
			So(result.Icons[1].Name, ShouldEqual, "user")
			So(result.Icons[2].Name, ShouldEqual, "settings")
			So(result.Icons[2].SVG, ShouldEqual, `<SVG viewBox="0 0 24 24"></SVG>`)

			Convey("相邻调用之间等待，最后一个之后不等待", func() {
				So(slept, ShouldResemble, []time.Duration{500 * time.Millisecond, 500 * time.Millisecond})
			})

			Convey("每次调用使用图标参数和共享系统指令", func() {
				So(completer.calls, ShouldHaveLength, 3)
				for _, call := range completer.calls {
					So(call.Task, ShouldEqual, ai.TaskIcon)
					So(call.MaxTokens, ShouldEqual, 1000)
					So(*call.Temperature, ShouldEqual, 0.3)
					So(call.System, ShouldEqual, completer.calls[0].System)
					So(call.HasImage(), ShouldBeFalse)
				}
				So(completer.calls[0].Text(), ShouldEqual, `Create an icon for "home" - House icon`)
			})
		})

		Convey("部分失败不影响其余图标", func() {
			completer := &scriptedCompleter{
				replies: map[string]string{
					"home": "<svg>home</svg>",
					"user": "I cannot draw that",
				},
				failures: map[string]error{"settings": errors.New("upstream timeout")},
				fallback: "<svg>ok</svg>",
			}
			svc := newTestIconService(completer, 0, &slept)

			result, err := svc.GenerateIconSet(ctx, &IconSetParams{
				StylePrompt: "Flat colorful icons",
				Style:       defaultStyle(),
				Concepts: []model.IconConcept{
					{Name: "home", Description: "House"},
					{Name: "user", Description: "Person"},
					{Name: "settings", Description: "Gear"},
					{Name: "search", Description: "Magnifier"},
				},
			})

			So(err, ShouldBeNil)
			So(completer.calls, ShouldHaveLength, 4)
			So(result.Total(), ShouldEqual, 4)
			So(result.Successful(), ShouldEqual, 2)
			So(result.Failed(), ShouldEqual, 2)

			So(result.Icons[1].Success, ShouldBeFalse)
			So(result.Icons[1].SVG, ShouldEqual, "")
			So(result.Icons[1].Error, ShouldEqual, "No valid SVG found in response")

			So(result.Icons[2].Success, ShouldBeFalse)
			So(result.Icons[2].Error, ShouldEqual, "upstream timeout")

			So(result.Icons[3].Success, ShouldBeTrue)
			So(result.Icons[3].SVG, ShouldEqual, "<svg>ok</svg>")
			So(slept, ShouldBeEmpty)
		})

		Convey("空回复记录为无响应，空白回复记录为没有 SVG", func() {
			completer := &scriptedCompleter{replies: map[string]string{"bell": "", "mail": " \n "}}
			svc := newTestIconService(completer, 0, &slept)

			result, err := svc.GenerateIconSet(ctx, &IconSetParams{
				StylePrompt: "Outline icons",
				Style:       defaultStyle(),
				Concepts: []model.IconConcept{
					{Name: "bell", Description: "Notification"},
					{Name: "mail", Description: "Envelope"},
				},
			})
			So(err, ShouldBeNil)
			So(result.Icons[0].Error, ShouldEqual, "No response from OpenAI")
			So(result.Icons[1].Error, ShouldEqual, "No valid SVG found in response")
		})

		Convey("有失败条目时仍在每个图标之后等待，最后一个除外", func() {
			completer := &scriptedCompleter{
				failures: map[string]error{"user": errors.New("upstream timeout")},
				replies:  map[string]string{"search": "no svg here"},
				fallback: "<svg></svg>",
			}
			svc := newTestIconService(completer, 250*time.Millisecond, &slept)

			result, err := svc.GenerateIconSet(ctx, &IconSetParams{
				StylePrompt: "Outline icons",
				Style:       defaultStyle(),
				Concepts: []model.IconConcept{
					{Name: "home", Description: "House"},
					{Name: "user", Description: "Person"},
					{Name: "search", Description: "Magnifier"},
					{Name: "bell", Description: "Notification"},
				},
			})
			So(err, ShouldBeNil)
			So(result.Failed(), ShouldEqual, 2)
			So(slept, ShouldHaveLength, result.Total()-1)
			for _, d := range slept {
				So(d, ShouldEqual, 250*time.Millisecond)
			}
		})

		Convey("图标名称原样写入指令", func() {
			completer := &scriptedCompleter{fallback: "<svg></svg>"}
			svc := newTestIconService(completer, 0, &slept)

			_, err := svc.GenerateIconSet(ctx, &IconSetParams{
				StylePrompt: "Outline icons",
				Style:       defaultStyle(),
				Concepts:    []model.IconConcept{{Name: `say "hi"\now`, Description: "Speech bubble"}},
			})
			So(err, ShouldBeNil)
			So(completer.calls[0].Text(), ShouldEqual, `Create an icon for "say "hi"\now" - Speech bubble`)
		})

		Convey("日志使用请求 context 中的 logger", func() {
			var buf bytes.Buffer
			logger := zerolog.New(&buf).With().Str("request_id", "req-1").Logger()
			reqCtx := logger.WithContext(ctx)

			completer := &scriptedCompleter{failures: map[string]error{"user": errors.New("upstream timeout")}, fallback: "<svg></svg>"}
			svc := newTestIconService(completer, 0, &slept)

			_, err := svc.GenerateIconSet(reqCtx, &IconSetParams{
				StylePrompt: "Outline icons",
				Style:       defaultStyle(),
				Concepts: []model.IconConcept{
					{Name: "home", Description: "House"},
					{Name: "user", Description: "Person"},
				},
			})
			So(err, ShouldBeNil)

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			So(len(lines), ShouldBeGreaterThanOrEqualTo, 3)
			for _, line := range lines {
				So(line, ShouldContainSubstring, `"request_id":"req-1"`)
			}
			So(buf.String(), ShouldContainSubstring, `"icon":"home"`)
			So(buf.String(), ShouldContainSubstring, `"icon":"user"`)
		})

		Convey("位图参考图标附加到每次调用", func() {
			completer := &scriptedCompleter{fallback: "<svg></svg>"}
			svc := newTestIconService(completer, 0, &slept)

			_, err := svc.GenerateIconSet(ctx, &IconSetParams{
				StylePrompt: "Match my brand",
				Style:       defaultStyle(),
				Concepts: []model.IconConcept{
					{Name: "a", Description: "first"},
					{Name: "b", Description: "second"},
				},
				Reference: &ReferenceIcon{ImageURL: "data:image/png;base64,AAAA"},
			})
			So(err, ShouldBeNil)
			for _, call := range completer.calls {
				So(call.HasImage(), ShouldBeTrue)
				So(call.System, ShouldContainSubstring, "Match the style of the reference icon provided")
				So(call.Text(), ShouldEndWith, ". Match the style of this reference icon:")
			}
		})

		Convey("SVG 参考图标以源码内联", func() {
			completer := &scriptedCompleter{fallback: "<svg></svg>"}
			svc := newTestIconService(completer, 0, &slept)

			_, err := svc.GenerateIconSet(ctx, &IconSetParams{
				StylePrompt: "Match my brand",
				Style:       defaultStyle(),
				Concepts:    []model.IconConcept{{Name: "a", Description: "first"}},
				Reference:   &ReferenceIcon{SVGSource: `<svg id="ref"></svg>`},
			})
			So(err, ShouldBeNil)
			So(completer.calls[0].HasImage(), ShouldBeFalse)
			So(completer.calls[0].Text(), ShouldContainSubstring, `<svg id="ref"></svg>`)
		})

		Convey("系统指令无法构建时整体失败", func() {
			completer := &scriptedCompleter{fallback: "<svg></svg>"}
			svc := newTestIconService(completer, 0, &slept)

			_, err := svc.GenerateIconSet(ctx, &IconSetParams{
				StylePrompt: "",
				Style:       defaultStyle(),
				Concepts:    []model.IconConcept{{Name: "a", Description: "first"}},
			})
			So(errors.Is(err, ErrIconSetFailed), ShouldBeTrue)
			So(err.Error(), ShouldStartWith, "Failed to generate icon set: ")
			So(completer.calls, ShouldBeEmpty)
		})

		Convey("mock 模型生成完整图标集", func() {
			svc := newTestIconService(ai.NewMockCompleter(), 0, &slept)
			result, err := svc.GenerateIconSet(ctx, &IconSetParams{
				StylePrompt: "Minimalist",
				Style:       defaultStyle(),
				Concepts: []model.IconConcept{
					{Name: "sun", Description: "Weather"},
					{Name: "anything", Description: "Other"},
				},
			})
			So(err, ShouldBeNil)
			So(result.Successful(), ShouldEqual, 2)
			for _, icon := range result.Icons {
				So(strings.HasPrefix(strings.ToLower(icon.SVG), "<svg"), ShouldBeTrue)
			}
		})
	})
}

func TestSleepContext(t *testing.T) {
	Convey("sleepContext 在 ctx 取消时提前返回", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		start := time.Now()
		sleepContext(ctx, time.Minute)
		So(time.Since(start), ShouldBeLessThan, time.Second)
	})
}

func TestIconService_AddIconToSet(t *testing.T) {
	Convey("AddIconToSet", t, func() {
		ctx := context.Background()
		var slept []time.Duration

		Convey("成功生成单个图标且不等待", func() {
			completer := &scriptedCompleter{fallback: "<svg>new</svg>"}
			svc := newTestIconService(completer, time.Second, &slept)

			icon, err := svc.AddIconToSet(ctx, &IconSetParams{StylePrompt: "Outline", Style: defaultStyle()},
				model.IconConcept{Name: "cart", Description: "Shopping cart"})
			So(err, ShouldBeNil)
			So(icon, ShouldResemble, model.GeneratedIcon{Name: "cart", SVG: "<svg>new</svg>", Success: true})
			So(slept, ShouldBeEmpty)
		})

		Convey("上游失败记录在结果中", func() {
			completer := &scriptedCompleter{failures: map[string]error{"cart": errors.New("rate limited")}}
			svc := newTestIconService(completer, 0, &slept)

			icon, err := svc.AddIconToSet(ctx, &IconSetParams{StylePrompt: "Outline", Style: defaultStyle()},
				model.IconConcept{Name: "cart", Description: "Shopping cart"})
			So(err, ShouldBeNil)
			So(icon.Success, ShouldBeFalse)
			So(icon.Error, ShouldEqual, "rate limited")
		})

		Convey("参数为空", func() {
			svc := newTestIconService(&scriptedCompleter{}, 0, &slept)
			_, err := svc.AddIconToSet(ctx, nil, model.IconConcept{Name: "a", Description: "b"})
			So(errors.Is(err, ErrIconSetFailed), ShouldBeTrue)
		})
	})
}

func TestSVGService_GenerateSVG(t *testing.T) {
	Convey("GenerateSVG", t, func() {
		ctx := context.Background()

		Convey("纯文本提示词", func() {
			completer := &scriptedCompleter{fallback: "```svg\n<svg xmlns=\"http://www.w3.org/2000/svg\"><rect/></svg>\n```"}
			svc := NewSVGService(completer, svgOpts)

			svg, err := svc.GenerateSVG(ctx, "A red square on white", nil)
			So(err, ShouldBeNil)
			So(svg, ShouldEqual, `<svg xmlns="http://www.w3.org/2000/svg"><rect/></svg>`)

			call := completer.calls[0]
			So(call.Task, ShouldEqual, ai.TaskSVG)
			So(call.System, ShouldContainSubstring, "expert SVG creator")
			So(call.Text(), ShouldEqual, "Create an SVG for: A red square on white")
			So(call.MaxTokens, ShouldEqual, 2000)
			So(*call.Temperature, ShouldEqual, 0.7)
			So(call.HasImage(), ShouldBeFalse)
		})

		Convey("文本加图片", func() {
			completer := &scriptedCompleter{fallback: "<svg></svg>"}
			svc := NewSVGService(completer, svgOpts)

			_, err := svc.GenerateSVG(ctx, "make it blue please", &imageproc.ProcessedImage{Base64: "AAAA", Width: 1, Height: 1})
			So(err, ShouldBeNil)
			call := completer.calls[0]
			So(call.HasImage(), ShouldBeTrue)
			So(call.Text(), ShouldEqual, "Create an SVG based on this image and the following instructions: make it blue please")
		})

		Convey("仅图片", func() {
			completer := &scriptedCompleter{fallback: "<svg></svg>"}
			svc := NewSVGService(completer, svgOpts)

			_, err := svc.GenerateSVG(ctx, "", &imageproc.ProcessedImage{Base64: "AAAA", Width: 1, Height: 1})
			So(err, ShouldBeNil)
			So(completer.calls[0].Text(), ShouldEqual, "Create an SVG based on this image, maintaining its key visual elements and style.")
		})

		Convey("回复中没有 SVG", func() {
			svc := NewSVGService(&scriptedCompleter{fallback: "Sorry, no."}, svgOpts)
			_, err := svc.GenerateSVG(ctx, "A red square on white", nil)
			So(errors.Is(err, ErrSVGFailed), ShouldBeTrue)
			So(errors.Is(err, ErrNoSVG), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "Failed to generate SVG: No valid SVG found in response")
		})

		Convey("空回复", func() {
			svc := NewSVGService(&scriptedCompleter{}, svgOpts)
			_, err := svc.GenerateSVG(ctx, "A red square on white", nil)
			So(errors.Is(err, ErrNoResponse), ShouldBeTrue)

			Convey("只有空白的回复按没有 SVG 处理", func() {
				svc := NewSVGService(&scriptedCompleter{fallback: "\n\t "}, svgOpts)
				_, err := svc.GenerateSVG(ctx, "A red square on white", nil)
				So(errors.Is(err, ErrNoSVG), ShouldBeTrue)
				So(errors.Is(err, ErrNoResponse), ShouldBeFalse)
			})
		})

		Convey("上游错误", func() {
			svc := NewSVGService(&scriptedCompleter{failures: map[string]error{"A red square on white": errors.New("boom")}}, svgOpts)
			_, err := svc.GenerateSVG(ctx, "A red square on white", nil)
			So(err.Error(), ShouldEqual, "Failed to generate SVG: boom")
		})

		Convey("没有任何输入", func() {
			svc := NewSVGService(&scriptedCompleter{}, svgOpts)
			_, err := svc.GenerateSVG(ctx, "  ", nil)
			So(errors.Is(err, ErrEmptyInput), ShouldBeTrue)
		})
	})
}

func TestVerifyService_Analyze(t *testing.T) {
	Convey("Analyze", t, func() {
		ctx := context.Background()
		image := &model.UploadedFile{FileName: "photo.jpg", MimeType: "image/jpeg", Size: 4, Data: []byte{1, 2, 3, 4}}
		opts := config.CompletionOptions{MaxTokens: 300}

		Convey("返回模型描述", func() {
			completer := &scriptedCompleter{fallback: "A blue circle on a white background."}
			svc := NewVerifyService(completer, "gpt-4o-mini", opts)

			analysis, err := svc.Analyze(ctx, image)
			So(err, ShouldBeNil)
			So(analysis, ShouldEqual, "A blue circle on a white background.")

			call := completer.calls[0]
			So(call.Model, ShouldEqual, "gpt-4o-mini")
			So(call.MaxTokens, ShouldEqual, 300)
			So(call.Temperature, ShouldBeNil)
			So(call.Text(), ShouldEqual, "Analyze this image and describe what you see. Focus on colors, shapes, and style.")
			img, ok := call.Parts[1].(ai.ImagePart)
			So(ok, ShouldBeTrue)
			So(img.URL, ShouldStartWith, "data:image/jpeg;base64,")
		})

		Convey("空回复", func() {
			svc := NewVerifyService(&scriptedCompleter{}, "gpt-4o-mini", opts)
			_, err := svc.Analyze(ctx, image)
			So(errors.Is(err, ErrNoAnalysis), ShouldBeTrue)
		})

		Convey("上游错误", func() {
			svc := NewVerifyService(&scriptedCompleter{failures: map[string]error{"photo.jpg": errors.New("401")}}, "gpt-4o-mini", opts)
			_, err := svc.Analyze(ctx, image)
			So(errors.Is(err, ErrVerificationFailed), ShouldBeTrue)
		})

		Convey("空图片", func() {
			svc := NewVerifyService(&scriptedCompleter{}, "gpt-4o-mini", opts)
			_, err := svc.Analyze(ctx, &model.UploadedFile{})
			So(errors.Is(err, ErrVerificationFailed), ShouldBeTrue)
		})
	})
}
