package service

import (
	"fmt"
	"strings"

	"svgsmith/internal/ai"
	"svgsmith/internal/model"
)

const svgSystemPrompt = `You are an expert SVG creator. Generate clean, scalable SVG code based on the user's requirements.

Requirements:
- Return only valid SVG code
- Use viewBox for scalability
- Keep the code clean and well-structured
- Use semantic element names when possible
- Optimize for web use
- Include proper xmlns declaration`

const analyzeInstruction = "Analyze this image and describe what you see. Focus on colors, shapes, and style."

// ReferenceIcon 图标集的参考图标
// 位图以 data URL 形式附加到每次调用，SVG 以源码形式内联到指令中
type ReferenceIcon struct {
	ImageURL  string
	SVGSource string
}

// BuildIconSystemPrompt 构建图标集共享的系统指令
func BuildIconSystemPrompt(stylePrompt string, style model.IconStyle, hasReference bool) (string, error) {
	stylePrompt = strings.TrimSpace(stylePrompt)
	if stylePrompt == "" {
		return "", fmt.Errorf("%w: style prompt is empty", ErrInvalidIconParams)
	}
	if style.IconSize == "" || style.StrokeWidth == "" || style.ColorPalette == "" {
		return "", fmt.Errorf("%w: icon size, stroke width and color palette are required", ErrInvalidIconParams)
	}

	var b strings.Builder
	b.WriteString("You are an expert icon designer. Create consistent SVG icons based on the provided style guidelines.\n\n")
	b.WriteString("Style Requirements:\n")
	fmt.Fprintf(&b, "- Size: %s\n", style.IconSize)
	fmt.Fprintf(&b, "- Stroke width: %s\n", style.StrokeWidth)
	fmt.Fprintf(&b, "- Color palette: %s\n", style.ColorPalette)
	fmt.Fprintf(&b, "- Style: %s\n", stylePrompt)
	if hasReference {
		b.WriteString("- Match the style of the reference icon provided\n")
	}
	b.WriteString("\nTechnical Requirements:\n")
	b.WriteString("- Return only valid SVG code\n")
	b.WriteString("- Use viewBox=\"0 0 24 24\" for consistency\n")
	b.WriteString("- Keep icons simple and recognizable at small sizes\n")
	b.WriteString("- Use consistent stroke width and styling\n")
	b.WriteString("- Optimize for clarity and scalability")
	return b.String(), nil
}

// iconUserParts 单个图标的用户指令，参考图标附在同一次调用中
func iconUserParts(concept model.IconConcept, ref *ReferenceIcon) []ai.ContentPart {
	instruction := fmt.Sprintf("Create an icon for \"%s\" - %s", concept.Name, concept.Description)

	switch {
	case ref == nil:
		return []ai.ContentPart{ai.TextPart{Text: instruction}}
	case ref.ImageURL != "":
		return []ai.ContentPart{
			ai.TextPart{Text: instruction + ". Match the style of this reference icon:"},
			ai.ImagePart{URL: ref.ImageURL},
		}
	default:
		return []ai.ContentPart{
			ai.TextPart{Text: instruction + ". Match the style of this reference icon:\n" + ref.SVGSource},
		}
	}
}

// svgUserParts 单个 SVG 生成的用户指令
func svgUserParts(textPrompt, imageURL string) []ai.ContentPart {
	switch {
	case imageURL != "" && textPrompt != "":
		return []ai.ContentPart{
			ai.TextPart{Text: "Create an SVG based on this image and the following instructions: " + textPrompt},
			ai.ImagePart{URL: imageURL},
		}
	case imageURL != "":
		return []ai.ContentPart{
			ai.TextPart{Text: "Create an SVG based on this image, maintaining its key visual elements and style."},
			ai.ImagePart{URL: imageURL},
		}
	default:
		return []ai.ContentPart{ai.TextPart{Text: "Create an SVG for: " + textPrompt}}
	}
}
