package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"svgsmith/internal/config"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiCompleter 基于 Google GenAI SDK 的补全实现
type GeminiCompleter struct {
	client *genai.Client
	model  string
}

// NewGeminiCompleter 创建 GeminiCompleter
func NewGeminiCompleter(ctx context.Context, cfg *config.AIConfig) (*GeminiCompleter, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultGeminiModel
	}

	return &GeminiCompleter{
		client: client,
		model:  modelName,
	}, nil
}

// Complete 调用 Models.GenerateContent
func (c *GeminiCompleter) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	parts, err := toGeminiParts(req.Parts)
	if err != nil {
		return "", err
	}

	modelName := c.model
	if req.Model != "" {
		modelName = req.Model
	}

	genCfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.MaxTokens > 0 {
		genCfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Temperature != nil {
		genCfg.Temperature = genai.Ptr(float32(*req.Temperature))
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, modelName,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, genCfg)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).
			Str("provider", "gemini").
			Str("task", string(req.Task)).
			Str("subject", req.Subject).
			Dur("latency", time.Since(start)).
			Msg("completion failed")
		return "", err
	}

	log.Ctx(ctx).Debug().
		Str("provider", "gemini").
		Str("task", string(req.Task)).
		Str("subject", req.Subject).
		Dur("latency", time.Since(start)).
		Msg("completion finished")

	return resp.Text(), nil
}

func toGeminiParts(parts []ContentPart) ([]*genai.Part, error) {
	out := make([]*genai.Part, 0, len(parts))
	for _, part := range parts {
		switch p := part.(type) {
		case TextPart:
			out = append(out, genai.NewPartFromText(p.Text))
		case ImagePart:
			if !strings.HasPrefix(p.URL, "data:") {
				out = append(out, genai.NewPartFromURI(p.URL, "image/png"))
				continue
			}
			mimeType, data, err := decodeDataURL(p.URL)
			if err != nil {
				return nil, err
			}
			out = append(out, genai.NewPartFromBytes(data, mimeType))
		default:
			return nil, fmt.Errorf("unsupported content part %T", part)
		}
	}
	return out, nil
}

var errInvalidDataURL = errors.New("invalid data URL")

// decodeDataURL 解析 data:<mime>;base64,<payload>
func decodeDataURL(url string) (string, []byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(url, "data:"), ",")
	if !ok {
		return "", nil, errInvalidDataURL
	}

	mimeType, encoding, _ := strings.Cut(header, ";")
	if encoding != "base64" {
		return "", nil, fmt.Errorf("%w: unsupported encoding %q", errInvalidDataURL, encoding)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", errInvalidDataURL, err)
	}
	return mimeType, data, nil
}
