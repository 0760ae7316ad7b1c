package imageproc

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/webp"
)

// MaxDimension 上传图片在送入模型前的最大边长
const MaxDimension = 1024

// ErrProcessImage 图片无法解码或编码
var ErrProcessImage = errors.New("Failed to process image")

// ProcessedImage 归一化后的 PNG 图片
type ProcessedImage struct {
	Base64 string
	Width  int
	Height int
	Size   int
}

// DataURL 返回 data:image/png;base64,... 形式的 URL
func (p *ProcessedImage) DataURL() string {
	return "data:image/png;base64," + p.Base64
}

// Metadata 原始图片信息
type Metadata struct {
	Width  int
	Height int
	Format string
	Size   int
}

// Process 解码 jpeg/png/webp，等比缩放到 1024x1024 以内（不放大），转为 PNG
func Process(data []byte) (*ProcessedImage, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		log.Error().Err(err).Int("bytes", len(data)).Msg("image decode failed")
		return nil, fmt.Errorf("%w: %v", ErrProcessImage, err)
	}

	fitted := imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.PNG, imaging.PNGCompressionLevel(png.DefaultCompression)); err != nil {
		log.Error().Err(err).Msg("image encode failed")
		return nil, fmt.Errorf("%w: %v", ErrProcessImage, err)
	}

	bounds := fitted.Bounds()
	log.Debug().
		Int("input_bytes", len(data)).
		Int("output_bytes", buf.Len()).
		Int("width", bounds.Dx()).
		Int("height", bounds.Dy()).
		Msg("image processed")

	return &ProcessedImage{
		Base64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Size:   buf.Len(),
	}, nil
}

// ReadMetadata 读取图片尺寸和格式，不解码像素
func ReadMetadata(data []byte) (*Metadata, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to extract image metadata: %w", err)
	}
	return &Metadata{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
		Size:   len(data),
	}, nil
}
