package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	// formats accepted for header artwork
	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// DefaultLogoWidthCM is the header image width used when none is configured
	DefaultLogoWidthCM = 3.5
	// fallbackAspect is used when an image reports zero pixel dimensions
	fallbackAspect = 0.5

	emuPerCM = 360000
	mmPerCM  = 10
)

// Logo is optional header artwork and the physical width it is drawn at
type Logo struct {
	Data    []byte
	WidthCM float64
}

// LogoDims sizes a header image for the given width, keeping its aspect
// ratio. Only the image header is decoded. An image that reports zero
// pixel dimensions gets height width*0.5; bytes that cannot be decoded at
// all return ErrUnreadableLogo.
func LogoDims(data []byte, width float64) (float64, float64, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrUnreadableLogo, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return width, width * fallbackAspect, nil
	}
	return width, width * float64(cfg.Height) / float64(cfg.Width), nil
}

// preparedLogo is a logo ready for embedding in a document
type preparedLogo struct {
	data     []byte
	kind     string // "PNG" or "JPG"
	widthCM  float64
	heightCM float64
}

// prepareLogo sizes the logo and normalises its encoding. JPEG is embedded
// as is; every other format is re-encoded as 8-bit RGBA PNG, which both
// document writers accept. An image whose header reports zero dimensions
// has nothing to embed and fails with ErrUnreadableLogo.
func prepareLogo(l *Logo) (*preparedLogo, error) {
	width := l.WidthCM
	if width <= 0 {
		width = DefaultLogoWidthCM
	}

	w, h, err := LogoDims(l.Data, width)
	if err != nil {
		return nil, err
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(l.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableLogo, err)
	}
	if format == "jpeg" {
		return &preparedLogo{data: l.Data, kind: "JPG", widthCM: w, heightCM: h}, nil
	}

	src, _, err := image.Decode(bytes.NewReader(l.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableLogo, err)
	}
	rgba := image.NewNRGBA(src.Bounds())
	draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("failed to re-encode logo: %w", err)
	}
	return &preparedLogo{data: buf.Bytes(), kind: "PNG", widthCM: w, heightCM: h}, nil
}

func (p *preparedLogo) extension() string {
	if p.kind == "JPG" {
		return "jpeg"
	}
	return "png"
}
