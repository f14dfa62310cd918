// Package imagedecoder decodes uploaded image bytes into rasters.
//
// Registered formats: PNG, JPEG, GIF, BMP, TIFF, WebP and TGA.
package imagedecoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/user/tapestudio/pkg/ports"
	"github.com/user/tapestudio/pkg/raster"
)

// DefaultMaxPixels rejects uploads larger than 64 megapixels.
const DefaultMaxPixels = 8192 * 8192

var (
	// ErrEmptySource is returned for zero-length uploads.
	ErrEmptySource = errors.New("empty source")
	// ErrTooLarge is returned when the image exceeds the pixel limit.
	ErrTooLarge = errors.New("image too large")
)

// Decoder implements ports.ImageDecoder with the standard image registry.
type Decoder struct {
	maxPixels int
	logger    ports.Logger
}

// New creates a decoder. maxPixels <= 0 selects DefaultMaxPixels.
func New(maxPixels int, logger ports.Logger) *Decoder {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	return &Decoder{
		maxPixels: maxPixels,
		logger:    logger.WithComponent("decoder"),
	}
}

// Ensure Decoder implements ports.ImageDecoder
var _ ports.ImageDecoder = (*Decoder)(nil)

// DecodeImage decodes src. Unsupported or corrupt data yields *ports.DecodeError.
func (d *Decoder) DecodeImage(ctx context.Context, src ports.ByteSource) (*raster.Raster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(src.Data) == 0 {
		return nil, &ports.DecodeError{Source: src.Name, Err: ErrEmptySource}
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(src.Data))
	if err != nil {
		return nil, &ports.DecodeError{Source: src.Name, Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, &ports.DecodeError{Source: src.Name, Err: fmt.Errorf("invalid size %dx%d", cfg.Width, cfg.Height)}
	}
	if cfg.Width*cfg.Height > d.maxPixels {
		return nil, &ports.DecodeError{
			Source: src.Name,
			Err:    fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height),
		}
	}

	img, _, err := image.Decode(bytes.NewReader(src.Data))
	if err != nil {
		return nil, &ports.DecodeError{Source: src.Name, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.logger.Debug("Decoded %s image %dx%d", format, cfg.Width, cfg.Height)
	return raster.FromImage(img), nil
}
