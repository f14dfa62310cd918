// Package card renders a shareable product card for the current configuration.
package card

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"image"

	"github.com/user/tapestudio/pkg/pipeline"
	"github.com/user/tapestudio/pkg/ports"
)

// DefaultWidth is used when the input width is not positive.
const DefaultWidth = 480

// swatchWidth is the width of the embedded surface map thumbnail.
const swatchWidth = 160

// viewportHeight is the initial browser viewport height; the card is
// cropped to its content afterwards.
const viewportHeight = 400

// ErrNoImage is returned when the capturer returns no image.
var ErrNoImage = errors.New("card: capture returned no image")

// Stage renders the product card HTML and captures it as an image.
type Stage struct {
	capturer ports.HTMLCapturer
	renderer ports.Renderer
	logger   ports.Logger
}

// NewStage creates a new card stage.
func NewStage(capturer ports.HTMLCapturer, renderer ports.Renderer, logger ports.Logger) *Stage {
	return &Stage{
		capturer: capturer,
		renderer: renderer,
		logger:   logger.WithComponent("card"),
	}
}

// Ensure Stage implements the card stage
var _ pipeline.Stage[pipeline.CardInput, pipeline.CardResult] = (*Stage)(nil)

// Execute renders the card for input.
func (s *Stage) Execute(ctx context.Context, input pipeline.CardInput) (pipeline.CardResult, error) {
	if input.Width <= 0 {
		input.Width = DefaultWidth
	}
	s.logger.Debug("Generating product card")

	swatch, err := s.swatch(input.SurfaceMap)
	if err != nil {
		return pipeline.CardResult{}, err
	}

	html, err := RenderHTML(NewTemplateVars(input, swatch))
	if err != nil {
		return pipeline.CardResult{}, fmt.Errorf("render HTML: %w", err)
	}

	img, err := s.capturer.CaptureHTMLWithViewport(ctx, html, input.Width, viewportHeight)
	if err != nil {
		return pipeline.CardResult{}, fmt.Errorf("capture HTML: %w", err)
	}
	if img == nil {
		return pipeline.CardResult{}, ErrNoImage
	}

	s.logger.Debug("Product card generated: %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	return pipeline.CardResult{Image: img}, nil
}

// swatch encodes a thumbnail of the surface map as a PNG data URL.
func (s *Stage) swatch(surface image.Image) (template.URL, error) {
	if surface == nil || surface.Bounds().Empty() {
		return "", nil
	}

	b := surface.Bounds()
	w := min(swatchWidth, b.Dx())
	h := max(1, b.Dy()*w/b.Dx())
	thumb := s.renderer.ResizeImage(surface, w, h)

	data, err := s.renderer.EncodeImage(thumb, ports.FormatPNG, 0)
	if err != nil {
		return "", fmt.Errorf("encode swatch: %w", err)
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(data)), nil
}
