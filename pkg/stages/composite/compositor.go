// Package composite combines uploaded images with material bases.
package composite

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/user/tapestudio/pkg/pipeline"
	"github.com/user/tapestudio/pkg/ports"
	"github.com/user/tapestudio/pkg/raster"
)

var (
	// ErrEmptyOverlay is returned when the overlay is nil or has no pixels.
	ErrEmptyOverlay = errors.New("composite: empty overlay")
	// ErrMissingBase is returned when a procedural policy has no base raster.
	ErrMissingBase = errors.New("composite: missing base")
)

// ColorCodeSize is the side of the square raster produced by ColorCoded.
const ColorCodeSize = 512

// Compositor draws overlays onto material bases. Every result is a new
// published raster sized to the overlay, except ColorCoded.
type Compositor struct {
	renderer ports.Renderer
	logger   ports.Logger
}

// New creates a new compositor.
func New(renderer ports.Renderer, logger ports.Logger) *Compositor {
	return &Compositor{
		renderer: renderer,
		logger:   logger.WithComponent("composite"),
	}
}

// Execute combines input.Base and input.Overlay according to input.Policy.
func (c *Compositor) Execute(ctx context.Context, input pipeline.CompositeInput) (pipeline.CompositeResult, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.CompositeResult{}, err
	}

	var (
		out *raster.Raster
		err error
	)
	switch input.Policy {
	case pipeline.PolicyTintAndMask:
		out, err = c.TintAndMask(input.Overlay, input.Tint)
	case pipeline.PolicyOverlayOnProceduralBase:
		out, err = c.OverlayOnProceduralBase(input.Base, input.Overlay)
	case pipeline.PolicyOverlayFullColor:
		out, err = c.OverlayFullColor(input.Base, input.Overlay)
	case pipeline.PolicyColorCode:
		out, err = c.ColorCoded(input.Overlay)
	default:
		err = fmt.Errorf("composite: unknown policy %d", input.Policy)
	}
	if err != nil {
		return pipeline.CompositeResult{}, err
	}
	return pipeline.CompositeResult{Raster: out}, nil
}

// Ensure Compositor implements the composite stage
var _ pipeline.Stage[pipeline.CompositeInput, pipeline.CompositeResult] = (*Compositor)(nil)

// TintAndMask fills the overlay-sized canvas with tint and draws the overlay
// on top as a black mark.
func (c *Compositor) TintAndMask(overlay *raster.Raster, tint color.Color) (*raster.Raster, error) {
	if err := checkOverlay(overlay); err != nil {
		return nil, err
	}
	if tint == nil {
		tint = color.White
	}

	canvas := c.renderer.CreateCanvas(overlay.Width(), overlay.Height(), tint)
	canvas.DrawImage(monochromeMask(overlay).Image(), 0, 0)

	return c.finish(pipeline.PolicyTintAndMask, canvas), nil
}

// OverlayOnProceduralBase draws base scaled to the overlay size and the
// overlay on top as a black mark.
func (c *Compositor) OverlayOnProceduralBase(base, overlay *raster.Raster) (*raster.Raster, error) {
	canvas, err := c.baseCanvas(base, overlay)
	if err != nil {
		return nil, err
	}
	canvas.DrawImage(monochromeMask(overlay).Image(), 0, 0)

	return c.finish(pipeline.PolicyOverlayOnProceduralBase, canvas), nil
}

// OverlayFullColor draws base scaled to the overlay size and the overlay on
// top unmodified. Only the overlay's own transparency lets the base through.
func (c *Compositor) OverlayFullColor(base, overlay *raster.Raster) (*raster.Raster, error) {
	canvas, err := c.baseCanvas(base, overlay)
	if err != nil {
		return nil, err
	}
	canvas.DrawImage(overlay.Image(), 0, 0)

	return c.finish(pipeline.PolicyOverlayFullColor, canvas), nil
}

// ColorCoded flattens overlay onto white at ColorCodeSize² and recolors it
// with ColorCode.
func (c *Compositor) ColorCoded(overlay *raster.Raster) (*raster.Raster, error) {
	if err := checkOverlay(overlay); err != nil {
		return nil, err
	}

	canvas := c.renderer.CreateCanvas(ColorCodeSize, ColorCodeSize, color.White)
	canvas.DrawImageScaled(overlay.Image(), 0, 0, ColorCodeSize, ColorCodeSize)

	out := ColorCode(raster.FromImage(canvas.ToImage()))
	c.logger.Debug("Composited %s: %dx%d", pipeline.PolicyColorCode, out.Width(), out.Height())
	return out, nil
}

func (c *Compositor) baseCanvas(base, overlay *raster.Raster) (ports.Canvas, error) {
	if err := checkOverlay(overlay); err != nil {
		return nil, err
	}
	if base == nil || base.Empty() {
		return nil, ErrMissingBase
	}

	w, h := overlay.Width(), overlay.Height()
	canvas := c.renderer.CreateCanvas(w, h, nil)
	if base.Width() == w && base.Height() == h {
		canvas.DrawImage(base.Image(), 0, 0)
	} else {
		canvas.DrawImageScaled(base.Image(), 0, 0, w, h)
	}
	return canvas, nil
}

func (c *Compositor) finish(policy pipeline.CompositePolicy, canvas ports.Canvas) *raster.Raster {
	out := raster.FromImage(canvas.ToImage()).Publish()
	c.logger.Debug("Composited %s: %dx%d", policy, out.Width(), out.Height())
	return out
}

func checkOverlay(overlay *raster.Raster) error {
	if overlay == nil || overlay.Empty() {
		return ErrEmptyOverlay
	}
	return nil
}
