// Package synth implements procedural texture synthesis.
package synth

import (
	"context"
	"fmt"
	"image/color"
	"math/rand/v2"
	"sync"

	"github.com/user/tapestudio/pkg/pipeline"
	"github.com/user/tapestudio/pkg/ports"
	"github.com/user/tapestudio/pkg/raster"
)

// Synthesizer draws procedural material textures on a ports.Canvas.
//
// Output is visually equivalent across runs but not bit-identical unless the
// synthesizer is built with a fixed-seed source.
type Synthesizer struct {
	renderer ports.Renderer
	logger   ports.Logger

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// New creates a synthesizer. A nil rng uses an unseeded PCG source.
func New(renderer ports.Renderer, rng *rand.Rand, logger ports.Logger) *Synthesizer {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Synthesizer{
		renderer: renderer,
		rng:      rng,
		logger:   logger.WithComponent("synth"),
	}
}

// NewSeeded creates a synthesizer whose output is reproducible for seed.
func NewSeeded(renderer ports.Renderer, seed uint64, logger ports.Logger) *Synthesizer {
	return New(renderer, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), logger)
}

// Execute generates the family named by input.
func (s *Synthesizer) Execute(ctx context.Context, input pipeline.SynthInput) (pipeline.SynthResult, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.SynthResult{}, err
	}

	var tex raster.Texture
	switch input.Family {
	case raster.FamilyKraft:
		tex = s.Kraft()
	case raster.FamilyEcoKraft:
		tex = s.EcoKraft()
	case raster.FamilyFilament:
		tex = s.Filament()
	case raster.FamilyStrappingBase:
		tex = s.StrappingBase()
	case raster.FamilyPrintedText:
		tex = s.PrintedText(input.Text)
	case raster.FamilyPlastic:
		tex = s.Plastic()
	case raster.FamilyRoughness:
		tex = s.RoughnessMap()
	case raster.FamilyNormal:
		tex = s.NormalMap()
	case raster.FamilyCardboard:
		tex = s.Cardboard()
	default:
		return pipeline.SynthResult{}, fmt.Errorf("synth: unknown family %q", input.Family)
	}
	return pipeline.SynthResult{Texture: tex}, nil
}

// Ensure Synthesizer implements the synth stage
var _ pipeline.Stage[pipeline.SynthInput, pipeline.SynthResult] = (*Synthesizer)(nil)

// finish publishes the canvas pixels as a repeating texture.
func (s *Synthesizer) finish(family raster.Family, canvas ports.Canvas) raster.Texture {
	r := raster.FromImage(canvas.ToImage()).Publish()
	s.logger.Debug("Generated %s texture: %dx%d", family, r.Width(), r.Height())
	return raster.Texture{
		Raster:   r,
		Tiling:   raster.DefaultTiling(),
		Sampling: raster.RepeatSampling(),
	}
}

// between returns a uniform float in [lo, hi).
func (s *Synthesizer) between(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// upTo returns a uniform float in [0, hi).
func (s *Synthesizer) upTo(hi float64) float64 {
	return s.rng.Float64() * hi
}

// rgba builds a straight-alpha color from float channels, clamping each to range.
func rgba(r, g, b, a float64) color.NRGBA {
	return color.NRGBA{R: channel(r), G: channel(g), B: channel(b), A: channel(a * 255)}
}

func rgb(r, g, b float64) color.NRGBA {
	return rgba(r, g, b, 1)
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}
