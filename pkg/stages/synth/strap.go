package synth

import (
	"image/color"
	"math"
	"strings"

	"github.com/user/tapestudio/pkg/ports"
	"github.com/user/tapestudio/pkg/raster"
)

const (
	filamentSize  = 1024
	strappingSize = 1024

	printedWidth  = 2048
	printedHeight = 512

	// PrintedFontSize is the printed text size in pixels.
	PrintedFontSize = 56
	// PrintedSpacing is the gap between text repetitions in pixels.
	PrintedSpacing = 100
)

var strapBackground = color.NRGBA{R: 0xf8, G: 0xf8, B: 0xf8, A: 0xff}

// Filament generates a 1024×1024 texture of embedded horizontal reinforcement strands.
func (s *Synthesizer) Filament() raster.Texture {
	s.mu.Lock()
	defer s.mu.Unlock()

	const size = filamentSize
	c := s.renderer.CreateCanvas(size, size, nil)
	c.FillRect(0, 0, size, size, ports.Solid(rgba(255, 255, 255, 0.02)))

	const (
		strands = 30
		opacity = 0.85
	)
	spacing := float64(size) / strands
	for i := 0; i < strands; i++ {
		y := float64(i) * spacing
		h := s.between(3, 5)

		pts := make([]ports.Point, 0, 2*(size/10)+6)
		pts = append(pts, ports.Pt(0, y))
		for x := 0.0; x < size; x += 10 {
			pts = append(pts, ports.Pt(x, y+wave(x)))
		}
		pts = append(pts, ports.Pt(size, y), ports.Pt(size, y+h))
		for x := float64(size); x >= 0; x -= 10 {
			pts = append(pts, ports.Pt(x, y+h+wave(x)))
		}

		c.FillPolygon(pts, ports.LinearGradient(0, y, 0, y+h,
			ports.GradientStop{Offset: 0, Color: rgba(255, 255, 255, opacity*0.7)},
			ports.GradientStop{Offset: 0.5, Color: rgba(255, 255, 255, opacity)},
			ports.GradientStop{Offset: 1, Color: rgba(255, 255, 255, opacity*0.7)},
		))
	}

	// Weave.
	for i := 0; i < 6; i++ {
		x := s.upTo(size)
		w := s.between(1, 1.5)
		a := s.between(0.04, 0.08)
		c.FillRect(x, 0, w, size, ports.Solid(rgba(255, 255, 255, a)))
	}

	// Adhesive speckle.
	for i := 0; i < 500; i++ {
		x, y := s.upTo(size), s.upTo(size)
		r := s.upTo(1.5)
		c.FillCircle(x, y, r, ports.Solid(rgba(255, 255, 255, s.upTo(0.03))))
	}

	return s.finish(raster.FamilyFilament, c)
}

func wave(x float64) float64 {
	return math.Sin(x*0.03) * 0.3
}

// StrappingBase generates a 1024×1024 polypropylene crosshatch texture.
func (s *Synthesizer) StrappingBase() raster.Texture {
	s.mu.Lock()
	defer s.mu.Unlock()

	const size = strappingSize
	c := s.renderer.CreateCanvas(size, size, strapBackground)

	crosshatch(c, size, 25, rgba(200, 200, 200, 0.6), 2)
	crosshatch(c, size, 50, rgba(180, 180, 180, 0.3), 1)

	for i := 0; i < 1000; i++ {
		x, y := s.upTo(size), s.upTo(size)
		r := s.upTo(1.5)
		c.FillCircle(x, y, r, ports.Solid(rgba(220, 220, 220, s.upTo(0.08))))
	}

	return s.finish(raster.FamilyStrappingBase, c)
}

// PrintedText generates a 2048×512 strap texture with text repeated across
// the full width. Blank text yields the crosshatch background only.
func (s *Synthesizer) PrintedText(text string) raster.Texture {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.renderer.CreateCanvas(printedWidth, printedHeight, strapBackground)
	crosshatch(c, printedHeight, 20, rgba(200, 200, 200, 0.5), 1.5)

	if strings.TrimSpace(text) == "" {
		s.logger.Debug("Blank printed text, rendering background only")
		return s.finish(raster.FamilyPrintedText, c)
	}

	style := ports.TextStyle{
		FontSize: PrintedFontSize,
		Bold:     true,
		Color:    color.Black,
		Align:    ports.AlignLeft,
		Baseline: ports.BaselineMiddle,
	}
	w, _ := c.MeasureText(text, style)
	step := w + PrintedSpacing
	for i, n := 0, Repetitions(w); i < n; i++ {
		c.DrawText(text, float64(i)*step, printedHeight/2, style)
	}

	return s.finish(raster.FamilyPrintedText, c)
}

// Repetitions returns how many copies of text measuring textWidth pixels are
// drawn: enough to span the printed canvas plus two.
func Repetitions(textWidth float64) int {
	return int(math.Ceil(printedWidth/(textWidth+PrintedSpacing))) + 2
}

// crosshatch strokes both diagonal directions at the given pitch over a canvas
// whose diagonals span span pixels vertically.
func crosshatch(c ports.Canvas, span int, pitch int, col color.Color, width float64) {
	d := float64(span)
	for i := -span; i < c.Width()+span; i += pitch {
		x := float64(i)
		c.StrokeLine(x, 0, x+d, d, col, width)
		c.StrokeLine(x, 0, x-d, d, col, width)
	}
}
