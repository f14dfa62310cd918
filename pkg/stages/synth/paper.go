package synth

import (
	"image"
	"math"

	"github.com/user/tapestudio/pkg/ports"
	"github.com/user/tapestudio/pkg/raster"
)

const paperSize = 2048

// Kraft base color.
const (
	kraftR = 184
	kraftG = 153
	kraftB = 104
)

// Eco-kraft (recycled board) base color, #9d7f4e.
const (
	ecoR = 157
	ecoG = 127
	ecoB = 78
)

// Kraft generates a 2048×2048 kraft paper texture.
func (s *Synthesizer) Kraft() raster.Texture {
	s.mu.Lock()
	defer s.mu.Unlock()

	const size = paperSize
	c := s.renderer.CreateCanvas(size, size, nil)

	c.FillRect(0, 0, size, size, ports.LinearGradient(0, 0, size, size,
		ports.GradientStop{Offset: 0, Color: rgb(kraftR+5, kraftG+5, kraftB+5)},
		ports.GradientStop{Offset: 0.5, Color: rgb(kraftR, kraftG, kraftB)},
		ports.GradientStop{Offset: 1, Color: rgb(kraftR-5, kraftG-5, kraftB-5)},
	))

	// Fine grain.
	for i := 0; i < 20000; i++ {
		x, y := s.upTo(size), s.upTo(size)
		v := s.between(-15, 15)
		a := s.between(0.1, 0.5)
		c.FillRect(x, y, 1, 1, ports.Solid(rgba(kraftR+v, kraftG+v, kraftB+v, a)))
	}

	// Horizontal fibers reach in from both edges.
	for i := 0; i < 400; i++ {
		y := s.upTo(size)
		x1 := s.upTo(200)
		x2 := s.between(size-200, size)
		c.StrokeLine(x1, y, x2, y, rgba(0, 0, 0, s.upTo(0.05)), 0.5)
	}

	for i := 0; i < 200; i++ {
		x := s.upTo(size)
		y1 := s.upTo(200)
		y2 := s.between(size-200, size)
		c.StrokeLine(x, y1, x, y2, rgba(0, 0, 0, s.upTo(0.03)), 0.5)
	}

	// Dark blotches.
	for i := 0; i < 150; i++ {
		x, y := s.upTo(size), s.upTo(size)
		r := s.between(10, 40)
		d := s.upTo(40)
		a := s.between(0.05, 0.2)
		c.FillCircle(x, y, r, ports.RadialGradient(x, y, r,
			ports.GradientStop{Offset: 0, Color: rgba(kraftR-d, kraftG-d, kraftB-d, a)},
			ports.GradientStop{Offset: 1, Color: rgba(kraftR-d, kraftG-d, kraftB-d, 0)},
		))
	}

	// Worn, lighter areas.
	for i := 0; i < 80; i++ {
		x, y := s.upTo(size), s.upTo(size)
		r := s.between(15, 55)
		b := s.upTo(20)
		a := s.between(0.03, 0.13)
		c.FillCircle(x, y, r, ports.RadialGradient(x, y, r,
			ports.GradientStop{Offset: 0, Color: rgba(kraftR+b, kraftG+b, kraftB+b, a)},
			ports.GradientStop{Offset: 1, Color: rgba(kraftR+b, kraftG+b, kraftB+b, 0)},
		))
	}

	for i := 0; i < 500; i++ {
		x, y := s.upTo(size), s.upTo(size)
		r := s.between(1, 5)
		v := s.between(-10, 10)
		c.FillCircle(x, y, r, ports.Solid(rgba(kraftR+v, kraftG+v, kraftB+v, s.upTo(0.2))))
	}

	return s.finish(raster.FamilyKraft, c)
}

// EcoKraft generates a 2048×2048 recycled board texture with visible wood fibers.
func (s *Synthesizer) EcoKraft() raster.Texture {
	s.mu.Lock()
	defer s.mu.Unlock()

	const size = paperSize
	c := s.renderer.CreateCanvas(size, size, nil)

	// Base color jitter in 4×4 blocks.
	c.DrawImage(s.blockNoise(size, 4, 15), 0, 0)

	fiber := func(count int, width, minLen, maxLen, minDark, maxDark, minAlpha, maxAlpha float64) {
		for i := 0; i < count; i++ {
			x, y := s.upTo(size), s.upTo(size)
			length := s.between(minLen, maxLen)
			angle := s.upTo(math.Pi)
			d := s.between(minDark, maxDark)
			a := s.between(minAlpha, maxAlpha)
			c.StrokeLine(x, y, x+math.Cos(angle)*length, y+math.Sin(angle)*length,
				rgba(ecoR-d, ecoG-d, ecoB-d, a), width)
		}
	}
	fiber(300, 2, 40, 120, 20, 80, 0.2, 0.5)
	fiber(600, 1, 20, 60, 10, 50, 0.1, 0.35)

	// Wood particles.
	for i := 0; i < 2000; i++ {
		x, y := s.upTo(size), s.upTo(size)
		r := s.between(0.5, 3.5)
		d := s.between(30, 110)
		a := s.between(0.3, 0.7)
		c.FillCircle(x, y, r, ports.Solid(rgba(ecoR-d, ecoG-d, ecoB-d, a)))
	}

	// Impurities.
	for i := 0; i < 200; i++ {
		x, y := s.upTo(size), s.upTo(size)
		r := s.between(30, 90)
		d := s.between(20, 70)
		a := s.between(0.1, 0.3)
		c.FillCircle(x, y, r, ports.RadialGradient(x, y, r,
			ports.GradientStop{Offset: 0, Color: rgba(ecoR-d, ecoG-d, ecoB-d, a)},
			ports.GradientStop{Offset: 0.5, Color: rgba(ecoR-d/2, ecoG-d/2, ecoB-d/2, a/2)},
			ports.GradientStop{Offset: 1, Color: rgba(ecoR, ecoG, ecoB, 0)},
		))
	}

	for i := 0; i < 150; i++ {
		x, y := s.upTo(size), s.upTo(size)
		r := s.between(20, 70)
		b := s.between(10, 40)
		a := s.between(0.05, 0.2)
		c.FillCircle(x, y, r, ports.RadialGradient(x, y, r,
			ports.GradientStop{Offset: 0, Color: rgba(ecoR+b, ecoG+b, ecoB+b, a)},
			ports.GradientStop{Offset: 1, Color: rgba(ecoR+b, ecoG+b, ecoB+b, 0)},
		))
	}

	// Coarse grain.
	for i := 0; i < 15000; i++ {
		x, y := s.upTo(size), s.upTo(size)
		v := s.between(-20, 20)
		a := s.upTo(0.3)
		w, h := s.between(1, 3), s.between(1, 3)
		c.FillRect(x, y, w, h, ports.Solid(rgba(ecoR+v, ecoG+v, ecoB+v, a)))
	}

	// Pressed layers.
	for i := 0; i < 50; i++ {
		y := s.upTo(size)
		d := s.upTo(30)
		a := s.between(0.02, 0.1)
		pts := make([]ports.Point, 0, size/20+2)
		pts = append(pts, ports.Pt(0, y))
		for x := 0.0; x < size; x += 20 {
			pts = append(pts, ports.Pt(x, y+math.Sin(x*0.01)*3))
		}
		c.StrokePolyline(pts, rgba(ecoR-d, ecoG-d, ecoB-d, a), 1)
	}

	// Wrinkles.
	for i := 0; i < 100; i++ {
		x, y := s.upTo(size), s.upTo(size)
		w := s.between(50, 150)
		h := s.between(1, 4)
		angle := s.upTo(math.Pi)
		d := s.upTo(40)
		a := s.between(0.05, 0.2)
		c.FillRotatedRect(x, y, w, h, angle, ports.Solid(rgba(ecoR-d, ecoG-d, ecoB-d, a)))
	}

	return s.finish(raster.FamilyEcoKraft, c)
}

// blockNoise returns an opaque size×size image of eco base color blocks,
// each block jittered by up to ±jitter levels.
func (s *Synthesizer) blockNoise(size, block int, jitter float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for by := 0; by < size; by += block {
		for bx := 0; bx < size; bx += block {
			v := s.between(-jitter, jitter)
			col := rgb(ecoR+v, ecoG+v, ecoB+v)
			for y := by; y < by+block && y < size; y++ {
				off := img.PixOffset(bx, y)
				for x := bx; x < bx+block && x < size; x++ {
					img.Pix[off] = col.R
					img.Pix[off+1] = col.G
					img.Pix[off+2] = col.B
					img.Pix[off+3] = col.A
					off += 4
				}
			}
		}
	}
	return img
}
