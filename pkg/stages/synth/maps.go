package synth

import (
	"image/color"

	"github.com/user/tapestudio/pkg/ports"
	"github.com/user/tapestudio/pkg/raster"
)

// Plastic generates a 1024×1024 glossy plastic texture.
func (s *Synthesizer) Plastic() raster.Texture {
	s.mu.Lock()
	defer s.mu.Unlock()

	const size = 1024
	c := s.renderer.CreateCanvas(size, size, nil)
	c.FillRect(0, 0, size, size, ports.LinearGradient(0, 0, size, size,
		ports.GradientStop{Offset: 0, Color: color.White},
		ports.GradientStop{Offset: 1, Color: color.NRGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}},
	))

	for i := 0; i < 500; i++ {
		x, y := s.upTo(size), s.upTo(size)
		d := s.upTo(2)
		c.FillRect(x, y, d, d, ports.Solid(rgba(255, 255, 255, s.upTo(0.1))))
	}

	return s.finish(raster.FamilyPlastic, c)
}

// RoughnessMap generates a 512×512 mid-gray roughness map with lighter patches.
func (s *Synthesizer) RoughnessMap() raster.Texture {
	s.mu.Lock()
	defer s.mu.Unlock()

	const size = 512
	c := s.renderer.CreateCanvas(size, size, color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff})

	for i := 0; i < 1000; i++ {
		x, y := s.upTo(size), s.upTo(size)
		r := s.between(2, 7)
		v := float64(int(s.between(100, 200)))
		c.FillCircle(x, y, r, ports.Solid(rgb(v, v, v)))
	}

	return s.finish(raster.FamilyRoughness, c)
}

// NormalMap generates a 512×512 tangent-space normal map with subtle bumps.
func (s *Synthesizer) NormalMap() raster.Texture {
	s.mu.Lock()
	defer s.mu.Unlock()

	const size = 512
	c := s.renderer.CreateCanvas(size, size, color.NRGBA{R: 0x80, G: 0x80, B: 0xff, A: 0xff})

	for i := 0; i < 500; i++ {
		x, y := s.upTo(size), s.upTo(size)
		r := s.between(1, 5)
		nr := float64(int(s.between(108, 148)))
		ng := float64(int(s.between(108, 148)))
		nb := float64(int(s.between(215, 255)))
		c.FillCircle(x, y, r, ports.Solid(rgba(nr, ng, nb, 0.5)))
	}

	return s.finish(raster.FamilyNormal, c)
}

// Cardboard generates a 512×512 texture for the roll's cardboard core.
func (s *Synthesizer) Cardboard() raster.Texture {
	s.mu.Lock()
	defer s.mu.Unlock()

	const size = 512
	c := s.renderer.CreateCanvas(size, size, color.NRGBA{R: 0x8b, G: 0x5e, B: 0x34, A: 0xff})

	for i := 0; i < 5000; i++ {
		x, y := s.upTo(size), s.upTo(size)
		c.FillRect(x, y, 1, 1, ports.Solid(rgba(139, 94, 52, s.upTo(0.3))))
	}

	return s.finish(raster.FamilyCardboard, c)
}
