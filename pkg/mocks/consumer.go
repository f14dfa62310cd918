package mocks

import (
	"sync"

	"github.com/user/tapestudio/pkg/policy"
	"github.com/user/tapestudio/pkg/ports"
	"github.com/user/tapestudio/pkg/raster"
)

// RenderConsumer is a mock implementation of ports.RenderConsumer that
// records what it was handed.
type RenderConsumer struct {
	mu sync.Mutex

	SurfaceMaps []*raster.Texture
	CoreMaps    []*raster.Texture
	InnerMaps   []*raster.Texture
	Materials   []policy.Material
	Backgrounds []string
}

// NewRenderConsumer creates a new mock RenderConsumer.
func NewRenderConsumer() *RenderConsumer {
	return &RenderConsumer{}
}

func (m *RenderConsumer) ApplySurfaceMap(tex *raster.Texture) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SurfaceMaps = append(m.SurfaceMaps, tex)
}

func (m *RenderConsumer) ApplyCoreMap(tex *raster.Texture) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CoreMaps = append(m.CoreMaps, tex)
}

func (m *RenderConsumer) ApplyCoreInnerMap(tex *raster.Texture) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InnerMaps = append(m.InnerMaps, tex)
}

// LastCoreMap returns the most recent core map, or nil.
func (m *RenderConsumer) LastCoreMap() *raster.Texture {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.CoreMaps) == 0 {
		return nil
	}
	return m.CoreMaps[len(m.CoreMaps)-1]
}

func (m *RenderConsumer) ApplyMaterialParameters(material policy.Material) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Materials = append(m.Materials, material)
}

func (m *RenderConsumer) SetViewportBackground(colorHex string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Backgrounds = append(m.Backgrounds, colorHex)
}

// LastSurfaceMap returns the most recent surface map and whether one was applied at all.
func (m *RenderConsumer) LastSurfaceMap() (*raster.Texture, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SurfaceMaps) == 0 {
		return nil, false
	}
	return m.SurfaceMaps[len(m.SurfaceMaps)-1], true
}

// LastMaterial returns the most recent material parameters.
func (m *RenderConsumer) LastMaterial() policy.Material {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Materials) == 0 {
		return policy.Material{}
	}
	return m.Materials[len(m.Materials)-1]
}

// LastBackground returns the most recent background color.
func (m *RenderConsumer) LastBackground() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Backgrounds) == 0 {
		return ""
	}
	return m.Backgrounds[len(m.Backgrounds)-1]
}

var _ ports.RenderConsumer = (*RenderConsumer)(nil)
