// Package summarizer produces human-readable summaries of a tape configuration.
package summarizer

import (
	"time"

	"github.com/user/tapestudio/pkg/policy"
)

// Summary contains everything known about a rendered configuration.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	Product   ProductInfo
	Material  policy.Material
	Selection SelectionInfo
	Surface   TextureInfo
	Core      TextureInfo
	Session   SessionInfo
}

// ProductInfo describes the product type and optional catalog preset.
type ProductInfo struct {
	TypeID   string
	TypeName string
	Geometry policy.Geometry

	// Catalog preset, empty when the configuration was assembled by hand.
	PresetID string
	Name     string
	Price    string
}

// SelectionInfo contains the user's choices beyond product and material.
type SelectionInfo struct {
	CustomText string
	HasImage   bool
	Background string
}

// TextureInfo describes a written texture. A zero Width means none.
type TextureInfo struct {
	Source   string
	File     string
	Width    int
	Height   int
	RepeatX  float64
	RepeatY  float64
	FileSize int64
}

// SessionInfo contains state machine statistics.
type SessionInfo struct {
	Transitions int
	CachedSlots []string
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithProductType sets the product type.
func (b *Builder) WithProductType(pt policy.ProductType) *Builder {
	b.summary.Product.TypeID = pt.ID
	b.summary.Product.TypeName = pt.DisplayName
	b.summary.Product.Geometry = pt.Geometry
	return b
}

// WithPreset sets the catalog preset. A nil preset is ignored.
func (b *Builder) WithPreset(p *policy.Product) *Builder {
	if p == nil {
		return b
	}
	b.summary.Product.PresetID = p.ID
	b.summary.Product.Name = p.Name
	b.summary.Product.Price = p.Price()
	return b
}

// WithMaterial sets the material parameters.
func (b *Builder) WithMaterial(m policy.Material) *Builder {
	b.summary.Material = m
	return b
}

// WithSelection sets custom text, upload presence and background.
func (b *Builder) WithSelection(customText string, hasImage bool, background string) *Builder {
	b.summary.Selection = SelectionInfo{
		CustomText: customText,
		HasImage:   hasImage,
		Background: background,
	}
	return b
}

// WithSurface sets the surface map details.
func (b *Builder) WithSurface(info TextureInfo) *Builder {
	b.summary.Surface = info
	return b
}

// WithCore sets the core texture details.
func (b *Builder) WithCore(info TextureInfo) *Builder {
	b.summary.Core = info
	return b
}

// WithSession sets state machine statistics.
func (b *Builder) WithSession(transitions int, cachedSlots []string) *Builder {
	b.summary.Session = SessionInfo{
		Transitions: transitions,
		CachedSlots: cachedSlots,
	}
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
