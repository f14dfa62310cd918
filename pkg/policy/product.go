package policy

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownProductType is returned when a product type id is not in the table.
// It indicates a mismatch between the UI and the table, not a user error.
var ErrUnknownProductType = errors.New("policy: unknown product type")

// ErrUnknownProduct is returned when a catalog preset id is not defined.
var ErrUnknownProduct = errors.New("policy: unknown product")

// ColorRestriction limits the colors an uploaded texture may keep.
type ColorRestriction string

const (
	RestrictionNone      ColorRestriction = "none"
	RestrictionBlackOnly ColorRestriction = "black-only"
)

// Geometry holds the tape roll dimensions in scene units.
type Geometry struct {
	OuterRadius float64 `json:"outer_radius" yaml:"outer_radius"`
	CoreRadius  float64 `json:"core_radius" yaml:"core_radius"`
	Thickness   float64 `json:"thickness" yaml:"thickness"`
}

// ProductType describes what a tape product allows the user to customize.
type ProductType struct {
	ID                      string           `json:"id" yaml:"id"`
	DisplayName             string           `json:"display_name" yaml:"display_name"`
	AllowedMaterials        []string         `json:"allowed_materials" yaml:"allowed_materials"`
	AllowsTextureUpload     bool             `json:"allows_texture_upload" yaml:"allows_texture_upload"`
	AllowsCustomText        bool             `json:"allows_custom_text" yaml:"allows_custom_text"`
	TextureColorRestriction ColorRestriction `json:"texture_color_restriction" yaml:"texture_color_restriction"`
	GeometryThickness       float64          `json:"geometry_thickness" yaml:"geometry_thickness"`
	DefaultTransmission     float64          `json:"default_transmission" yaml:"default_transmission"`
	Geometry                Geometry         `json:"geometry" yaml:"geometry"`
}

// DefaultMaterial returns the first allowed material.
func (p ProductType) DefaultMaterial() string {
	if len(p.AllowedMaterials) == 0 {
		return ""
	}
	return p.AllowedMaterials[0]
}

// Allows reports whether materialID is in the allowed list.
func (p ProductType) Allows(materialID string) bool {
	return slices.Contains(p.AllowedMaterials, materialID)
}

// Product type identifiers.
const (
	TypeAdhesive = "adhesive"
	TypeGorilla  = "gorilla"
	TypeEco      = "eco"
	TypeFilament = "filament"
	TypePrinted  = "printed"
)

var rollGeometry = Geometry{OuterRadius: 1.2, CoreRadius: 0.65, Thickness: 0.6}

var productTypeOrder = []string{TypeAdhesive, TypeGorilla, TypeEco, TypeFilament, TypePrinted}

var productTypes = map[string]ProductType{
	TypeAdhesive: {
		DisplayName:             "Adhesiva",
		AllowedMaterials:        []string{MaterialTransparent, MaterialWhite, MaterialCanela},
		AllowsTextureUpload:     true,
		TextureColorRestriction: RestrictionNone,
		GeometryThickness:       0.5,
		DefaultTransmission:     0.45,
		Geometry:                rollGeometry,
	},
	TypeGorilla: {
		DisplayName:             "Gorila",
		AllowedMaterials:        []string{MaterialKraft},
		AllowsTextureUpload:     true,
		TextureColorRestriction: RestrictionNone,
		GeometryThickness:       0.6,
		DefaultTransmission:     0.1,
		Geometry:                rollGeometry,
	},
	TypeEco: {
		DisplayName:             "Ecológica Biodegradable",
		AllowedMaterials:        []string{MaterialKraftEco},
		AllowsTextureUpload:     true,
		TextureColorRestriction: RestrictionBlackOnly,
		GeometryThickness:       0.5,
		DefaultTransmission:     0.1,
		Geometry:                rollGeometry,
	},
	TypeFilament: {
		DisplayName:         "Filamento",
		AllowedMaterials:    []string{MaterialTransparent},
		AllowsTextureUpload: true,
		// Filament overlays keep the uploaded colors, so no black-only normalization.
		TextureColorRestriction: RestrictionNone,
		GeometryThickness:       0.45,
		DefaultTransmission:     0.8,
		Geometry:                rollGeometry,
	},
	TypePrinted: {
		DisplayName:             "Fleje Impreso",
		AllowedMaterials:        []string{MaterialThinTransparent},
		AllowsCustomText:        true,
		TextureColorRestriction: RestrictionNone,
		GeometryThickness:       0.3,
		DefaultTransmission:     0.7,
		Geometry:                Geometry{OuterRadius: 1.2, CoreRadius: 0.9, Thickness: 0.1},
	},
}

// ResolveProductType returns the product type for id.
func ResolveProductType(id string) (ProductType, error) {
	p, ok := productTypes[id]
	if !ok {
		return ProductType{}, fmt.Errorf("%w: %q", ErrUnknownProductType, id)
	}
	p.ID = id
	p.AllowedMaterials = slices.Clone(p.AllowedMaterials)
	return p, nil
}

// MustResolveProductType is like ResolveProductType but panics on unknown ids.
func MustResolveProductType(id string) ProductType {
	p, err := ResolveProductType(id)
	if err != nil {
		panic(err)
	}
	return p
}

// ProductTypes returns all product type ids in display order.
func ProductTypes() []string {
	return slices.Clone(productTypeOrder)
}
