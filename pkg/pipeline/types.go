package pipeline

import (
	"image"
	"image/color"

	"github.com/user/tapestudio/pkg/policy"
	"github.com/user/tapestudio/pkg/raster"
)

// =============================================================================
// Synth Stage Types
// =============================================================================

// SynthInput selects the procedural family to generate.
type SynthInput struct {
	Family raster.Family
	Text   string // only used by raster.FamilyPrintedText
}

// SynthResult contains the generated texture.
type SynthResult struct {
	Texture raster.Texture
}

// =============================================================================
// Composite Stage Types
// =============================================================================

// CompositePolicy names how an uploaded overlay is combined with its base.
type CompositePolicy int

const (
	// PolicyTintAndMask fills with the tint and draws the overlay as a black mark.
	PolicyTintAndMask CompositePolicy = iota
	// PolicyOverlayOnProceduralBase draws the overlay as a black mark over a procedural base.
	PolicyOverlayOnProceduralBase
	// PolicyOverlayFullColor draws the overlay unmodified over a procedural base.
	PolicyOverlayFullColor
	// PolicyColorCode flattens the overlay onto white and recolors dark pixels
	// blue and mid grays red. Used for the inner core map.
	PolicyColorCode
)

// String returns the policy name.
func (p CompositePolicy) String() string {
	switch p {
	case PolicyTintAndMask:
		return "tint-and-mask"
	case PolicyOverlayOnProceduralBase:
		return "overlay-on-procedural-base"
	case PolicyOverlayFullColor:
		return "overlay-full-color"
	case PolicyColorCode:
		return "color-code"
	default:
		return "unknown"
	}
}

// CompositeInput contains the rasters to combine.
type CompositeInput struct {
	Policy  CompositePolicy
	Base    *raster.Raster // procedural base; unused by PolicyTintAndMask
	Overlay *raster.Raster
	Tint    color.Color // only used by PolicyTintAndMask
}

// CompositeResult contains the combined raster, sized to the overlay except
// for PolicyColorCode.
type CompositeResult struct {
	Raster *raster.Raster
}

// =============================================================================
// Card Stage Types
// =============================================================================

// CardInput contains the configuration shown on a product card.
type CardInput struct {
	Width       int
	Product     *policy.Product // optional catalog preset
	ProductType policy.ProductType
	Material    policy.Material
	CustomText  string
	SurfaceMap  image.Image // optional swatch
	Background  string
}

// CardResult contains the captured product card.
type CardResult struct {
	Image image.Image
}
