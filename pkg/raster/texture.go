package raster

import "fmt"

// WrapMode controls how texture coordinates outside [0,1] are resolved.
type WrapMode int

const (
	// WrapClamp clamps coordinates to the edge texel.
	WrapClamp WrapMode = iota
	// WrapRepeat tiles the texture.
	WrapRepeat
)

// String returns the string representation of the wrap mode.
func (w WrapMode) String() string {
	switch w {
	case WrapClamp:
		return "clamp"
	case WrapRepeat:
		return "repeat"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (w WrapMode) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *WrapMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "clamp":
		*w = WrapClamp
	case "repeat":
		*w = WrapRepeat
	default:
		return fmt.Errorf("unknown wrap mode %q", text)
	}
	return nil
}

// AnisotropyMax asks the renderer for the highest anisotropic filtering level it supports.
const AnisotropyMax = 16

// Tiling describes how many times a texture repeats across the surface UVs.
type Tiling struct {
	RepeatX float64 `json:"repeat_x" yaml:"repeat_x"`
	RepeatY float64 `json:"repeat_y" yaml:"repeat_y"`
}

// DefaultTiling maps the texture once over the surface.
func DefaultTiling() Tiling {
	return Tiling{RepeatX: 1, RepeatY: 1}
}

// Validate checks that both repeat factors are positive.
func (t Tiling) Validate() error {
	if t.RepeatX <= 0 || t.RepeatY <= 0 {
		return fmt.Errorf("raster: tiling must be positive, got %gx%g", t.RepeatX, t.RepeatY)
	}
	return nil
}

// Sampling holds the sampler hints attached to a texture.
type Sampling struct {
	WrapS      WrapMode `json:"wrap_s"`
	WrapT      WrapMode `json:"wrap_t"`
	Anisotropy int      `json:"anisotropy"` // 0 means renderer default
}

// RepeatSampling wraps both axes with maximum anisotropic filtering.
func RepeatSampling() Sampling {
	return Sampling{WrapS: WrapRepeat, WrapT: WrapRepeat, Anisotropy: AnisotropyMax}
}

// Texture is a raster plus the metadata a renderer needs to map it.
type Texture struct {
	Raster   *Raster
	Tiling   Tiling
	Sampling Sampling
}

// Width returns the raster width, or 0 for an empty texture.
func (t Texture) Width() int {
	if t.Raster == nil {
		return 0
	}
	return t.Raster.Width()
}

// Height returns the raster height, or 0 for an empty texture.
func (t Texture) Height() int {
	if t.Raster == nil {
		return 0
	}
	return t.Raster.Height()
}

// WithTiling returns a copy of t with the given tiling. The raster is shared.
func (t Texture) WithTiling(tiling Tiling) Texture {
	t.Tiling = tiling
	return t
}

// Family identifies a procedural texture family.
type Family string

const (
	FamilyKraft         Family = "kraft"
	FamilyEcoKraft      Family = "eco-kraft"
	FamilyFilament      Family = "filament"
	FamilyStrappingBase Family = "strapping-base"
	FamilyPrintedText   Family = "printed-text"
	FamilyPlastic       Family = "plastic"
	FamilyRoughness     Family = "roughness"
	FamilyNormal        Family = "normal"
	FamilyCardboard     Family = "cardboard"
)

// Families lists every procedural family in generation order.
func Families() []Family {
	return []Family{
		FamilyKraft,
		FamilyEcoKraft,
		FamilyFilament,
		FamilyStrappingBase,
		FamilyPrintedText,
		FamilyPlastic,
		FamilyRoughness,
		FamilyNormal,
		FamilyCardboard,
	}
}
