// Package policy holds the static material and product-type tables.
package policy

// Material is the physical appearance of a tape surface.
// Optional sheen fields are nil when the material has no sheen layer.
type Material struct {
	ID                 string   `json:"id" yaml:"id"`
	ColorHex           string   `json:"color" yaml:"color"`
	Transmission       float64  `json:"transmission" yaml:"transmission"`
	Roughness          float64  `json:"roughness" yaml:"roughness"`
	IOR                float64  `json:"ior" yaml:"ior"`
	Thickness          float64  `json:"thickness" yaml:"thickness"`
	Clearcoat          float64  `json:"clearcoat" yaml:"clearcoat"`
	ClearcoatRoughness float64  `json:"clearcoat_roughness" yaml:"clearcoat_roughness"`
	Opacity            float64  `json:"opacity" yaml:"opacity"`
	Sheen              *float64 `json:"sheen,omitempty" yaml:"sheen,omitempty"`
	SheenRoughness     *float64 `json:"sheen_roughness,omitempty" yaml:"sheen_roughness,omitempty"`
	SheenColor         *string  `json:"sheen_color,omitempty" yaml:"sheen_color,omitempty"`
}

// Transparent reports whether the renderer must enable alpha blending.
func (m Material) Transparent() bool {
	return m.Opacity < 1
}

// HasSheen reports whether the material defines a sheen layer.
func (m Material) HasSheen() bool {
	return m.Sheen != nil
}

// Material identifiers.
const (
	MaterialTransparent     = "transparente"
	MaterialWhite           = "blanca"
	MaterialCanela          = "canela"
	MaterialKraft           = "kraft"
	MaterialKraftEco        = "kraft-eco"
	MaterialThinTransparent = "transparente-delgada"
)

// DefaultMaterial is returned for unknown material identifiers.
var DefaultMaterial = Material{
	ID:                 "",
	ColorHex:           "#c49a6c",
	Transmission:       0.3,
	Roughness:          0.2,
	IOR:                1.42,
	Thickness:          1.0,
	Clearcoat:          0.7,
	ClearcoatRoughness: 0.1,
	Opacity:            1,
}

var materialOrder = []string{
	MaterialTransparent,
	MaterialWhite,
	MaterialCanela,
	MaterialKraft,
	MaterialKraftEco,
	MaterialThinTransparent,
}

var materials = map[string]Material{
	MaterialTransparent: {
		ColorHex:           "#ffffff",
		Transmission:       0.0,
		Roughness:          0.08,
		IOR:                1.45,
		Thickness:          1.5,
		Clearcoat:          0.95,
		ClearcoatRoughness: 0.03,
		Opacity:            0.4,
	},
	MaterialWhite: {
		ColorHex:           "#f8f8f8",
		Transmission:       0.05,
		Roughness:          0.25,
		IOR:                1.4,
		Thickness:          0.8,
		Clearcoat:          0.6,
		ClearcoatRoughness: 0.15,
		Opacity:            1,
	},
	MaterialCanela: {
		ColorHex:           "#c49a6c",
		Transmission:       0.25,
		Roughness:          0.2,
		IOR:                1.42,
		Thickness:          1.0,
		Clearcoat:          0.7,
		ClearcoatRoughness: 0.1,
		Opacity:            1,
	},
	MaterialKraft: {
		ColorHex:           "#b89968",
		Transmission:       0.0,
		Roughness:          0.85,
		IOR:                1.38,
		Thickness:          0.5,
		Clearcoat:          0.05,
		ClearcoatRoughness: 0.9,
		Opacity:            1,
	},
	MaterialKraftEco: {
		ColorHex:           "#9d7f4e",
		Transmission:       0.0,
		Roughness:          0.95,
		IOR:                1.35,
		Thickness:          0.5,
		Clearcoat:          0.0,
		ClearcoatRoughness: 1.0,
		Opacity:            1,
	},
	MaterialThinTransparent: {
		ColorHex:           "#f5f5f5",
		Transmission:       0.0,
		Roughness:          0.45,
		IOR:                1.49,
		Thickness:          0.3,
		Clearcoat:          0.35,
		ClearcoatRoughness: 0.25,
		Opacity:            1,
		Sheen:              float(0.2),
		SheenRoughness:     float(0.6),
		SheenColor:         str("#ffffff"),
	},
}

// Resolve returns the material for id. Unknown ids resolve to DefaultMaterial
// and never fail.
func Resolve(id string) Material {
	m, ok := Lookup(id)
	if !ok {
		m = DefaultMaterial
		m.ID = id
	}
	return m
}

// Lookup returns the material for id and whether it is defined.
func Lookup(id string) (Material, bool) {
	m, ok := materials[id]
	if !ok {
		return Material{}, false
	}
	m.ID = id
	if m.Opacity == 0 {
		m.Opacity = 1
	}
	// Pointer fields are copied so callers cannot edit the table.
	if m.Sheen != nil {
		m.Sheen = float(*m.Sheen)
	}
	if m.SheenRoughness != nil {
		m.SheenRoughness = float(*m.SheenRoughness)
	}
	if m.SheenColor != nil {
		m.SheenColor = str(*m.SheenColor)
	}
	return m, true
}

// Materials returns all defined material ids in display order.
func Materials() []string {
	out := make([]string, len(materialOrder))
	copy(out, materialOrder)
	return out
}

func float(v float64) *float64 {
	return &v
}

func str(v string) *string {
	return &v
}
