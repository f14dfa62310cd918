package ports

import (
	"github.com/user/tapestudio/pkg/policy"
	"github.com/user/tapestudio/pkg/raster"
)

// RenderConsumer receives finished surface maps and material parameters.
// It never hands pixels back; rasters it receives are published and read-only.
type RenderConsumer interface {
	// ApplySurfaceMap sets the tape surface map. A nil texture removes the map.
	ApplySurfaceMap(tex *raster.Texture)

	// ApplyCoreMap sets the texture printed on the tape core. A nil texture removes it.
	ApplyCoreMap(tex *raster.Texture)

	// ApplyCoreInnerMap sets the texture on the inside of the core. A nil texture removes it.
	ApplyCoreInnerMap(tex *raster.Texture)

	// ApplyMaterialParameters sets the physical appearance of the tape.
	ApplyMaterialParameters(material policy.Material)

	// SetViewportBackground sets the scene background color.
	SetViewportBackground(colorHex string)
}
