package orchestrator

import (
	"github.com/user/tapestudio/pkg/policy"
	"github.com/user/tapestudio/pkg/raster"
	"github.com/user/tapestudio/pkg/texcache"
)

// Snapshot is a read-only view of the configurator state.
//
// The textures it points to belong to the texture cache and stay valid only
// until the next transition, which may release them. A released raster
// reads as empty; callers that keep pixels longer must Clone them first.
type Snapshot struct {
	ProductType string          `json:"product_type"`
	Material    policy.Material `json:"material"`
	Product     string          `json:"product,omitempty"`
	CustomText  string          `json:"custom_text,omitempty"`
	HasImage    bool            `json:"has_image"`
	Background  string          `json:"background"`
	Source      Source          `json:"source"`
	Transitions int             `json:"transitions"`
	CachedSlots []string        `json:"cached_slots"`

	// SurfaceMap is the texture last handed to the consumer, nil for none.
	SurfaceMap   *raster.Texture `json:"-"`
	// CoreMap is the core texture handed to the consumer.
	CoreMap      *raster.Texture `json:"-"`
	// CoreInnerMap is the color-coded inner core texture.
	CoreInnerMap *raster.Texture `json:"-"`
}

// State returns a snapshot of the current state.
func (o *Orchestrator) State() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshot()
}

// snapshot builds a Snapshot. The caller holds o.mu.
func (o *Orchestrator) snapshot() Snapshot {
	slots := o.cache.Occupied()
	names := make([]string, len(slots))
	for i, s := range slots {
		names[i] = s.String()
	}
	_, uploaded := o.cache.Get(texcache.SlotOriginal)

	return Snapshot{
		ProductType:  o.productType.ID,
		Material:     o.material,
		Product:      o.product,
		CustomText:   o.customText,
		HasImage:     uploaded && o.productType.AllowsTextureUpload,
		Background:   o.background,
		Source:       o.source,
		Transitions:  o.transitions,
		CachedSlots:  names,
		SurfaceMap:   o.surface,
		CoreMap:      o.core,
		CoreInnerMap: o.coreInner,
	}
}

// ProductType returns the active product type descriptor.
func (o *Orchestrator) ProductType() policy.ProductType {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.productType
}
