// Package texcache holds the rasters currently in use by the configurator.
package texcache

import (
	"fmt"

	"github.com/user/tapestudio/pkg/raster"
)

// Slot names a cache entry.
type Slot int

const (
	SlotKraft Slot = iota
	SlotEcoKraft
	SlotFilament
	SlotStrappingBase
	SlotOriginal
	SlotComposite
	SlotCardboard
	// SlotCore holds the outer core map: cardboard or the upload at core repeat.
	SlotCore
	// SlotCoreInner holds the color-coded inner core map.
	SlotCoreInner
	numSlots
)

// String returns the slot name.
func (s Slot) String() string {
	switch s {
	case SlotKraft:
		return "kraft"
	case SlotEcoKraft:
		return "eco-kraft"
	case SlotFilament:
		return "filament"
	case SlotStrappingBase:
		return "strapping-base"
	case SlotOriginal:
		return "original"
	case SlotComposite:
		return "composite"
	case SlotCardboard:
		return "cardboard"
	case SlotCore:
		return "core"
	case SlotCoreInner:
		return "core-inner"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// Slots returns every slot in declaration order.
func Slots() []Slot {
	out := make([]Slot, 0, numSlots)
	for s := Slot(0); s < numSlots; s++ {
		out = append(out, s)
	}
	return out
}

// ProceduralSlot returns the slot caching a procedural family.
func ProceduralSlot(f raster.Family) (Slot, bool) {
	switch f {
	case raster.FamilyKraft:
		return SlotKraft, true
	case raster.FamilyEcoKraft:
		return SlotEcoKraft, true
	case raster.FamilyFilament:
		return SlotFilament, true
	case raster.FamilyStrappingBase:
		return SlotStrappingBase, true
	case raster.FamilyCardboard:
		return SlotCardboard, true
	default:
		return 0, false
	}
}

// Cache maps slots to textures. A raster may sit in several slots at once
// and is released only when the last slot referencing it lets go.
//
// Cache is not safe for concurrent use; its owner serializes access.
type Cache struct {
	slots [numSlots]*raster.Texture
	refs  map[uint64]int

	// OnRelease, if set, is called after a raster is released.
	OnRelease func(r *raster.Raster)
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{refs: make(map[uint64]int)}
}

// Get returns the texture in slot, if any.
func (c *Cache) Get(slot Slot) (*raster.Texture, bool) {
	if !valid(slot) {
		return nil, false
	}
	t := c.slots[slot]
	return t, t != nil
}

// Put stores tex in slot, releasing whatever the slot held if nothing else
// references it. Storing the texture already in the slot is a no-op.
func (c *Cache) Put(slot Slot, tex *raster.Texture) {
	if !valid(slot) {
		return
	}
	old := c.slots[slot]
	if old == tex {
		return
	}
	if tex != nil && tex.Raster != nil {
		c.refs[tex.Raster.ID()]++
	}
	c.slots[slot] = tex
	c.unref(old)
}

// Clear empties slot.
func (c *Cache) Clear(slot Slot) {
	c.Put(slot, nil)
}

// Reset empties every slot.
func (c *Cache) Reset() {
	for s := Slot(0); s < numSlots; s++ {
		c.Clear(s)
	}
}

// Refs returns how many slots reference r.
func (c *Cache) Refs(r *raster.Raster) int {
	if r == nil {
		return 0
	}
	return c.refs[r.ID()]
}

// Occupied returns the slots that currently hold a texture.
func (c *Cache) Occupied() []Slot {
	var out []Slot
	for s := Slot(0); s < numSlots; s++ {
		if c.slots[s] != nil {
			out = append(out, s)
		}
	}
	return out
}

func (c *Cache) unref(tex *raster.Texture) {
	if tex == nil || tex.Raster == nil {
		return
	}
	id := tex.Raster.ID()
	c.refs[id]--
	if c.refs[id] > 0 {
		return
	}
	delete(c.refs, id)
	tex.Raster.Release()
	if c.OnRelease != nil {
		c.OnRelease(tex.Raster)
	}
}

func valid(slot Slot) bool {
	return slot >= 0 && slot < numSlots
}
