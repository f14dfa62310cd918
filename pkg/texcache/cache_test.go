package texcache

import (
	"testing"

	"github.com/user/tapestudio/pkg/raster"
)

func texture(w, h int) *raster.Texture {
	return &raster.Texture{
		Raster:   raster.New(w, h).Publish(),
		Tiling:   raster.DefaultTiling(),
		Sampling: raster.RepeatSampling(),
	}
}

func TestCache_PutGet(t *testing.T) {
	c := New()
	tex := texture(4, 4)

	if _, ok := c.Get(SlotKraft); ok {
		t.Fatal("expected empty slot")
	}
	c.Put(SlotKraft, tex)

	got, ok := c.Get(SlotKraft)
	if !ok || got != tex {
		t.Fatalf("expected stored texture, got %v", got)
	}
	if c.Refs(tex.Raster) != 1 {
		t.Errorf("expected 1 ref, got %d", c.Refs(tex.Raster))
	}
}

func TestCache_ReplaceReleasesUnreferenced(t *testing.T) {
	c := New()
	var released []uint64
	c.OnRelease = func(r *raster.Raster) { released = append(released, r.ID()) }

	first := texture(4, 4)
	second := texture(4, 4)
	c.Put(SlotComposite, first)
	c.Put(SlotComposite, second)

	if !first.Raster.Released() {
		t.Error("expected replaced raster to be released")
	}
	if second.Raster.Released() {
		t.Error("current raster must not be released")
	}
	if len(released) != 1 || released[0] != first.Raster.ID() {
		t.Errorf("unexpected release callbacks: %v", released)
	}
}

func TestCache_SharedRasterSurvivesUntilLastSlot(t *testing.T) {
	c := New()
	tex := texture(8, 8)

	c.Put(SlotFilament, tex)
	c.Put(SlotComposite, tex)
	if c.Refs(tex.Raster) != 2 {
		t.Fatalf("expected 2 refs, got %d", c.Refs(tex.Raster))
	}

	c.Clear(SlotComposite)
	if tex.Raster.Released() {
		t.Fatal("raster released while still cached in filament slot")
	}

	c.Clear(SlotFilament)
	if !tex.Raster.Released() {
		t.Error("expected raster released after last slot cleared")
	}
	if c.Refs(tex.Raster) != 0 {
		t.Errorf("expected 0 refs, got %d", c.Refs(tex.Raster))
	}
}

func TestCache_PutSameIsNoop(t *testing.T) {
	c := New()
	tex := texture(2, 2)

	c.Put(SlotKraft, tex)
	c.Put(SlotKraft, tex)

	if c.Refs(tex.Raster) != 1 {
		t.Errorf("expected 1 ref, got %d", c.Refs(tex.Raster))
	}
	if tex.Raster.Released() {
		t.Error("re-storing the same texture must not release it")
	}
}

func TestCache_SameRasterDifferentTiling(t *testing.T) {
	c := New()
	base := texture(2, 2)
	tiled := base.WithTiling(raster.Tiling{RepeatX: 6, RepeatY: 1})

	c.Put(SlotOriginal, base)
	c.Put(SlotComposite, &tiled)
	c.Clear(SlotOriginal)

	if base.Raster.Released() {
		t.Error("raster shared through a retiled texture must stay alive")
	}
}

func TestCache_Reset(t *testing.T) {
	c := New()
	a, b := texture(1, 1), texture(1, 1)
	c.Put(SlotKraft, a)
	c.Put(SlotOriginal, b)

	if got := len(c.Occupied()); got != 2 {
		t.Fatalf("expected 2 occupied slots, got %d", got)
	}
	c.Reset()

	if len(c.Occupied()) != 0 {
		t.Error("expected all slots empty")
	}
	if !a.Raster.Released() || !b.Raster.Released() {
		t.Error("expected all rasters released")
	}
}

func TestProceduralSlot(t *testing.T) {
	if s, ok := ProceduralSlot(raster.FamilyEcoKraft); !ok || s != SlotEcoKraft {
		t.Errorf("expected eco-kraft slot, got %v %v", s, ok)
	}
	if _, ok := ProceduralSlot(raster.FamilyPrintedText); ok {
		t.Error("printed text is not cached")
	}
	if s, ok := ProceduralSlot(raster.FamilyCardboard); !ok || s != SlotCardboard {
		t.Errorf("expected cardboard slot, got %v", s)
	}
	if len(Slots()) != 9 {
		t.Errorf("expected 9 slots, got %d", len(Slots()))
	}
	if SlotOriginal.String() != "original" {
		t.Errorf("unexpected slot name %q", SlotOriginal.String())
	}
}
