package raster

import (
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	r := New(20, 10)

	if r.Width() != 20 || r.Height() != 10 {
		t.Errorf("expected 20x10, got %dx%d", r.Width(), r.Height())
	}
	if r.At(5, 5) != (color.NRGBA{}) {
		t.Error("expected new raster to be transparent")
	}
	if r.Published() {
		t.Error("expected new raster to be unpublished")
	}
}

func TestNew_UniqueIDs(t *testing.T) {
	a := New(1, 1)
	b := New(1, 1)

	if a.ID() == b.ID() {
		t.Errorf("expected distinct ids, both were %d", a.ID())
	}
}

func TestFromImage_NormalizesOrigin(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 10, 14, 13))
	src.SetNRGBA(10, 10, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	r := FromImage(src)

	if r.Bounds().Min != (image.Point{}) {
		t.Errorf("expected origin (0,0), got %v", r.Bounds().Min)
	}
	if r.Width() != 4 || r.Height() != 3 {
		t.Errorf("expected 4x3, got %dx%d", r.Width(), r.Height())
	}
	if got := r.At(0, 0); got != (color.NRGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Errorf("unexpected pixel %v", got)
	}
}

func TestFromImage_ConvertsRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(1, 1, color.NRGBA{R: 255, A: 255})

	r := FromImage(src)

	if got := r.At(1, 1); got != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("unexpected pixel %v", got)
	}
}

func TestPublish_BlocksWrites(t *testing.T) {
	r := New(2, 2)
	if err := r.Set(0, 0, color.NRGBA{A: 255}); err != nil {
		t.Fatalf("Set before publish failed: %v", err)
	}

	r.Publish()

	if err := r.Set(0, 0, color.NRGBA{R: 1, A: 255}); !errors.Is(err, ErrPublished) {
		t.Errorf("expected ErrPublished, got %v", err)
	}
	if err := r.Mutate(func(img *image.NRGBA) {}); !errors.Is(err, ErrPublished) {
		t.Errorf("expected ErrPublished from Mutate, got %v", err)
	}
}

func TestClone_IsIndependent(t *testing.T) {
	r := New(2, 2)
	r.Set(0, 0, color.NRGBA{R: 10, A: 255})
	r.Publish()

	c := r.Clone()
	if c.ID() == r.ID() {
		t.Error("expected clone to have a new id")
	}
	if c.Published() {
		t.Error("expected clone to be unpublished")
	}
	if err := c.Set(0, 0, color.NRGBA{R: 99, A: 255}); err != nil {
		t.Fatalf("Set on clone failed: %v", err)
	}
	if r.At(0, 0).R != 10 {
		t.Error("expected original to be unchanged")
	}
}

func TestRelease(t *testing.T) {
	r := New(4, 4)
	r.Release()
	r.Release()

	if !r.Released() {
		t.Error("expected raster to be released")
	}
	if !r.Empty() {
		t.Error("expected released raster to be empty")
	}
	if err := r.Set(0, 0, color.NRGBA{}); !errors.Is(err, ErrReleased) {
		t.Errorf("expected ErrReleased, got %v", err)
	}
}

func TestRelease_ConcurrentReads(t *testing.T) {
	r := New(64, 64).Publish()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = r.Width() + r.Height()
				_ = r.At(1, 1)
			}
		}()
	}
	r.Release()
	wg.Wait()

	if r.Width() != 0 || r.At(1, 1) != (color.NRGBA{}) {
		t.Error("expected released raster to read as empty")
	}
}

func TestWrap(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Pix[0] = 42

	r := Wrap(img)
	if r.Width() != 3 || r.Height() != 2 || r.At(0, 0).R != 42 {
		t.Errorf("unexpected wrapped raster %dx%d", r.Width(), r.Height())
	}

	big := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	big.SetNRGBA(1, 1, color.NRGBA{G: 7, A: 255})
	sub := big.SubImage(image.Rect(0, 0, 2, 2)).(*image.NRGBA)
	w := Wrap(sub)
	if w.Width() != 2 || w.At(1, 1).G != 7 || len(w.Pix()) != 2*2*4 {
		t.Errorf("expected sub-image to be copied compactly, got %d bytes", len(w.Pix()))
	}

	off := Wrap(image.NewNRGBA(image.Rect(5, 5, 7, 8)))
	if off.Bounds() != image.Rect(0, 0, 2, 3) {
		t.Errorf("expected origin-anchored bounds, got %v", off.Bounds())
	}
}

func TestPix_ReturnsCopy(t *testing.T) {
	r := New(1, 1)
	r.Set(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 4})

	pix := r.Pix()
	pix[0] = 99

	if r.At(0, 0).R != 1 {
		t.Error("expected Pix to return a copy")
	}
}

func TestTiling_Validate(t *testing.T) {
	if err := DefaultTiling().Validate(); err != nil {
		t.Errorf("default tiling invalid: %v", err)
	}
	if err := (Tiling{RepeatX: 0, RepeatY: 1}).Validate(); err == nil {
		t.Error("expected error for zero repeat")
	}
	if err := (Tiling{RepeatX: 6, RepeatY: -1}).Validate(); err == nil {
		t.Error("expected error for negative repeat")
	}
}

func TestTexture_WithTilingSharesRaster(t *testing.T) {
	tex := Texture{Raster: New(3, 3), Tiling: DefaultTiling(), Sampling: RepeatSampling()}

	tiled := tex.WithTiling(Tiling{RepeatX: 6, RepeatY: 1})

	if tiled.Raster != tex.Raster {
		t.Error("expected raster to be shared")
	}
	if tex.Tiling.RepeatX != 1 {
		t.Error("expected original tiling to be unchanged")
	}
	if tiled.Width() != 3 || tiled.Height() != 3 {
		t.Errorf("expected 3x3, got %dx%d", tiled.Width(), tiled.Height())
	}
}

func TestWrapMode_String(t *testing.T) {
	if WrapRepeat.String() != "repeat" || WrapClamp.String() != "clamp" {
		t.Error("unexpected wrap mode names")
	}
}
