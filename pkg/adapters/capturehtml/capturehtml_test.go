package capturehtml

import (
	"image"
	"image/color"
	"testing"
	"time"
)

func TestCropTo(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 8))
	src.Set(2, 3, color.RGBA{R: 255, A: 255})

	got := cropTo(src, 4, 5)
	if got.Bounds() != image.Rect(0, 0, 4, 5) {
		t.Fatalf("expected 4x5, got %v", got.Bounds())
	}
	if r, _, _, _ := got.At(2, 3).RGBA(); r != 0xffff {
		t.Error("expected pixel to survive the crop")
	}
}

func TestCropTo_KeepsImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 8))

	for _, size := range [][2]int{{0, 0}, {-1, 5}, {10, 8}, {20, 20}} {
		if got := cropTo(src, size[0], size[1]); got != image.Image(src) {
			t.Errorf("size %v: expected original image", size)
		}
	}
}

func TestCropTo_ClampsOversize(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 8))

	if got := cropTo(src, 5, 50).Bounds(); got != image.Rect(0, 0, 5, 8) {
		t.Errorf("expected 5x8, got %v", got)
	}
}

func TestOptions(t *testing.T) {
	c := New(WithExecPath("/opt/chrome"), WithTimeout(time.Second))

	if c.execPath != "/opt/chrome" || c.timeout != time.Second {
		t.Errorf("options not applied: %+v", c)
	}
	if New().timeout != DefaultTimeout {
		t.Error("expected default timeout")
	}
}
