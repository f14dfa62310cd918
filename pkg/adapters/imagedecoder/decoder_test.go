package imagedecoder

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/user/tapestudio/pkg/adapters/logger"
	"github.com/user/tapestudio/pkg/ports"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 8), G: uint8(y * 8), B: 90, A: 255})
		}
	}
	return img
}

func encode(t *testing.T, fn func(io.Writer, image.Image) error) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := fn(&buf, testImage(12, 9)); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeImage_Formats(t *testing.T) {
	formats := map[string]func(io.Writer, image.Image) error{
		"png":  png.Encode,
		"jpeg": func(w io.Writer, img image.Image) error { return jpeg.Encode(w, img, nil) },
		"gif":  func(w io.Writer, img image.Image) error { return gif.Encode(w, img, nil) },
		"bmp":  bmp.Encode,
		"tiff": func(w io.Writer, img image.Image) error { return tiff.Encode(w, img, nil) },
		"webp": func(w io.Writer, img image.Image) error { return nativewebp.Encode(w, img, nil) },
		"tga":  tga.Encode,
	}

	d := New(0, logger.NewNoop())
	for name, fn := range formats {
		t.Run(name, func(t *testing.T) {
			r, err := d.DecodeImage(context.Background(), ports.ByteSource{Name: "in." + name, Data: encode(t, fn)})
			if err != nil {
				t.Fatalf("DecodeImage failed: %v", err)
			}
			if r.Width() != 12 || r.Height() != 9 {
				t.Errorf("expected 12x9, got %dx%d", r.Width(), r.Height())
			}
			if r.Published() {
				t.Error("decoded raster should still be writable")
			}
		})
	}
}

func TestDecodeImage_PNGExact(t *testing.T) {
	d := New(0, logger.NewNoop())
	r, err := d.DecodeImage(context.Background(), ports.ByteSource{Data: encode(t, png.Encode)})
	if err != nil {
		t.Fatal(err)
	}
	want := color.NRGBA{R: 24, G: 16, B: 90, A: 255}
	if got := r.At(3, 2); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestDecodeImage_Errors(t *testing.T) {
	d := New(0, logger.NewNoop())

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrEmptySource},
		{"text", []byte("hello, not an image"), image.ErrFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.DecodeImage(context.Background(), ports.ByteSource{Name: tt.name, Data: tt.data})
			var decodeErr *ports.DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("expected DecodeError, got %v", err)
			}
			if decodeErr.Source != tt.name {
				t.Errorf("expected source %q, got %q", tt.name, decodeErr.Source)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestDecodeImage_Truncated(t *testing.T) {
	data := encode(t, png.Encode)
	_, err := New(0, logger.NewNoop()).DecodeImage(context.Background(), ports.ByteSource{Data: data[:len(data)/2]})

	var decodeErr *ports.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Errorf("expected DecodeError, got %v", err)
	}
}

func TestDecodeImage_TooLarge(t *testing.T) {
	d := New(100, logger.NewNoop())
	_, err := d.DecodeImage(context.Background(), ports.ByteSource{Data: encode(t, png.Encode)})

	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestDecodeImage_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(0, logger.NewNoop()).DecodeImage(ctx, ports.ByteSource{Data: encode(t, png.Encode)})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
