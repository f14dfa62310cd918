// Package raster provides the pixel buffer type shared by the texture pipeline.
package raster

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"sync/atomic"
)

var (
	// ErrPublished is returned when writing to a published raster.
	ErrPublished = errors.New("raster: raster is published")
	// ErrReleased is returned when accessing a released raster.
	ErrReleased = errors.New("raster: raster is released")
)

var nextID atomic.Uint64

// Raster is a rectangular RGBA pixel buffer with straight (non-premultiplied) alpha.
//
// A Raster owns its pixels exclusively. Once published it is read-only:
// transforms always produce a new Raster. Reads are safe concurrently with
// Release; a released raster reads as empty.
type Raster struct {
	id        uint64
	img       atomic.Pointer[image.NRGBA]
	published atomic.Bool
	released  atomic.Bool
}

// New creates a fully transparent raster of the given size.
func New(width, height int) *Raster {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return wrap(image.NewNRGBA(image.Rect(0, 0, width, height)))
}

// FromImage copies img into a new raster whose bounds start at (0,0).
func FromImage(img image.Image) *Raster {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			si := src.PixOffset(b.Min.X, b.Min.Y+y)
			di := dst.PixOffset(0, y)
			copy(dst.Pix[di:di+b.Dx()*4], src.Pix[si:si+b.Dx()*4])
		}
	} else {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	}
	return wrap(dst)
}

// Wrap adopts img as the backing buffer of a new raster without copying.
// The caller must not write to img afterwards. Sub-images and images not
// anchored at (0,0) are copied.
func Wrap(img *image.NRGBA) *Raster {
	if img.Rect.Min != (image.Point{}) || img.Stride != 4*img.Rect.Dx() {
		return FromImage(img)
	}
	return wrap(img)
}

func wrap(img *image.NRGBA) *Raster {
	r := &Raster{id: nextID.Add(1)}
	r.img.Store(img)
	return r
}

var emptyImage = image.NewNRGBA(image.Rectangle{})

// ID returns the process-unique identity of the raster.
func (r *Raster) ID() uint64 {
	return r.id
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int {
	return r.img.Load().Rect.Dx()
}

// Height returns the raster height in pixels.
func (r *Raster) Height() int {
	return r.img.Load().Rect.Dy()
}

// Bounds returns the raster bounds. The origin is always (0,0).
func (r *Raster) Bounds() image.Rectangle {
	return r.img.Load().Rect
}

// Empty reports whether the raster has no pixels.
func (r *Raster) Empty() bool {
	return r.img.Load().Rect.Empty()
}

// At returns the pixel at (x, y). Out of range reads return transparent black.
func (r *Raster) At(x, y int) color.NRGBA {
	img := r.img.Load()
	if !image.Pt(x, y).In(img.Rect) {
		return color.NRGBA{}
	}
	return img.NRGBAAt(x, y)
}

// Set writes the pixel at (x, y).
func (r *Raster) Set(x, y int, c color.NRGBA) error {
	if err := r.writable(); err != nil {
		return err
	}
	r.img.Load().SetNRGBA(x, y, c)
	return nil
}

// Image exposes the raster as a read-only image.Image.
// Callers must not type-assert and modify the result.
func (r *Raster) Image() image.Image {
	return r.img.Load()
}

// Pix returns a copy of the underlying pixel bytes in R,G,B,A order.
func (r *Raster) Pix() []byte {
	img := r.img.Load()
	out := make([]byte, len(img.Pix))
	copy(out, img.Pix)
	return out
}

// Mutate runs fn against the backing buffer of an unpublished raster.
func (r *Raster) Mutate(fn func(img *image.NRGBA)) error {
	if err := r.writable(); err != nil {
		return err
	}
	fn(r.img.Load())
	return nil
}

// Clone returns an unpublished deep copy with a new identity.
func (r *Raster) Clone() *Raster {
	src := r.img.Load()
	img := image.NewNRGBA(src.Rect)
	copy(img.Pix, src.Pix)
	return wrap(img)
}

// Publish freezes the raster. It returns r for chaining.
func (r *Raster) Publish() *Raster {
	r.published.Store(true)
	return r
}

// Published reports whether the raster has been frozen.
func (r *Raster) Published() bool {
	return r.published.Load()
}

// Release drops the pixel memory. A released raster is empty.
func (r *Raster) Release() {
	if r.released.Swap(true) {
		return
	}
	r.img.Store(emptyImage)
}

// Released reports whether Release has been called.
func (r *Raster) Released() bool {
	return r.released.Load()
}

func (r *Raster) writable() error {
	if r.released.Load() {
		return ErrReleased
	}
	if r.published.Load() {
		return ErrPublished
	}
	return nil
}
