// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"sync"

	"github.com/HugoSmits86/nativewebp"
	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/user/tapestudio/pkg/ports"
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct {
	mu    sync.Mutex
	fonts map[bool]*opentype.Font
}

type faceKey struct {
	path string
	size float64
	bold bool
}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{fonts: make(map[bool]*opentype.Font)}
}

// CreateCanvas creates a new drawing canvas.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	dc := gg.NewContext(width, height)
	if bg != nil {
		dc.SetColor(bg)
		dc.Clear()
	}
	return &Canvas{dc: dc, r: r, faces: make(map[faceKey]font.Face)}
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		opts := &jpeg.Options{Quality: quality}
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	case ports.FormatWebP:
		// nativewebp writes lossless VP8L; quality does not apply.
		if err := nativewebp.Encode(&buf, img, nil); err != nil {
			return nil, fmt.Errorf("encode WebP: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ResizeImage resizes an image to the specified dimensions.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// parsedFont returns the built-in Go font, parsed once per renderer.
// Parsed fonts are safe to share; faces are not, so each canvas builds its own.
func (r *Renderer) parsedFont(bold bool) (*opentype.Font, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.fonts[bold]; ok {
		return f, nil
	}
	data := goregular.TTF
	if bold {
		data = gobold.TTF
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	r.fonts[bold] = f
	return f, nil
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc    *gg.Context
	r     *Renderer
	faces map[faceKey]font.Face
}

// Width returns the canvas width.
func (c *Canvas) Width() int {
	return c.dc.Width()
}

// Height returns the canvas height.
func (c *Canvas) Height() int {
	return c.dc.Height()
}

// DrawImage draws an image at the specified position.
func (c *Canvas) DrawImage(img image.Image, x, y int) {
	c.dc.DrawImage(img, x, y)
}

// DrawImageScaled draws an image scaled to the specified dimensions.
func (c *Canvas) DrawImageScaled(img image.Image, x, y, width, height int) {
	c.dc.Push()
	defer c.dc.Pop()

	bounds := img.Bounds()
	scaleX := float64(width) / float64(bounds.Dx())
	scaleY := float64(height) / float64(bounds.Dy())

	c.dc.Translate(float64(x), float64(y))
	c.dc.Scale(scaleX, scaleY)
	c.dc.DrawImage(img, 0, 0)
}

// FillRect fills an axis-aligned rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, paint ports.Paint) {
	c.setFill(paint)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

// FillRotatedRect fills a rectangle centered on (cx, cy) rotated by angle radians.
func (c *Canvas) FillRotatedRect(cx, cy, w, h, angle float64, paint ports.Paint) {
	c.dc.Push()
	defer c.dc.Pop()

	c.setFill(paint)
	c.dc.Translate(cx, cy)
	c.dc.Rotate(angle)
	c.dc.DrawRectangle(-w/2, -h/2, w, h)
	c.dc.Fill()
}

// FillCircle fills a circle.
func (c *Canvas) FillCircle(cx, cy, radius float64, paint ports.Paint) {
	c.setFill(paint)
	c.dc.DrawCircle(cx, cy, radius)
	c.dc.Fill()
}

// FillPolygon fills a closed polygon.
func (c *Canvas) FillPolygon(points []ports.Point, paint ports.Paint) {
	if len(points) < 3 {
		return
	}
	c.setFill(paint)
	c.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.ClosePath()
	c.dc.Fill()
}

// StrokeLine draws a line between two points.
func (c *Canvas) StrokeLine(x1, y1, x2, y2 float64, col color.Color, width float64) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(x1, y1, x2, y2)
	c.dc.Stroke()
}

// StrokePolyline draws connected line segments through points.
func (c *Canvas) StrokePolyline(points []ports.Point, col color.Color, width float64) {
	if len(points) < 2 {
		return
	}
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	c.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.Stroke()
}

// DrawText draws text anchored at the specified position.
func (c *Canvas) DrawText(text string, x, y float64, style ports.TextStyle) {
	c.applyFont(style)
	if style.Color != nil {
		c.dc.SetColor(style.Color)
	} else {
		c.dc.SetColor(color.Black)
	}

	ax := 0.0
	switch style.Align {
	case ports.AlignCenter:
		ax = 0.5
	case ports.AlignRight:
		ax = 1.0
	}

	ay := 0.5
	switch style.Baseline {
	case ports.BaselineTop:
		ay = 1.0
	case ports.BaselineAlphabetic:
		ay = 0
	}

	c.dc.DrawStringAnchored(text, x, y, ax, ay)
}

// MeasureText returns the rendered size of text.
func (c *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	c.applyFont(style)
	return c.dc.MeasureString(text)
}

// ToImage returns the canvas as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

func (c *Canvas) applyFont(style ports.TextStyle) {
	f, err := c.face(style)
	if err != nil {
		// Keep the current face, gg defaults to a basic bitmap font.
		return
	}
	c.dc.SetFontFace(f)
}

func (c *Canvas) face(style ports.TextStyle) (font.Face, error) {
	size := style.FontSize
	if size <= 0 {
		size = 12
	}
	key := faceKey{path: style.FontPath, size: size, bold: style.Bold}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}

	var (
		f   font.Face
		err error
	)
	if style.FontPath != "" {
		f, err = gg.LoadFontFace(style.FontPath, size)
	} else {
		var parsed *opentype.Font
		parsed, err = c.r.parsedFont(style.Bold)
		if err == nil {
			f, err = opentype.NewFace(parsed, &opentype.FaceOptions{
				Size:    size,
				DPI:     72,
				Hinting: font.HintingFull,
			})
		}
	}
	if err != nil {
		return nil, fmt.Errorf("load font face: %w", err)
	}
	c.faces[key] = f
	return f, nil
}

func (c *Canvas) setFill(paint ports.Paint) {
	if paint.Gradient == nil {
		col := paint.Color
		if col == nil {
			col = color.Transparent
		}
		c.dc.SetColor(col)
		return
	}

	g := paint.Gradient
	var grad gg.Gradient
	switch g.Kind {
	case ports.GradientRadial:
		grad = gg.NewRadialGradient(g.X0, g.Y0, g.R0, g.X1, g.Y1, g.R1)
	default:
		grad = gg.NewLinearGradient(g.X0, g.Y0, g.X1, g.Y1)
	}
	for _, s := range g.Stops {
		grad.AddColorStop(s.Offset, s.Color)
	}
	c.dc.SetFillStyle(grad)
}

// Ensure Canvas implements ports.Canvas
var _ ports.Canvas = (*Canvas)(nil)
