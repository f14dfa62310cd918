package mocks

import (
	"image"
	"image/color"
	"sync"

	"github.com/user/tapestudio/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc  func(img image.Image, width, height int) image.Image

	mu       sync.Mutex
	Canvases []*Canvas // canvases created by the default CreateCanvas
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	c := &Canvas{width: width, height: height, Background: bg}
	m.mu.Lock()
	m.Canvases = append(m.Canvases, c)
	m.mu.Unlock()
	return c
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{}, nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewNRGBA(image.Rect(0, 0, width, height))
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas is a mock implementation of ports.Canvas that counts draw calls.
type Canvas struct {
	width      int
	height     int
	img        *image.NRGBA
	Background color.Color

	// TextWidth is returned by MeasureText per rune; 0 means 10.
	TextWidth float64

	Calls map[string]int
	Texts []DrawnText
}

// DrawnText records a DrawText call.
type DrawnText struct {
	Text  string
	X, Y  float64
	Style ports.TextStyle
}

// NewCanvas creates a mock canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{width: width, height: height}
}

func (m *Canvas) record(name string) {
	if m.Calls == nil {
		m.Calls = make(map[string]int)
	}
	m.Calls[name]++
}

func (m *Canvas) Width() int { return m.width }

func (m *Canvas) Height() int { return m.height }

func (m *Canvas) DrawImage(img image.Image, x, y int) { m.record("DrawImage") }

func (m *Canvas) DrawImageScaled(img image.Image, x, y, width, height int) {
	m.record("DrawImageScaled")
}

func (m *Canvas) FillRect(x, y, w, h float64, paint ports.Paint) { m.record("FillRect") }

func (m *Canvas) FillRotatedRect(cx, cy, w, h, angle float64, paint ports.Paint) {
	m.record("FillRotatedRect")
}

func (m *Canvas) FillCircle(cx, cy, radius float64, paint ports.Paint) { m.record("FillCircle") }

func (m *Canvas) FillPolygon(points []ports.Point, paint ports.Paint) { m.record("FillPolygon") }

func (m *Canvas) StrokeLine(x1, y1, x2, y2 float64, c color.Color, width float64) {
	m.record("StrokeLine")
}

func (m *Canvas) StrokePolyline(points []ports.Point, c color.Color, width float64) {
	m.record("StrokePolyline")
}

func (m *Canvas) DrawText(text string, x, y float64, style ports.TextStyle) {
	m.record("DrawText")
	m.Texts = append(m.Texts, DrawnText{Text: text, X: x, Y: y, Style: style})
}

func (m *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	per := m.TextWidth
	if per == 0 {
		per = 10
	}
	return per * float64(len([]rune(text))), style.FontSize
}

func (m *Canvas) ToImage() image.Image {
	if m.img == nil {
		m.img = image.NewNRGBA(image.Rect(0, 0, m.width, m.height))
	}
	return m.img
}

var _ ports.Canvas = (*Canvas)(nil)
