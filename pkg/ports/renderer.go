package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts raster drawing and image encoding.
type Renderer interface {
	// CreateCanvas creates a new drawing canvas with the specified dimensions and background color.
	// A nil background leaves the canvas fully transparent.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeImage resizes an image to the specified dimensions.
	ResizeImage(img image.Image, width, height int) image.Image
}

// Canvas provides the 2D drawing operations used by texture synthesis and compositing.
// Coordinates are in pixels with the origin at the top-left corner.
type Canvas interface {
	// Width returns the canvas width in pixels.
	Width() int

	// Height returns the canvas height in pixels.
	Height() int

	// DrawImage draws an image at the specified position.
	DrawImage(img image.Image, x, y int)

	// DrawImageScaled draws an image scaled to the specified dimensions.
	DrawImageScaled(img image.Image, x, y, width, height int)

	// FillRect fills an axis-aligned rectangle.
	FillRect(x, y, w, h float64, paint Paint)

	// FillRotatedRect fills a w×h rectangle centered on (cx, cy) and rotated by angle radians.
	FillRotatedRect(cx, cy, w, h, angle float64, paint Paint)

	// FillCircle fills a circle.
	FillCircle(cx, cy, radius float64, paint Paint)

	// FillPolygon fills a closed polygon.
	FillPolygon(points []Point, paint Paint)

	// StrokeLine draws a line between two points.
	StrokeLine(x1, y1, x2, y2 float64, c color.Color, width float64)

	// StrokePolyline draws connected line segments through points.
	StrokePolyline(points []Point, c color.Color, width float64)

	// DrawText draws text anchored at the specified position.
	DrawText(text string, x, y float64, style TextStyle)

	// MeasureText returns the width and height of the text.
	MeasureText(text string, style TextStyle) (width, height float64)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}

// Point is a position on the canvas.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Paint selects what fills a shape: a solid color or a gradient.
// When Gradient is set it takes precedence over Color.
type Paint struct {
	Color    color.Color
	Gradient *Gradient
}

// Solid returns a solid color paint.
func Solid(c color.Color) Paint {
	return Paint{Color: c}
}

// GradientKind identifies the gradient geometry.
type GradientKind int

const (
	GradientLinear GradientKind = iota
	GradientRadial
)

// GradientStop is a color at a position in [0,1] along the gradient.
type GradientStop struct {
	Offset float64
	Color  color.Color
}

// Gradient describes a linear gradient from (X0,Y0) to (X1,Y1), or a radial
// gradient between the circles (X0,Y0,R0) and (X1,Y1,R1).
type Gradient struct {
	Kind   GradientKind
	X0, Y0 float64
	R0     float64
	X1, Y1 float64
	R1     float64
	Stops  []GradientStop
}

// LinearGradient returns a linear gradient paint.
func LinearGradient(x0, y0, x1, y1 float64, stops ...GradientStop) Paint {
	return Paint{Gradient: &Gradient{
		Kind:  GradientLinear,
		X0:    x0,
		Y0:    y0,
		X1:    x1,
		Y1:    y1,
		Stops: stops,
	}}
}

// RadialGradient returns a radial gradient paint centered on (cx, cy)
// running from radius 0 to radius r.
func RadialGradient(cx, cy, r float64, stops ...GradientStop) Paint {
	return Paint{Gradient: &Gradient{
		Kind:  GradientRadial,
		X0:    cx,
		Y0:    cy,
		X1:    cx,
		Y1:    cy,
		R1:    r,
		Stops: stops,
	}}
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	FontSize float64
	FontPath string // optional TrueType file; the built-in Go fonts are used otherwise
	Bold     bool
	Color    color.Color
	Align    TextAlign
	Baseline TextBaseline
}

// TextAlign specifies horizontal text alignment.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// TextBaseline specifies vertical text anchoring.
type TextBaseline int

const (
	BaselineMiddle TextBaseline = iota
	BaselineTop
	BaselineAlphabetic
)

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatPNG ImageFormat = iota
	FormatJPEG
	FormatWebP
)

// String returns the format name, which is also its file extension.
func (f ImageFormat) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatWebP:
		return "webp"
	default:
		return "unknown"
	}
}

// Extension returns the file extension including the leading dot.
func (f ImageFormat) Extension() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return "." + f.String()
}

// ParseImageFormat parses a format name. Unknown names default to PNG.
func ParseImageFormat(s string) ImageFormat {
	switch s {
	case "jpeg", "jpg":
		return FormatJPEG
	case "webp":
		return FormatWebP
	default:
		return FormatPNG
	}
}
