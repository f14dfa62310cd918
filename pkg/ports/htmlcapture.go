package ports

import (
	"context"
	"image"
)

// HTMLCapturer renders an HTML document in a headless browser. The result
// is cropped to the document body, never larger than width×height.
type HTMLCapturer interface {
	CaptureHTMLWithViewport(ctx context.Context, html string, width, height int) (image.Image, error)
}
