package mocks

import (
	"context"
	"image"

	"github.com/user/tapestudio/pkg/ports"
)

// CaptureCall records a CaptureHTMLWithViewport call.
type CaptureCall struct {
	HTML   string
	Width  int
	Height int
}

// HTMLCapturer is a mock implementation of ports.HTMLCapturer.
type HTMLCapturer struct {
	CaptureHTMLWithViewportFunc func(ctx context.Context, html string, width, height int) (image.Image, error)

	// Track calls for assertions
	Calls []CaptureCall
}

// NewHTMLCapturer creates a new mock HTMLCapturer with default behavior.
func NewHTMLCapturer() *HTMLCapturer {
	return &HTMLCapturer{}
}

// CaptureHTMLWithViewport implements ports.HTMLCapturer.
func (m *HTMLCapturer) CaptureHTMLWithViewport(ctx context.Context, html string, width, height int) (image.Image, error) {
	m.Calls = append(m.Calls, CaptureCall{HTML: html, Width: width, Height: height})
	if m.CaptureHTMLWithViewportFunc != nil {
		return m.CaptureHTMLWithViewportFunc(ctx, html, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height)), nil
}

var _ ports.HTMLCapturer = (*HTMLCapturer)(nil)
