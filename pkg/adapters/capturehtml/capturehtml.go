// Package capturehtml renders HTML to images with a headless browser.
package capturehtml

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/user/tapestudio/pkg/ports"
)

// DefaultTimeout bounds a single capture.
const DefaultTimeout = 30 * time.Second

// Capturer captures HTML as images using a headless Chrome.
type Capturer struct {
	execPath string
	timeout  time.Duration
}

// Option configures a Capturer.
type Option func(*Capturer)

// WithExecPath uses a specific Chrome binary. See ResolveChromePath.
func WithExecPath(path string) Option {
	return func(c *Capturer) { c.execPath = path }
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Capturer) { c.timeout = d }
}

// New creates a new HTML capturer.
func New(opts ...Option) *Capturer {
	c := &Capturer{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ensure Capturer implements ports.HTMLCapturer
var _ ports.HTMLCapturer = (*Capturer)(nil)

// CaptureHTMLWithViewport renders html in a width×height viewport and returns
// the area covered by the document body.
func (c *Capturer) CaptureHTMLWithViewport(ctx context.Context, html string, width, height int) (image.Image, error) {
	tmp, err := os.CreateTemp("", "tapestudio-card-*.html")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("write temp file: %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("hide-scrollbars", true),
	)
	if path := ResolveChromePath(c.execPath); path != "" {
		opts = append(opts, chromedp.ExecPath(path))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var (
		bodyWidth, bodyHeight float64
		buf                   []byte
	)
	if err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(width), int64(height)),
		chromedp.Navigate("file://"+tmp.Name()),
		chromedp.Evaluate(`document.body.getBoundingClientRect().width`, &bodyWidth),
		chromedp.Evaluate(`document.body.getBoundingClientRect().height`, &bodyHeight),
		chromedp.FullScreenshot(&buf, 100),
	); err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	return cropTo(img, int(bodyWidth), int(bodyHeight)), nil
}

// cropTo returns the top-left w×h region of img. Non-positive sizes keep img.
func cropTo(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if w <= 0 || h <= 0 || (w >= b.Dx() && h >= b.Dy()) {
		return img
	}
	w, h = min(w, b.Dx()), min(h, b.Dy())

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
