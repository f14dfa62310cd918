package ports

import (
	"context"
	"fmt"

	"github.com/user/tapestudio/pkg/raster"
)

// ByteSource is an uploaded file as handed over by the UI.
type ByteSource struct {
	Name string // file name, used for diagnostics only
	Data []byte
}

// ImageDecoder decodes uploaded bytes into a raster.
type ImageDecoder interface {
	// DecodeImage decodes the source. Failures are reported as *DecodeError.
	DecodeImage(ctx context.Context, src ByteSource) (*raster.Raster, error)
}

// DecodeError reports that an uploaded byte source is not a decodable image.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("decode image: %v", e.Err)
	}
	return fmt.Sprintf("decode image %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
