package mocks

import (
	"context"

	"github.com/user/tapestudio/pkg/ports"
	"github.com/user/tapestudio/pkg/raster"
)

// ImageDecoder is a mock implementation of ports.ImageDecoder.
type ImageDecoder struct {
	DecodeImageFunc func(ctx context.Context, src ports.ByteSource) (*raster.Raster, error)
}

func (m *ImageDecoder) DecodeImage(ctx context.Context, src ports.ByteSource) (*raster.Raster, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(ctx, src)
	}
	return raster.New(100, 100), nil
}

var _ ports.ImageDecoder = (*ImageDecoder)(nil)
