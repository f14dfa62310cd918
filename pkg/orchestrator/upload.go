package orchestrator

import (
	"context"
	"fmt"

	"github.com/user/tapestudio/pkg/policy"
	"github.com/user/tapestudio/pkg/ports"
	"github.com/user/tapestudio/pkg/raster"
	"github.com/user/tapestudio/pkg/stages/composite"
	"github.com/user/tapestudio/pkg/texcache"
)

// UploadOutcome reports how an upload ended.
type UploadOutcome struct {
	Token   uint64
	Applied bool
	Err     error // *ports.DecodeError, ErrStaleUpload, ErrUploadNotAllowed or a context error
}

// UploadImage decodes src in the background and, if no newer upload was
// submitted meanwhile, makes it the uploaded image. The outcome is delivered
// once on the returned channel. Until then the current surface map stays.
func (o *Orchestrator) UploadImage(ctx context.Context, src ports.ByteSource) <-chan UploadOutcome {
	out := make(chan UploadOutcome, 1)

	o.mu.Lock()
	if !o.productType.AllowsTextureUpload {
		pt := o.productType.ID
		o.mu.Unlock()
		out <- UploadOutcome{Err: fmt.Errorf("%w: %s", ErrUploadNotAllowed, pt)}
		close(out)
		return out
	}
	o.uploadToken++
	token := o.uploadToken
	o.mu.Unlock()

	o.logger.Debug("Decoding upload %d (%s, %d bytes)", token, src.Name, len(src.Data))

	go func() {
		defer close(out)
		img, err := o.decoder.DecodeImage(ctx, src)
		out <- o.completeUpload(ctx, token, img, err)
	}()
	return out
}

// completeUpload applies a finished decode if it is still the latest.
func (o *Orchestrator) completeUpload(ctx context.Context, token uint64, img *raster.Raster, err error) UploadOutcome {
	o.mu.Lock()
	defer o.mu.Unlock()

	outcome := UploadOutcome{Token: token}
	if token != o.uploadToken {
		o.logger.Debug("Discarding stale upload %d (latest %d)", token, o.uploadToken)
		outcome.Err = ErrStaleUpload
		return outcome
	}
	if err == nil && (img == nil || img.Empty()) {
		err = &ports.DecodeError{Source: fmt.Sprintf("upload %d", token), Err: fmt.Errorf("empty image")}
	}
	if err != nil {
		o.logger.Warn("Could not decode uploaded image: %s", err)
		outcome.Err = err
		return outcome
	}
	if err := ctx.Err(); err != nil {
		outcome.Err = err
		return outcome
	}

	if o.productType.TextureColorRestriction == policy.RestrictionBlackOnly {
		img = composite.BlackAndWhite(img)
	} else {
		img.Publish()
	}
	if o.sink.Enabled() {
		if err := o.sink.SaveUpload(token, img.Image()); err != nil {
			o.logger.Warn("Failed to save debug upload: %s", err)
		}
	}

	o.cache.Put(texcache.SlotOriginal, &raster.Texture{
		Raster:   img,
		Tiling:   o.cfg.TextureRepeat,
		Sampling: raster.RepeatSampling(),
	})
	o.customText = ""
	o.logger.Info("Applied uploaded image %dx%d", img.Width(), img.Height())

	if err := o.evaluate(ctx); err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Applied = true
	return outcome
}
