package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/user/tapestudio/pkg/pipeline"
	"github.com/user/tapestudio/pkg/policy"
	"github.com/user/tapestudio/pkg/raster"
	"github.com/user/tapestudio/pkg/texcache"
)

// Source names what produced the current surface map.
type Source int

const (
	SourceNone Source = iota
	SourceKraft
	SourceEcoKraft
	SourceFilament
	SourceStrappingBase
	SourceFilamentOverlay
	SourceProceduralOverlay
	SourceTintedOverlay
	SourcePrintedText
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceNone:
		return "none"
	case SourceKraft:
		return "kraft"
	case SourceEcoKraft:
		return "eco-kraft"
	case SourceFilament:
		return "filament"
	case SourceStrappingBase:
		return "strapping-base"
	case SourceFilamentOverlay:
		return "filament-overlay"
	case SourceProceduralOverlay:
		return "procedural-overlay"
	case SourceTintedOverlay:
		return "tinted-overlay"
	case SourcePrintedText:
		return "printed-text"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Source) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// evaluate picks the surface map for the current state, stores it in the
// composite slot and pushes it with the material to the consumer.
// The caller holds o.mu.
func (o *Orchestrator) evaluate(ctx context.Context) error {
	if err := o.refreshCore(ctx); err != nil {
		o.logger.Error("Failed to build core map: %s", err)
		return err
	}

	tex, src, err := o.decide(ctx)
	if err != nil {
		o.logger.Error("Failed to build surface map: %s", err)
		return err
	}

	o.cache.Put(texcache.SlotComposite, tex)
	o.surface = tex
	o.source = src
	o.transitions++

	o.consumer.ApplySurfaceMap(tex)
	o.consumer.ApplyMaterialParameters(o.material)
	o.logger.Debug("Surface map: %s", src)

	o.saveDebug()
	return nil
}

// decide applies the selection precedence. The first matching rule wins.
func (o *Orchestrator) decide(ctx context.Context) (*raster.Texture, Source, error) {
	var (
		pt          = o.productType.ID
		mat         = o.material.ID
		hasImage    = o.hasImage()
		filamentTex = pt == policy.TypeFilament && mat == policy.MaterialTransparent
		paper       = mat == policy.MaterialKraft || mat == policy.MaterialKraftEco
	)

	switch {
	case o.customText != "" && o.productType.AllowsCustomText:
		res, err := o.synthStage.Execute(ctx, pipeline.SynthInput{
			Family: raster.FamilyPrintedText,
			Text:   o.customText,
		})
		if err != nil {
			return nil, SourceNone, fmt.Errorf("printed text: %w", err)
		}
		o.saveProcedural(raster.FamilyPrintedText, res.Texture)
		return &res.Texture, SourcePrintedText, nil

	case mat == policy.MaterialKraft && !hasImage:
		tex, err := o.procedural(ctx, raster.FamilyKraft)
		return tex, SourceKraft, err

	case mat == policy.MaterialKraftEco && !hasImage:
		tex, err := o.procedural(ctx, raster.FamilyEcoKraft)
		return tex, SourceEcoKraft, err

	case filamentTex && !hasImage:
		tex, err := o.procedural(ctx, raster.FamilyFilament)
		return tex, SourceFilament, err

	case pt == policy.TypePrinted && !hasImage:
		tex, err := o.procedural(ctx, raster.FamilyStrappingBase)
		return tex, SourceStrappingBase, err

	case filamentTex && hasImage:
		tex, err := o.overlay(ctx, pipeline.PolicyOverlayFullColor, raster.FamilyFilament)
		return tex, SourceFilamentOverlay, err

	case paper && hasImage:
		family := raster.FamilyKraft
		if mat == policy.MaterialKraftEco {
			family = raster.FamilyEcoKraft
		}
		tex, err := o.overlay(ctx, pipeline.PolicyOverlayOnProceduralBase, family)
		return tex, SourceProceduralOverlay, err

	case hasImage:
		tex, err := o.overlay(ctx, pipeline.PolicyTintAndMask, "")
		return tex, SourceTintedOverlay, err

	default:
		return nil, SourceNone, nil
	}
}

// refreshCore puts the uploaded image on the core while one is shown and the
// cardboard texture otherwise, both at the core repeat, and derives the
// color-coded inner core map from the same source. Nothing is pushed while
// the source is unchanged.
func (o *Orchestrator) refreshCore(ctx context.Context) error {
	src, ok := o.cache.Get(texcache.SlotCardboard)
	if o.hasImage() {
		src, ok = o.cache.Get(texcache.SlotOriginal)
	}
	if !ok {
		return errors.New("no core texture")
	}
	if o.core != nil && o.core.Raster == src.Raster {
		return nil
	}

	res, err := o.compositeStage.Execute(ctx, pipeline.CompositeInput{
		Policy:  pipeline.PolicyColorCode,
		Overlay: src.Raster,
	})
	if err != nil {
		return fmt.Errorf("inner core: %w", err)
	}
	core := src.WithTiling(o.cfg.CoreRepeat)
	inner := &raster.Texture{
		Raster:   res.Raster,
		Tiling:   o.cfg.CoreRepeat,
		Sampling: raster.RepeatSampling(),
	}

	o.cache.Put(texcache.SlotCore, &core)
	o.cache.Put(texcache.SlotCoreInner, inner)
	o.core, o.coreInner = &core, inner

	o.consumer.ApplyCoreMap(o.core)
	o.consumer.ApplyCoreInnerMap(o.coreInner)
	o.logger.Debug("Core map: %dx%d", core.Width(), core.Height())
	return nil
}

// hasImage reports whether an uploaded image influences the surface map.
func (o *Orchestrator) hasImage() bool {
	_, ok := o.cache.Get(texcache.SlotOriginal)
	return ok && o.productType.AllowsTextureUpload
}

// procedural returns the cached texture for family, generating it on first use.
func (o *Orchestrator) procedural(ctx context.Context, family raster.Family) (*raster.Texture, error) {
	slot, ok := texcache.ProceduralSlot(family)
	if !ok {
		return nil, fmt.Errorf("no cache slot for %s", family)
	}
	if tex, ok := o.cache.Get(slot); ok {
		return tex, nil
	}

	tex, err := o.synth(ctx, pipeline.SynthInput{Family: family})
	if err != nil {
		return nil, err
	}
	o.cache.Put(slot, &tex)
	o.saveProcedural(family, tex)
	return &tex, nil
}

func (o *Orchestrator) synth(ctx context.Context, input pipeline.SynthInput) (raster.Texture, error) {
	res, err := o.synthStage.Execute(ctx, input)
	if err != nil {
		return raster.Texture{}, fmt.Errorf("synth %s: %w", input.Family, err)
	}
	return res.Texture, nil
}

// overlay composites the uploaded image. An empty family means the material
// color is the base.
func (o *Orchestrator) overlay(ctx context.Context, policyKind pipeline.CompositePolicy, family raster.Family) (*raster.Texture, error) {
	original, _ := o.cache.Get(texcache.SlotOriginal)

	input := pipeline.CompositeInput{
		Policy:  policyKind,
		Overlay: original.Raster,
	}
	if family != "" {
		base, err := o.procedural(ctx, family)
		if err != nil {
			return nil, err
		}
		input.Base = base.Raster
	} else {
		input.Tint = materialColor(o.material)
	}

	res, err := o.compositeStage.Execute(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("composite %s: %w", policyKind, err)
	}
	return &raster.Texture{
		Raster:   res.Raster,
		Tiling:   o.cfg.TextureRepeat,
		Sampling: raster.RepeatSampling(),
	}, nil
}

// materialColor parses the material color; unparsable colors fall back to
// the default material color.
func materialColor(m policy.Material) color.Color {
	c, err := colorful.Hex(m.ColorHex)
	if err != nil {
		c, _ = colorful.Hex(policy.DefaultMaterial.ColorHex)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

func (o *Orchestrator) saveProcedural(family raster.Family, tex raster.Texture) {
	if !o.sink.Enabled() {
		return
	}
	if err := o.sink.SaveProcedural(string(family), tex.Raster.Image()); err != nil {
		o.logger.Warn("Failed to save debug texture: %s", err)
	}
}

func (o *Orchestrator) saveDebug() {
	if !o.sink.Enabled() {
		return
	}
	if o.surface != nil {
		if err := o.sink.SaveComposite(o.transitions, o.surface.Raster.Image()); err != nil {
			o.logger.Warn("Failed to save debug composite: %s", err)
		}
	}
	if data, err := json.MarshalIndent(o.snapshot(), "", "  "); err == nil {
		if err := o.sink.SaveStateJSON(o.transitions, data); err != nil {
			o.logger.Warn("Failed to save debug state: %s", err)
		}
	}
}
