// Package orchestrator owns the configurator state and decides which surface
// map the render consumer shows.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/user/tapestudio/pkg/pipeline"
	"github.com/user/tapestudio/pkg/policy"
	"github.com/user/tapestudio/pkg/ports"
	"github.com/user/tapestudio/pkg/raster"
	"github.com/user/tapestudio/pkg/texcache"
)

var (
	// ErrMaterialNotAllowed is returned when a material is not offered for the active product type.
	ErrMaterialNotAllowed = errors.New("orchestrator: material not allowed for product type")
	// ErrUploadNotAllowed is returned when the active product type does not accept uploads.
	ErrUploadNotAllowed = errors.New("orchestrator: product type does not accept texture uploads")
	// ErrCustomTextNotAllowed is returned when the active product type does not accept custom text.
	ErrCustomTextNotAllowed = errors.New("orchestrator: product type does not accept custom text")
	// ErrStaleUpload is reported for an upload superseded by a newer one.
	ErrStaleUpload = errors.New("orchestrator: upload superseded by a newer upload")
	// ErrInvalidColor is returned for a malformed background color.
	ErrInvalidColor = errors.New("orchestrator: invalid color")
)

// Config contains the initial state and texture mapping of the orchestrator.
type Config struct {
	// Product is an optional catalog preset. It overrides ProductType and Material.
	Product     string
	ProductType string
	Material    string // empty selects the product type default
	Background  string

	// TextureRepeat is applied to uploaded and composited surface maps.
	TextureRepeat raster.Tiling
	// CoreRepeat is applied to the core texture.
	CoreRepeat raster.Tiling
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ProductType:   policy.TypeAdhesive,
		Background:    "#000000",
		TextureRepeat: raster.Tiling{RepeatX: 6, RepeatY: 1},
		CoreRepeat:    raster.Tiling{RepeatX: 12, RepeatY: 2},
	}
}

// Orchestrator is the single owner of the configurator state and the
// texture cache. All methods are safe for concurrent use; state transitions
// are serialized.
type Orchestrator struct {
	synthStage     pipeline.Stage[pipeline.SynthInput, pipeline.SynthResult]
	compositeStage pipeline.Stage[pipeline.CompositeInput, pipeline.CompositeResult]
	decoder        ports.ImageDecoder
	consumer       ports.RenderConsumer
	sink           ports.DebugSink
	logger         ports.Logger
	cfg            Config

	mu          sync.Mutex
	cache       *texcache.Cache
	productType policy.ProductType
	material    policy.Material
	product     string
	customText  string
	background  string
	surface     *raster.Texture
	source      Source
	core        *raster.Texture
	coreInner   *raster.Texture
	uploadToken uint64
	transitions int
}

// New creates an Orchestrator in the state described by cfg and pushes that
// state to the consumer.
func New(
	synthStage pipeline.Stage[pipeline.SynthInput, pipeline.SynthResult],
	compositeStage pipeline.Stage[pipeline.CompositeInput, pipeline.CompositeResult],
	decoder ports.ImageDecoder,
	consumer ports.RenderConsumer,
	sink ports.DebugSink,
	logger ports.Logger,
	cfg Config,
) (*Orchestrator, error) {
	if err := cfg.TextureRepeat.Validate(); err != nil {
		return nil, fmt.Errorf("texture repeat: %w", err)
	}
	if err := cfg.CoreRepeat.Validate(); err != nil {
		return nil, fmt.Errorf("core repeat: %w", err)
	}

	if cfg.Product != "" {
		p, err := policy.ResolveProduct(cfg.Product)
		if err != nil {
			return nil, err
		}
		cfg.ProductType, cfg.Material = p.Type, p.Material
	}

	pt, err := policy.ResolveProductType(cfg.ProductType)
	if err != nil {
		return nil, err
	}
	materialID := cfg.Material
	if materialID == "" {
		materialID = pt.DefaultMaterial()
	}
	if !pt.Allows(materialID) {
		return nil, fmt.Errorf("%w: %q for %s", ErrMaterialNotAllowed, materialID, pt.ID)
	}
	bg := cfg.Background
	if bg == "" {
		bg = DefaultConfig().Background
	}
	bg, err = normalizeHex(bg)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		synthStage:     synthStage,
		compositeStage: compositeStage,
		decoder:        decoder,
		consumer:       consumer,
		sink:           sink,
		logger:         logger.WithComponent("orchestrator"),
		cfg:            cfg,
		cache:          texcache.New(),
		productType:    pt,
		material:       policy.Resolve(materialID),
		product:        cfg.Product,
		background:     bg,
	}
	o.cache.OnRelease = func(r *raster.Raster) {
		o.logger.Debug("Released raster %d", r.ID())
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	ctx := context.Background()
	if _, err := o.procedural(ctx, raster.FamilyCardboard); err != nil {
		return nil, fmt.Errorf("core texture: %w", err)
	}

	o.consumer.SetViewportBackground(o.background)
	if err := o.evaluate(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

// SelectProductType switches the product type. The material resets to the
// type's default and custom text is cleared. An uploaded image is kept but
// only shown when the new type accepts uploads.
func (o *Orchestrator) SelectProductType(id string) error {
	pt, err := policy.ResolveProductType(id)
	if err != nil {
		o.logger.Error("Unknown product type: %s", id)
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.productType = pt
	o.material = policy.Resolve(pt.DefaultMaterial())
	o.customText = ""
	o.product = ""
	o.logger.Info("Product type: %s", pt.DisplayName)
	return o.evaluate(context.Background())
}

// SelectMaterial switches the material. Custom text is superseded.
func (o *Orchestrator) SelectMaterial(id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.productType.Allows(id) {
		return fmt.Errorf("%w: %q for %s", ErrMaterialNotAllowed, id, o.productType.ID)
	}
	if _, ok := policy.Lookup(id); !ok {
		o.logger.Debug("Material %s has no table entry, using the default descriptor", id)
	}

	o.material = policy.Resolve(id)
	o.customText = ""
	o.product = ""
	o.logger.Info("Material: %s", id)
	return o.evaluate(context.Background())
}

// SelectProduct applies a catalog preset: its product type and material.
func (o *Orchestrator) SelectProduct(id string) error {
	p, err := policy.ResolveProduct(id)
	if err != nil {
		return err
	}
	pt, err := policy.ResolveProductType(p.Type)
	if err != nil {
		return err
	}
	if !pt.Allows(p.Material) {
		return fmt.Errorf("%w: %q for %s", ErrMaterialNotAllowed, p.Material, pt.ID)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.productType = pt
	o.material = policy.Resolve(p.Material)
	o.customText = ""
	o.product = p.ID
	o.logger.Info("Product: %s", p.Name)
	return o.evaluate(context.Background())
}

// SetCustomText prints text on the strap, replacing the surface map until
// the next material change or upload. Surrounding space is trimmed and blank
// text is ignored.
func (o *Orchestrator) SetCustomText(text string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.productType.AllowsCustomText {
		return fmt.Errorf("%w: %s", ErrCustomTextNotAllowed, o.productType.ID)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		o.logger.Debug("Ignoring blank custom text")
		return nil
	}

	o.customText = text
	o.logger.Info("Custom text: %q", text)
	return o.evaluate(context.Background())
}

// SetBackground sets the viewport background. It does not touch the cache
// or the surface map.
func (o *Orchestrator) SetBackground(hex string) error {
	bg, err := normalizeHex(hex)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.background = bg
	o.consumer.SetViewportBackground(bg)
	return nil
}

// CustomText returns the custom text currently applied, or "".
func (o *Orchestrator) CustomText() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.customText
}

// normalizeHex validates a #rgb, #rrggbb or #rrggbbaa color and returns it
// as lowercase #rrggbb. The viewport background is always opaque.
func normalizeHex(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) == 9 {
		s = s[:7]
	}
	if len(s) != 4 && len(s) != 7 {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c.Hex(), nil
}
