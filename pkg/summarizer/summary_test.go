package summarizer

import (
	"testing"
	"time"

	"github.com/user/tapestudio/pkg/policy"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Errorf("GeneratedAt should be between %v and %v, got %v",
			before, after, summary.GeneratedAt)
	}
}

func TestBuilder_Product(t *testing.T) {
	preset, err := policy.ResolveProduct("eco-kraft")
	if err != nil {
		t.Fatal(err)
	}
	summary := NewBuilder().
		WithProductType(policy.MustResolveProductType(preset.Type)).
		WithPreset(&preset).
		Build()

	if summary.Product.TypeID != policy.TypeEco {
		t.Errorf("expected eco type, got %q", summary.Product.TypeID)
	}
	if summary.Product.PresetID != "eco-kraft" || summary.Product.Price != "$250.00" {
		t.Errorf("unexpected preset: %+v", summary.Product)
	}
	if summary.Product.Geometry.OuterRadius == 0 {
		t.Error("expected geometry to be copied")
	}
}

func TestBuilder_NilPreset(t *testing.T) {
	summary := NewBuilder().WithPreset(nil).Build()

	if summary.Product.PresetID != "" {
		t.Errorf("expected no preset, got %q", summary.Product.PresetID)
	}
}

func TestBuilder_Selection(t *testing.T) {
	summary := NewBuilder().
		WithSelection("ACME", true, "#ffffff").
		WithSurface(TextureInfo{Source: "printed-text", Width: 2048, Height: 512}).
		WithSession(3, []string{"strapping-base"}).
		Build()

	if summary.Selection.CustomText != "ACME" || !summary.Selection.HasImage || summary.Selection.Background != "#ffffff" {
		t.Errorf("unexpected selection: %+v", summary.Selection)
	}
	if summary.Surface.Width != 2048 {
		t.Errorf("expected surface width 2048, got %d", summary.Surface.Width)
	}
	if summary.Session.Transitions != 3 || len(summary.Session.CachedSlots) != 1 {
		t.Errorf("unexpected session: %+v", summary.Session)
	}
}
