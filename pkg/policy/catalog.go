package policy

import (
	"fmt"
	"slices"
)

// Product is a catalog preset: a product type with a preselected material.
type Product struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Material    string `json:"material" yaml:"material"`
	Description string `json:"description" yaml:"description"`
	PriceCents  int    `json:"price_cents" yaml:"price_cents"`
	Tag         string `json:"tag" yaml:"tag"`
}

// Price returns the price formatted with two decimals.
func (p Product) Price() string {
	return fmt.Sprintf("$%d.%02d", p.PriceCents/100, p.PriceCents%100)
}

var catalog = []Product{
	{
		ID:          "adhesive-clear",
		Name:        "Cinta Adhesiva Transparente Premium",
		Type:        TypeAdhesive,
		Material:    MaterialTransparent,
		Description: "Cinta transparente de alta claridad ideal para empaques de presentación.",
		PriceCents:  20000,
		Tag:         "Más vendida",
	},
	{
		ID:          "adhesive-brown",
		Name:        "Cinta Canela Reforzada",
		Type:        TypeAdhesive,
		Material:    MaterialCanela,
		Description: "Cinta canela resistente para cajas de envío de alta seguridad.",
		PriceCents:  30000,
		Tag:         "Resistente",
	},
	{
		ID:          "eco-kraft",
		Name:        "Cinta Eco Kraft",
		Type:        TypeEco,
		Material:    MaterialKraftEco,
		Description: "Cinta de papel kraft ecológica, 100% reciclable y amigable con el planeta.",
		PriceCents:  25000,
		Tag:         "Eco-Friendly",
	},
	{
		ID:          "filament",
		Name:        "Fleje de Filamento",
		Type:        TypeFilament,
		Material:    MaterialTransparent,
		Description: "Fleje de filamento ultra resistente para cargas pesadas y paletizado.",
		PriceCents:  23000,
		Tag:         "Alta tensión",
	},
}

// Products returns the catalog presets in display order.
func Products() []Product {
	return slices.Clone(catalog)
}

// ResolveProduct returns the catalog preset for id.
func ResolveProduct(id string) (Product, error) {
	for _, p := range catalog {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("%w: %q", ErrUnknownProduct, id)
}
