package domain

import "fmt"

// Sentinel values used throughout the catalog. The source dataset fills
// gaps with "N/A"; category extraction falls back to "Uncategorized".
const (
	ValueNA            = "N/A"
	ValueUncategorized = "Uncategorized"
)

// DefaultPriceUnit is used when the source row has no price unit.
const DefaultPriceUnit = "/ each"

// Product is a single catalog entry. Products are immutable once loaded:
// the catalog is built exactly once per process and never mutated, so a
// *Product can be shared freely across queries and sessions.
type Product struct {
	ID          string            `json:"product_id"`
	Title       string            `json:"title"`
	Brand       string            `json:"brand"`
	Category    string            `json:"category"`     // leaf display name
	CategoryTop string            `json:"category_top"` // top-level taxonomy bucket
	Price       *float64          `json:"price"`        // nil when the source has no usable price
	PriceUnit   string            `json:"price_unit"`
	ImageURL    string            `json:"image_url,omitempty"`
	SKU         string            `json:"sku"`
	ModelNumber string            `json:"model_number"`
	Specs       map[string]string `json:"specs,omitempty"`
	SourceURL   string            `json:"source_url,omitempty"`
}

// HasPrice reports whether the product has a known price.
func (p *Product) HasPrice() bool {
	return p.Price != nil
}

// PriceDisplay renders the price with its unit, e.g. "$12.50 / each".
// Unpriced products render as "Price unavailable".
func (p *Product) PriceDisplay() string {
	if p.Price == nil {
		return "Price unavailable"
	}
	unit := p.PriceUnit
	if unit == "" {
		unit = DefaultPriceUnit
	}
	return fmt.Sprintf("$%.2f %s", *p.Price, unit)
}

// Spec returns the value for a spec key, or "" if the product lacks it.
// Spec keys are not uniform across products; absence is an ordinary state.
func (p *Product) Spec(key string) string {
	if p.Specs == nil {
		return ""
	}
	return p.Specs[key]
}
