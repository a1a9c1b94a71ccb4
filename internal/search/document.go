// Package search provides ranked product suggestions using Bleve. The
// query engine's catalog filtering is deliberately exact; this index
// exists for the typeahead surface, where fuzzy and prefix matching earn
// their keep.
package search

import (
	"github.com/shopsavvy/catalog-server/internal/domain"
)

// ProductDocument is the document structure for the Bleve index. Only the
// fields worth suggesting on are indexed; the catalog remains the source
// of truth for everything else.
type ProductDocument struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Brand    string `json:"brand,omitempty"`
	Category string `json:"category,omitempty"`
	SKU      string `json:"sku,omitempty"`
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *ProductDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":    d.ID,
		"title": d.Title,
	}
	if d.Brand != "" {
		m["brand"] = d.Brand
	}
	if d.Category != "" {
		m["category"] = d.Category
	}
	if d.SKU != "" {
		m["sku"] = d.SKU
	}
	return m
}

// ProductToDocument converts a catalog product to an index document.
// Sentinel field values are left out rather than indexed as text.
func ProductToDocument(p *domain.Product) *ProductDocument {
	doc := &ProductDocument{
		ID:    p.ID,
		Title: p.Title,
	}
	if p.Brand != domain.ValueNA {
		doc.Brand = p.Brand
	}
	if p.Category != domain.ValueUncategorized && p.Category != domain.ValueNA {
		doc.Category = p.Category
	}
	if p.SKU != domain.ValueNA {
		doc.SKU = p.SKU
	}
	return doc
}
