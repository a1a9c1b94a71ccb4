// Package catalog holds the immutable product collection and its derived
// filter index. The catalog is loaded exactly once per process; every
// query, cart resolution, and comparison reads the same shared snapshot.
package catalog

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/shopsavvy/catalog-server/internal/domain"
	"github.com/shopsavvy/catalog-server/internal/errors"
)

// Source provides the raw product records. Production uses CSVLoader;
// tests inject an in-memory slice.
type Source interface {
	Load() ([]*domain.Product, error)
}

// SliceSource is a Source over an in-memory product slice.
type SliceSource []*domain.Product

// Load implements Source.
func (s SliceSource) Load() ([]*domain.Product, error) { return s, nil }

// FacetCount pairs a facet value (category or brand name) with the
// number of products carrying it.
type FacetCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Index is the derived filter index: per-category and per-brand product
// counts. Sentinel values ("Uncategorized", "N/A") are excluded from the
// facet lists but still count toward TotalProducts.
type Index struct {
	Categories    []FacetCount `json:"categories"` // ordered by count desc, then name
	Brands        []FacetCount `json:"brands"`     // top N by count, same order
	TotalProducts int          `json:"total_products"`
}

// Catalog is the loaded-once product store.
type Catalog struct {
	source    Source
	brandTopN int
	logger    *slog.Logger

	loadOnce sync.Once
	loadErr  error
	products []*domain.Product
	byID     map[string]*domain.Product
	index    Index
}

// New creates a catalog over the given source. Nothing is read until Load.
func New(source Source, brandTopN int, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Catalog{
		source:    source,
		brandTopN: brandTopN,
		logger:    logger,
	}
}

// Load reads and indexes the product collection. The work happens once;
// later calls return the cached outcome, including a cached failure. On
// failure no partial catalog is exposed.
func (c *Catalog) Load() error {
	c.loadOnce.Do(func() {
		products, err := c.source.Load()
		if err != nil {
			c.loadErr = errors.Wrap(err, errors.CodeCatalogUnavailable, "catalog load failed")
			c.logger.Error("catalog load failed", "error", err)
			return
		}

		byID := make(map[string]*domain.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		c.products = products
		c.byID = byID
		c.index = buildIndex(products, c.brandTopN)

		c.logger.Info("catalog ready",
			"products", len(products),
			"categories", len(c.index.Categories),
			"brands", len(c.index.Brands),
		)
	})
	return c.loadErr
}

// GetByID returns the product for id, or a not-found error. An unknown id
// is ordinary input here; callers decide whether it matters.
func (c *Catalog) GetByID(id string) (*domain.Product, error) {
	if err := c.Load(); err != nil {
		return nil, err
	}
	p, ok := c.byID[id]
	if !ok {
		return nil, errors.NotFoundf("product %s not found", id)
	}
	return p, nil
}

// All returns the full product sequence in load order. The returned slice
// is the catalog's own backing store; callers must treat it as read-only.
func (c *Catalog) All() ([]*domain.Product, error) {
	if err := c.Load(); err != nil {
		return nil, err
	}
	return c.products, nil
}

// Index returns the derived filter index.
func (c *Catalog) Index() (Index, error) {
	if err := c.Load(); err != nil {
		return Index{}, err
	}
	return c.index, nil
}

// Len returns the number of loaded products (0 before a successful load).
func (c *Catalog) Len() int {
	return len(c.products)
}

// buildIndex derives facet counts from the product set.
func buildIndex(products []*domain.Product, brandTopN int) Index {
	categoryCounts := make(map[string]int)
	brandCounts := make(map[string]int)

	for _, p := range products {
		if p.Category != domain.ValueUncategorized && p.Category != domain.ValueNA {
			categoryCounts[p.Category]++
		}
		if p.Brand != domain.ValueNA {
			brandCounts[p.Brand]++
		}
	}

	brands := sortedFacets(brandCounts)
	if brandTopN > 0 && len(brands) > brandTopN {
		brands = brands[:brandTopN]
	}

	return Index{
		Categories:    sortedFacets(categoryCounts),
		Brands:        brands,
		TotalProducts: len(products),
	}
}

// sortedFacets orders facets by count descending, name ascending on ties.
func sortedFacets(counts map[string]int) []FacetCount {
	facets := make([]FacetCount, 0, len(counts))
	for name, count := range counts {
		facets = append(facets, FacetCount{Name: name, Count: count})
	}
	sort.Slice(facets, func(i, j int) bool {
		if facets[i].Count != facets[j].Count {
			return facets[i].Count > facets[j].Count
		}
		return facets[i].Name < facets[j].Name
	})
	return facets
}
