// Package service provides the business logic layer over the catalog,
// cart, and comparison stores.
package service

import (
	"context"
	"log/slog"

	"github.com/shopsavvy/catalog-server/internal/catalog"
	"github.com/shopsavvy/catalog-server/internal/domain"
	"github.com/shopsavvy/catalog-server/internal/query"
	"github.com/shopsavvy/catalog-server/internal/search"
)

// CatalogService answers catalog queries over the loaded product set.
type CatalogService struct {
	catalog  *catalog.Catalog
	suggest  *search.SuggestIndex
	pageSize int
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service. suggest may be nil when
// typeahead is disabled.
func NewCatalogService(cat *catalog.Catalog, suggest *search.SuggestIndex, pageSize int, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		catalog:  cat,
		suggest:  suggest,
		pageSize: pageSize,
		logger:   logger,
	}
}

// Query runs the search/filter/sort/paginate pipeline for one browse state.
func (s *CatalogService) Query(ctx context.Context, state query.State) (query.PageResult, error) {
	if err := ctx.Err(); err != nil {
		return query.PageResult{}, err
	}

	products, err := s.catalog.All()
	if err != nil {
		return query.PageResult{}, err
	}

	return query.Run(products, state, s.pageSize), nil
}

// Product returns a single product by id.
func (s *CatalogService) Product(ctx context.Context, productID string) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.catalog.GetByID(productID)
}

// Index returns the derived filter index (facet counts).
func (s *CatalogService) Index(ctx context.Context) (catalog.Index, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Index{}, err
	}
	return s.catalog.Index()
}

// Suggest returns ranked typeahead suggestions. Returns an empty list when
// the suggest index is disabled.
func (s *CatalogService) Suggest(ctx context.Context, input string, limit int) ([]search.Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.suggest == nil {
		return []search.Suggestion{}, nil
	}
	return s.suggest.Suggest(ctx, input, limit)
}
