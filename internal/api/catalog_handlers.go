package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shopsavvy/catalog-server/internal/catalog"
	"github.com/shopsavvy/catalog-server/internal/domain"
	"github.com/shopsavvy/catalog-server/internal/query"
	"github.com/shopsavvy/catalog-server/internal/search"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listProducts",
		Method:      http.MethodGet,
		Path:        "/api/v1/products",
		Summary:     "Browse products",
		Description: "Searches, filters, sorts, and paginates the product catalog",
		Tags:        []string{"Catalog"},
	}, s.handleListProducts)

	huma.Register(s.api, huma.Operation{
		OperationID: "getProduct",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{id}",
		Summary:     "Get product",
		Description: "Returns a single product by id",
		Tags:        []string{"Catalog"},
	}, s.handleGetProduct)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCatalogIndex",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/index",
		Summary:     "Catalog index",
		Description: "Returns category and brand facet counts",
		Tags:        []string{"Catalog"},
	}, s.handleGetCatalogIndex)

	huma.Register(s.api, huma.Operation{
		OperationID: "suggestProducts",
		Method:      http.MethodGet,
		Path:        "/api/v1/search/suggest",
		Summary:     "Product suggestions",
		Description: "Returns ranked typeahead suggestions for a partial query",
		Tags:        []string{"Catalog"},
	}, s.handleSuggest)
}

// === DTOs ===

// ListProductsInput carries the browse state as URL parameters. All
// parameters are free-form strings: malformed values normalize to
// defaults instead of failing the request, matching what a shareable URL
// pasted from anywhere should do.
type ListProductsInput struct {
	Query    string `query:"q" doc:"Free-text search over title, brand, category, and specs"`
	Category string `query:"category" doc:"Exact category filter"`
	Brand    string `query:"brand" doc:"Exact brand filter"`
	PriceMin string `query:"price_min" doc:"Minimum price, inclusive"`
	PriceMax string `query:"price_max" doc:"Maximum price, inclusive"`
	Sort     string `query:"sort" doc:"Sort mode: relevance, price-asc, price-desc, title-asc, title-desc"`
	Page     string `query:"page" doc:"Page number, 1-based"`
}

// ProductListResponse is one page of browse results.
type ProductListResponse struct {
	Items     []*domain.Product `json:"items" doc:"Products on this page"`
	Total     int               `json:"total" doc:"Matching products across all pages"`
	Page      int               `json:"page" doc:"Resolved page number (after clamping)"`
	PageCount int               `json:"page_count" doc:"Total pages"`
	Canonical string            `json:"canonical" doc:"Canonical query string for this browse state (defaults omitted)"`
}

// ProductListOutput wraps the list response for Huma.
type ProductListOutput struct {
	Body ProductListResponse
}

// ProductOutput wraps a single product for Huma.
type ProductOutput struct {
	Body *domain.Product
}

// CatalogIndexOutput wraps the facet index for Huma.
type CatalogIndexOutput struct {
	Body catalog.Index
}

// SuggestInput carries a partial search input.
type SuggestInput struct {
	Query string `query:"q" required:"true" minLength:"1" maxLength:"200" doc:"Partial search input"`
	Limit int    `query:"limit" minimum:"1" maximum:"50" doc:"Max suggestions (default 10)"`
}

// SuggestResponse contains ranked suggestions.
type SuggestResponse struct {
	Suggestions []search.Suggestion `json:"suggestions" doc:"Ranked suggestions"`
}

// SuggestOutput wraps the suggest response for Huma.
type SuggestOutput struct {
	Body SuggestResponse
}

// === Handlers ===

func (s *Server) handleListProducts(ctx context.Context, input *ListProductsInput) (*ProductListOutput, error) {
	v := url.Values{}
	v.Set("q", input.Query)
	v.Set("category", input.Category)
	v.Set("brand", input.Brand)
	v.Set("price_min", input.PriceMin)
	v.Set("price_max", input.PriceMax)
	v.Set("sort", input.Sort)
	v.Set("page", input.Page)

	state := query.StateFromValues(v)

	result, err := s.services.Catalog.Query(ctx, state)
	if err != nil {
		return nil, err
	}

	// Echo the resolved page so the canonical link reflects clamping.
	state.Page = result.Page

	return &ProductListOutput{
		Body: ProductListResponse{
			Items:     result.Items,
			Total:     result.Total,
			Page:      result.Page,
			PageCount: result.PageCount,
			Canonical: state.Encode(),
		},
	}, nil
}

func (s *Server) handleGetProduct(ctx context.Context, input *struct {
	ID string `path:"id" doc:"Product identifier"`
}) (*ProductOutput, error) {
	p, err := s.services.Catalog.Product(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ProductOutput{Body: p}, nil
}

func (s *Server) handleGetCatalogIndex(ctx context.Context, _ *struct{}) (*CatalogIndexOutput, error) {
	idx, err := s.services.Catalog.Index(ctx)
	if err != nil {
		return nil, err
	}
	return &CatalogIndexOutput{Body: idx}, nil
}

func (s *Server) handleSuggest(ctx context.Context, input *SuggestInput) (*SuggestOutput, error) {
	suggestions, err := s.services.Catalog.Suggest(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, err
	}
	return &SuggestOutput{Body: SuggestResponse{Suggestions: suggestions}}, nil
}
