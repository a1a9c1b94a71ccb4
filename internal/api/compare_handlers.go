package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shopsavvy/catalog-server/internal/domain"
	"github.com/shopsavvy/catalog-server/internal/service"
)

func (s *Server) registerCompareRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCompare",
		Method:      http.MethodGet,
		Path:        "/api/v1/compare",
		Summary:     "Get comparison set",
		Description: "Returns the session's comparison set with resolved products",
		Tags:        []string{"Compare"},
	}, s.handleGetCompare)

	huma.Register(s.api, huma.Operation{
		OperationID: "addCompareItem",
		Method:      http.MethodPost,
		Path:        "/api/v1/compare/items",
		Summary:     "Add product to comparison",
		Description: "Appends a product to the comparison set, up to its capacity",
		Tags:        []string{"Compare"},
	}, s.handleAddCompareItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeCompareItem",
		Method:      http.MethodDelete,
		Path:        "/api/v1/compare/items/{id}",
		Summary:     "Remove product from comparison",
		Description: "Removes a product from the comparison set",
		Tags:        []string{"Compare"},
	}, s.handleRemoveCompareItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "clearCompare",
		Method:      http.MethodDelete,
		Path:        "/api/v1/compare",
		Summary:     "Clear comparison",
		Description: "Empties the comparison set",
		Tags:        []string{"Compare"},
	}, s.handleClearCompare)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCompareDiff",
		Method:      http.MethodGet,
		Path:        "/api/v1/compare/diff",
		Summary:     "Comparison diff table",
		Description: "Returns the side-by-side attribute table with difference flags",
		Tags:        []string{"Compare"},
	}, s.handleGetCompareDiff)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCompareShare",
		Method:      http.MethodGet,
		Path:        "/api/v1/compare/share",
		Summary:     "Share comparison",
		Description: "Returns a query string encoding the comparison set for sharing",
		Tags:        []string{"Compare"},
	}, s.handleGetCompareShare)

	huma.Register(s.api, huma.Operation{
		OperationID: "importCompare",
		Method:      http.MethodPost,
		Path:        "/api/v1/compare/import",
		Summary:     "Import shared comparison",
		Description: "Merges a shared link's id list into the comparison set",
		Tags:        []string{"Compare"},
	}, s.handleImportCompare)
}

// === DTOs ===

// CompareResponse is the comparison set with resolved products.
type CompareResponse struct {
	ProductIDs []string          `json:"product_ids" doc:"Comparison set in insertion order"`
	Products   []*domain.Product `json:"products" doc:"Resolved products, order matching product_ids"`
	MaxItems   int               `json:"max_items" doc:"Comparison capacity"`
}

// CompareOutput wraps the comparison response for Huma.
type CompareOutput struct {
	Body CompareResponse
}

// AddCompareItemInput adds one product to the comparison.
type AddCompareItemInput struct {
	Body struct {
		ProductID string `json:"product_id" minLength:"1" doc:"Product identifier"`
	}
}

// CompareDiffOutput wraps the diff table for Huma.
type CompareDiffOutput struct {
	Body domain.DiffTable
}

// CompareShareResponse carries the shareable query string.
type CompareShareResponse struct {
	Query string `json:"query" doc:"Query string for a shareable link (empty when the set is empty)"`
}

// CompareShareOutput wraps the share response for Huma.
type CompareShareOutput struct {
	Body CompareShareResponse
}

// ImportCompareInput merges a shared id list into the comparison set.
type ImportCompareInput struct {
	Body struct {
		IDs string `json:"ids" doc:"Comma-separated product ids from a shared link"`
	}
}

// compareResponse assembles the standard comparison payload.
func (s *Server) compareResponse(ctx context.Context, sid string) (*CompareOutput, error) {
	ids, err := s.services.Compare.List(ctx, sid)
	if err != nil {
		return nil, err
	}
	products, err := s.services.Compare.Products(ctx, sid)
	if err != nil {
		return nil, err
	}

	return &CompareOutput{
		Body: CompareResponse{
			ProductIDs: ids,
			Products:   products,
			MaxItems:   s.services.Compare.MaxItems(),
		},
	}, nil
}

// === Handlers ===

func (s *Server) handleGetCompare(ctx context.Context, _ *struct{}) (*CompareOutput, error) {
	sid, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}
	return s.compareResponse(ctx, sid)
}

func (s *Server) handleAddCompareItem(ctx context.Context, input *AddCompareItemInput) (*CompareOutput, error) {
	sid, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.services.Compare.Add(ctx, sid, input.Body.ProductID); err != nil {
		return nil, err
	}
	return s.compareResponse(ctx, sid)
}

func (s *Server) handleRemoveCompareItem(ctx context.Context, input *struct {
	ID string `path:"id" doc:"Product identifier"`
}) (*CompareOutput, error) {
	sid, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.services.Compare.Remove(ctx, sid, input.ID); err != nil {
		return nil, err
	}
	return s.compareResponse(ctx, sid)
}

func (s *Server) handleClearCompare(ctx context.Context, _ *struct{}) (*CompareOutput, error) {
	sid, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Compare.Clear(ctx, sid); err != nil {
		return nil, err
	}
	return s.compareResponse(ctx, sid)
}

func (s *Server) handleGetCompareDiff(ctx context.Context, _ *struct{}) (*CompareDiffOutput, error) {
	sid, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}

	table, err := s.services.Compare.Diff(ctx, sid)
	if err != nil {
		return nil, err
	}
	return &CompareDiffOutput{Body: table}, nil
}

func (s *Server) handleGetCompareShare(ctx context.Context, _ *struct{}) (*CompareShareOutput, error) {
	sid, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}

	q, err := s.services.Compare.ShareQuery(ctx, sid)
	if err != nil {
		return nil, err
	}
	return &CompareShareOutput{Body: CompareShareResponse{Query: q}}, nil
}

func (s *Server) handleImportCompare(ctx context.Context, input *ImportCompareInput) (*CompareOutput, error) {
	sid, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}

	ids := service.ParseShareQuery(input.Body.IDs)
	if _, err := s.services.Compare.Import(ctx, sid, ids); err != nil {
		return nil, err
	}
	return s.compareResponse(ctx, sid)
}
