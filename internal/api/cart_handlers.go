package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shopsavvy/catalog-server/internal/domain"
	domainerrors "github.com/shopsavvy/catalog-server/internal/errors"
	"github.com/shopsavvy/catalog-server/internal/session"
)

func (s *Server) registerCartRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCart",
		Method:      http.MethodGet,
		Path:        "/api/v1/cart",
		Summary:     "Get cart",
		Description: "Returns the session's cart with resolved products and totals",
		Tags:        []string{"Cart"},
	}, s.handleGetCart)

	huma.Register(s.api, huma.Operation{
		OperationID: "addCartItem",
		Method:      http.MethodPost,
		Path:        "/api/v1/cart/items",
		Summary:     "Add cart item",
		Description: "Adds a product to the cart, accumulating quantity for repeats",
		Tags:        []string{"Cart"},
	}, s.handleAddCartItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCartItem",
		Method:      http.MethodPatch,
		Path:        "/api/v1/cart/items/{id}",
		Summary:     "Update cart item",
		Description: "Replaces the quantity on an existing cart line",
		Tags:        []string{"Cart"},
	}, s.handleUpdateCartItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeCartItem",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cart/items/{id}",
		Summary:     "Remove cart item",
		Description: "Removes a product's line from the cart",
		Tags:        []string{"Cart"},
	}, s.handleRemoveCartItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "clearCart",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cart",
		Summary:     "Clear cart",
		Description: "Empties the session's cart",
		Tags:        []string{"Cart"},
	}, s.handleClearCart)

	huma.Register(s.api, huma.Operation{
		OperationID: "exportCart",
		Method:      http.MethodGet,
		Path:        "/api/v1/cart/export",
		Summary:     "Export cart as CSV",
		Description: "Downloads the cart as a CSV document with a trailing total row",
		Tags:        []string{"Cart"},
	}, s.handleExportCart)
}

// === DTOs ===

// CartLineView is one resolved cart line.
type CartLineView struct {
	Product   *domain.Product `json:"product" doc:"Resolved product"`
	Quantity  int             `json:"quantity" doc:"Units in the cart"`
	LineTotal *float64        `json:"line_total" doc:"Price times quantity; null for unpriced products"`
}

// CartResponse is the full cart with rollups.
type CartResponse struct {
	Lines         []CartLineView `json:"lines" doc:"Cart lines in insertion order"`
	TotalQuantity int            `json:"total_quantity" doc:"Units across all lines"`
	Subtotal      float64        `json:"subtotal" doc:"Sum of priced line totals"`
	UnpricedLines int            `json:"unpriced_lines" doc:"Lines excluded from the subtotal for lack of a price"`
}

// CartOutput wraps the cart response for Huma.
type CartOutput struct {
	Body CartResponse
}

// AddCartItemRequest adds a product to the cart.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" minLength:"1" doc:"Product identifier"`
	Quantity  int    `json:"quantity,omitempty" doc:"Units to add (defaults to 1; values below 1 are clamped)"`
}

// AddCartItemInput wraps the add request for Huma.
type AddCartItemInput struct {
	Body AddCartItemRequest
}

// UpdateCartItemInput replaces a line's quantity.
type UpdateCartItemInput struct {
	ID   string `path:"id" doc:"Product identifier"`
	Body struct {
		Quantity int `json:"quantity" doc:"New quantity (values below 1 are clamped to 1)"`
	}
}

// ExportCartOutput is the raw CSV download.
type ExportCartOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// sessionID extracts the session established by the session middleware.
func sessionID(ctx context.Context) (string, error) {
	sid := session.FromContext(ctx)
	if sid == "" {
		return "", domainerrors.Internal("no session on request")
	}
	return sid, nil
}

// cartResponse resolves and summarizes the session's cart.
func (s *Server) cartResponse(ctx context.Context, sid string) (*CartOutput, error) {
	resolved, err := s.services.Cart.Resolve(ctx, sid)
	if err != nil {
		return nil, err
	}

	summary := domain.Summarize(resolved)
	lines := make([]CartLineView, 0, len(resolved))
	for _, line := range resolved {
		lines = append(lines, CartLineView{
			Product:   line.Product,
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal(),
		})
	}

	return &CartOutput{
		Body: CartResponse{
			Lines:         lines,
			TotalQuantity: summary.TotalQuantity,
			Subtotal:      summary.Subtotal,
			UnpricedLines: summary.UnpricedLines,
		},
	}, nil
}

// === Handlers ===

func (s *Server) handleGetCart(ctx context.Context, _ *struct{}) (*CartOutput, error) {
	sid, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}
	return s.cartResponse(ctx, sid)
}

func (s *Server) handleAddCartItem(ctx context.Context, input *AddCartItemInput) (*CartOutput, error) {
	sid, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.services.Cart.Add(ctx, sid, input.Body.ProductID, input.Body.Quantity); err != nil {
		return nil, err
	}
	return s.cartResponse(ctx, sid)
}

func (s *Server) handleUpdateCartItem(ctx context.Context, input *UpdateCartItemInput) (*CartOutput, error) {
	sid, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.services.Cart.SetQuantity(ctx, sid, input.ID, input.Body.Quantity); err != nil {
		return nil, err
	}
	return s.cartResponse(ctx, sid)
}

func (s *Server) handleRemoveCartItem(ctx context.Context, input *struct {
	ID string `path:"id" doc:"Product identifier"`
}) (*CartOutput, error) {
	sid, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.services.Cart.Remove(ctx, sid, input.ID); err != nil {
		return nil, err
	}
	return s.cartResponse(ctx, sid)
}

func (s *Server) handleClearCart(ctx context.Context, _ *struct{}) (*CartOutput, error) {
	sid, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Cart.Clear(ctx, sid); err != nil {
		return nil, err
	}
	return s.cartResponse(ctx, sid)
}

func (s *Server) handleExportCart(ctx context.Context, _ *struct{}) (*ExportCartOutput, error) {
	sid, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}

	data, err := s.services.Cart.ExportCSV(ctx, sid)
	if err != nil {
		return nil, err
	}

	return &ExportCartOutput{
		ContentType:        "text/csv; charset=utf-8",
		ContentDisposition: `attachment; filename="cart.csv"`,
		Body:               data,
	}, nil
}
