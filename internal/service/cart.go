package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/shopsavvy/catalog-server/internal/catalog"
	"github.com/shopsavvy/catalog-server/internal/domain"
	"github.com/shopsavvy/catalog-server/internal/errors"
	"github.com/shopsavvy/catalog-server/internal/store"
)

// CartListener receives a session's cart after every mutation. Listeners
// run synchronously after the change is persisted, in subscription order.
type CartListener func(sessionID string, lines []domain.CartLine)

type cartSubscription struct {
	token string
	fn    CartListener
}

// CartService orchestrates cart operations: persistence, resolution
// against the catalog, summary rollups, and CSV export.
type CartService struct {
	store   *store.Store
	catalog *catalog.Catalog
	logger  *slog.Logger

	mu   sync.RWMutex
	subs []cartSubscription
}

// NewCartService creates a new cart service.
func NewCartService(st *store.Store, cat *catalog.Catalog, logger *slog.Logger) *CartService {
	return &CartService{
		store:   st,
		catalog: cat,
		logger:  logger,
	}
}

// Subscribe registers a listener for cart changes and returns a token for
// Unsubscribe.
func (s *CartService) Subscribe(fn CartListener) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.subs = append(s.subs, cartSubscription{token: token, fn: fn})
	s.mu.Unlock()
	return token
}

// Unsubscribe removes a previously registered listener. Unknown tokens are
// a no-op.
func (s *CartService) Unsubscribe(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.subs {
		if s.subs[i].token == token {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

func (s *CartService) notify(sessionID string, lines []domain.CartLine) {
	s.mu.RLock()
	subs := make([]cartSubscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, sub := range subs {
		sub.fn(sessionID, lines)
	}
}

// List returns the session's cart lines in insertion order.
func (s *CartService) List(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	return s.store.GetCart(ctx, sessionID)
}

// Add puts quantity of a product into the cart. Quantities below one are
// clamped to one; adding a product already in the cart accumulates onto
// its line. The id is not checked against the catalog here: validation is
// lazy, at resolution, so a cart written against one catalog revision
// survives a restart onto another.
func (s *CartService) Add(ctx context.Context, sessionID, productID string, quantity int) ([]domain.CartLine, error) {
	lines, err := s.store.AddCartLine(ctx, sessionID, productID, quantity)
	if err != nil {
		return nil, err
	}

	s.logger.Info("cart line added",
		"session_id", sessionID,
		"product_id", productID,
		"quantity", domain.ClampQuantity(quantity),
	)
	s.notify(sessionID, lines)
	return lines, nil
}

// SetQuantity replaces the quantity on an existing line, clamped to a
// minimum of one. Products not in the cart are left alone.
func (s *CartService) SetQuantity(ctx context.Context, sessionID, productID string, quantity int) ([]domain.CartLine, error) {
	lines, err := s.store.SetCartQuantity(ctx, sessionID, productID, quantity)
	if err != nil {
		return nil, err
	}
	s.notify(sessionID, lines)
	return lines, nil
}

// Remove takes a product's line out of the cart. Removing an absent
// product is a no-op.
func (s *CartService) Remove(ctx context.Context, sessionID, productID string) ([]domain.CartLine, error) {
	lines, err := s.store.RemoveCartLine(ctx, sessionID, productID)
	if err != nil {
		return nil, err
	}
	s.notify(sessionID, lines)
	return lines, nil
}

// Clear empties the session's cart.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.ClearCart(ctx, sessionID); err != nil {
		return err
	}
	s.notify(sessionID, []domain.CartLine{})
	return nil
}

// Resolve joins cart lines against the catalog. Lines whose product no
// longer exists (a cart can outlive a catalog revision) are dropped with a
// warning rather than failing the whole cart.
func (s *CartService) Resolve(ctx context.Context, sessionID string) ([]domain.ResolvedLine, error) {
	lines, err := s.store.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	resolved := make([]domain.ResolvedLine, 0, len(lines))
	for _, line := range lines {
		p, err := s.catalog.GetByID(line.ProductID)
		if err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				s.logger.Warn("dropping cart line for unknown product",
					"session_id", sessionID,
					"product_id", line.ProductID,
				)
				continue
			}
			return nil, err
		}
		resolved = append(resolved, domain.ResolvedLine{Product: p, Quantity: line.Quantity})
	}
	return resolved, nil
}

// Summary resolves the cart and computes quantity and subtotal rollups.
func (s *CartService) Summary(ctx context.Context, sessionID string) (domain.CartSummary, error) {
	resolved, err := s.Resolve(ctx, sessionID)
	if err != nil {
		return domain.CartSummary{}, err
	}
	return domain.Summarize(resolved), nil
}

// csvHeader is the fixed column set for cart exports.
var csvHeader = []string{"SKU", "Title", "Brand", "Category", "Price", "PriceUnit", "Quantity", "LineTotal"}

// ExportCSV renders the session's cart as a CSV document. Unpriced
// products export "N/A" in the price columns and are excluded from the
// subtotal. The final row carries a TOTAL marker in the quantity column
// and the subtotal in the line total column.
func (s *CartService) ExportCSV(ctx context.Context, sessionID string) ([]byte, error) {
	resolved, err := s.Resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	summary := domain.Summarize(resolved)
	for _, line := range resolved {
		p := line.Product
		record := []string{
			p.SKU,
			p.Title,
			p.Brand,
			p.Category,
			formatCSVPrice(p.Price),
			p.PriceUnit,
			strconv.Itoa(line.Quantity),
			formatCSVPrice(line.LineTotal()),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv line: %w", err)
		}
	}

	total := []string{"", "", "", "", "", "", "TOTAL", formatCSVPrice(&summary.Subtotal)}
	if err := w.Write(total); err != nil {
		return nil, fmt.Errorf("write csv total: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func formatCSVPrice(p *float64) string {
	if p == nil {
		return domain.ValueNA
	}
	return strconv.FormatFloat(*p, 'f', 2, 64)
}
