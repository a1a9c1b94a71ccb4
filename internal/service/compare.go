package service

import (
	"context"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/shopsavvy/catalog-server/internal/catalog"
	"github.com/shopsavvy/catalog-server/internal/domain"
	"github.com/shopsavvy/catalog-server/internal/errors"
	"github.com/shopsavvy/catalog-server/internal/store"
)

// CompareListener receives a session's comparison set after every
// mutation. Listeners run synchronously after the change is persisted, in
// subscription order.
type CompareListener func(sessionID string, productIDs []string)

type compareSubscription struct {
	token string
	fn    CompareListener
}

// CompareService orchestrates the side-by-side comparison set: a small,
// ordered selection of products capped at a fixed size.
type CompareService struct {
	store    *store.Store
	catalog  *catalog.Catalog
	maxItems int
	logger   *slog.Logger

	mu   sync.RWMutex
	subs []compareSubscription
}

// NewCompareService creates a new compare service.
func NewCompareService(st *store.Store, cat *catalog.Catalog, maxItems int, logger *slog.Logger) *CompareService {
	return &CompareService{
		store:    st,
		catalog:  cat,
		maxItems: maxItems,
		logger:   logger,
	}
}

// MaxItems returns the comparison set capacity.
func (s *CompareService) MaxItems() int {
	return s.maxItems
}

// Subscribe registers a listener for comparison changes and returns a
// token for Unsubscribe.
func (s *CompareService) Subscribe(fn CompareListener) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.subs = append(s.subs, compareSubscription{token: token, fn: fn})
	s.mu.Unlock()
	return token
}

// Unsubscribe removes a previously registered listener. Unknown tokens are
// a no-op.
func (s *CompareService) Unsubscribe(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.subs {
		if s.subs[i].token == token {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

func (s *CompareService) notify(sessionID string, ids []string) {
	s.mu.RLock()
	subs := make([]compareSubscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, sub := range subs {
		sub.fn(sessionID, ids)
	}
}

// List returns the session's comparison set in insertion order.
func (s *CompareService) List(ctx context.Context, sessionID string) ([]string, error) {
	return s.store.GetCompare(ctx, sessionID)
}

// Contains reports whether a product is in the session's comparison set.
func (s *CompareService) Contains(ctx context.Context, sessionID, productID string) (bool, error) {
	ids, err := s.store.GetCompare(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, productID), nil
}

// Add appends a product to the comparison set. The product must exist in
// the catalog. Adding a product already in the set is a no-op; adding
// beyond capacity is rejected with a conflict.
func (s *CompareService) Add(ctx context.Context, sessionID, productID string) ([]string, error) {
	if _, err := s.catalog.GetByID(productID); err != nil {
		return nil, err
	}

	ids, err := s.store.AddCompare(ctx, sessionID, productID, s.maxItems)
	if err != nil {
		if errors.Is(err, store.ErrCompareFull) {
			return ids, errors.Conflictf("comparison is limited to %d products", s.maxItems)
		}
		return nil, err
	}

	s.notify(sessionID, ids)
	return ids, nil
}

// Remove takes a product out of the comparison set. Removing an absent
// product is a no-op.
func (s *CompareService) Remove(ctx context.Context, sessionID, productID string) ([]string, error) {
	ids, err := s.store.RemoveCompare(ctx, sessionID, productID)
	if err != nil {
		return nil, err
	}
	s.notify(sessionID, ids)
	return ids, nil
}

// Clear empties the comparison set.
func (s *CompareService) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.ClearCompare(ctx, sessionID); err != nil {
		return err
	}
	s.notify(sessionID, []string{})
	return nil
}

// Import merges a shared link's id list into the session's comparison
// set. Each id is added independently: ids already present and ids that
// no longer resolve are silently skipped, so a shared link opens for
// whoever follows it even when part of it went stale. Additions stop at
// capacity.
func (s *CompareService) Import(ctx context.Context, sessionID string, productIDs []string) ([]string, error) {
	current, err := s.store.GetCompare(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	kept := make([]string, 0, s.maxItems)
	kept = append(kept, current...)
	for _, id := range productIDs {
		if len(kept) >= s.maxItems {
			break
		}
		if slices.Contains(kept, id) {
			continue
		}
		if _, err := s.catalog.GetByID(id); err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				s.logger.Warn("skipping unknown product in shared comparison",
					"session_id", sessionID,
					"product_id", id,
				)
				continue
			}
			return nil, err
		}
		kept = append(kept, id)
	}

	if len(kept) == len(current) {
		return kept, nil
	}

	if err := s.store.SetCompare(ctx, sessionID, kept); err != nil {
		return nil, err
	}
	s.notify(sessionID, kept)
	return kept, nil
}

// Products resolves the comparison set against the catalog, preserving
// order. Stale ids are dropped with a warning.
func (s *CompareService) Products(ctx context.Context, sessionID string) ([]*domain.Product, error) {
	ids, err := s.store.GetCompare(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.catalog.GetByID(id)
		if err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				s.logger.Warn("dropping unknown product from comparison",
					"session_id", sessionID,
					"product_id", id,
				)
				continue
			}
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// Diff builds the side-by-side difference table for the comparison set.
func (s *CompareService) Diff(ctx context.Context, sessionID string) (domain.DiffTable, error) {
	products, err := s.Products(ctx, sessionID)
	if err != nil {
		return domain.DiffTable{}, err
	}
	return domain.BuildDiffTable(products), nil
}

// ShareQuery encodes the comparison set as a shareable query string
// ("ids=1,2,3"). An empty set encodes to an empty string.
func (s *CompareService) ShareQuery(ctx context.Context, sessionID string) (string, error) {
	ids, err := s.store.GetCompare(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", nil
	}
	v := url.Values{}
	v.Set("ids", strings.Join(ids, ","))
	return v.Encode(), nil
}

// ParseShareQuery extracts the id list from a shared link's "ids"
// parameter. Blank segments are dropped.
func ParseShareQuery(raw string) []string {
	ids := make([]string, 0)
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
