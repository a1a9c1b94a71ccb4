package store

import (
	"context"

	"github.com/dgraph-io/badger/v4"

	"github.com/shopsavvy/catalog-server/internal/domain"
	"github.com/shopsavvy/catalog-server/internal/sse"
)

// Key prefix for per-session cart storage.
const cartPrefix = "cart:" // cart:{sessionID} → []CartLine JSON

func cartKey(sessionID string) []byte {
	return []byte(cartPrefix + sessionID)
}

// GetCart returns the session's cart lines in insertion order. A session
// with no cart yet gets an empty cart, not an error.
func (s *Store) GetCart(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var lines []domain.CartLine
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := getInTxn(txn, cartKey(sessionID), &lines)
		return err
	})
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return lines, nil
}

// AddCartLine adds quantity of a product to the session's cart. Adding a
// product already in the cart accumulates onto the existing line instead
// of creating a second one. Quantities below one are clamped to one.
// Returns the cart after the change.
func (s *Store) AddCartLine(ctx context.Context, sessionID, productID string, quantity int) ([]domain.CartLine, error) {
	quantity = domain.ClampQuantity(quantity)

	return s.mutateCart(ctx, sessionID, func(lines []domain.CartLine) []domain.CartLine {
		for i := range lines {
			if lines[i].ProductID == productID {
				lines[i].Quantity += quantity
				return lines
			}
		}
		return append(lines, domain.CartLine{ProductID: productID, Quantity: quantity})
	})
}

// SetCartQuantity replaces the quantity on an existing line. Quantities
// below one are clamped to one. Setting a product that is not in the cart
// is a no-op. Returns the cart after the change.
func (s *Store) SetCartQuantity(ctx context.Context, sessionID, productID string, quantity int) ([]domain.CartLine, error) {
	quantity = domain.ClampQuantity(quantity)

	return s.mutateCart(ctx, sessionID, func(lines []domain.CartLine) []domain.CartLine {
		for i := range lines {
			if lines[i].ProductID == productID {
				lines[i].Quantity = quantity
				break
			}
		}
		return lines
	})
}

// RemoveCartLine removes a product's line from the cart. Removing a
// product that is not in the cart is a no-op. Returns the cart after the
// change.
func (s *Store) RemoveCartLine(ctx context.Context, sessionID, productID string) ([]domain.CartLine, error) {
	return s.mutateCart(ctx, sessionID, func(lines []domain.CartLine) []domain.CartLine {
		for i := range lines {
			if lines[i].ProductID == productID {
				return append(lines[:i], lines[i+1:]...)
			}
		}
		return lines
	})
}

// ClearCart empties the session's cart.
func (s *Store) ClearCart(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.delete(cartKey(sessionID)); err != nil {
		return err
	}

	s.eventEmitter.Emit(sse.NewCartUpdatedEvent(sessionID, []domain.CartLine{}))
	return nil
}

// mutateCart applies fn to the session's cart in one read-modify-write
// transaction and broadcasts the result.
func (s *Store) mutateCart(ctx context.Context, sessionID string, fn func([]domain.CartLine) []domain.CartLine) ([]domain.CartLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := cartKey(sessionID)
	var result []domain.CartLine

	err := s.db.Update(func(txn *badger.Txn) error {
		var lines []domain.CartLine
		if _, err := getInTxn(txn, key, &lines); err != nil {
			return err
		}

		lines = fn(lines)
		if lines == nil {
			lines = []domain.CartLine{}
		}
		result = lines

		return setInTxn(txn, key, lines)
	})
	if err != nil {
		return nil, err
	}

	s.eventEmitter.Emit(sse.NewCartUpdatedEvent(sessionID, result))
	return result, nil
}
