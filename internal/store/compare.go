package store

import (
	"context"
	"errors"
	"slices"

	"github.com/dgraph-io/badger/v4"

	"github.com/shopsavvy/catalog-server/internal/sse"
)

// Key prefix for per-session comparison storage.
const comparePrefix = "compare:" // compare:{sessionID} → []productID JSON

// ErrCompareFull is returned when adding to a comparison set already at
// its capacity.
var ErrCompareFull = errors.New("comparison set is full")

func compareKey(sessionID string) []byte {
	return []byte(comparePrefix + sessionID)
}

// GetCompare returns the session's comparison set in insertion order. A
// session with no set yet gets an empty set, not an error.
func (s *Store) GetCompare(ctx context.Context, sessionID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := getInTxn(txn, compareKey(sessionID), &ids)
		return err
	})
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// AddCompare appends a product to the session's comparison set. Adding a
// product already present is a no-op. Adding beyond maxItems returns
// ErrCompareFull without changing the set. Returns the set after the call.
func (s *Store) AddCompare(ctx context.Context, sessionID, productID string, maxItems int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := compareKey(sessionID)
	var result []string
	changed := false

	err := s.db.Update(func(txn *badger.Txn) error {
		var ids []string
		if _, err := getInTxn(txn, key, &ids); err != nil {
			return err
		}

		if slices.Contains(ids, productID) {
			result = ids
			return nil
		}
		if maxItems > 0 && len(ids) >= maxItems {
			result = ids
			return ErrCompareFull
		}

		ids = append(ids, productID)
		result = ids
		changed = true
		return setInTxn(txn, key, ids)
	})
	if err != nil {
		if errors.Is(err, ErrCompareFull) {
			return result, err
		}
		return nil, err
	}

	if changed {
		s.eventEmitter.Emit(sse.NewCompareUpdatedEvent(sessionID, result))
	}
	return result, nil
}

// RemoveCompare removes a product from the comparison set. Removing a
// product that is not present is a no-op. Returns the set after the call.
func (s *Store) RemoveCompare(ctx context.Context, sessionID, productID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := compareKey(sessionID)
	var result []string
	changed := false

	err := s.db.Update(func(txn *badger.Txn) error {
		var ids []string
		if _, err := getInTxn(txn, key, &ids); err != nil {
			return err
		}

		idx := slices.Index(ids, productID)
		if idx < 0 {
			if ids == nil {
				ids = []string{}
			}
			result = ids
			return nil
		}

		ids = slices.Delete(ids, idx, idx+1)
		result = ids
		changed = true
		return setInTxn(txn, key, ids)
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.eventEmitter.Emit(sse.NewCompareUpdatedEvent(sessionID, result))
	}
	return result, nil
}

// SetCompare writes the comparison set wholesale; the import path uses it
// to persist a merged set in one write. The caller is responsible for
// validating ids and enforcing capacity.
func (s *Store) SetCompare(ctx context.Context, sessionID string, productIDs []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if productIDs == nil {
		productIDs = []string{}
	}
	if err := s.set(compareKey(sessionID), productIDs); err != nil {
		return err
	}

	s.eventEmitter.Emit(sse.NewCompareUpdatedEvent(sessionID, productIDs))
	return nil
}

// ClearCompare empties the session's comparison set.
func (s *Store) ClearCompare(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.delete(compareKey(sessionID)); err != nil {
		return err
	}

	s.eventEmitter.Emit(sse.NewCompareUpdatedEvent(sessionID, []string{}))
	return nil
}
