package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsavvy/catalog-server/internal/domain"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "catalog-store-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := New(dbPath, nil, NewNoopEmitter())
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

func TestGetCart_EmptySession(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	lines, err := s.GetCart(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.NotNil(t, lines)
}

func TestAddCartLine_AccumulatesQuantity(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	lines, err := s.AddCartLine(ctx, "sess-1", "p1", 2)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)

	// Adding the same product merges onto the existing line.
	lines, err = s.AddCartLine(ctx, "sess-1", "p1", 3)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, domain.CartLine{ProductID: "p1", Quantity: 5}, lines[0])
}

func TestAddCartLine_ClampsQuantity(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	lines, err := s.AddCartLine(context.Background(), "sess-1", "p1", -4)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestAddCartLine_PreservesInsertionOrder(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	_, err := s.AddCartLine(ctx, "sess-1", "p1", 1)
	require.NoError(t, err)
	_, err = s.AddCartLine(ctx, "sess-1", "p2", 1)
	require.NoError(t, err)
	// Re-adding p1 must not move it to the end.
	lines, err := s.AddCartLine(ctx, "sess-1", "p1", 1)
	require.NoError(t, err)

	require.Len(t, lines, 2)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, "p2", lines[1].ProductID)
}

func TestSetCartQuantity(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	_, err := s.AddCartLine(ctx, "sess-1", "p1", 2)
	require.NoError(t, err)

	lines, err := s.SetCartQuantity(ctx, "sess-1", "p1", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, lines[0].Quantity)

	// Clamped, not rejected.
	lines, err = s.SetCartQuantity(ctx, "sess-1", "p1", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, lines[0].Quantity)

	// Unknown product is a no-op.
	lines, err = s.SetCartQuantity(ctx, "sess-1", "ghost", 3)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].ProductID)
}

func TestRemoveCartLine(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	_, err := s.AddCartLine(ctx, "sess-1", "p1", 1)
	require.NoError(t, err)
	_, err = s.AddCartLine(ctx, "sess-1", "p2", 1)
	require.NoError(t, err)

	lines, err := s.RemoveCartLine(ctx, "sess-1", "p1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ProductID)

	// Removing an absent product is a no-op.
	lines, err = s.RemoveCartLine(ctx, "sess-1", "p1")
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestClearCart(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	_, err := s.AddCartLine(ctx, "sess-1", "p1", 3)
	require.NoError(t, err)

	require.NoError(t, s.ClearCart(ctx, "sess-1"))

	lines, err := s.GetCart(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCart_SessionsAreIsolated(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	_, err := s.AddCartLine(ctx, "sess-a", "p1", 1)
	require.NoError(t, err)

	lines, err := s.GetCart(ctx, "sess-b")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCart_SurvivesReopen(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "catalog-store-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "test.db")
	ctx := context.Background()

	s, err := New(dbPath, nil, NewNoopEmitter())
	require.NoError(t, err)
	_, err = s.AddCartLine(ctx, "sess-1", "p1", 4)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = New(dbPath, nil, NewNoopEmitter())
	require.NoError(t, err)
	defer s.Close()

	lines, err := s.GetCart(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, domain.CartLine{ProductID: "p1", Quantity: 4}, lines[0])
}
