package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCompare_EmptySession(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ids, err := s.GetCompare(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NotNil(t, ids)
}

func TestAddCompare_OrderedAndDeduplicated(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	_, err := s.AddCompare(ctx, "sess-1", "p1", 4)
	require.NoError(t, err)
	_, err = s.AddCompare(ctx, "sess-1", "p2", 4)
	require.NoError(t, err)

	// Re-adding keeps the original position.
	ids, err := s.AddCompare(ctx, "sess-1", "p1", 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids)
}

func TestAddCompare_CapacityLimit(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	for _, id := range []string{"p1", "p2"} {
		_, err := s.AddCompare(ctx, "sess-1", id, 2)
		require.NoError(t, err)
	}

	ids, err := s.AddCompare(ctx, "sess-1", "p3", 2)
	assert.ErrorIs(t, err, ErrCompareFull)
	// Set is unchanged on a rejected add.
	assert.Equal(t, []string{"p1", "p2"}, ids)

	// Re-adding an existing member is still fine at capacity.
	ids, err = s.AddCompare(ctx, "sess-1", "p1", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids)
}

func TestRemoveCompare(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	for _, id := range []string{"p1", "p2", "p3"} {
		_, err := s.AddCompare(ctx, "sess-1", id, 4)
		require.NoError(t, err)
	}

	ids, err := s.RemoveCompare(ctx, "sess-1", "p2")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p3"}, ids)

	// Removing an absent product is a no-op.
	ids, err = s.RemoveCompare(ctx, "sess-1", "ghost")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p3"}, ids)
}

func TestSetCompare_ReplacesWholesale(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	_, err := s.AddCompare(ctx, "sess-1", "p1", 4)
	require.NoError(t, err)

	require.NoError(t, s.SetCompare(ctx, "sess-1", []string{"p7", "p8"}))

	ids, err := s.GetCompare(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p7", "p8"}, ids)
}

func TestClearCompare(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	_, err := s.AddCompare(ctx, "sess-1", "p1", 4)
	require.NoError(t, err)

	require.NoError(t, s.ClearCompare(ctx, "sess-1"))

	ids, err := s.GetCompare(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestCompare_SessionsAreIsolated(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	_, err := s.AddCompare(ctx, "sess-a", "p1", 4)
	require.NoError(t, err)

	ids, err := s.GetCompare(ctx, "sess-b")
	require.NoError(t, err)
	assert.Empty(t, ids)
}
