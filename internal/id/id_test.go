package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Format(t *testing.T) {
	id, err := Generate("sess")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(id, "sess-"))
	// prefix + "-" + 21-char nanoid
	assert.Len(t, id, len("sess-")+21)
}

func TestGenerate_Uniqueness(t *testing.T) {
	ids := make(map[string]bool)
	count := 1000

	for range count {
		id, err := Generate("test")
		require.NoError(t, err)
		assert.False(t, ids[id], "ID should be unique: %s", id)
		ids[id] = true
	}

	assert.Len(t, ids, count)
}

func TestMustGenerate(t *testing.T) {
	assert.NotPanics(t, func() {
		id := MustGenerate("sub")
		assert.NotEmpty(t, id)
	})
}
