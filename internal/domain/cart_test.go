package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 { return &v }

func TestClampQuantity(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{7, 7},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClampQuantity(tt.input), "input: %d", tt.input)
	}
}

func TestResolvedLine_LineTotal(t *testing.T) {
	priced := ResolvedLine{
		Product:  &Product{ID: "1", Price: price(12.5)},
		Quantity: 2,
	}
	total := priced.LineTotal()
	require.NotNil(t, total)
	assert.InDelta(t, 25.0, *total, 0.0001)

	unpriced := ResolvedLine{
		Product:  &Product{ID: "2"},
		Quantity: 3,
	}
	assert.Nil(t, unpriced.LineTotal())
}

func TestSummarize(t *testing.T) {
	lines := []ResolvedLine{
		{Product: &Product{ID: "1", Price: price(10)}, Quantity: 2},
		{Product: &Product{ID: "2", Price: price(2.5)}, Quantity: 4},
		{Product: &Product{ID: "3"}, Quantity: 1},
	}

	s := Summarize(lines)
	assert.Equal(t, 3, s.Lines)
	assert.Equal(t, 7, s.TotalQuantity)
	assert.InDelta(t, 30.0, s.Subtotal, 0.0001)
	assert.Equal(t, 1, s.UnpricedLines)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Lines)
	assert.Zero(t, s.Subtotal)
	assert.Zero(t, s.UnpricedLines)
}
