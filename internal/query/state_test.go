package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, SortPriceAsc, ParseSortMode("price-asc"))
	assert.Equal(t, SortTitleDesc, ParseSortMode("title-desc"))
	assert.Equal(t, SortRelevance, ParseSortMode("relevance"))
	assert.Equal(t, SortRelevance, ParseSortMode(""))
	assert.Equal(t, SortRelevance, ParseSortMode("popularity"))
}

func TestStateFromValues(t *testing.T) {
	v := url.Values{}
	v.Set("q", "wrench")
	v.Set("category", "Wrenches")
	v.Set("brand", "GripCo")
	v.Set("price_min", "10")
	v.Set("price_max", "99.5")
	v.Set("sort", "price-desc")
	v.Set("page", "3")

	s := StateFromValues(v)
	assert.Equal(t, "wrench", s.Search)
	assert.Equal(t, "Wrenches", s.Filters.Category)
	assert.Equal(t, "GripCo", s.Filters.Brand)
	require.NotNil(t, s.Filters.PriceMin)
	assert.InDelta(t, 10.0, *s.Filters.PriceMin, 0.0001)
	require.NotNil(t, s.Filters.PriceMax)
	assert.InDelta(t, 99.5, *s.Filters.PriceMax, 0.0001)
	assert.Equal(t, SortPriceDesc, s.Sort)
	assert.Equal(t, 3, s.Page)
}

func TestStateFromValues_MalformedInputsNormalized(t *testing.T) {
	v := url.Values{}
	v.Set("price_min", "cheap")
	v.Set("price_max", "-5")
	v.Set("sort", "backwards")
	v.Set("page", "zero")

	s := StateFromValues(v)
	assert.Nil(t, s.Filters.PriceMin)
	assert.Nil(t, s.Filters.PriceMax)
	assert.Equal(t, SortRelevance, s.Sort)
	assert.Equal(t, 1, s.Page)
}

func TestStateValues_DefaultsOmitted(t *testing.T) {
	assert.Empty(t, DefaultState().Encode())

	s := DefaultState()
	s.Search = "bolt"
	v := s.Values()
	assert.Equal(t, "bolt", v.Get("q"))
	assert.Empty(t, v.Get("sort"))
	assert.Empty(t, v.Get("page"))
}

func TestState_RoundTrip(t *testing.T) {
	s := State{
		Search: "hammer",
		Filters: FilterCriteria{
			Brand:    "SteelWorks",
			PriceMin: price(5),
		},
		Sort: SortTitleAsc,
		Page: 2,
	}

	decoded := StateFromValues(s.Values())
	assert.Equal(t, s, decoded)

	// Idempotent: a second round trip changes nothing.
	assert.Equal(t, decoded, StateFromValues(decoded.Values()))
}
