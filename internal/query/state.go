// Package query implements the catalog query engine: search, filter,
// sort, and paginate, composed in that fixed order over the immutable
// product set. All stages are pure functions; callers can re-run the
// same state any number of times and get the same page back.
package query

import (
	"net/url"
	"strconv"
)

// SortMode selects the result ordering.
type SortMode string

// Supported sort modes. Relevance is catalog insertion order filtered by
// search match; it carries no score of its own.
const (
	SortRelevance SortMode = "relevance"
	SortPriceAsc  SortMode = "price-asc"
	SortPriceDesc SortMode = "price-desc"
	SortTitleAsc  SortMode = "title-asc"
	SortTitleDesc SortMode = "title-desc"
)

// ParseSortMode maps a URL token to a sort mode. Unknown tokens fall back
// to relevance; a bad sort parameter is ordinary input, not an error.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortPriceAsc, SortPriceDesc, SortTitleAsc, SortTitleDesc:
		return SortMode(s)
	default:
		return SortRelevance
	}
}

// FilterCriteria narrows the product set. All fields are independently
// optional; a zero field imposes no constraint.
type FilterCriteria struct {
	Category string   `json:"category,omitempty"`
	Brand    string   `json:"brand,omitempty"`
	PriceMin *float64 `json:"price_min,omitempty"`
	PriceMax *float64 `json:"price_max,omitempty"`
}

// IsZero reports whether no filter field is set.
func (c FilterCriteria) IsZero() bool {
	return c.Category == "" && c.Brand == "" && c.PriceMin == nil && c.PriceMax == nil
}

// State is a complete query: search text, filters, sort, and page. It is
// fully derivable from URL query parameters, so re-opening a shared URL
// reproduces the same result page.
type State struct {
	Search  string         `json:"q,omitempty"`
	Filters FilterCriteria `json:"filters,omitzero"`
	Sort    SortMode       `json:"sort"`
	Page    int            `json:"page"`
}

// DefaultState returns the state for a bare catalog URL.
func DefaultState() State {
	return State{Sort: SortRelevance, Page: 1}
}

// StateFromValues derives a query state from URL parameters. Absent or
// malformed parameters map to the defaults; nothing here can fail.
func StateFromValues(v url.Values) State {
	s := DefaultState()
	s.Search = v.Get("q")
	s.Filters.Category = v.Get("category")
	s.Filters.Brand = v.Get("brand")
	s.Filters.PriceMin = parsePrice(v.Get("price_min"))
	s.Filters.PriceMax = parsePrice(v.Get("price_max"))
	s.Sort = ParseSortMode(v.Get("sort"))
	if page, err := strconv.Atoi(v.Get("page")); err == nil && page > 0 {
		s.Page = page
	}
	return s
}

// Values serializes the state back to URL parameters. Default values
// (relevance sort, page 1, unset filters) are omitted to keep URLs
// minimal; StateFromValues(s.Values()) round-trips to the same state.
func (s State) Values() url.Values {
	v := url.Values{}
	if s.Search != "" {
		v.Set("q", s.Search)
	}
	if s.Filters.Category != "" {
		v.Set("category", s.Filters.Category)
	}
	if s.Filters.Brand != "" {
		v.Set("brand", s.Filters.Brand)
	}
	if s.Filters.PriceMin != nil {
		v.Set("price_min", strconv.FormatFloat(*s.Filters.PriceMin, 'f', -1, 64))
	}
	if s.Filters.PriceMax != nil {
		v.Set("price_max", strconv.FormatFloat(*s.Filters.PriceMax, 'f', -1, 64))
	}
	if s.Sort != SortRelevance && s.Sort != "" {
		v.Set("sort", string(s.Sort))
	}
	if s.Page > 1 {
		v.Set("page", strconv.Itoa(s.Page))
	}
	return v
}

// Encode renders the state as a URL query string.
func (s State) Encode() string {
	return s.Values().Encode()
}

func parsePrice(raw string) *float64 {
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		return nil
	}
	return &f
}
