package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/shopsavvy/catalog-server/internal/domain"
)

// PageResult is one page of a query result. Page is the resolved page
// after clamping, so callers can detect and correct an out-of-range
// request without an error path.
type PageResult struct {
	Items     []*domain.Product `json:"items"`
	Total     int               `json:"total"`
	Page      int               `json:"page"`
	PageCount int               `json:"page_count"`
}

// Run executes the full pipeline: search, filter, sort, paginate.
// The order is fixed; page boundaries are only stable while search text,
// filters, and sort are held constant.
func Run(products []*domain.Product, s State, pageSize int) PageResult {
	matched := Search(s.Search, products)
	matched = Filter(matched, s.Filters)
	matched = Sort(matched, s.Sort)
	return Paginate(matched, s.Page, pageSize)
}

// Search returns products matching text by case-insensitive substring
// across title, brand, category, and spec values. Empty text is the
// identity: the input sequence is returned unchanged. Relative order
// among matches is the insertion order of the source; there is no
// scoring (ranked lookups are the suggestion index's job).
func Search(text string, products []*domain.Product) []*domain.Product {
	if text == "" {
		return products
	}
	needle := strings.ToLower(text)

	matched := make([]*domain.Product, 0)
	for _, p := range products {
		if matchesSearch(p, needle) {
			matched = append(matched, p)
		}
	}
	return matched
}

func matchesSearch(p *domain.Product, needle string) bool {
	if strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Brand), needle) ||
		strings.Contains(strings.ToLower(p.Category), needle) {
		return true
	}
	for _, v := range p.Specs {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

// Filter keeps products satisfying every set criteria field. Category and
// brand require exact matches. Price bounds are inclusive and require a
// known price: an unpriced product is excluded by any price bound but not
// by category or brand.
func Filter(products []*domain.Product, c FilterCriteria) []*domain.Product {
	if c.IsZero() {
		return products
	}

	kept := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if matchesFilter(p, c) {
			kept = append(kept, p)
		}
	}
	return kept
}

func matchesFilter(p *domain.Product, c FilterCriteria) bool {
	if c.Category != "" && p.Category != c.Category {
		return false
	}
	if c.Brand != "" && p.Brand != c.Brand {
		return false
	}
	if c.PriceMin != nil || c.PriceMax != nil {
		if p.Price == nil {
			return false
		}
		if c.PriceMin != nil && *p.Price < *c.PriceMin {
			return false
		}
		if c.PriceMax != nil && *p.Price > *c.PriceMax {
			return false
		}
	}
	return true
}

// Sort orders products by the given mode. The sort is stable: ties keep
// their incoming order. Unpriced products sort after all priced products
// in both price directions. Relevance is a no-op, preserving the order
// Search produced.
func Sort(products []*domain.Product, mode SortMode) []*domain.Product {
	if mode == SortRelevance || mode == "" {
		return products
	}

	sorted := make([]*domain.Product, len(products))
	copy(sorted, products)

	switch mode {
	case SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return priceLess(sorted[i], sorted[j], false)
		})
	case SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return priceLess(sorted[i], sorted[j], true)
		})
	case SortTitleAsc:
		c := titleCollator()
		sort.SliceStable(sorted, func(i, j int) bool {
			return c.CompareString(sorted[i].Title, sorted[j].Title) < 0
		})
	case SortTitleDesc:
		c := titleCollator()
		sort.SliceStable(sorted, func(i, j int) bool {
			return c.CompareString(sorted[i].Title, sorted[j].Title) > 0
		})
	}
	return sorted
}

// titleCollator builds a case-insensitive collator. Collators are not
// safe for concurrent use, so each Sort call gets its own.
func titleCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase)
}

// priceLess orders by price with nil always last, regardless of direction.
func priceLess(a, b *domain.Product, desc bool) bool {
	switch {
	case a.Price == nil:
		return false
	case b.Price == nil:
		return true
	case desc:
		return *a.Price > *b.Price
	default:
		return *a.Price < *b.Price
	}
}

// Paginate slices products into the requested page. An out-of-range page
// is clamped into [1, max(pageCount, 1)], never rejected; the resolved
// page is reported in the result.
func Paginate(products []*domain.Product, page, pageSize int) PageResult {
	if pageSize < 1 {
		pageSize = 1
	}

	total := len(products)
	pageCount := (total + pageSize - 1) / pageSize

	if page < 1 {
		page = 1
	}
	if maxPage := max(pageCount, 1); page > maxPage {
		page = maxPage
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	items := []*domain.Product{}
	if start < total {
		items = products[start:end]
	}

	return PageResult{
		Items:     items,
		Total:     total,
		Page:      page,
		PageCount: pageCount,
	}
}
