package query

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsavvy/catalog-server/internal/domain"
)

func price(v float64) *float64 { return &v }

func fixtureProducts() []*domain.Product {
	return []*domain.Product{
		{ID: "1", Title: "Adjustable Wrench", Brand: "GripCo", Category: "Wrenches", Price: price(24.99)},
		{ID: "2", Title: "Socket Set", Brand: "GripCo", Category: "Sockets", Price: price(49.99)},
		{ID: "3", Title: "ball peen hammer", Brand: "SteelWorks", Category: "Hammers", Price: price(18.50)},
		{ID: "4", Title: "Claw Hammer", Brand: "SteelWorks", Category: "Hammers", Price: nil,
			Specs: map[string]string{"Handle": "Fiberglass"}},
		{ID: "5", Title: "Torque Wrench", Brand: "PrecisionTool", Category: "Wrenches", Price: price(89.00)},
	}
}

// catalogOfSize builds n minimal products with sequential ids.
func catalogOfSize(n int) []*domain.Product {
	products := make([]*domain.Product, n)
	for i := range n {
		products[i] = &domain.Product{ID: fmt.Sprintf("%d", i+1), Title: fmt.Sprintf("Product %d", i+1)}
	}
	return products
}

func TestSearch_EmptyTextIsIdentity(t *testing.T) {
	products := fixtureProducts()
	result := Search("", products)

	// Identity, not a copy: the no-query case returns the input unchanged.
	assert.Equal(t, products, result)
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	products := fixtureProducts()

	result := Search("WRENCH", products)
	require.Len(t, result, 2)
	assert.Equal(t, "1", result[0].ID)
	assert.Equal(t, "5", result[1].ID)

	// Brand match.
	result = Search("gripco", products)
	assert.Len(t, result, 2)

	// Category match.
	result = Search("hammers", products)
	assert.Len(t, result, 2)

	// Spec value match.
	result = Search("fiberglass", products)
	require.Len(t, result, 1)
	assert.Equal(t, "4", result[0].ID)
}

func TestSearch_PreservesInsertionOrder(t *testing.T) {
	result := Search("hammer", fixtureProducts())
	require.Len(t, result, 2)
	assert.Equal(t, "3", result[0].ID)
	assert.Equal(t, "4", result[1].ID)
}

func TestFilter_Unset(t *testing.T) {
	products := fixtureProducts()
	assert.Equal(t, products, Filter(products, FilterCriteria{}))
}

func TestFilter_CategoryAndBrandExactMatch(t *testing.T) {
	products := fixtureProducts()

	result := Filter(products, FilterCriteria{Category: "Wrenches"})
	assert.Len(t, result, 2)

	result = Filter(products, FilterCriteria{Category: "Wrenches", Brand: "GripCo"})
	require.Len(t, result, 1)
	assert.Equal(t, "1", result[0].ID)

	// Substrings are not matches.
	assert.Empty(t, Filter(products, FilterCriteria{Category: "Wrench"}))
}

func TestFilter_PriceBoundsInclusive(t *testing.T) {
	products := fixtureProducts()

	result := Filter(products, FilterCriteria{PriceMin: price(24.99), PriceMax: price(49.99)})
	require.Len(t, result, 2)
	assert.Equal(t, "1", result[0].ID)
	assert.Equal(t, "2", result[1].ID)
}

func TestFilter_NilPriceExcludedByPriceBoundOnly(t *testing.T) {
	products := fixtureProducts()

	// Any price bound excludes the unpriced hammer.
	result := Filter(products, FilterCriteria{PriceMin: price(0)})
	assert.Len(t, result, 4)

	// Category/brand bounds keep it.
	result = Filter(products, FilterCriteria{Category: "Hammers"})
	assert.Len(t, result, 2)
}

func TestFilter_Idempotent(t *testing.T) {
	products := fixtureProducts()
	c := FilterCriteria{Brand: "SteelWorks", PriceMin: price(10)}

	once := Filter(products, c)
	twice := Filter(once, c)
	assert.Equal(t, once, twice)
}

func TestSort_RelevanceIsNoOp(t *testing.T) {
	products := fixtureProducts()
	assert.Equal(t, products, Sort(products, SortRelevance))
}

func TestSort_PriceAscNilLast(t *testing.T) {
	result := Sort(fixtureProducts(), SortPriceAsc)
	ids := idsOf(result)
	assert.Equal(t, []string{"3", "1", "2", "5", "4"}, ids)
}

func TestSort_PriceDescNilStillLast(t *testing.T) {
	result := Sort(fixtureProducts(), SortPriceDesc)
	ids := idsOf(result)
	assert.Equal(t, []string{"5", "2", "1", "3", "4"}, ids)
}

func TestSort_PriceAscDescAreReversesModuloNil(t *testing.T) {
	products := fixtureProducts()
	asc := Sort(products, SortPriceAsc)
	desc := Sort(products, SortPriceDesc)

	// Drop the trailing nil-priced item from both; the remainder reverses.
	ascPriced := idsOf(asc[:len(asc)-1])
	descPriced := idsOf(desc[:len(desc)-1])
	for i, j := 0, len(descPriced)-1; i < len(ascPriced); i, j = i+1, j-1 {
		assert.Equal(t, ascPriced[i], descPriced[j])
	}
}

func TestSort_TitleCaseInsensitive(t *testing.T) {
	result := Sort(fixtureProducts(), SortTitleAsc)
	ids := idsOf(result)
	// "ball peen hammer" sorts before "Claw Hammer" despite lowercase b.
	assert.Equal(t, []string{"1", "3", "4", "2", "5"}, ids)

	reversed := Sort(fixtureProducts(), SortTitleDesc)
	assert.Equal(t, []string{"5", "2", "4", "3", "1"}, idsOf(reversed))
}

func TestSort_StableOnTies(t *testing.T) {
	same := price(10)
	products := []*domain.Product{
		{ID: "a", Title: "X", Price: same},
		{ID: "b", Title: "X", Price: same},
		{ID: "c", Title: "X", Price: same},
	}
	assert.Equal(t, []string{"a", "b", "c"}, idsOf(Sort(products, SortPriceAsc)))
	assert.Equal(t, []string{"a", "b", "c"}, idsOf(Sort(products, SortTitleAsc)))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	products := fixtureProducts()
	_ = Sort(products, SortPriceAsc)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, idsOf(products))
}

func TestPaginate_Basics(t *testing.T) {
	products := catalogOfSize(25)

	result := Paginate(products, 3, 12)
	assert.Equal(t, 25, result.Total)
	assert.Equal(t, 3, result.PageCount)
	assert.Equal(t, 3, result.Page)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "25", result.Items[0].ID)
}

func TestPaginate_OutOfRangeClamped(t *testing.T) {
	products := catalogOfSize(25)

	result := Paginate(products, 99, 12)
	assert.Equal(t, 3, result.Page)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "25", result.Items[0].ID)

	result = Paginate(products, 0, 12)
	assert.Equal(t, 1, result.Page)
	assert.Len(t, result.Items, 12)
}

func TestPaginate_Empty(t *testing.T) {
	result := Paginate(nil, 5, 12)
	assert.Zero(t, result.Total)
	assert.Zero(t, result.PageCount)
	assert.Equal(t, 1, result.Page)
	assert.Empty(t, result.Items)
}

func TestPaginate_PagesPartitionTotal(t *testing.T) {
	for _, total := range []int{0, 1, 11, 12, 13, 24, 25, 100} {
		products := catalogOfSize(total)
		first := Paginate(products, 1, 12)

		sum := 0
		for page := 1; page <= max(first.PageCount, 1); page++ {
			sum += len(Paginate(products, page, 12).Items)
		}
		assert.Equal(t, total, sum, "total: %d", total)

		if total > 0 {
			last := Paginate(products, first.PageCount, 12)
			expected := total % 12
			if expected == 0 {
				expected = 12
			}
			assert.Len(t, last.Items, expected, "total: %d", total)
		}
	}
}

func TestRun_DefaultStateIsPlainSlice(t *testing.T) {
	products := catalogOfSize(25)

	result := Run(products, DefaultState(), 12)
	assert.Equal(t, 25, result.Total)
	assert.Equal(t, products[:12], result.Items)
}

func TestRun_ComposedPipeline(t *testing.T) {
	products := fixtureProducts()
	s := State{
		Search: "hammer",
		Sort:   SortPriceAsc,
		Page:   1,
	}

	result := Run(products, s, 12)
	// Both hammers match; the unpriced one sorts last.
	require.Len(t, result.Items, 2)
	assert.Equal(t, "3", result.Items[0].ID)
	assert.Equal(t, "4", result.Items[1].ID)
}

func idsOf(products []*domain.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
