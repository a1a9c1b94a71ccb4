package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compareProducts() []*Product {
	return []*Product{
		{
			ID:          "1",
			Title:       "Hex Bolt",
			Brand:       "FastenAll",
			Category:    "Bolts",
			SKU:         "HB-100",
			ModelNumber: "M8",
			Price:       price(4.99),
			PriceUnit:   "/ each",
			Specs:       map[string]string{"Material": "Steel", "Length": "40mm"},
		},
		{
			ID:          "2",
			Title:       "Hex Bolt Long",
			Brand:       "FastenAll",
			Category:    "Bolts",
			SKU:         "HB-200",
			ModelNumber: "M8",
			Price:       price(6.49),
			PriceUnit:   "/ each",
			Specs:       map[string]string{"Material": "Steel", "Finish": "Zinc"},
		},
	}
}

func TestBuildDiffTable_StandardRows(t *testing.T) {
	table := BuildDiffTable(compareProducts())

	assert.Equal(t, []string{"1", "2"}, table.ProductIDs)

	rows := make(map[string]DiffRow)
	for _, r := range table.Rows {
		rows[r.Label] = r
	}

	// Identical brand is not flagged.
	require.Contains(t, rows, "Brand")
	assert.Equal(t, []string{"FastenAll", "FastenAll"}, rows["Brand"].Values)
	assert.False(t, rows["Brand"].Differs)

	// Different price is flagged.
	require.Contains(t, rows, "Price")
	assert.Equal(t, []string{"$4.99 / each", "$6.49 / each"}, rows["Price"].Values)
	assert.True(t, rows["Price"].Differs)

	assert.True(t, rows["SKU"].Differs)
	assert.False(t, rows["Model"].Differs)
}

func TestBuildDiffTable_SpecUnion(t *testing.T) {
	table := BuildDiffTable(compareProducts())

	rows := make(map[string]DiffRow)
	for _, r := range table.Rows {
		rows[r.Label] = r
	}

	// Union of spec keys across both products.
	require.Contains(t, rows, "Material")
	require.Contains(t, rows, "Length")
	require.Contains(t, rows, "Finish")

	assert.False(t, rows["Material"].Differs)

	// Missing keys render as explicit "" and differ from populated cells.
	assert.Equal(t, []string{"40mm", ""}, rows["Length"].Values)
	assert.True(t, rows["Length"].Differs)
	assert.Equal(t, []string{"", "Zinc"}, rows["Finish"].Values)
	assert.True(t, rows["Finish"].Differs)
}

func TestBuildDiffTable_SpecRowsSorted(t *testing.T) {
	table := BuildDiffTable(compareProducts())

	// Spec rows follow the 5 standard rows in sorted key order.
	specLabels := make([]string, 0)
	for _, r := range table.Rows[5:] {
		specLabels = append(specLabels, r.Label)
	}
	assert.Equal(t, []string{"Finish", "Length", "Material"}, specLabels)
}

func TestBuildDiffTable_Empty(t *testing.T) {
	table := BuildDiffTable(nil)
	assert.Empty(t, table.ProductIDs)
	assert.Empty(t, table.Rows)
}

func TestProduct_PriceDisplay(t *testing.T) {
	p := &Product{Price: price(12.5), PriceUnit: "/ pack"}
	assert.Equal(t, "$12.50 / pack", p.PriceDisplay())

	unpriced := &Product{}
	assert.Equal(t, "Price unavailable", unpriced.PriceDisplay())

	noUnit := &Product{Price: price(3)}
	assert.Equal(t, "$3.00 / each", noUnit.PriceDisplay())
}
