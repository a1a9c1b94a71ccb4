package domain

import "sort"

// DiffRow is one attribute row in a side-by-side comparison table.
// Values holds one rendered value per compared product, in compare-set
// order. Differs is set when not all values are exactly equal; a missing
// spec key renders as "" and compares like any other value, so two blanks
// are equal but a blank differs from a populated cell.
type DiffRow struct {
	Label   string   `json:"label"`
	Values  []string `json:"values"`
	Differs bool     `json:"differs"`
}

// DiffTable is the full comparison table for a set of resolved products.
type DiffTable struct {
	ProductIDs []string  `json:"product_ids"`
	Rows       []DiffRow `json:"rows"`
}

// BuildDiffTable computes the comparison table for the given products:
// a fixed set of standard rows followed by the union of all spec keys in
// sorted order. Spec key presence is not uniform across products.
func BuildDiffTable(products []*Product) DiffTable {
	table := DiffTable{
		ProductIDs: make([]string, len(products)),
	}
	for i, p := range products {
		table.ProductIDs[i] = p.ID
	}
	if len(products) == 0 {
		return table
	}

	table.Rows = append(table.Rows,
		buildRow("Brand", products, func(p *Product) string { return p.Brand }),
		buildRow("Price", products, (*Product).PriceDisplay),
		buildRow("Category", products, func(p *Product) string { return p.Category }),
		buildRow("SKU", products, func(p *Product) string { return p.SKU }),
		buildRow("Model", products, func(p *Product) string { return p.ModelNumber }),
	)

	for _, key := range specKeyUnion(products) {
		table.Rows = append(table.Rows, buildRow(key, products, func(p *Product) string {
			return p.Spec(key)
		}))
	}

	return table
}

// buildRow renders one value per product and flags the row when they disagree.
func buildRow(label string, products []*Product, value func(*Product) string) DiffRow {
	row := DiffRow{
		Label:  label,
		Values: make([]string, len(products)),
	}
	for i, p := range products {
		row.Values[i] = value(p)
	}
	for _, v := range row.Values[1:] {
		if v != row.Values[0] {
			row.Differs = true
			break
		}
	}
	return row
}

// specKeyUnion collects every spec key present on any product, sorted for
// deterministic table output.
func specKeyUnion(products []*Product) []string {
	seen := make(map[string]struct{})
	for _, p := range products {
		for k := range p.Specs {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
