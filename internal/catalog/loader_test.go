package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsavvy/catalog-server/internal/domain"
)

const testHeader = "idx,url,title,brand,junk,sku,model,junk2,price,price_unit,junk3,specs,image,category\n"

func writeCatalogCSV(t *testing.T, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.csv")
	content := testHeader + strings.Join(rows, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func loadCSV(t *testing.T, rows ...string) []*domain.Product {
	t.Helper()
	l := &CSVLoader{Path: writeCatalogCSV(t, rows...)}
	products, err := l.Load()
	require.NoError(t, err)
	return products
}

func TestCSVLoader_ParsesRow(t *testing.T) {
	products := loadCSV(t,
		`0,example.com/p/1,Hex Bolt 10mm,Acme,x,SKU-1,M-10,x,"$1,299.50",/ box,x,Material: Steel | Finish: Zinc,cdn.example.com/1.jpg,Product Categories/Fasteners/Bolts/Hex Bolts`,
	)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "1", p.ID)
	assert.Equal(t, "Hex Bolt 10mm", p.Title)
	assert.Equal(t, "Acme", p.Brand)
	assert.Equal(t, "SKU-1", p.SKU)
	assert.Equal(t, "M-10", p.ModelNumber)
	require.NotNil(t, p.Price)
	assert.Equal(t, 1299.50, *p.Price)
	assert.Equal(t, "/ box", p.PriceUnit)
	assert.Equal(t, "Fasteners", p.CategoryTop)
	assert.Equal(t, "Hex Bolts", p.Category)
	assert.Equal(t, "https://cdn.example.com/1.jpg", p.ImageURL)
	assert.Equal(t, "example.com/p/1", p.SourceURL)
	assert.Equal(t, map[string]string{"Material": "Steel", "Finish": "Zinc"}, p.Specs)
}

func TestCSVLoader_SkipsTitlelessRows(t *testing.T) {
	products := loadCSV(t,
		`0,u,,Acme,x,SKU-1,m,x,$1.00,,x,,,Product Categories/Tools`,
		`1,u,None,Acme,x,SKU-2,m,x,$1.00,,x,,,Product Categories/Tools`,
		`2,u,Real Product,Acme,x,SKU-3,m,x,$1.00,,x,,,Product Categories/Tools`,
	)
	require.Len(t, products, 1)
	assert.Equal(t, "Real Product", products[0].Title)
}

func TestCSVLoader_DeduplicatesSKU(t *testing.T) {
	products := loadCSV(t,
		`0,u,First,Acme,x,SKU-1,m,x,$1.00,,x,,,Product Categories/Tools`,
		`1,u,Duplicate,Acme,x,SKU-1,m,x,$2.00,,x,,,Product Categories/Tools`,
		`2,u,No SKU A,Acme,x,,m,x,$1.00,,x,,,Product Categories/Tools`,
		`3,u,No SKU B,Acme,x,,m,x,$1.00,,x,,,Product Categories/Tools`,
	)
	// Duplicate SKU is dropped; rows without a SKU never collide.
	require.Len(t, products, 3)
	assert.Equal(t, "First", products[0].Title)
	assert.Equal(t, "No SKU A", products[1].Title)
	assert.Equal(t, "No SKU B", products[2].Title)
}

func TestCSVLoader_MaxProducts(t *testing.T) {
	path := writeCatalogCSV(t,
		`0,u,One,Acme,x,SKU-1,m,x,$1.00,,x,,,Product Categories/Tools`,
		`1,u,Two,Acme,x,SKU-2,m,x,$1.00,,x,,,Product Categories/Tools`,
		`2,u,Three,Acme,x,SKU-3,m,x,$1.00,,x,,,Product Categories/Tools`,
	)
	l := &CSVLoader{Path: path, MaxProducts: 2}
	products, err := l.Load()
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestCSVLoader_MissingFile(t *testing.T) {
	l := &CSVLoader{Path: filepath.Join(t.TempDir(), "nope.csv")}
	_, err := l.Load()
	assert.Error(t, err)
}

func TestCleanPrice(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *float64
	}{
		{"plain", "$9.37", price(9.37)},
		{"thousands", "$1,299.00", price(1299.00)},
		{"bare number", "42", price(42)},
		{"empty", "", nil},
		{"none marker", "None", nil},
		{"no digits", "call for price", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanPrice(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestSplitCategory(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantTop  string
		wantLeaf string
	}{
		{"full path", "Product Categories/Fasteners/Bolts/Hex Bolts", "Fasteners", "Hex Bolts"},
		{"single level", "Product Categories/Tools", "Tools", "Tools"},
		{"no prefix", "Abrasives/Discs", "Abrasives", "Discs"},
		{"parse artifact", "Product Categories/A/Bolts", domain.ValueUncategorized, domain.ValueUncategorized},
		{"missing", "N/A", domain.ValueUncategorized, domain.ValueUncategorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top, leaf := splitCategory(tt.in)
			assert.Equal(t, tt.wantTop, top)
			assert.Equal(t, tt.wantLeaf, leaf)
		})
	}
}

func TestParseSpecs(t *testing.T) {
	specs := parseSpecs("Material: Steel | Thread Size: 1/4-20 | Broken Entry | : bare")
	assert.Equal(t, map[string]string{
		"Material":    "Steel",
		"Thread Size": "1/4-20",
	}, specs)

	assert.Nil(t, parseSpecs(""))
	assert.Nil(t, parseSpecs("None"))
}
