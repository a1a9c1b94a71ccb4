package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopsavvy/catalog-server/internal/domain"
)

// Raw dataset column positions. The source is a scraped industrial supply
// dump; several columns are unnamed or junk and are skipped entirely.
const (
	colSourceURL = 1
	colTitle     = 2
	colBrand     = 3
	colSKU       = 5
	colModel     = 6
	colPrice     = 8
	colPriceUnit = 9
	colSpecs     = 11 // pipe-separated "Key: Value" pairs
	colImageURL  = 12
	colCategory  = 13
	minColumns   = 14
)

// CSVLoader reads the raw product dataset from a CSV file.
type CSVLoader struct {
	Path string
	// MaxProducts caps the number of loaded rows (0 = unlimited).
	MaxProducts int
	Logger      *slog.Logger
}

// Load parses the dataset into product records. Rows without a usable
// title and rows duplicating an already-seen SKU are skipped. Returns an
// error only when the file itself cannot be read or parsed; a bad row is
// not a bad catalog.
func (l *CSVLoader) Load() ([]*domain.Product, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // trailing columns vary between scrape batches
	r.LazyQuotes = true

	// Skip header row.
	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	var (
		products []*domain.Product
		seenSKUs = make(map[string]struct{})
		skipped  int
	)

	for rowNum := 1; ; rowNum++ {
		if l.MaxProducts > 0 && len(products) >= l.MaxProducts {
			break
		}

		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse catalog row %d: %w", rowNum, err)
		}

		p := parseRow(row, rowNum)
		if p == nil {
			skipped++
			continue
		}

		// Deduplicate by SKU where one exists.
		if p.SKU != domain.ValueNA {
			if _, dup := seenSKUs[p.SKU]; dup {
				skipped++
				continue
			}
			seenSKUs[p.SKU] = struct{}{}
		}

		products = append(products, p)
	}

	if l.Logger != nil {
		l.Logger.Info("catalog loaded",
			"path", l.Path,
			"products", len(products),
			"skipped", skipped,
		)
	}

	return products, nil
}

// parseRow converts one CSV row into a product, or nil if the row is unusable.
func parseRow(row []string, rowNum int) *domain.Product {
	if len(row) < minColumns {
		return nil
	}

	title := cleanString(row[colTitle])
	if title == domain.ValueNA {
		return nil
	}

	priceUnit := cleanString(row[colPriceUnit])
	if priceUnit == domain.ValueNA {
		priceUnit = domain.DefaultPriceUnit
	}

	top, leaf := splitCategory(cleanString(row[colCategory]))

	return &domain.Product{
		ID:          strconv.Itoa(rowNum),
		Title:       title,
		Brand:       cleanString(row[colBrand]),
		Category:    leaf,
		CategoryTop: top,
		Price:       cleanPrice(row[colPrice]),
		PriceUnit:   priceUnit,
		ImageURL:    cleanImageURL(row[colImageURL]),
		SKU:         cleanString(row[colSKU]),
		ModelNumber: cleanString(row[colModel]),
		Specs:       parseSpecs(row[colSpecs]),
		SourceURL:   sourceURL(row[colSourceURL]),
	}
}

// cleanString trims whitespace and maps the dataset's empty markers to "N/A".
func cleanString(val string) string {
	val = strings.TrimSpace(val)
	switch val {
	case "", "None", "none", "Unnamed: 6", "Unnamed: 9":
		return domain.ValueNA
	}
	return val
}

var priceRe = regexp.MustCompile(`\d+\.?\d*`)

// cleanPrice extracts a numeric price from strings like "$9.37" or
// "$1,299.00". Returns nil when no usable number is present.
func cleanPrice(raw string) *float64 {
	raw = cleanString(raw)
	if raw == domain.ValueNA {
		return nil
	}

	match := priceRe.FindString(strings.ReplaceAll(raw, ",", ""))
	if match == "" {
		return nil
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil || f < 0 {
		return nil
	}
	// Round to cents like the rest of the pipeline.
	f = float64(int64(f*100+0.5)) / 100
	return &f
}

// cleanImageURL normalizes image URLs to fully-qualified ones.
func cleanImageURL(raw string) string {
	raw = cleanString(raw)
	if raw == domain.ValueNA {
		return ""
	}
	if !strings.HasPrefix(raw, "http") {
		raw = "https://" + raw
	}
	return raw
}

func sourceURL(raw string) string {
	raw = cleanString(raw)
	if raw == domain.ValueNA {
		return ""
	}
	return raw
}

// splitCategory parses "Product Categories/Fasteners/Bolts/Hex Bolts"
// style paths into (top bucket, leaf name). Missing or degenerate paths
// (single-letter first segments are CSV parse artifacts) fall back to
// Uncategorized for both.
func splitCategory(path string) (top, leaf string) {
	if path == domain.ValueNA {
		return domain.ValueUncategorized, domain.ValueUncategorized
	}

	parts := make([]string, 0, 4)
	for _, part := range strings.Split(path, "/") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) > 0 && strings.EqualFold(parts[0], "product categories") {
		parts = parts[1:]
	}
	if len(parts) == 0 || len(parts[0]) < 3 {
		return domain.ValueUncategorized, domain.ValueUncategorized
	}

	return parts[0], parts[len(parts)-1]
}

// parseSpecs parses a pipe-separated "Key: Value | Key: Value" blob.
func parseSpecs(raw string) map[string]string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "None" {
		return nil
	}

	var specs map[string]string
	for _, pair := range strings.Split(raw, "|") {
		key, value, found := strings.Cut(pair, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		if specs == nil {
			specs = make(map[string]string)
		}
		specs[key] = value
	}
	return specs
}
