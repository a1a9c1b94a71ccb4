package domain

// CartLine associates a product id with a quantity. The cart holds at most
// one line per product id; adding an existing product accumulates quantity
// instead of inserting a duplicate.
type CartLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// ClampQuantity normalizes a requested quantity. Values below one are
// clamped to one rather than rejected; a cart line can never drop to zero
// except by explicit removal.
func ClampQuantity(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}

// ResolvedLine is a cart line joined against the catalog. Lines whose
// product id no longer resolves are dropped from the resolved view but
// stay in storage, so a stale cart heals itself once the catalog and the
// stored state agree again.
type ResolvedLine struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}

// LineTotal returns quantity × unit price, or nil when the product is unpriced.
func (l *ResolvedLine) LineTotal() *float64 {
	if l.Product == nil || l.Product.Price == nil {
		return nil
	}
	total := *l.Product.Price * float64(l.Quantity)
	return &total
}

// CartSummary aggregates a resolved cart. UnpricedLines is surfaced
// separately so the subtotal is never silently wrong: a subtotal of $40
// over 5 lines where 2 have no price is not a $40 cart.
type CartSummary struct {
	Lines         int     `json:"lines"`
	TotalQuantity int     `json:"total_quantity"`
	Subtotal      float64 `json:"subtotal"`
	UnpricedLines int     `json:"unpriced_lines"`
}

// Summarize computes totals over resolved lines.
func Summarize(lines []ResolvedLine) CartSummary {
	var s CartSummary
	s.Lines = len(lines)
	for _, l := range lines {
		s.TotalQuantity += l.Quantity
		if t := l.LineTotal(); t != nil {
			s.Subtotal += *t
		} else {
			s.UnpricedLines++
		}
	}
	return s
}
