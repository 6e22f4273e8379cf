package cart

import (
	"github.com/shopspring/decimal"
)

var decimalOneHundred = decimal.NewFromInt(100)

// PricedItem is one line feeding the checkout totals: a snapshot unit price
// and a quantity. Prices always come from the catalog snapshot; unit price
// is never user-editable in this system.
type PricedItem struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Totals is the derived monetary summary of a draft sale. It is recomputed
// from scratch on every change; drafts are small and short-lived, so no
// caching is warranted.
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Discount   decimal.Decimal `json:"discount"`
	TaxAmount  decimal.Decimal `json:"taxAmount"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

// CalculateTotals derives subtotal, tax and grand total from line items and
// the user-entered adjustments. Tax is applied to the pre-discount
// subtotal; discount and tax are computed independently, never compounded.
// The discount and tax inputs are clamped to >= 0 at the form boundary, so
// no sign re-validation happens here.
func CalculateTotals(items []PricedItem, discount decimal.Decimal, taxPercent decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	taxAmount := subtotal.DivRound(decimalOneHundred, 4).Mul(taxPercent)

	return Totals{
		Subtotal:   subtotal,
		Discount:   discount,
		TaxAmount:  taxAmount,
		GrandTotal: subtotal.Sub(discount).Add(taxAmount),
	}
}

// StoreItems adapts the POS cart's entries for the calculator.
func StoreItems(s *Store) []PricedItem {
	entries := s.Items()
	items := make([]PricedItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, PricedItem{UnitPrice: entry.Product.PricePerUnit, Quantity: entry.Quantity})
	}
	return items
}

// DraftItems adapts sales-form rows for the calculator. Rows without a
// resolvable product contribute nothing, matching the form's running total
// while a row is still unselected.
func DraftItems(d *DraftSale) []PricedItem {
	if d.snap == nil {
		return nil
	}
	rows := d.Rows()
	items := make([]PricedItem, 0, len(rows))
	for _, row := range rows {
		product, ok := d.snap.Product(row.ProductId)
		if !ok {
			continue
		}
		items = append(items, PricedItem{UnitPrice: product.PricePerUnit, Quantity: row.Quantity})
	}
	return items
}
