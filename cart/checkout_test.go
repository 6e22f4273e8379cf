package cart_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/pos_frontend/cart"
)

// Items (100 x 2) and (50 x 3) with discount 20 and tax 10% give subtotal
// 350, tax 35, grand total 365. Tax applies to the pre-discount subtotal.
func TestCalculateTotals(t *testing.T) {
	items := []cart.PricedItem{
		{UnitPrice: decimal.NewFromInt(100), Quantity: 2},
		{UnitPrice: decimal.NewFromInt(50), Quantity: 3},
	}

	totals := cart.CalculateTotals(items, decimal.NewFromInt(20), decimal.NewFromInt(10))

	if !totals.Subtotal.Equal(decimal.NewFromInt(350)) {
		t.Errorf("subtotal = %s, want 350", totals.Subtotal)
	}
	if !totals.TaxAmount.Equal(decimal.NewFromInt(35)) {
		t.Errorf("tax = %s, want 35", totals.TaxAmount)
	}
	if !totals.GrandTotal.Equal(decimal.NewFromInt(365)) {
		t.Errorf("grand total = %s, want 365", totals.GrandTotal)
	}
}

func TestCalculateTotals_EmptyDraft(t *testing.T) {
	totals := cart.CalculateTotals(nil, decimal.Zero, decimal.Zero)
	if !totals.GrandTotal.Equal(decimal.Zero) {
		t.Fatalf("grand total = %s, want 0", totals.GrandTotal)
	}
}

// Tax is computed off the subtotal, not (subtotal - discount): the two
// adjustments never compound.
func TestCalculateTotals_TaxNotCompoundedWithDiscount(t *testing.T) {
	items := []cart.PricedItem{{UnitPrice: decimal.NewFromInt(200), Quantity: 1}}

	totals := cart.CalculateTotals(items, decimal.NewFromInt(100), decimal.NewFromInt(10))

	// 10% of 200, not 10% of (200-100).
	if !totals.TaxAmount.Equal(decimal.NewFromInt(20)) {
		t.Errorf("tax = %s, want 20", totals.TaxAmount)
	}
	if !totals.GrandTotal.Equal(decimal.NewFromInt(120)) {
		t.Errorf("grand total = %s, want 120", totals.GrandTotal)
	}
}

func TestCalculateTotals_FractionalTaxRate(t *testing.T) {
	items := []cart.PricedItem{{UnitPrice: decimal.NewFromInt(333), Quantity: 1}}

	totals := cart.CalculateTotals(items, decimal.Zero, decimal.NewFromFloat(7.5))

	want := decimal.NewFromFloat(24.975)
	if !totals.TaxAmount.Equal(want) {
		t.Errorf("tax = %s, want %s", totals.TaxAmount, want)
	}
}

func TestDraftItems_SkipsUnresolvedRows(t *testing.T) {
	d := draftWithCatalog(testProduct(1, "Widget", 100, 10))
	a := d.AppendRow()
	d.SetRowProduct(a, 1)
	d.SetRowQuantity(a, 2)
	d.AppendRow() // no product selected yet

	items := cart.DraftItems(d)
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	totals := cart.CalculateTotals(items, decimal.Zero, decimal.Zero)
	if !totals.Subtotal.Equal(decimal.NewFromInt(200)) {
		t.Errorf("subtotal = %s, want 200", totals.Subtotal)
	}
}
