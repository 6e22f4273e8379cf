package cart_test

import (
	"errors"
	"testing"

	"bitbucket.org/mmdatafocus/pos_frontend/cart"
	"bitbucket.org/mmdatafocus/pos_frontend/models"
)

func draftWithCatalog(products ...models.Product) *cart.DraftSale {
	return cart.NewDraftSale(cart.NewSnapshot(products))
}

// Stock reconciliation across rows: with stock=10, rows of 6 and 6 must
// collide, and reducing the first row to 4 must free the second.
func TestDraftStockReconciliationAcrossRows(t *testing.T) {
	d := draftWithCatalog(testProduct(1, "Widget", 100, 10))

	a := d.AppendRow()
	d.SetRowProduct(a, 1)
	d.SetRowQuantity(a, 6)

	b := d.AppendRow()
	d.SetRowProduct(b, 1)
	d.SetRowQuantity(b, 6)

	available, err := d.AvailableStock(1, b)
	if err != nil {
		t.Fatalf("AvailableStock: %v", err)
	}
	if available != 4 {
		t.Fatalf("available for row B = %d, want 4", available)
	}

	err = d.ValidateRow(b)
	var exceeds *cart.QuantityExceedsStockError
	if !errors.As(err, &exceeds) {
		t.Fatalf("ValidateRow(b): got %v, want QuantityExceedsStockError", err)
	}
	if exceeds.Available != 4 {
		t.Errorf("error available = %d, want 4", exceeds.Available)
	}

	// Reducing row A frees stock for row B.
	d.SetRowQuantity(a, 4)
	if available, _ = d.AvailableStock(1, b); available != 6 {
		t.Fatalf("available after reducing row A = %d, want 6", available)
	}
	if err := d.ValidateRow(b); err != nil {
		t.Fatalf("ValidateRow(b) after reducing row A: %v", err)
	}
}

func TestDraftAvailableStock_ReportsNegativeRemainder(t *testing.T) {
	d := draftWithCatalog(testProduct(1, "Widget", 100, 5))

	a := d.AppendRow()
	d.SetRowProduct(a, 1)
	d.SetRowQuantity(a, 9)

	b := d.AppendRow()
	d.SetRowProduct(b, 1)

	available, err := d.AvailableStock(1, b)
	if err != nil {
		t.Fatalf("AvailableStock: %v", err)
	}
	// The validator reports the true remainder; clamping is display-only.
	if available != -4 {
		t.Fatalf("available = %d, want -4", available)
	}
}

func TestDraftValidateRow_ProductNotSelected(t *testing.T) {
	d := draftWithCatalog(testProduct(1, "Widget", 100, 5))
	idx := d.AppendRow()
	if err := d.ValidateRow(idx); !errors.Is(err, cart.ErrProductNotSelected) {
		t.Fatalf("got %v, want ErrProductNotSelected", err)
	}
}

func TestDraftValidateRow_QuantityRequired(t *testing.T) {
	d := draftWithCatalog(testProduct(1, "Widget", 100, 5))
	idx := d.AppendRow()
	d.SetRowProduct(idx, 1)
	d.SetRowQuantity(idx, 0)
	if err := d.ValidateRow(idx); !errors.Is(err, cart.ErrQuantityRequired) {
		t.Fatalf("got %v, want ErrQuantityRequired", err)
	}
}

func TestDraftValidateDraft_GatesSubmission(t *testing.T) {
	d := draftWithCatalog(
		testProduct(1, "Widget", 100, 10),
		testProduct(2, "Gadget", 50, 1),
	)

	a := d.AppendRow()
	d.SetRowProduct(a, 1)
	d.SetRowQuantity(a, 2)

	b := d.AppendRow()
	d.SetRowProduct(b, 2)
	d.SetRowQuantity(b, 3)

	err := d.ValidateDraft()
	var errs cart.ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("got %v, want ValidationErrors", err)
	}
	if len(errs) != 1 {
		t.Fatalf("failing rows = %d, want 1", len(errs))
	}
	if errs[0].Row != b {
		t.Errorf("failing row = %d, want %d", errs[0].Row, b)
	}

	d.SetRowQuantity(b, 1)
	if err := d.ValidateDraft(); err != nil {
		t.Fatalf("ValidateDraft after fix: %v", err)
	}
}

func TestDraftValidateDraft_EmptyDraftFails(t *testing.T) {
	d := draftWithCatalog(testProduct(1, "Widget", 100, 10))
	if err := d.ValidateDraft(); err == nil {
		t.Fatal("empty draft validated")
	}
}

func TestDraftRemoveRow_OutOfRangeIsNoop(t *testing.T) {
	d := draftWithCatalog(testProduct(1, "Widget", 100, 10))
	idx := d.AppendRow()
	d.SetRowProduct(idx, 1)

	d.RemoveRow(5)
	d.RemoveRow(-1)
	if d.Len() != 1 {
		t.Fatalf("no-op removal changed the draft: len=%d", d.Len())
	}

	d.RemoveRow(idx)
	if d.Len() != 0 {
		t.Fatalf("row not removed: len=%d", d.Len())
	}
	d.RemoveRow(idx)
	if d.Len() != 0 {
		t.Fatalf("repeat removal changed the draft: len=%d", d.Len())
	}
}

func TestDraftWithoutSnapshot_RefusesStockChecks(t *testing.T) {
	d := cart.NewDraftSale(nil)
	idx := d.AppendRow()
	d.SetRowProduct(idx, 1)
	d.SetRowQuantity(idx, 1)

	if _, err := d.AvailableStock(1, idx); !errors.Is(err, cart.ErrSnapshotUnavailable) {
		t.Fatalf("got %v, want ErrSnapshotUnavailable", err)
	}
	if err := d.ValidateRow(idx); !errors.Is(err, cart.ErrSnapshotUnavailable) {
		t.Fatalf("ValidateRow: got %v, want ErrSnapshotUnavailable", err)
	}
}
