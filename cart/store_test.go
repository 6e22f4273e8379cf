package cart_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/pos_frontend/cart"
	"bitbucket.org/mmdatafocus/pos_frontend/models"
)

func testProduct(id int, name string, price int64, stock int) models.Product {
	return models.Product{
		ID:            id,
		ProductName:   name,
		PricePerUnit:  decimal.NewFromInt(price),
		StockQuantity: stock,
	}
}

func TestStoreAdd_IncrementsUpToStock(t *testing.T) {
	s := cart.NewStore()
	cola := testProduct(1, "Cola", 100, 2)

	if err := s.Add(cola); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := s.Add(cola); err != nil {
		t.Fatalf("second add: %v", err)
	}
	if got := s.Quantity(1); got != 2 {
		t.Fatalf("quantity = %d, want 2", got)
	}

	err := s.Add(cola)
	var limitErr *cart.OutOfStockLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("third add: got %v, want OutOfStockLimitError", err)
	}
	if limitErr.Max != 2 {
		t.Errorf("limit max = %d, want 2", limitErr.Max)
	}
	if got := s.Quantity(1); got != 2 {
		t.Errorf("rejected add mutated quantity: %d", got)
	}
}

func TestStoreAdd_ZeroStockProductRejected(t *testing.T) {
	s := cart.NewStore()
	err := s.Add(testProduct(7, "Sold Out", 500, 0))
	var oos *cart.OutOfStockError
	if !errors.As(err, &oos) {
		t.Fatalf("got %v, want OutOfStockError", err)
	}
	if s.Len() != 0 {
		t.Errorf("failed add inserted an entry")
	}
}

func TestStoreSetQuantity(t *testing.T) {
	s := cart.NewStore()
	cola := testProduct(1, "Cola", 100, 5)
	if err := s.Add(cola); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := s.SetQuantity(1, 5); err != nil {
		t.Fatalf("set to stock ceiling: %v", err)
	}
	if got := s.Quantity(1); got != 5 {
		t.Fatalf("quantity = %d, want 5", got)
	}

	err := s.SetQuantity(1, 6)
	var limitErr *cart.OutOfStockLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("over-stock set: got %v, want OutOfStockLimitError", err)
	}
	if limitErr.Max != 5 {
		t.Errorf("limit max = %d, want 5", limitErr.Max)
	}
	if got := s.Quantity(1); got != 5 {
		t.Errorf("rejected set mutated quantity: %d", got)
	}

	// Zero (or below) is an intentional removal, not an error.
	if err := s.SetQuantity(1, 0); err != nil {
		t.Fatalf("set to zero: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("entry survived quantity 0")
	}
}

func TestStoreRemove_AbsentEntryIsNoop(t *testing.T) {
	s := cart.NewStore()
	if err := s.Add(testProduct(1, "Cola", 100, 3)); err != nil {
		t.Fatalf("add: %v", err)
	}
	s.Remove(999)
	s.Remove(999)
	if s.Len() != 1 {
		t.Fatalf("no-op removal changed the store: len=%d", s.Len())
	}
}

func TestStoreTotal_RecomputedFromEntries(t *testing.T) {
	s := cart.NewStore()
	if err := s.Add(testProduct(1, "Cola", 100, 10)); err != nil {
		t.Fatalf("add cola: %v", err)
	}
	if err := s.SetQuantity(1, 2); err != nil {
		t.Fatalf("set cola: %v", err)
	}
	if err := s.Add(testProduct(2, "Chips", 50, 10)); err != nil {
		t.Fatalf("add chips: %v", err)
	}
	if err := s.SetQuantity(2, 3); err != nil {
		t.Fatalf("set chips: %v", err)
	}

	want := decimal.NewFromInt(350)
	if got := s.Total(); !got.Equal(want) {
		t.Fatalf("total = %s, want %s", got, want)
	}

	s.Clear()
	if got := s.Total(); !got.Equal(decimal.Zero) {
		t.Fatalf("total after clear = %s, want 0", got)
	}
}

// No-oversell invariant: whatever sequence of operations runs, a product's
// cart quantity never exceeds its last-known stock.
func TestStoreNeverOversells(t *testing.T) {
	s := cart.NewStore()
	cola := testProduct(1, "Cola", 100, 3)

	for i := 0; i < 10; i++ {
		_ = s.Add(cola)
	}
	_ = s.SetQuantity(1, 50)
	_ = s.SetQuantity(1, 3)
	_ = s.Add(cola)

	if got := s.Quantity(1); got > 3 {
		t.Fatalf("oversold: quantity %d > stock 3", got)
	}
}

func TestStoreRefresh_ClampsToNewSnapshot(t *testing.T) {
	s := cart.NewStore()
	if err := s.Add(testProduct(1, "Cola", 100, 10)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.SetQuantity(1, 8); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Add(testProduct(2, "Chips", 50, 4)); err != nil {
		t.Fatalf("add chips: %v", err)
	}

	// New snapshot: cola stock dropped to 5, chips vanished.
	snap := cart.NewSnapshot([]models.Product{testProduct(1, "Cola", 100, 5)})
	s.Refresh(snap)

	if got := s.Quantity(1); got != 5 {
		t.Errorf("cola quantity after refresh = %d, want 5", got)
	}
	if got := s.Quantity(2); got != 0 {
		t.Errorf("vanished product kept quantity %d", got)
	}
	if s.Len() != 1 {
		t.Errorf("len after refresh = %d, want 1", s.Len())
	}
}
