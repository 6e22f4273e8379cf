package cart

import (
	"github.com/shopspring/decimal"
)

// Row is one sales-form line: a product reference plus a user-entered
// quantity. Unlike the POS cart, several rows may reference the same
// product; the draft reconciles their shared stock.
type Row struct {
	ProductId int
	Quantity  int
}

// DraftSale is the multi-row sales-form draft. Rows keep insertion order
// (not significant to computation), and the draft carries the two
// user-entered adjustments: an absolute discount and a tax percentage.
//
// The draft holds what the user typed, including transient oversell while a
// quantity field is being edited; ValidateDraft is the authoritative gate
// that must pass before any submission is attempted.
type DraftSale struct {
	rows       []Row
	Discount   decimal.Decimal
	TaxPercent decimal.Decimal

	snap *Snapshot
}

func NewDraftSale(snap *Snapshot) *DraftSale {
	return &DraftSale{snap: snap}
}

// SetSnapshot swaps in a newly installed catalog snapshot. Rows are left
// untouched; validation re-runs against the new ceilings.
func (d *DraftSale) SetSnapshot(snap *Snapshot) {
	d.snap = snap
}

// AppendRow adds an empty row (no product, quantity 1) and returns its
// index.
func (d *DraftSale) AppendRow() int {
	d.rows = append(d.rows, Row{Quantity: 1})
	return len(d.rows) - 1
}

func (d *DraftSale) SetRowProduct(index int, productID int) bool {
	if index < 0 || index >= len(d.rows) {
		return false
	}
	d.rows[index].ProductId = productID
	return true
}

// SetRowQuantity records the typed quantity. Negative input clamps to zero;
// oversell is allowed to sit in the draft and is caught by validation.
func (d *DraftSale) SetRowQuantity(index int, quantity int) bool {
	if index < 0 || index >= len(d.rows) {
		return false
	}
	if quantity < 0 {
		quantity = 0
	}
	d.rows[index].Quantity = quantity
	return true
}

// RemoveRow deletes a row; out-of-range indexes are a no-op.
func (d *DraftSale) RemoveRow(index int) {
	if index < 0 || index >= len(d.rows) {
		return
	}
	d.rows = append(d.rows[:index], d.rows[index+1:]...)
}

func (d *DraftSale) Rows() []Row {
	return append([]Row(nil), d.rows...)
}

func (d *DraftSale) Len() int { return len(d.rows) }

// Clear resets the draft after a successful submission or explicit cancel.
func (d *DraftSale) Clear() {
	d.rows = nil
	d.Discount = decimal.Zero
	d.TaxPercent = decimal.Zero
}

// UsedStock sums the quantities every other row has already committed to
// productID. The draft sale, not the catalog, is the unit of truth for
// stock that sibling rows have spoken for.
func (d *DraftSale) UsedStock(productID int, excludingRow int) int {
	used := 0
	for i, row := range d.rows {
		if i == excludingRow {
			continue
		}
		if row.ProductId == productID {
			used += row.Quantity
		}
	}
	return used
}

// AvailableStock is the catalog ceiling minus what sibling rows hold. The
// remainder may be negative while the user is mid-edit; callers clamp for
// display, downstream checks rely on the true value.
func (d *DraftSale) AvailableStock(productID int, row int) (int, error) {
	if d.snap == nil {
		return 0, ErrSnapshotUnavailable
	}
	product, ok := d.snap.Product(productID)
	if !ok {
		return 0, ErrProductNotSelected
	}
	return product.StockQuantity - d.UsedStock(productID, row), nil
}

// ValidateRow checks one row: a product must be selected, the quantity must
// be at least one, and the quantity must fit within the stock left over
// from sibling rows.
func (d *DraftSale) ValidateRow(index int) error {
	if index < 0 || index >= len(d.rows) {
		return ErrProductNotSelected
	}
	row := d.rows[index]
	if row.ProductId <= 0 {
		return ErrProductNotSelected
	}
	if row.Quantity < 1 {
		return ErrQuantityRequired
	}
	available, err := d.AvailableStock(row.ProductId, index)
	if err != nil {
		return err
	}
	if row.Quantity > available {
		name := ""
		if product, ok := d.snap.Product(row.ProductId); ok {
			name = product.ProductName
		}
		return &QuantityExceedsStockError{ProductName: name, Available: available}
	}
	return nil
}

// ValidateDraft runs ValidateRow over every row and succeeds only if all
// rows pass. This is the pre-submission gate; inline per-keystroke feedback
// is advisory, this check is authoritative.
func (d *DraftSale) ValidateDraft() error {
	if len(d.rows) == 0 {
		return ValidationErrors{{Row: 0, Err: ErrProductNotSelected}}
	}
	var errs ValidationErrors
	for i := range d.rows {
		if err := d.ValidateRow(i); err != nil {
			errs = append(errs, &RowError{Row: i, Err: err})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
