package cart

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSnapshotUnavailable is returned by stock-dependent operations while no
// catalog snapshot has been installed yet (for example, during the first
// fetch). Computing against a missing snapshot is never allowed.
var ErrSnapshotUnavailable = errors.New("catalog snapshot unavailable")

// ErrProductNotSelected flags a sales-form row with no product bound to it.
var ErrProductNotSelected = errors.New("product is required")

// ErrQuantityRequired flags a sales-form row whose quantity is below one.
var ErrQuantityRequired = errors.New("quantity must be at least 1")

// OutOfStockError: the product has zero stock, nothing can be added.
type OutOfStockError struct {
	ProductName string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("%s is out of stock", e.ProductName)
}

// OutOfStockLimitError: the requested quantity exceeds the product's stock.
// Max carries the ceiling for the user-visible warning.
type OutOfStockLimitError struct {
	ProductName string
	Max         int
}

func (e *OutOfStockLimitError) Error() string {
	return fmt.Sprintf("only %d units of %s available", e.Max, e.ProductName)
}

// QuantityExceedsStockError: a sales-form row asks for more units than
// remain after quantities committed to sibling rows of the same product.
type QuantityExceedsStockError struct {
	ProductName string
	Available   int
}

func (e *QuantityExceedsStockError) Error() string {
	return fmt.Sprintf("quantity exceeds available stock (%d left for %s)", e.Available, e.ProductName)
}

// RowError binds a validation failure to its row index.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Err.Error())
}

func (e *RowError) Unwrap() error { return e.Err }

// ValidationErrors aggregates every failing row of a draft validation pass.
type ValidationErrors []*RowError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}
