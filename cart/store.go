package cart

import (
	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/pos_frontend/models"
)

// Entry is one aggregated cart line: a single entry per product, with the
// product record captured from the snapshot the entry was last checked
// against.
type Entry struct {
	Product  models.Product
	Quantity int
}

// Store is the point-of-sale cart: a per-session mapping from product id to
// one aggregated entry. "Add to cart" increments rather than creating a
// duplicate row, and no mutation may push the quantity for a product past
// its last-known stock.
//
// The store expects a single logical mutator (one user, one session); it is
// not safe for concurrent use without external coordination.
type Store struct {
	entries map[int]*Entry
	order   []int
}

func NewStore() *Store {
	return &Store{entries: make(map[int]*Entry)}
}

// Add puts one unit of product into the cart. An existing entry increments
// up to the product's stock; a new entry requires stock > 0.
func (s *Store) Add(product models.Product) error {
	if entry, ok := s.entries[product.ID]; ok {
		if entry.Quantity >= entry.Product.StockQuantity {
			return &OutOfStockLimitError{ProductName: entry.Product.ProductName, Max: entry.Product.StockQuantity}
		}
		entry.Quantity++
		return nil
	}
	if product.StockQuantity <= 0 {
		return &OutOfStockError{ProductName: product.ProductName}
	}
	s.entries[product.ID] = &Entry{Product: product, Quantity: 1}
	s.order = append(s.order, product.ID)
	return nil
}

// SetQuantity sets an entry to exactly quantity. Zero or negative removes
// the entry (intentional removal, not an error); above-stock requests are
// rejected with the maximum left unchanged.
func (s *Store) SetQuantity(productID int, quantity int) error {
	entry, ok := s.entries[productID]
	if !ok {
		return nil
	}
	if quantity <= 0 {
		s.Remove(productID)
		return nil
	}
	if quantity > entry.Product.StockQuantity {
		return &OutOfStockLimitError{ProductName: entry.Product.ProductName, Max: entry.Product.StockQuantity}
	}
	entry.Quantity = quantity
	return nil
}

// Remove deletes the entry unconditionally; removing an absent entry is a
// no-op.
func (s *Store) Remove(productID int) {
	if _, ok := s.entries[productID]; !ok {
		return
	}
	delete(s.entries, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Clear empties the store. Called after a successful checkout or an
// explicit cancel.
func (s *Store) Clear() {
	s.entries = make(map[int]*Entry)
	s.order = nil
}

// Refresh re-reads every entry's product from a newly installed snapshot.
// Entries whose product vanished or whose stock dropped below the held
// quantity are clamped so the no-oversell invariant survives the
// replacement; a clamp to zero removes the entry.
func (s *Store) Refresh(snap *Snapshot) {
	for _, id := range append([]int(nil), s.order...) {
		entry := s.entries[id]
		product, ok := snap.Product(id)
		if !ok {
			s.Remove(id)
			continue
		}
		entry.Product = product
		if entry.Quantity > product.StockQuantity {
			if product.StockQuantity <= 0 {
				s.Remove(id)
				continue
			}
			entry.Quantity = product.StockQuantity
		}
	}
}

// Items returns the cart lines in insertion order.
func (s *Store) Items() []Entry {
	out := make([]Entry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.entries[id])
	}
	return out
}

func (s *Store) Len() int { return len(s.order) }

// Quantity returns the held quantity for a product, zero when absent.
func (s *Store) Quantity(productID int) int {
	if entry, ok := s.entries[productID]; ok {
		return entry.Quantity
	}
	return 0
}

// Total is the derived cart value, recomputed on every read. Prices come
// from the captured product records, never from user input.
func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, id := range s.order {
		entry := s.entries[id]
		total = total.Add(entry.Product.PricePerUnit.Mul(decimal.NewFromInt(int64(entry.Quantity))))
	}
	return total
}
