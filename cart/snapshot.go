package cart

import (
	"sync"

	"bitbucket.org/mmdatafocus/pos_frontend/models"
)

// Snapshot is an immutable view of the product catalog as of one fetch.
// It is only ever replaced as a whole; readers never observe a mix of old
// and new product entries.
type Snapshot struct {
	byID  map[int]models.Product
	order []int
}

func NewSnapshot(products []models.Product) *Snapshot {
	s := &Snapshot{byID: make(map[int]models.Product, len(products))}
	for _, p := range products {
		if _, dup := s.byID[p.ID]; dup {
			continue
		}
		s.byID[p.ID] = p
		s.order = append(s.order, p.ID)
	}
	return s
}

func (s *Snapshot) Product(id int) (models.Product, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Products returns the catalog in upstream order.
func (s *Snapshot) Products() []models.Product {
	out := make([]models.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

func (s *Snapshot) Len() int { return len(s.order) }

// FetchTicket identifies one issued catalog fetch. Only the ticket from the
// most recently issued fetch may install its response.
type FetchTicket uint64

// SnapshotHolder coordinates whole-value snapshot replacement with
// last-fetch-wins semantics: when fetch #2 is issued before fetch #1
// resolves, #1's late response is discarded.
type SnapshotHolder struct {
	mu        sync.Mutex
	issued    FetchTicket
	installed FetchTicket
	current   *Snapshot
}

func NewSnapshotHolder() *SnapshotHolder {
	return &SnapshotHolder{}
}

// Begin registers a new fetch and returns its ticket. Any ticket issued
// earlier becomes stale immediately.
func (h *SnapshotHolder) Begin() FetchTicket {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.issued++
	return h.issued
}

// Commit installs snap if ticket still belongs to the most recently issued
// fetch. It reports whether the snapshot was installed.
func (h *SnapshotHolder) Commit(ticket FetchTicket, snap *Snapshot) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ticket != h.issued {
		return false
	}
	h.installed = ticket
	h.current = snap
	return true
}

// Current returns the installed snapshot. ok is false until the first
// commit; callers must treat stock-dependent operations as unavailable then.
func (h *SnapshotHolder) Current() (*Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current, h.current != nil
}

// Pending reports whether a fetch newer than the installed snapshot is
// still outstanding.
func (h *SnapshotHolder) Pending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.issued > h.installed
}
