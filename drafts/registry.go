package drafts

import (
	"sync"

	"github.com/google/uuid"

	"bitbucket.org/mmdatafocus/pos_frontend/cart"
)

// SessionDrafts bundles the in-progress state of one authenticated session:
// the POS cart, the multi-row sales-form draft, and the session's catalog
// snapshot holder. Each draft sale has a single logical mutator (the
// session's user); the embedded mutex only serializes the HTTP serving
// layer on top of that.
type SessionDrafts struct {
	sync.Mutex

	ID      string
	Cart    *cart.Store
	Form    *cart.DraftSale
	Catalog *cart.SnapshotHolder
}

// Registry holds draft state per session token. Drafts live entirely in
// memory: they are created when a sale view opens and destroyed on
// successful submission or explicit cancel, never persisted.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*SessionDrafts
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*SessionDrafts)}
}

// Get returns the drafts for a session token, creating them on first use.
// Re-entering a sale view resumes the existing draft.
func (r *Registry) Get(token string) *SessionDrafts {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.sessions[token]; ok {
		return d
	}
	d := &SessionDrafts{
		ID:      uuid.NewString(),
		Cart:    cart.NewStore(),
		Form:    cart.NewDraftSale(nil),
		Catalog: cart.NewSnapshotHolder(),
	}
	r.sessions[token] = d
	return d
}

// Drop discards all draft state for a session token; absent tokens are a
// no-op.
func (r *Registry) Drop(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
