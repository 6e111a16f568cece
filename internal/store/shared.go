package store

import (
	"sync"

	"github.com/idilsaglam/todolist/internal/model"
)

// Shared guards a Store for callers on more than one goroutine. A position
// read from one snapshot is only meaningful inside the same Do call.
type Shared struct {
	mu sync.Mutex
	s  *Store
}

// NewShared wraps s. The caller must stop using s directly.
func NewShared(s *Store) *Shared {
	return &Shared{s: s}
}

// Do runs fn with exclusive access to the store.
func (sh *Shared) Do(fn func(*Store) error) error {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return fn(sh.s)
}

// Snapshot returns the current view.
func (sh *Shared) Snapshot() []model.Item {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.s.Items()
}
