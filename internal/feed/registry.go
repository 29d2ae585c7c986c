package feed

import (
	"sync"

	"gator-board/internal/models"
)

// Registry tracks the set of entities one session is monitoring. The read
// loop adds refs while the tick loop snapshots them, so all access is
// synchronized here.
type Registry struct {
	mu    sync.Mutex
	known map[models.EntityRef]struct{}
	order []models.EntityRef
}

func NewRegistry() *Registry {
	return &Registry{
		known: make(map[models.EntityRef]struct{}),
	}
}

// Add registers a ref for monitoring. Re-subscribing is a no-op; the return
// value reports whether the ref was new.
func (r *Registry) Add(ref models.EntityRef) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.known[ref]; exists {
		return false
	}
	r.known[ref] = struct{}{}
	r.order = append(r.order, ref)
	return true
}

// Snapshot returns the monitored refs in subscription order. The next tick
// sees every ref added before it.
func (r *Registry) Snapshot() []models.EntityRef {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.EntityRef(nil), r.order...)
}

// Len reports the number of monitored refs.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}
