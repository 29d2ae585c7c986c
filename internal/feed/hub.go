package feed

import (
	"log/slog"
	"sync"

	"gator-board/internal/metrics"

	"github.com/google/uuid"
)

// Hub tracks every live monitor session so shutdown can close them and the
// session gauge stays honest.
type Hub struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewHub() *Hub {
	return &Hub{
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Register adds a session to the hub.
func (h *Hub) Register(s *Session) {
	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()

	metrics.ActiveSessions.Inc()
	slog.Info("monitor session registered", "session_id", s.ID, "active", h.Len())
}

// Unregister removes a session; called from the session's own teardown.
func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	_, known := h.sessions[s.ID]
	delete(h.sessions, s.ID)
	h.mu.Unlock()

	if known {
		metrics.ActiveSessions.Dec()
	}
}

// Len reports the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Shutdown force-closes every live session's connection; the pumps unwind
// and release their own resources.
func (h *Hub) Shutdown() {
	h.mu.RLock()
	open := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		open = append(open, s)
	}
	h.mu.RUnlock()

	for _, s := range open {
		s.conn.Close()
	}
}
