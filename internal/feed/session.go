package feed

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"gator-board/internal/logging"
	"gator-board/internal/metrics"
	"gator-board/internal/models"
	"gator-board/internal/store"
	"gator-board/internal/utils"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Outbound frame buffer per session.
	sendBufferSize = 16
)

// SessionState is the lifecycle state of one monitor session.
type SessionState int32

const (
	StateOpen SessionState = iota
	StateStreaming
	StateClosed
)

// Session is one bidirectional monitor conversation. The read pump drains
// subscribe/stop commands from the client while the write pump ticks and
// emits score updates for everything in the registry. The two loops meet
// only at the registry and the send channel.
type Session struct {
	ID       uuid.UUID
	hub      *Hub
	store    *store.Store
	conn     *websocket.Conn
	registry *Registry

	clock        clockwork.Clock
	tickInterval time.Duration
	tickStep     int

	// Owned by the read pump; closing it tells the write pump to flush
	// whatever is buffered and shut the session down.
	send chan any

	state  atomic.Int32
	closed sync.Once
	log    *slog.Logger
}

// NewSession wraps an upgraded websocket connection into a monitor session.
func NewSession(hub *Hub, s *store.Store, conn *websocket.Conn, clock clockwork.Clock, tickInterval time.Duration, tickStep int) *Session {
	id := uuid.New()
	session := &Session{
		ID:           id,
		hub:          hub,
		store:        s,
		conn:         conn,
		registry:     NewRegistry(),
		clock:        clock,
		tickInterval: tickInterval,
		tickStep:     tickStep,
		send:         make(chan any, sendBufferSize),
		log:          logging.WithSession(id.String()),
	}
	session.state.Store(int32(StateOpen))
	return session
}

// State reports the session's lifecycle state.
func (s *Session) State() SessionState {
	return SessionState(s.state.Load())
}

// ReadPump drains inbound commands until the stop sentinel, a fatal protocol
// error, or connection loss. It is the sole sender on the send channel and
// closes it on the way out.
func (s *Session) ReadPump() {
	defer close(s.send)

	s.conn.SetReadLimit(maxMessageSize)
	for {
		var cmd models.MonitorCommand
		if err := s.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("monitor read failed", "error", err)
			}
			return
		}

		if cmd.Action == models.ActionStop {
			s.log.Debug("stop sentinel received")
			return
		}

		if err := s.handleCommand(&cmd); err != nil {
			appErr := err.(*utils.AppError)
			s.log.Warn("monitor session failing", "code", appErr.Code, "error", appErr.Message)
			metrics.SessionErrors.WithLabelValues(appErr.Code).Inc()
			s.send <- &models.StreamError{Error: appErr.Code, Message: appErr.Message}
			return
		}
	}
}

// handleCommand validates one subscribe command and registers the target.
// Any returned error is fatal to the session.
func (s *Session) handleCommand(cmd *models.MonitorCommand) error {
	if cmd.Action != models.ActionSubscribe {
		return utils.NewAppError(utils.ErrInvalidInput, "unknown action: "+cmd.Action, nil)
	}

	var ref models.EntityRef
	switch {
	case cmd.PostID != "" && cmd.CommentID != "":
		return utils.NewAppError(utils.ErrInvalidInput, "subscribe command must name a post or a comment, not both", nil)
	case cmd.PostID != "":
		ref = models.PostRef(cmd.PostID)
	case cmd.CommentID != "":
		ref = models.CommentRef(cmd.CommentID)
	default:
		return utils.NewAppError(utils.ErrInvalidInput, "subscribe command names neither a post nor a comment", nil)
	}

	if !s.store.Exists(ref) {
		return utils.NewNotFoundError(string(ref.Kind), ref.ID)
	}

	if s.registry.Add(ref) {
		metrics.ActiveSubscriptions.Inc()
		s.log.Info("monitoring item", "item", ref.String(), "monitored", s.registry.Len())
	}
	s.state.CompareAndSwap(int32(StateOpen), int32(StateStreaming))
	return nil
}

// WritePump owns all writes on the connection: per-tick score updates, the
// terminal error frame, and the close handshake. It tears the session down
// when it returns, which also unblocks a read pump stuck on a dead peer.
func (s *Session) WritePump() {
	ticker := s.clock.NewTicker(s.tickInterval)
	defer func() {
		ticker.Stop()
		s.teardown()
	}()

	for {
		select {
		case <-ticker.Chan():
			refs := s.registry.Snapshot()
			if len(refs) == 0 {
				continue
			}
			updates := s.store.BumpScores(refs, s.tickStep)
			for _, update := range updates {
				s.conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := s.conn.WriteJSON(update); err != nil {
					s.log.Warn("monitor write failed", "error", err)
					return
				}
				metrics.UpdatesEmitted.Inc()
			}

		case frame, ok := <-s.send:
			if !ok {
				// Read pump finished: stop sentinel or connection loss.
				s.writeClose(websocket.CloseNormalClosure, "session ended")
				return
			}
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(frame); err != nil {
				s.log.Warn("monitor write failed", "error", err)
				return
			}
			if _, fatal := frame.(*models.StreamError); fatal {
				s.writeClose(websocket.ClosePolicyViolation, "session failed")
				return
			}
		}
	}
}

func (s *Session) writeClose(code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

// teardown releases everything the session holds. Safe to call from either
// pump; only the first call does work.
func (s *Session) teardown() {
	s.closed.Do(func() {
		s.state.Store(int32(StateClosed))
		s.conn.Close()
		s.hub.Unregister(s)
		metrics.ActiveSubscriptions.Sub(float64(s.registry.Len()))
		s.log.Info("monitor session closed")
	})
}
