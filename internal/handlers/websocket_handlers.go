package handlers

import (
	"log"
	"net/http"

	"gator-board/internal/feed"

	ws "github.com/gorilla/websocket"
)

// HandleMonitor upgrades the connection and runs a live update session on
// it: inbound subscribe/stop commands, outbound score update events.
func (s *Server) HandleMonitor() http.HandlerFunc {
	upgrader := ws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range s.AllowedOrigins {
				if allowed == "*" || allowed == origin {
					return true
				}
			}
			return false
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Monitor upgrade failed: %v", err)
			// Cannot write an HTTP error after an upgrade attempt
			return
		}

		session := feed.NewSession(s.Hub, s.Store, conn, s.Clock, s.Feed.TickInterval, s.Feed.TickStep)
		s.Hub.Register(session)

		go session.WritePump()
		go session.ReadPump()
	}
}
