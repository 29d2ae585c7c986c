package handlers

import (
	"net/http"
	"time"

	"gator-board/internal/engine/actors"
)

// HealthResponse reports entity counts and process uptime.
type HealthResponse struct {
	Status        string `json:"status"`
	TotalPosts    int    `json:"totalPosts"`
	TotalComments int    `json:"totalComments"`
	OpenSessions  int    `json:"openSessions"`
	Uptime        string `json:"uptime"`
}

// HandleHealth reports entity counts gathered from the actors.
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postsResult, err := s.request(s.Engine.GetPostActor(), &actors.GetCountsMsg{})
		if err != nil {
			http.Error(w, "Failed to get post count", http.StatusInternalServerError)
			return
		}

		commentsResult, err := s.request(s.Engine.GetCommentActor(), &actors.GetCommentCountMsg{})
		if err != nil {
			http.Error(w, "Failed to get comment count", http.StatusInternalServerError)
			return
		}

		response := &HealthResponse{
			Status:        "ok",
			TotalPosts:    postsResult.(int),
			TotalComments: commentsResult.(int),
			OpenSessions:  s.Hub.Len(),
			Uptime:        s.Metrics.Uptime().Round(time.Second).String(),
		}
		s.respond(w, "health", response, nil)
	}
}
