package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"gator-board/internal/engine/actors"
)

// CreatePostRequest represents a request to create a new post
type CreatePostRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Subreddit string `json:"subreddit"`
}

// VotePostRequest represents an up/downvote on a post
type VotePostRequest struct {
	PostID string `json:"postId"`
	Upvote bool   `json:"upvote"`
}

// HandlePost handles post creation and retrieval
func (s *Server) HandlePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var req CreatePostRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				log.Printf("Error decoding request: %v", err)
				http.Error(w, "Invalid request format", http.StatusBadRequest)
				return
			}

			if req.Title == "" || req.Content == "" {
				http.Error(w, "Title and content are required", http.StatusBadRequest)
				return
			}

			result, err := s.request(s.Engine.GetPostActor(), &actors.CreatePostMsg{
				Title:     req.Title,
				Content:   req.Content,
				Author:    req.Author,
				Subreddit: req.Subreddit,
			})
			s.respond(w, "create_post", result, err)

		case http.MethodGet:
			postID := r.URL.Query().Get("id")
			if postID == "" {
				http.Error(w, "Post ID is required", http.StatusBadRequest)
				return
			}

			result, err := s.request(s.Engine.GetPostActor(), &actors.GetPostMsg{
				PostID: postID,
			})
			s.respond(w, "get_post", result, err)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// HandlePostVote applies a vote to a post and returns the new score
func (s *Server) HandlePostVote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req VotePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Error decoding request: %v", err)
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		if req.PostID == "" {
			http.Error(w, "Post ID is required", http.StatusBadRequest)
			return
		}

		result, err := s.request(s.Engine.GetPostActor(), &actors.VotePostMsg{
			PostID:   req.PostID,
			IsUpvote: req.Upvote,
		})
		s.respond(w, "vote_post", result, err)
	}
}
