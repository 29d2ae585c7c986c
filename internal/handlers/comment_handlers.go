package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"gator-board/internal/engine/actors"
	"gator-board/internal/models"
)

// CreateCommentRequest represents a request to create a new comment. Exactly
// one of ParentPostID/ParentCommentID must be set; the field chosen is what
// tags the parent reference.
type CreateCommentRequest struct {
	Author          string `json:"author"`
	Content         string `json:"content"`
	ParentPostID    string `json:"parentPostId,omitempty"`
	ParentCommentID string `json:"parentCommentId,omitempty"`
}

// VoteCommentRequest represents an up/downvote on a comment
type VoteCommentRequest struct {
	CommentID string `json:"commentId"`
	Upvote    bool   `json:"upvote"`
}

// HandleComment handles comment creation
func (s *Server) HandleComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req CreateCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Error decoding request: %v", err)
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		var parent models.EntityRef
		switch {
		case req.ParentPostID != "" && req.ParentCommentID != "":
			http.Error(w, "Parent must be a post or a comment, not both", http.StatusBadRequest)
			return
		case req.ParentPostID != "":
			parent = models.PostRef(req.ParentPostID)
		case req.ParentCommentID != "":
			parent = models.CommentRef(req.ParentCommentID)
		default:
			http.Error(w, "Parent post or comment ID is required", http.StatusBadRequest)
			return
		}

		result, err := s.request(s.Engine.GetCommentActor(), &actors.CreateCommentMsg{
			Author:  req.Author,
			Content: req.Content,
			Parent:  parent,
		})
		s.respond(w, "create_comment", result, err)
	}
}

// HandleCommentVote applies a vote to a comment and returns the new score
func (s *Server) HandleCommentVote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req VoteCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Error decoding request: %v", err)
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		if req.CommentID == "" {
			http.Error(w, "Comment ID is required", http.StatusBadRequest)
			return
		}

		result, err := s.request(s.Engine.GetCommentActor(), &actors.VoteCommentMsg{
			CommentID: req.CommentID,
			IsUpvote:  req.Upvote,
		})
		s.respond(w, "vote_comment", result, err)
	}
}

// HandleTopComments returns a post's highest scored direct comments
func (s *Server) HandleTopComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		postID := r.URL.Query().Get("postId")
		if postID == "" {
			http.Error(w, "Post ID is required", http.StatusBadRequest)
			return
		}

		limit, err := parseLimit(r.URL.Query().Get("n"))
		if err != nil {
			http.Error(w, "Invalid count", http.StatusBadRequest)
			return
		}

		result, reqErr := s.request(s.Engine.GetCommentActor(), &actors.GetTopCommentsMsg{
			PostID: postID,
			Limit:  limit,
		})
		s.respond(w, "top_comments", result, reqErr)
	}
}

// HandleExpandBranch returns a comment followed by its first replies
func (s *Server) HandleExpandBranch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		commentID := r.URL.Query().Get("commentId")
		if commentID == "" {
			http.Error(w, "Comment ID is required", http.StatusBadRequest)
			return
		}

		limit, err := parseLimit(r.URL.Query().Get("n"))
		if err != nil {
			http.Error(w, "Invalid count", http.StatusBadRequest)
			return
		}

		result, reqErr := s.request(s.Engine.GetCommentActor(), &actors.ExpandBranchMsg{
			CommentID: commentID,
			Limit:     limit,
		})
		s.respond(w, "expand_branch", result, reqErr)
	}
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if limit < 0 {
		return 0, fmt.Errorf("count must not be negative: %d", limit)
	}
	return limit, nil
}
