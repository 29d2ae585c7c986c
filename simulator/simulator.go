package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"gator-board/internal/models"

	"github.com/gorilla/websocket"
)

// SimConfig controls the demo run against a live engine.
type SimConfig struct {
	EngineURL   string
	MonitorTime time.Duration
	TopLimit    int
	BranchLimit int
}

// Simulator seeds sample content over HTTP and then watches it over the
// monitor stream.
type Simulator struct {
	config SimConfig
	client *http.Client

	// Everything created during seeding, in creation order.
	PostIDs    []string
	CommentIDs []string
}

func New(config SimConfig) *Simulator {
	return &Simulator{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type seedPost struct {
	Title     string
	Content   string
	Author    string
	Subreddit string
}

type seedComment struct {
	Author string
	Text   string
	// Index into PostIDs, or -1 with ReplyTo set.
	PostIndex int
	ReplyTo   int // index into CommentIDs when PostIndex < 0
}

var samplePosts = []seedPost{
	{"Carnegie Mellon's history", "In 1967, Carnegie Tech merged with the Mellon Institute...", "author1", "history"},
	{"Carnegie Institute of Technology", "During the first half of the 20th century...", "author2", "history"},
	{"School of Computer Science", "The School of Computer Science is consistently ranked...", "author5", "compsci"},
}

var sampleComments = []seedComment{
	{"user2", "This is a comment.", 0, -1},
	{"user3", "Nested comment.", -1, 0},
	{"user4", "Another top-level take.", 0, -1},
	{"user5", "Replying to the nested one.", -1, 1},
}

// Run seeds data, votes, queries rankings, then monitors score updates until
// the context expires or MonitorTime elapses.
func (s *Simulator) Run(ctx context.Context) error {
	if err := s.seed(); err != nil {
		return err
	}
	s.report()
	return s.monitor(ctx)
}

func (s *Simulator) seed() error {
	for _, p := range samplePosts {
		post, err := s.createPost(p)
		if err != nil {
			return fmt.Errorf("seeding post %q: %w", p.Title, err)
		}
		log.Printf("Created post %s: %s", post.ID, post.Title)
		s.PostIDs = append(s.PostIDs, post.ID)
	}

	for _, c := range sampleComments {
		comment, err := s.createComment(c)
		if err != nil {
			return fmt.Errorf("seeding comment by %s: %w", c.Author, err)
		}
		log.Printf("Created comment %s under %s", comment.ID, comment.Parent)
		s.CommentIDs = append(s.CommentIDs, comment.ID)
	}

	// Upvote everything once.
	for _, id := range s.PostIDs {
		if err := s.vote("/post/vote", map[string]any{"postId": id, "upvote": true}); err != nil {
			return err
		}
	}
	for _, id := range s.CommentIDs {
		if err := s.vote("/comment/vote", map[string]any{"commentId": id, "upvote": true}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulator) report() {
	for _, postID := range s.PostIDs {
		comments, err := s.topComments(postID, s.config.TopLimit)
		if err != nil {
			log.Printf("Top comments for %s failed: %v", postID, err)
			continue
		}
		for _, c := range comments {
			status := "no replies"
			if c.HasReplies {
				status = "has replies"
			}
			log.Printf("Top comment %s on %s: score %d, %s", c.ID, postID, c.Score, status)
		}
	}

	for _, commentID := range s.CommentIDs {
		branch, err := s.expandBranch(commentID, s.config.BranchLimit)
		if err != nil {
			log.Printf("Branch expansion for %s failed: %v", commentID, err)
			continue
		}
		for i, c := range branch {
			if i == 0 {
				log.Printf("Main comment %s: score %d", c.ID, c.Score)
			} else {
				log.Printf("  Reply %s: score %d", c.ID, c.Score)
			}
		}
	}
}

// monitor subscribes to every seeded entity and prints score updates.
func (s *Simulator) monitor(ctx context.Context) error {
	wsURL := strings.Replace(s.config.EngineURL, "http", "ws", 1) + "/monitor"
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dialing monitor stream: %w", err)
	}
	defer conn.Close()

	for _, id := range s.PostIDs {
		if err := conn.WriteJSON(&models.MonitorCommand{Action: models.ActionSubscribe, PostID: id}); err != nil {
			return err
		}
	}
	for _, id := range s.CommentIDs {
		if err := conn.WriteJSON(&models.MonitorCommand{Action: models.ActionSubscribe, CommentID: id}); err != nil {
			return err
		}
	}

	deadline := time.Now().Add(s.config.MonitorTime)
	for time.Now().Before(deadline) {
		if ctx.Err() != nil {
			break
		}
		conn.SetReadDeadline(deadline)
		var update models.ScoreUpdate
		if err := conn.ReadJSON(&update); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				break
			}
			return fmt.Errorf("monitor stream: %w", err)
		}
		log.Printf("Update received for %s: new score is %d", update.ItemID, update.NewScore)
	}

	return conn.WriteJSON(&models.MonitorCommand{Action: models.ActionStop})
}

func (s *Simulator) createPost(p seedPost) (*models.Post, error) {
	body := map[string]any{"title": p.Title, "content": p.Content, "author": p.Author, "subreddit": p.Subreddit}
	var post models.Post
	if err := s.post("/post", body, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *Simulator) createComment(c seedComment) (*models.Comment, error) {
	body := map[string]any{"author": c.Author, "content": c.Text}
	if c.PostIndex >= 0 {
		body["parentPostId"] = s.PostIDs[c.PostIndex]
	} else {
		body["parentCommentId"] = s.CommentIDs[c.ReplyTo]
	}
	var comment models.Comment
	if err := s.post("/comment", body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *Simulator) vote(path string, body map[string]any) error {
	var result struct {
		NewScore int `json:"newScore"`
	}
	return s.post(path, body, &result)
}

func (s *Simulator) topComments(postID string, n int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := s.get(fmt.Sprintf("/comment/top?postId=%s&n=%d", postID, n), &comments)
	return comments, err
}

func (s *Simulator) expandBranch(commentID string, n int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := s.get(fmt.Sprintf("/comment/branch?commentId=%s&n=%d", commentID, n), &comments)
	return comments, err
}

func (s *Simulator) post(path string, body map[string]any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := s.client.Post(s.config.EngineURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("POST %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (s *Simulator) get(path string, out any) error {
	resp, err := s.client.Get(s.config.EngineURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
