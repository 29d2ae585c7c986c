package store

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"gator-board/internal/models"
	"gator-board/internal/utils"
)

// Store owns every post and comment in the system, the score ledger, and the
// id counters. It is shared by the request/response path and the live feed,
// so all access goes through its synchronized methods; the internal maps
// never escape, callers always get copies.
type Store struct {
	mu       sync.RWMutex
	posts    map[string]*models.Post
	comments map[string]*models.Comment

	// Score ledger: entity id -> current score, kept in step with the
	// entity's own Score field inside the same critical section.
	scores map[string]int

	nextPostID    atomic.Int64
	nextCommentID atomic.Int64
}

func New() *Store {
	return &Store{
		posts:    make(map[string]*models.Post),
		comments: make(map[string]*models.Comment),
		scores:   make(map[string]int),
	}
}

func (s *Store) newPostID() string {
	return fmt.Sprintf("post_%d", s.nextPostID.Add(1))
}

func (s *Store) newCommentID() string {
	return fmt.Sprintf("comment_%d", s.nextCommentID.Add(1))
}

// CreatePost allocates the next post id, stores the post with score 0 and
// returns a copy of the stored record. It never fails.
func (s *Store) CreatePost(title, content, author, subreddit string) *models.Post {
	post := &models.Post{
		ID:         s.newPostID(),
		Title:      title,
		Content:    content,
		Author:     author,
		Subreddit:  models.Subreddit{Name: subreddit},
		Score:      0,
		CommentIDs: make([]string, 0),
		CreatedAt:  time.Now(),
	}

	s.mu.Lock()
	s.posts[post.ID] = post
	s.scores[post.ID] = 0
	s.mu.Unlock()

	return clonePost(post)
}

// CreateComment stores a new comment under the given parent. The parent is
// resolved by its tag, and the comment is only stored if the parent exists:
// a failed creation leaves no partial linkage behind.
func (s *Store) CreateComment(author, content string, parent models.EntityRef) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment := &models.Comment{
		ID:        s.newCommentID(),
		Author:    author,
		Content:   content,
		Parent:    parent,
		Score:     0,
		ReplyIDs:  make([]string, 0),
		CreatedAt: time.Now(),
	}

	switch parent.Kind {
	case models.KindPost:
		post, exists := s.posts[parent.ID]
		if !exists {
			return nil, utils.NewNotFoundError("parent post", parent.ID)
		}
		post.CommentIDs = append(post.CommentIDs, comment.ID)

	case models.KindComment:
		parentComment, exists := s.comments[parent.ID]
		if !exists {
			return nil, utils.NewNotFoundError("parent comment", parent.ID)
		}
		parentComment.ReplyIDs = append(parentComment.ReplyIDs, comment.ID)

	default:
		return nil, utils.NewAppError(utils.ErrInvalidInput, fmt.Sprintf("unknown parent kind %q", parent.Kind), nil)
	}

	s.comments[comment.ID] = comment
	s.scores[comment.ID] = 0

	return cloneComment(comment), nil
}

// GetPost returns a copy of the post with the given id.
func (s *Store) GetPost(id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, exists := s.posts[id]
	if !exists {
		return nil, utils.NewNotFoundError("post", id)
	}
	return clonePost(post), nil
}

// GetComment returns a copy of the comment with the given id.
func (s *Store) GetComment(id string) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comment, exists := s.comments[id]
	if !exists {
		return nil, utils.NewNotFoundError("comment", id)
	}
	return cloneComment(comment), nil
}

// VotePost applies a ±1 delta to the post's score and its ledger entry in
// one step, returning the new score.
func (s *Store) VotePost(id string, upvote bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[id]
	if !exists {
		return 0, utils.NewNotFoundError("post", id)
	}
	post.Score += models.Delta(upvote)
	s.scores[id] = post.Score
	return post.Score, nil
}

// VoteComment applies a ±1 delta to the comment's score and its ledger entry
// in one step, returning the new score.
func (s *Store) VoteComment(id string, upvote bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment, exists := s.comments[id]
	if !exists {
		return 0, utils.NewNotFoundError("comment", id)
	}
	comment.Score += models.Delta(upvote)
	s.scores[id] = comment.Score
	return comment.Score, nil
}

// Exists reports whether the referenced entity is known to the store.
func (s *Store) Exists(ref models.EntityRef) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch ref.Kind {
	case models.KindPost:
		_, ok := s.posts[ref.ID]
		return ok
	case models.KindComment:
		_, ok := s.comments[ref.ID]
		return ok
	}
	return false
}

// Score reads the ledger entry for the referenced entity.
func (s *Store) Score(ref models.EntityRef) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	score, exists := s.scores[ref.ID]
	if !exists {
		return 0, utils.NewNotFoundError(string(ref.Kind), ref.ID)
	}
	return score, nil
}

// BumpScores applies the per-tick increment to every referenced entity,
// keeping entity score and ledger consistent, and returns one update per
// entity carrying the post-increment score. Refs that are no longer known
// are skipped; nothing is ever deleted, so in practice that cannot happen.
func (s *Store) BumpScores(refs []models.EntityRef, step int) []models.ScoreUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()

	updates := make([]models.ScoreUpdate, 0, len(refs))
	for _, ref := range refs {
		switch ref.Kind {
		case models.KindPost:
			post, ok := s.posts[ref.ID]
			if !ok {
				continue
			}
			post.Score += step
			s.scores[ref.ID] = post.Score
			updates = append(updates, models.ScoreUpdate{ItemID: ref.ID, NewScore: post.Score})

		case models.KindComment:
			comment, ok := s.comments[ref.ID]
			if !ok {
				continue
			}
			comment.Score += step
			s.scores[ref.ID] = comment.Score
			updates = append(updates, models.ScoreUpdate{ItemID: ref.ID, NewScore: comment.Score})
		}
	}
	return updates
}

// ChildComments returns copies of the post's direct child comments in their
// stored creation order.
func (s *Store) ChildComments(postID string) ([]*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, exists := s.posts[postID]
	if !exists {
		return nil, utils.NewNotFoundError("post", postID)
	}

	children := make([]*models.Comment, 0, len(post.CommentIDs))
	for _, id := range post.CommentIDs {
		if comment, ok := s.comments[id]; ok {
			children = append(children, cloneComment(comment))
		}
	}
	return children, nil
}

// CommentWithReplies returns a copy of the comment together with copies of
// its direct replies in stored order.
func (s *Store) CommentWithReplies(commentID string) (*models.Comment, []*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comment, exists := s.comments[commentID]
	if !exists {
		return nil, nil, utils.NewNotFoundError("comment", commentID)
	}

	replies := make([]*models.Comment, 0, len(comment.ReplyIDs))
	for _, id := range comment.ReplyIDs {
		if reply, ok := s.comments[id]; ok {
			replies = append(replies, cloneComment(reply))
		}
	}
	return cloneComment(comment), replies, nil
}

// Counts reports the number of stored posts and comments.
func (s *Store) Counts() (posts int, comments int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts), len(s.comments)
}

func clonePost(p *models.Post) *models.Post {
	clone := *p
	clone.CommentIDs = append([]string(nil), p.CommentIDs...)
	return &clone
}

// cloneComment recomputes HasReplies at copy time: replies can arrive after
// the comment was first returned, so the stored flag is never trusted.
func cloneComment(c *models.Comment) *models.Comment {
	clone := *c
	clone.ReplyIDs = append([]string(nil), c.ReplyIDs...)
	clone.HasReplies = len(c.ReplyIDs) > 0
	return &clone
}
