package ranking

import (
	"sort"

	"gator-board/internal/models"
	"gator-board/internal/store"
)

// Engine answers read-only structural queries over the comment forest held
// by the store.
type Engine struct {
	store *store.Store
}

func NewEngine(s *store.Store) *Engine {
	return &Engine{store: s}
}

// TopComments returns up to n of the post's direct child comments sorted by
// score descending. Ties keep creation order, so among equal scores the
// first-created comment wins. One level only, never the whole subtree.
func (e *Engine) TopComments(postID string, n int) ([]*models.Comment, error) {
	children, err := e.store.ChildComments(postID)
	if err != nil {
		return nil, err
	}

	// ChildComments returns creation order, so a stable sort is all the
	// tie-breaking needed.
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].Score > children[j].Score
	})

	if n < 0 {
		n = 0
	}
	if n < len(children) {
		children = children[:n]
	}
	return children, nil
}

// ExpandBranch returns the requested comment followed by up to n of its
// direct replies in stored order. With n == 0 only the comment itself is
// returned.
func (e *Engine) ExpandBranch(commentID string, n int) ([]*models.Comment, error) {
	comment, replies, err := e.store.CommentWithReplies(commentID)
	if err != nil {
		return nil, err
	}

	if n < 0 {
		n = 0
	}
	if n < len(replies) {
		replies = replies[:n]
	}

	branch := make([]*models.Comment, 0, len(replies)+1)
	branch = append(branch, comment)
	branch = append(branch, replies...)
	return branch, nil
}
