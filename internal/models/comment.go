package models

import (
	"time"
)

// Comment represents a comment on a post or another comment. Comments form a
// forest rooted at posts: the parent must exist when the comment is created,
// so cycles cannot occur.
type Comment struct {
	ID         string    `json:"id"`
	Author     string    `json:"author"`
	Content    string    `json:"content"`
	Parent     EntityRef `json:"parent"`
	Score      int       `json:"score"`
	ReplyIDs   []string  `json:"replyIds"` // Direct replies, in creation order
	HasReplies bool      `json:"hasReplies"`
	CreatedAt  time.Time `json:"createdAt"`
}
