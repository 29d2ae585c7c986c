package models

import (
	"time"
)

type Post struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Author     string    `json:"author"`
	Subreddit  Subreddit `json:"subreddit"`
	Score      int       `json:"score"`
	CommentIDs []string  `json:"commentIds"` // Direct children, in creation order
	CreatedAt  time.Time `json:"createdAt"`
}
