package models

// Wire frames for the live update stream.

const (
	ActionSubscribe = "subscribe"
	ActionStop      = "stop"
)

// MonitorCommand is one inbound frame on a monitor session. For subscribe
// commands exactly one of PostID/CommentID must be set; the tag decides the
// entity kind, never the shape of the id string.
type MonitorCommand struct {
	Action    string `json:"action"`
	PostID    string `json:"postId,omitempty"`
	CommentID string `json:"commentId,omitempty"`
}

// ScoreUpdate is one outbound event: the monitored item and its score as of
// the tick that produced the event.
type ScoreUpdate struct {
	ItemID   string `json:"itemId"`
	NewScore int    `json:"newScore"`
}

// StreamError is the terminal frame emitted before a session is closed on a
// fatal protocol error.
type StreamError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
