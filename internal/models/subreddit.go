package models

// Subreddit has no identity beyond its name; it is embedded by value in a
// Post rather than stored separately.
type Subreddit struct {
	Name string `json:"name"`
}
