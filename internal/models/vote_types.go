package models

// Delta converts a protocol upvote flag into a signed score delta.
func Delta(upvote bool) int {
	if upvote {
		return 1
	}
	return -1
}
