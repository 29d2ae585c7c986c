package models

import "fmt"

// EntityKind distinguishes the two kinds of scorable entities.
type EntityKind string

const (
	KindPost    EntityKind = "post"
	KindComment EntityKind = "comment"
)

// EntityRef is a tagged reference to a post or a comment. Callers must set
// the kind explicitly; the id string itself is never inspected to decide
// what it points at.
type EntityRef struct {
	Kind EntityKind `json:"kind"`
	ID   string     `json:"id"`
}

func PostRef(id string) EntityRef {
	return EntityRef{Kind: KindPost, ID: id}
}

func CommentRef(id string) EntityRef {
	return EntityRef{Kind: KindComment, ID: id}
}

func (r EntityRef) String() string {
	return fmt.Sprintf("%s(%s)", r.Kind, r.ID)
}
