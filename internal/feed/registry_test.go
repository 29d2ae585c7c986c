package feed

import (
	"testing"

	"gator-board/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRegistryAddIsIdempotent(t *testing.T) {
	r := NewRegistry()

	assert.True(t, r.Add(models.PostRef("post_1")))
	assert.False(t, r.Add(models.PostRef("post_1")))
	assert.Equal(t, 1, r.Len())

	// Same id under a different tag is a different subscription
	assert.True(t, r.Add(models.CommentRef("post_1")))
	assert.Equal(t, 2, r.Len())
}

func TestRegistrySnapshotKeepsSubscriptionOrder(t *testing.T) {
	r := NewRegistry()
	refs := []models.EntityRef{
		models.PostRef("post_2"),
		models.CommentRef("comment_1"),
		models.PostRef("post_1"),
	}
	for _, ref := range refs {
		r.Add(ref)
	}

	snapshot := r.Snapshot()
	assert.Equal(t, refs, snapshot)

	// The snapshot is a copy; later adds do not show up in it
	r.Add(models.CommentRef("comment_2"))
	assert.Len(t, snapshot, 3)
}
