package ranking

import (
	"testing"

	"gator-board/internal/models"
	"gator-board/internal/store"
	"gator-board/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedForest(t *testing.T) (*store.Store, *models.Post, []*models.Comment) {
	t.Helper()
	s := store.New()
	post := s.CreatePost("Test Post", "content", "author1", "swamp")

	comments := make([]*models.Comment, 0, 4)
	for _, text := range []string{"first", "second", "third", "fourth"} {
		c, err := s.CreateComment("user1", text, models.PostRef(post.ID))
		require.NoError(t, err)
		comments = append(comments, c)
	}
	return s, post, comments
}

func TestTopCommentsOrdersByScoreDescending(t *testing.T) {
	s, post, comments := seedForest(t)
	engine := NewEngine(s)

	// Scores: first=1, second=3, third=0, fourth=2
	_, err := s.VoteComment(comments[0].ID, true)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = s.VoteComment(comments[1].ID, true)
		require.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err = s.VoteComment(comments[3].ID, true)
		require.NoError(t, err)
	}

	top, err := engine.TopComments(post.ID, 10)
	require.NoError(t, err)
	require.Len(t, top, 4)
	assert.Equal(t, comments[1].ID, top[0].ID)
	assert.Equal(t, comments[3].ID, top[1].ID)
	assert.Equal(t, comments[0].ID, top[2].ID)
	assert.Equal(t, comments[2].ID, top[3].ID)

	// Truncation to n
	top, err = engine.TopComments(post.ID, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, comments[1].ID, top[0].ID)
}

func TestTopCommentsTiesKeepCreationOrder(t *testing.T) {
	s, post, comments := seedForest(t)
	engine := NewEngine(s)

	// All scores equal: the first-created comment wins
	top, err := engine.TopComments(post.ID, 4)
	require.NoError(t, err)
	require.Len(t, top, 4)
	for i, c := range comments {
		assert.Equal(t, c.ID, top[i].ID)
	}
}

func TestTopCommentsExcludesOtherPostsAndSubtrees(t *testing.T) {
	s, post, comments := seedForest(t)
	engine := NewEngine(s)

	other := s.CreatePost("Other Post", "content", "author2", "swamp")
	_, err := s.CreateComment("user2", "elsewhere", models.PostRef(other.ID))
	require.NoError(t, err)

	// A highly voted nested reply must not appear among the post's top comments
	reply, err := s.CreateComment("user3", "nested", models.CommentRef(comments[0].ID))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		_, err = s.VoteComment(reply.ID, true)
		require.NoError(t, err)
	}

	top, err := engine.TopComments(post.ID, 10)
	require.NoError(t, err)
	require.Len(t, top, 4)
	for _, c := range top {
		assert.Equal(t, post.ID, c.Parent.ID)
		assert.NotEqual(t, reply.ID, c.ID)
	}

	// HasReplies reflects the reply added after creation
	assert.True(t, top[0].HasReplies)
}

func TestTopCommentsUnknownPost(t *testing.T) {
	s := store.New()
	engine := NewEngine(s)

	_, err := engine.TopComments("post_1", 5)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
}

func TestExpandBranchReturnsCommentThenReplyPrefix(t *testing.T) {
	s, _, comments := seedForest(t)
	engine := NewEngine(s)

	replies := make([]*models.Comment, 0, 3)
	for _, text := range []string{"r1", "r2", "r3"} {
		r, err := s.CreateComment("user2", text, models.CommentRef(comments[0].ID))
		require.NoError(t, err)
		replies = append(replies, r)
	}

	branch, err := engine.ExpandBranch(comments[0].ID, 2)
	require.NoError(t, err)
	require.Len(t, branch, 3)
	assert.Equal(t, comments[0].ID, branch[0].ID)
	assert.Equal(t, replies[0].ID, branch[1].ID)
	assert.Equal(t, replies[1].ID, branch[2].ID)

	// n = 0 returns just the main comment
	branch, err = engine.ExpandBranch(comments[0].ID, 0)
	require.NoError(t, err)
	require.Len(t, branch, 1)
	assert.Equal(t, comments[0].ID, branch[0].ID)

	// n larger than the reply list returns all replies
	branch, err = engine.ExpandBranch(comments[0].ID, 10)
	require.NoError(t, err)
	assert.Len(t, branch, 4)
}

func TestExpandBranchUnknownComment(t *testing.T) {
	s := store.New()
	engine := NewEngine(s)

	_, err := engine.ExpandBranch("comment_1", 5)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
}
