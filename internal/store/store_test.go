package store

import (
	"fmt"
	"sync"
	"testing"

	"gator-board/internal/models"
	"gator-board/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostAssignsUniqueIDs(t *testing.T) {
	s := New()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		post := s.CreatePost(fmt.Sprintf("Post %d", i), "content", "author1", "swamp")
		assert.Equal(t, 0, post.Score)
		assert.False(t, seen[post.ID], "id %s reused", post.ID)
		seen[post.ID] = true
	}

	first := s.CreatePost("first", "content", "author1", "swamp")
	assert.Contains(t, first.ID, "post_")
}

func TestCreateCommentUnderPostAndComment(t *testing.T) {
	s := New()
	post := s.CreatePost("Test Post", "Test Content", "test_author", "test_subreddit")

	comment, err := s.CreateComment("user2", "This is a comment.", models.PostRef(post.ID))
	require.NoError(t, err)
	assert.Equal(t, 0, comment.Score)
	assert.Equal(t, models.KindPost, comment.Parent.Kind)
	assert.Equal(t, post.ID, comment.Parent.ID)

	reply, err := s.CreateComment("user3", "Nested comment.", models.CommentRef(comment.ID))
	require.NoError(t, err)
	assert.Equal(t, comment.ID, reply.Parent.ID)

	// Parent linkage is visible on fresh reads
	storedPost, err := s.GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{comment.ID}, storedPost.CommentIDs)

	storedComment, err := s.GetComment(comment.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{reply.ID}, storedComment.ReplyIDs)
	assert.True(t, storedComment.HasReplies)
}

func TestCreateCommentMissingParentIsAtomic(t *testing.T) {
	s := New()
	s.CreatePost("Test Post", "content", "author", "swamp")
	postsBefore, commentsBefore := s.Counts()

	_, err := s.CreateComment("user1", "orphan", models.PostRef("post_99"))
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))

	_, err = s.CreateComment("user1", "orphan", models.CommentRef("comment_99"))
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))

	_, err = s.CreateComment("user1", "orphan", models.EntityRef{Kind: "user", ID: "user_1"})
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))

	postsAfter, commentsAfter := s.Counts()
	assert.Equal(t, postsBefore, postsAfter)
	assert.Equal(t, commentsBefore, commentsAfter)
}

func TestVoteSumsWithoutCrossEntityLeakage(t *testing.T) {
	s := New()
	post := s.CreatePost("Test Post", "content", "author", "swamp")
	other := s.CreatePost("Other Post", "content", "author", "swamp")
	comment, err := s.CreateComment("user1", "comment", models.PostRef(post.ID))
	require.NoError(t, err)

	// +1 +1 -1 on the post, interleaved with votes elsewhere
	score, err := s.VotePost(post.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 1, score)

	_, err = s.VoteComment(comment.ID, true)
	require.NoError(t, err)

	score, err = s.VotePost(post.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 2, score)

	_, err = s.VotePost(other.ID, false)
	require.NoError(t, err)

	score, err = s.VotePost(post.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 1, score)

	// Ledger matches the entity score after every mutation
	ledger, err := s.Score(models.PostRef(post.ID))
	require.NoError(t, err)
	assert.Equal(t, 1, ledger)

	ledger, err = s.Score(models.CommentRef(comment.ID))
	require.NoError(t, err)
	assert.Equal(t, 1, ledger)

	otherStored, err := s.GetPost(other.ID)
	require.NoError(t, err)
	assert.Equal(t, -1, otherStored.Score)
}

func TestVoteUnknownEntity(t *testing.T) {
	s := New()

	_, err := s.VotePost("post_1", true)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))

	_, err = s.VoteComment("comment_1", false)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
}

func TestConcurrentVotesSumUp(t *testing.T) {
	s := New()
	post := s.CreatePost("Test Post", "content", "author", "swamp")

	const voters = 20
	const votesEach = 25

	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < votesEach; j++ {
				_, err := s.VotePost(post.ID, true)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	stored, err := s.GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, voters*votesEach, stored.Score)

	ledger, err := s.Score(models.PostRef(post.ID))
	require.NoError(t, err)
	assert.Equal(t, voters*votesEach, ledger)
}

func TestBumpScoresKeepsLedgerConsistent(t *testing.T) {
	s := New()
	post := s.CreatePost("Test Post", "content", "author", "swamp")
	comment, err := s.CreateComment("user1", "comment", models.PostRef(post.ID))
	require.NoError(t, err)

	refs := []models.EntityRef{models.PostRef(post.ID), models.CommentRef(comment.ID)}
	updates := s.BumpScores(refs, 1)
	require.Len(t, updates, 2)
	assert.Equal(t, models.ScoreUpdate{ItemID: post.ID, NewScore: 1}, updates[0])
	assert.Equal(t, models.ScoreUpdate{ItemID: comment.ID, NewScore: 1}, updates[1])

	// Second bump builds on the first, and entity reads agree
	updates = s.BumpScores(refs, 1)
	assert.Equal(t, 2, updates[0].NewScore)

	stored, err := s.GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Score)

	ledger, err := s.Score(models.PostRef(post.ID))
	require.NoError(t, err)
	assert.Equal(t, 2, ledger)
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	s := New()
	post := s.CreatePost("Test Post", "content", "author", "swamp")

	// Mutating a returned record must not touch the stored one
	post.Score = 999
	post.CommentIDs = append(post.CommentIDs, "comment_42")

	stored, err := s.GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Score)
	assert.Empty(t, stored.CommentIDs)
}

func TestExists(t *testing.T) {
	s := New()
	post := s.CreatePost("Test Post", "content", "author", "swamp")
	comment, err := s.CreateComment("user1", "comment", models.PostRef(post.ID))
	require.NoError(t, err)

	assert.True(t, s.Exists(models.PostRef(post.ID)))
	assert.True(t, s.Exists(models.CommentRef(comment.ID)))

	// The tag decides the lookup, never the id shape
	assert.False(t, s.Exists(models.CommentRef(post.ID)))
	assert.False(t, s.Exists(models.PostRef(comment.ID)))
	assert.False(t, s.Exists(models.PostRef("post_99")))
}
