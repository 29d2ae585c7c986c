package actors

import (
	"testing"

	"gator-board/internal/models"
	"gator-board/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostActorCreateAndRetrieve(t *testing.T) {
	system, postPID, _ := spawnActors(t)

	post := request(t, system, postPID, &CreatePostMsg{
		Title:     "Test Post",
		Content:   "Test Content",
		Author:    "test_author",
		Subreddit: "test_subreddit",
	}).(*models.Post)

	assert.NotEmpty(t, post.ID)
	assert.Equal(t, 0, post.Score)
	assert.Equal(t, "test_subreddit", post.Subreddit.Name)

	fetched := request(t, system, postPID, &GetPostMsg{PostID: post.ID}).(*models.Post)
	assert.Equal(t, post.ID, fetched.ID)
	assert.Equal(t, "Test Post", fetched.Title)

	count := request(t, system, postPID, &GetCountsMsg{}).(int)
	assert.Equal(t, 1, count)
}

func TestPostActorVote(t *testing.T) {
	system, postPID, _ := spawnActors(t)

	post := request(t, system, postPID, &CreatePostMsg{
		Title:     "Test Post",
		Content:   "Test Content",
		Author:    "test_author",
		Subreddit: "test_subreddit",
	}).(*models.Post)

	vote := request(t, system, postPID, &VotePostMsg{PostID: post.ID, IsUpvote: true}).(*VoteResult)
	assert.Equal(t, 1, vote.NewScore)

	vote = request(t, system, postPID, &VotePostMsg{PostID: post.ID, IsUpvote: false}).(*VoteResult)
	assert.Equal(t, 0, vote.NewScore)
}

func TestPostActorGetUnknownPost(t *testing.T) {
	system, postPID, _ := spawnActors(t)

	result := request(t, system, postPID, &GetPostMsg{PostID: "post_42"})

	appErr, ok := result.(*utils.AppError)
	require.True(t, ok, "expected AppError, got %T", result)
	assert.Equal(t, utils.ErrNotFound, appErr.Code)
}
