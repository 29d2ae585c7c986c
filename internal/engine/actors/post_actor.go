package actors

import (
	"log"
	"time"

	"gator-board/internal/store"
	"gator-board/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Message types for Post operations
type (
	CreatePostMsg struct {
		Title     string
		Content   string
		Author    string
		Subreddit string
	}

	GetPostMsg struct {
		PostID string
	}

	VotePostMsg struct {
		PostID   string
		IsUpvote bool
	}

	// VoteResult carries the post-vote score back to the caller.
	VoteResult struct {
		NewScore int `json:"newScore"`
	}

	GetCountsMsg struct{}
)

// PostActor handles post-related operations against the shared store.
type PostActor struct {
	store   *store.Store
	metrics *utils.MetricsCollector
}

// NewPostActor creates a new PostActor instance
func NewPostActor(s *store.Store, metrics *utils.MetricsCollector) actor.Actor {
	return &PostActor{
		store:   s,
		metrics: metrics,
	}
}

// Receive handles incoming messages
func (a *PostActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("PostActor started")

	case *actor.Stopping:
		log.Printf("PostActor stopping")

	case *actor.Stopped:
		log.Printf("PostActor stopped")

	case *CreatePostMsg:
		a.handleCreatePost(context, msg)
	case *GetPostMsg:
		a.handleGetPost(context, msg)
	case *VotePostMsg:
		a.handleVote(context, msg)
	case *GetCountsMsg:
		posts, _ := a.store.Counts()
		context.Respond(posts)
	default:
		log.Printf("PostActor: Unknown message type: %T", msg)
	}
}

func (a *PostActor) handleCreatePost(context actor.Context, msg *CreatePostMsg) {
	startTime := time.Now()

	post := a.store.CreatePost(msg.Title, msg.Content, msg.Author, msg.Subreddit)
	log.Printf("PostActor: Created post %s in r/%s by %s", post.ID, post.Subreddit.Name, post.Author)

	a.metrics.AddOperationLatency("create_post", time.Since(startTime))
	context.Respond(post)
}

func (a *PostActor) handleGetPost(context actor.Context, msg *GetPostMsg) {
	post, err := a.store.GetPost(msg.PostID)
	if err != nil {
		context.Respond(err.(*utils.AppError))
		return
	}
	context.Respond(post)
}

func (a *PostActor) handleVote(context actor.Context, msg *VotePostMsg) {
	startTime := time.Now()

	newScore, err := a.store.VotePost(msg.PostID, msg.IsUpvote)
	if err != nil {
		context.Respond(err.(*utils.AppError))
		return
	}

	a.metrics.AddOperationLatency("vote_post", time.Since(startTime))
	context.Respond(&VoteResult{NewScore: newScore})
}
