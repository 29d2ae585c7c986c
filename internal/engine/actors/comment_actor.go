package actors

import (
	"log"
	"time"

	"gator-board/internal/models"
	"gator-board/internal/ranking"
	"gator-board/internal/store"
	"gator-board/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Message types for CommentActor
type (
	CreateCommentMsg struct {
		Author  string
		Content string
		Parent  models.EntityRef
	}

	GetCommentMsg struct {
		CommentID string
	}

	VoteCommentMsg struct {
		CommentID string
		IsUpvote  bool
	}

	GetTopCommentsMsg struct {
		PostID string
		Limit  int
	}

	ExpandBranchMsg struct {
		CommentID string
		Limit     int
	}

	GetCommentCountMsg struct{}
)

// CommentActor manages comment operations against the shared store.
type CommentActor struct {
	store   *store.Store
	ranking *ranking.Engine
	metrics *utils.MetricsCollector
}

func NewCommentActor(s *store.Store, metrics *utils.MetricsCollector) actor.Actor {
	return &CommentActor{
		store:   s,
		ranking: ranking.NewEngine(s),
		metrics: metrics,
	}
}

func (a *CommentActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("CommentActor started with PID: %v", context.Self())

	case *CreateCommentMsg:
		a.handleCreateComment(context, msg)

	case *GetCommentMsg:
		a.handleGetComment(context, msg)

	case *VoteCommentMsg:
		a.handleVoteComment(context, msg)

	case *GetTopCommentsMsg:
		a.handleGetTopComments(context, msg)

	case *ExpandBranchMsg:
		a.handleExpandBranch(context, msg)

	case *GetCommentCountMsg:
		_, comments := a.store.Counts()
		context.Respond(comments)

	default:
		log.Printf("CommentActor: Unknown message type %T", msg)
	}
}

func (a *CommentActor) handleCreateComment(context actor.Context, msg *CreateCommentMsg) {
	startTime := time.Now()
	log.Printf("CommentActor: Creating comment under %s by %s", msg.Parent, msg.Author)

	comment, err := a.store.CreateComment(msg.Author, msg.Content, msg.Parent)
	if err != nil {
		log.Printf("CommentActor: Create failed: %v", err)
		context.Respond(err.(*utils.AppError))
		return
	}

	a.metrics.AddOperationLatency("create_comment", time.Since(startTime))
	context.Respond(comment)
}

func (a *CommentActor) handleGetComment(context actor.Context, msg *GetCommentMsg) {
	comment, err := a.store.GetComment(msg.CommentID)
	if err != nil {
		context.Respond(err.(*utils.AppError))
		return
	}
	context.Respond(comment)
}

func (a *CommentActor) handleVoteComment(context actor.Context, msg *VoteCommentMsg) {
	startTime := time.Now()

	newScore, err := a.store.VoteComment(msg.CommentID, msg.IsUpvote)
	if err != nil {
		context.Respond(err.(*utils.AppError))
		return
	}

	a.metrics.AddOperationLatency("vote_comment", time.Since(startTime))
	context.Respond(&VoteResult{NewScore: newScore})
}

func (a *CommentActor) handleGetTopComments(context actor.Context, msg *GetTopCommentsMsg) {
	startTime := time.Now()

	comments, err := a.ranking.TopComments(msg.PostID, msg.Limit)
	if err != nil {
		context.Respond(err.(*utils.AppError))
		return
	}

	a.metrics.AddOperationLatency("top_comments", time.Since(startTime))
	context.Respond(comments)
}

func (a *CommentActor) handleExpandBranch(context actor.Context, msg *ExpandBranchMsg) {
	startTime := time.Now()

	comments, err := a.ranking.ExpandBranch(msg.CommentID, msg.Limit)
	if err != nil {
		context.Respond(err.(*utils.AppError))
		return
	}

	a.metrics.AddOperationLatency("expand_branch", time.Since(startTime))
	context.Respond(comments)
}
