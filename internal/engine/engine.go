package engine

import (
	"gator-board/internal/engine/actors"
	"gator-board/internal/store"
	"gator-board/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Engine coordinates communication between actors
type Engine struct {
	postActor    *actor.PID
	commentActor *actor.PID
}

// NewEngine spawns the post and comment actors over the shared store.
func NewEngine(system *actor.ActorSystem, s *store.Store, metrics *utils.MetricsCollector) *Engine {
	context := system.Root

	postProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewPostActor(s, metrics)
	})
	postPID := context.Spawn(postProps)

	commentProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewCommentActor(s, metrics)
	})
	commentPID := context.Spawn(commentProps)

	return &Engine{
		postActor:    postPID,
		commentActor: commentPID,
	}
}

// GetPostActor returns the PID of the post actor
func (e *Engine) GetPostActor() *actor.PID {
	return e.postActor
}

// GetCommentActor returns the PID of the comment actor
func (e *Engine) GetCommentActor() *actor.PID {
	return e.commentActor
}
