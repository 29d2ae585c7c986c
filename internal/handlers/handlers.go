package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"gator-board/internal/config"
	"gator-board/internal/engine"
	"gator-board/internal/feed"
	"gator-board/internal/metrics"
	"gator-board/internal/store"
	"gator-board/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/jonboulle/clockwork"
)

// Server holds all server dependencies, including the actor system and engine
type Server struct {
	System         *actor.ActorSystem
	Context        *actor.RootContext
	Engine         *engine.Engine
	Store          *store.Store
	Hub            *feed.Hub
	Clock          clockwork.Clock
	Feed           *config.FeedConfig
	Metrics        *utils.MetricsCollector
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewServer creates a new Server instance with the given components
func NewServer(
	system *actor.ActorSystem,
	eng *engine.Engine,
	s *store.Store,
	hub *feed.Hub,
	clock clockwork.Clock,
	cfg *config.Config,
	collector *utils.MetricsCollector,
) *Server {
	return &Server{
		System:         system,
		Context:        system.Root,
		Engine:         eng,
		Store:          s,
		Hub:            hub,
		Clock:          clock,
		Feed:           cfg.Feed,
		Metrics:        collector,
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: 5 * time.Second, // Default timeout for actor requests
	}
}

// request sends a message to an actor and waits for the reply.
func (s *Server) request(pid *actor.PID, msg interface{}) (interface{}, error) {
	future := s.Context.RequestFuture(pid, msg, s.RequestTimeout)
	result, err := future.Result()
	if err != nil {
		return nil, utils.NewActorTimeoutError(pid.String())
	}
	return result, nil
}

// respond writes the actor result as JSON, translating AppErrors into their
// HTTP status.
func (s *Server) respond(w http.ResponseWriter, operation string, result interface{}, err error) {
	if err == nil {
		if appErr, ok := result.(*utils.AppError); ok {
			err = appErr
		}
	}

	if err != nil {
		s.Metrics.IncrementErrors()
		code := utils.ErrTransport
		message := err.Error()
		if appErr, ok := err.(*utils.AppError); ok {
			code = appErr.Code
		}
		log.Printf("Operation %s failed: %s (%s)", operation, message, code)
		metrics.RequestsTotal.WithLabelValues(operation, "error").Inc()
		http.Error(w, message, utils.AppErrorToHTTPStatus(code))
		return
	}

	metrics.RequestsTotal.WithLabelValues(operation, "ok").Inc()
	w.Header().Set("Content-Type", "application/json")
	if encodeErr := json.NewEncoder(w).Encode(result); encodeErr != nil {
		log.Printf("Failed to encode %s response: %v", operation, encodeErr)
	}
}

// instrument records request counts and latency for one operation.
func (s *Server) instrument(operation string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		s.Metrics.IncrementRequests()
		next(w, r)
		elapsed := time.Since(startTime)
		s.Metrics.AddOperationLatency(operation, elapsed)
		metrics.RequestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	}
}

// Routes wires every handler onto a fresh mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.instrument("health", s.HandleHealth()))
	mux.HandleFunc("/post", s.instrument("post", s.HandlePost()))
	mux.HandleFunc("/post/vote", s.instrument("vote_post", s.HandlePostVote()))
	mux.HandleFunc("/comment", s.instrument("comment", s.HandleComment()))
	mux.HandleFunc("/comment/vote", s.instrument("vote_comment", s.HandleCommentVote()))
	mux.HandleFunc("/comment/top", s.instrument("top_comments", s.HandleTopComments()))
	mux.HandleFunc("/comment/branch", s.instrument("expand_branch", s.HandleExpandBranch()))
	mux.HandleFunc("/monitor", s.HandleMonitor())
	return mux
}
