package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gator-board/internal/config"
	"gator-board/internal/engine"
	"gator-board/internal/feed"
	"gator-board/internal/handlers"
	"gator-board/internal/logging"
	"gator-board/internal/store"
	"gator-board/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(cfg.LogLevel, cfg.LogFormat)

	collector := utils.NewMetricsCollector()
	entityStore := store.New()

	// Initialize actor system
	system := actor.NewActorSystem()
	boardEngine := engine.NewEngine(system, entityStore, collector)

	hub := feed.NewHub()

	server := handlers.NewServer(system, boardEngine, entityStore, hub, clockwork.NewRealClock(), cfg, collector)

	mux := server.Routes()
	if cfg.Server.MetricsEnabled {
		mux.Handle("/metrics", promhttp.Handler())
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		slog.Info("Starting server", "addr", addr, "tick_interval", cfg.Feed.TickInterval, "tick_step", cfg.Feed.TickStep)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP shutdown incomplete", "error", err)
	}

	hub.Shutdown()
	system.Shutdown()
}
