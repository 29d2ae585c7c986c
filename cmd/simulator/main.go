package main

import (
	"context"
	"log"
	"time"

	"gator-board/simulator"
)

func main() {
	config := simulator.SimConfig{
		EngineURL:   "http://localhost:8080",
		MonitorTime: 30 * time.Second,
		TopLimit:    2,
		BranchLimit: 2,
	}

	log.Printf("Starting demo run against %s", config.EngineURL)

	sim := simulator.New(config)
	ctx, cancel := context.WithTimeout(context.Background(), config.MonitorTime+30*time.Second)
	defer cancel()

	if err := sim.Run(ctx); err != nil {
		log.Fatalf("Demo run failed: %v", err)
	}

	log.Printf("Demo run complete")
}
