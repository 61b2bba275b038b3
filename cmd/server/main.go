package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/herdsync/herdsync/internal/config"
	"github.com/herdsync/herdsync/internal/core/flavor"
	"github.com/herdsync/herdsync/internal/core/observability/log"
	"github.com/herdsync/herdsync/internal/core/sim"
	"github.com/herdsync/herdsync/internal/core/world"
	"github.com/herdsync/herdsync/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error loading config:", err)
		os.Exit(1)
	}

	logger := log.New(log.ParseLevel(cfg.LogLevel))

	var provider flavor.Provider
	if cfg.NarrationURL != "" {
		provider = flavor.NewHTTPProvider(cfg.NarrationURL, cfg.NarrationTimeout)
	}

	simulation := sim.New(sim.Options{
		Arena:  world.Arena{Width: cfg.ArenaWidth, Height: cfg.ArenaHeight},
		Tuning: cfg.Tuning,
		Seed:   cfg.Seed,
		Flavor: flavor.NewSource(provider, logger),
		Logger: logger,
	})

	srv := server.New(cfg, simulation, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-stopCh
		cancel()
	}()

	if err := srv.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error running server:", err)
		os.Exit(1)
	}
}
