// Package server is the host gateway: it runs the frame loop and
// serves world snapshots to renderer clients over websocket, taking
// key-state input back from them. It renders nothing itself.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/herdsync/herdsync/internal/config"
	"github.com/herdsync/herdsync/internal/core/observability/log"
	"github.com/herdsync/herdsync/internal/core/sim"
	"github.com/herdsync/herdsync/internal/core/world"
)

// Server drives the simulation at the configured tick rate and fans
// snapshots out to connected clients.
type Server struct {
	cfg config.Config
	sim *sim.Simulation
	log log.Log

	httpServer *http.Server

	inputMu sync.Mutex
	input   world.Input

	clients sync.Map // map[string]*client
}

func New(cfg config.Config, simulation *sim.Simulation, logger log.Log) *Server {
	if logger == nil {
		logger = log.Provide()
	}
	return &Server{
		cfg: cfg,
		sim: simulation,
		log: logger,
	}
}

// Run starts the first level, the HTTP listener and the tick loop, and
// blocks until ctx is cancelled or a component fails.
func (s *Server) Run(ctx context.Context) error {
	s.sim.StartLevel(ctx, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/level", s.handleLevel)

	s.httpServer = &http.Server{
		Addr:    s.cfg.ListenAddr,
		Handler: mux,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("gateway listening", log.String("addr", s.cfg.ListenAddr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		s.tickLoop(ctx)
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// tickLoop advances the world once per frame interval. Slow clients
// never stall it: broadcast drops frames instead of blocking.
func (s *Server) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := s.sim.AdvanceTick(s.currentInput())
			s.broadcast(snap)
		}
	}
}

func (s *Server) currentInput() world.Input {
	s.inputMu.Lock()
	defer s.inputMu.Unlock()
	return s.input
}

func (s *Server) setInput(in world.Input) {
	s.inputMu.Lock()
	s.input = in
	s.inputMu.Unlock()
}

func (s *Server) broadcast(snap world.Snapshot) {
	msg := outMessage{Type: "snapshot", Snapshot: &snap}
	data, err := json.Marshal(msg)
	if err != nil {
		s.log.Error("marshal snapshot", log.Error("err", err))
		return
	}
	s.clients.Range(func(_, v any) bool {
		v.(*client).trySend(data)
		return true
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleLevel(w http.ResponseWriter, _ *http.Request) {
	narration := s.sim.Narration()
	resp := struct {
		Level       int    `json:"level"`
		Complete    bool   `json:"complete"`
		Paused      bool   `json:"paused"`
		Title       string `json:"title"`
		Description string `json:"description"`
	}{
		Level:       s.sim.Level(),
		Complete:    s.sim.LevelComplete(),
		Paused:      s.sim.Paused(),
		Title:       narration.Title,
		Description: narration.Description,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error("encode level response", log.Error("err", err))
	}
}
