// Package sim wires the level generator, steering engine and narration
// source behind one facade the host drives once per frame.
package sim

import (
	"context"
	"math/rand"
	"sync"

	"github.com/herdsync/herdsync/internal/core/flavor"
	"github.com/herdsync/herdsync/internal/core/levelgen"
	"github.com/herdsync/herdsync/internal/core/observability/log"
	"github.com/herdsync/herdsync/internal/core/physics"
	"github.com/herdsync/herdsync/internal/core/steering"
	"github.com/herdsync/herdsync/internal/core/world"
)

// Options configure a Simulation. Zero-value fields fall back to
// defaults.
type Options struct {
	Arena  world.Arena
	Tuning steering.Tuning
	Seed   string
	Flavor *flavor.Source
	Logger log.Log
}

// Simulation owns one world and advances it tick by tick. All methods
// are safe for concurrent use; AdvanceTick itself never blocks on I/O —
// narration is fetched only at level transitions.
type Simulation struct {
	mu sync.RWMutex

	arena  world.Arena
	tun    steering.Tuning
	seed   string
	rng    *rand.Rand
	engine *steering.Engine
	gen    *levelgen.Generator
	flavor *flavor.Source
	log    log.Log

	w         *world.World
	herder    world.Herder
	level     int
	paused    bool
	narration flavor.Text
}

func New(opts Options) *Simulation {
	if opts.Arena.Width == 0 || opts.Arena.Height == 0 {
		opts.Arena = world.Arena{Width: 800, Height: 600}
	}
	if opts.Tuning == (steering.Tuning{}) {
		opts.Tuning = steering.DefaultTuning()
	}
	if opts.Logger == nil {
		opts.Logger = log.Provide()
	}
	if opts.Flavor == nil {
		opts.Flavor = flavor.NewSource(nil, opts.Logger)
	}

	rng := rand.New(rand.NewSource(levelgen.Seed(opts.Seed, 0)))
	s := &Simulation{
		arena:  opts.Arena,
		tun:    opts.Tuning,
		seed:   opts.Seed,
		rng:    rng,
		engine: steering.New(opts.Tuning, rng),
		gen:    levelgen.New(rng, opts.Logger),
		flavor: opts.Flavor,
		log:    opts.Logger,
		herder: world.Herder{
			Radius:   opts.Tuning.HerderRadius,
			MaxSpeed: opts.Tuning.HerderMaxSpeed,
			Facing:   physics.Vec2{X: 0, Y: -1},
		},
	}
	return s
}

// StartLevel discards the current world and builds level n wholesale:
// fresh agents and obstacles, herder back at center with velocity
// zeroed but facing kept. Narration is fetched here, outside the tick
// path.
func (s *Simulation) StartLevel(ctx context.Context, level int) {
	if level < 1 {
		level = 1
	}
	narration := s.flavor.Get(ctx, level)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rng.Seed(levelgen.Seed(s.seed, level))
	s.level = level
	s.narration = narration

	w := world.New(s.arena, s.herder)
	w.Level = level
	w.Agents, w.Obstacles = s.gen.Generate(level, s.arena, s.tun.AgentRadius)
	s.w = w

	s.log.Info("level started",
		log.Int("level", level),
		log.Int("agents", len(w.Agents)),
		log.Int("obstacles", len(w.Obstacles)),
		log.String("title", narration.Title))
}

// AdvanceTick advances the world one step and returns the new snapshot.
// When paused, before StartLevel, or after level completion the world
// does not advance and the current snapshot is returned unchanged.
func (s *Simulation) AdvanceTick(in world.Input) world.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w == nil {
		return world.Snapshot{}
	}
	if !s.paused {
		s.engine.Step(s.w, in)
		s.herder = s.w.Herder
	}
	return s.w.Snapshot()
}

// LevelComplete reports the completion latch.
func (s *Simulation) LevelComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.w != nil && s.w.Complete
}

// Snapshot returns the current renderer view.
func (s *Simulation) Snapshot() world.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.w == nil {
		return world.Snapshot{}
	}
	return s.w.Snapshot()
}

// Level returns the current level index, zero before StartLevel.
func (s *Simulation) Level() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.level
}

// Narration returns the current level's narration text.
func (s *Simulation) Narration() flavor.Text {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.narration
}

// SetPaused toggles the host's play/pause input.
func (s *Simulation) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = paused
}

func (s *Simulation) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}

// Reset replays the current level from scratch.
func (s *Simulation) Reset(ctx context.Context) {
	level := s.Level()
	if level < 1 {
		level = 1
	}
	s.StartLevel(ctx, level)
}

// NextLevel advances to the following level.
func (s *Simulation) NextLevel(ctx context.Context) {
	s.StartLevel(ctx, s.Level()+1)
}
