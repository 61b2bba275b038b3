package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/herdsync/herdsync/internal/core/flavor"
	"github.com/herdsync/herdsync/internal/core/observability/log"
	"github.com/herdsync/herdsync/internal/core/physics"
	"github.com/herdsync/herdsync/internal/core/steering"
	"github.com/herdsync/herdsync/internal/core/world"
)

func newSim() *Simulation {
	tun := steering.DefaultTuning()
	return New(Options{
		Arena:  world.Arena{Width: 800, Height: 600},
		Tuning: tun,
		Seed:   "fixture",
		Flavor: flavor.NewSource(nil, log.Nop()),
		Logger: log.Nop(),
	})
}

func TestStartLevelPopulates(t *testing.T) {
	s := newSim()
	s.StartLevel(context.Background(), 1)

	snap := s.Snapshot()
	require.Equal(t, 1, snap.Level)
	require.Len(t, snap.Agents, 6)
	require.LessOrEqual(t, len(snap.Obstacles), 2)
	require.Equal(t, 400.0, snap.Herder.Pos.X)
	require.Equal(t, 300.0, snap.Herder.Pos.Y)
	require.Equal(t, flavor.Fallback(1), s.Narration())
}

func TestAdvanceTickProgresses(t *testing.T) {
	s := newSim()
	s.StartLevel(context.Background(), 1)

	s1 := s.AdvanceTick(world.Input{})
	s2 := s.AdvanceTick(world.Input{Right: true})
	require.Equal(t, s1.Tick+1, s2.Tick)
	require.Greater(t, s2.Herder.Vel.X, 0.0)
}

func TestAdvanceTickBeforeStartIsNoop(t *testing.T) {
	s := newSim()
	snap := s.AdvanceTick(world.Input{Right: true})
	require.Zero(t, snap.Tick)
	require.Empty(t, snap.Agents)
}

func TestPauseStopsAdvance(t *testing.T) {
	s := newSim()
	s.StartLevel(context.Background(), 1)

	before := s.AdvanceTick(world.Input{}).Tick
	s.SetPaused(true)
	require.True(t, s.Paused())
	for i := 0; i < 5; i++ {
		s.AdvanceTick(world.Input{Right: true})
	}
	require.Equal(t, before, s.Snapshot().Tick)

	s.SetPaused(false)
	require.Equal(t, before+1, s.AdvanceTick(world.Input{}).Tick)
}

func TestCompletionLatchAndReset(t *testing.T) {
	s := newSim()
	s.StartLevel(context.Background(), 1)

	// Drop every agent well inside its matching pen; the next tick
	// classifies them Secure and latches completion.
	pens := s.w.Pens
	for i := range s.w.Agents {
		a := &s.w.Agents[i]
		for _, p := range pens {
			if p.Class == a.Class {
				a.Pos = p.Rect.Center()
			}
		}
		a.Vel = physics.Zero
	}

	s.AdvanceTick(world.Input{})
	require.True(t, s.LevelComplete())

	tick := s.Snapshot().Tick
	for i := 0; i < 3; i++ {
		s.AdvanceTick(world.Input{Right: true})
	}
	require.Equal(t, tick, s.Snapshot().Tick, "world advanced after completion")

	s.Reset(context.Background())
	require.False(t, s.LevelComplete())
	require.Zero(t, s.Snapshot().Tick)
	require.Equal(t, 1, s.Level())
}

func TestNextLevelGrowsFlock(t *testing.T) {
	s := newSim()
	s.StartLevel(context.Background(), 1)
	require.Len(t, s.Snapshot().Agents, 6)

	s.NextLevel(context.Background())
	require.Equal(t, 2, s.Level())
	require.Len(t, s.Snapshot().Agents, 8)
}

func TestHerderFacingPersistsAcrossLevels(t *testing.T) {
	s := newSim()
	s.StartLevel(context.Background(), 1)

	for i := 0; i < 30; i++ {
		s.AdvanceTick(world.Input{Right: true})
	}
	facing := s.Snapshot().Herder.Facing
	require.Greater(t, facing.X, 0.5)

	s.NextLevel(context.Background())
	snap := s.Snapshot()
	// Position and velocity reset, facing carries over.
	require.Equal(t, 400.0, snap.Herder.Pos.X)
	require.Zero(t, snap.Herder.Vel.X)
	require.Equal(t, facing, snap.Herder.Facing)
}

func TestSeedReproducible(t *testing.T) {
	s1, s2 := newSim(), newSim()
	s1.StartLevel(context.Background(), 1)
	s2.StartLevel(context.Background(), 1)
	require.Equal(t, s1.Snapshot(), s2.Snapshot())

	for i := 0; i < 10; i++ {
		s1.AdvanceTick(world.Input{Down: true})
		s2.AdvanceTick(world.Input{Down: true})
	}
	require.Equal(t, s1.Snapshot(), s2.Snapshot())
}
