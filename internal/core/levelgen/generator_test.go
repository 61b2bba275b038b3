package levelgen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/herdsync/herdsync/internal/core/observability/log"
	"github.com/herdsync/herdsync/internal/core/physics"
	"github.com/herdsync/herdsync/internal/core/world"
)

const testAgentRadius = 10.0

func newGen(seed int64) *Generator {
	return New(rand.New(rand.NewSource(seed)), log.Nop())
}

func TestCountsLevel1(t *testing.T) {
	arena := world.Arena{Width: 800, Height: 600}
	require.Equal(t, 2, ObstacleCount(1, arena)) // floor(1.5) + floor(800/800)
	require.Equal(t, 6, AgentCount(1))           // 4 + 1*2

	agents, obstacles := newGen(42).Generate(1, arena, testAgentRadius)
	require.Len(t, agents, 6)
	require.LessOrEqual(t, len(obstacles), 2)
}

func TestCountsScaleWithLevelAndArena(t *testing.T) {
	require.Equal(t, 7, ObstacleCount(4, world.Arena{Width: 800, Height: 600}))
	require.Equal(t, 8, ObstacleCount(4, world.Arena{Width: 1600, Height: 900}))
	require.Equal(t, 14, AgentCount(5))
}

func TestPlacementInvariants(t *testing.T) {
	arena := world.Arena{Width: 1600, Height: 900}
	agents, obstacles := newGen(7).Generate(5, arena, testAgentRadius)
	pens := arena.Pens()
	center := arena.Center()

	for _, o := range obstacles {
		require.GreaterOrEqual(t, physics.Dist(o.Pos, center), 150.0,
			"obstacle %d too close to center", o.ID)
		for _, p := range pens {
			require.False(t, p.Rect.ContainsInset(o.Pos, 0),
				"obstacle %d inside pen %d", o.ID, p.ID)
		}
		require.Positive(t, o.Radius)
	}

	for _, a := range agents {
		for _, p := range pens {
			require.False(t, p.Rect.ContainsInset(a.Pos, 0),
				"agent %d spawned inside pen %d", a.ID, p.ID)
		}
		for _, o := range obstacles {
			require.GreaterOrEqual(t, physics.Dist(a.Pos, o.Pos), o.Radius+a.Radius+placementGap,
				"agent %d overlaps obstacle %d", a.ID, o.ID)
		}
		require.Equal(t, world.StateGrazing, a.State)
		require.Zero(t, a.Panic)
		require.LessOrEqual(t, a.Vel.Len(), initialSpeed*1.5)
	}
}

func TestBothClassesAppear(t *testing.T) {
	// 24 agents at level 10: vanishing odds of a single class.
	agents, _ := newGen(3).Generate(10, world.Arena{Width: 800, Height: 600}, testAgentRadius)
	classes := map[world.FlockClass]int{}
	for _, a := range agents {
		classes[a.Class]++
	}
	require.Len(t, classes, 2)
}

func TestSeedReproducible(t *testing.T) {
	arena := world.Arena{Width: 800, Height: 600}
	seed := Seed("fixture", 3)

	a1, o1 := New(rand.New(rand.NewSource(seed)), log.Nop()).Generate(3, arena, testAgentRadius)
	a2, o2 := New(rand.New(rand.NewSource(seed)), log.Nop()).Generate(3, arena, testAgentRadius)

	require.Equal(t, a1, a2)
	require.Equal(t, o1, o2)
}

func TestSeedVariesByLevel(t *testing.T) {
	require.NotEqual(t, Seed("fixture", 1), Seed("fixture", 2))
	require.NotEqual(t, Seed("a", 1), Seed("b", 1))
}
