package levelgen

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cespare/xxhash/v2"

	"github.com/herdsync/herdsync/internal/core/observability/log"
	"github.com/herdsync/herdsync/internal/core/physics"
	"github.com/herdsync/herdsync/internal/core/world"
)

const (
	// centerClearance keeps obstacles away from the herder spawn at the
	// arena center.
	centerClearance = 150.0
	// obstacleAttempts bounds rejection sampling per obstacle. A
	// candidate that cannot be placed is dropped, never retried
	// forever: fewer obstacles is a valid level.
	obstacleAttempts = 20
	// placementGap is the extra clearance between a spawned agent and
	// any obstacle.
	placementGap = 5.0

	initialSpeed = 0.5
)

// Seed derives a per-level RNG seed from the configured seed string.
// The same seed string replays the same sequence of levels.
func Seed(seed string, level int) int64 {
	return int64(xxhash.Sum64String(fmt.Sprintf("%s#%d", seed, level)))
}

// Generator places agents and obstacles for one level. The RNG may be
// shared with the steering engine; reproducibility only needs callers
// to seed it deterministically.
type Generator struct {
	rng *rand.Rand
	log log.Log
}

func New(rng *rand.Rand, logger log.Log) *Generator {
	if logger == nil {
		logger = log.Provide()
	}
	return &Generator{rng: rng, log: logger}
}

// ObstacleCount returns the number of obstacles requested for a level.
// Placement failures may deliver fewer.
func ObstacleCount(level int, arena world.Arena) int {
	return int(math.Floor(float64(level)*1.5)) + int(math.Floor(arena.Width/800))
}

// AgentCount returns the flock size for a level.
func AgentCount(level int) int {
	return 4 + level*2
}

// Generate builds the obstacle and agent sets for a level. Obstacles
// are placed first; agent placement then avoids them.
func (g *Generator) Generate(level int, arena world.Arena, agentRadius float64) ([]world.Agent, []world.Obstacle) {
	obstacles := g.placeObstacles(level, arena)
	agents := g.placeAgents(level, arena, agentRadius, obstacles)
	return agents, obstacles
}

func (g *Generator) placeObstacles(level int, arena world.Arena) []world.Obstacle {
	pens := arena.Pens()
	center := arena.Center()
	want := ObstacleCount(level, arena)
	obstacles := make([]world.Obstacle, 0, want)

	for i := 0; i < want; i++ {
		kind := world.KindRock
		if g.rng.Intn(2) == 1 {
			kind = world.KindTree
		}
		r := kind.Radius()

		placed := false
		for attempt := 0; attempt < obstacleAttempts; attempt++ {
			pos := g.randomPoint(arena, r)
			if physics.Dist(pos, center) < centerClearance {
				continue
			}
			if inAnyPen(pens, pos) {
				continue
			}
			obstacles = append(obstacles, world.Obstacle{
				ID:     i,
				Pos:    pos,
				Radius: r,
				Kind:   kind,
			})
			placed = true
			break
		}
		if !placed {
			// Degraded but non-fatal: the level just has one fewer
			// obstacle.
			g.log.Debug("obstacle placement exhausted, omitting",
				log.Int("level", level), log.Int("obstacle", i))
		}
	}
	return obstacles
}

func (g *Generator) placeAgents(level int, arena world.Arena, radius float64, obstacles []world.Obstacle) []world.Agent {
	pens := arena.Pens()
	count := AgentCount(level)
	agents := make([]world.Agent, 0, count)

	for i := 0; i < count; i++ {
		class := world.FlockWhite
		if g.rng.Intn(2) == 1 {
			class = world.FlockBlack
		}

		// No attempt cap here: placement relies on obstacles staying
		// sparse for termination. A pathologically dense obstacle
		// layout would spin this loop.
		var pos physics.Vec2
		for {
			pos = g.randomPoint(arena, radius)
			if inAnyPen(pens, pos) {
				continue
			}
			if collidesObstacle(obstacles, pos, radius) {
				continue
			}
			break
		}

		agents = append(agents, world.Agent{
			ID:     i,
			Pos:    pos,
			Vel:    g.randomVelocity(),
			Radius: radius,
			Class:  class,
			State:  world.StateGrazing,
			Panic:  0,
		})
	}
	return agents
}

func (g *Generator) randomPoint(arena world.Arena, radius float64) physics.Vec2 {
	return physics.Vec2{
		X: radius + g.rng.Float64()*(arena.Width-2*radius),
		Y: radius + g.rng.Float64()*(arena.Height-2*radius),
	}
}

func (g *Generator) randomVelocity() physics.Vec2 {
	return physics.Vec2{
		X: (g.rng.Float64()*2 - 1) * initialSpeed,
		Y: (g.rng.Float64()*2 - 1) * initialSpeed,
	}
}

func inAnyPen(pens [2]world.Pen, pos physics.Vec2) bool {
	for _, p := range pens {
		if p.Rect.ContainsInset(pos, 0) {
			return true
		}
	}
	return false
}

func collidesObstacle(obstacles []world.Obstacle, pos physics.Vec2, radius float64) bool {
	for _, o := range obstacles {
		if physics.Dist(pos, o.Pos) < o.Radius+radius+placementGap {
			return true
		}
	}
	return false
}
