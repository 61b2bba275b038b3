package world

import (
	"github.com/herdsync/herdsync/internal/core/physics"
)

// FlockClass tags an agent and its matching pen. There are exactly two
// classes and exactly one pen per class.
type FlockClass uint8

const (
	FlockWhite FlockClass = iota
	FlockBlack
)

func (c FlockClass) String() string {
	if c == FlockBlack {
		return "black"
	}
	return "white"
}

// AgentState is the closed per-agent behavior state.
type AgentState uint8

const (
	StateGrazing AgentState = iota
	StateFleeing
	StateSecure
)

func (s AgentState) String() string {
	switch s {
	case StateFleeing:
		return "fleeing"
	case StateSecure:
		return "secure"
	default:
		return "grazing"
	}
}

// ObstacleKind selects one of two obstacle footprints.
type ObstacleKind uint8

const (
	KindRock ObstacleKind = iota
	KindTree
)

// Radius returns the fixed collision radius for the kind.
func (k ObstacleKind) Radius() float64 {
	if k == KindTree {
		return 32
	}
	return 20
}

func (k ObstacleKind) String() string {
	if k == KindTree {
		return "tree"
	}
	return "rock"
}

// Agent is a single steered flock member.
type Agent struct {
	ID     int
	Pos    physics.Vec2
	Vel    physics.Vec2
	Radius float64
	Class  FlockClass
	State  AgentState
	Panic  float64 // clamped to [0,1]
}

// Herder is the player-controlled unit. It persists across levels; only
// position and velocity are reset at a level boundary.
type Herder struct {
	Pos      physics.Vec2
	Vel      physics.Vec2
	Radius   float64
	MaxSpeed float64
	Facing   physics.Vec2 // unit vector
}

// Fast reports whether the herder moves fast enough to widen agent
// perception and accrue panic.
func (h Herder) Fast() bool { return h.Vel.Len() > 0.8*h.MaxSpeed }

// Obstacle is a static circular blocker. Immutable after placement.
type Obstacle struct {
	ID     int
	Pos    physics.Vec2
	Radius float64
	Kind   ObstacleKind
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min physics.Vec2
	Max physics.Vec2
}

// ContainsInset reports whether p lies strictly inside the rectangle
// shrunk on every side by margin.
func (r Rect) ContainsInset(p physics.Vec2, margin float64) bool {
	return p.X > r.Min.X+margin && p.X < r.Max.X-margin &&
		p.Y > r.Min.Y+margin && p.Y < r.Max.Y-margin
}

// Center returns the rectangle's midpoint.
func (r Rect) Center() physics.Vec2 {
	return physics.Vec2{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Pen is the target region agents of one class must occupy.
type Pen struct {
	ID    int
	Class FlockClass
	Rect  Rect
}

// Input is one polled snapshot of the host's directional keys. The
// engine never reads key state through any other channel.
type Input struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// Vector folds the four booleans into a direction; opposing keys
// cancel. The result is normalized when nonzero.
func (in Input) Vector() physics.Vec2 {
	var v physics.Vec2
	if in.Up {
		v.Y--
	}
	if in.Down {
		v.Y++
	}
	if in.Left {
		v.X--
	}
	if in.Right {
		v.X++
	}
	return v.Normalize()
}
