package world

import (
	"github.com/herdsync/herdsync/internal/core/physics"
)

// Pen footprint. Pens sit against the side walls, vertically centered,
// so the open arena stays between them.
const (
	penWidth  = 160.0
	penHeight = 240.0
	penInset  = 20.0
)

// Arena is the playable bounds. Coordinates run from (0,0) at the top
// left to (Width,Height) at the bottom right.
type Arena struct {
	Width  float64
	Height float64
}

// Center returns the arena midpoint.
func (a Arena) Center() physics.Vec2 {
	return physics.Vec2{X: a.Width / 2, Y: a.Height / 2}
}

// Pens derives the two target regions from the arena size: the white
// pen on the left wall, the black pen on the right.
func (a Arena) Pens() [2]Pen {
	h := penHeight
	if h > a.Height-2*penInset {
		h = a.Height - 2*penInset
	}
	top := (a.Height - h) / 2
	return [2]Pen{
		{ID: 0, Class: FlockWhite, Rect: Rect{
			Min: physics.Vec2{X: penInset, Y: top},
			Max: physics.Vec2{X: penInset + penWidth, Y: top + h},
		}},
		{ID: 1, Class: FlockBlack, Rect: Rect{
			Min: physics.Vec2{X: a.Width - penInset - penWidth, Y: top},
			Max: physics.Vec2{X: a.Width - penInset, Y: top + h},
		}},
	}
}

// World is the full simulation state for one level. It is plain data;
// the steering engine owns all transitions.
type World struct {
	Arena     Arena
	Herder    Herder
	Agents    []Agent
	Obstacles []Obstacle
	Pens      [2]Pen
	Level     int
	Tick      uint64
	Complete  bool
}

// New builds an empty world for the given arena with the herder at the
// arena center. Agents and obstacles are installed by the level
// generator.
func New(arena Arena, herder Herder) *World {
	herder.Pos = arena.Center()
	herder.Vel = physics.Zero
	if herder.Facing == physics.Zero {
		herder.Facing = physics.Vec2{X: 0, Y: -1}
	}
	return &World{
		Arena:  arena,
		Herder: herder,
		Pens:   arena.Pens(),
	}
}

// PenFor returns the pen matching an agent class.
func (w *World) PenFor(class FlockClass) Pen {
	for _, p := range w.Pens {
		if p.Class == class {
			return p
		}
	}
	return w.Pens[0]
}
