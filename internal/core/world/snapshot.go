package world

import (
	"github.com/herdsync/herdsync/internal/core/physics"
)

// Snapshot is the read-only view handed to renderers once per frame.
// It carries only logical state: positions, velocities, states, radii
// and class tags. Cosmetic fields belong to the renderer.
type Snapshot struct {
	Tick      uint64          `json:"tick"`
	Level     int             `json:"level"`
	Complete  bool            `json:"complete"`
	Arena     ArenaView       `json:"arena"`
	Herder    HerderView      `json:"herder"`
	Agents    []AgentView     `json:"agents"`
	Obstacles []ObstacleView  `json:"obstacles"`
	Pens      [2]PenView      `json:"pens"`
}

type ArenaView struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type HerderView struct {
	Pos    physics.Vec2 `json:"pos"`
	Vel    physics.Vec2 `json:"vel"`
	Radius float64      `json:"radius"`
	Facing physics.Vec2 `json:"facing"`
	Fast   bool         `json:"fast"`
}

type AgentView struct {
	ID     int          `json:"id"`
	Pos    physics.Vec2 `json:"pos"`
	Vel    physics.Vec2 `json:"vel"`
	Radius float64      `json:"radius"`
	Class  string       `json:"class"`
	State  string       `json:"state"`
	Panic  float64      `json:"panic"`
}

type ObstacleView struct {
	ID     int          `json:"id"`
	Pos    physics.Vec2 `json:"pos"`
	Radius float64      `json:"radius"`
	Kind   string       `json:"kind"`
}

type PenView struct {
	ID    int          `json:"id"`
	Class string       `json:"class"`
	Min   physics.Vec2 `json:"min"`
	Max   physics.Vec2 `json:"max"`
}

// Snapshot copies the world into a renderer view. The copy shares no
// mutable state with the world, so the host may hold it across ticks.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Tick:     w.Tick,
		Level:    w.Level,
		Complete: w.Complete,
		Arena:    ArenaView{Width: w.Arena.Width, Height: w.Arena.Height},
		Herder: HerderView{
			Pos:    w.Herder.Pos,
			Vel:    w.Herder.Vel,
			Radius: w.Herder.Radius,
			Facing: w.Herder.Facing,
			Fast:   w.Herder.Fast(),
		},
		Agents:    make([]AgentView, len(w.Agents)),
		Obstacles: make([]ObstacleView, len(w.Obstacles)),
	}
	for i, a := range w.Agents {
		s.Agents[i] = AgentView{
			ID:     a.ID,
			Pos:    a.Pos,
			Vel:    a.Vel,
			Radius: a.Radius,
			Class:  a.Class.String(),
			State:  a.State.String(),
			Panic:  a.Panic,
		}
	}
	for i, o := range w.Obstacles {
		s.Obstacles[i] = ObstacleView{ID: o.ID, Pos: o.Pos, Radius: o.Radius, Kind: o.Kind.String()}
	}
	for i, p := range w.Pens {
		s.Pens[i] = PenView{ID: p.ID, Class: p.Class.String(), Min: p.Rect.Min, Max: p.Rect.Max}
	}
	return s
}
