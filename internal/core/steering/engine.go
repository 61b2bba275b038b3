package steering

import (
	"math/rand"

	"github.com/herdsync/herdsync/internal/core/physics"
	"github.com/herdsync/herdsync/internal/core/world"
)

// Engine advances a world one tick at a time. A step is a pure function
// of the previous world, the input snapshot and the RNG stream: it
// never blocks, touches I/O, or fails. The RNG is shared with the level
// generator so a seeded run replays identically.
type Engine struct {
	tun Tuning
	rng *rand.Rand
}

func New(tun Tuning, rng *rand.Rand) *Engine {
	return &Engine{tun: tun, rng: rng}
}

func (e *Engine) Tuning() Tuning { return e.tun }

// Step advances w by one tick. Once the world is complete the step is a
// no-op until an external reset; the completion latch never clears on
// its own.
func (e *Engine) Step(w *world.World, in world.Input) {
	if w.Complete {
		return
	}

	e.stepHerder(w, in)
	fast := w.Herder.Fast()

	// All agents update against an immutable snapshot of the previous
	// tick's array. No agent observes another agent's already-updated
	// state within the same tick.
	prev := append([]world.Agent(nil), w.Agents...)
	for i := range w.Agents {
		e.stepAgent(&w.Agents[i], prev, w, fast)
	}

	w.Tick++
	if len(w.Agents) > 0 && Complete(w.Agents) {
		w.Complete = true
	}
}

func (e *Engine) stepHerder(w *world.World, in world.Input) {
	t := &e.tun
	h := &w.Herder

	desired := in.Vector().Scale(h.MaxSpeed)
	h.Vel = h.Vel.Scale(t.HerderDamping).Add(desired.Scale(1 - t.HerderDamping))
	h.Pos = h.Pos.Add(h.Vel)

	// Fast movement tracks the velocity; otherwise the herder watches
	// the loose flock, keeping its prior facing when none remains.
	target := h.Facing
	if h.Vel.Len() > t.FacingSpeedMin {
		target = h.Vel.Normalize()
	} else if c, ok := strayCentroid(w.Agents); ok {
		if dir := c.Sub(h.Pos).Normalize(); dir != physics.Zero {
			target = dir
		}
	}
	if f := physics.Lerp(h.Facing, target, t.FacingLerp).Normalize(); f != physics.Zero {
		h.Facing = f
	}

	// Positional ejection by exactly the penetration depth keeps the
	// herder outside every obstacle without altering its velocity.
	for _, o := range w.Obstacles {
		minDist := h.Radius + o.Radius
		d := physics.Dist(h.Pos, o.Pos)
		if d >= minDist {
			continue
		}
		dir := h.Pos.Sub(o.Pos).Normalize()
		if dir == physics.Zero {
			dir = physics.Vec2{X: 1}
		}
		h.Pos = h.Pos.Add(dir.Scale(minDist - d))
	}

	h.Pos.X = physics.Clamp(h.Pos.X, h.Radius, w.Arena.Width-h.Radius)
	h.Pos.Y = physics.Clamp(h.Pos.Y, h.Radius, w.Arena.Height-h.Radius)
}

// strayCentroid returns the unweighted centroid of all non-Secure
// agents.
func strayCentroid(agents []world.Agent) (physics.Vec2, bool) {
	var sum physics.Vec2
	n := 0
	for _, a := range agents {
		if a.State == world.StateSecure {
			continue
		}
		sum = sum.Add(a.Pos)
		n++
	}
	if n == 0 {
		return physics.Zero, false
	}
	return sum.Scale(1 / float64(n)), true
}

func (e *Engine) stepAgent(a *world.Agent, prev []world.Agent, w *world.World, fast bool) {
	t := &e.tun
	pen := w.PenFor(a.Class)

	// Hysteresis: a Secure agent only loses the state when it leaves
	// the wider footprint; a loose agent only gains it well inside.
	margin := t.PenMarginEnter
	if a.State == world.StateSecure {
		margin = t.PenMarginHold
	}
	if pen.Rect.ContainsInset(a.Pos, margin) {
		a.State = world.StateSecure
		e.stepSecure(a, prev, w)
		return
	}
	if a.State == world.StateSecure {
		a.State = world.StateGrazing
	}

	var sep, velSum, posSum physics.Vec2
	neighbors := 0
	for i := range prev {
		o := &prev[i]
		if o.ID == a.ID || o.State == world.StateSecure {
			continue
		}
		d := physics.Dist(a.Pos, o.Pos)
		if d > 0 && d < t.SeparationRadius {
			sep = sep.Add(a.Pos.Sub(o.Pos).Normalize().Scale(1 / d))
		}
		if d < t.NeighborRadius {
			velSum = velSum.Add(o.Vel)
			posSum = posSum.Add(o.Pos)
			neighbors++
		}
	}
	if sep != physics.Zero {
		sep = sep.Normalize().Scale(t.SeparationMag)
	}
	var align, cohesion physics.Vec2
	if neighbors > 0 {
		inv := 1 / float64(neighbors)
		align = velSum.Scale(inv).Normalize().Scale(t.AlignWeight)
		cohesion = posSum.Scale(inv).Sub(a.Pos).Normalize().Scale(t.CohesionWeight)
	}

	perception := t.Perception
	if fast {
		perception *= t.FastPerception
	}
	perceived := physics.Dist(a.Pos, w.Herder.Pos) < perception

	var fear physics.Vec2
	if perceived {
		flee := a.Pos.Sub(w.Herder.Pos).Normalize()
		if a.Panic >= t.PanicThreshold {
			// High panic scatters the flight direction sideways.
			lateral := flee.Perp().Scale((e.rng.Float64()*2 - 1) * t.PanicNoise)
			flee = flee.Add(lateral).Normalize()
		}
		mag := t.FearMag
		if fast {
			mag *= t.FastFearGain
		}
		fear = flee.Scale(mag)
	}
	if perceived && fast {
		a.Panic = physics.Clamp(a.Panic+t.PanicRise, 0, 1)
	} else {
		a.Panic = physics.Clamp(a.Panic-t.PanicDecay, 0, 1)
	}
	if perceived {
		a.State = world.StateFleeing
	} else {
		a.State = world.StateGrazing
	}

	var avoid physics.Vec2
	for _, o := range w.Obstacles {
		if physics.Dist(a.Pos, o.Pos) < o.Radius+a.Radius+t.ObstacleMargin {
			avoid = avoid.Add(a.Pos.Sub(o.Pos).Normalize().Scale(t.ObstacleWeight))
		}
	}

	var wall physics.Vec2
	if a.Pos.X < t.WallMargin {
		wall.X++
	}
	if a.Pos.X > w.Arena.Width-t.WallMargin {
		wall.X--
	}
	if a.Pos.Y < t.WallMargin {
		wall.Y++
	}
	if a.Pos.Y > w.Arena.Height-t.WallMargin {
		wall.Y--
	}
	wall = wall.Normalize().Scale(t.WallWeight)

	var wander physics.Vec2
	if a.State == world.StateGrazing {
		wander = physics.Vec2{
			X: (e.rng.Float64()*2 - 1) * t.WanderJitter,
			Y: (e.rng.Float64()*2 - 1) * t.WanderJitter,
		}
	}

	total := sep.Scale(t.SeparationWeight).
		Add(align).
		Add(cohesion).
		Add(fear).
		Add(avoid).
		Add(wall).
		Add(wander)

	// The force acts as acceleration, not instantaneous velocity.
	a.Vel = a.Vel.Add(total.Scale(t.Accel))

	speedCap := t.GrazeMaxSpeed
	if a.State == world.StateFleeing {
		speedCap = t.FleeMaxSpeed * (1 + a.Panic*t.PanicSpeedGain)
	}
	a.Vel = a.Vel.Limit(speedCap)
	a.Pos = a.Pos.Add(a.Vel)
	e.clampAgent(a, w.Arena)
}

// stepSecure short-circuits the force model for contained agents: drift
// damping plus separation against the other Secure occupants so the pen
// fills evenly.
func (e *Engine) stepSecure(a *world.Agent, prev []world.Agent, w *world.World) {
	t := &e.tun
	a.Vel = a.Vel.Scale(t.SecureDamping)
	for i := range prev {
		o := &prev[i]
		if o.ID == a.ID || o.State != world.StateSecure {
			continue
		}
		d := physics.Dist(a.Pos, o.Pos)
		if d > 0 && d < t.SeparationRadius {
			a.Vel = a.Vel.Add(a.Pos.Sub(o.Pos).Normalize().Scale(t.SecureSeparation))
		}
	}
	a.Pos = a.Pos.Add(a.Vel)
	e.clampAgent(a, w.Arena)
}

func (e *Engine) clampAgent(a *world.Agent, arena world.Arena) {
	a.Pos.X = physics.Clamp(a.Pos.X, a.Radius, arena.Width-a.Radius)
	a.Pos.Y = physics.Clamp(a.Pos.Y, a.Radius, arena.Height-a.Radius)
}
