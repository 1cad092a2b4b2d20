package physics

import (
	"slices"

	"github.com/tomz197/towerstack/internal/object"
)

// contactSlop is how far a falling box may sink into a surface in one step
// and still be treated as landing on top of it.
const contactSlop = 0.05

// groundFriction is the fraction of horizontal velocity kept per resting step.
const groundFriction = 0.8

// Body is a box-shaped rigid body without rotation.
type Body struct {
	mass float64
	pos  object.Vec3
	vel  object.Vec3
	half object.Vec3
}

// Compile-time check that Body implements object.Body.
var _ object.Body = (*Body)(nil)

// Position returns the body center.
func (b *Body) Position() object.Vec3 { return b.pos }

// SetPosition teleports the body.
func (b *Body) SetPosition(p object.Vec3) { b.pos = p }

// ReplaceShape swaps the collision box.
func (b *Body) ReplaceShape(halfExtents object.Vec3) { b.half = halfExtents }

// Velocity returns the current velocity.
func (b *Body) Velocity() object.Vec3 { return b.vel }

// Static reports whether gravity ignores the body.
func (b *Body) Static() bool { return b.mass == 0 }

// Bounds returns the body's current box.
func (b *Body) Bounds() AABB { return BoxAt(b.pos, b.half) }

// World integrates gravity for dynamic bodies and lands them on static ones.
type World struct {
	gravity float64
	bodies  []*Body
}

// Compile-time check that World implements object.World.
var _ object.World = (*World)(nil)

// NewWorld creates a world with the given vertical acceleration (negative is down).
func NewWorld(gravity float64) *World {
	return &World{gravity: gravity}
}

// CreateBody creates a body that is not yet part of the world.
func (w *World) CreateBody(mass float64, halfExtents object.Vec3) object.Body {
	return &Body{mass: mass, half: halfExtents}
}

// AddBody adds a body created by this package. Foreign bodies are ignored.
func (w *World) AddBody(b object.Body) {
	if pb, ok := b.(*Body); ok {
		w.bodies = append(w.bodies, pb)
	}
}

// RemoveBody removes a body from the world.
func (w *World) RemoveBody(b object.Body) {
	pb, ok := b.(*Body)
	if !ok {
		return
	}
	w.bodies = slices.DeleteFunc(w.bodies, func(o *Body) bool { return o == pb })
}

// Len returns the number of bodies in the world.
func (w *World) Len() int { return len(w.bodies) }

// Step advances the simulation by dt seconds (semi-implicit Euler).
func (w *World) Step(dt float64) {
	for _, b := range w.bodies {
		if b.Static() {
			continue
		}
		prevBottom := b.pos.Y - b.half.Y

		b.vel.Y += w.gravity * dt
		b.pos = b.pos.Add(b.vel.Scale(dt))

		w.resolveLanding(b, prevBottom)
	}
}

// resolveLanding puts b on top of the highest static body it fell into.
func (w *World) resolveLanding(b *Body, prevBottom float64) {
	box := b.Bounds()
	landed := false
	var top float64
	for _, s := range w.bodies {
		if !s.Static() {
			continue
		}
		sb := s.Bounds()
		if !box.Overlaps(sb) || prevBottom < sb.Max.Y-contactSlop {
			continue
		}
		if !landed || sb.Max.Y > top {
			top = sb.Max.Y
			landed = true
		}
	}
	if !landed {
		return
	}
	b.pos.Y = top + b.half.Y
	b.vel.Y = 0
	b.vel.X *= groundFriction
	b.vel.Z *= groundFriction
}
