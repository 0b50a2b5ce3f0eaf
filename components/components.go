// Package components defines ECS components for the simulation.
package components

import (
	"github.com/pthm-cable/flowtrails/trail"
	"github.com/pthm-cable/flowtrails/vector"
)

// Particle holds an entity's identity and lifecycle.
// Lifetime counts down in milliseconds; once negative the trail decays one
// point per tick and the entity is removed when the trail is empty.
type Particle struct {
	ID       uint64
	Group    string
	Lifetime float64
	Removed  bool
}

// Decaying reports whether the entity has started fading out.
func (p *Particle) Decaying() bool {
	return p.Lifetime < 0
}

// Motion holds position and velocity in pixels and pixels per millisecond.
type Motion struct {
	Position vector.Vec2
	Velocity vector.Vec2
}

// Trail wraps the entity's position history.
type Trail struct {
	*trail.Trail
}
