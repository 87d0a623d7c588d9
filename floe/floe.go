// Package floe: rigid-body record and kinematic helpers.
package floe

import (
	"errors"

	"github.com/setanarut/vec"
)

// HalfFactor is the ½ coefficient of the kinetic-energy quadratic form.
const HalfFactor = 0.5

// ErrNonPositiveMass indicates a floe whose mass or moment of inertia is
// not strictly positive; such a floe cannot enter a collision graph because
// the mass matrix would not be positive-definite.
var ErrNonPositiveMass = errors.New("floe: mass and inertia must be > 0")

// Floe is the state of one rigid body in the granular medium.
// The collision core mutates only Velocity, Omega and Impulse.
type Floe struct {
	// Position is the centre of mass in world frame.
	Position vec.Vec2

	// Theta is the orientation in radians. Read-only for the core.
	Theta float64

	// Velocity is the linear velocity of the centre of mass.
	Velocity vec.Vec2

	// Omega is the angular velocity (rad/s, counter-clockwise positive).
	Omega float64

	// Mass is the total mass; must be > 0.
	Mass float64

	// Inertia is the moment of inertia about the centre of mass; must be > 0.
	Inertia float64

	// Impulse accumulates the magnitude of normal collision impulses
	// received across episodes.
	Impulse float64
}

// Validate reports whether the floe can participate in collision solving.
// Returns ErrNonPositiveMass when Mass <= 0 or Inertia <= 0.
// Complexity: O(1).
func (f *Floe) Validate() error {
	// 1. The mass matrix block diag(m, m, I) must be positive-definite.
	if f.Mass <= 0 || f.Inertia <= 0 {
		return ErrNonPositiveMass
	}

	return nil
}

// KineticEnergy returns ½(m·|v|² + I·ω²).
// Complexity: O(1).
func (f *Floe) KineticEnergy() float64 {
	return HalfFactor * (f.Mass*f.Velocity.Dot(f.Velocity) + f.Inertia*f.Omega*f.Omega)
}

// AddImpulse accumulates the magnitude of a received normal impulse.
func (f *Floe) AddImpulse(x float64) {
	f.Impulse += x
}

// VelocityAt returns the world velocity of the material point p on the floe,
// v + ω × r with r = p − centre. In two dimensions ω × r = ω·perp(r).
// Complexity: O(1).
func (f *Floe) VelocityAt(p vec.Vec2) vec.Vec2 {
	r := p.Sub(f.Position)

	return f.Velocity.Add(r.Perp().Scale(f.Omega))
}
