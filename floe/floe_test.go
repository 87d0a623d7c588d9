package floe_test

import (
	"testing"

	"github.com/setanarut/vec"
	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/icefloe/floe"
)

func TestValidate_PositiveBody(t *testing.T) {
	f := &floe.Floe{Mass: 2, Inertia: 0.5}
	assert.NoError(t, f.Validate())
}

func TestValidate_NonPositiveMass(t *testing.T) {
	f := &floe.Floe{Mass: 0, Inertia: 1}
	assert.ErrorIs(t, f.Validate(), floe.ErrNonPositiveMass)
}

func TestValidate_NonPositiveInertia(t *testing.T) {
	f := &floe.Floe{Mass: 1, Inertia: -1}
	assert.ErrorIs(t, f.Validate(), floe.ErrNonPositiveMass)
}

func TestKineticEnergy_TranslationAndSpin(t *testing.T) {
	f := &floe.Floe{
		Mass:     2,
		Inertia:  4,
		Velocity: vec.Vec2{X: 3, Y: 4},
		Omega:    0.5,
	}
	// ½(2·25 + 4·0.25) = 25.5
	assert.InDelta(t, 25.5, f.KineticEnergy(), 1e-12)
}

func TestKineticEnergy_AtRest(t *testing.T) {
	f := &floe.Floe{Mass: 1, Inertia: 1}
	assert.Zero(t, f.KineticEnergy())
}

func TestAddImpulse_Accumulates(t *testing.T) {
	f := &floe.Floe{Mass: 1, Inertia: 1}
	f.AddImpulse(1.5)
	f.AddImpulse(0.5)
	assert.InDelta(t, 2.0, f.Impulse, 1e-12)
}

func TestVelocityAt_PureTranslation(t *testing.T) {
	f := &floe.Floe{Mass: 1, Inertia: 1, Velocity: vec.Vec2{X: 1, Y: -2}}
	v := f.VelocityAt(vec.Vec2{X: 5, Y: 5})
	assert.InDelta(t, 1, v.X, 1e-12)
	assert.InDelta(t, -2, v.Y, 1e-12)
}

func TestVelocityAt_PureSpin(t *testing.T) {
	// ω = 1 about the origin; the point (1, 0) moves in +y.
	f := &floe.Floe{Mass: 1, Inertia: 1, Omega: 1}
	v := f.VelocityAt(vec.Vec2{X: 1, Y: 0})
	assert.InDelta(t, 0, v.X, 1e-12)
	assert.InDelta(t, 1, v.Y, 1e-12)
}

func TestVelocityAt_OffsetCentre(t *testing.T) {
	// Centre at (2, 0), ω = 2; the point (2, 1) has r = (0, 1), perp(r) = (−1, 0).
	f := &floe.Floe{Mass: 1, Inertia: 1, Position: vec.Vec2{X: 2}, Omega: 2}
	v := f.VelocityAt(vec.Vec2{X: 2, Y: 1})
	assert.InDelta(t, -2, v.X, 1e-12)
	assert.InDelta(t, 0, v.Y, 1e-12)
}
