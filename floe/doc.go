// Package floe defines the rigid-body state of a single ice floe in the
// two-dimensional granular medium, together with the small set of kinematic
// helpers the collision core needs: kinetic energy, impulse accumulation
// and point velocities.
//
// A Floe is a plain mutable record. The collision core mutates only
// Velocity, Omega and Impulse; Position and Theta are read-only inputs used
// to build contact kinematics. Ownership of the record stays with the
// caller (the geometry and integration layers); the core never copies floes.
//
// Errors:
//
//	ErrNonPositiveMass    - mass or moment of inertia is not strictly positive.
package floe
