// Package contact: record types, sentinel errors and graph options.
package contact

import (
	"errors"

	"github.com/setanarut/vec"
)

// Sentinel errors for contact graph construction.
var (
	// ErrNilFloe indicates a nil floe handle passed to AddFloe.
	ErrNilFloe = errors.New("contact: floe is nil")

	// ErrNilContact indicates a nil contact passed to AddContact.
	ErrNilContact = errors.New("contact: contact is nil")

	// ErrVertexOutOfRange indicates a contact referencing a vertex index
	// that has not been inserted into the graph.
	ErrVertexOutOfRange = errors.New("contact: vertex index out of range")

	// ErrSelfContact indicates a contact whose two endpoints are the same floe.
	ErrSelfContact = errors.New("contact: contact joins a floe to itself")

	// ErrZeroNormal indicates a contact whose normal vector has zero length.
	ErrZeroNormal = errors.New("contact: zero-length contact normal")
)

// Contact is one geometric contact point between two floes.
// N1 and N2 are vertex indices in the owning Graph; Normal is the outward
// unit normal from floe N1 towards floe N2. The tangent direction is always
// the right-hand rotation of the normal and is derived, never stored.
type Contact struct {
	// ID identifies the contact across ghost/mirror aliases. Zero means
	// "assign on insertion"; aliases created by the geometry layer reuse
	// the ID of the original so they share one Ledger entry.
	ID int64

	// N1, N2 are the graph vertex indices of the two floes in contact.
	N1, N2 int

	// Point is the contact point in world frame.
	Point vec.Vec2

	// Normal is the outward unit normal from floe N1 to floe N2.
	Normal vec.Vec2

	// Dist is the signed separation distance; negative means penetrating.
	Dist float64

	// Mu is the friction coefficient of the pair.
	Mu float64

	// Restitution is the coefficient of restitution e in [0, 1].
	Restitution float64
}

// Tangent returns the tangent direction of the contact: the right-hand
// (counter-clockwise) rotation of the normal.
func (c *Contact) Tangent() vec.Vec2 {
	return c.Normal.Perp()
}

// Option configures optional behavior of a contact Graph.
// Use with NewGraph(opts...).
type Option func(*GraphOptions)

// GraphOptions holds configurable parameters of a Graph.
type GraphOptions struct {
	// Ledger, if non-nil, is the solved-status ledger shared with other
	// graphs (periodic ghost copies). Defaults to a fresh ledger.
	Ledger *Ledger

	// FloeCapacity pre-sizes the vertex slice. Defaults to 0.
	FloeCapacity int
}

// DefaultOptions returns the GraphOptions used when no Option is supplied:
// a fresh ledger and no capacity hint.
func DefaultOptions() GraphOptions {
	return GraphOptions{
		Ledger:       nil,
		FloeCapacity: 0,
	}
}

// WithLedger returns an Option that installs a shared solved-status ledger.
// Passing nil has no effect (a fresh ledger is created).
func WithLedger(l *Ledger) Option {
	return func(o *GraphOptions) {
		if l != nil {
			o.Ledger = l
		}
	}
}

// WithFloeCapacity returns an Option that pre-sizes the vertex slice for n floes.
func WithFloeCapacity(n int) Option {
	return func(o *GraphOptions) {
		if n > 0 {
			o.FloeCapacity = n
		}
	}
}
