// Package contact: shared numeric constants of the graph operations.
package contact

// ActiveVelocityThreshold is the relative-normal-velocity bound below which
// a contact counts as approaching. An edge with at least one approaching
// contact keeps its sub-graph active.
const ActiveVelocityThreshold = 0.0

// QuadrantCount is the number of spatial cells QuadCut splits a sub-graph into.
const QuadrantCount = 4

// NormalTolerance is the length below which a contact normal counts as
// degenerate at insertion. Contacts arrive from the narrow-phase detector
// with unit normals; the check only rejects zero vectors.
const NormalTolerance = 1e-9
