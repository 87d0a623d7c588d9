// Package matrix: sentinel error set.
// All kernels MUST return these sentinels and tests MUST check them via
// errors.Is. Panics are reserved for programmer errors in private helpers.
package matrix

import "errors"

var (
	// ErrBadShape is returned when requested dimensions are invalid
	// (rows <= 0 or cols <= 0). Creation validates before allocation.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid
	// bounds. Public indexers (At/Set) return this, never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between
	// operands, e.g. Add with different shapes or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil Dense (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")
)
