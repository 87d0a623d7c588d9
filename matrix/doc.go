// Package matrix provides the dense linear-algebra primitives the collision
// core is assembled from: a row-major float64 matrix with strict fail-fast
// validation, plus the kernel set the LCP pipeline needs (Add, Sub, Mul,
// MulVec, TransposeMulVec, Transpose, Scale, Dot).
//
// Design rules:
//
//   - All kernels validate shapes first and return sentinel errors matched
//     via errors.Is; no kernel panics on user input.
//   - Kernels allocate fresh results and never mutate operands.
//   - Public At/Set always bounds-check; the unchecked accessors are
//     private to this package, so other packages (the LCP solvers
//     included) go through At/Set.
//   - Loop orders are fixed (row-major, i then j) so results are
//     bit-deterministic for identical inputs.
//
// Errors:
//
//	ErrBadShape            - requested dimensions are not strictly positive.
//	ErrOutOfRange          - row or column index outside valid bounds.
//	ErrDimensionMismatch   - incompatible operand dimensions.
//	ErrNilMatrix           - nil receiver or operand.
package matrix
