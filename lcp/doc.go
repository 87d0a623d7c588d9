// Package lcp defines the Linear Complementarity Problem record
// (find z ≥ 0 with w = A·z + q ≥ 0 and zᵀw = 0) and the two complementary
// pivoting procedures the collision driver cascades through:
//
//   - Lemke: classic complementary pivoting with a covering vector.
//     Fails on ray termination (driving column has no positive ratio) or
//     when the pivot count exceeds PivotCapFactor·dim.
//   - LexicoLemke: the same pivot structure, but ties in the minimum-ratio
//     test are broken lexicographically against the inverse-basis columns,
//     eliminating cycling under degeneracy. Slower but more robust.
//
// Both are pure numerical oracles: they mutate only Z (and the derived
// slack W) of their argument and report success as a boolean. Numerical
// ill-conditioning is never an error here; physical acceptance of a
// returned z is the caller's concern.
//
// Iterate is the warm-started projected Gauss–Seidel refinement used as the
// cascade's third strategy: it polishes the best pivot solution found so
// far instead of restarting from scratch.
//
// Errors:
//
//	ErrNonSquare           - A is not square.
//	ErrDimensionMismatch   - len(q) differs from the dimension of A.
//	ErrNilLCP              - nil problem or nil A.
package lcp
