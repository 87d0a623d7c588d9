// Package lcp: warm-started iterative refinement.
package lcp

import "math"

// IterateMaxSweeps bounds one Iterate call.
const IterateMaxSweeps = 1000

// IterateTolerance is the residual at which Iterate declares convergence.
const IterateTolerance = 1e-11

// Iterate refines a candidate solution by projected Gauss–Seidel sweeps,
// warm-started on warm (clamped to z ≥ 0). Rows with a non-positive
// diagonal are skipped; the frictional template has such rows, so Iterate
// is a polish step for the pivot solvers, not a standalone oracle.
// Mutates only Z and W of l; reports whether the residual reached
// IterateTolerance within IterateMaxSweeps sweeps.
// Complexity: O(sweeps · dim²).
func Iterate(l *LCP, warm []float64) bool {
	// 1. Validate and clamp the warm start
	if l == nil || l.A == nil || l.Dim == 0 || len(warm) != l.Dim {
		return false
	}
	z := make([]float64, l.Dim)
	for i, v := range warm {
		if v > 0 && !math.IsNaN(v) {
			z[i] = v
		}
	}

	// 2. Gauss–Seidel sweeps with projection on z ≥ 0
	var i, j, sweep int
	var diag, sum float64
	for sweep = 0; sweep < IterateMaxSweeps; sweep++ {
		for i = 0; i < l.Dim; i++ {
			diag, _ = l.A.At(i, i)
			if diag <= PivotTolerance {
				continue
			}
			sum = l.Q[i]
			for j = 0; j < l.Dim; j++ {
				if j == i {
					continue
				}
				aij, _ := l.A.At(i, j)
				sum += aij * z[j]
			}
			z[i] = math.Max(0, -sum/diag)
		}

		// 3. Convergence check on the true residual
		l.SetZ(z)
		if l.Error() <= IterateTolerance {
			return true
		}
	}

	return false
}
