// Package lcp: problem record, sentinel errors and numeric constants.
package lcp

import (
	"errors"
	"math"

	"github.com/katalvlaran/icefloe/matrix"
)

// PivotCapFactor bounds complementary pivoting to PivotCapFactor·dim pivots.
const PivotCapFactor = 10

// PivotTolerance is the magnitude below which a candidate pivot element
// counts as zero in the ratio test.
const PivotTolerance = 1e-12

// RatioTieTolerance is the absolute slack within which two minimum ratios
// count as tied. Plain Lemke resolves ties by lowest row; the lexicographic
// variant compares inverse-basis columns.
const RatioTieTolerance = 1e-9

// Sentinel errors for LCP construction.
var (
	// ErrNilLCP indicates a nil problem or a nil system matrix.
	ErrNilLCP = errors.New("lcp: nil problem")

	// ErrNonSquare indicates that the system matrix A is not square.
	ErrNonSquare = errors.New("lcp: matrix A is not square")

	// ErrDimensionMismatch indicates len(q) differs from the dimension of A.
	ErrDimensionMismatch = errors.New("lcp: dimension mismatch between A and q")
)

// LCP is one Linear Complementarity Problem instance: find z ≥ 0 with
// w = A·z + q ≥ 0 and zᵀw = 0. Dim, A and Q are fixed at construction;
// Z and W are the mutable solution and slack.
type LCP struct {
	// Dim is the problem dimension (rows of A).
	Dim int

	// A is the square system matrix.
	A *matrix.Dense

	// Q is the right-hand side, length Dim.
	Q []float64

	// Z is the current candidate solution, length Dim. Zero after New.
	Z []float64

	// W is the slack A·Z + Q for the current Z. Zero after New.
	W []float64
}

// New builds an LCP over (A, q) with zeroed solution and slack.
// Stage 1 (Validate): non-nil square A, conformable q.
// Stage 2 (Prepare): allocate Z and W.
// Complexity: O(dim).
func New(a *matrix.Dense, q []float64) (*LCP, error) {
	// 1. Validate the system
	if a == nil {
		return nil, ErrNilLCP
	}
	if a.Rows() != a.Cols() {
		return nil, ErrNonSquare
	}
	if a.Rows() != len(q) {
		return nil, ErrDimensionMismatch
	}

	// 2. Zero-initialized solution state
	return &LCP{
		Dim: a.Rows(),
		A:   a,
		Q:   q,
		Z:   make([]float64, len(q)),
		W:   make([]float64, len(q)),
	}, nil
}

// Clone returns a deep copy of the problem, including solution state.
// The cascade driver keeps a pristine clone to score every candidate z
// against the unperturbed system.
func (l *LCP) Clone() *LCP {
	q := make([]float64, len(l.Q))
	copy(q, l.Q)
	z := make([]float64, len(l.Z))
	copy(z, l.Z)
	w := make([]float64, len(l.W))
	copy(w, l.W)

	return &LCP{Dim: l.Dim, A: l.A.Clone(), Q: q, Z: z, W: w}
}

// SetZ installs a candidate solution and refreshes the slack W = A·Z + Q.
func (l *LCP) SetZ(z []float64) {
	copy(l.Z, z)
	l.refreshSlack()
}

// refreshSlack recomputes W from the current Z.
func (l *LCP) refreshSlack() {
	az, _ := matrix.MulVec(l.A, l.Z)
	for i := range l.W {
		l.W[i] = az[i] + l.Q[i]
	}
}

// Error returns the scalar complementarity residual of the current Z:
// the Euclidean norm of the componentwise min(z, A·z+q). Exact solutions
// give zero; negative components of either vector surface as infeasibility.
// Complexity: O(dim²).
func (l *LCP) Error() float64 {
	az, _ := matrix.MulVec(l.A, l.Z)
	var sum float64
	var wi, m float64
	for i := range l.Z {
		wi = az[i] + l.Q[i]
		m = math.Min(l.Z[i], wi)
		sum += m * m
	}

	return math.Sqrt(sum)
}

// HasNaN reports whether the current solution contains a NaN component.
// The cascade driver treats NaN solutions as silent failures.
func (l *LCP) HasNaN() bool {
	for _, v := range l.Z {
		if math.IsNaN(v) {
			return true
		}
	}

	return false
}
