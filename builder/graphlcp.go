// Package builder: assembly of the frictional-contact LCP.
package builder

import (
	"errors"

	"github.com/katalvlaran/icefloe/contact"
	"github.com/katalvlaran/icefloe/lcp"
	"github.com/katalvlaran/icefloe/matrix"
)

// DOFPerFloe is the number of generalized coordinates per body: vx, vy, ω.
const DOFPerFloe = 3

// TangentsPerContact is the number of opposed tangent directions per contact.
const TangentsPerContact = 2

// Sentinel errors for LCP assembly.
var (
	// ErrNilSubgraph indicates a nil sub-graph passed to New.
	ErrNilSubgraph = errors.New("builder: sub-graph is nil")

	// ErrEmptySubgraph indicates a sub-graph without contacts; there is no
	// LCP to build.
	ErrEmptySubgraph = errors.New("builder: sub-graph has no contacts")
)

// GraphLCP is the physical companion of one contact LCP: the mass matrix,
// Jacobians and pre-collision velocity from which A and q derive, kept
// alongside so the driver can recover velocities and energies from a
// solved z.
type GraphLCP struct {
	// Sub is the source sub-graph; its floe enumeration indexes W.
	Sub *contact.Subgraph

	// NumFloes (n) and NumContacts (m) fix every dimension below.
	NumFloes    int
	NumContacts int

	// Mass is the 3n×3n block-diagonal mass matrix; InvMass its inverse.
	Mass    *matrix.Dense
	InvMass *matrix.Dense

	// W is the pre-collision generalized velocity, 3n.
	W []float64

	// J is the 3n×m normal Jacobian; D the 3n×2m tangent Jacobian.
	J *matrix.Dense
	D *matrix.Dense

	// E is the 2m×m tangent-pair selector; Mu the m×m friction diagonal.
	E  *matrix.Dense
	Mu *matrix.Dense

	restitution []float64 // per contact, bounce term of q
}

// New assembles the physical matrices for sub.
// Stage 1 (Validate): non-nil, non-empty sub-graph.
// Stage 2 (Bodies): mass blocks, inverse blocks, generalized velocity.
// Stage 3 (Contacts): Jacobian columns from geometry alone.
// Complexity: O(n² + n·m) dominated by the dense allocations.
func New(sub *contact.Subgraph) (*GraphLCP, error) {
	// 1. Validate
	if sub == nil {
		return nil, ErrNilSubgraph
	}
	m := sub.NumContacts()
	if m == 0 {
		return nil, ErrEmptySubgraph
	}
	floes := sub.Floes()
	n := len(floes)

	g := &GraphLCP{Sub: sub, NumFloes: n, NumContacts: m}

	// 2. Mass matrix, inverse, and pre-collision velocity
	var err error
	if g.Mass, err = matrix.NewDense(DOFPerFloe*n, DOFPerFloe*n); err != nil {
		return nil, err
	}
	g.InvMass = g.Mass.Clone()
	g.W = make([]float64, DOFPerFloe*n)
	for v, f := range floes {
		base := DOFPerFloe * v
		_ = g.Mass.Set(base, base, f.Mass)
		_ = g.Mass.Set(base+1, base+1, f.Mass)
		_ = g.Mass.Set(base+2, base+2, f.Inertia)
		_ = g.InvMass.Set(base, base, 1/f.Mass)
		_ = g.InvMass.Set(base+1, base+1, 1/f.Mass)
		_ = g.InvMass.Set(base+2, base+2, 1/f.Inertia)
		g.W[base] = f.Velocity.X
		g.W[base+1] = f.Velocity.Y
		g.W[base+2] = f.Omega
	}

	// 3. Jacobians, selector, friction diagonal
	if g.J, err = matrix.NewDense(DOFPerFloe*n, m); err != nil {
		return nil, err
	}
	if g.D, err = matrix.NewDense(DOFPerFloe*n, TangentsPerContact*m); err != nil {
		return nil, err
	}
	if g.E, err = matrix.NewDense(TangentsPerContact*m, m); err != nil {
		return nil, err
	}
	if g.Mu, err = matrix.NewDense(m, m); err != nil {
		return nil, err
	}
	g.restitution = make([]float64, m)

	for c, ct := range sub.Contacts() {
		a, _ := sub.LocalIndex(ct.N1)
		b, _ := sub.LocalIndex(ct.N2)
		nrm := ct.Normal
		tng := ct.Tangent()
		ra := ct.Point.Sub(floes[a].Position)
		rb := ct.Point.Sub(floes[b].Position)

		// Normal column: (−n̂, −r_a×n̂) at a, (+n̂, +r_b×n̂) at b
		_ = g.J.Set(DOFPerFloe*a, c, -nrm.X)
		_ = g.J.Set(DOFPerFloe*a+1, c, -nrm.Y)
		_ = g.J.Set(DOFPerFloe*a+2, c, -ra.Cross(nrm))
		_ = g.J.Set(DOFPerFloe*b, c, nrm.X)
		_ = g.J.Set(DOFPerFloe*b+1, c, nrm.Y)
		_ = g.J.Set(DOFPerFloe*b+2, c, rb.Cross(nrm))

		// Tangent columns: +t̂ then −t̂
		for s, sign := range []float64{1, -1} {
			col := TangentsPerContact*c + s
			_ = g.D.Set(DOFPerFloe*a, col, -sign*tng.X)
			_ = g.D.Set(DOFPerFloe*a+1, col, -sign*tng.Y)
			_ = g.D.Set(DOFPerFloe*a+2, col, -sign*ra.Cross(tng))
			_ = g.D.Set(DOFPerFloe*b, col, sign*tng.X)
			_ = g.D.Set(DOFPerFloe*b+1, col, sign*tng.Y)
			_ = g.D.Set(DOFPerFloe*b+2, col, sign*rb.Cross(tng))
			_ = g.E.Set(col, c, 1)
		}

		_ = g.Mu.Set(c, c, ct.Mu)
		g.restitution[c] = ct.Restitution
	}

	return g, nil
}

// Dim returns the dimension of the derived LCP: m normal + 2m tangent
// + m friction-cone variables.
func (g *GraphLCP) Dim() int {
	return (1 + TangentsPerContact + 1) * g.NumContacts
}

// LCP assembles the frictional-contact system (A, q) from the physical
// matrices. Deterministic given the sub-graph enumeration.
// Complexity: O(n·m²) matrix products.
func (g *GraphLCP) LCP() (*lcp.LCP, error) {
	m := g.NumContacts

	// 1. Shared products
	jt, err := matrix.Transpose(g.J)
	if err != nil {
		return nil, err
	}
	dt, err := matrix.Transpose(g.D)
	if err != nil {
		return nil, err
	}
	invMJ, err := matrix.Mul(g.InvMass, g.J)
	if err != nil {
		return nil, err
	}
	invMD, err := matrix.Mul(g.InvMass, g.D)
	if err != nil {
		return nil, err
	}

	blocks := [4]*matrix.Dense{}
	if blocks[0], err = matrix.Mul(jt, invMJ); err != nil { // JᵀM⁻¹J
		return nil, err
	}
	if blocks[1], err = matrix.Mul(jt, invMD); err != nil { // JᵀM⁻¹D
		return nil, err
	}
	if blocks[2], err = matrix.Mul(dt, invMJ); err != nil { // DᵀM⁻¹J
		return nil, err
	}
	if blocks[3], err = matrix.Mul(dt, invMD); err != nil { // DᵀM⁻¹D
		return nil, err
	}

	// 2. Place blocks into the 4m template
	dim := g.Dim()
	a, err := matrix.NewDense(dim, dim)
	if err != nil {
		return nil, err
	}
	copyBlock(a, blocks[0], 0, 0)
	copyBlock(a, blocks[1], 0, m)
	copyBlock(a, blocks[2], m, 0)
	copyBlock(a, blocks[3], m, m)
	copyBlock(a, g.E, m, m+TangentsPerContact*m)
	copyBlock(a, g.Mu, m+TangentsPerContact*m, 0)
	et, err := matrix.Transpose(g.E)
	if err != nil {
		return nil, err
	}
	if et, err = matrix.Scale(et, -1); err != nil {
		return nil, err
	}
	copyBlock(a, et, m+TangentsPerContact*m, m)

	// 3. Right-hand side: bounce on the normal rows, plain DᵀW on tangents
	q := make([]float64, dim)
	jw, err := matrix.TransposeMulVec(g.J, g.W)
	if err != nil {
		return nil, err
	}
	dw, err := matrix.TransposeMulVec(g.D, g.W)
	if err != nil {
		return nil, err
	}
	for c := 0; c < m; c++ {
		q[c] = (1 + g.restitution[c]) * jw[c]
	}
	copy(q[m:], dw)

	return lcp.New(a, q)
}

// Solution recovers the post-collision generalized velocity from a solved z:
// Solc = W + M⁻¹(J·z_N + D·z_T), where z_N are the first m components and
// z_T the next 2m. The friction-cone variables do not enter the recovery.
// Complexity: O(n·m).
func (g *GraphLCP) Solution(z []float64) ([]float64, error) {
	m := g.NumContacts
	if len(z) < (1+TangentsPerContact)*m {
		return nil, matrix.ErrDimensionMismatch
	}

	jz, err := matrix.MulVec(g.J, z[:m])
	if err != nil {
		return nil, err
	}
	dz, err := matrix.MulVec(g.D, z[m:(1+TangentsPerContact)*m])
	if err != nil {
		return nil, err
	}
	sum, err := matrix.AddVec(jz, dz)
	if err != nil {
		return nil, err
	}
	dv, err := matrix.MulVec(g.InvMass, sum)
	if err != nil {
		return nil, err
	}

	return matrix.AddVec(g.W, dv)
}

// NormalImpulses sums the normal impulse magnitudes per floe: entry v is
// the sum of z_N over the contacts incident to local floe v. This is the
// quantity the writeback accumulates through Floe.AddImpulse.
func (g *GraphLCP) NormalImpulses(z []float64) []float64 {
	out := make([]float64, g.NumFloes)
	for c, ct := range g.Sub.Contacts() {
		a, _ := g.Sub.LocalIndex(ct.N1)
		b, _ := g.Sub.LocalIndex(ct.N2)
		out[a] += z[c]
		out[b] += z[c]
	}

	return out
}

// NormalVelocities returns Jᵀ·sol, the post-collision contact-normal
// relative velocities the acceptance oracle inspects.
func (g *GraphLCP) NormalVelocities(sol []float64) ([]float64, error) {
	return matrix.TransposeMulVec(g.J, sol)
}

// copyBlock writes src into dst with its top-left corner at (row, col).
// Shapes are guaranteed by the caller.
func copyBlock(dst, src *matrix.Dense, row, col int) {
	var i, j int
	var v float64
	for i = 0; i < src.Rows(); i++ {
		for j = 0; j < src.Cols(); j++ {
			v, _ = src.At(i, j)
			if v != 0 {
				_ = dst.Set(row+i, col+j, v)
			}
		}
	}
}
