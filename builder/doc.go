// Package builder turns a contact sub-graph into the matrices of a
// frictional-contact Linear Complementarity Problem.
//
// Given a sub-graph with n floes and m contacts, New assembles the
// physical companion of the LCP:
//
//	Mass    3n×3n  block-diagonal mass matrix, blocks diag(m, m, I)
//	InvMass 3n×3n  its inverse
//	W       3n     pre-collision generalized velocity (vx, vy, ω per floe)
//	J       3n×m   normal Jacobian
//	D       3n×2m  tangent Jacobian, two opposed columns per contact
//	E       2m×m   column selector summing the tangent pair per contact
//	Mu      m×m    diagonal friction coefficients
//
// and LCP derives the 4m-dimensional system
//
//	    | JᵀM⁻¹J   JᵀM⁻¹D   0 |        | (1+e)∘JᵀW |
//	A = | DᵀM⁻¹J   DᵀM⁻¹D   E |,   q = |    DᵀW    |
//	    | μ        −Eᵀ      0 |        |     0     |
//
// Floes are enumerated by ascending parent vertex index, contacts in
// edge-then-list order; both enumerations are stable, so construction is
// deterministic for a fixed sub-graph.
//
// Errors:
//
//	ErrNilSubgraph     - nil sub-graph.
//	ErrEmptySubgraph   - sub-graph without contacts.
package builder
