// Package solver drives the strategy cascade that turns one contact
// sub-graph into accepted post-collision velocities.
//
// SolveGraph assembles the frictional-contact LCP of a sub-graph and walks
// a fixed table of (strategy, tier) attempts:
//
//	Perturb      add a uniform random value in ±PerturbMagnitude to every
//	             nonzero entry of A, then move to the next attempt
//	Lemke        complementary pivoting, lowest-row tie-breaking
//	LexicoLemke  complementary pivoting, lexicographic tie-breaking
//	IterLemke    projected Gauss–Seidel warm-started on the best z so far
//
// Every candidate z is scored on a pristine copy of the system, so
// perturbations sharpen the pivoting without moving the goalposts. The
// best candidate by complementarity residual is retained across attempts.
//
// A candidate is accepted when the tier of its table entry admits it:
//
//	tier 1   ρ ≤ 1+1e-4,  |Err| ≤ 1e-11,  V
//	tier 2   ρ ≤ 1+1e-4,  |Err| ≤ 1e-8,   V
//	tier 3   ρ ≤ 1+1e-2,                  V
//
// where ρ is the post/pre kinetic-energy ratio, Err the residual on the
// pristine system and V the normal-velocity test: a contact still
// approaching after the solve (un < 0) fails when un·Δt, over one default
// time step, exceeds a fiftieth of its signed gap.
//
// When the table is exhausted the solver returns the pre-collision
// velocities unchanged, reports failure and classifies the episode as
// compression (some contact was approaching on entry) or decompression.
package solver
