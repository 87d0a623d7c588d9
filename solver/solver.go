// Package solver: the cascade driver.
package solver

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/icefloe/builder"
	"github.com/katalvlaran/icefloe/contact"
	"github.com/katalvlaran/icefloe/lcp"
	"github.com/katalvlaran/icefloe/matrix"
)

// Solver walks the strategy cascade over one sub-graph at a time. A single
// Solver must not be shared between goroutines; its perturbation source is
// not synchronized.
type Solver struct {
	opts SolverOptions
}

// New builds a Solver from DefaultOptions overlaid with opts.
// Stage 1 (Apply): functional options.
// Stage 2 (Validate): positive time step, non-nil random source.
func New(opts ...Option) (*Solver, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt == nil {
			return nil, ErrNilOptions
		}
		opt(&o)
	}
	if o.TimeStep <= 0 {
		return nil, ErrNonPositiveTimeStep
	}
	if o.Rand == nil {
		o.Rand = DefaultOptions().Rand
	}

	return &Solver{opts: o}, nil
}

// Result is the outcome of one SolveGraph call.
type Result struct {
	// Solc is the post-collision generalized velocity, 3n. On failure it
	// is the pre-collision velocity W unchanged.
	Solc []float64

	// Impulses holds the summed normal impulse per local floe, nil on
	// failure. The scheduler feeds it to Floe.AddImpulse.
	Impulses []float64

	// Success reports whether some tier accepted a candidate.
	Success bool

	// Tier is the accepting tier, 0 on failure.
	Tier int

	// Attempts counts the cascade entries consumed, perturbations included.
	Attempts int

	// Phase classifies the sub-graph at entry.
	Phase Phase
}

// SolveGraph builds the LCP of sub and walks the cascade until a tier
// accepts a candidate or the table is exhausted.
// Stage 1 (Assemble): GraphLCP, pristine system, working copy.
// Stage 2 (Cascade): perturb or solve, score on the pristine system,
// track the best candidate by residual.
// Stage 3 (Accept): recover Solc from the best z, test energy, residual
// and normal velocities against the entry's tier.
// Complexity: O(attempts · dim³) in the worst case.
func (s *Solver) SolveGraph(sub *contact.Subgraph) (*Result, error) {
	// 1. Assemble
	g, err := builder.New(sub)
	if err != nil {
		return nil, err
	}
	pristine, err := g.LCP()
	if err != nil {
		return nil, err
	}
	working := pristine.Clone()
	scorer := pristine.Clone()

	res := &Result{Phase: entryPhase(sub)}

	bestZ := make([]float64, pristine.Dim)
	bestErr := math.Inf(1)

	// 2. Cascade
	for _, at := range cascade {
		res.Attempts++

		if at.strategy == Perturb {
			perturb(working, s.opts.Rand)

			continue
		}

		var ok bool
		switch at.strategy {
		case Lemke:
			ok = lcp.Lemke(working)
		case LexicoLemke:
			ok = lcp.LexicoLemke(working)
		case IterLemke:
			ok = lcp.Iterate(working, bestZ)
		}
		if !ok || working.HasNaN() {
			continue
		}

		// Score the candidate on the unperturbed system.
		scorer.SetZ(working.Z)
		errNow := scorer.Error()
		if errNow < bestErr {
			copy(bestZ, working.Z)
			bestErr = errNow
		}

		// 3. Acceptance on the best candidate so far
		solc, solErr := g.Solution(bestZ)
		if solErr != nil {
			return nil, solErr
		}
		ratio, ratioErr := energyRatio(g, solc)
		if ratioErr != nil {
			return nil, ratioErr
		}
		un, unErr := g.NormalVelocities(solc)
		if unErr != nil {
			return nil, unErr
		}
		v := s.velocityTest(sub, un)
		accepted := lcpTest(at.tier, ratio, bestErr, v)

		if s.opts.Recorder != nil {
			s.opts.Recorder.RecordAttempt(Attempt{
				Contacts:    g.NumContacts,
				Dim:         pristine.Dim,
				Strategy:    at.strategy,
				Tier:        at.tier,
				Residual:    bestErr,
				EnergyRatio: ratio,
				Accepted:    accepted,
			})
		}

		if accepted {
			res.Solc = solc
			res.Impulses = g.NormalImpulses(bestZ)
			res.Success = true
			res.Tier = at.tier

			return res, nil
		}
	}

	// Exhausted: hand back the pre-collision velocities.
	res.Solc = make([]float64, len(g.W))
	copy(res.Solc, g.W)

	return res, nil
}

// lcpTest is the acceptance oracle: tiers 1 and 2 bound both the energy
// ratio and the residual, tier 3 bounds the energy ratio alone. All tiers
// require the normal-velocity test.
func lcpTest(tier int, ratio, residual float64, v bool) bool {
	if !v {
		return false
	}
	switch tier {
	case 1:
		return ratio <= 1+EnergyTightTolerance && math.Abs(residual) <= ResidualTightTolerance
	case 2:
		return ratio <= 1+EnergyTightTolerance && math.Abs(residual) <= ResidualLooseTolerance
	case 3:
		return ratio <= 1+EnergyLooseTolerance
	default:
		return false
	}
}

// energyRatio returns ρ = Solcᵀ·M·Solc / Wᵀ·M·W, the post/pre kinetic
// energy ratio. A resting sub-graph (zero denominator) reports ρ = 0.
func energyRatio(g *builder.GraphLCP, solc []float64) (float64, error) {
	num, err := matrix.QuadraticForm(g.Mass, solc)
	if err != nil {
		return 0, err
	}
	den, err := matrix.QuadraticForm(g.Mass, g.W)
	if err != nil {
		return 0, err
	}
	if den == 0 {
		return 0, nil
	}

	return num / den, nil
}

// velocityTest inspects the post-collision contact-normal velocities un:
// a contact still approaching (un < 0) fails when un·Δt exceeds
// Dist/GapFraction, a fiftieth of its signed gap.
func (s *Solver) velocityTest(sub *contact.Subgraph, un []float64) bool {
	for c, ct := range sub.Contacts() {
		if un[c] < 0 {
			delta := un[c] * s.opts.TimeStep
			if delta > ct.Dist/GapFraction {
				return false
			}
		}
	}

	return true
}

// entryPhase classifies the sub-graph: compression while some contact is
// still approaching, decompression otherwise.
func entryPhase(sub *contact.Subgraph) Phase {
	g := sub.Parent()
	for _, ct := range sub.Contacts() {
		if g.RelativeNormalVelocity(ct) < 0 {
			return PhaseCompression
		}
	}

	return PhaseDecompression
}

// perturb adds a uniform random value in ±PerturbMagnitude to every
// nonzero entry of A. The working system drifts; the scorer never does.
func perturb(l *lcp.LCP, r *rand.Rand) {
	var i, j int
	var v float64
	for i = 0; i < l.Dim; i++ {
		for j = 0; j < l.Dim; j++ {
			v, _ = l.A.At(i, j)
			if v != 0 {
				_ = l.A.Set(i, j, v+(2*r.Float64()-1)*PerturbMagnitude)
			}
		}
	}
}
