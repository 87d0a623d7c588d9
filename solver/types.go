// Package solver: strategies, cascade table, options and attempt records.
package solver

import (
	"errors"
	"math/rand"
)

// DefaultTimeStep is the time step used by the normal-velocity acceptance
// test when no other value is configured.
const DefaultTimeStep = 1e-2

// DefaultSeed seeds the perturbation source of DefaultOptions; a fixed
// seed keeps runs reproducible.
const DefaultSeed = 1

// PerturbMagnitude is the half-width of the uniform perturbation applied
// to nonzero entries of A by the Perturb strategy.
const PerturbMagnitude = 1e-10

// GapFraction divides the contact gap in the normal-velocity test: a
// contact still approaching fails when un·Δt exceeds gap/GapFraction.
const GapFraction = 50

// Acceptance-tier tolerances.
const (
	// EnergyTightTolerance bounds the kinetic-energy ratio at tiers 1 and 2:
	// ρ ≤ 1+EnergyTightTolerance.
	EnergyTightTolerance = 1e-4

	// EnergyLooseTolerance bounds the kinetic-energy ratio at tier 3.
	EnergyLooseTolerance = 1e-2

	// ResidualTightTolerance bounds |Err| at tier 1.
	ResidualTightTolerance = 1e-11

	// ResidualLooseTolerance bounds |Err| at tier 2. Tier 3 ignores the
	// residual entirely.
	ResidualLooseTolerance = 1e-8
)

// Sentinel errors for the cascade driver.
var (
	// ErrNilOptions indicates a nil functional option passed to New.
	ErrNilOptions = errors.New("solver: nil option")

	// ErrNonPositiveTimeStep indicates a time step ≤ 0.
	ErrNonPositiveTimeStep = errors.New("solver: time step must be positive")
)

// Strategy selects one method of the cascade.
type Strategy int

// Cascade strategies, in the numbering of the attempt table.
const (
	// Perturb nudges every nonzero entry of the working A.
	Perturb Strategy = iota

	// Lemke is complementary pivoting with lowest-row tie-breaking.
	Lemke

	// LexicoLemke is complementary pivoting with lexicographic tie-breaking.
	LexicoLemke

	// IterLemke is projected Gauss–Seidel warm-started on the best z so far.
	IterLemke
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case Perturb:
		return "Perturb"
	case Lemke:
		return "Lemke"
	case LexicoLemke:
		return "LexicoLemke"
	case IterLemke:
		return "IterLemke"
	default:
		return "Unknown"
	}
}

// attempt is one row of the cascade table.
type attempt struct {
	strategy Strategy
	tier     int
}

// cascade is the fixed attempt table: three rounds of solvers separated by
// perturbations at tier 1, two rounds at tier 2, one final round at tier 3.
var cascade = []attempt{
	{Lemke, 1}, {LexicoLemke, 1}, {IterLemke, 1},
	{Perturb, 1}, {Lemke, 1}, {LexicoLemke, 1}, {IterLemke, 1},
	{Perturb, 1}, {Lemke, 1}, {LexicoLemke, 1}, {IterLemke, 1},
	{Perturb, 2}, {Lemke, 2}, {LexicoLemke, 2}, {IterLemke, 2},
	{Perturb, 2}, {Lemke, 2}, {LexicoLemke, 2}, {IterLemke, 2},
	{Perturb, 3}, {Lemke, 3}, {LexicoLemke, 3}, {IterLemke, 3},
}

// Phase classifies the state of a sub-graph at solve time.
type Phase int

// Episode phases.
const (
	// PhaseDecompression means no contact was approaching on entry.
	PhaseDecompression Phase = iota

	// PhaseCompression means at least one contact was still approaching.
	PhaseCompression
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	if p == PhaseCompression {
		return "Compression"
	}

	return "Decompression"
}

// Attempt describes the outcome of one solver entry of the cascade.
// Perturb entries produce no candidate and are not recorded; neither are
// solver entries that fail (ray termination, pivot cap, singular pivot,
// non-converged iteration) or return a NaN candidate.
type Attempt struct {
	// Contacts and Dim size the problem.
	Contacts int
	Dim      int

	// Strategy and Tier identify the table entry.
	Strategy Strategy
	Tier     int

	// Residual is the complementarity residual, on the pristine system, of
	// the best candidate so far, which is the one the tier tests;
	// EnergyRatio its kinetic-energy ratio ρ.
	Residual    float64
	EnergyRatio float64

	// Accepted reports whether the tier admitted the best candidate.
	Accepted bool
}

// AttemptRecorder receives one record per solver attempt that produced a
// candidate; perturbations and failed solver attempts are not recorded.
type AttemptRecorder interface {
	RecordAttempt(a Attempt)
}

// SolverOptions configures a Solver. Construct with DefaultOptions and
// functional options.
type SolverOptions struct {
	// TimeStep is the Δt of the normal-velocity acceptance test.
	TimeStep float64

	// Rand is the perturbation source.
	Rand *rand.Rand

	// Recorder receives per-attempt records; nil disables recording.
	Recorder AttemptRecorder
}

// Option mutates SolverOptions.
type Option func(*SolverOptions)

// DefaultOptions returns the baseline configuration: DefaultTimeStep, a
// deterministic perturbation source, no recorder.
func DefaultOptions() SolverOptions {
	return SolverOptions{
		TimeStep: DefaultTimeStep,
		Rand:     rand.New(rand.NewSource(DefaultSeed)),
	}
}

// WithTimeStep sets the Δt of the normal-velocity test.
func WithTimeStep(dt float64) Option {
	return func(o *SolverOptions) { o.TimeStep = dt }
}

// WithRand sets the perturbation source.
func WithRand(r *rand.Rand) Option {
	return func(o *SolverOptions) { o.Rand = r }
}

// WithRecorder sets the per-attempt recorder.
func WithRecorder(rec AttemptRecorder) Option {
	return func(o *SolverOptions) { o.Recorder = rec }
}
