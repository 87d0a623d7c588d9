// Package manager: options, statistics and record types.
package manager

import (
	"errors"

	"github.com/katalvlaran/icefloe/solver"
)

// QuadCutThreshold is the contact count beyond which a sub-graph is split
// into spatial quadrants before solving.
const QuadCutThreshold = 50

// IterationFactor scales the per-component iteration cap by contact count.
const IterationFactor = 60

// IterationCap is the absolute per-component iteration bound.
const IterationCap = 1000

// DefaultSeed seeds the per-worker perturbation sources.
const DefaultSeed = 1

// Sentinel errors for the scheduler.
var (
	// ErrNilGraph indicates a nil collision graph passed to SolveContacts.
	ErrNilGraph = errors.New("manager: collision graph is nil")

	// ErrNilOption indicates a nil functional option passed to New.
	ErrNilOption = errors.New("manager: nil option")

	// ErrNonPositiveWorkers indicates WithParallel called with workers < 1.
	ErrNonPositiveWorkers = errors.New("manager: worker count must be positive")
)

// Stats accumulates solve outcomes across SolveContacts calls.
type Stats struct {
	// Attempted and Succeeded count driver runs.
	Attempted int64
	Succeeded int64

	// FailedCompression counts failed runs entered with some contact still
	// approaching; FailedDecompression the rest.
	FailedCompression   int64
	FailedDecompression int64

	// LooseAccepts counts successes admitted only at the loose tier.
	LooseAccepts int64

	// Episodes counts SolveContacts calls; Iterations sums the scheduler
	// loop counts over all components.
	Episodes   int64
	Iterations int64
}

// SuccessRatio returns the percentage of attempted runs that succeeded.
// With nothing attempted the ratio is 100.
func (s Stats) SuccessRatio() float64 {
	if s.Attempted == 0 {
		return 100
	}

	return 100 * float64(s.Succeeded) / float64(s.Attempted)
}

// Episode summarizes one SolveContacts call.
type Episode struct {
	// Components and Contacts size the input graph.
	Components int
	Contacts   int

	// Solved counts accepted driver runs; Unsolved the contacts still
	// active at give-up.
	Solved   int
	Unsolved int

	// Iterations sums the scheduler loop counts over all components.
	Iterations int
}

// Recorder receives per-attempt and per-episode records. Implementations
// must be safe for concurrent use when WithParallel is enabled.
type Recorder interface {
	solver.AttemptRecorder

	RecordEpisode(e Episode)
}

// ManagerOptions configures a Manager. Construct with DefaultOptions and
// functional options.
type ManagerOptions struct {
	// TimeStep is the Δt of the normal-velocity acceptance test.
	TimeStep float64

	// Workers bounds component-level parallelism; 1 runs serially.
	Workers int

	// Recorder receives attempt and episode records; nil disables both.
	Recorder Recorder

	// Seed feeds the per-worker perturbation sources.
	Seed int64

	// Decompose enables the quad-cut split of oversized sub-graphs.
	Decompose bool
}

// Option mutates ManagerOptions.
type Option func(*ManagerOptions)

// DefaultOptions returns the baseline configuration: default time step,
// serial execution, deterministic seed, decomposition enabled.
func DefaultOptions() ManagerOptions {
	return ManagerOptions{
		TimeStep:  solver.DefaultTimeStep,
		Workers:   1,
		Seed:      DefaultSeed,
		Decompose: true,
	}
}

// WithTimeStep sets the Δt of the normal-velocity test.
func WithTimeStep(dt float64) Option {
	return func(o *ManagerOptions) { o.TimeStep = dt }
}

// WithParallel sets the component worker count.
func WithParallel(workers int) Option {
	return func(o *ManagerOptions) { o.Workers = workers }
}

// WithRecorder sets the attempt and episode recorder.
func WithRecorder(rec Recorder) Option {
	return func(o *ManagerOptions) { o.Recorder = rec }
}

// WithRandSource sets the seed of the per-worker perturbation sources.
func WithRandSource(seed int64) Option {
	return func(o *ManagerOptions) { o.Seed = seed }
}

// WithoutDecomposition disables the quad-cut split; oversized sub-graphs
// are solved as one LCP.
func WithoutDecomposition() Option {
	return func(o *ManagerOptions) { o.Decompose = false }
}
