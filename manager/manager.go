// Package manager: the component scheduler.
package manager

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/setanarut/vec"

	"github.com/katalvlaran/icefloe/builder"
	"github.com/katalvlaran/icefloe/contact"
	"github.com/katalvlaran/icefloe/solver"
)

// Manager drives the collision graph to a fixed point and accumulates
// statistics across episodes. Safe for serial reuse; one SolveContacts
// call at a time.
type Manager struct {
	opts ManagerOptions

	mu    sync.Mutex
	stats Stats
}

// New builds a Manager from DefaultOptions overlaid with opts.
func New(opts ...Option) (*Manager, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt == nil {
			return nil, ErrNilOption
		}
		opt(&o)
	}
	if o.Workers < 1 {
		return nil, ErrNonPositiveWorkers
	}

	return &Manager{opts: o}, nil
}

// Stats returns a snapshot of the accumulated statistics.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.stats
}

// componentResult is the per-component outcome of one episode.
type componentResult struct {
	solved     int
	unsolved   int
	iterations int
}

// SolveContacts drives every connected component of g to a fixed point
// and returns the number of accepted solves.
// Stage 1 (Split): connected components with at least one contact.
// Stage 2 (Drive): serial or pooled component loop.
// Stage 3 (Report): statistics and episode record.
// Complexity: dominated by the per-component cascades.
func (m *Manager) SolveContacts(g *contact.Graph) (int, error) {
	// 1. Split
	if g == nil {
		return 0, ErrNilGraph
	}
	comps := g.CollisionSubgraphs()

	ep := Episode{Components: len(comps), Contacts: g.NumContacts()}

	// 2. Drive
	var agg componentResult
	var err error
	if m.opts.Workers > 1 && len(comps) > 1 {
		agg, err = m.solvePooled(comps)
	} else {
		agg, err = m.solveSerial(comps)
	}
	if err != nil {
		return 0, err
	}

	// 3. Report
	ep.Solved = agg.solved
	ep.Unsolved = agg.unsolved
	ep.Iterations = agg.iterations
	m.mu.Lock()
	m.stats.Episodes++
	m.stats.Iterations += int64(agg.iterations)
	m.mu.Unlock()
	if m.opts.Recorder != nil {
		m.opts.Recorder.RecordEpisode(ep)
	}

	return agg.solved, nil
}

// solveSerial drives the components in order with a single solver.
func (m *Manager) solveSerial(comps []*contact.Subgraph) (componentResult, error) {
	var agg componentResult
	sv, err := m.newSolver(0)
	if err != nil {
		return agg, err
	}
	for _, comp := range comps {
		r, compErr := m.solveComponent(comp, sv)
		if compErr != nil {
			return agg, compErr
		}
		agg.solved += r.solved
		agg.unsolved += r.unsolved
		agg.iterations += r.iterations
	}

	return agg, nil
}

// solvePooled distributes components over a worker pool. Components are
// vertex-disjoint, so workers never touch the same floe.
func (m *Manager) solvePooled(comps []*contact.Subgraph) (componentResult, error) {
	workers := m.opts.Workers
	if workers > len(comps) {
		workers = len(comps)
	}

	var agg componentResult
	var aggMu sync.Mutex
	var firstErr error

	jobs := make(chan *contact.Subgraph)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		sv, err := m.newSolver(int64(w))
		if err != nil {
			close(jobs)

			return agg, err
		}
		wg.Add(1)
		go func(sv *solver.Solver) {
			defer wg.Done()
			for comp := range jobs {
				r, compErr := m.solveComponent(comp, sv)
				aggMu.Lock()
				if compErr != nil && firstErr == nil {
					firstErr = compErr
				}
				agg.solved += r.solved
				agg.unsolved += r.unsolved
				agg.iterations += r.iterations
				aggMu.Unlock()
			}
		}(sv)
	}
	for _, comp := range comps {
		jobs <- comp
	}
	close(jobs)
	wg.Wait()

	return agg, firstErr
}

// newSolver builds the per-worker cascade driver; each worker draws from
// its own deterministic perturbation source.
func (m *Manager) newSolver(worker int64) (*solver.Solver, error) {
	opts := []solver.Option{
		solver.WithTimeStep(m.opts.TimeStep),
		solver.WithRand(rand.New(rand.NewSource(m.opts.Seed + worker))),
	}
	if m.opts.Recorder != nil {
		opts = append(opts, solver.WithRecorder(m.opts.Recorder))
	}

	return solver.New(opts...)
}

// solveComponent runs the fixed-point loop over one component: solve the
// active sub-graphs, write velocities back, recompute activity, repeat
// until quiet, capped, or stalled. Contacts still active at give-up are
// marked unsolved.
func (m *Manager) solveComponent(comp *contact.Subgraph, sv *solver.Solver) (componentResult, error) {
	var res componentResult

	active := comp.ActiveSubgraphs()
	limit := IterationFactor * comp.NumContacts()
	if limit > IterationCap {
		limit = IterationCap
	}

	progress := 1
	for k := 0; len(active) > 0 && k < limit && progress != 0; k++ {
		progress = 0
		for _, sg := range active {
			if m.opts.Decompose && sg.NumContacts() > QuadCutThreshold {
				for _, q := range sg.QuadCut() {
					ok, err := m.runDriver(comp, q, sv)
					if err != nil {
						return res, err
					}
					if ok {
						progress++
						res.solved++
					}
				}
			} else {
				ok, err := m.runDriver(comp, sg, sv)
				if err != nil {
					return res, err
				}
				if ok {
					progress++
					res.solved++
				}
			}
		}
		active = comp.ActiveSubgraphs()
		res.iterations++
	}

	// Give-up: whatever is still closing stays unsolved this episode.
	for _, sg := range active {
		sg.MarkSolved(false)
		res.unsolved += sg.NumContacts()
	}

	return res, nil
}

// runDriver solves one sub-graph, writes the outcome back and updates the
// statistics. Reports whether the cascade accepted a solution.
func (m *Manager) runDriver(comp, sg *contact.Subgraph, sv *solver.Solver) (bool, error) {
	out, err := sv.SolveGraph(sg)
	if err != nil {
		// A quadrant can end up without contacts; skip it quietly.
		if errors.Is(err, builder.ErrEmptySubgraph) {
			return false, nil
		}

		return false, err
	}

	m.mu.Lock()
	m.stats.Attempted++
	if out.Success {
		m.stats.Succeeded++
		if out.Tier == 3 {
			m.stats.LooseAccepts++
		}
	} else if out.Phase == solver.PhaseCompression {
		m.stats.FailedCompression++
	} else {
		m.stats.FailedDecompression++
	}
	m.mu.Unlock()

	if !out.Success {
		return false, nil
	}

	writeback(sg, out)
	sg.MarkSolved(true)
	comp.MarkChangedFrom(sg)

	return true, nil
}

// writeback installs the solved velocities and accumulates the normal
// impulses on the floes of sg.
func writeback(sg *contact.Subgraph, out *solver.Result) {
	for v, f := range sg.Floes() {
		base := builder.DOFPerFloe * v
		f.Velocity = vec.Vec2{X: out.Solc[base], Y: out.Solc[base+1]}
		f.Omega = out.Solc[base+2]
		f.AddImpulse(out.Impulses[v])
	}
}
