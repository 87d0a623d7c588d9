package solver_test

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/setanarut/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/icefloe/builder"
	"github.com/katalvlaran/icefloe/contact"
	"github.com/katalvlaran/icefloe/floe"
	"github.com/katalvlaran/icefloe/solver"
)

// recorder collects attempt records for inspection.
type recorder struct {
	mu       sync.Mutex
	attempts []solver.Attempt
}

func (r *recorder) RecordAttempt(a solver.Attempt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, a)
}

// headOnPair builds two unit disks closing at speed 2 with restitution e.
func headOnPair(t *testing.T, e float64) *contact.Subgraph {
	t.Helper()
	g := contact.NewGraph()
	_, err := g.AddFloe(&floe.Floe{Mass: 1, Inertia: 1, Velocity: vec.Vec2{X: 1}})
	require.NoError(t, err)
	_, err = g.AddFloe(&floe.Floe{Mass: 1, Inertia: 1, Position: vec.Vec2{X: 2}, Velocity: vec.Vec2{X: -1}})
	require.NoError(t, err)
	require.NoError(t, g.AddContact(&contact.Contact{
		N1: 0, N2: 1,
		Point:       vec.Vec2{X: 1},
		Normal:      vec.Vec2{X: 1},
		Restitution: e,
	}))
	subs := g.CollisionSubgraphs()
	require.Len(t, subs, 1)

	return subs[0]
}

func TestNew_Defaults(t *testing.T) {
	s, err := solver.New()
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestNew_NilOption(t *testing.T) {
	_, err := solver.New(nil)
	assert.ErrorIs(t, err, solver.ErrNilOptions)
}

func TestNew_NonPositiveTimeStep(t *testing.T) {
	_, err := solver.New(solver.WithTimeStep(0))
	assert.ErrorIs(t, err, solver.ErrNonPositiveTimeStep)
}

func TestSolveGraph_NilSubgraph(t *testing.T) {
	s, err := solver.New()
	require.NoError(t, err)
	_, err = s.SolveGraph(nil)
	assert.ErrorIs(t, err, builder.ErrNilSubgraph)
}

func TestSolveGraph_InelasticPairStops(t *testing.T) {
	s, err := solver.New()
	require.NoError(t, err)

	res, err := s.SolveGraph(headOnPair(t, 0))
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, 1, res.Tier)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, solver.PhaseCompression, res.Phase)
	assert.InDeltaSlice(t, []float64{0, 0, 0, 0, 0, 0}, res.Solc, 1e-9)
	require.Len(t, res.Impulses, 2)
	assert.InDelta(t, 1, res.Impulses[0], 1e-9)
	assert.InDelta(t, 1, res.Impulses[1], 1e-9)
}

func TestSolveGraph_ElasticPairSwaps(t *testing.T) {
	s, err := solver.New()
	require.NoError(t, err)

	res, err := s.SolveGraph(headOnPair(t, 1))
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.InDeltaSlice(t, []float64{-1, 0, 0, 1, 0, 0}, res.Solc, 1e-9)
}

func TestSolveGraph_SeparatingPairIsDecompression(t *testing.T) {
	g := contact.NewGraph()
	_, err := g.AddFloe(&floe.Floe{Mass: 1, Inertia: 1, Velocity: vec.Vec2{X: -1}})
	require.NoError(t, err)
	_, err = g.AddFloe(&floe.Floe{Mass: 1, Inertia: 1, Position: vec.Vec2{X: 2}, Velocity: vec.Vec2{X: 1}})
	require.NoError(t, err)
	require.NoError(t, g.AddContact(&contact.Contact{
		N1: 0, N2: 1, Point: vec.Vec2{X: 1}, Normal: vec.Vec2{X: 1},
	}))
	sub := g.CollisionSubgraphs()[0]

	s, err := solver.New()
	require.NoError(t, err)
	res, err := s.SolveGraph(sub)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, solver.PhaseDecompression, res.Phase)
	// Separating bodies need no impulse; velocities are unchanged.
	assert.InDeltaSlice(t, []float64{-1, 0, 0, 1, 0, 0}, res.Solc, 1e-9)
}

func TestSolveGraph_RecordsAttempts(t *testing.T) {
	rec := &recorder{}
	s, err := solver.New(solver.WithRecorder(rec))
	require.NoError(t, err)

	res, err := s.SolveGraph(headOnPair(t, 0))
	require.NoError(t, err)
	require.True(t, res.Success)

	require.Len(t, rec.attempts, 1)
	a := rec.attempts[0]
	assert.Equal(t, solver.Lemke, a.Strategy)
	assert.Equal(t, 1, a.Tier)
	assert.Equal(t, 1, a.Contacts)
	assert.Equal(t, 4, a.Dim)
	assert.True(t, a.Accepted)
	assert.LessOrEqual(t, a.EnergyRatio, 1.0+1e-9)
}

func TestSolveGraph_DeterministicAcrossSeeds(t *testing.T) {
	// The first Lemke attempt succeeds before any perturbation, so the
	// seed cannot influence the outcome.
	s1, err := solver.New(solver.WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	s2, err := solver.New(solver.WithRand(rand.New(rand.NewSource(99))))
	require.NoError(t, err)

	r1, err := s1.SolveGraph(headOnPair(t, 0.5))
	require.NoError(t, err)
	r2, err := s2.SolveGraph(headOnPair(t, 0.5))
	require.NoError(t, err)
	assert.InDeltaSlice(t, r1.Solc, r2.Solc, 1e-15)
}

func TestStrategy_String(t *testing.T) {
	assert.Equal(t, "Perturb", solver.Perturb.String())
	assert.Equal(t, "Lemke", solver.Lemke.String())
	assert.Equal(t, "LexicoLemke", solver.LexicoLemke.String())
	assert.Equal(t, "IterLemke", solver.IterLemke.String())
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "Compression", solver.PhaseCompression.String())
	assert.Equal(t, "Decompression", solver.PhaseDecompression.String())
}

func TestSolveGraph_FrictionalPair(t *testing.T) {
	// Oblique impact with friction: the solver must still find an
	// energy-dissipating solution.
	g := contact.NewGraph()
	_, err := g.AddFloe(&floe.Floe{Mass: 1, Inertia: 0.5, Velocity: vec.Vec2{X: 1, Y: 0.5}})
	require.NoError(t, err)
	_, err = g.AddFloe(&floe.Floe{Mass: 1, Inertia: 0.5, Position: vec.Vec2{X: 2}})
	require.NoError(t, err)
	require.NoError(t, g.AddContact(&contact.Contact{
		N1: 0, N2: 1,
		Point:  vec.Vec2{X: 1},
		Normal: vec.Vec2{X: 1},
		Mu:     0.3,
	}))
	sub := g.CollisionSubgraphs()[0]

	s, err := solver.New()
	require.NoError(t, err)
	res, err := s.SolveGraph(sub)
	require.NoError(t, err)
	require.True(t, res.Success)

	// Energy never grows past the accepted tier's bound.
	pre := 0.5 * (1*1 + 0.5*0.5)
	var post float64
	for v := 0; v < 2; v++ {
		vx, vy, om := res.Solc[3*v], res.Solc[3*v+1], res.Solc[3*v+2]
		post += 0.5 * (1*(vx*vx+vy*vy) + 0.5*om*om)
	}
	assert.LessOrEqual(t, post, pre*(1+1e-2)+1e-9)
}
