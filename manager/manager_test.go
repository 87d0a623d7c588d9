package manager_test

import (
	"testing"

	"github.com/setanarut/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/icefloe/contact"
	"github.com/katalvlaran/icefloe/floe"
	"github.com/katalvlaran/icefloe/manager"
	"github.com/katalvlaran/icefloe/solver"
)

// buildPair creates two unit disks closing head-on with restitution e.
func buildPair(t *testing.T, e float64) *contact.Graph {
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

	return g
}

// buildCradle creates n resting disks in a row with an elastic strike on
// the first one.
func buildCradle(t *testing.T, n int) *contact.Graph {
	t.Helper()
	g := contact.NewGraph(contact.WithFloeCapacity(n))
	for i := 0; i < n; i++ {
		f := &floe.Floe{Mass: 1, Inertia: 1, Position: vec.Vec2{X: 2 * float64(i)}}
		if i == 0 {
			f.Velocity = vec.Vec2{X: 1}
		}
		_, err := g.AddFloe(f)
		require.NoError(t, err)
	}
	for i := 0; i < n-1; i++ {
		require.NoError(t, g.AddContact(&contact.Contact{
			N1: i, N2: i + 1,
			Point:       vec.Vec2{X: 2*float64(i) + 1},
			Normal:      vec.Vec2{X: 1},
			Restitution: 1,
		}))
	}

	return g
}

func TestNew_Defaults(t *testing.T) {
	m, err := manager.New()
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestNew_NilOption(t *testing.T) {
	_, err := manager.New(nil)
	assert.ErrorIs(t, err, manager.ErrNilOption)
}

func TestNew_BadWorkerCount(t *testing.T) {
	_, err := manager.New(manager.WithParallel(0))
	assert.ErrorIs(t, err, manager.ErrNonPositiveWorkers)
}

func TestSolveContacts_NilGraph(t *testing.T) {
	m, err := manager.New()
	require.NoError(t, err)
	_, err = m.SolveContacts(nil)
	assert.ErrorIs(t, err, manager.ErrNilGraph)
}

func TestSolveContacts_EmptyGraph(t *testing.T) {
	m, err := manager.New()
	require.NoError(t, err)
	solved, err := m.SolveContacts(contact.NewGraph())
	require.NoError(t, err)
	assert.Zero(t, solved)
}

func TestSolveContacts_InelasticPair(t *testing.T) {
	g := buildPair(t, 0)
	m, err := manager.New()
	require.NoError(t, err)

	solved, err := m.SolveContacts(g)
	require.NoError(t, err)
	assert.Equal(t, 1, solved)

	// Both disks stop and each absorbs the unit normal impulse.
	for v := 0; v < 2; v++ {
		f := g.Floe(v)
		assert.InDelta(t, 0, f.Velocity.X, 1e-9)
		assert.InDelta(t, 0, f.Velocity.Y, 1e-9)
		assert.InDelta(t, 0, f.Omega, 1e-9)
		assert.InDelta(t, 1, f.Impulse, 1e-9)
	}

	// The contact is flagged solved.
	ct := g.CollisionSubgraphs()[0].Contacts()[0]
	assert.True(t, g.Ledger().Solved(ct.ID))

	st := m.Stats()
	assert.EqualValues(t, 1, st.Attempted)
	assert.EqualValues(t, 1, st.Succeeded)
	assert.EqualValues(t, 1, st.Episodes)
	assert.InDelta(t, 100, st.SuccessRatio(), 1e-12)
}

func TestSolveContacts_ElasticCradlePropagates(t *testing.T) {
	g := buildCradle(t, 3)
	m, err := manager.New()
	require.NoError(t, err)

	solved, err := m.SolveContacts(g)
	require.NoError(t, err)
	assert.Equal(t, 2, solved)

	// The strike travels down the row: only the last disk moves.
	assert.InDelta(t, 0, g.Floe(0).Velocity.X, 1e-9)
	assert.InDelta(t, 0, g.Floe(1).Velocity.X, 1e-9)
	assert.InDelta(t, 1, g.Floe(2).Velocity.X, 1e-9)
}

func TestSolveContacts_TwoComponents(t *testing.T) {
	g := contact.NewGraph()
	for i := 0; i < 4; i++ {
		vx := 0.0
		if i%2 == 0 {
			vx = 1
		} else {
			vx = -1
		}
		_, err := g.AddFloe(&floe.Floe{
			Mass: 1, Inertia: 1,
			Position: vec.Vec2{X: 3 * float64(i)},
			Velocity: vec.Vec2{X: vx},
		})
		require.NoError(t, err)
	}
	require.NoError(t, g.AddContact(&contact.Contact{N1: 0, N2: 1, Point: vec.Vec2{X: 1.5}, Normal: vec.Vec2{X: 1}}))
	require.NoError(t, g.AddContact(&contact.Contact{N1: 2, N2: 3, Point: vec.Vec2{X: 7.5}, Normal: vec.Vec2{X: 1}}))

	m, err := manager.New()
	require.NoError(t, err)
	solved, err := m.SolveContacts(g)
	require.NoError(t, err)
	assert.Equal(t, 2, solved)
	for v := 0; v < 4; v++ {
		assert.InDelta(t, 0, g.Floe(v).Velocity.X, 1e-9, "floe %d", v)
	}
}

func TestSolveContacts_ParallelMatchesSerial(t *testing.T) {
	serial := buildPair(t, 0.5)
	pooled := buildPair(t, 0.5)

	ms, err := manager.New()
	require.NoError(t, err)
	mp, err := manager.New(manager.WithParallel(4))
	require.NoError(t, err)

	_, err = ms.SolveContacts(serial)
	require.NoError(t, err)
	_, err = mp.SolveContacts(pooled)
	require.NoError(t, err)

	for v := 0; v < 2; v++ {
		assert.InDelta(t, serial.Floe(v).Velocity.X, pooled.Floe(v).Velocity.X, 1e-12)
	}
}

func TestSolveContacts_SeparatedGraphNeedsNoSolve(t *testing.T) {
	g := buildPair(t, 0)
	// Reverse the velocities: bodies separate, nothing is active.
	g.Floe(0).Velocity = vec.Vec2{X: -1}
	g.Floe(1).Velocity = vec.Vec2{X: 1}

	m, err := manager.New()
	require.NoError(t, err)
	solved, err := m.SolveContacts(g)
	require.NoError(t, err)
	assert.Zero(t, solved)
	assert.EqualValues(t, 0, m.Stats().Attempted)
}

func TestSolveContacts_RecorderReceivesEpisode(t *testing.T) {
	rec := manager.NewMemoryRecorder(16)
	m, err := manager.New(manager.WithRecorder(rec))
	require.NoError(t, err)

	_, err = m.SolveContacts(buildPair(t, 0))
	require.NoError(t, err)

	eps := rec.Episodes()
	require.Len(t, eps, 1)
	assert.Equal(t, 1, eps[0].Components)
	assert.Equal(t, 1, eps[0].Contacts)
	assert.Equal(t, 1, eps[0].Solved)
	assert.Zero(t, eps[0].Unsolved)

	atts := rec.Attempts()
	require.NotEmpty(t, atts)
	assert.True(t, atts[0].Accepted)
}

func TestSolveContacts_WithoutDecomposition(t *testing.T) {
	g := buildPair(t, 0)
	m, err := manager.New(manager.WithoutDecomposition())
	require.NoError(t, err)
	solved, err := m.SolveContacts(g)
	require.NoError(t, err)
	assert.Equal(t, 1, solved)
}

func TestStats_SuccessRatioEmpty(t *testing.T) {
	var st manager.Stats
	assert.InDelta(t, 100, st.SuccessRatio(), 1e-12)
}

func TestStats_SuccessRatioPartial(t *testing.T) {
	st := manager.Stats{Attempted: 4, Succeeded: 3}
	assert.InDelta(t, 75, st.SuccessRatio(), 1e-12)
}

func TestMemoryRecorder_EvictsOldest(t *testing.T) {
	rec := manager.NewMemoryRecorder(2)
	for i := 0; i < 3; i++ {
		rec.RecordAttempt(solver.Attempt{Dim: i})
	}
	atts := rec.Attempts()
	require.Len(t, atts, 2)
	assert.Equal(t, 1, atts[0].Dim)
	assert.Equal(t, 2, atts[1].Dim)
}

func TestMemoryRecorder_DefaultCapacity(t *testing.T) {
	rec := manager.NewMemoryRecorder(0)
	rec.RecordEpisode(manager.Episode{Contacts: 1})
	assert.Len(t, rec.Episodes(), 1)
}
