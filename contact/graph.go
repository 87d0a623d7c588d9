// Package contact: the episode multigraph container.
package contact

import (
	"sync"

	"github.com/katalvlaran/icefloe/floe"
)

// pairKey identifies an unordered vertex pair; first is always the lower index.
type pairKey struct {
	lo, hi int
}

// Edge is the multi-edge between one pair of floes: the ordered list of
// contact points the narrow phase produced for that pair this episode.
// U < V always; individual contacts keep their own orientation via N1/N2.
type Edge struct {
	U, V     int
	Contacts []*Contact
}

// Graph is the contact multigraph of one collision episode. Vertices are
// floe handles, edges carry contact lists. Safe for concurrent readers;
// the scheduler owns mutation within an episode.
type Graph struct {
	mu     sync.RWMutex
	floes  []*floe.Floe
	edges  []*Edge
	pairs  map[pairKey]int // unordered pair -> index into edges
	ledger *Ledger
	nextID int64
}

// NewGraph builds an empty contact graph.
// Stage 1 (Options): apply functional options over defaults.
// Stage 2 (Prepare): allocate vertex slice and pair index.
// Complexity: O(1) plus the capacity hint.
func NewGraph(opts ...Option) *Graph {
	// 1. Apply options
	gopts := DefaultOptions()
	var fn Option
	for _, fn = range opts {
		fn(&gopts)
	}

	// 2. Fresh ledger unless shared
	led := gopts.Ledger
	if led == nil {
		led = NewLedger()
	}

	return &Graph{
		floes:  make([]*floe.Floe, 0, gopts.FloeCapacity),
		edges:  make([]*Edge, 0),
		pairs:  make(map[pairKey]int),
		ledger: led,
		nextID: 1,
	}
}

// AddFloe inserts a floe handle and returns its vertex index.
// Returns ErrNilFloe for a nil handle and floe.ErrNonPositiveMass when the
// body cannot enter a positive-definite mass matrix.
// Complexity: O(1) amortized.
func (g *Graph) AddFloe(f *floe.Floe) (int, error) {
	// 1. Validate handle
	if f == nil {
		return 0, ErrNilFloe
	}
	if err := f.Validate(); err != nil {
		return 0, err
	}

	// 2. Append under write lock
	g.mu.Lock()
	defer g.mu.Unlock()
	g.floes = append(g.floes, f)

	return len(g.floes) - 1, nil
}

// AddContact inserts a contact between two previously added floes.
// A zero ID is replaced by a fresh one; non-zero IDs are kept so ghost
// copies alias the original's ledger entry. Contacts between the same pair
// accumulate on one edge in insertion order.
// Complexity: O(1) amortized.
func (g *Graph) AddContact(c *Contact) error {
	// 1. Validate record
	if c == nil {
		return ErrNilContact
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if c.N1 < 0 || c.N1 >= len(g.floes) || c.N2 < 0 || c.N2 >= len(g.floes) {
		return ErrVertexOutOfRange
	}
	if c.N1 == c.N2 {
		return ErrSelfContact
	}
	if c.Normal.Mag() < NormalTolerance {
		return ErrZeroNormal
	}

	// 2. Assign identity and register with the ledger
	if c.ID == 0 {
		c.ID = g.nextID
		g.nextID++
	}
	g.ledger.Register(c.ID)

	// 3. Attach to the pair's edge, creating it on first contact
	key := pairKey{lo: c.N1, hi: c.N2}
	if key.lo > key.hi {
		key.lo, key.hi = key.hi, key.lo
	}
	idx, ok := g.pairs[key]
	if !ok {
		idx = len(g.edges)
		g.edges = append(g.edges, &Edge{U: key.lo, V: key.hi})
		g.pairs[key] = idx
	}
	g.edges[idx].Contacts = append(g.edges[idx].Contacts, c)

	return nil
}

// NumFloes returns the number of vertices.
func (g *Graph) NumFloes() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.floes)
}

// NumContacts returns the total number of contacts over all edges.
// Complexity: O(E).
func (g *Graph) NumContacts() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	total := 0
	for _, e := range g.edges {
		total += len(e.Contacts)
	}

	return total
}

// Floe returns the floe handle at vertex index v, or nil when out of range.
func (g *Graph) Floe(v int) *floe.Floe {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if v < 0 || v >= len(g.floes) {
		return nil
	}

	return g.floes[v]
}

// Ledger returns the solved-status ledger of the episode.
func (g *Graph) Ledger() *Ledger {
	return g.ledger
}

// RelativeNormalVelocity returns the relative velocity of floe N2 with
// respect to floe N1 projected on the contact normal. Negative values mean
// the bodies are approaching at the contact point.
// Complexity: O(1).
func (g *Graph) RelativeNormalVelocity(c *Contact) float64 {
	g.mu.RLock()
	a, b := g.floes[c.N1], g.floes[c.N2]
	g.mu.RUnlock()

	return c.Normal.Dot(b.VelocityAt(c.Point).Sub(a.VelocityAt(c.Point)))
}
