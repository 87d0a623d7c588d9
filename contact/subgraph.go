// Package contact: sub-graph views and the three scheduler operations
// (connected components, activity-induced components, spatial quad cut).
package contact

import (
	"sort"

	"github.com/katalvlaran/icefloe/floe"
)

// Subgraph is a connected view over a parent Graph: a subset of vertices
// and the edges joining them. Floe handles are shared with the parent, so
// velocity writeback through a sub-graph is observed by every other view.
type Subgraph struct {
	parent  *Graph
	verts   []int       // ascending parent vertex indices
	index   map[int]int // parent vertex index -> local enumeration
	edges   []*Edge     // sorted by (U, V); contact lists keep insertion order
	changed map[int]bool
}

// newSubgraph assembles a view from a fixed edge set. Vertices are the
// sorted endpoints of the edges; edges are sorted by unordered pair so the
// enumeration is stable regardless of discovery order.
func newSubgraph(g *Graph, edges []*Edge) *Subgraph {
	// 1. Collect distinct endpoints
	seen := make(map[int]bool, 2*len(edges))
	for _, e := range edges {
		seen[e.U] = true
		seen[e.V] = true
	}
	verts := make([]int, 0, len(seen))
	for v := range seen {
		verts = append(verts, v)
	}
	sort.Ints(verts)

	// 2. Local enumeration in ascending parent order
	index := make(map[int]int, len(verts))
	for i, v := range verts {
		index[v] = i
	}

	// 3. Stable edge order
	sorted := make([]*Edge, len(edges))
	copy(sorted, edges)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].U != sorted[j].U {
			return sorted[i].U < sorted[j].U
		}

		return sorted[i].V < sorted[j].V
	})

	return &Subgraph{
		parent:  g,
		verts:   verts,
		index:   index,
		edges:   sorted,
		changed: make(map[int]bool),
	}
}

// Parent returns the owning episode graph.
func (s *Subgraph) Parent() *Graph { return s.parent }

// Vertices returns the parent vertex indices of the view in ascending order.
func (s *Subgraph) Vertices() []int {
	out := make([]int, len(s.verts))
	copy(out, s.verts)

	return out
}

// NumFloes returns the number of vertices in the view.
func (s *Subgraph) NumFloes() int { return len(s.verts) }

// Floes returns the floe handles of the view in local enumeration order.
func (s *Subgraph) Floes() []*floe.Floe {
	out := make([]*floe.Floe, len(s.verts))
	for i, v := range s.verts {
		out[i] = s.parent.Floe(v)
	}

	return out
}

// LocalIndex maps a parent vertex index to the view's local enumeration.
func (s *Subgraph) LocalIndex(v int) (int, bool) {
	i, ok := s.index[v]

	return i, ok
}

// Edges returns the edge views in stable (U, V) order.
func (s *Subgraph) Edges() []*Edge { return s.edges }

// NumContacts returns the number of contacts in the view.
// Complexity: O(E).
func (s *Subgraph) NumContacts() int {
	total := 0
	for _, e := range s.edges {
		total += len(e.Contacts)
	}

	return total
}

// Contacts returns the contacts of the view in edge-then-list order, the
// stable enumeration the LCP builder indexes columns by.
func (s *Subgraph) Contacts() []*Contact {
	out := make([]*Contact, 0, s.NumContacts())
	for _, e := range s.edges {
		out = append(out, e.Contacts...)
	}

	return out
}

// MarkSolved sets the ledger status of every contact in the view.
func (s *Subgraph) MarkSolved(solved bool) {
	for _, e := range s.edges {
		for _, c := range e.Contacts {
			s.parent.ledger.MarkSolved(c.ID, solved)
		}
	}
}

// MarkChangedFrom records on s the floes another view has just mutated.
// The scheduler flags each solved sub-graph on its parent component;
// ChangedFloes reports the accumulated set. ActiveSubgraphs does not read
// it and re-evaluates every contact.
func (s *Subgraph) MarkChangedFrom(child *Subgraph) {
	for _, v := range child.verts {
		s.changed[v] = true
	}
}

// ChangedFloes returns the parent vertex indices flagged through
// MarkChangedFrom, in ascending order.
func (s *Subgraph) ChangedFloes() []int {
	out := make([]int, 0, len(s.changed))
	for v := range s.changed {
		out = append(out, v)
	}
	sort.Ints(out)

	return out
}

// CollisionSubgraphs returns the connected components of the episode graph
// that carry at least one edge, in deterministic order: components are
// discovered by recursive DFS starting from the lowest unvisited vertex
// index, neighbors visited in ascending order.
// Complexity: O(V + E) plus sorting of adjacency lists.
func (g *Graph) CollisionSubgraphs() []*Subgraph {
	g.mu.RLock()
	edges := make([]*Edge, len(g.edges))
	copy(edges, g.edges)
	n := len(g.floes)
	g.mu.RUnlock()

	return components(g, n, edges)
}

// ActiveSubgraphs returns the connected components induced by the edges of
// s whose bodies are still approaching: at least one contact with relative
// normal velocity below ActiveVelocityThreshold. Kept edges keep their full
// contact lists. The result is empty once every contact separates or
// slides tangentially, which is the scheduler's fixed point.
// Complexity: O(V + C) with C the contact count.
func (s *Subgraph) ActiveSubgraphs() []*Subgraph {
	// 1. Edge-level activity filter with current velocities
	active := make([]*Edge, 0, len(s.edges))
	for _, e := range s.edges {
		for _, c := range e.Contacts {
			if s.parent.RelativeNormalVelocity(c) < ActiveVelocityThreshold {
				active = append(active, e)

				break
			}
		}
	}

	// 2. Components among the surviving edges
	return components(s.parent, s.parent.NumFloes(), active)
}

// QuadCut splits an oversized sub-graph into up to QuadrantCount views by
// partitioning its contact points spatially around their centroid. Each
// quadrant keeps only its own contacts; the outer scheduler loop re-couples
// the pieces through ActiveSubgraphs on the next iteration.
// Complexity: O(C) with C the contact count.
func (s *Subgraph) QuadCut() []*Subgraph {
	all := s.Contacts()
	if len(all) == 0 {
		return nil
	}

	// 1. Centroid of the contact cloud
	var cx, cy float64
	for _, c := range all {
		cx += c.Point.X
		cy += c.Point.Y
	}
	cx /= float64(len(all))
	cy /= float64(len(all))

	// 2. Bucket contacts by quadrant, preserving enumeration order
	buckets := make([][]*Contact, QuadrantCount)
	for _, c := range all {
		q := 0
		if c.Point.X < cx {
			q++
		}
		if c.Point.Y < cy {
			q += 2
		}
		buckets[q] = append(buckets[q], c)
	}

	// 3. One view per non-empty quadrant
	out := make([]*Subgraph, 0, QuadrantCount)
	for _, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		out = append(out, newSubgraph(s.parent, regroup(bucket)))
	}

	return out
}

// regroup folds a flat contact list back into per-pair edges, keeping the
// relative order of contacts inside each pair.
func regroup(contacts []*Contact) []*Edge {
	pairs := make(map[pairKey]int)
	edges := make([]*Edge, 0, len(contacts))
	for _, c := range contacts {
		key := pairKey{lo: c.N1, hi: c.N2}
		if key.lo > key.hi {
			key.lo, key.hi = key.hi, key.lo
		}
		idx, ok := pairs[key]
		if !ok {
			idx = len(edges)
			edges = append(edges, &Edge{U: key.lo, V: key.hi})
			pairs[key] = idx
		}
		edges[idx].Contacts = append(edges[idx].Contacts, c)
	}

	return edges
}

// components partitions an edge set into connected-component sub-graphs.
// Determinism: roots are taken in ascending vertex order and the recursive
// walker visits neighbors ascending, so component order and content are
// fixed by the edge set alone.
func components(g *Graph, n int, edges []*Edge) []*Subgraph {
	if len(edges) == 0 {
		return nil
	}

	// 1. Adjacency restricted to the edge set
	adj := make(map[int][]int, 2*len(edges))
	for _, e := range edges {
		adj[e.U] = append(adj[e.U], e.V)
		adj[e.V] = append(adj[e.V], e.U)
	}
	for v := range adj {
		sort.Ints(adj[v])
	}

	// 2. Recursive DFS from the lowest unvisited vertex
	visited := make(map[int]bool, len(adj))
	var walk func(v int, members *[]int)
	walk = func(v int, members *[]int) {
		visited[v] = true
		*members = append(*members, v)
		for _, w := range adj[v] {
			if !visited[w] {
				walk(w, members)
			}
		}
	}

	out := make([]*Subgraph, 0)
	for v := 0; v < n; v++ {
		if adj[v] == nil || visited[v] {
			continue
		}
		var members []int
		walk(v, &members)

		// 3. Induced edges of the component
		inComp := make(map[int]bool, len(members))
		for _, m := range members {
			inComp[m] = true
		}
		compEdges := make([]*Edge, 0, len(members))
		for _, e := range edges {
			if inComp[e.U] && inComp[e.V] {
				compEdges = append(compEdges, e)
			}
		}
		out = append(out, newSubgraph(g, compEdges))
	}

	return out
}
