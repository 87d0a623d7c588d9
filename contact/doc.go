// Package contact models the contact multigraph of one collision episode:
// vertices are floes, edges carry the ordered list of contact points between
// the same pair of bodies.
//
// On top of the container the package provides the three graph operations
// the collision scheduler is built from:
//
//   - CollisionSubgraphs: connected components of the episode graph,
//     produced in a deterministic order (recursive DFS, lowest vertex
//     index first).
//   - ActiveSubgraphs: connected components induced by the edges whose
//     bodies are still approaching (some contact has negative relative
//     normal velocity). Activity is re-evaluated from the floes' current
//     velocities on every call, which is what drives the scheduler's
//     fixed point.
//   - QuadCut: a spatial four-way split of an oversized sub-graph around
//     the centroid of its contact points, bounding LCP sizes.
//
// Solved-state bookkeeping is kept out of the contact records themselves:
// each contact carries a stable ID and a Ledger maps ID to solved status,
// so ghost/mirror copies created by periodic boundaries resolve to the
// same entry without shared mutable flags.
//
// The container is safe for concurrent readers (sync.RWMutex); the
// scheduler owns all mutation within an episode.
//
// Errors:
//
//	ErrNilFloe            - nil floe handle inserted.
//	ErrNilContact         - nil contact inserted.
//	ErrVertexOutOfRange   - contact references an unknown vertex index.
//	ErrSelfContact        - contact joins a floe to itself.
//	ErrZeroNormal         - contact normal has zero length.
package contact
