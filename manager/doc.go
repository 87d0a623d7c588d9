// Package manager schedules contact solving over a whole collision graph.
//
// SolveContacts splits the graph into connected components, then drives
// each component to a fixed point: while some contact is still closing,
// the active sub-graphs are solved, velocities written back, and activity
// recomputed from the new velocities. Sub-graphs beyond the quad-cut
// threshold are split spatially into four quadrants before solving so the
// matrices stay bounded; the outer loop re-couples the quadrants on the
// next pass.
//
// The loop is bounded twice: an iteration cap of min(60·contacts, 1000)
// per component, and a progress guard that exits as soon as one full pass
// yields no accepted solve. Contacts still active when a component gives
// up are marked unsolved through the shared ledger.
//
// Components are disjoint by construction, so WithParallel distributes
// them over a worker pool with one solver per worker and no locking on
// floes. Within a component the loop is serial; every solve changes the
// velocities that define the next activity pattern.
//
// Statistics accumulate across calls: attempted and succeeded LCPs,
// failures split by compression phase, tier-3 acceptances, loop counts.
// A Recorder receives per-attempt and per-episode records for offline
// inspection.
package manager
