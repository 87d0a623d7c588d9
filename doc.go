// Package icefloe resolves collisions in a 2D granular medium of rigid
// bodies ("floes") by solving frictional-contact Linear Complementarity
// Problems over a contact graph.
//
// 🚀 What is icefloe?
//
//	A deterministic collision-resolution core that brings together:
//		• Rigid-body records: mass, inertia, velocities, impulse tally
//		• Contact graphs: floes as vertices, contact lists on edges
//		• Sub-graph machinery: components, activity filtering, quad-cut
//		• LCP assembly: mass matrix, Jacobians, the frictional template
//		• Pivot solvers: Lemke, lexicographic Lemke, warm-started PGS
//		• A strategy cascade with tiered physical acceptance tests
//		• A scheduler driving every component to a separated fixed point
//
// ✨ Why choose icefloe?
//
//   - Deterministic – fixed enumerations, seeded perturbations, replayable runs
//   - Physical – energy bounds and normal-velocity tests gate every solution
//   - Robust – three pivoting strategies and a perturbation ladder per LCP
//   - Observable – per-attempt and per-episode records, success statistics
//
// Under the hood, everything is organized in small subpackages:
//
//	floe/     — rigid-body state and kinematic helpers
//	contact/  — contact graph, sub-graphs, solved-flag ledger
//	matrix/   — dense row-major matrices and the kernels the solvers need
//	lcp/      — the complementarity problem and its pivot solvers
//	builder/  — graph to LCP assembly, solution recovery
//	solver/   — the strategy cascade and acceptance oracle
//	manager/  — the episode scheduler, writeback and statistics
//
// Typical usage:
//
//	g := contact.NewGraph()
//	a, _ := g.AddFloe(&floe.Floe{Mass: 1, Inertia: 1, Velocity: vec.Vec2{X: 1}})
//	b, _ := g.AddFloe(&floe.Floe{Mass: 1, Inertia: 1, Position: vec.Vec2{X: 2}})
//	_ = g.AddContact(&contact.Contact{
//		N1: a, N2: b,
//		Point:  vec.Vec2{X: 1},
//		Normal: vec.Vec2{X: 1},
//	})
//	m, _ := manager.New()
//	solved, _ := m.SolveContacts(g)
//
// After SolveContacts the floes carry post-collision velocities and
// accumulated normal impulses; the graph's ledger reports which contacts
// were solved.
package icefloe
