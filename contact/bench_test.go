package contact_test

import (
	"testing"

	"github.com/setanarut/vec"

	"github.com/katalvlaran/icefloe/contact"
	"github.com/katalvlaran/icefloe/floe"
)

// benchChain builds an n-disk chain in which every even-indexed disk moves
// right into its resting neighbor, so every other pair is closing.
func benchChain(b *testing.B, n int) *contact.Graph {
	b.Helper()
	g := contact.NewGraph(contact.WithFloeCapacity(n))
	for i := 0; i < n; i++ {
		vx := 0.0
		if i%2 == 0 {
			vx = 1
		}
		if _, err := g.AddFloe(&floe.Floe{
			Mass: 1, Inertia: 1,
			Position: vec.Vec2{X: 2 * float64(i)},
			Velocity: vec.Vec2{X: vx},
		}); err != nil {
			b.Fatal(err)
		}
	}
	for i := 0; i < n-1; i++ {
		if err := g.AddContact(&contact.Contact{
			N1: i, N2: i + 1,
			Point:  vec.Vec2{X: 2*float64(i) + 1},
			Normal: vec.Vec2{X: 1},
		}); err != nil {
			b.Fatal(err)
		}
	}

	return g
}

func BenchmarkCollisionSubgraphs(b *testing.B) {
	g := benchChain(b, 200)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if subs := g.CollisionSubgraphs(); len(subs) == 0 {
			b.Fatal("no components")
		}
	}
}

func BenchmarkActiveSubgraphs(b *testing.B) {
	g := benchChain(b, 200)
	sub := g.CollisionSubgraphs()[0]
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if active := sub.ActiveSubgraphs(); len(active) == 0 {
			b.Fatal("no active sub-graphs")
		}
	}
}

func BenchmarkQuadCut(b *testing.B) {
	g := benchChain(b, 200)
	sub := g.CollisionSubgraphs()[0]
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if quads := sub.QuadCut(); len(quads) == 0 {
			b.Fatal("no quadrants")
		}
	}
}