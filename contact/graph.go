// Package contact adapts the physics engine's per-step contact report into a
// graph that can be queried for the current tick only.
package contact

import (
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/plus3/marbles/board"
)

// Pair is one touching pair reported by the physics engine. Order does not matter.
type Pair struct {
	A, B board.BallId
}

// Reporter is implemented by physics engines that can report the bodies
// touching each other after a step.
type Reporter interface {
	Contacts() []Pair
}

// Liveness tells the graph which balls are still on the board.
type Liveness interface {
	IsAlive(id board.BallId) bool
}

// Graph is the symmetric contact relation for a single tick.
type Graph struct {
	adjacency *intmap.Map[board.BallId, []board.BallId]
	live      Liveness
	edges     int
}

// Empty returns a graph without any contacts.
func Empty() *Graph {
	return &Graph{
		adjacency: intmap.New[board.BallId, []board.BallId](0),
	}
}

// Build creates the contact graph for the current tick. Self contacts,
// duplicate pairs and pairs involving balls that are not alive are dropped.
func Build(pairs []Pair, live Liveness) *Graph {
	g := &Graph{
		adjacency: intmap.New[board.BallId, []board.BallId](len(pairs)),
		live:      live,
	}

	for _, p := range pairs {
		if p.A == p.B {
			continue
		}
		if live != nil && (!live.IsAlive(p.A) || !live.IsAlive(p.B)) {
			continue
		}
		if g.link(p.A, p.B) {
			g.link(p.B, p.A)
			g.edges++
		}
	}

	return g
}

// link adds b to the neighbors of a, keeping the list sorted.
// Returns false if the edge already existed.
func (g *Graph) link(a, b board.BallId) bool {
	neighbors, _ := g.adjacency.Get(a)
	pos, found := slices.BinarySearch(neighbors, b)
	if found {
		return false
	}
	g.adjacency.Put(a, slices.Insert(neighbors, pos, b))
	return true
}

// NeighborsOf returns the balls touching id this tick, in ascending order.
// Balls removed from the board after the graph was built are left out.
func (g *Graph) NeighborsOf(id board.BallId) []board.BallId {
	if g.live != nil && !g.live.IsAlive(id) {
		return nil
	}

	neighbors, ok := g.adjacency.Get(id)
	if !ok {
		return nil
	}

	if g.live == nil {
		return slices.Clone(neighbors)
	}

	result := make([]board.BallId, 0, len(neighbors))
	for _, n := range neighbors {
		if g.live.IsAlive(n) {
			result = append(result, n)
		}
	}
	return result
}

// Touching reports whether a and b are in contact this tick.
func (g *Graph) Touching(a, b board.BallId) bool {
	return slices.Contains(g.NeighborsOf(a), b)
}

// Edges returns the number of distinct contacts recorded when the graph was built.
func (g *Graph) Edges() int {
	return g.edges
}
