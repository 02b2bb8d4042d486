// Package match finds groups of same-kind balls that touch each other.
package match

import (
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/plus3/marbles/board"
)

// Neighbors is the contact relation for the current tick.
type Neighbors interface {
	NeighborsOf(id board.BallId) []board.BallId
}

// Kinds resolves the kind of alive balls.
type Kinds interface {
	Kind(id board.BallId) (board.Kind, bool)
}

// Board is the view of the board needed to search every alive ball.
type Board interface {
	Kinds
	AliveIds() []board.BallId
}

// Group is a set of touching balls of one kind, sorted by id.
type Group []board.BallId

// Size returns the number of balls in the group.
func (g Group) Size() int {
	return len(g)
}

// Contains reports whether id is part of the group.
func (g Group) Contains(id board.BallId) bool {
	_, found := slices.BinarySearch(g, id)
	return found
}

// GroupFrom returns every ball reachable from seed through contacts between
// balls of the seed's kind, including the seed itself. An unknown or removed
// seed yields an empty group.
func GroupFrom(seed board.BallId, graph Neighbors, kinds Kinds) Group {
	visited := intmap.New[board.BallId, struct{}](16)
	return groupFrom(seed, graph, kinds, visited)
}

// groupFrom runs the traversal, recording every member in visited.
func groupFrom(seed board.BallId, graph Neighbors, kinds Kinds, visited *intmap.Map[board.BallId, struct{}]) Group {
	kind, ok := kinds.Kind(seed)
	if !ok {
		return nil
	}

	group := Group{seed}
	visited.Put(seed, struct{}{})
	stack := []board.BallId{seed}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, next := range graph.NeighborsOf(current) {
			if visited.Has(next) {
				continue
			}
			if k, ok := kinds.Kind(next); !ok || k != kind {
				continue
			}
			visited.Put(next, struct{}{})
			group = append(group, next)
			stack = append(stack, next)
		}
	}

	slices.Sort(group)
	return group
}

// HasAnyGroupOfAtLeast reports whether any alive ball belongs to a group of
// at least k balls. Balls already assigned to a group are not searched again.
func HasAnyGroupOfAtLeast(k int, b Board, graph Neighbors) bool {
	if k <= 1 {
		return len(b.AliveIds()) > 0
	}

	assigned := intmap.New[board.BallId, struct{}](64)
	for _, id := range b.AliveIds() {
		if assigned.Has(id) {
			continue
		}
		if groupFrom(id, graph, b, assigned).Size() >= k {
			return true
		}
	}
	return false
}

// Groups partitions all alive balls into their groups, largest first.
// Groups of equal size are ordered by their smallest id.
func Groups(b Board, graph Neighbors) []Group {
	assigned := intmap.New[board.BallId, struct{}](64)
	groups := make([]Group, 0)

	for _, id := range b.AliveIds() {
		if assigned.Has(id) {
			continue
		}
		groups = append(groups, groupFrom(id, graph, b, assigned))
	}

	slices.SortStableFunc(groups, func(a, b Group) int {
		return b.Size() - a.Size()
	})
	return groups
}
