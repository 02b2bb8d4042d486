package contact_test

import (
	"testing"

	"github.com/plus3/marbles/board"
	"github.com/plus3/marbles/contact"
	"github.com/stretchr/testify/assert"
)

func threeBalls() (*board.Board, board.BallId, board.BallId, board.BallId) {
	b := board.New()
	a := b.Spawn(board.Red, board.Vec2{X: 0})
	c := b.Spawn(board.Red, board.Vec2{X: 1})
	d := b.Spawn(board.Blue, board.Vec2{X: 2})
	return b, a, c, d
}

func TestBuild(t *testing.T) {
	t.Run("symmetric", func(t *testing.T) {
		b, x, y, z := threeBalls()
		g := contact.Build([]contact.Pair{{A: x, B: y}, {A: z, B: y}}, b)

		assert.Equal(t, []board.BallId{y}, g.NeighborsOf(x))
		assert.Equal(t, []board.BallId{x, z}, g.NeighborsOf(y))
		assert.Equal(t, []board.BallId{y}, g.NeighborsOf(z))
		assert.True(t, g.Touching(x, y))
		assert.True(t, g.Touching(y, x))
		assert.False(t, g.Touching(x, z))
		assert.Equal(t, 2, g.Edges())
	})

	t.Run("drops self and duplicate contacts", func(t *testing.T) {
		b, x, y, _ := threeBalls()
		g := contact.Build([]contact.Pair{{A: x, B: x}, {A: x, B: y}, {A: y, B: x}, {A: x, B: y}}, b)

		assert.Equal(t, []board.BallId{y}, g.NeighborsOf(x))
		assert.Equal(t, []board.BallId{x}, g.NeighborsOf(y))
		assert.Equal(t, 1, g.Edges())
	})

	t.Run("drops balls that are not alive", func(t *testing.T) {
		b, x, y, z := threeBalls()
		b.Remove(z)
		g := contact.Build([]contact.Pair{{A: x, B: y}, {A: y, B: z}, {A: x, B: 77}}, b)

		assert.Equal(t, []board.BallId{y}, g.NeighborsOf(x))
		assert.Equal(t, []board.BallId{x}, g.NeighborsOf(y))
		assert.Empty(t, g.NeighborsOf(z))
		assert.Empty(t, g.NeighborsOf(77))
	})

	t.Run("hides balls removed after the build", func(t *testing.T) {
		b, x, y, z := threeBalls()
		g := contact.Build([]contact.Pair{{A: x, B: y}, {A: y, B: z}}, b)

		b.Remove(y)
		assert.Empty(t, g.NeighborsOf(x))
		assert.Empty(t, g.NeighborsOf(y))
		assert.Empty(t, g.NeighborsOf(z))
	})

	t.Run("returned neighbors are a copy", func(t *testing.T) {
		b, x, y, _ := threeBalls()
		g := contact.Build([]contact.Pair{{A: x, B: y}}, b)

		n := g.NeighborsOf(x)
		n[0] = 999
		assert.Equal(t, []board.BallId{y}, g.NeighborsOf(x))
	})
}

func TestEmpty(t *testing.T) {
	g := contact.Empty()
	assert.Empty(t, g.NeighborsOf(1))
	assert.Equal(t, 0, g.Edges())
}
