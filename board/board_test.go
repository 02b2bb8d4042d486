package board_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/marbles/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestLayout(t *testing.T) {
	bounds := board.Rect{Min: board.Vec2{X: 0, Y: 0}, Max: board.Vec2{X: 100, Y: 60}}

	t.Run("tiles the bounds", func(t *testing.T) {
		b := board.New()
		ids := b.Layout(bounds, 20, board.AllKinds, seeded(1))

		// centers at x = 10,30,50,70 and y = 10,30
		assert.Len(t, ids, 8)
		assert.Equal(t, 8, b.Len())

		cells := make(map[[2]int]board.BallId)
		for ball := range b.Alive() {
			cell := [2]int{int(ball.Position.X / 20), int(ball.Position.Y / 20)}
			_, taken := cells[cell]
			assert.False(t, taken, "two balls in cell %v", cell)
			cells[cell] = ball.Id

			assert.True(t, ball.Alive)
			assert.Contains(t, board.AllKinds, ball.Kind)
		}
	})

	t.Run("deterministic for a seed", func(t *testing.T) {
		first := board.New()
		first.Layout(bounds, 20, board.AllKinds, seeded(42))
		second := board.New()
		second.Layout(bounds, 20, board.AllKinds, seeded(42))

		var a, b []board.Ball
		for ball := range first.Alive() {
			a = append(a, ball)
		}
		for ball := range second.Alive() {
			b = append(b, ball)
		}
		assert.Equal(t, a, b)
	})

	t.Run("restricted kind set", func(t *testing.T) {
		b := board.New()
		b.Layout(bounds, 20, []board.Kind{board.Red}, seeded(3))
		for ball := range b.Alive() {
			assert.Equal(t, board.Red, ball.Kind)
		}
	})

	t.Run("nothing to lay out", func(t *testing.T) {
		b := board.New()
		assert.Empty(t, b.Layout(bounds, 20, nil, seeded(1)))
		assert.Empty(t, b.Layout(bounds, 0, board.AllKinds, seeded(1)))
		assert.Equal(t, 0, b.Len())
	})
}

func TestRemove(t *testing.T) {
	t.Run("removes from the live set", func(t *testing.T) {
		b := board.New()
		a := b.Spawn(board.Red, board.Vec2{X: 1})
		c := b.Spawn(board.Blue, board.Vec2{X: 2})

		assert.Equal(t, 1, b.Remove(a))
		assert.False(t, b.IsAlive(a))
		assert.True(t, b.IsAlive(c))

		_, ok := b.Get(a)
		assert.False(t, ok)
		_, ok = b.Kind(a)
		assert.False(t, ok)
		assert.Equal(t, []board.BallId{c}, b.AliveIds())
	})

	t.Run("idempotent", func(t *testing.T) {
		once := board.New()
		twice := board.New()
		for _, b := range []*board.Board{once, twice} {
			for i := range 5 {
				b.Spawn(board.Kind(i%3), board.Vec2{X: float64(i)})
			}
		}

		ids := []board.BallId{2, 4}
		once.Remove(ids...)
		twice.Remove(ids...)
		assert.Equal(t, 0, twice.Remove(ids...))

		assert.Equal(t, once.AliveIds(), twice.AliveIds())
		assert.Equal(t, once.Len(), twice.Len())
	})

	t.Run("unknown ids are ignored", func(t *testing.T) {
		b := board.New()
		b.Spawn(board.Red, board.Vec2{})
		assert.Equal(t, 0, b.Remove(0, 99))
		assert.Equal(t, 1, b.Len())
	})

	t.Run("ids are never reused", func(t *testing.T) {
		b := board.New()
		first := b.Spawn(board.Red, board.Vec2{})
		b.Remove(first)
		second := b.Spawn(board.Red, board.Vec2{})
		assert.NotEqual(t, first, second)
		assert.False(t, b.IsAlive(first))
	})

	t.Run("survives compaction", func(t *testing.T) {
		b := board.New()
		ids := make([]board.BallId, 0, 300)
		for i := range 300 {
			ids = append(ids, b.Spawn(board.Kind(i%7), board.Vec2{X: float64(i)}))
		}

		// removing most balls triggers a compaction of the storage
		b.Remove(ids[:250]...)
		require.Equal(t, 50, b.Len())

		for i, id := range ids[250:] {
			ball, ok := b.Get(id)
			require.True(t, ok)
			assert.Equal(t, float64(250+i), ball.Position.X)
			assert.Equal(t, board.Kind((250+i)%7), ball.Kind)
		}
		assert.Equal(t, ids[250:], b.AliveIds())
	})
}

func TestMoveAndHitTest(t *testing.T) {
	b := board.New()
	low := b.Spawn(board.Red, board.Vec2{X: 10, Y: 10})
	high := b.Spawn(board.Blue, board.Vec2{X: 12, Y: 10})

	id, ok := b.HitTest(board.Vec2{X: 11, Y: 10}, 5)
	require.True(t, ok)
	assert.Equal(t, high, id, "later balls are on top")

	b.Remove(high)
	id, ok = b.HitTest(board.Vec2{X: 11, Y: 10}, 5)
	require.True(t, ok)
	assert.Equal(t, low, id)

	assert.True(t, b.Move(low, board.Vec2{X: 50, Y: 50}))
	_, ok = b.HitTest(board.Vec2{X: 11, Y: 10}, 5)
	assert.False(t, ok)

	assert.False(t, b.Move(high, board.Vec2{}))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "red", board.Red.String())
	assert.Equal(t, "yellow", board.Yellow.String())
	assert.Equal(t, "unknown", board.Kind(200).String())
}
