// Package board owns the balls of a round: their layout, positions and removal.
//
// A Board is not safe for concurrent use.
package board

import (
	"iter"
	"math/rand/v2"
	"slices"

	"github.com/kamstrup/intmap"
)

// Board holds every ball of a round. Removed balls are dropped from the live
// set and their ids are never handed out again.
type Board struct {
	storage ballStorage
	index   *intmap.Map[BallId, int]
	lastId  BallId
}

// New creates an empty board.
func New() *Board {
	return &Board{
		index: intmap.New[BallId, int](256),
	}
}

// Layout tiles bounds with balls spaced by ballSize and gives each one a kind
// drawn uniformly from kinds. Centers start half a ball inside bounds.Min and
// stay strictly below bounds.Max minus half a ball. The same rng seed always
// produces the same board.
func (b *Board) Layout(bounds Rect, ballSize float64, kinds []Kind, rng *rand.Rand) []BallId {
	if ballSize <= 0 || len(kinds) == 0 {
		return nil
	}

	radius := ballSize / 2
	ids := make([]BallId, 0)

	for x := bounds.Min.X + radius; x < bounds.Max.X-radius; x += ballSize {
		for y := bounds.Min.Y + radius; y < bounds.Max.Y-radius; y += ballSize {
			kind := kinds[rng.IntN(len(kinds))]
			ids = append(ids, b.Spawn(kind, Vec2{X: x, Y: y}))
		}
	}

	return ids
}

// Spawn adds a single ball and returns its id.
func (b *Board) Spawn(kind Kind, pos Vec2) BallId {
	b.lastId++
	id := b.lastId

	slot := b.storage.append(Ball{
		Id:       id,
		Kind:     kind,
		Position: pos,
		Alive:    true,
	})
	b.index.Put(id, slot)
	return id
}

// Remove drops the given balls from the live set and returns how many were
// removed. Ids that are unknown or already removed are ignored, so removing
// the same ids twice leaves the board as removing them once.
func (b *Board) Remove(ids ...BallId) int {
	removed := 0
	for _, id := range ids {
		slot, ok := b.index.Get(id)
		if !ok {
			continue
		}
		if b.storage.delete(slot) {
			removed++
		}
		b.index.Del(id)
	}

	if b.storage.empty > ballBlockSize && b.storage.empty > b.storage.len() {
		b.compact()
	}
	return removed
}

func (b *Board) compact() {
	for id, slot := range b.storage.compact() {
		b.index.Put(id, slot)
	}
}

// Get returns the ball with the given id if it is alive.
func (b *Board) Get(id BallId) (Ball, bool) {
	ball := b.lookup(id)
	if ball == nil {
		return Ball{}, false
	}
	return *ball, true
}

// IsAlive reports whether id refers to a ball still on the board.
func (b *Board) IsAlive(id BallId) bool {
	return b.index.Has(id)
}

// Kind returns the kind of an alive ball.
func (b *Board) Kind(id BallId) (Kind, bool) {
	ball := b.lookup(id)
	if ball == nil {
		return 0, false
	}
	return ball.Kind, true
}

// Move updates the position of an alive ball. Returns false if the ball is gone.
func (b *Board) Move(id BallId, pos Vec2) bool {
	ball := b.lookup(id)
	if ball == nil {
		return false
	}
	ball.Position = pos
	return true
}

// Len returns the number of alive balls.
func (b *Board) Len() int {
	return b.storage.len()
}

// Alive iterates over a copy of every alive ball in spawn order.
func (b *Board) Alive() iter.Seq[Ball] {
	return func(yield func(Ball) bool) {
		for ball := range b.storage.iter() {
			if !yield(*ball) {
				return
			}
		}
	}
}

// AliveIds returns the ids of all alive balls in ascending order.
func (b *Board) AliveIds() []BallId {
	ids := make([]BallId, 0, b.storage.len())
	for ball := range b.storage.iter() {
		ids = append(ids, ball.Id)
	}
	slices.Sort(ids)
	return ids
}

// HitTest returns the topmost alive ball whose center lies within radius of pos.
// Later spawned balls are drawn above earlier ones.
func (b *Board) HitTest(pos Vec2, radius float64) (BallId, bool) {
	limit := radius * radius
	for ball := range b.storage.backward() {
		d := ball.Position.Sub(pos)
		if d.Dot(d) <= limit {
			return ball.Id, true
		}
	}
	return 0, false
}

func (b *Board) lookup(id BallId) *Ball {
	slot, ok := b.index.Get(id)
	if !ok {
		return nil
	}
	return b.storage.get(slot)
}
