// Package physics is a small circle physics world used by the hosts. It
// integrates gravity, keeps balls inside a boundary, pushes overlapping balls
// apart and reports which balls touch after each step.
//
// Coordinates are y-up: gravity (0, -9.8) pulls towards Min.Y.
package physics

import (
	"math"

	"github.com/kamstrup/intmap"
	"github.com/plus3/marbles/board"
	"github.com/plus3/marbles/contact"
)

const (
	// Slop is the gap under which two balls still count as touching.
	Slop = 0.5
	// Iterations of the overlap solver per step.
	Iterations = 4
	// MaxStep is the longest time integrated in one sub step.
	MaxStep = 1.0 / 60.0
)

// Body is a ball in the world.
type Body struct {
	Id       board.BallId
	Position board.Vec2
	Velocity board.Vec2
	Radius   float64
}

// World holds the bodies of one round.
type World struct {
	bounds  board.Rect
	gravity board.Vec2
	bodies  []Body
	index   *intmap.Map[board.BallId, int]
	grid    spatialGrid
}

// NewWorld creates a world enclosed by bounds.
func NewWorld(bounds board.Rect) *World {
	return &World{
		bounds:  bounds,
		gravity: board.Vec2{Y: -9.8},
		index:   intmap.New[board.BallId, int](256),
		grid:    newSpatialGrid(),
	}
}

// Populate adds a body of the given radius for every alive ball.
func (w *World) Populate(b *board.Board, radius float64) {
	for ball := range b.Alive() {
		w.Add(ball.Id, ball.Position, radius)
	}
}

// Add inserts a body. Adding an id twice replaces the body.
func (w *World) Add(id board.BallId, pos board.Vec2, radius float64) {
	body := Body{Id: id, Position: pos, Radius: radius}
	if i, ok := w.index.Get(id); ok {
		w.bodies[i] = body
		return
	}
	w.index.Put(id, len(w.bodies))
	w.bodies = append(w.bodies, body)
}

// Remove deletes a body. The last body takes its slot.
func (w *World) Remove(id board.BallId) {
	i, ok := w.index.Get(id)
	if !ok {
		return
	}

	last := len(w.bodies) - 1
	if i != last {
		w.bodies[i] = w.bodies[last]
		w.index.Put(w.bodies[i].Id, i)
	}
	w.bodies = w.bodies[:last]
	w.index.Del(id)
}

// Body returns a copy of a body.
func (w *World) Body(id board.BallId) (Body, bool) {
	i, ok := w.index.Get(id)
	if !ok {
		return Body{}, false
	}
	return w.bodies[i], true
}

func (w *World) Len() int {
	return len(w.bodies)
}

func (w *World) Gravity() board.Vec2 {
	return w.gravity
}

func (w *World) SetGravity(g board.Vec2) {
	w.gravity = g
}

func (w *World) Bounds() board.Rect {
	return w.bounds
}

// Sync drops bodies of removed balls and writes positions back to the board.
func (w *World) Sync(b *board.Board) {
	for i := len(w.bodies) - 1; i >= 0; i-- {
		if !b.IsAlive(w.bodies[i].Id) {
			w.Remove(w.bodies[i].Id)
		}
	}
	for _, body := range w.bodies {
		b.Move(body.Id, body.Position)
	}
}

// Step advances the world by dt seconds, in sub steps no longer than MaxStep.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}

	steps := int(math.Ceil(dt / MaxStep))
	h := dt / float64(steps)
	for range steps {
		w.integrate(h)
		for range Iterations {
			w.grid.rebuild(w.bodies)
			w.solveContacts()
			w.solveBounds()
		}
	}
}

func (w *World) integrate(h float64) {
	for i := range w.bodies {
		body := &w.bodies[i]
		body.Velocity = body.Velocity.Add(w.gravity.Scale(h))
		body.Position = body.Position.Add(body.Velocity.Scale(h))
	}
}

// solveContacts separates overlapping bodies and removes the approaching part
// of their relative velocity. Restitution and friction are zero.
func (w *World) solveContacts() {
	w.grid.pairs(w.bodies, func(i, j int) {
		a := &w.bodies[i]
		b := &w.bodies[j]

		delta := b.Position.Sub(a.Position)
		dist := delta.Length()
		minDist := a.Radius + b.Radius
		if dist >= minDist {
			return
		}

		var n board.Vec2
		if dist == 0 {
			n = board.Vec2{X: 1}
		} else {
			n = delta.Scale(1 / dist)
		}

		correction := n.Scale((minDist - dist) / 2)
		a.Position = a.Position.Sub(correction)
		b.Position = b.Position.Add(correction)

		approach := b.Velocity.Sub(a.Velocity).Dot(n)
		if approach < 0 {
			impulse := n.Scale(approach / 2)
			a.Velocity = a.Velocity.Add(impulse)
			b.Velocity = b.Velocity.Sub(impulse)
		}
	})
}

func (w *World) solveBounds() {
	for i := range w.bodies {
		body := &w.bodies[i]
		r := body.Radius

		if body.Position.X < w.bounds.Min.X+r {
			body.Position.X = w.bounds.Min.X + r
			body.Velocity.X = max(body.Velocity.X, 0)
		}
		if body.Position.X > w.bounds.Max.X-r {
			body.Position.X = w.bounds.Max.X - r
			body.Velocity.X = min(body.Velocity.X, 0)
		}
		if body.Position.Y < w.bounds.Min.Y+r {
			body.Position.Y = w.bounds.Min.Y + r
			body.Velocity.Y = max(body.Velocity.Y, 0)
		}
		if body.Position.Y > w.bounds.Max.Y-r {
			body.Position.Y = w.bounds.Max.Y - r
			body.Velocity.Y = min(body.Velocity.Y, 0)
		}
	}
}

// Contacts reports every pair of bodies closer than the sum of their radii plus Slop.
func (w *World) Contacts() []contact.Pair {
	w.grid.rebuild(w.bodies)

	pairs := make([]contact.Pair, 0, len(w.bodies)*2)
	w.grid.pairs(w.bodies, func(i, j int) {
		a := w.bodies[i]
		b := w.bodies[j]
		reach := a.Radius + b.Radius + Slop
		d := b.Position.Sub(a.Position)
		if d.Dot(d) <= reach*reach {
			pairs = append(pairs, contact.Pair{A: a.Id, B: b.Id})
		}
	})
	return pairs
}
