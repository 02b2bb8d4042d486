package game

import (
	"sync"

	"github.com/plus3/marbles/board"
	"github.com/plus3/marbles/gravity"
)

// Input holds the player input collected between two frames.
type Input struct {
	// Taps in world coordinates, in arrival order.
	Taps []board.Vec2
	// Picks select a ball directly by id.
	Picks []board.BallId
	// Sample is the latest accelerometer reading, or nil if none arrived.
	Sample *gravity.Sample
}

func (in Input) Empty() bool {
	return len(in.Taps) == 0 && len(in.Picks) == 0 && in.Sample == nil
}

// inputQueue buffers input from host goroutines until the next frame drains it.
type inputQueue struct {
	mu      sync.Mutex
	pending Input
}

func (q *inputQueue) tap(pos board.Vec2) {
	q.mu.Lock()
	q.pending.Taps = append(q.pending.Taps, pos)
	q.mu.Unlock()
}

func (q *inputQueue) pick(id board.BallId) {
	q.mu.Lock()
	q.pending.Picks = append(q.pending.Picks, id)
	q.mu.Unlock()
}

func (q *inputQueue) sense(sample gravity.Sample) {
	q.mu.Lock()
	q.pending.Sample = &sample
	q.mu.Unlock()
}

func (q *inputQueue) drain() Input {
	q.mu.Lock()
	defer q.mu.Unlock()
	in := q.pending
	q.pending = Input{}
	return in
}

// Commands buffers work that runs after every system of a frame has executed.
type Commands struct {
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues a function to run at the end of the frame.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush runs the deferred functions in order and resets the buffer. Functions
// deferred while flushing run in the same flush.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.defers[i]()
	}
	c.defers = c.defers[:0]
}
