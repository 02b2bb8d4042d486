// Package gravity turns device tilt into the gravity vector used by the physics world.
package gravity

import "github.com/plus3/marbles/board"

// Gain converts accelerometer units (g) into world gravity.
const Gain = 50.0

// Sample is one accelerometer reading. Only the horizontal plane is used.
type Sample struct {
	X, Y, Z float64
}

// Scale maps a sample to a gravity vector.
func Scale(s Sample, gain float64) board.Vec2 {
	return board.Vec2{X: s.X * gain, Y: s.Y * gain}
}

// Driver remembers the last gravity vector so frames without a sample keep it.
type Driver struct {
	gain    float64
	current board.Vec2
}

// NewDriver creates a driver with the given gain and starting gravity.
func NewDriver(gain float64, initial board.Vec2) *Driver {
	return &Driver{gain: gain, current: initial}
}

// Update applies a new sample. A nil sample leaves the gravity unchanged.
func (d *Driver) Update(sample *Sample) board.Vec2 {
	if sample != nil {
		d.current = Scale(*sample, d.gain)
	}
	return d.current
}

// Current returns the last computed gravity.
func (d *Driver) Current() board.Vec2 {
	return d.current
}
