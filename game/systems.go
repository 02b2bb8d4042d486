package game

import (
	"github.com/plus3/marbles/contact"
)

// GravitySystem applies the latest accelerometer sample to the world.
type GravitySystem struct{}

func (GravitySystem) Execute(frame *Frame) {
	s := frame.Session
	s.world.SetGravity(s.driver.Update(frame.Input.Sample))
}

// PhysicsSystem steps the world and writes ball positions back to the board.
// Bodies of balls removed during the previous frame are dropped first.
type PhysicsSystem struct{}

func (PhysicsSystem) Execute(frame *Frame) {
	s := frame.Session
	if s.round.Ended() {
		return
	}
	s.world.Sync(s.board)
	s.world.Step(frame.DeltaTime)
	s.world.Sync(s.board)
}

// ContactSystem rebuilds the contact graph from the bodies touching after the step.
type ContactSystem struct{}

func (ContactSystem) Execute(frame *Frame) {
	s := frame.Session
	s.graph = contact.Build(s.world.Contacts(), s.board)
}

// SelectSystem applies the taps and picks queued since the last frame.
type SelectSystem struct{}

func (SelectSystem) Execute(frame *Frame) {
	s := frame.Session
	radius := s.Radius()

	for _, pos := range frame.Input.Taps {
		_, err := s.round.SelectAt(pos, radius, s.graph)
		frame.Fail(err)
	}
	for _, id := range frame.Input.Picks {
		_, err := s.round.Select(id, s.graph)
		frame.Fail(err)
	}
}

// ClockSystem counts the round down once per whole second of frame time.
type ClockSystem struct{}

func (ClockSystem) Execute(frame *Frame) {
	s := frame.Session
	if s.round.Ended() {
		return
	}

	s.clock += frame.DeltaTime
	for s.clock >= 1 && !s.round.Ended() {
		s.clock--
		frame.Fail(s.round.Tick())
	}
}
