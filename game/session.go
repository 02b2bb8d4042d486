// Package game runs rounds frame by frame. A Session owns the board, the
// physics world and the round, and advances them through a Scheduler of
// systems. An App switches between the menu and a playing session.
package game

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/plus3/marbles/board"
	"github.com/plus3/marbles/config"
	"github.com/plus3/marbles/contact"
	"github.com/plus3/marbles/gravity"
	"github.com/plus3/marbles/physics"
	"github.com/plus3/marbles/round"
)

// TopInset is the gap between the top of the screen and the top wall.
const TopInset = 75.0

// Settings describe the playfield and the rules of every round.
type Settings struct {
	// Bounds is the physics boundary.
	Bounds board.Rect
	// LayoutBounds is the area tiled with balls at the start of a round.
	LayoutBounds board.Rect
	BallSize     float64
	Kinds        []board.Kind
	Gain         float64
	Gravity      board.Vec2
	Round        round.Config
	// Seed for the first round layout. 0 picks a random seed.
	Seed uint64
}

// DefaultSettings returns the standard settings for a screen of
// the given size.
func DefaultSettings(width, height float64) Settings {
	return SettingsFrom(config.Default(), width, height)
}

// SettingsFrom derives settings from cfg for a screen of the given size.
func SettingsFrom(cfg config.Config, width, height float64) Settings {
	r := cfg.BallSize / 2

	rules := round.DefaultConfig()
	rules.Duration = cfg.RoundSeconds
	rules.Strict = cfg.Strict

	return Settings{
		Bounds: board.Rect{
			Max: board.Vec2{X: width, Y: height - TopInset},
		},
		LayoutBounds: board.Rect{
			Min: board.Vec2{Y: 100 - r},
			Max: board.Vec2{X: width, Y: height},
		},
		BallSize: cfg.BallSize,
		Kinds:    board.AllKinds,
		Gain:     cfg.Gain,
		Gravity:  board.Vec2{Y: -9.8},
		Round:    rules,
		Seed:     cfg.Seed,
	}
}

// Snapshot is a copy of the session state for drawing.
type Snapshot struct {
	Balls      []board.Ball
	Score      int
	Remaining  int
	Phase      round.Phase
	Selections int
	Gravity    board.Vec2
	Edges      int
	Radius     float64
	Bounds     board.Rect
}

// Session is one round in progress.
//
// Tap, Pick and Sense may be called from any goroutine. Listener callbacks run
// at the end of a frame while the session is locked, so they must not call
// Once, Snapshot or Stats.
type Session struct {
	mu sync.Mutex

	settings  Settings
	board     *board.Board
	world     *physics.World
	graph     *contact.Graph
	driver    *gravity.Driver
	round     *round.Round
	scheduler *Scheduler
	input     inputQueue
	clock     float64

	// frame is set while Once runs so round events can be deferred.
	frame *Frame
}

// NewSession lays out a board with rng and starts a round on it. Round events
// reach listener at the end of the frame that produced them.
func NewSession(settings Settings, recorder round.Recorder, listener round.Listener, rng *rand.Rand) *Session {
	s := &Session{
		settings: settings,
		board:    board.New(),
		world:    physics.NewWorld(settings.Bounds),
		graph:    contact.Empty(),
		driver:   gravity.NewDriver(settings.Gain, settings.Gravity),
	}

	s.board.Layout(settings.LayoutBounds, settings.BallSize, settings.Kinds, rng)
	s.world.Populate(s.board, s.Radius())
	s.world.SetGravity(s.driver.Current())

	if listener == nil {
		listener = round.NopListener{}
	}
	s.round = round.New(settings.Round, s.board, recorder, &deferredListener{session: s, next: listener})

	s.scheduler = NewScheduler(s)
	s.scheduler.Register(&GravitySystem{})
	s.scheduler.Register(&PhysicsSystem{})
	s.scheduler.Register(&ContactSystem{})
	s.scheduler.Register(&SelectSystem{})
	s.scheduler.Register(&ClockSystem{})

	return s
}

// Radius of every ball.
func (s *Session) Radius() float64 {
	return s.settings.BallSize / 2
}

func (s *Session) Settings() Settings {
	return s.settings
}

// Tap queues a selection at a world position for the next frame.
func (s *Session) Tap(pos board.Vec2) {
	s.input.tap(pos)
}

// Pick queues a selection of a ball by id for the next frame.
func (s *Session) Pick(id board.BallId) {
	s.input.pick(id)
}

// Sense queues an accelerometer sample. Only the latest sample of a frame is used.
func (s *Session) Sense(sample gravity.Sample) {
	s.input.sense(sample)
}

// Once advances the session by dt seconds.
func (s *Session) Once(dt float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduler.Once(dt)
}

// Run advances the session in real time until ctx is cancelled or the round ends.
func (s *Session) Run(ctx context.Context, interval time.Duration) error {
	return s.scheduler.Run(ctx, interval)
}

func (s *Session) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round.Ended()
}

func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round.Score()
}

// Snapshot copies the state needed to draw the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	balls := make([]board.Ball, 0, s.board.Len())
	for ball := range s.board.Alive() {
		balls = append(balls, ball)
	}

	return Snapshot{
		Balls:      balls,
		Score:      s.round.Score(),
		Remaining:  s.round.Remaining(),
		Phase:      s.round.Phase(),
		Selections: s.round.Selections(),
		Gravity:    s.world.Gravity(),
		Edges:      s.graph.Edges(),
		Radius:     s.Radius(),
		Bounds:     s.settings.Bounds,
	}
}

// Stats returns the scheduler statistics of the session.
func (s *Session) Stats() *SchedulerStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduler.Stats()
}

// Inspect runs fn with the session locked. fn must not keep the board or graph.
func (s *Session) Inspect(fn func(b *board.Board, graph *contact.Graph)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.board, s.graph)
}

// deferredListener delays round events until the systems of the current frame
// have finished.
type deferredListener struct {
	session *Session
	next    round.Listener
}

func (d *deferredListener) emit(fn func()) {
	if d.session.frame == nil {
		fn()
		return
	}
	d.session.frame.Commands.Defer(fn)
}

func (d *deferredListener) ScoreChanged(score int) {
	d.emit(func() { d.next.ScoreChanged(score) })
}

func (d *deferredListener) TimeChanged(remaining int) {
	d.emit(func() { d.next.TimeChanged(remaining) })
}

func (d *deferredListener) BigMatch(size int) {
	d.emit(func() { d.next.BigMatch(size) })
}

func (d *deferredListener) RoundEnded(finalScore int) {
	d.emit(func() { d.next.RoundEnded(finalScore) })
}
