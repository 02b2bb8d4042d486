// Package round implements the state of a single round: the countdown, the
// score and the detection of the end of the round.
//
// A Round is not safe for concurrent use.
package round

import (
	"errors"
	"fmt"

	"github.com/plus3/marbles/board"
	"github.com/plus3/marbles/match"
)

// ErrRoundEnded is returned by Select and Tick after the round ended when the
// round runs in strict mode.
var ErrRoundEnded = errors.New("round: already ended")

// Phase of a round.
type Phase uint8

const (
	Playing Phase = iota
	Ended
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Ended:
		return "ended"
	}
	return "unknown"
}

// Config holds the rules of a round.
type Config struct {
	// Duration of the countdown in seconds.
	Duration int
	// MinGroup is the smallest group that can be removed.
	MinGroup int
	// BigMatch is the group size that triggers a BigMatch event.
	BigMatch int
	// MaxExponent caps the group size used in the award.
	MaxExponent int
	// Strict makes calls after the end of the round fail with ErrRoundEnded
	// instead of being ignored.
	Strict bool
}

// DefaultConfig returns the standard rules: 60 seconds, groups of 3, big match at 5.
func DefaultConfig() Config {
	return Config{
		Duration:    60,
		MinGroup:    3,
		BigMatch:    5,
		MaxExponent: 16,
	}
}

// Award returns the score for removing a group of the given size:
// 2^min(size, MaxExponent), or 0 when the group is too small to remove.
func Award(size int, cfg Config) int {
	if size < cfg.MinGroup {
		return 0
	}
	return 1 << min(size, cfg.MaxExponent)
}

// Result describes the outcome of a selection.
type Result struct {
	Group   match.Group
	Award   int
	Removed bool
	Ended   bool
}

// Round is the state machine of one round.
type Round struct {
	cfg        Config
	board      *board.Board
	recorder   Recorder
	listener   Listener
	phase      Phase
	score      int
	remaining  int
	selections int
}

// New starts a round on b. The recorder may be nil when scores are not kept.
func New(cfg Config, b *board.Board, recorder Recorder, listener Listener) *Round {
	if b == nil {
		panic("round: nil board")
	}
	if listener == nil {
		listener = NopListener{}
	}
	return &Round{
		cfg:       cfg,
		board:     b,
		recorder:  recorder,
		listener:  listener,
		phase:     Playing,
		remaining: max(cfg.Duration, 0),
	}
}

func (r *Round) Score() int {
	return r.score
}

func (r *Round) Remaining() int {
	return r.remaining
}

func (r *Round) Phase() Phase {
	return r.phase
}

func (r *Round) Ended() bool {
	return r.phase == Ended
}

// Selections returns the number of groups removed so far.
func (r *Round) Selections() int {
	return r.selections
}

func (r *Round) Config() Config {
	return r.cfg
}

// Select grows the group of the selected ball through graph and removes it when
// it is large enough. Selecting a ball that is not on the board is an empty
// selection. The round ends when no removable group remains afterwards.
func (r *Round) Select(id board.BallId, graph match.Neighbors) (Result, error) {
	if r.phase == Ended {
		return Result{}, r.afterEnd()
	}

	group := match.GroupFrom(id, graph, r.board)
	if group.Size() < r.cfg.MinGroup {
		return Result{Group: group}, nil
	}

	award := Award(group.Size(), r.cfg)
	r.score += award
	r.selections++
	r.listener.ScoreChanged(r.score)

	r.board.Remove(group...)

	if group.Size() >= r.cfg.BigMatch {
		r.listener.BigMatch(group.Size())
	}

	result := Result{Group: group, Award: award, Removed: true}
	if !match.HasAnyGroupOfAtLeast(r.cfg.MinGroup, r.board, graph) {
		result.Ended = true
		return result, r.end()
	}
	return result, nil
}

// SelectAt selects the topmost ball within radius of pos.
func (r *Round) SelectAt(pos board.Vec2, radius float64, graph match.Neighbors) (Result, error) {
	if r.phase == Ended {
		return Result{}, r.afterEnd()
	}

	id, ok := r.board.HitTest(pos, radius)
	if !ok {
		return Result{}, nil
	}
	return r.Select(id, graph)
}

// Tick counts down one second. The round ends when the time runs out.
func (r *Round) Tick() error {
	if r.phase == Ended {
		return r.afterEnd()
	}

	r.remaining = max(r.remaining-1, 0)
	r.listener.TimeChanged(r.remaining)

	if r.remaining == 0 {
		return r.end()
	}
	return nil
}

// end moves the round to Ended. The score is recorded once and listeners are
// told once, even if recording fails.
func (r *Round) end() error {
	r.phase = Ended

	var err error
	if r.recorder != nil {
		if recErr := r.recorder.Record(r.score); recErr != nil {
			err = fmt.Errorf("record score: %w", recErr)
		}
	}

	r.listener.RoundEnded(r.score)
	return err
}

func (r *Round) afterEnd() error {
	if r.cfg.Strict {
		return ErrRoundEnded
	}
	return nil
}
