// Package scoreboard keeps the best N round scores in a key-value store.
package scoreboard

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Key is the store key the scores are saved under.
const Key = "scores"

// DefaultSize is the number of scores shown on the menu.
const DefaultSize = 3

// ErrMalformed reports store content that is not a list of N non-negative scores.
var ErrMalformed = errors.New("scoreboard: malformed scores")

// ScoreBoard ranks round scores. The list always holds exactly N scores in
// descending order, padded with zeros until N rounds have been played.
type ScoreBoard struct {
	mu    sync.Mutex
	store Store
	size  int
	top   []int
}

// New creates a scoreboard of size n backed by store.
func New(store Store, n int) *ScoreBoard {
	if store == nil {
		panic("scoreboard: nil store")
	}
	if n <= 0 {
		panic("scoreboard: size must be positive")
	}
	return &ScoreBoard{
		store: store,
		size:  n,
		top:   make([]int, n),
	}
}

// Size returns N.
func (s *ScoreBoard) Size() int {
	return s.size
}

// Load returns the saved scores in descending order. Missing or malformed
// content is replaced with N zeros, which are written back so the store is
// never empty once a menu has been shown.
func (s *ScoreBoard) Load() ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return slices.Clone(s.top), err
	}
	return slices.Clone(s.top), nil
}

// Record adds score to the ranking and saves the best N.
func (s *ScoreBoard) Record(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}

	scores := append(slices.Clone(s.top), max(score, 0))
	slices.SortFunc(scores, descending)
	scores = scores[:s.size]

	if err := s.save(scores); err != nil {
		return err
	}
	s.top = scores
	return nil
}

// Top returns the scores from the last Load or Record without touching the store.
func (s *ScoreBoard) Top() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.top)
}

func (s *ScoreBoard) load() error {
	data, err := s.store.Get(Key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("load scores: %w", err)
	}

	var scores []int
	if err == nil {
		scores, err = s.decode(data)
	}
	if err != nil || scores == nil {
		scores = make([]int, s.size)
		if err := s.save(scores); err != nil {
			return err
		}
	}

	s.top = scores
	return nil
}

// decode parses saved scores, returning ErrMalformed for anything that is
// not exactly N non-negative integers.
func (s *ScoreBoard) decode(data []byte) ([]int, error) {
	var scores []int
	if err := msgpack.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(scores) != s.size {
		return nil, fmt.Errorf("%w: %d scores, want %d", ErrMalformed, len(scores), s.size)
	}
	for _, score := range scores {
		if score < 0 {
			return nil, fmt.Errorf("%w: negative score %d", ErrMalformed, score)
		}
	}

	slices.SortFunc(scores, descending)
	return scores, nil
}

func (s *ScoreBoard) save(scores []int) error {
	data, err := msgpack.Marshal(scores)
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	if err := s.store.Set(Key, data); err != nil {
		return fmt.Errorf("save scores: %w", err)
	}
	return nil
}

func descending(a, b int) int {
	return b - a
}
