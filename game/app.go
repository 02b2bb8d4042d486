package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/plus3/marbles/round"
	"github.com/plus3/marbles/scoreboard"
)

// Scene is what the app is showing.
type Scene uint8

const (
	Menu Scene = iota
	Playing
)

func (s Scene) String() string {
	switch s {
	case Menu:
		return "menu"
	case Playing:
		return "playing"
	}
	return "unknown"
}

// App moves between the menu and a playing session. It is driven from a
// single goroutine by the host.
type App struct {
	settings Settings
	scores   *scoreboard.ScoreBoard
	listener round.Listener

	scene     Scene
	session   *Session
	top       []int
	lastScore int
	rounds    uint64
	ended     bool
}

// NewApp creates an app showing the menu with the scores loaded from scores.
// listener receives the events of every round and may be nil.
func NewApp(settings Settings, scores *scoreboard.ScoreBoard, listener round.Listener) (*App, error) {
	if listener == nil {
		listener = round.NopListener{}
	}
	a := &App{
		settings: settings,
		scores:   scores,
		listener: listener,
		scene:    Menu,
	}
	if err := a.reload(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) Scene() Scene {
	return a.scene
}

// Session returns the current session, or nil before the first round.
func (a *App) Session() *Session {
	return a.session
}

// Top returns the scores shown on the menu.
func (a *App) Top() []int {
	return append([]int(nil), a.top...)
}

// LastScore returns the final score of the last finished round.
func (a *App) LastScore() int {
	return a.lastScore
}

// Start lays out a new board and switches to Playing. Starting while a round
// is in progress abandons it without recording.
func (a *App) Start() *Session {
	a.rounds++
	a.ended = false

	rng := rand.New(rand.NewPCG(a.seed(), a.rounds))
	a.session = NewSession(a.settings, a.scores, round.Listeners{a.listener, endWatcher{a}}, rng)
	a.scene = Playing
	return a.session
}

func (a *App) seed() uint64 {
	if a.settings.Seed != 0 {
		return a.settings.Seed
	}
	return rand.Uint64()
}

// Update advances the playing session by dt seconds. When the round ends the
// app goes back to the menu with fresh scores. Errors from the frame are
// returned after the scene change.
func (a *App) Update(dt float64) error {
	if a.scene != Playing || a.session == nil {
		return nil
	}

	err := a.session.Once(dt)
	if a.ended {
		a.scene = Menu
		if reloadErr := a.reload(); reloadErr != nil && err == nil {
			err = reloadErr
		}
	}
	return err
}

func (a *App) reload() error {
	top, err := a.scores.Load()
	if err != nil {
		return fmt.Errorf("load scores: %w", err)
	}
	a.top = top
	return nil
}

type endWatcher struct {
	app *App
}

func (endWatcher) ScoreChanged(int) {}
func (endWatcher) TimeChanged(int)  {}
func (endWatcher) BigMatch(int)     {}

func (w endWatcher) RoundEnded(finalScore int) {
	w.app.lastScore = finalScore
	w.app.ended = true
}
