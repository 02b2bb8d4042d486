package game_test

import (
	"fmt"
	"testing"

	"github.com/plus3/marbles/board"
	"github.com/plus3/marbles/game"
	"github.com/plus3/marbles/scoreboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp(t *testing.T) {
	t.Run("menu shows zeros on first run", func(t *testing.T) {
		app, err := game.NewApp(row(3), scoreboard.New(scoreboard.NewMemoryStore(), 3), nil)
		require.NoError(t, err)
		assert.Equal(t, game.Menu, app.Scene())
		assert.Equal(t, []int{0, 0, 0}, app.Top())
		assert.Nil(t, app.Session())
		require.NoError(t, app.Update(1))
	})

	t.Run("round returns to menu with the score", func(t *testing.T) {
		listener := &recordingListener{}
		app, err := game.NewApp(row(3), scoreboard.New(scoreboard.NewMemoryStore(), 3), listener)
		require.NoError(t, err)

		session := app.Start()
		assert.Equal(t, game.Playing, app.Scene())
		require.NoError(t, app.Update(1.0/60.0))

		session.Tap(board.Vec2{X: 60, Y: 20})
		require.NoError(t, app.Update(1.0/60.0))

		assert.Equal(t, game.Menu, app.Scene())
		assert.Equal(t, 8, app.LastScore())
		assert.Equal(t, []int{8, 0, 0}, app.Top())
		assert.Contains(t, listener.events, event{"ended", 8})
	})

	t.Run("timed out round is recorded", func(t *testing.T) {
		settings := row(2, board.Red, board.Blue)
		settings.Round.Duration = 2
		app, err := game.NewApp(settings, scoreboard.New(scoreboard.NewMemoryStore(), 3), nil)
		require.NoError(t, err)

		app.Start()
		require.NoError(t, app.Update(1))
		assert.Equal(t, game.Playing, app.Scene())
		require.NoError(t, app.Update(1))
		assert.Equal(t, game.Menu, app.Scene())
		assert.Equal(t, []int{0, 0, 0}, app.Top())
	})

	t.Run("same seed same board", func(t *testing.T) {
		settings := game.DefaultSettings(320, 480)
		settings.Seed = 42

		a, err := game.NewApp(settings, scoreboard.New(scoreboard.NewMemoryStore(), 3), nil)
		require.NoError(t, err)
		b, err := game.NewApp(settings, scoreboard.New(scoreboard.NewMemoryStore(), 3), nil)
		require.NoError(t, err)

		first := a.Start().Snapshot().Balls
		second := b.Start().Snapshot().Balls
		require.NotEmpty(t, first)
		assert.Equal(t, first, second)
	})
}

func TestSceneString(t *testing.T) {
	assert.Equal(t, "menu", game.Menu.String())
	assert.Equal(t, "playing", game.Playing.String())
	assert.Equal(t, "unknown", game.Scene(9).String())
}

func ExampleApp() {
	app, _ := game.NewApp(row(3), scoreboard.New(scoreboard.NewMemoryStore(), 3), nil)
	fmt.Println(app.Scene(), app.Top())

	session := app.Start()
	_ = app.Update(1.0 / 60.0)
	session.Tap(board.Vec2{X: 60, Y: 20})
	_ = app.Update(1.0 / 60.0)

	fmt.Println(app.Scene(), app.LastScore(), app.Top())
	// Output:
	// menu [0 0 0]
	// menu 8 [8 0 0]
}
