package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/marbles/board"
	"github.com/plus3/marbles/game"
	"github.com/plus3/marbles/gravity"
)

// A terminal cell covers half a ball horizontally and a whole ball vertically.
const (
	cellsPerBallX = 2
	cellsPerBallY = 1
)

var kindStyles = map[board.Kind]tcell.Style{
	board.Blue:   tcell.StyleDefault.Foreground(tcell.ColorBlue),
	board.Cyan:   tcell.StyleDefault.Foreground(tcell.ColorAqua),
	board.Green:  tcell.StyleDefault.Foreground(tcell.ColorGreen),
	board.Grey:   tcell.StyleDefault.Foreground(tcell.ColorGray),
	board.Purple: tcell.StyleDefault.Foreground(tcell.ColorPurple),
	board.Red:    tcell.StyleDefault.Foreground(tcell.ColorRed),
	board.Yellow: tcell.StyleDefault.Foreground(tcell.ColorYellow),
}

var (
	textStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	wallStyle = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	omgStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// Terminal maps the playfield onto screen cells.
type Terminal struct {
	screen   tcell.Screen
	app      *game.App
	ballSize float64

	width, height int
	mouseDown     bool
	bigMatch      int
	flash         float64
}

// NewTerminal wraps an initialised screen. The playfield size in world units
// follows from the screen size and ballSize.
func NewTerminal(screen tcell.Screen, ballSize float64) *Terminal {
	t := &Terminal{screen: screen, ballSize: ballSize}
	t.width, t.height = screen.Size()
	return t
}

// World returns the playfield size in world units.
func (t *Terminal) World() (float64, float64) {
	return float64(t.width) * t.cellWidth(), float64(t.height) * t.cellHeight()
}

func (t *Terminal) cellWidth() float64 {
	return t.ballSize / cellsPerBallX
}

func (t *Terminal) cellHeight() float64 {
	return t.ballSize / cellsPerBallY
}

// toWorld returns the center of a cell in world coordinates.
func (t *Terminal) toWorld(x, y int) board.Vec2 {
	return board.Vec2{
		X: (float64(x) + 0.5) * t.cellWidth(),
		Y: (float64(t.height-y) - 0.5) * t.cellHeight(),
	}
}

func (t *Terminal) toCell(pos board.Vec2) (int, int) {
	x := int(pos.X / t.cellWidth())
	y := t.height - 1 - int(pos.Y/t.cellHeight())
	return x, y
}

// Handle applies one terminal event. It returns false when the player quits.
func (t *Terminal) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'q' {
			return false
		}
		if t.app.Scene() == game.Menu {
			if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ') {
				t.start()
			}
			return true
		}
		if sample, ok := tilt(ev.Key()); ok {
			t.app.Session().Sense(sample)
		}

	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		pressed := down && !t.mouseDown
		t.mouseDown = down
		if !pressed {
			return true
		}
		if t.app.Scene() == game.Menu {
			t.start()
			return true
		}
		x, y := ev.Position()
		t.app.Session().Tap(t.toWorld(x, y))

	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *Terminal) start() {
	t.app.Start()
	t.flash = 0
}

// tilt maps an arrow key to an accelerometer sample. Down puts the device
// back upright.
func tilt(key tcell.Key) (gravity.Sample, bool) {
	switch key {
	case tcell.KeyLeft:
		return gravity.Sample{X: -1}, true
	case tcell.KeyRight:
		return gravity.Sample{X: 1}, true
	case tcell.KeyUp:
		return gravity.Sample{Y: 1}, true
	case tcell.KeyDown:
		return gravity.Sample{Y: -1}, true
	}
	return gravity.Sample{}, false
}

// Update advances the game and counts the big match banner down.
func (t *Terminal) Update(dt float64) error {
	t.flash = max(t.flash-dt, 0)
	return t.app.Update(dt)
}

func (t *Terminal) Draw() {
	t.screen.Clear()

	switch t.app.Scene() {
	case game.Menu:
		t.drawMenu()
	case game.Playing:
		t.drawSession(t.app.Session().Snapshot())
	}

	t.screen.Show()
}

func (t *Terminal) drawMenu() {
	x := t.width/2 - 8
	y := t.height / 3

	t.print(x, y, textStyle, "M A R B L E S")
	if t.app.Session() != nil {
		t.print(x, y+2, textStyle, fmt.Sprintf("Last round: %d", t.app.LastScore()))
	}
	t.print(x, y+4, textStyle, "Best scores")
	top := t.app.Top()
	for i, score := range top {
		t.print(x, y+5+i, textStyle, fmt.Sprintf("%d. %d", i+1, score))
	}
	t.print(x, y+6+len(top), textStyle, "space to play, q to quit")
}

func (t *Terminal) drawSession(snap game.Snapshot) {
	_, wall := t.toCell(board.Vec2{Y: snap.Bounds.Max.Y})
	for x := 0; x < t.width; x++ {
		t.screen.SetContent(x, wall, '─', nil, wallStyle)
	}

	for _, ball := range snap.Balls {
		x, y := t.toCell(ball.Position)
		t.screen.SetContent(x, y, '●', nil, kindStyles[ball.Kind])
	}

	t.print(0, 0, textStyle, fmt.Sprintf("Score: %d", snap.Score))
	timeLabel := fmt.Sprintf("Time: %d", snap.Remaining)
	t.print(t.width-len(timeLabel), 0, textStyle, timeLabel)
	if t.flash > 0 {
		t.print(t.width/2-4, 1, omgStyle, fmt.Sprintf("OMG! x%d", t.bigMatch))
	}
}

func (t *Terminal) print(x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

// Terminal is also the round listener that drives the banner.

func (t *Terminal) ScoreChanged(int) {}
func (t *Terminal) TimeChanged(int)  {}
func (t *Terminal) RoundEnded(int)   {}

func (t *Terminal) BigMatch(size int) {
	t.bigMatch = size
	t.flash = 1
}
