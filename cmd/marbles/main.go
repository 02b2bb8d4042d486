package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/marbles/board"
	"github.com/plus3/marbles/config"
	"github.com/plus3/marbles/game"
	"github.com/plus3/marbles/gravity"
	"github.com/plus3/marbles/scoreboard"
)

const (
	ScreenWidth  = 640
	ScreenHeight = 960
)

var kindColors = map[board.Kind]color.RGBA{
	board.Blue:   {66, 133, 244, 255},
	board.Cyan:   {0, 188, 212, 255},
	board.Green:  {76, 175, 80, 255},
	board.Grey:   {158, 158, 158, 255},
	board.Purple: {156, 39, 176, 255},
	board.Red:    {229, 57, 53, 255},
	board.Yellow: {253, 216, 53, 255},
}

var (
	background = color.RGBA{24, 24, 32, 255}
	wallColor  = color.RGBA{90, 90, 110, 255}
)

type Game struct {
	App   *game.App
	Hud   *Hud
	Debug *DebugPanel

	width, height int
	tilt          gravity.Sample
}

func main() {
	debug := flag.Bool("debug", false, "Show the debug panel.")
	envFile := flag.String("env", ".env", "Settings file.")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	scores := scoreboard.New(scoreboard.NewFileStore(cfg.ScoresDir), cfg.TopN)
	hud := &Hud{}

	app, err := game.NewApp(game.SettingsFrom(cfg, ScreenWidth, ScreenHeight), scores, hud)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	g := &Game{
		App:    app,
		Hud:    hud,
		width:  ScreenWidth,
		height: ScreenHeight,
		tilt:   gravity.Sample{Y: -1},
	}

	if *debug {
		g.Debug = NewDebugPanel("Marbles", ScreenWidth, ScreenHeight)
	} else {
		ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
		ebiten.SetWindowTitle("Marbles")
	}

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	dt := 1 / float64(ebiten.TPS())
	if g.Debug != nil {
		g.Debug.BeginFrame()
		defer g.Debug.EndFrame(g.App, float32(dt))
	}

	switch g.App.Scene() {
	case game.Menu:
		if g.pressed() {
			g.App.Start()
			g.Hud.Reset()
		}
	case game.Playing:
		session := g.App.Session()
		if g.Debug == nil || !g.Debug.WantCaptureMouse() {
			for _, pos := range g.taps() {
				session.Tap(pos)
			}
		}
		if g.tiltChanged() {
			session.Sense(g.tilt)
		}
		g.Hud.Update(dt)
		if err := g.App.Update(dt); err != nil {
			log.Printf("Frame failed: %v", err)
		}
	}
	return nil
}

// pressed reports a click, touch or space bar press.
func (g *Game) pressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace)
}

// taps returns the clicks and touches of this tick in world coordinates.
func (g *Game) taps() []board.Vec2 {
	taps := make([]board.Vec2, 0)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		taps = append(taps, g.toWorld(x, y))
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		taps = append(taps, g.toWorld(x, y))
	}
	return taps
}

// tiltChanged turns the arrow keys into an accelerometer sample. With no key
// held the device is upright and gravity points down.
func (g *Game) tiltChanged() bool {
	sample := gravity.Sample{Y: -1}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		sample.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		sample.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		sample.Y = 1
	}
	if sample == g.tilt {
		return false
	}
	g.tilt = sample
	return true
}

func (g *Game) toWorld(x, y int) board.Vec2 {
	return board.Vec2{X: float64(x), Y: float64(g.height - y)}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	switch g.App.Scene() {
	case game.Menu:
		g.drawMenu(screen)
	case game.Playing:
		g.drawSession(screen, g.App.Session().Snapshot())
	}

	if g.Debug != nil {
		g.Debug.Draw(screen)
	}
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	x := g.width/2 - 60
	y := g.height / 3

	ebitenutil.DebugPrintAt(screen, "MARBLES", x, y)
	if g.App.Session() != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Last round: %d", g.App.LastScore()), x, y+30)
	}
	ebitenutil.DebugPrintAt(screen, "Best scores", x, y+60)
	for i, score := range g.App.Top() {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d. %d", i+1, score), x, y+80+i*16)
	}
	ebitenutil.DebugPrintAt(screen, "Click to play", x, y+100+len(g.App.Top())*16)
}

func (g *Game) drawSession(screen *ebiten.Image, snap game.Snapshot) {
	top := float32(g.height) - float32(snap.Bounds.Max.Y)
	vector.StrokeLine(screen, 0, top, float32(g.width), top, 2, wallColor, false)

	for _, ball := range snap.Balls {
		cx := float32(ball.Position.X)
		cy := float32(float64(g.height) - ball.Position.Y)
		vector.DrawFilledCircle(screen, cx, cy, float32(snap.Radius), kindColors[ball.Kind], true)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", snap.Score), 10, 10)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Time: %d", snap.Remaining), g.width-80, 10)
	if g.Hud.Flashing() {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("OMG! %d in a row", g.Hud.BigMatchSize()), g.width/2-50, 40)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.Debug != nil {
		g.Debug.Layout(outsideWidth, outsideHeight)
	}
	return g.width, g.height
}
