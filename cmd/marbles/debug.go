package main

import (
	"fmt"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/marbles/game"
)

const historyFrames = 120

// DebugPanel draws round and scheduler statistics with Dear ImGui on top of
// the game.
type DebugPanel struct {
	*ebitenbackend.EbitenBackend

	frameHistory []float32
	frameIndex   int
}

// NewDebugPanel creates the ImGui backend and the game window.
func NewDebugPanel(title string, width, height int) *DebugPanel {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &DebugPanel{
		EbitenBackend: backend,
		frameHistory:  make([]float32, historyFrames),
	}
}

// WantCaptureMouse reports whether ImGui is using the mouse.
func (p *DebugPanel) WantCaptureMouse() bool {
	return imgui.CurrentIO().WantCaptureMouse()
}

// EndFrame renders the panel and closes the ImGui frame.
func (p *DebugPanel) EndFrame(app *game.App, deltaTime float32) {
	p.render(app, deltaTime)
	p.EbitenBackend.EndFrame()
}

func (p *DebugPanel) render(app *game.App, deltaTime float32) {
	p.frameHistory[p.frameIndex] = deltaTime * 1000.0
	p.frameIndex = (p.frameIndex + 1) % historyFrames

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 40), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 300), imgui.CondOnce)

	if !imgui.BeginV("Marbles Debug", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Scene: %s", app.Scene()))
	imgui.Text(fmt.Sprintf("Top: %v", app.Top()))

	session := app.Session()
	if session == nil {
		imgui.End()
		return
	}

	snap := session.Snapshot()
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Phase: %s", snap.Phase))
	imgui.Text(fmt.Sprintf("Score: %d (%d matches)", snap.Score, snap.Selections))
	imgui.Text(fmt.Sprintf("Remaining: %ds", snap.Remaining))
	imgui.Text(fmt.Sprintf("Balls: %d", len(snap.Balls)))
	imgui.Text(fmt.Sprintf("Contacts: %d", snap.Edges))
	imgui.Text(fmt.Sprintf("Gravity: (%.1f, %.1f)", snap.Gravity.X, snap.Gravity.Y))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &p.frameHistory[0], int32(len(p.frameHistory)))

	stats := session.Stats()
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		for _, system := range stats.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(system.Name)
			imgui.TableNextColumn()
			imgui.Text(system.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(system.MaxDuration.String())
		}

		imgui.EndTable()
	}

	imgui.End()
}
