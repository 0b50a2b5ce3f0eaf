package game

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowtrails/ui"
	"github.com/pthm-cable/flowtrails/vector"
)

const statusDuration = 2 * time.Second

// keyBindings lists the non-overlay shortcuts for the help panel.
var keyBindings = []ui.KeyBinding{
	{KeyLabel: "Space", Action: "Pause"},
	{KeyLabel: "H", Action: "Parameter panel"},
	{KeyLabel: "C", Action: "Copy share link"},
	{KeyLabel: "S", Action: "Save state"},
	{KeyLabel: "Click", Action: "Inspect entity"},
	{KeyLabel: "R-click", Action: "Clear selection"},
}

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyH) {
		g.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.copyShareLink()
	}
	if rl.IsKeyPressed(rl.KeyS) {
		g.saveNow()
	}
	g.handleOverlayKeys()

	mouse := rl.GetMousePosition()
	pos := vector.New(float64(mouse.X), float64(mouse.Y))
	g.inspector.HandleInput(pos, g.sim, g.overPanel(pos))
}

// overPanel reports whether p is on the parameter panel.
func (g *Game) overPanel(p vector.Vec2) bool {
	return g.panel.IsVisible() && p.X >= g.width-panelWidth-10
}

// handleResize propagates new window dimensions to the simulation and
// anchored panels.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	if w == g.width && h == g.height {
		return
	}
	g.width, g.height = w, h
	g.sim.Resize(w, h)
	g.panel.SetPosition(int32(w)-panelWidth-10, 10)
	g.controls.SetPosition(10, int32(h)-controlsHeight)
	g.inspector.SetPosition(inspectorX(w), 10)
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusUntil = time.Now().Add(statusDuration)
}

func (g *Game) currentStatus() string {
	if time.Now().After(g.statusUntil) {
		return ""
	}
	return g.status
}
