package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowtrails/inspector"
)

// Panel layout
const (
	panelWidth     = 300
	controlsWidth  = 220
	controlsHeight = 240
)

// inspectorX places the inspector left of the parameter panel.
func inspectorX(width float64) int32 {
	return int32(width) - panelWidth - inspector.PanelWidth - 20
}

// Draw runs the frame's tick and renders it. When paused the trails are
// redrawn without advancing.
func (g *Game) Draw() {
	rl.BeginDrawing()
	g.background.Draw()

	g.trails.Begin()
	if g.paused {
		g.sim.Draw(g.groups, g.trails)
	} else {
		g.step(g.frameDT, g.pointer, g.trails)
	}

	g.drawSelection()
	g.drawActiveOverlays()
	if g.panel.Draw(g.groups) {
		g.onGroupsChanged()
	}

	rl.EndDrawing()
}

// drawSelection draws the inspector for the selected entity, dropping the
// selection once the entity is gone.
func (g *Game) drawSelection() {
	id, ok := g.inspector.Selected()
	if !ok {
		return
	}
	view, found := g.sim.Inspect(id)
	if !found {
		g.inspector.Deselect()
		return
	}
	g.inspector.DrawSelectionHighlight(view)
	g.inspector.Draw(view)
}
