package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowtrails/ui"
)

// handleOverlayKeys toggles overlays bound to pressed keys.
func (g *Game) handleOverlayKeys() {
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		g.overlays.HandleKeyPress(key)
	}
}

// drawActiveOverlays renders all enabled overlays.
func (g *Game) drawActiveOverlays() {
	if g.overlays.IsEnabled(ui.OverlayField) {
		g.drawFieldOverlay()
	}
	if g.overlays.IsEnabled(ui.OverlayHUD) {
		g.hud.Draw(ui.HUDData{
			Title:    "flowtrails",
			Groups:   g.groups.Len(),
			Entities: g.sim.EntityCount(),
			Segments: g.trails.Segments(),
			Elapsed:  g.sim.Elapsed(),
			FPS:      rl.GetFPS(),
			Paused:   g.paused,
			Status:   g.currentStatus(),
		})
	}
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		stats := g.perfCollector.Stats()
		g.perfPanel.Draw(ui.PerfPanelData{
			PhaseTimes: stats.PhaseAvg,
			Total:      stats.AvgTickDuration,
			Registry:   g.registry,
		})
	}
	if g.overlays.IsEnabled(ui.OverlayControls) {
		g.controls.Draw(g.overlays, keyBindings)
	}
}

// drawFieldOverlay shows the field of the group selected in the panel,
// or the first group.
func (g *Game) drawFieldOverlay() {
	id := g.panel.Selected()
	if g.groups.Get(id) == nil {
		ids := g.groups.IDs()
		if len(ids) == 0 {
			return
		}
		id = ids[0]
	}
	cfg := g.groups.Get(id)
	g.field.Draw(g.fields.For(cfg.NoiseType), cfg, g.sim.Elapsed(), g.width, g.height)
}
