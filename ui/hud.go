package ui

import (
	"fmt"
	"slices"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowtrails/systems"
)

// HUDData holds everything the info overlay shows.
type HUDData struct {
	Title    string
	Groups   int
	Entities int
	Segments int
	Elapsed  float64 // ms
	FPS      int32
	Paused   bool
	Status   string // transient message, e.g. "copied"
}

// HUD renders the info overlay.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Groups: %d | Entities: %d | Segments: %d", data.Groups, data.Entities, data.Segments),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Time: %.1fs | FPS: %d", data.Elapsed/1000, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	if data.Status != "" {
		status += " | " + data.Status
	}
	rl.DrawText(status, 10, 75, 16, rl.Yellow)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	PhaseTimes map[string]time.Duration
	Total      time.Duration
	Registry   *systems.SystemRegistry
}

// PerfPanel renders per-phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders phases in registry order, or by name without a registry.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x, y := p.x, p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("Total: %s", data.Total.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	var phases []string
	if data.Registry != nil {
		phases = data.Registry.IDs()
	} else {
		for name := range data.PhaseTimes {
			phases = append(phases, name)
		}
		slices.Sort(phases)
	}

	for _, phase := range phases {
		avg := data.PhaseTimes[phase]
		pct := 0.0
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		name := phase
		if data.Registry != nil {
			name = data.Registry.GetName(phase)
		}
		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
