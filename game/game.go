// Package game hosts the simulation: it owns the configuration, drives
// ticks from the window or a fixed clock, and wires persistence and
// telemetry around the core.
package game

import (
	"log/slog"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowtrails/config"
	"github.com/pthm-cable/flowtrails/inspector"
	"github.com/pthm-cable/flowtrails/noise"
	"github.com/pthm-cable/flowtrails/renderer"
	"github.com/pthm-cable/flowtrails/state"
	"github.com/pthm-cable/flowtrails/systems"
	"github.com/pthm-cable/flowtrails/telemetry"
	"github.com/pthm-cable/flowtrails/ui"
	"github.com/pthm-cable/flowtrails/vector"
)

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	StatePath      string // overrides Persistence.StateFile when set
	Headless       bool
	StepsPerUpdate int // headless ticks per UpdateHeadless call
}

// Game holds the complete sketch state.
type Game struct {
	cfg      *config.Config
	groups   *config.GroupSet
	sim      *systems.Simulation
	registry *systems.SystemRegistry
	fields   *noise.Set

	// Rendering and UI, nil when headless
	background *renderer.Background
	trails     *renderer.TrailRenderer
	field      *renderer.FieldOverlay
	overlays   *ui.OverlayRegistry
	panel      *ui.Panel
	hud        *ui.HUD
	perfPanel  *ui.PerfPanel
	controls   *ui.ControlsPanel
	inspector  *inspector.Inspector

	// Persistence
	sink      state.FileSink
	debouncer *state.Debouncer
	fragment  string // last encoded state

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	// State
	tick           int64
	paused         bool
	frameDT        float64 // ms, set by Update and consumed by Draw
	pointer        vector.Vec2
	headless       bool
	stepsPerUpdate int
	width, height  float64
	status         string
	statusUntil    time.Time
}

// NewGameWithOptions creates a game from the global config. In windowed
// mode the raylib window must already be open.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	g := &Game{
		cfg:            cfg,
		registry:       systems.NewSystemRegistry(),
		fields:         noise.NewSet(opts.Seed),
		logStats:       opts.LogStats,
		headless:       opts.Headless,
		stepsPerUpdate: max(opts.StepsPerUpdate, 1),
		width:          float64(cfg.Screen.Width),
		height:         float64(cfg.Screen.Height),
	}

	g.sink = state.FileSink{Path: cfg.Persistence.StateFile}
	if opts.StatePath != "" {
		g.sink.Path = opts.StatePath
	}
	g.groups = g.loadGroups()
	g.debouncer = state.NewDebouncer(time.Duration(cfg.Persistence.DebounceMS)*time.Millisecond, g.sink.Write)

	rng := rand.New(rand.NewSource(opts.Seed))
	g.sim = systems.NewSimulation(systems.Bounds{Width: g.width, Height: g.height}, g.fields, rng)
	g.sim.SyncGroups(g.groups.IDs())

	g.initTelemetry(opts)
	g.sim.SetPhaseTimer(g.perfCollector)

	if !g.headless {
		g.initRendering()
	}

	slog.Info("game initialized",
		"groups", g.groups.Len(),
		"width", g.width,
		"height", g.height,
		"state_file", g.sink.Path,
		"headless", g.headless,
	)
	return g
}

func (g *Game) initRendering() {
	bg, err := renderer.NewBackground(g.cfg.Sketch.Background)
	if err != nil {
		slog.Warn("invalid background, using black", "error", err)
		bg, _ = renderer.NewBackground("#000000")
	}
	g.background = bg
	g.trails = renderer.NewTrailRenderer()
	g.field = renderer.NewFieldOverlay(g.cfg.Sketch.FieldGrid)

	g.overlays = ui.NewOverlayRegistry()
	g.overlays.SetEnabled(ui.OverlayField, g.cfg.Sketch.ShowField)
	g.panel = ui.NewPanel(int32(g.width)-panelWidth-10, 10, panelWidth)
	g.panel.SetVisible(true)
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(10, 100)
	g.controls = ui.NewControlsPanel(10, int32(g.height)-controlsHeight, controlsWidth)
	g.inspector = inspector.NewInspector(inspectorX(g.width), 10)
}

// Update handles input and samples the frame time and pointer. The tick
// itself runs in Draw because updating and drawing are interleaved per group.
func (g *Game) Update() {
	g.handleInput()
	g.perfCollector.RecordFrame()

	g.frameDT = min(float64(rl.GetFrameTime())*1000, g.cfg.Sketch.MaxFrameDT)
	mouse := rl.GetMousePosition()
	g.pointer = vector.New(float64(mouse.X), float64(mouse.Y))
}

// UpdateHeadless advances StepsPerUpdate fixed ticks without rendering.
func (g *Game) UpdateHeadless() {
	for range g.stepsPerUpdate {
		g.step(g.cfg.Sketch.FixedDT, vector.New(g.width/2, g.height/2), nil)
	}
}

// step runs one simulation tick and the per-tick telemetry.
func (g *Game) step(dt float64, pointer vector.Vec2, r systems.Renderer) {
	g.perfCollector.StartTick()
	g.sim.Tick(systems.Frame{DT: dt, Pointer: pointer, Configs: g.groups}, r)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	c := g.sim.Counters()
	g.collector.Record(telemetry.Events{
		Spawned:   c.Spawned,
		Despawned: c.Despawned,
		Expired:   c.Expired,
		Removed:   c.Removed,
	})
	g.perfCollector.EndTick()

	g.tick++
	g.flushTelemetry()
}

// Tick returns the number of simulation ticks run.
func (g *Game) Tick() int64 {
	return g.tick
}

// Groups returns the live group configuration.
func (g *Game) Groups() *config.GroupSet {
	return g.groups
}

// SetStatsCallback installs a function called with every flushed window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Unload writes the final state and closes output files.
func (g *Game) Unload() {
	g.persist()
	g.debouncer.Flush()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
}
