package game

import (
	"log/slog"

	"github.com/pthm-cable/flowtrails/systems"
	"github.com/pthm-cable/flowtrails/telemetry"
)

// initTelemetry sets up the stats window, perf collector and CSV output.
func (g *Game) initTelemetry(opts Options) {
	window := opts.StatsWindowSec
	if window <= 0 {
		window = g.cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(window, g.cfg.Sketch.FixedDT)
	g.perfCollector = telemetry.NewPerfCollector(g.cfg.Telemetry.PerfCollectorWindow)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	}
	g.outputManager = om

	// Record the groups actually in use, which may come from saved state.
	snapshot := *g.cfg
	snapshot.Groups = *g.groups.Clone()
	if err := g.outputManager.WriteConfig(&snapshot); err != nil {
		slog.Error("failed to write config", "error", err)
	}
}

// flushTelemetry emits a WindowStats when the window is complete.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	groupStats := g.sim.Stats()
	stats := g.collector.Flush(g.tick, aggregate(groupStats))
	stats.SimTimeSec = g.sim.Elapsed() / 1000
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
		logGroups(groupStats)
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// aggregate merges per-group snapshots into one telemetry sample.
func aggregate(groups []systems.GroupStats) telemetry.Sample {
	s := telemetry.Sample{Groups: len(groups)}
	for _, gs := range groups {
		s.Alive += gs.Alive
		s.Decaying += gs.Decaying
		s.Speeds = append(s.Speeds, gs.Speeds...)
		s.TrailPoints = append(s.TrailPoints, gs.TrailPoints...)
	}
	return s
}
