package telemetry

import (
	"math"
	"testing"
)

func TestCollectorWindow(t *testing.T) {
	// 1s windows at 100ms per tick.
	c := NewCollector(1, 100)
	if got := c.WindowDurationTicks(); got != 10 {
		t.Fatalf("WindowDurationTicks = %d, want 10", got)
	}
	if c.ShouldFlush(9) {
		t.Error("window should still be open at tick 9")
	}
	if !c.ShouldFlush(10) {
		t.Error("window should close at tick 10")
	}
}

func TestCollectorTinyWindow(t *testing.T) {
	c := NewCollector(0.001, 100)
	if got := c.WindowDurationTicks(); got != 1 {
		t.Errorf("WindowDurationTicks = %d, want 1", got)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1, 100)
	c.Record(Events{Spawned: 3, Expired: 1})
	c.Record(Events{Spawned: 2, Despawned: 1, Removed: 4})

	stats := c.Flush(10, Sample{
		Groups:      2,
		Alive:       4,
		Decaying:    1,
		Speeds:      []float64{0.1, 0.2, 0.3, 0.4},
		TrailPoints: []float64{2, 4},
	})

	if stats.Spawned != 5 || stats.Despawned != 1 || stats.Expired != 1 || stats.Removed != 4 {
		t.Errorf("events = %+v", stats)
	}
	if stats.WindowStartTick != 0 || stats.WindowEndTick != 10 {
		t.Errorf("window = [%d, %d], want [0, 10]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if math.Abs(stats.SimTimeSec-1) > 1e-9 {
		t.Errorf("SimTimeSec = %v, want 1", stats.SimTimeSec)
	}
	if math.Abs(stats.SpeedMean-0.25) > 1e-9 {
		t.Errorf("SpeedMean = %v, want 0.25", stats.SpeedMean)
	}
	if stats.TrailMean != 3 || stats.TrailStd != 1 {
		t.Errorf("trail = %v ± %v, want 3 ± 1", stats.TrailMean, stats.TrailStd)
	}

	// Counters reset and the next window starts where this one ended.
	next := c.Flush(20, Sample{})
	if next.Spawned != 0 || next.Removed != 0 {
		t.Errorf("expected counters reset, got %+v", next)
	}
	if next.WindowStartTick != 10 {
		t.Errorf("WindowStartTick = %d, want 10", next.WindowStartTick)
	}
}
