package telemetry

// Events counts lifecycle events reported by the simulation.
type Events struct {
	Spawned   int
	Despawned int
	Expired   int
	Removed   int
}

// Sample is the population state at the end of a window.
type Sample struct {
	Groups      int
	Alive       int
	Decaying    int
	Speeds      []float64
	TrailPoints []float64
}

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int64
	dtMS                float64

	windowStartTick int64
	events          Events
}

// NewCollector creates a collector. windowSec is the window length in
// simulated seconds and dtMS the simulated milliseconds per tick.
func NewCollector(windowSec, dtMS float64) *Collector {
	ticks := int64(1)
	if dtMS > 0 {
		ticks = max(int64(windowSec*1000/dtMS), 1)
	}
	return &Collector{
		windowDurationTicks: ticks,
		dtMS:                dtMS,
	}
}

// Record adds e to the current window.
func (c *Collector) Record(e Events) {
	c.events.Spawned += e.Spawned
	c.events.Despawned += e.Despawned
	c.events.Expired += e.Expired
	c.events.Removed += e.Removed
}

// ShouldFlush reports whether the window ending at currentTick is complete.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces the stats for the window ending at currentTick and
// starts a new one.
func (c *Collector) Flush(currentTick int64, sample Sample) WindowStats {
	speedMean, speedP10, speedP50, speedP90 := Distribution(sample.Speeds)
	trailMean, trailStd := MeanStd(sample.TrailPoints)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dtMS / 1000,

		Groups:   sample.Groups,
		Alive:    sample.Alive,
		Decaying: sample.Decaying,

		Spawned:   c.events.Spawned,
		Despawned: c.events.Despawned,
		Expired:   c.events.Expired,
		Removed:   c.events.Removed,

		SpeedMean: speedMean,
		SpeedP10:  speedP10,
		SpeedP50:  speedP50,
		SpeedP90:  speedP90,

		TrailMean: trailMean,
		TrailStd:  trailStd,
	}

	c.windowStartTick = currentTick
	c.events = Events{}
	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
