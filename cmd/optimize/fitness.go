package main

import (
	"math"
	"math/rand"
	"sync"

	"github.com/pthm-cable/flowtrails/config"
	"github.com/pthm-cable/flowtrails/gradient"
	"github.com/pthm-cable/flowtrails/noise"
	"github.com/pthm-cable/flowtrails/systems"
	"github.com/pthm-cable/flowtrails/telemetry"
	"github.com/pthm-cable/flowtrails/vector"
)

// Coverage grid resolution and warmup before cells start counting.
const (
	coverageCols  = 64
	coverageRows  = 40
	warmupSeconds = 2.0
	tuneGroupID   = "1"
)

// FitnessEvaluator runs headless simulations of one group and scores how
// much of the canvas its trails cover.
type FitnessEvaluator struct {
	params   *ParamVector
	base     *config.GroupConfig
	bounds   systems.Bounds
	dt       float64 // ms
	maxTicks int
	seeds    []int64

	mu           sync.Mutex
	lastCoverage float64
	lastSpeed    float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, base *config.GroupConfig, cfg *config.Config, maxTicks int, seeds []int64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:   params,
		base:     base,
		bounds:   systems.Bounds{Width: float64(cfg.Screen.Width), Height: float64(cfg.Screen.Height)},
		dt:       cfg.Sketch.FixedDT,
		maxTicks: maxTicks,
		seeds:    seeds,
	}
}

// LastCoverage returns the coverage and mean speed from the most recent
// evaluation.
func (fe *FitnessEvaluator) LastCoverage() (coverage, speed float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastCoverage, fe.lastSpeed
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	coverage float64
	speed    float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative coverage, scaled by how close entities run to their
// speed cap so stalled fields lose to flowing ones.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	groups := config.NewGroupSet()
	cfg := fe.base.Clone()
	fe.params.ApplyToGroup(cfg, x)
	groups.Set(tuneGroupID, cfg)

	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(groups, s)
		}(i, seed)
	}
	wg.Wait()

	var coverage, speed float64
	for _, r := range results {
		coverage += r.coverage
		speed += r.speed
	}
	n := float64(len(fe.seeds))
	coverage /= n
	speed /= n

	fe.mu.Lock()
	fe.lastCoverage = coverage
	fe.lastSpeed = speed
	fe.mu.Unlock()

	return computeFitness(coverage, speed, cfg.MaxVelocity)
}

// runSimulation executes a single headless run and measures coverage.
// The group set is only read, so seeds may share it.
func (fe *FitnessEvaluator) runSimulation(groups *config.GroupSet, seed int64) seedResult {
	sim := systems.NewSimulation(fe.bounds, noise.NewSet(seed), rand.New(rand.NewSource(seed)))
	sim.SyncGroups(groups.IDs())

	grid := newCoverageGrid(fe.bounds)
	warmup := int(warmupSeconds * 1000 / fe.dt)
	pointer := vector.New(fe.bounds.Width/2, fe.bounds.Height/2)

	var speeds []float64
	for tick := range fe.maxTicks {
		var r systems.Renderer
		if tick >= warmup {
			r = grid
		}
		sim.Tick(systems.Frame{DT: fe.dt, Pointer: pointer, Configs: groups}, r)
	}
	for _, gs := range sim.Stats() {
		speeds = append(speeds, gs.Speeds...)
	}
	mean, _, _, _ := telemetry.Distribution(speeds)
	return seedResult{coverage: grid.Coverage(), speed: mean}
}

// computeFitness combines coverage with a bonus of up to 20% for speed.
func computeFitness(coverage, speed, maxVelocity float64) float64 {
	flow := 0.0
	if maxVelocity > 0 {
		flow = clamp01(speed / maxVelocity)
	}
	return -(coverage * (1.0 + 0.2*flow))
}

// coverageGrid marks the cells trail segments pass through. It satisfies
// systems.Renderer so the simulation can draw into it.
type coverageGrid struct {
	bounds  systems.Bounds
	visited []bool
	count   int
}

func newCoverageGrid(b systems.Bounds) *coverageGrid {
	return &coverageGrid{bounds: b, visited: make([]bool, coverageCols*coverageRows)}
}

// DrawSegment marks the cell under the segment's end point.
func (c *coverageGrid) DrawSegment(_, to vector.Vec2, _ gradient.Color, _ float64) {
	if !c.bounds.Contains(to) {
		return
	}
	col := min(int(to.X/c.bounds.Width*coverageCols), coverageCols-1)
	row := min(int(to.Y/c.bounds.Height*coverageRows), coverageRows-1)
	i := row*coverageCols + col
	if !c.visited[i] {
		c.visited[i] = true
		c.count++
	}
}

// Coverage returns the visited fraction in [0, 1].
func (c *coverageGrid) Coverage() float64 {
	return float64(c.count) / float64(len(c.visited))
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Max(0, math.Min(1, x))
}
