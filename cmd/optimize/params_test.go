package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/flowtrails/config"
	"github.com/pthm-cable/flowtrails/gradient"
	"github.com/pthm-cable/flowtrails/systems"
	"github.com/pthm-cable/flowtrails/vector"
)

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector(config.DefaultGroup())
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9*math.Max(1, math.Abs(raw[i])) {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, back[i], raw[i])
		}
	}
}

func TestParamVectorLogScale(t *testing.T) {
	pv := &ParamVector{Specs: []ParamSpec{{Name: "x", Min: 0.001, Max: 10, Log: true}}}
	mid := pv.Denormalize([]float64{0.5})[0]
	if math.Abs(mid-0.1) > 1e-12 {
		t.Errorf("midpoint = %v, want 0.1", mid)
	}
}

func TestApplyToGroupClamps(t *testing.T) {
	cfg := config.DefaultGroup()
	pv := NewParamVector(cfg)
	pv.ApplyToGroup(cfg, []float64{1, 1, 1, 100, -5})
	if cfg.NoiseScale != 0.2 || cfg.MaxVelocity != 5 || cfg.EdgeAvoidWeight != -1 {
		t.Errorf("values not clamped: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("clamped config should validate: %v", err)
	}
}

func TestCoverageGrid(t *testing.T) {
	g := newCoverageGrid(systems.Bounds{Width: 640, Height: 400})
	g.DrawSegment(vector.Zero, vector.New(1, 1), gradient.Color{}, 1)
	g.DrawSegment(vector.Zero, vector.New(2, 2), gradient.Color{}, 1)
	g.DrawSegment(vector.Zero, vector.New(640, 400), gradient.Color{}, 1)
	g.DrawSegment(vector.Zero, vector.New(-5, 10), gradient.Color{}, 1)

	want := 2.0 / (coverageCols * coverageRows)
	if got := g.Coverage(); math.Abs(got-want) > 1e-12 {
		t.Errorf("Coverage() = %v, want %v", got, want)
	}
}

func TestComputeFitness(t *testing.T) {
	if got := computeFitness(0.5, 0, 1); got != -0.5 {
		t.Errorf("stalled fitness = %v, want -0.5", got)
	}
	if got := computeFitness(0.5, 2, 1); math.Abs(got+0.6) > 1e-12 {
		t.Errorf("full speed fitness = %v, want -0.6", got)
	}
	if got := computeFitness(0.5, 1, 0); got != -0.5 {
		t.Errorf("zero cap fitness = %v, want -0.5", got)
	}
}
