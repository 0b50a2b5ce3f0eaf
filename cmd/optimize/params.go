package main

import (
	"math"

	"github.com/pthm-cable/flowtrails/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Log     bool    // normalized on a log10 scale
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable group parameters,
// starting from base.
func NewParamVector(base *config.GroupConfig) *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "noise_scale", Min: 0.00001, Max: 0.2, Default: base.NoiseScale, Log: true},
			{Name: "noise_time_scale", Min: 1.0 / 180000, Max: 1.0 / 900, Default: base.NoiseTimeScale, Log: true},
			{Name: "steering_threshold", Min: 0.0001, Max: 0.2, Default: base.SteeringThreshold, Log: true},
			{Name: "max_velocity", Min: 0.01, Max: 5, Default: base.MaxVelocity},
			{Name: "edge_avoid_weight", Min: -1, Max: 1, Default: base.EdgeAvoidWeight},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice, clamped
// so an out-of-range base config still starts inside the box.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return pv.Clamp(v)
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		if spec.Log {
			lo, hi := math.Log10(spec.Min), math.Log10(spec.Max)
			normalized[i] = (math.Log10(raw[i]) - lo) / (hi - lo)
			continue
		}
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		if spec.Log {
			lo, hi := math.Log10(spec.Min), math.Log10(spec.Max)
			raw[i] = math.Pow(10, lo+normalized[i]*(hi-lo))
			continue
		}
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Max(spec.Min, math.Min(spec.Max, v[i]))
	}
	return clamped
}

// ApplyToGroup writes parameter values into a group config.
// Order must match Specs order.
func (pv *ParamVector) ApplyToGroup(cfg *config.GroupConfig, values []float64) {
	clamped := pv.Clamp(values)
	cfg.NoiseScale = clamped[0]
	cfg.NoiseTimeScale = clamped[1]
	cfg.SteeringThreshold = clamped[2]
	cfg.MaxVelocity = clamped[3]
	cfg.EdgeAvoidWeight = clamped[4]
}
