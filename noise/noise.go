// Package noise provides the scalar fields that steer entities. Each field
// maps a scaled (x, y, t) coordinate to a heading in radians.
package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/flowtrails/config"
)

// Field maps already-scaled coordinates to an angle in radians.
type Field interface {
	Angle(x, y, t float64) float64
}

// Octave settings for the value noise, matching the usual sketch defaults
// of four octaves with halving amplitude.
const (
	valueAlpha   = 2.0
	valueBeta    = 2.0
	valueOctaves = 4
)

// ValueNoise is smooth, low-contrast noise. Its output concentrates in
// the middle of the range, so the central band is stretched to a full turn.
type ValueNoise struct {
	p *perlin.Perlin
}

// NewValueNoise creates a value-noise field from seed.
func NewValueNoise(seed int64) *ValueNoise {
	return &ValueNoise{p: perlin.NewPerlin(valueAlpha, valueBeta, valueOctaves, seed)}
}

// Raw returns the underlying sample mapped to roughly [0, 1].
func (v *ValueNoise) Raw(x, y, t float64) float64 {
	return 0.5 + 0.5*v.p.Noise3D(x, y, t)
}

// Angle remaps the [0.25, 0.75] band to one full turn. Values outside the
// band are not clamped.
func (v *ValueNoise) Angle(x, y, t float64) float64 {
	n := v.Raw(x, y, t)
	return (n - 0.25) / 0.5 * 2 * math.Pi
}

// GradientNoise is higher-contrast simplex noise.
type GradientNoise struct {
	n opensimplex.Noise
}

// NewGradientNoise creates a gradient-noise field from seed.
func NewGradientNoise(seed int64) *GradientNoise {
	return &GradientNoise{n: opensimplex.New(seed)}
}

// Raw returns the simplex sample in [-1, 1]. Spatial coordinates are
// halved so both backends produce features of similar size.
func (g *GradientNoise) Raw(x, y, t float64) float64 {
	return g.n.Eval3(x*0.5, y*0.5, t)
}

// Angle scales the raw sample by one full turn.
func (g *GradientNoise) Angle(x, y, t float64) float64 {
	return g.Raw(x, y, t) * 2 * math.Pi
}

// Set holds one instance of each backend sharing a seed.
type Set struct {
	Value    *ValueNoise
	Gradient *GradientNoise
}

// NewSet creates both backends from seed.
func NewSet(seed int64) *Set {
	return &Set{
		Value:    NewValueNoise(seed),
		Gradient: NewGradientNoise(seed),
	}
}

// For returns the field for kind. Unknown kinds fall back to value noise.
func (s *Set) For(kind config.NoiseType) Field {
	if kind == config.NoiseGradient {
		return s.Gradient
	}
	return s.Value
}
