package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/pthm-cable/flowtrails/gradient"
)

// ErrInvalidGroup is returned for group configurations that cannot be simulated.
var ErrInvalidGroup = errors.New("config: invalid group")

// SpawnLocation selects where new entities appear.
type SpawnLocation string

const (
	SpawnEdge     SpawnLocation = "edge"
	SpawnAnywhere SpawnLocation = "anywhere"
	SpawnMouse    SpawnLocation = "mouse"
)

// UnmarshalText accepts the canonical names plus the legacy "anyware" spelling.
func (s *SpawnLocation) UnmarshalText(text []byte) error {
	switch v := SpawnLocation(text); v {
	case SpawnEdge, SpawnAnywhere, SpawnMouse:
		*s = v
	case "anyware":
		*s = SpawnAnywhere
	default:
		return fmt.Errorf("%w: unknown spawn location %q", ErrInvalidGroup, text)
	}
	return nil
}

// Next cycles through the spawn locations.
func (s SpawnLocation) Next() SpawnLocation {
	switch s {
	case SpawnEdge:
		return SpawnAnywhere
	case SpawnAnywhere:
		return SpawnMouse
	default:
		return SpawnEdge
	}
}

// NoiseType selects the noise backend steering a group.
type NoiseType string

const (
	NoiseValue    NoiseType = "valueNoise"
	NoiseGradient NoiseType = "gradientNoise"
)

// UnmarshalText accepts the canonical names plus "perlin" and "simplex".
func (n *NoiseType) UnmarshalText(text []byte) error {
	switch v := NoiseType(text); v {
	case NoiseValue, NoiseGradient:
		*n = v
	case "perlin":
		*n = NoiseValue
	case "simplex":
		*n = NoiseGradient
	default:
		return fmt.Errorf("%w: unknown noise type %q", ErrInvalidGroup, text)
	}
	return nil
}

// Next toggles between the two backends.
func (n NoiseType) Next() NoiseType {
	if n == NoiseGradient {
		return NoiseValue
	}
	return NoiseGradient
}

// GroupConfig holds the live-tunable parameters of one entity group.
// Durations are in milliseconds, distances in pixels.
type GroupConfig struct {
	TargetAmount      int           `json:"targetAmount" yaml:"targetAmount"`
	SpawnLocation     SpawnLocation `json:"spawnLocation" yaml:"spawnLocation"`
	SteeringThreshold float64       `json:"steeringThreshold" yaml:"steeringThreshold"` // max steering magnitude
	MaxVelocity       float64       `json:"maxVelocity" yaml:"maxVelocity"`
	NoiseScale        float64       `json:"noiseScale" yaml:"noiseScale"`
	NoiseTimeScale    float64       `json:"noiseTimeScale" yaml:"noiseTimeScale"`
	NoiseType         NoiseType     `json:"noiseType" yaml:"noiseType"`
	TrailPixelLength  float64       `json:"trailPixelLength" yaml:"trailPixelLength"`
	StrokeWidth       float64       `json:"strokeWidth" yaml:"strokeWidth"`
	EdgeAvoidWeight   float64       `json:"edgeAvoidWeight" yaml:"edgeAvoidWeight"`

	SeparationTargetGroupID string  `json:"separationTargetGroupId" yaml:"separationTargetGroupId"`
	SeparationWeight        float64 `json:"separationWeight" yaml:"separationWeight"`

	// Follow is persisted but does not affect steering.
	FollowTargetGroupID string  `json:"followTargetGroupId" yaml:"followTargetGroupId"`
	FollowWeight        float64 `json:"followWeight" yaml:"followWeight"`

	ColorAnimation gradient.Animation `json:"colorAnimation" yaml:"colorAnimation"`
}

// DefaultGradient is the gradient a new group starts with.
const DefaultGradient = "rgba(0,0,0,1) 0%, rgba(10,0,208,1) 100%"

// DefaultGroup returns the configuration of a freshly added group.
func DefaultGroup() *GroupConfig {
	return &GroupConfig{
		TargetAmount:      200,
		SpawnLocation:     SpawnEdge,
		SteeringThreshold: 0.003,
		MaxVelocity:       0.5,
		NoiseScale:        1.0 / 500,
		NoiseTimeScale:    1.0 / 9000,
		NoiseType:         NoiseValue,
		TrailPixelLength:  100,
		StrokeWidth:       4,
		ColorAnimation: gradient.Animation{
			Stops: []gradient.Stop{
				{Gradient: gradient.MustParse(DefaultGradient), Hold: 8000},
			},
		},
	}
}

// Validate rejects values the simulation cannot use.
func (g *GroupConfig) Validate() error {
	if g.TargetAmount < 0 {
		return fmt.Errorf("%w: negative target amount %d", ErrInvalidGroup, g.TargetAmount)
	}
	if g.TrailPixelLength < 0 {
		return fmt.Errorf("%w: negative trail length %v", ErrInvalidGroup, g.TrailPixelLength)
	}
	if g.StrokeWidth < 0 {
		return fmt.Errorf("%w: negative stroke width %v", ErrInvalidGroup, g.StrokeWidth)
	}
	if !(g.MaxVelocity >= 0) {
		return fmt.Errorf("%w: invalid max velocity %v", ErrInvalidGroup, g.MaxVelocity)
	}
	if !(g.SteeringThreshold >= 0) {
		return fmt.Errorf("%w: invalid steering threshold %v", ErrInvalidGroup, g.SteeringThreshold)
	}
	for i, s := range g.ColorAnimation.Stops {
		if s.Hold < 0 {
			return fmt.Errorf("%w: stop %d has negative hold %v", ErrInvalidGroup, i, s.Hold)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (g *GroupConfig) Clone() *GroupConfig {
	c := *g
	if g.ColorAnimation.Stops != nil {
		c.ColorAnimation.Stops = make([]gradient.Stop, len(g.ColorAnimation.Stops))
		for i, s := range g.ColorAnimation.Stops {
			c.ColorAnimation.Stops[i] = gradient.Stop{Gradient: slices.Clone(s.Gradient), Hold: s.Hold}
		}
	}
	return &c
}
