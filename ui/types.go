// Package ui draws the heads-up display and the group parameter panel.
// Editable parameters are described by metadata so the panel layout is
// driven by the group configuration rather than hard-coded per field.
package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowtrails/config"
)

// SliderScale selects how a slider position maps to a value.
type SliderScale int

const (
	ScaleLinear SliderScale = iota // position is the value
	ScaleLog                       // position is log10(value); Min must be positive
	ScaleInt                       // linear, rounded to whole numbers
)

// SliderDescriptor defines one editable group parameter.
type SliderDescriptor struct {
	Label  string
	Min    float64
	Max    float64
	Scale  SliderScale
	Format string
	Get    func(*config.GroupConfig) float64
	Set    func(*config.GroupConfig, float64)
}

// Position maps v to slider space, clamped to the range.
func (d SliderDescriptor) Position(v float64) float32 {
	v = math.Max(d.Min, math.Min(d.Max, v))
	if d.Scale == ScaleLog {
		return float32(math.Log10(v))
	}
	return float32(v)
}

// Range returns the slider-space bounds.
func (d SliderDescriptor) Range() (lo, hi float32) {
	return d.Position(d.Min), d.Position(d.Max)
}

// Value maps a slider position back to a parameter value.
func (d SliderDescriptor) Value(pos float32) float64 {
	switch d.Scale {
	case ScaleLog:
		return math.Pow(10, float64(pos))
	case ScaleInt:
		return math.Round(float64(pos))
	default:
		return float64(pos)
	}
}

// Text formats the current value for display.
func (d SliderDescriptor) Text(cfg *config.GroupConfig) string {
	return fmt.Sprintf(d.Format, d.Get(cfg))
}

// GroupSliders returns the editable group parameters in panel order.
func GroupSliders() []SliderDescriptor {
	return []SliderDescriptor{
		{
			Label: "Amount", Min: 1, Max: 3000, Scale: ScaleInt, Format: "%.0f",
			Get: func(c *config.GroupConfig) float64 { return float64(c.TargetAmount) },
			Set: func(c *config.GroupConfig, v float64) { c.TargetAmount = int(v) },
		},
		{
			Label: "Acceleration", Min: 0.0005, Max: 10, Scale: ScaleLog, Format: "%.4f",
			Get: func(c *config.GroupConfig) float64 { return c.SteeringThreshold },
			Set: func(c *config.GroupConfig, v float64) { c.SteeringThreshold = v },
		},
		{
			Label: "Max velocity", Min: 0.05, Max: 2, Format: "%.2f",
			Get: func(c *config.GroupConfig) float64 { return c.MaxVelocity },
			Set: func(c *config.GroupConfig, v float64) { c.MaxVelocity = v },
		},
		{
			Label: "Noise scale", Min: 0.00001, Max: 0.2, Scale: ScaleLog, Format: "%.5f",
			Get: func(c *config.GroupConfig) float64 { return c.NoiseScale },
			Set: func(c *config.GroupConfig, v float64) { c.NoiseScale = v },
		},
		{
			Label: "Time scale", Min: 1.0 / 180000, Max: 1.0 / 900, Scale: ScaleLog, Format: "%.6f",
			Get: func(c *config.GroupConfig) float64 { return c.NoiseTimeScale },
			Set: func(c *config.GroupConfig, v float64) { c.NoiseTimeScale = v },
		},
		{
			Label: "Avoid edges", Min: 0, Max: 2000, Format: "%.0f",
			Get: func(c *config.GroupConfig) float64 { return c.EdgeAvoidWeight },
			Set: func(c *config.GroupConfig, v float64) { c.EdgeAvoidWeight = v },
		},
		{
			Label: "Width", Min: 0.2, Max: 20, Format: "%.1f",
			Get: func(c *config.GroupConfig) float64 { return c.StrokeWidth },
			Set: func(c *config.GroupConfig, v float64) { c.StrokeWidth = v },
		},
		{
			Label: "Length", Min: 5, Max: 500, Scale: ScaleInt, Format: "%.0f",
			Get: func(c *config.GroupConfig) float64 { return c.TrailPixelLength },
			Set: func(c *config.GroupConfig, v float64) { c.TrailPixelLength = v },
		},
		{
			Label: "Separation", Min: 1, Max: 10000, Scale: ScaleLog, Format: "%.0f",
			Get: func(c *config.GroupConfig) float64 { return c.SeparationWeight },
			Set: func(c *config.GroupConfig, v float64) { c.SeparationWeight = v },
		},
		{
			Label: "Follow", Min: 1, Max: 10000, Scale: ScaleLog, Format: "%.0f",
			Get: func(c *config.GroupConfig) float64 { return c.FollowWeight },
			Set: func(c *config.GroupConfig, v float64) { c.FollowWeight = v },
		},
	}
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	MutedColor     rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 230},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.White,
		MutedColor:     rl.Color{R: 150, G: 150, B: 150, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     100,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
