// Package renderer draws the sketch with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowtrails/gradient"
	"github.com/pthm-cable/flowtrails/vector"
)

// TrailRenderer draws trail segments as thick lines with round joints.
type TrailRenderer struct {
	segments int
}

// NewTrailRenderer creates a trail renderer.
func NewTrailRenderer() *TrailRenderer {
	return &TrailRenderer{}
}

// Begin resets the per-frame segment count.
func (r *TrailRenderer) Begin() {
	r.segments = 0
}

// Segments returns the number of segments drawn since Begin.
func (r *TrailRenderer) Segments() int {
	return r.segments
}

// DrawSegment draws one stroke from one trail point to the next.
func (r *TrailRenderer) DrawSegment(from, to vector.Vec2, c gradient.Color, width float64) {
	col := ToRGBA(c)
	if col.A == 0 || width <= 0 {
		return
	}
	a := rl.Vector2{X: float32(from.X), Y: float32(from.Y)}
	b := rl.Vector2{X: float32(to.X), Y: float32(to.Y)}
	w := float32(width)

	rl.DrawLineEx(a, b, w, col)
	// Round the joint so consecutive segments read as one stroke.
	if w >= 2 {
		rl.DrawCircleV(b, w/2, col)
	}
	r.segments++
}

// ToRGBA converts a gradient color to an 8-bit color. RGB channels are
// clamped to [0, 255] and alpha is scaled up from [0, 1].
func ToRGBA(c gradient.Color) rl.Color {
	return rl.Color{
		R: channel(c[0]),
		G: channel(c[1]),
		B: channel(c[2]),
		A: channel(c[3] * 255),
	}
}

func channel(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
