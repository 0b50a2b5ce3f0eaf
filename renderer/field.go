package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowtrails/config"
	"github.com/pthm-cable/flowtrails/noise"
	"github.com/pthm-cable/flowtrails/vector"
)

const (
	fieldDotRadius = 4
	fieldArrowLen  = 10
)

// FieldOverlay draws the steering field one group sees as a grid of
// dots with heading ticks.
type FieldOverlay struct {
	steps int
	color rl.Color
}

// NewFieldOverlay creates an overlay with steps cells across the width.
func NewFieldOverlay(steps int) *FieldOverlay {
	if steps < 1 {
		steps = 30
	}
	return &FieldOverlay{
		steps: steps,
		color: rl.Color{R: 255, G: 255, B: 255, A: 160},
	}
}

// Draw samples field at each cell center with cfg's scales at elapsed ms.
func (o *FieldOverlay) Draw(field noise.Field, cfg *config.GroupConfig, elapsed, width, height float64) {
	if field == nil || cfg == nil {
		return
	}
	step := width / float64(o.steps)
	half := step / 2
	t := elapsed * cfg.NoiseTimeScale

	for py := half; py < height; py += step {
		for px := half; px < width; px += step {
			angle := field.Angle(px*cfg.NoiseScale, py*cfg.NoiseScale, t)
			tip := vector.New(px, py).Add(vector.FromAngle(angle).Mul(fieldArrowLen))

			center := rl.Vector2{X: float32(px), Y: float32(py)}
			rl.DrawCircleV(center, fieldDotRadius, o.color)
			rl.DrawLineV(center, rl.Vector2{X: float32(tip.X), Y: float32(tip.Y)}, o.color)
		}
	}
}
