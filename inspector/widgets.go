package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Widget colors
var (
	ColorBarBg       = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill     = rl.Color{R: 100, G: 180, B: 100, A: 255}
	ColorBarLow      = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorAngleBg     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 200, B: 100, A: 255}
	ColorBoolOn      = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff     = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

// Widgets put their value column this far right of the label.
const (
	valueOffset = 100
	barWidth    = 90
	barHeight   = 14
	dialSize    = 36
)

// DrawLabel renders "name: value" and returns the row height.
func DrawLabel(x, y int32, name string, value any, options map[string]string) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)
	rl.DrawText(FormatValue(value, options["fmt"]), x+valueOffset, y, 14, ColorText)
	return 20
}

// DrawBar renders value as a fraction of the max option. The fill shifts
// from red to green as the bar fills.
func DrawBar(x, y int32, name string, value float32, options map[string]string) int32 {
	ratio := value / GetMax(options)
	ratio = float32(math.Max(0, math.Min(1, float64(ratio))))

	rl.DrawText(name, x, y, 14, ColorTextDim)
	barX := x + valueOffset
	rl.DrawRectangle(barX, y, barWidth, barHeight, ColorBarBg)
	rl.DrawRectangle(barX, y, int32(barWidth*ratio), barHeight, lerpColor(ColorBarLow, ColorBarFill, ratio))
	rl.DrawText(fmt.Sprintf("%.3f", value), barX+barWidth+5, y, 12, ColorTextDim)
	return 20
}

// DrawAngle renders a dial with a needle pointing along radians.
func DrawAngle(x, y int32, name string, radians float32) int32 {
	r := float32(dialSize / 2)
	center := rl.Vector2{X: float32(x+valueOffset) + r, Y: float32(y) + r}

	rl.DrawText(name, x, y+dialSize/2-7, 14, ColorTextDim)
	rl.DrawCircleV(center, r, ColorAngleBg)
	rl.DrawCircleLinesV(center, r, ColorTextDim)

	a := float64(radians)
	tip := rl.Vector2{
		X: center.X + (r-4)*float32(math.Cos(a)),
		Y: center.Y + (r-4)*float32(math.Sin(a)),
	}
	rl.DrawLineEx(center, tip, 2, ColorAngleNeedle)

	rl.DrawText(fmt.Sprintf("%.0f deg", a*180/math.Pi), x+valueOffset+dialSize+6, y+dialSize/2-7, 12, ColorTextDim)
	return dialSize + 8
}

// DrawBool renders a colored ON/OFF chip.
func DrawBool(x, y int32, name string, value bool) int32 {
	color, text := ColorBoolOff, "OFF"
	if value {
		color, text = ColorBoolOn, "ON"
	}
	rl.DrawText(name, x, y, 14, ColorTextDim)
	rl.DrawRectangle(x+valueOffset, y, barHeight, barHeight, color)
	rl.DrawText(text, x+valueOffset+barHeight+5, y, 14, color)
	return 20
}

// DrawField draws f with its widget, falling back to a label when the
// value does not fit the widget.
func DrawField(x, y int32, f Field) int32 {
	switch f.Widget {
	case WidgetBar:
		if v, ok := GetFloatValue(f.Value); ok {
			return DrawBar(x, y, f.Name, v, f.Options)
		}
	case WidgetAngle:
		if v, ok := GetFloatValue(f.Value); ok {
			return DrawAngle(x, y, f.Name, v)
		}
	case WidgetBool:
		if v, ok := f.Value.(bool); ok {
			return DrawBool(x, y, f.Name, v)
		}
	}
	return DrawLabel(x, y, f.Name, f.Value, f.Options)
}

// rowHeight is the height DrawField uses for f.
func rowHeight(f Field) int32 {
	if f.Widget == WidgetAngle {
		return dialSize + 8
	}
	return 20
}

func lerpColor(a, b rl.Color, t float32) rl.Color {
	mix := func(p, q uint8) uint8 {
		return uint8(float32(p) + (float32(q)-float32(p))*t)
	}
	return rl.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
