// Noise field preview tool: shows the heading a group's entities would
// take at each point, with sliders for the noise parameters.
//
// Usage: go run ./cmd/fieldpreview
package main

import (
	"fmt"
	"image/color"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/flowtrails/config"
	"github.com/pthm-cable/flowtrails/noise"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 128
	sketchSpan   = 1280.0 // sketch pixels covered by the preview
)

// fieldParams are the group settings that shape the field.
type fieldParams struct {
	NoiseScale     float64          `yaml:"noiseScale"`
	NoiseTimeScale float64          `yaml:"noiseTimeScale"`
	NoiseType      config.NoiseType `yaml:"noiseType"`
	seed           int64
}

func defaultParams() fieldParams {
	d := config.DefaultGroup()
	return fieldParams{
		NoiseScale:     d.NoiseScale,
		NoiseTimeScale: d.NoiseTimeScale,
		NoiseType:      d.NoiseType,
		seed:           1,
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Flow Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()
	fields := noise.NewSet(params.seed)

	angles := make([]float64, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var elapsed float64 // ms
	animating := false
	needsRegen := true

	for !rl.WindowShouldClose() {
		if animating {
			elapsed += float64(rl.GetFrameTime()) * 1000
			needsRegen = true
		}
		if needsRegen {
			sampleField(angles, fields.For(params.NoiseType), params, elapsed)
			updateTexture(texture, angles)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		lo, hi, mean := angleRange(angles)
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Heading min: %.2f  max: %.2f  mean: %.2f rad", lo, hi, mean), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Time: %.1fs", elapsed/1000), 15, statsY+20, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)
		rl.DrawText("Noise Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		if v, ok := logSlider(panelX, &panelY, "Noise scale", params.NoiseScale, 0.00001, 0.2); ok {
			params.NoiseScale = v
			needsRegen = true
		}
		if v, ok := logSlider(panelX, &panelY, "Time scale", params.NoiseTimeScale, 1.0/180000, 1.0/900); ok {
			params.NoiseTimeScale = v
			needsRegen = true
		}

		rl.DrawText("Seed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSeed := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"", "",
			float32(params.seed), 0, 99999,
		)
		rl.DrawText(fmt.Sprintf("%d", params.seed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int64(newSeed) != params.seed {
			params.seed = int64(newSeed)
			fields = noise.NewSet(params.seed)
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			elapsed = 0
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, string(params.NoiseType)) {
			params.NoiseType = params.NoiseType.Next()
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			fields = noise.NewSet(params.seed)
			elapsed = 0
			needsRegen = true
		}
		panelY += 55

		snippet := groupSnippet(params)
		rl.DrawText("Group YAML:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		rl.DrawText(snippet, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(snippet)
		}

		rl.EndDrawing()
	}
}

// logSlider draws a labelled slider on a log10 scale and advances y.
func logSlider(x float32, y *float32, label string, value, lo, hi float64) (float64, bool) {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	pos := float32(math.Log10(math.Max(lo, math.Min(hi, value))))
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		"", "",
		pos, float32(math.Log10(lo)), float32(math.Log10(hi)),
	)
	rl.DrawText(fmt.Sprintf("%.6f", value), int32(x+float32(panelWidth-70)), int32(*y+2), 14, rl.DarkGray)
	*y += 35
	if next == pos {
		return value, false
	}
	return math.Pow(10, float64(next)), true
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// sampleField fills angles with the field's heading at each grid cell,
// scaled the way the simulation scales entity positions.
func sampleField(angles []float64, field noise.Field, params fieldParams, elapsed float64) {
	step := sketchSpan / gridSize
	t := elapsed * params.NoiseTimeScale
	for j := range gridSize {
		for i := range gridSize {
			x := (float64(i) + 0.5) * step
			y := (float64(j) + 0.5) * step
			angles[j*gridSize+i] = field.Angle(x*params.NoiseScale, y*params.NoiseScale, t)
		}
	}
}

func angleRange(angles []float64) (lo, hi, mean float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, a := range angles {
		lo = math.Min(lo, a)
		hi = math.Max(hi, a)
		mean += a
	}
	return lo, hi, mean / float64(len(angles))
}

// updateTexture colors each cell by heading: hue is the direction.
func updateTexture(texture rl.Texture2D, angles []float64) {
	pixels := make([]color.RGBA, len(angles))
	for i, a := range angles {
		hue := math.Mod(a*180/math.Pi, 360)
		if hue < 0 {
			hue += 360
		}
		r, g, b := colorful.Hsv(hue, 0.65, 0.9).RGB255()
		pixels[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}

// groupSnippet renders the parameters as YAML ready to paste into a group.
func groupSnippet(params fieldParams) string {
	data, err := yaml.Marshal(params)
	if err != nil {
		return err.Error()
	}
	return string(data)
}
