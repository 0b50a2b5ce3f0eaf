// Command noisestats samples each noise backend over a grid and reports
// how the resulting headings are distributed. Value noise clusters around
// the middle of its range, so the two backends need different stretching;
// this tool shows whether a full turn is actually reached.
//
// Usage: go run ./cmd/noisestats -out noise.csv
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/flowtrails/config"
	"github.com/pthm-cable/flowtrails/noise"
	"github.com/pthm-cable/flowtrails/telemetry"
)

// sectors splits a turn into equal bins for the histogram columns.
const sectors = 8

// backendRow summarizes one backend at one scale.
type backendRow struct {
	NoiseType  config.NoiseType `csv:"noise_type"`
	NoiseScale float64          `csv:"noise_scale"`
	Samples    int              `csv:"samples"`
	AngleMean  float64          `csv:"angle_mean"`
	AngleStd   float64          `csv:"angle_std"`
	AngleP10   float64          `csv:"angle_p10"`
	AngleP50   float64          `csv:"angle_p50"`
	AngleP90   float64          `csv:"angle_p90"`
	Sectors    string           `csv:"sector_fractions"`
	Empty      int              `csv:"empty_sectors"`
}

func main() {
	seed := flag.Int64("seed", 1, "Noise seed")
	grid := flag.Int("grid", 200, "Samples per axis")
	frames := flag.Int("frames", 10, "Time slices")
	span := flag.Float64("span", 1280, "Sketch pixels covered per axis")
	out := flag.String("out", "", "CSV output path (empty = stdout)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	d := config.DefaultGroup()
	scales := []float64{d.NoiseScale / 10, d.NoiseScale, d.NoiseScale * 10}
	fields := noise.NewSet(*seed)

	var rows []backendRow
	for _, kind := range []config.NoiseType{config.NoiseValue, config.NoiseGradient} {
		for _, scale := range scales {
			angles := sample(fields.For(kind), *grid, *frames, *span, scale, d.NoiseTimeScale)
			row := summarize(kind, scale, angles)
			slog.Info("sampled",
				"noise_type", kind,
				"noise_scale", scale,
				"mean", row.AngleMean,
				"p10", row.AngleP10,
				"p90", row.AngleP90,
				"empty_sectors", row.Empty,
			)
			rows = append(rows, row)
		}
	}

	if *out == "" {
		if err := gocsv.Marshal(rows, os.Stdout); err != nil {
			slog.Error("failed to write csv", "error", err)
			os.Exit(1)
		}
		return
	}
	f, err := os.Create(*out)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		slog.Error("failed to write csv", "error", err)
		os.Exit(1)
	}
}

// sample reads the field on a grid over frames one second apart, scaling
// coordinates the way the simulation does.
func sample(field noise.Field, grid, frames int, span, scale, timeScale float64) []float64 {
	step := span / float64(grid)
	angles := make([]float64, 0, grid*grid*frames)
	for f := range frames {
		t := float64(f) * 1000 * timeScale
		for j := range grid {
			for i := range grid {
				x := (float64(i) + 0.5) * step
				y := (float64(j) + 0.5) * step
				angles = append(angles, field.Angle(x*scale, y*scale, t))
			}
		}
	}
	return angles
}

func summarize(kind config.NoiseType, scale float64, angles []float64) backendRow {
	mean, p10, p50, p90 := telemetry.Distribution(angles)
	_, std := telemetry.MeanStd(angles)

	var counts [sectors]int
	for _, a := range angles {
		turn := math.Mod(a, 2*math.Pi)
		if turn < 0 {
			turn += 2 * math.Pi
		}
		counts[min(int(turn/(2*math.Pi)*sectors), sectors-1)]++
	}

	row := backendRow{
		NoiseType:  kind,
		NoiseScale: scale,
		Samples:    len(angles),
		AngleMean:  mean,
		AngleStd:   std,
		AngleP10:   p10,
		AngleP50:   p50,
		AngleP90:   p90,
	}
	for i, c := range counts {
		if c == 0 {
			row.Empty++
		}
		if i > 0 {
			row.Sectors += " "
		}
		frac := 0.0
		if len(angles) > 0 {
			frac = float64(c) / float64(len(angles))
		}
		row.Sectors += fmt.Sprintf("%.3f", frac)
	}
	return row
}
