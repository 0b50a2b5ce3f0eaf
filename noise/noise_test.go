package noise

import (
	"math"
	"testing"

	"github.com/pthm-cable/flowtrails/config"
)

func TestFieldsAreDeterministic(t *testing.T) {
	a := NewSet(42)
	b := NewSet(42)

	for _, kind := range []config.NoiseType{config.NoiseValue, config.NoiseGradient} {
		fa, fb := a.For(kind), b.For(kind)
		for i := 0; i < 50; i++ {
			x, y, z := float64(i)*0.37, float64(i)*0.11, float64(i)*0.05
			if fa.Angle(x, y, z) != fb.Angle(x, y, z) {
				t.Fatalf("%s: same seed produced different angles at %d", kind, i)
			}
		}
	}
}

func TestFieldsAreFinite(t *testing.T) {
	s := NewSet(7)
	for _, kind := range []config.NoiseType{config.NoiseValue, config.NoiseGradient} {
		f := s.For(kind)
		for i := 0; i < 200; i++ {
			a := f.Angle(float64(i)*1.3, float64(i)*-0.7, float64(i)*0.01)
			if math.IsNaN(a) || math.IsInf(a, 0) {
				t.Fatalf("%s: non-finite angle %v at %d", kind, a, i)
			}
		}
	}
}

func TestGradientNoiseRange(t *testing.T) {
	g := NewGradientNoise(3)
	for i := 0; i < 500; i++ {
		a := g.Angle(float64(i)*0.21, float64(i)*0.13, float64(i)*0.003)
		if math.Abs(a) > 2*math.Pi+1e-9 {
			t.Fatalf("angle %v outside one turn at %d", a, i)
		}
	}
}

func TestValueNoiseRemap(t *testing.T) {
	v := NewValueNoise(11)
	for i := 0; i < 100; i++ {
		x, y, z := float64(i)*0.29, float64(i)*0.17, 0.5
		raw := v.Raw(x, y, z)
		want := (raw - 0.25) * 4 * math.Pi
		if got := v.Angle(x, y, z); math.Abs(got-want) > 1e-9 {
			t.Fatalf("Angle = %v, want %v for raw %v", got, want, raw)
		}
	}
}

func TestSetFor(t *testing.T) {
	s := NewSet(1)
	if _, ok := s.For(config.NoiseGradient).(*GradientNoise); !ok {
		t.Error("expected gradient noise")
	}
	if _, ok := s.For(config.NoiseValue).(*ValueNoise); !ok {
		t.Error("expected value noise")
	}
	if _, ok := s.For("unknown").(*ValueNoise); !ok {
		t.Error("expected value noise fallback")
	}
}
