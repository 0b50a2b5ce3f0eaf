package trail

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/flowtrails/vector"
)

// polylineLength sums point-to-point distances over retained points.
func polylineLength(tr *Trail) float64 {
	var total float64
	var prev vector.Vec2
	first := true
	for p := range tr.All() {
		if !first {
			total += prev.DistanceTo(p)
		}
		prev = p
		first = false
	}
	return total
}

func TestPushWithinBudget(t *testing.T) {
	tr := New(100)
	tr.Push(vector.New(0, 0))
	tr.Push(vector.New(10, 0))
	tr.Push(vector.New(20, 0))

	if tr.Len() != 3 {
		t.Fatalf("expected 3 points, got %d", tr.Len())
	}
	if tr.PixelLength() != 20 {
		t.Errorf("expected pixel length 20, got %f", tr.PixelLength())
	}
}

func TestPushEvictsFront(t *testing.T) {
	tr := New(25)
	for i := 0; i <= 5; i++ {
		tr.Push(vector.New(float64(i*10), 0))
	}

	// Only the last 20px (3 points) fit in a 25px budget
	if tr.Len() != 3 {
		t.Fatalf("expected 3 points, got %d", tr.Len())
	}
	if tr.PixelLength() != 20 {
		t.Errorf("expected pixel length 20, got %f", tr.PixelLength())
	}
	last, ok := tr.Last()
	if !ok || last.X != 50 {
		t.Errorf("expected newest point at x=50, got %v", last)
	}
}

func TestPushRetainsNewestPoint(t *testing.T) {
	tr := New(5)
	tr.Push(vector.New(0, 0))
	tr.Push(vector.New(100, 0))

	if tr.Len() != 1 {
		t.Fatalf("expected 1 point after oversized segment, got %d", tr.Len())
	}
	last, _ := tr.Last()
	if last.X != 100 {
		t.Errorf("expected newest point retained, got %v", last)
	}
	if tr.PixelLength() != 0 {
		t.Errorf("expected zero pixel length, got %f", tr.PixelLength())
	}
}

func TestLengthBoundRandomWalk(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	capacities := []float64{0, 1, 17, 100, 500}

	for _, c := range capacities {
		tr := New(c)
		pos := vector.New(0, 0)
		for i := 0; i < 2000; i++ {
			pos = pos.Add(vector.New(rng.Float64()*20-10, rng.Float64()*20-10))
			tr.Push(pos)

			got := polylineLength(tr)
			if got > c+1e-9 {
				t.Fatalf("capacity %v: polyline length %v exceeds budget after %d pushes", c, got, i+1)
			}
			if math.Abs(got-tr.PixelLength()) > 1e-6 {
				t.Fatalf("capacity %v: bookkeeping %v != measured %v", c, tr.PixelLength(), got)
			}
			if tr.Len() < 1 {
				t.Fatalf("capacity %v: trail lost its newest point", c)
			}
		}
	}
}

func TestCapacityChangeAppliesOnNextPush(t *testing.T) {
	tr := New(100)
	for i := 0; i < 10; i++ {
		tr.Push(vector.New(float64(i*10), 0))
	}
	if tr.Len() != 10 {
		t.Fatalf("expected 10 points, got %d", tr.Len())
	}

	tr.SetCapacity(30)
	if tr.Len() != 10 {
		t.Errorf("SetCapacity should not evict immediately, got %d points", tr.Len())
	}

	tr.Push(vector.New(100, 0))
	if tr.PixelLength() > 30 {
		t.Errorf("expected length <= 30 after push, got %f", tr.PixelLength())
	}
}

func TestFractions(t *testing.T) {
	tr := New(30)
	for i := 0; i < 10; i++ {
		tr.Push(vector.New(float64(i*10), 0))
	}

	var fractions []float64
	for _, f := range tr.All() {
		fractions = append(fractions, f)
	}

	if len(fractions) != tr.Len() {
		t.Fatalf("iterated %d points, trail has %d", len(fractions), tr.Len())
	}
	if fractions[0] != 0 {
		t.Errorf("expected first fraction 0, got %f", fractions[0])
	}
	for i := 1; i < len(fractions); i++ {
		if fractions[i] < fractions[i-1] {
			t.Errorf("fractions decrease at %d: %v", i, fractions)
		}
	}
	if last := fractions[len(fractions)-1]; math.Abs(last-1) > 1e-9 {
		t.Errorf("expected newest fraction ~1 at capacity, got %f", last)
	}
}

func TestAllIsRestartableAndStoppable(t *testing.T) {
	tr := New(100)
	for i := 0; i < 5; i++ {
		tr.Push(vector.New(float64(i), 0))
	}

	count := func() int {
		n := 0
		for range tr.All() {
			n++
		}
		return n
	}
	if a, b := count(), count(); a != 5 || b != 5 {
		t.Errorf("expected 5 points on each pass, got %d and %d", a, b)
	}

	n := 0
	for range tr.All() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("expected early break after 2, got %d", n)
	}
}

func TestPopDrainsTrail(t *testing.T) {
	tr := New(100)
	for i := 0; i < 4; i++ {
		tr.Push(vector.New(float64(i*5), 0))
	}

	for want := 3; want >= 0; want-- {
		tr.Pop()
		if tr.Len() != want {
			t.Fatalf("expected %d points after pop, got %d", want, tr.Len())
		}
	}
	if tr.PixelLength() != 0 {
		t.Errorf("expected zero length on empty trail, got %f", tr.PixelLength())
	}

	// Popping an empty trail is a no-op
	tr.Pop()
	if _, ok := tr.Last(); ok {
		t.Error("expected no last point on empty trail")
	}
}

func TestZeroCapacityFractions(t *testing.T) {
	tr := New(0)
	tr.Push(vector.New(1, 1))
	for p, f := range tr.All() {
		if f != 0 {
			t.Errorf("expected fraction 0 at zero capacity, got %f for %v", f, p)
		}
	}
}
