// Package trail implements the bounded position history drawn behind each
// entity. A trail is limited by the pixel length of its polyline rather than
// by point count.
package trail

import (
	"iter"

	"github.com/pthm-cable/flowtrails/vector"
)

// Trail is a polyline of recent positions, oldest first.
type Trail struct {
	points   []vector.Vec2
	segments []float64 // segments[i] is the length from points[i] to points[i+1]
	length   float64
	capacity float64
}

// New creates an empty trail with the given pixel budget.
func New(capacity float64) *Trail {
	return &Trail{capacity: capacity}
}

// Capacity returns the pixel budget.
func (t *Trail) Capacity() float64 {
	return t.capacity
}

// SetCapacity changes the pixel budget. Excess length is evicted on the next Push.
func (t *Trail) SetCapacity(capacity float64) {
	t.capacity = capacity
}

// Len returns the number of retained points.
func (t *Trail) Len() int {
	return len(t.points)
}

// PixelLength returns the accumulated polyline length.
func (t *Trail) PixelLength() float64 {
	return t.length
}

// Last returns the newest point.
func (t *Trail) Last() (vector.Vec2, bool) {
	if len(t.points) == 0 {
		return vector.Vec2{}, false
	}
	return t.points[len(t.points)-1], true
}

// Push appends p and evicts from the front until the polyline fits the
// budget. The newest point is always retained.
func (t *Trail) Push(p vector.Vec2) {
	if n := len(t.points); n > 0 {
		seg := t.points[n-1].DistanceTo(p)
		t.segments = append(t.segments, seg)
		t.length += seg
	}
	t.points = append(t.points, p)

	for t.length > t.capacity && len(t.points) > 1 {
		t.evictFront()
	}
}

// Pop removes the oldest point regardless of the budget.
func (t *Trail) Pop() {
	if len(t.points) == 0 {
		return
	}
	if len(t.points) == 1 {
		t.points = t.points[:0]
		return
	}
	t.evictFront()
}

func (t *Trail) evictFront() {
	t.length -= t.segments[0]
	t.segments = t.segments[1:]
	t.points = t.points[1:]
	if len(t.segments) == 0 {
		// Drop accumulated float error once nothing is left to sum.
		t.length = 0
	}
}

// All yields each point with its fraction along the trail, oldest first.
// The fraction is the polyline length up to the point divided by the capacity.
func (t *Trail) All() iter.Seq2[vector.Vec2, float64] {
	return func(yield func(vector.Vec2, float64) bool) {
		acc := 0.0
		for i, p := range t.points {
			if i > 0 {
				acc += t.segments[i-1]
			}
			fraction := 0.0
			if t.capacity > 0 {
				fraction = acc / t.capacity
			}
			if !yield(p, fraction) {
				return
			}
		}
	}
}
