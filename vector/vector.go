// Package vector provides the immutable 2D vector used for positions,
// velocities and steering forces.
package vector

import "math"

// Vec2 is a 2D vector. All methods return new values.
type Vec2 struct {
	X, Y float64
}

// Zero is the zero vector.
var Zero = Vec2{}

// New returns the vector (x, y).
func New(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// FromAngle returns the unit vector pointing at the given angle in radians.
func FromAngle(radians float64) Vec2 {
	return Vec2{X: math.Cos(radians), Y: math.Sin(radians)}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// AddScalar adds s to both components.
func (v Vec2) AddScalar(s float64) Vec2 {
	return Vec2{X: v.X + s, Y: v.Y + s}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// SubScalar subtracts s from both components.
func (v Vec2) SubScalar(s float64) Vec2 {
	return Vec2{X: v.X - s, Y: v.Y - s}
}

// Mul scales v by s.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// MulVec multiplies component-wise.
func (v Vec2) MulVec(o Vec2) Vec2 {
	return Vec2{X: v.X * o.X, Y: v.Y * o.Y}
}

// Div divides both components by s. The caller guards s == 0.
func (v Vec2) Div(s float64) Vec2 {
	return Vec2{X: v.X / s, Y: v.Y / s}
}

// DivVec divides component-wise.
func (v Vec2) DivVec(o Vec2) Vec2 {
	return Vec2{X: v.X / o.X, Y: v.Y / o.Y}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Equals reports exact component equality.
func (v Vec2) Equals(o Vec2) bool {
	return v.X == o.X && v.Y == o.Y
}

// Dot returns the dot product.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Len returns the Euclidean length.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Angle returns the direction of v in radians.
func (v Vec2) Angle() float64 {
	return -math.Atan2(-v.Y, v.X)
}

// Normalize returns the unit vector with the direction of v.
// It is computed through the angle, so the zero vector yields (1, 0).
func (v Vec2) Normalize() Vec2 {
	return FromAngle(v.Angle())
}

// AngleTo returns the unsigned angle between v and o.
func (v Vec2) AngleTo(o Vec2) float64 {
	return math.Acos(v.Dot(o) / (v.Len() * o.Len()))
}

// Limit clamps the length of v to maxLen.
func (v Vec2) Limit(maxLen float64) Vec2 {
	if v.Len() > maxLen {
		return v.Normalize().Mul(maxLen)
	}
	return v
}

// DistanceTo returns the distance between v and o.
func (v Vec2) DistanceTo(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// IsFinite reports whether both components are neither NaN nor infinite.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
