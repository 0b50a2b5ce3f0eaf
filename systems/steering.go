package systems

import (
	"github.com/pthm-cable/flowtrails/noise"
	"github.com/pthm-cable/flowtrails/vector"
)

const (
	// noiseMagnitude scales the unit vector taken from the noise field.
	noiseMagnitude = 3.0
	// edgeThreshold is the distance beyond which a border contributes.
	edgeThreshold = 100.0
)

// Bounds is the viewport in pixels.
type Bounds struct {
	Width, Height float64
}

// Contains reports whether p lies within the viewport, borders included.
func (b Bounds) Contains(p vector.Vec2) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= b.Width && p.Y <= b.Height
}

// noiseForce samples field at the scaled position and time.
func noiseForce(field noise.Field, pos vector.Vec2, time, scale, timeScale float64) vector.Vec2 {
	angle := field.Angle(pos.X*scale, pos.Y*scale, time*timeScale)
	return vector.FromAngle(angle).Mul(noiseMagnitude)
}

// edgeAvoidance sums a 1/d push away from every border farther than
// edgeThreshold. Borders within the threshold contribute nothing, so close
// to a border the opposite border's push dominates.
func edgeAvoidance(pos vector.Vec2, b Bounds) vector.Vec2 {
	var f vector.Vec2
	if d := pos.X; d > edgeThreshold {
		f.X += 1 / d
	}
	if d := b.Width - pos.X; d > edgeThreshold {
		f.X -= 1 / d
	}
	if d := pos.Y; d > edgeThreshold {
		f.Y += 1 / d
	}
	if d := b.Height - pos.Y; d > edgeThreshold {
		f.Y -= 1 / d
	}
	return f
}

// separationFrom returns the push on self away from a single neighbor,
// (self-other).Normalize()/d². Coincident points contribute nothing.
func separationFrom(self, other vector.Vec2) vector.Vec2 {
	d := self.DistanceTo(other)
	if d == 0 {
		return vector.Zero
	}
	return self.Sub(other).Normalize().Div(d * d)
}

// integrate applies steering over dt and clamps to maxVelocity. A
// non-finite result or a NaN or negative maxVelocity resets velocity to zero
// and leaves the position as is.
func integrate(pos, vel, steering vector.Vec2, dt, maxVelocity float64) (vector.Vec2, vector.Vec2) {
	if !(maxVelocity >= 0) {
		return pos, vector.Zero
	}
	nextVel := vel.Add(steering.Mul(dt)).Limit(maxVelocity)
	if !nextVel.IsFinite() {
		return pos, vector.Zero
	}
	nextPos := pos.Add(nextVel.Mul(dt))
	if !nextPos.IsFinite() {
		return pos, vector.Zero
	}
	return nextPos, nextVel
}
