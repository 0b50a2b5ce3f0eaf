package gradient

// Stop is one keyframe of an animation: a gradient shown for Hold
// milliseconds before fading into the next one.
type Stop struct {
	Gradient Gradient `json:"gradient" yaml:"gradient"`
	Hold     float64  `json:"holdDuration" yaml:"holdDuration"`
}

// Animation cross-fades between its stops in a loop.
type Animation struct {
	Stops   []Stop  `json:"stops" yaml:"stops"`
	Index   int     `json:"currentIndex" yaml:"currentIndex"`
	Elapsed float64 `json:"elapsed" yaml:"elapsed"`
}

// NewAnimation creates an animation starting at the first stop.
func NewAnimation(stops ...Stop) *Animation {
	return &Animation{Stops: stops}
}

// SetStops replaces the keyframes and keeps the current phase. The index
// is re-clamped on the next Update.
func (a *Animation) SetStops(stops []Stop) {
	a.Stops = stops
}

// active returns the stops that have a gradient to sample.
func (a *Animation) active() []Stop {
	for i := range a.Stops {
		if len(a.Stops[i].Gradient) == 0 {
			return a.filtered()
		}
	}
	return a.Stops
}

func (a *Animation) filtered() []Stop {
	out := make([]Stop, 0, len(a.Stops))
	for _, s := range a.Stops {
		if len(s.Gradient) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Update advances the animation clock by dt milliseconds.
func (a *Animation) Update(dt float64) {
	stops := a.active()
	if len(stops) == 0 {
		a.Index = 0
		a.Elapsed = 0
		return
	}

	a.Index = clampIndex(a.Index, len(stops))
	a.Elapsed += dt
	if a.Elapsed >= stops[a.Index].Hold {
		a.Elapsed = 0
		a.Index = (a.Index + 1) % len(stops)
	}
}

// ColorAt samples the current and next gradient at ratio and blends them
// by progress through the current hold.
func (a *Animation) ColorAt(ratio float64) Color {
	stops := a.active()
	if len(stops) == 0 {
		return Color{}
	}

	i := clampIndex(a.Index, len(stops))
	cur := stops[i]
	next := stops[(i+1)%len(stops)]

	t := 1.0
	if cur.Hold > 0 {
		t = min(max(a.Elapsed/cur.Hold, 0), 1)
	}
	return Lerp(cur.Gradient.ColorAt(ratio), next.Gradient.ColorAt(ratio), t)
}
