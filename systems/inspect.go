package systems

import (
	"github.com/pthm-cable/flowtrails/vector"
)

// EntityView is a read-only snapshot of one entity for the inspector.
// Tags drive how each field is drawn.
type EntityView struct {
	ID          uint64
	Group       string
	Position    vector.Vec2 `inspect:"label,fmt:%.1f"`
	Speed       float64     `inspect:"bar,max:5"` // px/ms
	Heading     float64     `inspect:"angle"`
	TrailPoints int
	TrailLength float64 `inspect:"label,fmt:%.0f px"`
	Capacity    float64 `inspect:"label,fmt:%.0f px"`
	Decaying    bool
}

// Pick returns the ID of the live entity nearest to p within radius.
func (s *Simulation) Pick(p vector.Vec2, radius float64) (uint64, bool) {
	var best uint64
	bestDist := radius
	found := false

	query := s.filter.Query()
	for query.Next() {
		pt, m, _ := query.Get()
		if pt.Removed || pt.Decaying() {
			continue
		}
		if d := m.Position.DistanceTo(p); d <= bestDist {
			best, bestDist, found = pt.ID, d, true
		}
	}
	return best, found
}

// Inspect returns a snapshot of the entity with the given ID. It reports
// false once the entity has been removed.
func (s *Simulation) Inspect(id uint64) (EntityView, bool) {
	var view EntityView
	found := false

	query := s.filter.Query()
	for query.Next() {
		p, m, tr := query.Get()
		if p.ID != id || p.Removed {
			continue
		}
		view = EntityView{
			ID:          p.ID,
			Group:       p.Group,
			Position:    m.Position,
			Speed:       m.Velocity.Len(),
			Heading:     m.Velocity.Angle(),
			TrailPoints: tr.Len(),
			TrailLength: tr.PixelLength(),
			Capacity:    tr.Capacity(),
			Decaying:    p.Decaying(),
		}
		found = true
	}
	return view, found
}
