package systems

// GroupStats is a snapshot of one group for telemetry.
type GroupStats struct {
	ID          string
	Alive       int
	Decaying    int
	Speeds      []float64 // px/ms, non-decaying entities only
	TrailPoints []float64
}

// Stats returns a snapshot per group in draw order.
func (s *Simulation) Stats() []GroupStats {
	byID := make(map[string]*GroupStats, len(s.order))
	out := make([]GroupStats, len(s.order))
	for i, id := range s.order {
		out[i].ID = id
		byID[id] = &out[i]
	}

	query := s.filter.Query()
	for query.Next() {
		p, m, tr := query.Get()
		st := byID[p.Group]
		if st == nil || p.Removed {
			continue
		}
		if p.Decaying() {
			st.Decaying++
		} else {
			st.Alive++
			st.Speeds = append(st.Speeds, m.Velocity.Len())
		}
		st.TrailPoints = append(st.TrailPoints, float64(tr.Len()))
	}
	return out
}
