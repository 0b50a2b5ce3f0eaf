package systems

import (
	"log/slog"
	"math"
	"math/rand"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flowtrails/components"
	"github.com/pthm-cable/flowtrails/config"
	"github.com/pthm-cable/flowtrails/gradient"
	"github.com/pthm-cable/flowtrails/noise"
	"github.com/pthm-cable/flowtrails/telemetry"
	"github.com/pthm-cable/flowtrails/trail"
	"github.com/pthm-cable/flowtrails/vector"
)

// Frame is the input to one tick.
type Frame struct {
	DT      float64          // elapsed milliseconds
	Pointer vector.Vec2      // pointer position for mouse spawning
	Configs *config.GroupSet // read-only for the duration of the tick
}

// Renderer draws trail segments.
type Renderer interface {
	DrawSegment(from, to vector.Vec2, c gradient.Color, width float64)
}

// PhaseTimer receives phase boundaries for profiling.
type PhaseTimer interface {
	StartPhase(phase string)
}

// Group is one independently configured population of entities.
type Group struct {
	ID        string
	entities  []ecs.Entity // insertion order, also draw order
	animation gradient.Animation
	seeded    bool // animation phase restored from config
}

// Len returns the number of entities, decaying ones included.
func (g *Group) Len() int {
	return len(g.entities)
}

// Animation returns the group's live color animation.
func (g *Group) Animation() *gradient.Animation {
	return &g.animation
}

// Counters tracks lifecycle events since the last read.
type Counters struct {
	Spawned   int
	Despawned int // removed to meet a lower target
	Expired   int // left the viewport
	Removed   int // finished decaying
}

// Simulation owns every group and the ECS world holding their entities.
type Simulation struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Particle, components.Motion, components.Trail]
	filter *ecs.Filter3[components.Particle, components.Motion, components.Trail]

	groups map[string]*Group
	order  []string

	bounds  Bounds
	fields  *noise.Set
	rng     *rand.Rand
	timer   PhaseTimer
	nextID  uint64
	elapsed float64 // ms

	counters Counters
}

// NewSimulation creates an empty simulation.
func NewSimulation(bounds Bounds, fields *noise.Set, rng *rand.Rand) *Simulation {
	world := ecs.NewWorld()
	return &Simulation{
		world:  world,
		mapper: ecs.NewMap3[components.Particle, components.Motion, components.Trail](world),
		filter: ecs.NewFilter3[components.Particle, components.Motion, components.Trail](world),
		groups: make(map[string]*Group),
		bounds: bounds,
		fields: fields,
		rng:    rng,
	}
}

// SetPhaseTimer installs a profiler. Nil disables profiling.
func (s *Simulation) SetPhaseTimer(t PhaseTimer) {
	s.timer = t
}

func (s *Simulation) phase(name string) {
	if s.timer != nil {
		s.timer.StartPhase(name)
	}
}

// Bounds returns the current viewport.
func (s *Simulation) Bounds() Bounds {
	return s.bounds
}

// Resize updates the viewport. Entities outside the new bounds start
// decaying after their next move.
func (s *Simulation) Resize(width, height float64) {
	s.bounds = Bounds{Width: width, Height: height}
}

// Elapsed returns simulated time in milliseconds.
func (s *Simulation) Elapsed() float64 {
	return s.elapsed
}

// AddGroup registers id. Adding an existing id is a no-op.
func (s *Simulation) AddGroup(id string) *Group {
	if g, ok := s.groups[id]; ok {
		return g
	}
	g := &Group{ID: id}
	s.groups[id] = g
	s.order = append(s.order, id)
	return g
}

// RemoveGroup drops id and all of its entities. Groups referencing it for
// separation lose the effect on the next tick.
func (s *Simulation) RemoveGroup(id string) {
	g, ok := s.groups[id]
	if !ok {
		return
	}
	for _, e := range g.entities {
		s.world.RemoveEntity(e)
	}
	delete(s.groups, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	slog.Debug("group removed", "group", id, "entities", len(g.entities))
}

// Group returns the group for id, or nil.
func (s *Simulation) Group(id string) *Group {
	return s.groups[id]
}

// GroupIDs returns group ids in draw order.
func (s *Simulation) GroupIDs() []string {
	return slices.Clone(s.order)
}

// SyncGroups makes the registry match ids: missing groups are added,
// stale ones removed, and draw order follows ids.
func (s *Simulation) SyncGroups(ids []string) {
	for _, id := range s.GroupIDs() {
		if !slices.Contains(ids, id) {
			s.RemoveGroup(id)
		}
	}
	for _, id := range ids {
		s.AddGroup(id)
	}
	s.order = s.order[:0]
	for _, id := range ids {
		if !slices.Contains(s.order, id) {
			s.order = append(s.order, id)
		}
	}
}

// EntityCount returns the number of live entities across all groups.
func (s *Simulation) EntityCount() int {
	n := 0
	for _, g := range s.groups {
		n += len(g.entities)
	}
	return n
}

// Counters returns lifecycle counts since the previous call and resets them.
func (s *Simulation) Counters() Counters {
	c := s.counters
	s.counters = Counters{}
	return c
}

// Step advances every group without drawing.
func (s *Simulation) Step(frame Frame) {
	s.Tick(frame, nil)
}

// Tick advances the clock by frame.DT, then updates and draws each group
// in order. Groups without a configuration are skipped. A nil renderer
// skips drawing.
func (s *Simulation) Tick(frame Frame, r Renderer) {
	s.elapsed += frame.DT

	for _, id := range s.order {
		g := s.groups[id]
		cfg := frame.Configs.Get(id)
		if cfg == nil {
			continue
		}
		s.updateGroup(g, cfg, frame)
		if r != nil {
			s.phase(telemetry.PhaseDraw)
			s.drawGroup(g, cfg, r)
		}
	}
}

// Draw draws every configured group without advancing anything.
func (s *Simulation) Draw(configs *config.GroupSet, r Renderer) {
	for _, id := range s.order {
		if cfg := configs.Get(id); cfg != nil {
			s.drawGroup(s.groups[id], cfg, r)
		}
	}
}

func (s *Simulation) updateGroup(g *Group, cfg *config.GroupConfig, frame Frame) {
	s.phase(telemetry.PhasePopulation)
	s.maintainPopulation(g, cfg, frame.Pointer)

	s.phase(telemetry.PhaseAnimation)
	if !g.seeded {
		g.animation.Index = cfg.ColorAnimation.Index
		g.animation.Elapsed = cfg.ColorAnimation.Elapsed
		g.seeded = true
	}
	g.animation.SetStops(cfg.ColorAnimation.Stops)
	g.animation.Update(frame.DT)

	s.phase(telemetry.PhaseEntities)
	field := s.fields.For(cfg.NoiseType)
	var target *Group
	if id := cfg.SeparationTargetGroupID; id != "" {
		target = s.groups[id]
	}

	removed := false
	for _, e := range g.entities {
		p, m, tr := s.mapper.Get(e)
		if p.Removed {
			continue
		}

		tr.SetCapacity(cfg.TrailPixelLength)
		p.Lifetime -= frame.DT
		if p.Decaying() {
			tr.Pop()
			if tr.Len() == 0 {
				p.Removed = true
				removed = true
				s.counters.Removed++
			}
			continue
		}

		steering := noiseForce(field, m.Position, s.elapsed, cfg.NoiseScale, cfg.NoiseTimeScale)
		if cfg.EdgeAvoidWeight != 0 {
			steering = steering.Add(edgeAvoidance(m.Position, s.bounds).Mul(cfg.EdgeAvoidWeight))
		}
		if target != nil && cfg.SeparationWeight != 0 {
			steering = steering.Add(s.separation(e, m.Position, target).Mul(cfg.SeparationWeight))
		}
		steering = steering.Limit(cfg.SteeringThreshold)

		m.Position, m.Velocity = integrate(m.Position, m.Velocity, steering, frame.DT, cfg.MaxVelocity)
		tr.Push(m.Position)

		// Decay starts on the next tick.
		if !s.bounds.Contains(m.Position) {
			p.Lifetime = -1
			s.counters.Expired++
		}
	}

	if removed {
		s.phase(telemetry.PhaseCleanup)
		s.sweep(g)
	}
}

// separation sums the push on self away from every other entity in target.
func (s *Simulation) separation(self ecs.Entity, pos vector.Vec2, target *Group) vector.Vec2 {
	var sum vector.Vec2
	for _, other := range target.entities {
		if other == self {
			continue
		}
		p, m, _ := s.mapper.Get(other)
		if p.Removed {
			continue
		}
		sum = sum.Add(separationFrom(pos, m.Position))
	}
	if !sum.IsFinite() {
		return vector.Zero
	}
	return sum
}

// sweep drops entities marked removed from the group and the world.
func (s *Simulation) sweep(g *Group) {
	var dead []ecs.Entity
	g.entities = slices.DeleteFunc(g.entities, func(e ecs.Entity) bool {
		p, _, _ := s.mapper.Get(e)
		if p.Removed {
			dead = append(dead, e)
			return true
		}
		return false
	})
	for _, e := range dead {
		s.world.RemoveEntity(e)
	}
}

func (s *Simulation) drawGroup(g *Group, cfg *config.GroupConfig, r Renderer) {
	for _, e := range g.entities {
		_, _, tr := s.mapper.Get(e)
		var prev vector.Vec2
		first := true
		for point, fraction := range tr.All() {
			if !first {
				r.DrawSegment(prev, point, g.animation.ColorAt(fraction), cfg.StrokeWidth)
			}
			prev = point
			first = false
		}
	}
}

// newEntity creates an entity at pos with an empty trail.
func (s *Simulation) newEntity(g *Group, pos vector.Vec2, capacity float64) ecs.Entity {
	s.nextID++
	p := components.Particle{ID: s.nextID, Group: g.ID, Lifetime: math.Inf(1)}
	m := components.Motion{Position: pos}
	tr := components.Trail{Trail: trail.New(capacity)}
	return s.mapper.NewEntity(&p, &m, &tr)
}
