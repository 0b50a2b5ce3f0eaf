package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/flowtrails/config"
	"github.com/pthm-cable/flowtrails/gradient"
	"github.com/pthm-cable/flowtrails/noise"
	"github.com/pthm-cable/flowtrails/vector"
)

const testDT = 16.0

func still() *config.GroupConfig {
	cfg := config.DefaultGroup()
	cfg.TargetAmount = 1
	cfg.SteeringThreshold = 0
	cfg.MaxVelocity = 0
	return cfg
}

func newTestSim(groups *config.GroupSet) *Simulation {
	sim := NewSimulation(Bounds{Width: 800, Height: 600}, noise.NewSet(1), rand.New(rand.NewSource(1)))
	sim.SyncGroups(groups.IDs())
	return sim
}

func singleGroup(cfg *config.GroupConfig) *config.GroupSet {
	s := config.NewGroupSet()
	s.Set("1", cfg)
	return s
}

func TestZeroSteeringScenario(t *testing.T) {
	groups := singleGroup(still())
	sim := newTestSim(groups)
	frame := Frame{DT: testDT, Configs: groups}

	sim.Step(frame)
	g := sim.Group("1")
	if g.Len() != 1 {
		t.Fatalf("expected one entity, got %d", g.Len())
	}
	_, m, _ := sim.mapper.Get(g.entities[0])
	start := m.Position

	for tick := 2; tick <= 60; tick++ {
		sim.Step(frame)
		if g.Len() != 1 {
			t.Fatalf("tick %d: expected one entity, got %d", tick, g.Len())
		}
		p, m, tr := sim.mapper.Get(g.entities[0])
		if m.Velocity != vector.Zero {
			t.Fatalf("tick %d: velocity %v, want zero", tick, m.Velocity)
		}
		if !m.Position.Equals(start) {
			t.Fatalf("tick %d: position moved from %v to %v", tick, start, m.Position)
		}
		if tr.Len() > tick {
			t.Fatalf("tick %d: trail has %d points", tick, tr.Len())
		}
		if p.Decaying() {
			t.Fatalf("tick %d: entity on the border started decaying", tick)
		}
	}

	if c := sim.Counters(); c.Spawned != 1 {
		t.Errorf("expected exactly one spawn, got %+v", c)
	}
}

func TestOutOfBoundsDecaysNextTick(t *testing.T) {
	cfg := still()
	cfg.MaxVelocity = 5
	groups := singleGroup(cfg)
	sim := newTestSim(groups)
	g := sim.Group("1")

	e := sim.newEntity(g, vector.New(790, 300), cfg.TrailPixelLength)
	g.entities = append(g.entities, e)
	_, m, tr := sim.mapper.Get(e)
	m.Velocity = vector.New(1, 0)
	for x := 760.0; x <= 790; x += 10 {
		tr.Push(vector.New(x, 300))
	}

	frame := Frame{DT: testDT, Configs: groups}
	sim.Step(frame)

	p, m, tr := sim.mapper.Get(e)
	if m.Position.X != 806 {
		t.Fatalf("expected x=806 after move, got %v", m.Position.X)
	}
	if p.Lifetime != -1 {
		t.Errorf("expected lifetime forced to -1, got %v", p.Lifetime)
	}
	if tr.Len() != 5 {
		t.Fatalf("expected 5 trail points, got %d", tr.Len())
	}
	if c := sim.Counters(); c.Expired != 1 {
		t.Errorf("expected one expiry, got %+v", c)
	}

	for want := 4; want >= 1; want-- {
		sim.Step(frame)
		_, m, tr := sim.mapper.Get(e)
		if tr.Len() != want {
			t.Fatalf("expected %d trail points while decaying, got %d", want, tr.Len())
		}
		if m.Position.X != 806 {
			t.Fatalf("decaying entity moved to %v", m.Position)
		}
	}

	sim.Step(frame)
	if g.Len() != 0 {
		t.Fatalf("expected entity removed, group has %d", g.Len())
	}
	if sim.world.Alive(e) {
		t.Error("entity still alive in world")
	}
	if c := sim.Counters(); c.Removed != 1 {
		t.Errorf("expected one removal, got %+v", c)
	}

	// Population control refills on the following tick.
	sim.Step(frame)
	if g.Len() != 1 {
		t.Errorf("expected respawn, got %d", g.Len())
	}
}

func TestMouseSpawnOnePerTick(t *testing.T) {
	cfg := still()
	cfg.TargetAmount = 5
	cfg.SpawnLocation = config.SpawnMouse
	groups := singleGroup(cfg)
	sim := newTestSim(groups)

	pointer := vector.New(123, 456)
	frame := Frame{DT: testDT, Pointer: pointer, Configs: groups}

	for tick := 1; tick <= 7; tick++ {
		sim.Step(frame)
		want := min(tick, 5)
		if got := sim.Group("1").Len(); got != want {
			t.Fatalf("tick %d: expected %d entities, got %d", tick, want, got)
		}
	}
	for _, e := range sim.Group("1").entities {
		_, m, _ := sim.mapper.Get(e)
		if !m.Position.Equals(pointer) {
			t.Errorf("entity spawned at %v, want pointer %v", m.Position, pointer)
		}
	}
}

func TestDespawnFromEnd(t *testing.T) {
	cfg := still()
	cfg.TargetAmount = 10
	cfg.SpawnLocation = config.SpawnAnywhere
	groups := singleGroup(cfg)
	sim := newTestSim(groups)
	frame := Frame{DT: testDT, Configs: groups}

	sim.Step(frame)
	g := sim.Group("1")
	if g.Len() != 10 {
		t.Fatalf("expected 10 entities, got %d", g.Len())
	}
	first := append([]uint64(nil), ids(sim, g)[:3]...)
	sim.Counters()

	cfg.TargetAmount = 3
	sim.Step(frame)

	if g.Len() != 3 {
		t.Fatalf("expected 3 entities, got %d", g.Len())
	}
	kept := ids(sim, g)
	for i := range first {
		if kept[i] != first[i] {
			t.Errorf("expected oldest entities kept, got %v want %v", kept, first)
			break
		}
	}
	if c := sim.Counters(); c.Despawned != 7 {
		t.Errorf("expected 7 despawns, got %+v", c)
	}
}

func ids(sim *Simulation, g *Group) []uint64 {
	out := make([]uint64, 0, g.Len())
	for _, e := range g.entities {
		p, _, _ := sim.mapper.Get(e)
		out = append(out, p.ID)
	}
	return out
}

func TestEdgeSpawnOnBorder(t *testing.T) {
	b := Bounds{Width: 800, Height: 600}
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		p := edgePosition(b, rng)
		onX := p.X == 0 || p.X == b.Width
		onY := p.Y == 0 || p.Y == b.Height
		if !onX && !onY {
			t.Fatalf("edge spawn %v not on a border", p)
		}
		if !b.Contains(p) {
			t.Fatalf("edge spawn %v outside bounds", p)
		}
	}
}

func TestMissingSeparationTargetIsNoop(t *testing.T) {
	base := config.DefaultGroup()
	base.TargetAmount = 20

	ghost := base.Clone()
	ghost.SeparationTargetGroupID = "ghost"
	ghost.SeparationWeight = 5000

	a := newTestSim(singleGroup(base))
	b := newTestSim(singleGroup(ghost))
	fa := Frame{DT: testDT, Configs: singleGroup(base)}
	fb := Frame{DT: testDT, Configs: singleGroup(ghost)}

	for i := 0; i < 30; i++ {
		a.Step(fa)
		b.Step(fb)
	}

	ea, eb := a.Group("1").entities, b.Group("1").entities
	if len(ea) != len(eb) {
		t.Fatalf("populations diverged: %d vs %d", len(ea), len(eb))
	}
	for i := range ea {
		_, ma, _ := a.mapper.Get(ea[i])
		_, mb, _ := b.mapper.Get(eb[i])
		if !ma.Position.Equals(mb.Position) {
			t.Fatalf("entity %d diverged: %v vs %v", i, ma.Position, mb.Position)
		}
	}
}

func TestSeparationTargetRemovedMidSession(t *testing.T) {
	groups := config.NewGroupSet()
	a := config.DefaultGroup()
	a.TargetAmount = 5
	a.SeparationTargetGroupID = "2"
	a.SeparationWeight = 100
	groups.Set("1", a)
	b := config.DefaultGroup()
	b.TargetAmount = 5
	groups.Set("2", b)

	sim := newTestSim(groups)
	frame := Frame{DT: testDT, Configs: groups}
	sim.Step(frame)

	groups.Delete("2")
	sim.SyncGroups(groups.IDs())
	sim.Step(frame)

	if sim.Group("2") != nil {
		t.Error("removed group still registered")
	}
	n := sim.Group("1").Len()
	if n == 0 {
		t.Error("expected group 1 to keep running")
	}
	if sim.EntityCount() != n {
		t.Errorf("expected removed group's entities gone, total %d vs %d", sim.EntityCount(), n)
	}
}

func TestSeparationWithinGroupPushesApart(t *testing.T) {
	cfg := still()
	cfg.TargetAmount = 2
	cfg.SteeringThreshold = 1
	cfg.MaxVelocity = 10
	cfg.SeparationTargetGroupID = "1"
	cfg.SeparationWeight = 1e6
	groups := singleGroup(cfg)
	sim := newTestSim(groups)
	g := sim.Group("1")

	left := sim.newEntity(g, vector.New(395, 300), cfg.TrailPixelLength)
	right := sim.newEntity(g, vector.New(405, 300), cfg.TrailPixelLength)
	g.entities = append(g.entities, left, right)

	sim.Step(Frame{DT: 1, Configs: groups})

	_, ml, _ := sim.mapper.Get(left)
	_, mr, _ := sim.mapper.Get(right)
	if ml.Velocity.X >= 0 {
		t.Errorf("left entity should be pushed left, velocity %v", ml.Velocity)
	}
	if mr.Velocity.X <= 0 {
		t.Errorf("right entity should be pushed right, velocity %v", mr.Velocity)
	}
}

func TestGroupsWithoutConfigAreSkipped(t *testing.T) {
	groups := singleGroup(still())
	sim := newTestSim(groups)
	sim.AddGroup("orphan")

	sim.Step(Frame{DT: testDT, Configs: groups})

	if sim.Group("orphan").Len() != 0 {
		t.Error("group without configuration was updated")
	}
	if sim.Group("1").Len() != 1 {
		t.Error("configured group was not updated")
	}
}

func TestSyncGroupsOrder(t *testing.T) {
	sim := NewSimulation(Bounds{Width: 100, Height: 100}, noise.NewSet(1), rand.New(rand.NewSource(1)))
	sim.SyncGroups([]string{"a", "b", "c"})
	if g1, g2 := sim.AddGroup("a"), sim.Group("a"); g1 != g2 {
		t.Error("AddGroup should return the existing group")
	}

	sim.SyncGroups([]string{"c", "a", "d"})
	got := sim.GroupIDs()
	want := []string{"c", "a", "d"}
	if len(got) != len(want) {
		t.Fatalf("GroupIDs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("GroupIDs = %v, want %v", got, want)
		}
	}
	if sim.Group("b") != nil {
		t.Error("stale group b not removed")
	}
}

type segment struct {
	from, to vector.Vec2
	color    gradient.Color
	width    float64
}

type recorder struct {
	segments []segment
}

func (r *recorder) DrawSegment(from, to vector.Vec2, c gradient.Color, width float64) {
	r.segments = append(r.segments, segment{from, to, c, width})
}

func TestDrawSegmentsPerTrail(t *testing.T) {
	cfg := still()
	cfg.StrokeWidth = 2.5
	cfg.ColorAnimation = gradient.Animation{Stops: []gradient.Stop{
		{Gradient: gradient.MustParse("rgba(0,0,0,1) 0%, rgba(200,0,0,1) 100%"), Hold: 1e9},
	}}
	groups := singleGroup(cfg)
	sim := newTestSim(groups)
	g := sim.Group("1")

	e := sim.newEntity(g, vector.New(50, 50), cfg.TrailPixelLength)
	g.entities = append(g.entities, e)
	_, _, tr := sim.mapper.Get(e)
	tr.Push(vector.New(0, 50))
	tr.Push(vector.New(25, 50))

	rec := &recorder{}
	sim.Tick(Frame{DT: testDT, Configs: groups}, rec)

	// Two pushed points plus the tick's own push.
	if len(rec.segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(rec.segments))
	}
	for _, s := range rec.segments {
		if s.width != 2.5 {
			t.Errorf("width = %v, want 2.5", s.width)
		}
	}
	// Fractions along a 100px budget: 25px then 50px.
	if got := rec.segments[0].color[0]; math.Abs(got-50) > 1e-9 {
		t.Errorf("first segment red = %v, want 50", got)
	}
	if got := rec.segments[1].color[0]; math.Abs(got-100) > 1e-9 {
		t.Errorf("second segment red = %v, want 100", got)
	}
}

func TestStats(t *testing.T) {
	cfg := still()
	cfg.TargetAmount = 4
	groups := singleGroup(cfg)
	sim := newTestSim(groups)
	sim.Step(Frame{DT: testDT, Configs: groups})

	g := sim.Group("1")
	p, _, _ := sim.mapper.Get(g.entities[0])
	p.Lifetime = -1

	stats := sim.Stats()
	if len(stats) != 1 || stats[0].ID != "1" {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats[0].Alive != 3 || stats[0].Decaying != 1 {
		t.Errorf("expected 3 alive 1 decaying, got %+v", stats[0])
	}
	if len(stats[0].TrailPoints) != 4 || len(stats[0].Speeds) != 3 {
		t.Errorf("unexpected sample counts %+v", stats[0])
	}
}

func TestDrawDoesNotAdvance(t *testing.T) {
	cfg := still()
	groups := singleGroup(cfg)
	sim := newTestSim(groups)
	sim.Step(Frame{DT: testDT, Configs: groups})

	g := sim.Group("1")
	_, _, tr := sim.mapper.Get(g.entities[0])
	last, _ := tr.Last()
	tr.Push(last.Add(vector.New(10, 0)))
	before := tr.Len()

	rec := &recorder{}
	sim.Draw(groups, rec)
	sim.Draw(groups, rec)

	if len(rec.segments) != 2*(before-1) {
		t.Errorf("expected %d segments, got %d", 2*(before-1), len(rec.segments))
	}
	if tr.Len() != before {
		t.Errorf("trail changed from %d to %d points", before, tr.Len())
	}
	if sim.Elapsed() != testDT {
		t.Errorf("Elapsed = %v, want %v", sim.Elapsed(), testDT)
	}
}

func TestPickAndInspect(t *testing.T) {
	groups := singleGroup(still())
	sim := newTestSim(groups)
	sim.Step(Frame{DT: testDT, Configs: groups})

	g := sim.Group("1")
	_, m, _ := sim.mapper.Get(g.entities[0])
	pos := m.Position

	if _, ok := sim.Pick(pos.Add(vector.New(100, 100)), 5); ok {
		t.Error("pick far from any entity should miss")
	}
	id, ok := sim.Pick(pos.Add(vector.New(1, 0)), 5)
	if !ok {
		t.Fatal("pick next to the entity should hit")
	}

	view, ok := sim.Inspect(id)
	if !ok {
		t.Fatal("Inspect should find the picked entity")
	}
	if view.Group != "1" || !view.Position.Equals(pos) || view.Decaying {
		t.Errorf("unexpected view %+v", view)
	}
	if view.TrailPoints != 1 {
		t.Errorf("TrailPoints = %d, want 1", view.TrailPoints)
	}

	if _, ok := sim.Inspect(id + 1000); ok {
		t.Error("unknown id should not be found")
	}
}
