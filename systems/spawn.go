package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/flowtrails/config"
	"github.com/pthm-cable/flowtrails/vector"
)

// spawnPosition picks a start point for policy. The pointer is only used
// by the mouse policy.
func spawnPosition(policy config.SpawnLocation, b Bounds, pointer vector.Vec2, rng *rand.Rand) vector.Vec2 {
	switch policy {
	case config.SpawnMouse:
		return pointer
	case config.SpawnAnywhere:
		return vector.New(rng.Float64()*b.Width, rng.Float64()*b.Height)
	default:
		return edgePosition(b, rng)
	}
}

// edgePosition picks a random point and snaps one axis to a border.
func edgePosition(b Bounds, rng *rand.Rand) vector.Vec2 {
	p := vector.New(rng.Float64()*b.Width, rng.Float64()*b.Height)
	if rng.Float64() > 0.5 {
		p.X = math.Round(rng.Float64()) * b.Width
	} else {
		p.Y = math.Round(rng.Float64()) * b.Height
	}
	return p
}

// maintainPopulation spawns toward the target amount, or trims from the
// end of the group when above it. Mouse spawning adds at most one entity
// per tick.
func (s *Simulation) maintainPopulation(g *Group, cfg *config.GroupConfig, pointer vector.Vec2) {
	for len(g.entities) < cfg.TargetAmount {
		pos := spawnPosition(cfg.SpawnLocation, s.bounds, pointer, s.rng)
		g.entities = append(g.entities, s.newEntity(g, pos, cfg.TrailPixelLength))
		s.counters.Spawned++
		if cfg.SpawnLocation == config.SpawnMouse {
			break
		}
	}

	target := max(cfg.TargetAmount, 0)
	for len(g.entities) > target {
		last := len(g.entities) - 1
		s.world.RemoveEntity(g.entities[last])
		g.entities = g.entities[:last]
		s.counters.Despawned++
	}
}
