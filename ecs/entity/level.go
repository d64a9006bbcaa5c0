package entity

import (
	"fmt"

	"github.com/milk9111/rcai/clock"
	"github.com/milk9111/rcai/collect"
	"github.com/milk9111/rcai/ecs"
	"github.com/milk9111/rcai/geom"
	"github.com/milk9111/rcai/prefabs"
)

// Scenario is what BuildScenario spawned.
type Scenario struct {
	Player       ecs.Entity
	Controllers  map[string]ecs.Entity
	Collectibles []ecs.Entity
}

// BuildScenario spawns the player, every controller and every collectible a
// scenario lists.
func BuildScenario(w *ecs.World, spec prefabs.ScenarioSpec, c clock.Clock, rng collect.Rand) (*Scenario, error) {
	player, err := NewPlayer(w, spec.Player)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", spec.Name, err)
	}

	out := &Scenario{
		Player:      player,
		Controllers: make(map[string]ecs.Entity, len(spec.Controllers)),
	}

	for _, entry := range spec.Controllers {
		if _, dup := out.Controllers[entry.Name]; dup {
			return nil, fmt.Errorf("scenario %s: duplicate controller %q", spec.Name, entry.Name)
		}
		e, err := NewAIController(w, entry.Prefab, entry.Name, point(entry.Position), c)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: controller %s: %w", spec.Name, entry.Name, err)
		}
		out.Controllers[entry.Name] = e
	}

	for i, entry := range spec.Collectibles {
		e, err := NewCollectible(w, entry.Prefab, point(entry.Position), c, rng)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: collectible %d: %w", spec.Name, i, err)
		}
		out.Collectibles = append(out.Collectibles, e)
	}

	return out, nil
}

func point(p prefabs.PointSpec) geom.Vec3 {
	return geom.V(p.X, p.Y, p.Z)
}
