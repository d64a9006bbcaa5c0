package entity

import (
	"fmt"

	"github.com/milk9111/rcai/clock"
	"github.com/milk9111/rcai/collect"
	"github.com/milk9111/rcai/ecs"
	"github.com/milk9111/rcai/ecs/component"
	"github.com/milk9111/rcai/geom"
	"github.com/milk9111/rcai/prefabs"
)

// NewCollectible spawns a collectible and puts it on the tick list so its
// collection delay runs down. rng may be nil.
func NewCollectible(w *ecs.World, prefab string, pos geom.Vec3, c clock.Clock, rng collect.Rand) (ecs.Entity, error) {
	spec, err := prefabs.LoadCollectibleSpec(prefab)
	if err != nil {
		return 0, fmt.Errorf("collectible: load spec: %w", err)
	}

	entity := ecs.CreateEntity(w)
	travel := collect.NewTravel(pos, collect.InfoFromSpec(*spec), c, rng)

	err = assemble(w, entity,
		func(e ecs.Entity) error {
			if err := ecs.Add(w, e, component.CollectibleComponent.Kind(), &component.Collectible{Travel: travel}); err != nil {
				return fmt.Errorf("collectible: add collectible: %w", err)
			}
			return nil
		},
		func(e ecs.Entity) error {
			if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos}); err != nil {
				return fmt.Errorf("collectible: add transform: %w", err)
			}
			return nil
		},
	)
	if err != nil {
		return 0, err
	}

	if travel.Active() {
		w.Active().Activate(entity)
	}
	return entity, nil
}
