package entity

import (
	"fmt"

	"github.com/milk9111/rcai/ecs"
	"github.com/milk9111/rcai/ecs/component"
	"github.com/milk9111/rcai/geom"
	"github.com/milk9111/rcai/prefabs"
)

// NewPlayer spawns the simulated player walking between the scenario's
// waypoints. It collects whatever comes within PickupRadius.
func NewPlayer(w *ecs.World, spec prefabs.PlayerSpec) (ecs.Entity, error) {
	points := make([]geom.Vec3, 0, len(spec.Waypoints))
	for _, p := range spec.Waypoints {
		points = append(points, geom.V(p.X, p.Y, p.Z))
	}
	start := geom.Vec3{}
	if len(points) > 0 {
		start = points[0]
	}

	entity := ecs.CreateEntity(w)

	err := assemble(w, entity,
		func(e ecs.Entity) error {
			if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{PickupRadius: spec.PickupRadius}); err != nil {
				return fmt.Errorf("player: add player tag: %w", err)
			}
			return nil
		},
		func(e ecs.Entity) error {
			if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: start}); err != nil {
				return fmt.Errorf("player: add transform: %w", err)
			}
			return nil
		},
		func(e ecs.Entity) error {
			if err := ecs.Add(w, e, component.WaypointsComponent.Kind(), &component.Waypoints{Points: points, Speed: spec.Speed}); err != nil {
				return fmt.Errorf("player: add waypoints: %w", err)
			}
			return nil
		},
		func(e ecs.Entity) error {
			if err := ecs.Add(w, e, component.CollectibleCounterComponent.Kind(), &component.CollectibleCounter{}); err != nil {
				return fmt.Errorf("player: add collectible counter: %w", err)
			}
			return nil
		},
	)
	if err != nil {
		return 0, err
	}
	return entity, nil
}
