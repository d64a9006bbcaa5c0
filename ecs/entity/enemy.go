package entity

import (
	"fmt"

	"github.com/milk9111/rcai/ai"
	"github.com/milk9111/rcai/bt"
	"github.com/milk9111/rcai/clock"
	"github.com/milk9111/rcai/ecs"
	"github.com/milk9111/rcai/ecs/component"
	"github.com/milk9111/rcai/geom"
	"github.com/milk9111/rcai/patrol"
	"github.com/milk9111/rcai/prefabs"
)

// NewAIController spawns an AI entity from a controller prefab. The
// controller's StateChange notifications are forwarded to the world event
// queue and its in-flight transitions put the entity on the tick list.
func NewAIController(w *ecs.World, prefab, name string, pos geom.Vec3, c clock.Clock) (ecs.Entity, error) {
	spec, err := prefabs.LoadControllerSpec(prefab)
	if err != nil {
		return 0, fmt.Errorf("ai controller: load spec: %w", err)
	}

	entity := ecs.CreateEntity(w)

	ctrl, err := ai.NewControllerFromSpec(spec, ai.SpecOptions{
		ID:    name,
		Clock: c,
		Activate: func(active bool) {
			w.Active().Set(entity, active)
		},
	})
	if err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("ai controller: build %s: %w", prefab, err)
	}
	ctrl.Subscribe(func(change ai.StateChange) {
		w.Events().Push(ecs.Event{Type: change.Message(), Entity: entity, Data: change})
	})

	steps := []buildStep{
		func(e ecs.Entity) error {
			if err := ecs.Add(w, e, component.AIControllerComponent.Kind(), &component.AIController{
				Controller: ctrl,
				Prefab:     prefab,
			}); err != nil {
				return fmt.Errorf("ai controller: add controller: %w", err)
			}
			return nil
		},
		func(e ecs.Entity) error {
			if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos}); err != nil {
				return fmt.Errorf("ai controller: add transform: %w", err)
			}
			return nil
		},
		func(e ecs.Entity) error {
			if err := ecs.Add(w, e, component.PerceptionQueueComponent.Kind(), &component.PerceptionQueue{}); err != nil {
				return fmt.Errorf("ai controller: add perception queue: %w", err)
			}
			return nil
		},
	}

	if len(spec.Patrol) > 0 {
		points := make([]geom.Vec3, 0, len(spec.Patrol))
		for _, p := range spec.Patrol {
			points = append(points, geom.V(p.X, p.Y, p.Z))
		}
		steps = append(steps, func(e ecs.Entity) error {
			if err := ecs.Add(w, e, component.PatrolFollowerComponent.Kind(), &component.PatrolFollower{
				Tracker:      patrol.NewTracker(geom.NewPolyline(points...)),
				Speed:        spec.PatrolSpeed,
				ArriveRadius: spec.ArriveRadius,
				Resume:       bt.ClosestPatrolPositionTask{},
				Request:      bt.NewRequestStateTask(ai.Patrol),
			}); err != nil {
				return fmt.Errorf("ai controller: add patrol follower: %w", err)
			}
			return nil
		})
	}

	if err := assemble(w, entity, steps...); err != nil {
		return 0, err
	}
	return entity, nil
}
