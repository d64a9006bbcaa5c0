package entity

import (
	"fmt"

	"github.com/milk9111/rcai/clock"
	"github.com/milk9111/rcai/ecs"
	"github.com/milk9111/rcai/ecs/component"
)

// ReloadAIControllers respawns every AI entity built from prefab, keeping its
// name and position. An empty prefab reloads all of them. The returned map
// takes each old entity to its replacement.
func ReloadAIControllers(w *ecs.World, prefab string, c clock.Clock) (map[ecs.Entity]ecs.Entity, error) {
	type respawn struct {
		old    ecs.Entity
		name   string
		prefab string
	}

	var todo []respawn
	ecs.ForEach(w, component.AIControllerComponent.Kind(), func(e ecs.Entity, ac *component.AIController) {
		if ac.Controller == nil || (prefab != "" && ac.Prefab != prefab) {
			return
		}
		todo = append(todo, respawn{old: e, name: ac.Controller.ID(), prefab: ac.Prefab})
	})

	replaced := make(map[ecs.Entity]ecs.Entity, len(todo))
	for _, r := range todo {
		tf, ok := ecs.Get(w, r.old, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := tf.Position

		// build first so a broken prefab leaves the old entity running
		fresh, err := NewAIController(w, r.prefab, r.name, pos, c)
		if err != nil {
			return replaced, fmt.Errorf("reload %s: %w", r.name, err)
		}
		ecs.DestroyEntity(w, r.old)
		replaced[r.old] = fresh
	}
	return replaced, nil
}
