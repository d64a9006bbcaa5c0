package system

import (
	"github.com/milk9111/rcai/ecs"
	"github.com/milk9111/rcai/ecs/component"
)

// AISystem polls in-flight state changes for entities on the tick list and
// then feeds each controller the stimuli queued for it this frame.
type AISystem struct{}

func NewAISystem() *AISystem {
	return &AISystem{}
}

func (s *AISystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	w.Active().Each(func(e ecs.Entity) {
		ac, ok := ecs.Get(w, e, component.AIControllerComponent.Kind())
		if !ok || ac.Controller == nil {
			return
		}
		ac.Controller.Tick()
	})

	ecs.ForEach2(w, component.AIControllerComponent.Kind(), component.PerceptionQueueComponent.Kind(), func(e ecs.Entity, ac *component.AIController, q *component.PerceptionQueue) {
		if ac.Controller == nil || len(q.Stimuli) == 0 {
			return
		}
		for _, st := range q.Stimuli {
			ac.Controller.OnTargetDetected(st)
		}
		q.Stimuli = q.Stimuli[:0]
	})
}
