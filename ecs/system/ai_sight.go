package system

import (
	"github.com/milk9111/rcai/ai"
	"github.com/milk9111/rcai/ecs"
	"github.com/milk9111/rcai/ecs/component"
)

// PlayerTargetName is the target name sight stimuli report for the player.
const PlayerTargetName = "player"

// SightSystem queues sight stimuli when the player crosses an AI's sight
// radius, using the lose radius once the player has been seen.
type SightSystem struct{}

func NewSightSystem() *SightSystem {
	return &SightSystem{}
}

func (s *SightSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	_, _, playerPos, ok := playerPosition(w)
	if !ok {
		return
	}

	ecs.ForEach3(w, component.AIControllerComponent.Kind(), component.TransformComponent.Kind(), component.PerceptionQueueComponent.Kind(), func(e ecs.Entity, ac *component.AIController, tf *component.Transform, q *component.PerceptionQueue) {
		if ac.Controller == nil {
			return
		}
		sight := ac.Controller.Sight()
		seeing := ac.Controller.Blackboard().Bool(ai.KeyCanSeePlayer)
		dist := playerPos.Sub(tf.Position).Len()

		switch {
		case !seeing && dist <= sight.Radius:
			q.Stimuli = append(q.Stimuli, ai.Stimulus{Target: PlayerTargetName, Player: true, Sensed: true, Sense: ai.SenseSight})
		case seeing && dist > sight.LoseRadius:
			q.Stimuli = append(q.Stimuli, ai.Stimulus{Target: PlayerTargetName, Player: true, Sensed: false, Sense: ai.SenseSight})
		}
	})
}
