package system

import (
	"github.com/milk9111/rcai/ai"
	"github.com/milk9111/rcai/bt"
	"github.com/milk9111/rcai/ecs"
	"github.com/milk9111/rcai/ecs/component"
)

// PatrolSystem walks patrolling AI along their path. Idle or searching AI
// are asked to go back to patrolling; on resuming they head for the patrol
// point nearest where they are. Chasing or fighting AI keep the player's
// location on their blackboard.
type PatrolSystem struct {
	dt float64
}

func NewPatrolSystem(dt float64) *PatrolSystem {
	return &PatrolSystem{dt: dt}
}

func (s *PatrolSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.AIControllerComponent.Kind(), component.PatrolFollowerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ac *component.AIController, pf *component.PatrolFollower, tf *component.Transform) {
		if ac.Controller == nil || pf.Tracker == nil {
			return
		}
		agent := entityAgent{w: w, e: e}

		switch ac.Controller.State() {
		case ai.Patrol:
			if !pf.Resumed {
				if pf.Request != nil {
					pf.Request.Abort(agent)
				}
				if pf.Resume != nil {
					pf.Resume.Tick(agent)
				}
				pf.Resumed = true
			}
			target := pf.Tracker.CurrentTargetPosition()
			tf.Position = moveTowards(tf.Position, target, pf.Speed*s.dt)
			if tf.Position.Sub(target).Len() <= pf.ArriveRadius {
				bt.AdvanceToNextPatrolPointTask{}.Tick(agent)
			}
		case ai.Idle, ai.Search:
			pf.Resumed = false
			if pf.Request != nil {
				pf.Request.Tick(agent)
			}
		default:
			pf.Resumed = false
			if pf.Request != nil {
				pf.Request.Abort(agent)
			}
			bt.FindPlayerLocationTask{}.Tick(agent)
		}
	})
}
