package bt

import (
	"github.com/milk9111/rcai/ai"
	"github.com/milk9111/rcai/common"
	"github.com/milk9111/rcai/geom"
	"github.com/milk9111/rcai/patrol"
)

func trackerOf(a Agent, task string) *patrol.Tracker {
	if a == nil {
		return nil
	}
	tr := a.PatrolTracker()
	if tr == nil {
		common.Logger(common.CategoryAISpline).WithField("task", task).Warn("agent has no patrol tracker")
	}
	return tr
}

// AdvanceToNextPatrolPointTask moves the agent's patrol cursor on by one.
type AdvanceToNextPatrolPointTask struct{}

func (AdvanceToNextPatrolPointTask) Tick(a Agent) Status {
	tr := trackerOf(a, "advance_patrol_point")
	if tr == nil {
		return Failed
	}
	tr.AdvanceToNext()
	return Succeeded
}

func (AdvanceToNextPatrolPointTask) Abort(Agent) {}

// ClosestPatrolPositionTask writes the point on the patrol path nearest the
// agent to the blackboard and moves the cursor to that point's index.
type ClosestPatrolPositionTask struct{}

func (ClosestPatrolPositionTask) Tick(a Agent) Status {
	tr := trackerOf(a, "closest_patrol_position")
	if tr == nil {
		return Failed
	}
	pos, idx, ok := tr.ClosestPosition(a.Position())
	if !ok {
		return Failed
	}
	tr.SetIndex(int(idx))
	writePatrolPosition(a, pos)
	return Succeeded
}

func (ClosestPatrolPositionTask) Abort(Agent) {}

// CurrentPatrolPositionTask writes the patrol cursor's position to the
// blackboard.
type CurrentPatrolPositionTask struct{}

func (CurrentPatrolPositionTask) Tick(a Agent) Status {
	tr := trackerOf(a, "current_patrol_position")
	if tr == nil {
		return Failed
	}
	writePatrolPosition(a, tr.CurrentTargetPosition())
	return Succeeded
}

func (CurrentPatrolPositionTask) Abort(Agent) {}

func writePatrolPosition(a Agent, pos geom.Vec3) {
	c := a.Controller()
	if c == nil {
		return
	}
	c.Blackboard().Set(ai.KeyPatrolPosition, pos)
}
