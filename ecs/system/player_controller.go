package system

import (
	"github.com/milk9111/rcai/ecs"
	"github.com/milk9111/rcai/ecs/component"
)

// WaypointSystem walks entities back and forth along their waypoints.
type WaypointSystem struct {
	dt float64
}

func NewWaypointSystem(dt float64) *WaypointSystem {
	return &WaypointSystem{dt: dt}
}

func (s *WaypointSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.WaypointsComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, wp *component.Waypoints, tf *component.Transform) {
		if len(wp.Points) < 2 || wp.Speed <= 0 {
			return
		}
		if wp.Index < 0 || wp.Index >= len(wp.Points) {
			wp.Index = 0
		}
		target := wp.Points[wp.Index]
		tf.Position = moveTowards(tf.Position, target, wp.Speed*s.dt)
		if tf.Position != target {
			return
		}

		switch {
		case !wp.Reverse && wp.Index == len(wp.Points)-1:
			wp.Reverse = true
		case wp.Reverse && wp.Index == 0:
			wp.Reverse = false
		}
		if wp.Reverse {
			wp.Index--
		} else {
			wp.Index++
		}
	})
}
