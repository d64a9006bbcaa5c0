package system

import (
	"github.com/milk9111/rcai/ai"
	"github.com/milk9111/rcai/ecs"
	"github.com/milk9111/rcai/ecs/component"
	"github.com/milk9111/rcai/geom"
	"github.com/milk9111/rcai/patrol"
)

// entityAgent exposes an AI entity to behavior tree tasks.
type entityAgent struct {
	w *ecs.World
	e ecs.Entity
}

func (a entityAgent) Controller() *ai.Controller {
	ac, ok := ecs.Get(a.w, a.e, component.AIControllerComponent.Kind())
	if !ok {
		return nil
	}
	return ac.Controller
}

func (a entityAgent) PatrolTracker() *patrol.Tracker {
	pf, ok := ecs.Get(a.w, a.e, component.PatrolFollowerComponent.Kind())
	if !ok {
		return nil
	}
	return pf.Tracker
}

func (a entityAgent) Position() geom.Vec3 {
	tf, ok := ecs.Get(a.w, a.e, component.TransformComponent.Kind())
	if !ok {
		return geom.Vec3{}
	}
	return tf.Position
}

// PlayerLocation reports where the player is, false when there is none.
func (a entityAgent) PlayerLocation() (geom.Vec3, bool) {
	_, _, pos, ok := playerPosition(a.w)
	return pos, ok
}

// entityTarget is a collect.Target backed by an entity's transform.
type entityTarget struct {
	w *ecs.World
	e ecs.Entity
}

func (t entityTarget) Location() (geom.Vec3, bool) {
	if !ecs.IsAlive(t.w, t.e) {
		return geom.Vec3{}, false
	}
	tf, ok := ecs.Get(t.w, t.e, component.TransformComponent.Kind())
	if !ok {
		return geom.Vec3{}, false
	}
	return tf.Position, true
}

func moveTowards(pos, target geom.Vec3, step float64) geom.Vec3 {
	dir := target.Sub(pos)
	d := dir.Len()
	if d <= step || d == 0 {
		return target
	}
	return pos.Add(dir.Mul(step / d))
}

func playerPosition(w *ecs.World) (ecs.Entity, *component.PlayerTag, geom.Vec3, bool) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return 0, nil, geom.Vec3{}, false
	}
	tag, _ := ecs.Get(w, player, component.PlayerTagComponent.Kind())
	tf, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return 0, nil, geom.Vec3{}, false
	}
	return player, tag, tf.Position, true
}
