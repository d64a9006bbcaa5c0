package ai

import "github.com/milk9111/rcai/geom"

// BlackboardKey names a value shared with behavior tree tasks.
type BlackboardKey string

const (
	KeyState              BlackboardKey = "State"
	KeyRequestedState     BlackboardKey = "RequestedState"
	KeyLastDetectedTarget BlackboardKey = "LastDetectedTargetActor"
	KeyCanSeePlayer       BlackboardKey = "CanSeePlayer"
	KeySightDistance      BlackboardKey = "SightDistance"
	KeyPatrolPosition     BlackboardKey = "PatrolPosition"
	KeyPlayerLocation     BlackboardKey = "PlayerLocation"
)

// Blackboard is a small typed key/value store owned by one controller.
type Blackboard struct {
	values map[BlackboardKey]any
}

func NewBlackboard() *Blackboard {
	return &Blackboard{values: map[BlackboardKey]any{}}
}

func (b *Blackboard) Set(k BlackboardKey, v any) {
	if b == nil {
		return
	}
	if b.values == nil {
		b.values = map[BlackboardKey]any{}
	}
	b.values[k] = v
}

func (b *Blackboard) Get(k BlackboardKey) (any, bool) {
	if b == nil {
		return nil, false
	}
	v, ok := b.values[k]
	return v, ok
}

func (b *Blackboard) Clear(k BlackboardKey) {
	if b == nil {
		return
	}
	delete(b.values, k)
}

func (b *Blackboard) Bool(k BlackboardKey) bool {
	v, _ := b.Get(k)
	out, _ := v.(bool)
	return out
}

func (b *Blackboard) Float(k BlackboardKey) float64 {
	v, _ := b.Get(k)
	out, _ := v.(float64)
	return out
}

func (b *Blackboard) String(k BlackboardKey) string {
	v, _ := b.Get(k)
	out, _ := v.(string)
	return out
}

// State returns a stored state, NumStates when unset.
func (b *Blackboard) State(k BlackboardKey) State {
	v, ok := b.Get(k)
	if !ok {
		return NumStates
	}
	s, ok := v.(State)
	if !ok {
		return NumStates
	}
	return s
}

func (b *Blackboard) Vector(k BlackboardKey) (geom.Vec3, bool) {
	v, _ := b.Get(k)
	out, ok := v.(geom.Vec3)
	return out, ok
}
