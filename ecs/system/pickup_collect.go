package system

import (
	"github.com/sirupsen/logrus"

	"github.com/milk9111/rcai/collect"
	"github.com/milk9111/rcai/common"
	"github.com/milk9111/rcai/ecs"
	"github.com/milk9111/rcai/ecs/component"
)

const (
	EventCollectibleLaunched  = "CollectibleLaunched"
	EventCollectibleCollected = "CollectibleCollected"
	EventCollectibleAborted   = "CollectibleAborted"
)

// CollectedEvent is the Data of an EventCollectibleCollected.
type CollectedEvent struct {
	Collector ecs.Entity
	Amount    int
}

// CollectibleSystem sends collectibles within the player's pickup radius
// flying to the player, grants them on arrival and removes them when the
// player is gone. Touching a collectible grants it straight away, even
// during its collection delay.
type CollectibleSystem struct {
	TouchRadius float64
	log         *logrus.Entry
}

func NewCollectibleSystem() *CollectibleSystem {
	return &CollectibleSystem{
		TouchRadius: 16,
		log:         common.Logger(common.CategoryCollectible),
	}
}

func (s *CollectibleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	player, tag, playerPos, hasPlayer := playerPosition(w)

	if hasPlayer {
		ecs.ForEach2(w, component.CollectibleComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, col *component.Collectible, tf *component.Transform) {
			if col.Travel == nil || col.Target != 0 {
				return
			}
			dist := playerPos.Sub(tf.Position).Len()
			if dist <= s.TouchRadius {
				if amount, ok := col.Travel.Collect(); ok {
					s.grant(w, e, player, amount)
				}
				return
			}
			if tag.PickupRadius <= 0 || dist > tag.PickupRadius {
				return
			}
			if !col.Travel.StartCollecting(entityTarget{w: w, e: player}) {
				if col.Travel.Phase() == collect.PhaseAborted {
					s.abort(w, e)
				}
				return
			}
			col.Target = uint64(player)
			if col.Travel.Phase() == collect.PhaseTravelling {
				w.Events().Push(ecs.Event{Type: EventCollectibleLaunched, Entity: e})
			}
			w.Active().Activate(e)
		})
	}

	w.Active().Each(func(e ecs.Entity) {
		col, ok := ecs.Get(w, e, component.CollectibleComponent.Kind())
		if !ok || col.Travel == nil {
			return
		}

		ev := col.Travel.Tick()
		if tf, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			tf.Position = col.Travel.Position()
		}

		switch ev {
		case collect.EventLaunched:
			w.Events().Push(ecs.Event{Type: EventCollectibleLaunched, Entity: e})
		case collect.EventArrived:
			s.grant(w, e, ecs.Entity(col.Target), col.Travel.Amount())
			return
		case collect.EventAborted:
			s.abort(w, e)
			return
		}

		if !col.Travel.Active() {
			w.Active().Deactivate(e)
		}
	})
}

func (s *CollectibleSystem) grant(w *ecs.World, e, collector ecs.Entity, amount int) {
	if counter, ok := ecs.Get(w, collector, component.CollectibleCounterComponent.Kind()); ok {
		counter.Count += amount
	}
	s.log.WithFields(logrus.Fields{"collectible": e, "collector": collector, "amount": amount}).Debug("collected")
	w.Events().Push(ecs.Event{Type: EventCollectibleCollected, Entity: e, Data: CollectedEvent{Collector: collector, Amount: amount}})
	ecs.DestroyEntity(w, e)
}

func (s *CollectibleSystem) abort(w *ecs.World, e ecs.Entity) {
	s.log.WithField("collectible", e).Debug("collector gone, removing collectible")
	w.Events().Push(ecs.Event{Type: EventCollectibleAborted, Entity: e})
	ecs.DestroyEntity(w, e)
}
