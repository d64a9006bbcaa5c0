// Package ecs is a small sparse-set entity component system. Components are
// stored per kind; systems run in scheduler order once per frame.
package ecs

import "github.com/milk9111/rcai/ecs/component"

// World owns entities, their components, the event queue and the active
// tick list.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	events   EventQueue
	active   *TickList
}

func NewWorld() *World {
	return &World{
		stores: map[component.ComponentID]store{},
		active: NewTickList(),
	}
}

func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes e and all its components. It returns false when e
// was not alive.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	w.active.Deactivate(e)
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities lists every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Active returns the list of entities that asked to be ticked.
func (w *World) Active() *TickList {
	if w == nil {
		return nil
	}
	return w.active
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if s, ok := w.stores[kind.ID()]; ok {
		typed, _ := s.(*sparseSet[T])
		return typed
	}
	if !create {
		return nil
	}
	s := newSparseSet[T]()
	w.stores[kind.ID()] = s
	return s
}
