package ecs

import (
	"fmt"

	"github.com/milk9111/rcai/ecs/component"
)

// Add sets the component of the given kind on e, replacing any previous one.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return fmt.Errorf("add %s: %w", kind, component.ErrNilComponent)
	}
	if !IsAlive(w, e) {
		return fmt.Errorf("add %s to %s: %w", kind, e, component.ErrEntityNotAlive)
	}
	storeFor(w, kind, true).set(e, value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return nil, false
	}
	return s.get(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return false
	}
	return s.remove(e.id())
}

// First returns any live entity carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := storeFor(w, kind, false)
	if s == nil {
		return 0, false
	}
	for _, e := range s.dense {
		if IsAlive(w, e) {
			return e, true
		}
	}
	return 0, false
}

// ForEach visits every entity with kind. fn may add or remove components
// and destroy entities; entities added during iteration are not visited.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := storeFor(w, kind, false)
	if s == nil || fn == nil {
		return
	}
	for _, e := range snapshot(s.dense) {
		if v, ok := s.get(e); ok && IsAlive(w, e) {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa := storeFor(w, ka, false)
	sb := storeFor(w, kb, false)
	if sa == nil || sb == nil || fn == nil {
		return
	}
	for _, e := range snapshot(sa.dense) {
		a, ok := sa.get(e)
		if !ok || !IsAlive(w, e) {
			continue
		}
		b, ok := sb.get(e)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sc := storeFor(w, kc, false)
	if sc == nil || fn == nil {
		return
	}
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		if c, ok := sc.get(e); ok {
			fn(e, a, b, c)
		}
	})
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	sd := storeFor(w, kd, false)
	if sd == nil || fn == nil {
		return
	}
	ForEach3(w, ka, kb, kc, func(e Entity, a *A, b *B, c *C) {
		if d, ok := sd.get(e); ok {
			fn(e, a, b, c, d)
		}
	})
}

func snapshot(ents []Entity) []Entity {
	return append([]Entity(nil), ents...)
}
