// Package component declares the data attached to entities. Each component
// type gets one process-wide handle; systems look components up by kind.
package component

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentKind identifies the storage for components of type T.
type ComponentKind[T any] struct {
	id   ComponentID
	name string
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

// Valid reports whether the kind came from NewComponent. The zero kind is
// rejected by every world operation.
func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

func (k ComponentKind[T]) String() string {
	if k.name == "" {
		return fmt.Sprintf("component#%d", k.id)
	}
	return k.name
}

// NewComponentKind allocates a fresh kind. name only shows up in errors and
// logs.
func NewComponentKind[T any](name string) ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1)), name: name}
}

type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any](name string) ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T](name)}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
