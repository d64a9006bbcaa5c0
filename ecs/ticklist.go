package ecs

// TickList is the set of entities with per-frame work pending. Systems that
// only matter while something is in flight iterate it instead of every
// entity, and drop entities again once they go idle.
type TickList struct {
	order []Entity
	index map[Entity]int
}

func NewTickList() *TickList {
	return &TickList{index: map[Entity]int{}}
}

// Activate adds e. It is a no-op when e is already active.
func (l *TickList) Activate(e Entity) {
	if l == nil {
		return
	}
	if _, ok := l.index[e]; ok {
		return
	}
	l.index[e] = len(l.order)
	l.order = append(l.order, e)
}

// Deactivate removes e, keeping the order of the rest.
func (l *TickList) Deactivate(e Entity) {
	if l == nil {
		return
	}
	i, ok := l.index[e]
	if !ok {
		return
	}
	delete(l.index, e)
	copy(l.order[i:], l.order[i+1:])
	l.order = l.order[:len(l.order)-1]
	for j := i; j < len(l.order); j++ {
		l.index[l.order[j]] = j
	}
}

// Set activates or deactivates e.
func (l *TickList) Set(e Entity, active bool) {
	if active {
		l.Activate(e)
		return
	}
	l.Deactivate(e)
}

func (l *TickList) Contains(e Entity) bool {
	if l == nil {
		return false
	}
	_, ok := l.index[e]
	return ok
}

func (l *TickList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.order)
}

// Each visits the active entities in activation order. fn may activate or
// deactivate entities; the visit covers the list as it was on entry.
func (l *TickList) Each(fn func(Entity)) {
	if l == nil || fn == nil {
		return
	}
	for _, e := range append([]Entity(nil), l.order...) {
		fn(e)
	}
}
