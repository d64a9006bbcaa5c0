package ai

import (
	"github.com/sirupsen/logrus"

	"github.com/milk9111/rcai/common"
)

// Hook runs when a state is entered or exited. It receives both ends of the
// change that triggered it.
type Hook func(from, to State)

// Registry maps (from, to) state pairs to transitions. Each controller
// builds its own during setup; once a StateMachine adopts it the registry is
// frozen and further registration is rejected.
type Registry struct {
	transitions map[State]map[State]Transition
	enter       map[State][]Hook
	exit        map[State][]Hook
	frozen      bool
	log         *logrus.Entry
}

func NewRegistry() *Registry {
	return &Registry{
		transitions: map[State]map[State]Transition{},
		enter:       map[State][]Hook{},
		exit:        map[State][]Hook{},
		log:         common.Logger(common.CategoryAI),
	}
}

// Register sets the transition for from -> to, replacing any earlier one.
func (r *Registry) Register(from, to State, t Transition) {
	if r == nil {
		return
	}
	if !r.accepting(from, to) {
		return
	}
	if isNilTransition(t) {
		r.log.WithFields(logrus.Fields{"from": from, "to": to}).Warn("ignoring nil transition")
		return
	}
	m, ok := r.transitions[from]
	if !ok {
		m = map[State]Transition{}
		r.transitions[from] = m
	}
	m[to] = t
}

// RegisterFunc is Register for a plain closure.
func (r *Registry) RegisterFunc(from, to State, fn func() Result) {
	if fn == nil {
		r.Register(from, to, nil)
		return
	}
	r.Register(from, to, TransitionFunc(fn))
}

// Lookup returns the transition registered for from -> to. ok is false when
// no direct transition exists; there is no multi-hop search.
func (r *Registry) Lookup(from, to State) (Transition, bool) {
	if r == nil {
		return nil, false
	}
	t, ok := r.transitions[from][to]
	return t, ok
}

// OnEnter adds a hook that runs after the machine changes into s.
func (r *Registry) OnEnter(s State, h Hook) {
	if r == nil || h == nil || !r.accepting(s, s) {
		return
	}
	r.enter[s] = append(r.enter[s], h)
}

// OnExit adds a hook that runs before the machine leaves s.
func (r *Registry) OnExit(s State, h Hook) {
	if r == nil || h == nil || !r.accepting(s, s) {
		return
	}
	r.exit[s] = append(r.exit[s], h)
}

// Merge copies every transition and hook from other into r. Transitions
// from other replace existing ones for the same key.
func (r *Registry) Merge(other *Registry) {
	if r == nil || other == nil {
		return
	}
	for from, tos := range other.transitions {
		for to, t := range tos {
			r.Register(from, to, t)
		}
	}
	for s, hooks := range other.enter {
		for _, h := range hooks {
			r.OnEnter(s, h)
		}
	}
	for s, hooks := range other.exit {
		for _, h := range hooks {
			r.OnExit(s, h)
		}
	}
}

// Freeze stops further registration.
func (r *Registry) Freeze() {
	if r == nil {
		return
	}
	r.frozen = true
}

func (r *Registry) Frozen() bool {
	return r != nil && r.frozen
}

// Len returns the number of registered transitions.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, tos := range r.transitions {
		n += len(tos)
	}
	return n
}

// Keys lists the registered pairs in state order.
func (r *Registry) Keys() []Key {
	var keys []Key
	for from := Idle; from < NumStates; from++ {
		for to := Idle; to < NumStates; to++ {
			if _, ok := r.Lookup(from, to); ok {
				keys = append(keys, Key{From: from, To: to})
			}
		}
	}
	return keys
}

func (r *Registry) runExit(from, to State) {
	for _, h := range r.exit[from] {
		h(from, to)
	}
}

func (r *Registry) runEnter(from, to State) {
	for _, h := range r.enter[to] {
		h(from, to)
	}
}

func (r *Registry) accepting(from, to State) bool {
	fields := logrus.Fields{"from": from, "to": to}
	if r.frozen {
		r.log.WithFields(fields).Warn("registry is frozen, ignoring registration")
		return false
	}
	if !from.Valid() || !to.Valid() {
		r.log.WithFields(fields).Warn("cannot register against the invalid state")
		return false
	}
	return true
}

func isNilTransition(t Transition) bool {
	if t == nil {
		return true
	}
	if f, ok := t.(TransitionFunc); ok && f == nil {
		return true
	}
	return false
}
