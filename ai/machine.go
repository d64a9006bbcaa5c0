package ai

import (
	"github.com/sirupsen/logrus"

	"github.com/milk9111/rcai/common"
)

// MessageStateChangeFinished is broadcast whenever a requested state
// becomes current. Behavior tree tasks waiting on an InProgress request
// listen for it.
const MessageStateChangeFinished = "StateChangeFinished"

// Outcome describes how a requested state change ended.
type Outcome uint8

const (
	OutcomeFinished Outcome = iota
	OutcomeFailed
	OutcomeCancelled
	OutcomeTimedOut
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFinished:
		return "finished"
	case OutcomeFailed:
		return "failed"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// StateChange is the out-of-band notification sent to listeners.
type StateChange struct {
	Controller string
	From       State
	To         State
	Outcome    Outcome
}

// Message returns the message name listeners key on.
func (c StateChange) Message() string {
	if c.Outcome == OutcomeFinished {
		return MessageStateChangeFinished
	}
	return "StateChange_" + c.Outcome.String()
}

// Options configures a StateMachine.
type Options struct {
	ID      string
	Initial State
	// MaxInProgressTicks cancels a transition that is still InProgress after
	// this many polls. Zero never times out.
	MaxInProgressTicks int
	// Activate is told when the machine starts or stops needing ticks, so a
	// scheduler only polls machines with a transition in flight.
	Activate func(active bool)
}

type listener struct {
	fn func(StateChange)
}

// StateMachine tracks the current and requested state of one controller and
// runs transitions from its registry.
//
// Requesting the current state always succeeds and leaves any in-flight
// transition alone. Only one transition is in flight at a time. A request
// for any other state while one is in flight cancels it (Canceler.Cancel is called and an
// OutcomeCancelled notification is sent) and starts the new request from
// the current state. In-flight transitions are polled: Tick re-invokes them
// until they stop returning InProgress.
type StateMachine struct {
	id        string
	registry  *Registry
	current   State
	requested State
	inFlight  Transition
	ticks     int
	maxTicks  int
	activate  func(bool)
	ticking   bool
	listeners []*listener
	log       *logrus.Entry
}

func NewStateMachine(registry *Registry, opts Options) *StateMachine {
	if registry == nil {
		registry = NewRegistry()
	}
	registry.Freeze()
	initial := opts.Initial
	if !initial.Valid() {
		initial = NumStates
	}
	return &StateMachine{
		id:        opts.ID,
		registry:  registry,
		current:   initial,
		requested: NumStates,
		maxTicks:  opts.MaxInProgressTicks,
		activate:  opts.Activate,
		log:       common.Logger(common.CategoryAI).WithField("controller", opts.ID),
	}
}

func (m *StateMachine) ID() string {
	return m.id
}

func (m *StateMachine) Current() State {
	return m.current
}

// Requested is the state an in-flight transition is heading to, or
// NumStates when nothing is in flight.
func (m *StateMachine) Requested() State {
	return m.requested
}

func (m *StateMachine) InProgress() bool {
	return m.inFlight != nil
}

func (m *StateMachine) Registry() *Registry {
	return m.registry
}

// Subscribe registers fn for every StateChange and returns a function that
// removes it again.
func (m *StateMachine) Subscribe(fn func(StateChange)) func() {
	if fn == nil {
		return func() {}
	}
	l := &listener{fn: fn}
	m.listeners = append(m.listeners, l)
	return func() {
		for i, other := range m.listeners {
			if other == l {
				m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

// RequestState asks the machine to move to s.
func (m *StateMachine) RequestState(s State) Result {
	if !s.Valid() {
		m.log.WithField("requested", s).Warn("cannot request the invalid state")
		return Failed
	}

	if s == m.current {
		return Succeeded
	}
	if m.inFlight != nil {
		if s == m.requested {
			return InProgress
		}
		m.cancel(OutcomeCancelled)
	}

	t, ok := m.registry.Lookup(m.current, s)
	if !ok {
		m.requested = s
		m.FinishStateChange()
		return Succeeded
	}

	switch res := t.Invoke(); res {
	case Failed:
		m.log.WithFields(logrus.Fields{"from": m.current, "to": s}).Warn("state change failed")
		m.broadcast(StateChange{Controller: m.id, From: m.current, To: s, Outcome: OutcomeFailed})
		return Failed
	case InProgress:
		m.requested = s
		m.inFlight = t
		m.ticks = 0
		m.setTicking(true)
		m.log.WithFields(logrus.Fields{"from": m.current, "to": s}).Debug("state change in progress")
		return InProgress
	default:
		m.requested = s
		m.FinishStateChange()
		return Succeeded
	}
}

// Tick polls the in-flight transition once. It reports whether a
// transition is still in flight afterwards.
func (m *StateMachine) Tick() bool {
	t := m.inFlight
	if t == nil {
		m.setTicking(false)
		return false
	}

	m.ticks++
	if m.maxTicks > 0 && m.ticks > m.maxTicks {
		m.log.WithFields(logrus.Fields{"from": m.current, "to": m.requested, "ticks": m.maxTicks}).Warn("state change timed out")
		m.cancel(OutcomeTimedOut)
		return false
	}

	res := t.Invoke()
	if m.inFlight != t {
		// the transition finished or replaced itself while running
		return m.inFlight != nil
	}

	switch res {
	case InProgress:
		return true
	case Succeeded:
		m.FinishStateChange()
		return false
	default:
		to := m.requested
		m.clearInFlight()
		m.log.WithFields(logrus.Fields{"from": m.current, "to": to}).Warn("state change failed")
		m.broadcast(StateChange{Controller: m.id, From: m.current, To: to, Outcome: OutcomeFailed})
		return false
	}
}

// FinishStateChange makes the requested state current, runs the exit and
// enter hooks and broadcasts MessageStateChangeFinished. It returns false,
// doing nothing, when no change is pending, so a change can only complete
// once.
func (m *StateMachine) FinishStateChange() bool {
	if !m.requested.Valid() {
		return false
	}

	from := m.current
	to := m.requested
	m.registry.runExit(from, to)

	m.current = to
	m.clearInFlight()

	m.registry.runEnter(from, to)
	m.log.WithFields(logrus.Fields{"from": from, "to": to}).Debug("state changed")
	m.broadcast(StateChange{Controller: m.id, From: from, To: to, Outcome: OutcomeFinished})
	return true
}

// Ticks is the number of polls the in-flight transition has had.
func (m *StateMachine) Ticks() int {
	return m.ticks
}

func (m *StateMachine) cancel(outcome Outcome) {
	t := m.inFlight
	to := m.requested
	m.clearInFlight()
	if c, ok := t.(Canceler); ok {
		c.Cancel()
	}
	m.broadcast(StateChange{Controller: m.id, From: m.current, To: to, Outcome: outcome})
}

func (m *StateMachine) clearInFlight() {
	m.inFlight = nil
	m.requested = NumStates
	m.ticks = 0
	m.setTicking(false)
}

func (m *StateMachine) setTicking(active bool) {
	if m.ticking == active {
		return
	}
	m.ticking = active
	if m.activate != nil {
		m.activate(active)
	}
}

func (m *StateMachine) broadcast(c StateChange) {
	for _, l := range append([]*listener(nil), m.listeners...) {
		l.fn(c)
	}
}
