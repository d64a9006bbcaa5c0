package ai

import (
	"testing"

	"github.com/milk9111/rcai/clock"
)

// scripted returns the queued results in order and then repeats the last.
type scripted struct {
	results   []Result
	calls     int
	cancelled int
}

func (s *scripted) Invoke() Result {
	i := s.calls
	if i >= len(s.results) {
		i = len(s.results) - 1
	}
	s.calls++
	return s.results[i]
}

func (s *scripted) Cancel() {
	s.cancelled++
}

type recorder struct {
	changes []StateChange
}

func (r *recorder) record(c StateChange) {
	r.changes = append(r.changes, c)
}

func (r *recorder) count(o Outcome) int {
	n := 0
	for _, c := range r.changes {
		if c.Outcome == o {
			n++
		}
	}
	return n
}

func newMachine(t *testing.T, setup func(r *Registry), opts Options) (*StateMachine, *recorder) {
	t.Helper()
	r := NewRegistry()
	if setup != nil {
		setup(r)
	}
	m := NewStateMachine(r, opts)
	rec := &recorder{}
	m.Subscribe(rec.record)
	return m, rec
}

func TestRequestCurrentStateIsNoOp(t *testing.T) {
	for s := Idle; s < NumStates; s++ {
		t.Run(s.String(), func(t *testing.T) {
			m, rec := newMachine(t, nil, Options{Initial: s})
			if res := m.RequestState(s); res != Succeeded {
				t.Fatalf("expected Succeeded, got %v", res)
			}
			if m.Current() != s || m.Requested() != NumStates || m.InProgress() {
				t.Fatalf("request of current state changed the machine: current %v requested %v", m.Current(), m.Requested())
			}
			if len(rec.changes) != 0 {
				t.Fatalf("expected no notifications, got %v", rec.changes)
			}
		})
	}
}

func TestRequestInvalidStateFails(t *testing.T) {
	m, rec := newMachine(t, nil, Options{Initial: Patrol})
	if res := m.RequestState(NumStates); res != Failed {
		t.Fatalf("expected Failed, got %v", res)
	}
	if m.Current() != Patrol || len(rec.changes) != 0 {
		t.Fatalf("invalid request must not change anything")
	}
}

func TestMissingTransitionSucceedsImmediately(t *testing.T) {
	m, rec := newMachine(t, nil, Options{Initial: Idle})

	if res := m.RequestState(Chase); res != Succeeded {
		t.Fatalf("expected Succeeded, got %v", res)
	}
	if m.Current() != Chase {
		t.Fatalf("expected Chase, got %v", m.Current())
	}
	if len(rec.changes) != 1 || rec.changes[0].Message() != MessageStateChangeFinished {
		t.Fatalf("expected a single finished notification, got %v", rec.changes)
	}
	if rec.changes[0].From != Idle || rec.changes[0].To != Chase {
		t.Fatalf("unexpected notification %+v", rec.changes[0])
	}
}

func TestFailedTransitionKeepsCurrent(t *testing.T) {
	tr := &scripted{results: []Result{Failed}}
	m, rec := newMachine(t, func(r *Registry) { r.Register(Idle, Patrol, tr) }, Options{Initial: Idle})

	if res := m.RequestState(Patrol); res != Failed {
		t.Fatalf("expected Failed, got %v", res)
	}
	if m.Current() != Idle || m.InProgress() {
		t.Fatalf("failed transition must leave Idle current and nothing in flight")
	}
	if m.Tick() {
		t.Fatalf("nothing should be ticking after a failure")
	}
	if tr.calls != 1 {
		t.Fatalf("failed transition must not be retried, invoked %d times", tr.calls)
	}
	if rec.count(OutcomeFailed) != 1 || rec.count(OutcomeFinished) != 0 {
		t.Fatalf("unexpected notifications %v", rec.changes)
	}
}

func TestInProgressHandoff(t *testing.T) {
	tr := &scripted{results: []Result{InProgress, InProgress, Succeeded}}
	var activations []bool
	m, rec := newMachine(t, func(r *Registry) { r.Register(Idle, Patrol, tr) }, Options{
		Initial:  Idle,
		Activate: func(active bool) { activations = append(activations, active) },
	})

	if res := m.RequestState(Patrol); res != InProgress {
		t.Fatalf("expected InProgress, got %v", res)
	}
	if m.Current() != Idle || m.Requested() != Patrol || !m.InProgress() {
		t.Fatalf("expected Idle current with Patrol requested, got %v/%v", m.Current(), m.Requested())
	}

	if !m.Tick() {
		t.Fatalf("transition should still be in flight after the second poll")
	}
	if m.Tick() {
		t.Fatalf("transition should finish on the third poll")
	}
	if m.Current() != Patrol || m.Requested() != NumStates || m.InProgress() {
		t.Fatalf("expected Patrol current after finishing, got %v/%v", m.Current(), m.Requested())
	}
	if rec.count(OutcomeFinished) != 1 {
		t.Fatalf("expected exactly one finished notification, got %v", rec.changes)
	}
	if m.FinishStateChange() {
		t.Fatalf("a second FinishStateChange must report nothing pending")
	}
	if rec.count(OutcomeFinished) != 1 {
		t.Fatalf("double completion broadcast twice")
	}
	if len(activations) != 2 || !activations[0] || activations[1] {
		t.Fatalf("expected activate(true) then activate(false), got %v", activations)
	}
}

func TestExternalFinish(t *testing.T) {
	tr := &scripted{results: []Result{InProgress}}
	m, rec := newMachine(t, func(r *Registry) { r.Register(Patrol, Search, tr) }, Options{Initial: Patrol})

	m.RequestState(Search)
	if !m.FinishStateChange() {
		t.Fatalf("expected the pending change to finish")
	}
	if m.Current() != Search {
		t.Fatalf("expected Search, got %v", m.Current())
	}
	if m.Tick() {
		t.Fatalf("nothing should be in flight after finishing")
	}
	if tr.calls != 1 {
		t.Fatalf("finished transition was polled again")
	}
	if m.FinishStateChange() {
		t.Fatalf("second FinishStateChange should return false")
	}
	if rec.count(OutcomeFinished) != 1 {
		t.Fatalf("expected one finished notification, got %v", rec.changes)
	}
}

func TestInProgressThenFailedOnTick(t *testing.T) {
	tr := &scripted{results: []Result{InProgress, Failed}}
	m, rec := newMachine(t, func(r *Registry) { r.Register(Idle, Combat, tr) }, Options{Initial: Idle})

	m.RequestState(Combat)
	if m.Tick() {
		t.Fatalf("failed transition should stop ticking")
	}
	if m.Current() != Idle || m.Requested() != NumStates {
		t.Fatalf("expected Idle with nothing requested, got %v/%v", m.Current(), m.Requested())
	}
	if rec.count(OutcomeFailed) != 1 {
		t.Fatalf("expected a failure notification, got %v", rec.changes)
	}
}

func TestRequestWhileInFlight(t *testing.T) {
	t.Run("same_state", func(t *testing.T) {
		tr := &scripted{results: []Result{InProgress}}
		m, _ := newMachine(t, func(r *Registry) { r.Register(Idle, Patrol, tr) }, Options{Initial: Idle})

		m.RequestState(Patrol)
		if res := m.RequestState(Patrol); res != InProgress {
			t.Fatalf("expected InProgress, got %v", res)
		}
		if tr.calls != 1 || tr.cancelled != 0 {
			t.Fatalf("repeat request must not restart, calls %d cancelled %d", tr.calls, tr.cancelled)
		}
	})

	t.Run("different_state_restarts", func(t *testing.T) {
		slow := &scripted{results: []Result{InProgress}}
		m, rec := newMachine(t, func(r *Registry) { r.Register(Idle, Patrol, slow) }, Options{Initial: Idle})

		m.RequestState(Patrol)
		if res := m.RequestState(Chase); res != Succeeded {
			t.Fatalf("expected Chase to succeed through the default transition, got %v", res)
		}
		if slow.cancelled != 1 {
			t.Fatalf("expected the in-flight transition to be cancelled once, got %d", slow.cancelled)
		}
		if m.Current() != Chase || m.InProgress() {
			t.Fatalf("expected Chase with nothing in flight, got %v", m.Current())
		}
		if rec.count(OutcomeCancelled) != 1 || rec.count(OutcomeFinished) != 1 {
			t.Fatalf("unexpected notifications %v", rec.changes)
		}
		if rec.changes[0].To != Patrol {
			t.Fatalf("cancellation should name the abandoned target, got %v", rec.changes[0].To)
		}
	})

	t.Run("current_state_leaves_in_flight_alone", func(t *testing.T) {
		slow := &scripted{results: []Result{InProgress, Succeeded}}
		m, rec := newMachine(t, func(r *Registry) { r.Register(Idle, Patrol, slow) }, Options{Initial: Idle})

		m.RequestState(Patrol)
		if res := m.RequestState(Idle); res != Succeeded {
			t.Fatalf("expected Succeeded, got %v", res)
		}
		if m.Current() != Idle || !m.InProgress() || m.Requested() != Patrol {
			t.Fatalf("expected Idle with Patrol still in flight, got %v/%v", m.Current(), m.Requested())
		}
		if slow.cancelled != 0 || len(rec.changes) != 0 {
			t.Fatalf("expected no cancel and no notifications, got %d and %v", slow.cancelled, rec.changes)
		}

		if m.Tick() {
			t.Fatalf("expected the transition to finish on the next tick")
		}
		if m.Current() != Patrol || rec.count(OutcomeFinished) != 1 {
			t.Fatalf("expected Patrol once finished, got %v and %v", m.Current(), rec.changes)
		}
	})
}

func TestInProgressTimeout(t *testing.T) {
	tr := &scripted{results: []Result{InProgress}}
	m, rec := newMachine(t, func(r *Registry) { r.Register(Idle, Search, tr) }, Options{Initial: Idle, MaxInProgressTicks: 3})

	m.RequestState(Search)
	for i := 0; i < 3; i++ {
		if !m.Tick() {
			t.Fatalf("tick %d: expected the transition to still be in flight", i+1)
		}
	}
	if m.Tick() {
		t.Fatalf("expected the fourth tick to time out")
	}
	if m.Current() != Idle || m.InProgress() {
		t.Fatalf("timeout must leave the current state, got %v", m.Current())
	}
	if tr.cancelled != 1 || rec.count(OutcomeTimedOut) != 1 {
		t.Fatalf("expected one cancel and one timeout, got %d and %v", tr.cancelled, rec.changes)
	}
}

func TestUnboundedInProgressNeverTimesOut(t *testing.T) {
	tr := &scripted{results: []Result{InProgress}}
	m, _ := newMachine(t, func(r *Registry) { r.Register(Idle, Search, tr) }, Options{Initial: Idle})

	m.RequestState(Search)
	for i := 0; i < 1000; i++ {
		if !m.Tick() {
			t.Fatalf("tick %d stopped an unbounded transition", i)
		}
	}
}

func TestTransitionThatFinishesItself(t *testing.T) {
	var m *StateMachine
	r := NewRegistry()
	calls := 0
	r.RegisterFunc(Idle, Patrol, func() Result {
		calls++
		if calls == 1 {
			return InProgress
		}
		m.FinishStateChange()
		return Succeeded
	})
	m = NewStateMachine(r, Options{Initial: Idle})
	rec := &recorder{}
	m.Subscribe(rec.record)

	m.RequestState(Patrol)
	if m.Tick() {
		t.Fatalf("expected nothing in flight after the transition finished itself")
	}
	if m.Current() != Patrol || rec.count(OutcomeFinished) != 1 {
		t.Fatalf("expected a single completion, got %v", rec.changes)
	}
}

func TestHooksRunAroundChange(t *testing.T) {
	var order []string
	m, _ := newMachine(t, func(r *Registry) {
		r.OnExit(Idle, func(from, to State) { order = append(order, "exit "+from.String()+"->"+to.String()) })
		r.OnEnter(Chase, func(from, to State) { order = append(order, "enter "+from.String()+"->"+to.String()) })
	}, Options{Initial: Idle})

	m.Subscribe(func(StateChange) { order = append(order, "notify") })
	m.RequestState(Chase)

	want := []string{"exit Idle->Chase", "enter Idle->Chase", "notify"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestGruntStyleTimedTransition(t *testing.T) {
	c := clock.NewFrameClock()
	m, rec := newMachine(t, func(r *Registry) { r.Register(Idle, Patrol, NewTimedTransition(c, 2)) }, Options{Initial: Idle})

	if res := m.RequestState(Patrol); res != InProgress {
		t.Fatalf("expected InProgress, got %v", res)
	}
	c.Advance(1)
	if !m.Tick() {
		t.Fatalf("expected still in flight after 1s")
	}
	c.Advance(1)
	if m.Tick() {
		t.Fatalf("expected completion after 2s")
	}
	if m.Current() != Patrol || rec.count(OutcomeFinished) != 1 {
		t.Fatalf("expected Patrol with one notification, got %v %v", m.Current(), rec.changes)
	}
}

func TestUnsubscribe(t *testing.T) {
	m, _ := newMachine(t, nil, Options{Initial: Idle})
	calls := 0
	stop := m.Subscribe(func(StateChange) { calls++ })
	m.RequestState(Patrol)
	stop()
	m.RequestState(Search)
	if calls != 1 {
		t.Fatalf("expected 1 call before unsubscribing, got %d", calls)
	}
}

func TestNewStateMachineFreezesRegistry(t *testing.T) {
	r := NewRegistry()
	NewStateMachine(r, Options{})
	if !r.Frozen() {
		t.Fatalf("expected the adopted registry to be frozen")
	}
}
