package ai

import (
	"testing"

	"github.com/milk9111/rcai/clock"
)

const windupScript = `
invoke := func(engine, state) {
	if is_undefined(state.start) {
		state.start = engine.now()
	}
	if engine.now() - state.start >= 1.0 {
		return "succeeded"
	}
	return "in_progress"
}
`

func TestScriptTransitionWindup(t *testing.T) {
	fc := clock.NewFrameClock()
	tr, err := NewScriptTransition("windup", []byte(windupScript), fc)
	if err != nil {
		t.Fatalf("NewScriptTransition: %v", err)
	}

	if res := tr.Invoke(); res != InProgress {
		t.Fatalf("expected InProgress on the first poll, got %v", res)
	}
	fc.Advance(0.5)
	if res := tr.Invoke(); res != InProgress {
		t.Fatalf("expected InProgress after 0.5s, got %v", res)
	}
	fc.Advance(0.5)
	if res := tr.Invoke(); res != Succeeded {
		t.Fatalf("expected Succeeded after 1s, got %v", res)
	}

	// state is cleared after success, so the countdown starts over
	if res := tr.Invoke(); res != InProgress {
		t.Fatalf("expected a fresh run to start over, got %v", res)
	}
}

func TestScriptTransitionCancelResetsState(t *testing.T) {
	fc := clock.NewFrameClock()
	tr, err := NewScriptTransition("windup", []byte(windupScript), fc)
	if err != nil {
		t.Fatalf("NewScriptTransition: %v", err)
	}

	tr.Invoke()
	fc.Advance(0.9)
	tr.Cancel()
	tr.Invoke()
	fc.Advance(0.5)
	if res := tr.Invoke(); res != InProgress {
		t.Fatalf("cancel should restart the windup, got %v", res)
	}
}

func TestScriptTransitionResults(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want Result
	}{
		{"succeeded", `invoke := func(engine, state) { return "succeeded" }`, Succeeded},
		{"failed", `invoke := func(engine, state) { return "failed" }`, Failed},
		{"in_progress", `invoke := func(engine, state) { return "in_progress" }`, InProgress},
		{"unknown_result", `invoke := func(engine, state) { return "maybe" }`, Failed},
		{"runtime_error", `invoke := func(engine, state) { return engine.missing() }`, Failed},
		{"polls", `invoke := func(engine, state) { return engine.polls() == 1 ? "succeeded" : "failed" }`, Succeeded},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr, err := NewScriptTransition(c.name, []byte(c.src), clock.NewFrameClock())
			if err != nil {
				t.Fatalf("NewScriptTransition: %v", err)
			}
			if res := tr.Invoke(); res != c.want {
				t.Fatalf("expected %v, got %v", c.want, res)
			}
		})
	}
}

func TestScriptTransitionCompileError(t *testing.T) {
	if _, err := NewScriptTransition("broken", []byte(`invoke := func(`), nil); err == nil {
		t.Fatalf("expected a compile error")
	}
}

func TestScriptTransitionInMachine(t *testing.T) {
	fc := clock.NewFrameClock()
	tr, err := NewScriptTransition("windup", []byte(windupScript), fc)
	if err != nil {
		t.Fatalf("NewScriptTransition: %v", err)
	}
	r := NewRegistry()
	r.Register(Patrol, Chase, tr)
	m := NewStateMachine(r, Options{Initial: Patrol})

	if res := m.RequestState(Chase); res != InProgress {
		t.Fatalf("expected InProgress, got %v", res)
	}
	for i := 0; i < 4; i++ {
		fc.Advance(0.25)
		m.Tick()
	}
	if m.Current() != Chase {
		t.Fatalf("expected Chase after the windup, got %v", m.Current())
	}
}
