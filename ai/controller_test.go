package ai

import (
	"errors"
	"testing"

	"github.com/milk9111/rcai/clock"
)

func TestDesiredState(t *testing.T) {
	cases := []struct {
		name   string
		s      Stimulus
		want   State
		wantOK bool
	}{
		{"damage_sensed", Stimulus{Sense: SenseDamage, Sensed: true}, Chase, true},
		{"damage_lost", Stimulus{Sense: SenseDamage, Sensed: false}, NumStates, false},
		{"sight_sensed", Stimulus{Sense: SenseSight, Sensed: true, Player: true}, Chase, true},
		{"sight_lost", Stimulus{Sense: SenseSight, Sensed: false, Player: true}, Search, true},
		{"unknown_sense", Stimulus{Sense: Sense(9), Sensed: true}, NumStates, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := DesiredState(c.s)
			if ok != c.wantOK || got != c.want {
				t.Fatalf("expected (%v, %v), got (%v, %v)", c.want, c.wantOK, got, ok)
			}
		})
	}
}

func TestNewControllerUnknownType(t *testing.T) {
	_, err := NewController("dragon", ControllerOptions{})
	if !errors.Is(err, ErrUnknownControllerType) {
		t.Fatalf("expected ErrUnknownControllerType, got %v", err)
	}
}

func TestNewControllerGeneratesID(t *testing.T) {
	a, err := NewController("base", ControllerOptions{})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	b, err := NewController("base", ControllerOptions{})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	if a.ID() == "" || a.ID() == b.ID() {
		t.Fatalf("expected distinct generated ids, got %q and %q", a.ID(), b.ID())
	}
}

func TestControllerPerceptionUpdatesBlackboard(t *testing.T) {
	c, err := NewController("base", ControllerOptions{ID: "grunt-1", Initial: Patrol})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	res, handled := c.OnTargetDetected(Stimulus{Target: "player", Player: true, Sensed: true, Sense: SenseSight})
	if !handled || res != Succeeded {
		t.Fatalf("expected a handled, successful request, got %v %v", res, handled)
	}
	bb := c.Blackboard()
	if c.State() != Chase || bb.State(KeyState) != Chase {
		t.Fatalf("expected Chase, got %v (blackboard %v)", c.State(), bb.State(KeyState))
	}
	if bb.String(KeyLastDetectedTarget) != "player" {
		t.Fatalf("expected last detected target to be recorded")
	}
	if !bb.Bool(KeyCanSeePlayer) {
		t.Fatalf("expected CanSeePlayer to be set")
	}

	c.OnTargetDetected(Stimulus{Target: "player", Player: true, Sensed: false, Sense: SenseSight})
	if c.State() != Search {
		t.Fatalf("expected Search after losing sight, got %v", c.State())
	}
	if bb.Bool(KeyCanSeePlayer) {
		t.Fatalf("expected CanSeePlayer to be cleared")
	}

	if _, handled := c.OnTargetDetected(Stimulus{Target: "crate", Sensed: false, Sense: SenseDamage}); handled {
		t.Fatalf("lost damage should not request a state")
	}
	if c.State() != Search {
		t.Fatalf("ignored stimulus changed the state to %v", c.State())
	}
}

func TestControllerSightFollowsState(t *testing.T) {
	c, err := NewController("base", ControllerOptions{Initial: Idle})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	steps := []struct {
		to         State
		wantRadius float64
		wantLose   float64
	}{
		{Idle, 800, 850},
		{Chase, 1400, 1500},
		{Combat, 1400, 1500},
		{Search, 800, 850},
		{Patrol, 800, 850},
	}

	for _, s := range steps {
		t.Run(s.to.String(), func(t *testing.T) {
			c.RequestState(s.to)
			got := c.Sight()
			if got.Radius != s.wantRadius || got.LoseRadius != s.wantLose {
				t.Fatalf("expected sight %v/%v in %v, got %+v", s.wantRadius, s.wantLose, s.to, got)
			}
			if c.Blackboard().Float(KeySightDistance) != s.wantRadius {
				t.Fatalf("blackboard sight distance not updated")
			}
		})
	}
}

func TestGruntIdleToPatrol(t *testing.T) {
	fc := clock.NewFrameClock()
	var active []bool
	c, err := NewController("grunt", ControllerOptions{
		Clock:    fc,
		Initial:  Idle,
		Activate: func(a bool) { active = append(active, a) },
	})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	if res := c.RequestState(Patrol); res != InProgress {
		t.Fatalf("expected InProgress, got %v", res)
	}
	if c.Blackboard().State(KeyRequestedState) != Patrol {
		t.Fatalf("expected requested state on the blackboard")
	}

	for i := 0; i < 119; i++ {
		fc.Advance(1.0 / 60)
		if !c.Tick() {
			t.Fatalf("frame %d: transition finished early", i)
		}
	}
	fc.Advance(1.0 / 60)
	c.Tick()

	if c.State() != Patrol {
		t.Fatalf("expected Patrol after two seconds, got %v", c.State())
	}
	if c.Blackboard().State(KeyRequestedState) != NumStates {
		t.Fatalf("expected requested state to be cleared")
	}
	if len(active) != 2 || !active[0] || active[1] {
		t.Fatalf("expected activate true then false, got %v", active)
	}
}

func TestControllerTypes(t *testing.T) {
	RegisterControllerType("test_turret", func(c *Controller, r *Registry) {
		SetupBase(c, r)
		r.Register(Idle, Combat, Refuse())
	})

	found := false
	for _, name := range ControllerTypes() {
		if name == "test_turret" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected test_turret in %v", ControllerTypes())
	}

	c, err := NewController("test_turret", ControllerOptions{})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	if res := c.RequestState(Combat); res != Failed || c.State() != Idle {
		t.Fatalf("expected the refused transition to keep Idle, got %v %v", res, c.State())
	}
}

func TestParseSense(t *testing.T) {
	cases := []struct {
		in      string
		want    Sense
		wantErr bool
	}{
		{"sight", SenseSight, false},
		{" Damage ", SenseDamage, false},
		{"smell", 0, true},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseSense(c.in)
			if (err != nil) != c.wantErr {
				t.Fatalf("unexpected error %v", err)
			}
			if err == nil && got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}
