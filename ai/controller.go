package ai

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/rcai/clock"
	"github.com/milk9111/rcai/common"
)

var ErrUnknownControllerType = errors.New("ai: unknown controller type")

// Setup fills a controller's registry. Controller types chain setups the
// way subclasses extend their parent's table.
type Setup func(c *Controller, r *Registry)

var controllerTypes = map[string]Setup{
	"base":  SetupBase,
	"grunt": SetupGrunt,
}

// RegisterControllerType adds or replaces a named controller type.
func RegisterControllerType(name string, setup Setup) {
	if name == "" || setup == nil {
		return
	}
	controllerTypes[name] = setup
}

// ControllerTypes lists the registered type names.
func ControllerTypes() []string {
	names := make([]string, 0, len(controllerTypes))
	for name := range controllerTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetupBase refreshes the sight profile whenever the controller enters or
// leaves one of the alert states.
func SetupBase(c *Controller, r *Registry) {
	for _, s := range []State{Chase, Combat} {
		r.OnEnter(s, c.refreshSight)
		r.OnExit(s, c.refreshSight)
	}
}

// GruntPatrolDelay is how long a grunt takes to start patrolling from idle.
const GruntPatrolDelay = 2.0

// SetupGrunt is SetupBase plus a delayed Idle -> Patrol transition.
func SetupGrunt(c *Controller, r *Registry) {
	SetupBase(c, r)
	r.Register(Idle, Patrol, NewTimedTransition(c.Clock(), GruntPatrolDelay))
}

type ControllerOptions struct {
	// ID names the controller in logs and notifications; a random one is
	// generated when empty.
	ID                 string
	Clock              clock.Clock
	Initial            State
	MaxInProgressTicks int
	Sight              SightConfig
	Activate           func(active bool)
	// Setup runs after the type's setup for per-instance transitions.
	Setup Setup
}

// Controller is one AI agent: its state machine, blackboard and sight.
type Controller struct {
	id         string
	kind       string
	clock      clock.Clock
	machine    *StateMachine
	blackboard *Blackboard
	sightCfg   SightConfig
	sight      SightProfile
	log        *logrus.Entry
}

func NewController(kind string, opts ControllerOptions) (*Controller, error) {
	setup, ok := controllerTypes[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownControllerType, kind)
	}
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}

	c := &Controller{
		id:         opts.ID,
		kind:       kind,
		clock:      opts.Clock,
		blackboard: NewBlackboard(),
		sightCfg:   opts.Sight.orDefault(),
		log:        common.Logger(common.CategoryAI).WithFields(logrus.Fields{"controller": opts.ID, "type": kind}),
	}

	r := NewRegistry()
	setup(c, r)
	if opts.Setup != nil {
		opts.Setup(c, r)
	}

	c.machine = NewStateMachine(r, Options{
		ID:                 opts.ID,
		Initial:            opts.Initial,
		MaxInProgressTicks: opts.MaxInProgressTicks,
		Activate:           opts.Activate,
	})
	c.machine.Subscribe(c.syncBlackboard)

	c.refreshSight(NumStates, c.machine.Current())
	c.blackboard.Set(KeyState, c.machine.Current())
	c.blackboard.Set(KeyRequestedState, NumStates)
	return c, nil
}

func (c *Controller) ID() string {
	return c.id
}

func (c *Controller) Type() string {
	return c.kind
}

func (c *Controller) Clock() clock.Clock {
	return c.clock
}

func (c *Controller) Machine() *StateMachine {
	return c.machine
}

func (c *Controller) Blackboard() *Blackboard {
	return c.blackboard
}

func (c *Controller) State() State {
	return c.machine.Current()
}

// Sight is the sight profile for the current state.
func (c *Controller) Sight() SightProfile {
	return c.sight
}

func (c *Controller) SightConfig() SightConfig {
	return c.sightCfg
}

func (c *Controller) Subscribe(fn func(StateChange)) func() {
	return c.machine.Subscribe(fn)
}

// RequestState forwards to the state machine and mirrors an in-flight
// request onto the blackboard.
func (c *Controller) RequestState(s State) Result {
	res := c.machine.RequestState(s)
	if res == InProgress {
		c.blackboard.Set(KeyRequestedState, s)
	}
	return res
}

// Tick polls an in-flight transition.
func (c *Controller) Tick() bool {
	return c.machine.Tick()
}

func (c *Controller) FinishStateChange() bool {
	return c.machine.FinishStateChange()
}

// OnTargetDetected records the stimulus on the blackboard and requests the
// state it maps to. handled is false when the stimulus requested nothing.
func (c *Controller) OnTargetDetected(s Stimulus) (res Result, handled bool) {
	if s.Sensed && s.Target != "" {
		c.blackboard.Set(KeyLastDetectedTarget, s.Target)
	}
	if s.Sense == SenseSight && s.Player {
		c.blackboard.Set(KeyCanSeePlayer, s.Sensed)
	}

	want, ok := DesiredState(s)
	if !ok {
		return Succeeded, false
	}
	c.log.WithFields(logrus.Fields{"sense": s.Sense, "sensed": s.Sensed, "target": s.Target, "want": want}).Debug("target detected")
	return c.RequestState(want), true
}

func (c *Controller) refreshSight(_, to State) {
	c.sight = c.sightCfg.Profile(to)
	c.blackboard.Set(KeySightDistance, c.sight.Radius)
}

func (c *Controller) syncBlackboard(change StateChange) {
	if change.Outcome == OutcomeFinished {
		c.blackboard.Set(KeyState, change.To)
	}
	c.blackboard.Set(KeyRequestedState, c.machine.Requested())
}
