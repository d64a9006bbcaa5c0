// Package collect flies collectibles along an arc to whoever picks them up.
package collect

import (
	"errors"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/rcai/clock"
	"github.com/milk9111/rcai/common"
	"github.com/milk9111/rcai/geom"
	"github.com/milk9111/rcai/prefabs"
)

// Target is whatever a collectible flies to. ok is false once the target no
// longer exists.
type Target interface {
	Location() (pos geom.Vec3, ok bool)
}

// TargetFunc adapts a closure to Target.
type TargetFunc func() (geom.Vec3, bool)

func (f TargetFunc) Location() (geom.Vec3, bool) {
	return f()
}

// Info configures a collectible.
type Info struct {
	Amount          int
	TravelTimeMin   float64
	TravelTimeMax   float64
	CollectionDelay float64
	ThroughU        float64
	ThroughZ        float64
}

func DefaultInfo() Info {
	return InfoFromSpec(prefabs.DefaultCollectibleSpec())
}

func InfoFromSpec(spec prefabs.CollectibleSpec) Info {
	return Info{
		Amount:          spec.Amount,
		TravelTimeMin:   spec.TravelTimeMin,
		TravelTimeMax:   spec.TravelTimeMax,
		CollectionDelay: spec.CollectionDelay,
		ThroughU:        spec.ThroughU,
		ThroughZ:        spec.ThroughZ,
	}
}

type Phase uint8

const (
	// PhaseDelayed waits out the collection delay after spawning.
	PhaseDelayed Phase = iota
	PhaseReady
	PhaseTravelling
	PhaseCollected
	PhaseAborted
)

func (p Phase) String() string {
	switch p {
	case PhaseDelayed:
		return "delayed"
	case PhaseReady:
		return "ready"
	case PhaseTravelling:
		return "travelling"
	case PhaseCollected:
		return "collected"
	case PhaseAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Event reports what a Tick changed.
type Event uint8

const (
	EventNone Event = iota
	EventLaunched
	EventArrived
	EventAborted
)

// Rand is the part of *rand.Rand a Travel uses.
type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 {
	return rand.Float64()
}

// Travel is one collectible's life from spawn to pickup. The arc is solved
// once at launch against where the target was then; later target movement
// does not bend it.
type Travel struct {
	info  Info
	clock clock.Clock
	rng   Rand

	phase   Phase
	delay   clock.TimeStamp
	target  Target
	pending bool

	start    geom.Vec3
	end      geom.Vec3
	pos      geom.Vec3
	arc      geom.Arc
	straight bool
	launched float64
	duration float64
	progress float64

	log *logrus.Entry
}

// NewTravel spawns a collectible at pos and starts its collection delay.
// rng may be nil.
func NewTravel(pos geom.Vec3, info Info, c clock.Clock, rng Rand) *Travel {
	if rng == nil {
		rng = globalRand{}
	}
	t := &Travel{
		info:  info,
		clock: c,
		rng:   rng,
		start: pos,
		pos:   pos,
		delay: clock.NewTimeStamp(c),
		log:   common.Logger(common.CategoryCollectible),
	}
	if info.CollectionDelay > 0 && c != nil {
		t.delay.Set(info.CollectionDelay)
	} else {
		t.phase = PhaseReady
	}
	return t
}

func (t *Travel) Phase() Phase {
	return t.phase
}

func (t *Travel) Position() geom.Vec3 {
	return t.pos
}

// Percentage is how far along the arc the collectible is, in [0, 1].
func (t *Travel) Percentage() float64 {
	return t.progress
}

// Duration is the travel time picked at launch.
func (t *Travel) Duration() float64 {
	return t.duration
}

func (t *Travel) Amount() int {
	return t.info.Amount
}

// Arc returns the locked trajectory and the endpoints it was solved for.
// ok is false before launch or when the collectible flies straight.
func (t *Travel) Arc() (arc geom.Arc, start, end geom.Vec3, ok bool) {
	if t.phase < PhaseTravelling || t.straight {
		return geom.Arc{}, t.start, t.end, false
	}
	return t.arc, t.start, t.end, true
}

// Active reports whether the collectible still needs ticking.
func (t *Travel) Active() bool {
	return t.phase == PhaseDelayed || t.phase == PhaseTravelling
}

// StartCollecting sends the collectible towards target. During the
// collection delay the request is held until the delay runs out. It returns
// false when the collectible is already travelling or done.
func (t *Travel) StartCollecting(target Target) bool {
	if target == nil {
		return false
	}
	switch t.phase {
	case PhaseDelayed:
		t.target = target
		t.pending = true
		return true
	case PhaseReady:
		t.target = target
		return t.launch() != EventAborted
	default:
		return false
	}
}

// Tick advances the delay or the flight.
func (t *Travel) Tick() Event {
	switch t.phase {
	case PhaseDelayed:
		if !t.delay.Elapsed() {
			return EventNone
		}
		t.delay.Invalidate()
		t.phase = PhaseReady
		if t.pending {
			t.pending = false
			return t.launch()
		}
		return EventNone
	case PhaseTravelling:
		return t.fly()
	default:
		return EventNone
	}
}

// Collect grants the collectible immediately, skipping any remaining delay
// or flight.
func (t *Travel) Collect() (int, bool) {
	if t.phase == PhaseCollected || t.phase == PhaseAborted {
		return 0, false
	}
	t.phase = PhaseCollected
	t.delay.Invalidate()
	t.pending = false
	t.progress = 1
	return t.info.Amount, true
}

func (t *Travel) launch() Event {
	end, ok := t.target.Location()
	if !ok {
		t.abort()
		return EventAborted
	}

	t.start = t.pos
	t.end = end
	t.straight = false

	arc, err := geom.SolveArc(t.start, end, t.info.ThroughU, t.info.ThroughZ)
	if errors.Is(err, geom.ErrDegenerateArc) {
		// the target's ground distance may sit exactly on the synthetic point
		arc, err = geom.SolveArc(t.start, end, t.info.ThroughU/2, t.info.ThroughZ)
	}
	if err != nil {
		t.straight = true
		t.log.WithFields(logrus.Fields{"start": t.start, "end": end}).Debug("no arc to target, flying straight")
	}
	t.arc = arc

	span := t.info.TravelTimeMax - t.info.TravelTimeMin
	if span < 0 {
		span = 0
	}
	t.duration = t.info.TravelTimeMin + t.rng.Float64()*span
	t.launched = t.now()
	t.progress = 0
	t.phase = PhaseTravelling
	t.log.WithFields(logrus.Fields{"start": t.start, "end": end, "duration": t.duration}).Debug("collectible launched")
	return EventLaunched
}

func (t *Travel) fly() Event {
	if _, ok := t.target.Location(); !ok {
		t.abort()
		return EventAborted
	}

	p := 1.0
	if t.duration > 0 {
		p = (t.now() - t.launched) / t.duration
	}
	if p >= 1 {
		t.progress = 1
		t.pos = t.end
		t.phase = PhaseCollected
		return EventArrived
	}
	if p < 0 {
		p = 0
	}
	t.progress = p
	t.pos = t.positionAt(p)
	return EventNone
}

func (t *Travel) positionAt(p float64) geom.Vec3 {
	if t.straight {
		return geom.V(
			common.Lerp(t.start[0], t.end[0], p),
			common.Lerp(t.start[1], t.end[1], p),
			common.Lerp(t.start[2], t.end[2], p),
		)
	}
	return t.arc.At(p, t.start, t.end)
}

func (t *Travel) abort() {
	t.phase = PhaseAborted
	t.pending = false
	t.log.Debug("collect target vanished")
}

func (t *Travel) now() float64 {
	if t.clock == nil {
		return 0
	}
	return t.clock.Now()
}
