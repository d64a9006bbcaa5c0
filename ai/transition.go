package ai

import "github.com/milk9111/rcai/clock"

// Transition runs when moving between two states. It may need to be invoked
// once per tick, returning InProgress, before it reports Succeeded.
type Transition interface {
	Invoke() Result
}

// Canceler is implemented by transitions that keep their own timers or
// other state and need to know when they were superseded or timed out.
type Canceler interface {
	Cancel()
}

// TransitionFunc adapts a closure to Transition.
type TransitionFunc func() Result

func (f TransitionFunc) Invoke() Result {
	return f()
}

// Instant always succeeds on the first call.
func Instant() Transition {
	return TransitionFunc(func() Result { return Succeeded })
}

// Refuse always fails.
func Refuse() Transition {
	return TransitionFunc(func() Result { return Failed })
}

// TimedTransition stays InProgress until a fixed amount of world time has
// passed since its first invocation.
type TimedTransition struct {
	clock   clock.Clock
	seconds float64
	stamp   clock.TimeStamp
}

func NewTimedTransition(c clock.Clock, seconds float64) *TimedTransition {
	return &TimedTransition{
		clock:   c,
		seconds: seconds,
		stamp:   clock.NewTimeStamp(c),
	}
}

func (t *TimedTransition) Invoke() Result {
	if t.clock == nil {
		return Failed
	}
	if !t.stamp.IsValid() {
		t.stamp.Set(t.seconds)
	}
	if t.stamp.Elapsed() {
		t.stamp.Invalidate()
		return Succeeded
	}
	return InProgress
}

// Cancel drops the running countdown so the next invocation starts over.
func (t *TimedTransition) Cancel() {
	t.stamp.Invalidate()
}

// Remaining reports the seconds left on a running countdown.
func (t *TimedTransition) Remaining() float64 {
	return t.stamp.TimeRemaining()
}
