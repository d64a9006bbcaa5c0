// Package clock provides the explicit time source passed to every
// time-sensitive component, plus a TimeStamp helper built on it.
package clock

// Clock reports the current world time in seconds.
type Clock interface {
	Now() float64
}

// FrameClock is advanced once per frame by the tick loop.
type FrameClock struct {
	now   float64
	frame uint64
}

func NewFrameClock() *FrameClock {
	return &FrameClock{}
}

func (c *FrameClock) Now() float64 {
	if c == nil {
		return 0
	}
	return c.now
}

// Frame returns how many times Advance has been called.
func (c *FrameClock) Frame() uint64 {
	if c == nil {
		return 0
	}
	return c.frame
}

// Advance moves the clock forward by dt seconds. Negative deltas are ignored.
func (c *FrameClock) Advance(dt float64) {
	if c == nil || dt < 0 {
		return
	}
	c.now += dt
	c.frame++
}

// Func adapts a plain function to Clock.
type Func func() float64

func (f Func) Now() float64 {
	if f == nil {
		return 0
	}
	return f()
}
