package clock

import (
	"math"

	"github.com/milk9111/rcai/common"
)

const (
	invalidTime   = -1
	nearlyEqualTo = 1e-8
)

// TimeStamp marks a point in the future and reports when it has passed.
// It is meant for simpler cases than a full timer manager.
type TimeStamp struct {
	clock Clock
	time  float64
	start float64
}

func NewTimeStamp(c Clock) TimeStamp {
	return TimeStamp{clock: c, time: invalidTime, start: invalidTime}
}

// Set starts the stamp so that it elapses seconds from now.
func (t *TimeStamp) Set(seconds float64) {
	if t.clock == nil {
		common.Logger(common.CategoryTimeStamp).Error("timestamp has no clock, trying to set a timer without a world?")
		return
	}
	t.start = t.clock.Now()
	t.time = t.start + seconds
}

// SetMillis starts the stamp so that it elapses ms milliseconds from now.
func (t *TimeStamp) SetMillis(ms uint) {
	t.Set(float64(ms) / 1000)
}

func (t *TimeStamp) AddTime(seconds float64) {
	if !t.IsValid() {
		return
	}
	t.time += seconds
}

func (t *TimeStamp) ReduceTime(seconds float64) {
	if !t.IsValid() {
		return
	}
	t.time -= seconds
}

func (t *TimeStamp) Invalidate() {
	t.time = invalidTime
	t.start = invalidTime
}

// Elapsed is true once the stamp is valid and its time has been reached.
func (t *TimeStamp) Elapsed() bool {
	if !t.IsValid() || t.clock == nil {
		return false
	}
	now := t.clock.Now()
	return now > t.time || math.Abs(now-t.time) <= nearlyEqualTo
}

func (t *TimeStamp) TimeSince() float64 {
	if !t.IsValid() || t.clock == nil {
		return 0
	}
	return t.clock.Now() - t.start
}

func (t *TimeStamp) TimeRemaining() float64 {
	if !t.IsValid() || t.clock == nil {
		return 0
	}
	return math.Max(0, t.time-t.clock.Now())
}

func (t *TimeStamp) TotalDuration() float64 {
	if !t.IsValid() {
		return 0
	}
	return t.time - t.start
}

func (t *TimeStamp) IsValid() bool {
	return t.time != invalidTime
}

// IsActive is true while the stamp is valid and still waiting to elapse.
func (t *TimeStamp) IsActive() bool {
	return t.IsValid() && !t.Elapsed()
}
