// Package patrol keeps an AI agent's position along a looping patrol path.
package patrol

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/rcai/common"
	"github.com/milk9111/rcai/geom"
)

// Path is the patrol geometry owned by level content. geom.Polyline
// implements it.
type Path interface {
	// NearestPoint projects pos onto the closed path. key is the fractional
	// point index of the projection; ok is false for an empty path.
	NearestPoint(pos geom.Vec3) (point geom.Vec3, key float64, ok bool)
	PointAt(i int) geom.Vec3
	Count() int
}

// MaxPoints is the longest path a Tracker can index.
const MaxPoints = math.MaxUint8 + 1

// Tracker is a wrapping cursor over a Path's points. A path longer than
// MaxPoints is treated like an empty one.
type Tracker struct {
	path   Path
	index  uint8
	target geom.Vec3
	log    *logrus.Entry
}

// NewTracker starts the cursor on the first point. path may be nil.
func NewTracker(path Path) *Tracker {
	t := &Tracker{
		path: path,
		log:  common.Logger(common.CategoryAISpline),
	}
	if path != nil && path.Count() > MaxPoints {
		t.log.WithFields(logrus.Fields{"points": path.Count(), "max": MaxPoints}).Warn("patrol path too long, ignoring it")
	}
	t.refresh()
	return t
}

func (t *Tracker) count() int {
	if t == nil || t.path == nil {
		return 0
	}
	n := t.path.Count()
	if n > MaxPoints {
		return 0
	}
	return n
}

// ClosestPosition returns the point on the path nearest owner and the index
// of the path point closest along the path, rounded half away from zero and
// wrapped onto the loop. ok is false when there is no path to project on.
func (t *Tracker) ClosestPosition(owner geom.Vec3) (geom.Vec3, uint8, bool) {
	n := t.count()
	if n == 0 {
		return geom.Vec3{}, 0, false
	}
	pos, key, ok := t.path.NearestPoint(owner)
	if !ok {
		return geom.Vec3{}, 0, false
	}
	return pos, roundIndex(key, n), true
}

// ClosestPoint is ClosestPosition snapped to the path point at the rounded
// index.
func (t *Tracker) ClosestPoint(owner geom.Vec3) (geom.Vec3, uint8, bool) {
	_, idx, ok := t.ClosestPosition(owner)
	if !ok {
		return geom.Vec3{}, 0, false
	}
	return t.path.PointAt(int(idx)), idx, true
}

// AdvanceToNext moves the cursor to the next point, wrapping after the last.
func (t *Tracker) AdvanceToNext() {
	n := t.count()
	if n == 0 {
		if t != nil {
			t.log.Warn("no patrol path to advance along")
		}
		return
	}
	t.index = uint8((int(t.index) + 1) % n)
	t.refresh()
	t.log.WithFields(logrus.Fields{"index": t.index, "target": t.target}).Debug("advanced patrol point")
}

// SetIndex moves the cursor to i, wrapped onto the path.
func (t *Tracker) SetIndex(i int) {
	n := t.count()
	if n == 0 {
		return
	}
	t.index = uint8(((i % n) + n) % n)
	t.refresh()
}

func (t *Tracker) CurrentTargetPosition() geom.Vec3 {
	if t == nil {
		return geom.Vec3{}
	}
	return t.target
}

func (t *Tracker) CurrentIndex() uint8 {
	if t == nil {
		return 0
	}
	return t.index
}

func (t *Tracker) Path() Path {
	if t == nil {
		return nil
	}
	return t.path
}

func (t *Tracker) refresh() {
	if t.count() == 0 {
		t.index = 0
		t.target = geom.Vec3{}
		return
	}
	t.target = t.path.PointAt(int(t.index))
}

func roundIndex(key float64, n int) uint8 {
	i := int(math.Round(key)) % n
	if i < 0 {
		i += n
	}
	return uint8(i)
}
