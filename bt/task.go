// Package bt adapts the AI surface to behavior tree leaf tasks.
package bt

import (
	"github.com/milk9111/rcai/ai"
	"github.com/milk9111/rcai/geom"
	"github.com/milk9111/rcai/patrol"
)

type Status uint8

const (
	Failed Status = iota
	InProgress
	Succeeded
)

func (s Status) String() string {
	switch s {
	case Failed:
		return "failed"
	case InProgress:
		return "in_progress"
	case Succeeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// FromResult maps a transition result onto a task status.
func FromResult(r ai.Result) Status {
	switch r {
	case ai.Succeeded:
		return Succeeded
	case ai.InProgress:
		return InProgress
	default:
		return Failed
	}
}

// Agent is what a task runs against. Either collaborator may be nil.
type Agent interface {
	Controller() *ai.Controller
	PatrolTracker() *patrol.Tracker
	Position() geom.Vec3
}

// Task is a leaf node. Tick is called each frame while the task runs;
// Abort is called when the tree stops it before it finished.
type Task interface {
	Tick(a Agent) Status
	Abort(a Agent)
}
