package component

import (
	"github.com/milk9111/rcai/bt"
	"github.com/milk9111/rcai/geom"
	"github.com/milk9111/rcai/patrol"
)

// PatrolFollower walks an AI entity along its patrol path while it is in
// the Patrol state.
type PatrolFollower struct {
	Tracker      *patrol.Tracker
	Speed        float64
	ArriveRadius float64
	// Resume is run when the follower re-enters Patrol, to pick the patrol
	// point nearest where it stopped.
	Resume bt.Task
	// Request asks the controller to go back to patrolling once idle.
	Request bt.Task
	Resumed bool
}

var PatrolFollowerComponent = NewComponent[PatrolFollower]("patrol_follower")

// Waypoints ping-pongs an entity between points. The simulated player uses
// it.
type Waypoints struct {
	Points  []geom.Vec3
	Index   int
	Speed   float64
	Reverse bool
}

var WaypointsComponent = NewComponent[Waypoints]("waypoints")
