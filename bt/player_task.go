package bt

import (
	"github.com/milk9111/rcai/ai"
	"github.com/milk9111/rcai/common"
	"github.com/milk9111/rcai/geom"
)

// PlayerLocator is implemented by agents that can see where the player is.
type PlayerLocator interface {
	// PlayerLocation is false when there is no player in the world.
	PlayerLocation() (geom.Vec3, bool)
}

// FindPlayerLocationTask writes the player's position to the blackboard. It
// fails when the agent cannot locate players or no player exists.
type FindPlayerLocationTask struct{}

func (FindPlayerLocationTask) Tick(a Agent) Status {
	if a == nil {
		return Failed
	}
	log := common.Logger(common.CategoryAI).WithField("task", "find_player_location")

	locator, ok := a.(PlayerLocator)
	if !ok {
		log.Warn("agent cannot locate the player")
		return Failed
	}
	c := a.Controller()
	if c == nil {
		log.Warn("agent has no controller")
		return Failed
	}

	pos, ok := locator.PlayerLocation()
	if !ok {
		c.Blackboard().Clear(ai.KeyPlayerLocation)
		log.Debug("no player to locate")
		return Failed
	}
	c.Blackboard().Set(ai.KeyPlayerLocation, pos)
	return Succeeded
}

func (FindPlayerLocationTask) Abort(Agent) {}
