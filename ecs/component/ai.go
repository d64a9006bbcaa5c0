package component

import "github.com/milk9111/rcai/ai"

// AIController attaches a behavior-state controller to an entity.
type AIController struct {
	Controller *ai.Controller
	// Prefab is the file the controller was built from, for hot reload.
	Prefab string
}

var AIControllerComponent = NewComponent[AIController]("ai_controller")
