package component

import "github.com/milk9111/rcai/ai"

// PerceptionQueue is a one-tick queue of stimuli for AISystem to consume.
// Sensing code appends here; AISystem drains it each tick.
type PerceptionQueue struct {
	Stimuli []ai.Stimulus
}

var PerceptionQueueComponent = NewComponent[PerceptionQueue]("perception_queue")
