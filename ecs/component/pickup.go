package component

import "github.com/milk9111/rcai/collect"

// Collectible is a pickup flying to whoever collects it. Target is the
// collecting entity, zero until StartCollecting was called.
type Collectible struct {
	Travel *collect.Travel
	Target uint64
}

var CollectibleComponent = NewComponent[Collectible]("collectible")

// CollectibleCounter accumulates collected amounts.
type CollectibleCounter struct {
	Count int
}

var CollectibleCounterComponent = NewComponent[CollectibleCounter]("collectible_counter")
