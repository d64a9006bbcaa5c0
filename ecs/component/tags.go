package component

// PlayerTag marks the player. Collectibles within PickupRadius start flying
// to it.
type PlayerTag struct {
	PickupRadius float64
}

var PlayerTagComponent = NewComponent[PlayerTag]("player_tag")
