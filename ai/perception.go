package ai

import (
	"fmt"
	"strings"
)

// Sense identifies how a stimulus was perceived.
type Sense uint8

const (
	SenseSight Sense = iota
	SenseDamage
)

func (s Sense) String() string {
	switch s {
	case SenseSight:
		return "sight"
	case SenseDamage:
		return "damage"
	default:
		return "unknown"
	}
}

// ParseSense accepts "sight" or "damage" in any letter case.
func ParseSense(name string) (Sense, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sight":
		return SenseSight, nil
	case "damage":
		return SenseDamage, nil
	default:
		return 0, fmt.Errorf("ai: unknown sense %q", name)
	}
}

// Stimulus is a perception update for one target.
type Stimulus struct {
	// Target names the sensed actor.
	Target string
	// Player is set when the target is the player character. Only player
	// sight updates CanSeePlayer.
	Player bool
	// Sensed is false when the target was lost.
	Sensed bool
	Sense  Sense
}

// DesiredState maps a stimulus to the state it should request. ok is false
// when the stimulus does not ask for a change.
func DesiredState(s Stimulus) (state State, ok bool) {
	switch s.Sense {
	case SenseDamage:
		if s.Sensed {
			return Chase, true
		}
	case SenseSight:
		if s.Sensed {
			return Chase, true
		}
		return Search, true
	}
	return NumStates, false
}
