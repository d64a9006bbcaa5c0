// Package ai implements the enemy behavior-state coordination: a
// per-controller transition table, the request/finish state machine that
// drives it and the perception rules that feed it.
package ai

import (
	"fmt"
	"strings"
)

// State is an AI behavioral mode.
type State uint8

const (
	Idle State = iota
	Patrol
	Search
	Chase
	Combat

	// NumStates is a sentinel, never a real state.
	NumStates
)

var stateNames = [...]string{
	Idle:   "Idle",
	Patrol: "Patrol",
	Search: "Search",
	Chase:  "Chase",
	Combat: "Combat",
}

func (s State) Valid() bool {
	return s < NumStates
}

func (s State) String() string {
	if !s.Valid() {
		return "None"
	}
	return stateNames[s]
}

// ParseState accepts a state name in any letter case.
func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return State(i), nil
		}
	}
	return NumStates, fmt.Errorf("ai: unknown state %q", name)
}

// Result is what a transition reports each time it is invoked.
type Result uint8

const (
	Failed Result = iota
	InProgress
	Succeeded
)

func (r Result) String() string {
	switch r {
	case Failed:
		return "Failed"
	case InProgress:
		return "InProgress"
	case Succeeded:
		return "Succeeded"
	default:
		return "Unknown"
	}
}

// ParseResult is used for results coming back from scripts.
func ParseResult(name string) (Result, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "failed":
		return Failed, true
	case "in_progress", "inprogress":
		return InProgress, true
	case "succeeded":
		return Succeeded, true
	default:
		return Failed, false
	}
}

// Key identifies a transition from one state to another.
type Key struct {
	From State
	To   State
}

func (k Key) String() string {
	return k.From.String() + "->" + k.To.String()
}
