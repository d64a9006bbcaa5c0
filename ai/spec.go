package ai

import (
	"fmt"
	"strings"

	"github.com/milk9111/rcai/clock"
	"github.com/milk9111/rcai/prefabs"
)

// SpecOptions carries the runtime pieces a prefab cannot describe.
type SpecOptions struct {
	ID       string
	Clock    clock.Clock
	Activate func(active bool)
}

// NewControllerFromSpec builds a controller from a prefab. Authored
// transitions are registered after the type's own, so they win.
func NewControllerFromSpec(spec *prefabs.ControllerSpec, opts SpecOptions) (*Controller, error) {
	if spec == nil {
		return nil, fmt.Errorf("ai: nil controller spec")
	}

	initial := Idle
	if spec.DefaultState != "" {
		s, err := ParseState(spec.DefaultState)
		if err != nil {
			return nil, fmt.Errorf("ai: controller %s: %w", spec.Name, err)
		}
		initial = s
	}

	type authored struct {
		key Key
		t   Transition
	}
	entries := make([]authored, 0, len(spec.Transitions))
	for i, ts := range spec.Transitions {
		key, t, err := buildTransition(ts, opts.Clock)
		if err != nil {
			return nil, fmt.Errorf("ai: controller %s transition %d: %w", spec.Name, i, err)
		}
		entries = append(entries, authored{key: key, t: t})
	}

	kind := spec.Type
	if kind == "" {
		kind = "base"
	}

	return NewController(kind, ControllerOptions{
		ID:                 opts.ID,
		Clock:              opts.Clock,
		Initial:            initial,
		MaxInProgressTicks: spec.MaxInProgressTicks,
		Sight: SightConfig{
			RelaxedRadius:     spec.Sight.RelaxedRadius,
			RelaxedLoseMargin: spec.Sight.RelaxedLoseMargin,
			AlertRadius:       spec.Sight.AlertRadius,
			AlertLoseMargin:   spec.Sight.AlertLoseMargin,
		},
		Activate: opts.Activate,
		Setup: func(_ *Controller, r *Registry) {
			for _, e := range entries {
				r.Register(e.key.From, e.key.To, e.t)
			}
		},
	})
}

func buildTransition(ts prefabs.TransitionSpec, c clock.Clock) (Key, Transition, error) {
	from, err := ParseState(ts.From)
	if err != nil {
		return Key{}, nil, err
	}
	to, err := ParseState(ts.To)
	if err != nil {
		return Key{}, nil, err
	}
	key := Key{From: from, To: to}

	switch strings.ToLower(strings.TrimSpace(ts.Kind)) {
	case "", "instant":
		return key, Instant(), nil
	case "fail":
		return key, Refuse(), nil
	case "timed":
		if ts.Seconds < 0 {
			return key, nil, fmt.Errorf("negative duration %.2f", ts.Seconds)
		}
		return key, NewTimedTransition(c, ts.Seconds), nil
	case "script":
		src, err := prefabs.LoadScript(ts.Script)
		if err != nil {
			return key, nil, fmt.Errorf("load script %s: %w", ts.Script, err)
		}
		t, err := NewScriptTransition(ts.Script, src, c)
		if err != nil {
			return key, nil, err
		}
		return key, t, nil
	default:
		return key, nil, fmt.Errorf("unknown transition kind %q", ts.Kind)
	}
}
