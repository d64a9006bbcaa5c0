package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// ControllerSpec describes one AI controller prefab.
type ControllerSpec struct {
	Name               string           `yaml:"name"`
	Type               string           `yaml:"type"`
	DefaultState       string           `yaml:"default_state"`
	MaxInProgressTicks int              `yaml:"max_in_progress_ticks"`
	Sight              SightSpec        `yaml:"sight"`
	Transitions        []TransitionSpec `yaml:"transitions"`
	Patrol             []PointSpec      `yaml:"patrol"`
	PatrolSpeed        float64          `yaml:"patrol_speed"`
	ArriveRadius       float64          `yaml:"arrive_radius"`
}

type SightSpec struct {
	RelaxedRadius     float64 `yaml:"relaxed_radius"`
	RelaxedLoseMargin float64 `yaml:"relaxed_lose_margin"`
	AlertRadius       float64 `yaml:"alert_radius"`
	AlertLoseMargin   float64 `yaml:"alert_lose_margin"`
}

// TransitionSpec is one authored (from, to) entry. Kind is one of
// instant, fail, timed (uses Seconds) or script (uses Script).
type TransitionSpec struct {
	From    string  `yaml:"from"`
	To      string  `yaml:"to"`
	Kind    string  `yaml:"kind"`
	Seconds float64 `yaml:"seconds"`
	Script  string  `yaml:"script"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// MaxPatrolPoints is the longest patrol path a controller can follow.
const MaxPatrolPoints = 256

func LoadControllerSpec(filename string) (*ControllerSpec, error) {
	spec, err := LoadSpec[ControllerSpec](filename)
	if err != nil {
		return nil, err
	}
	if len(spec.Patrol) > MaxPatrolPoints {
		return nil, fmt.Errorf("prefabs: %s: patrol has %d points, at most %d allowed", filename, len(spec.Patrol), MaxPatrolPoints)
	}
	if spec.Type == "" {
		spec.Type = "base"
	}
	if spec.PatrolSpeed <= 0 {
		spec.PatrolSpeed = 120
	}
	if spec.ArriveRadius <= 0 {
		spec.ArriveRadius = 8
	}
	return &spec, nil
}

// CollectibleSpec configures how a collectible waits and then flies to
// whoever collects it.
type CollectibleSpec struct {
	Name            string  `yaml:"name"`
	Amount          int     `yaml:"amount"`
	TravelTimeMin   float64 `yaml:"travel_time_min"`
	TravelTimeMax   float64 `yaml:"travel_time_max"`
	CollectionDelay float64 `yaml:"collection_delay"`
	ThroughU        float64 `yaml:"through_u"`
	ThroughZ        float64 `yaml:"through_z"`
}

func DefaultCollectibleSpec() CollectibleSpec {
	return CollectibleSpec{
		Amount:          1,
		TravelTimeMin:   0.8,
		TravelTimeMax:   1.2,
		CollectionDelay: 2,
		ThroughU:        50,
		ThroughZ:        50,
	}
}

func LoadCollectibleSpec(filename string) (*CollectibleSpec, error) {
	data, err := Load(filename)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	spec := DefaultCollectibleSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	if spec.TravelTimeMax < spec.TravelTimeMin {
		return nil, fmt.Errorf("prefabs: %s: travel_time_max %.2f is below travel_time_min %.2f", filename, spec.TravelTimeMax, spec.TravelTimeMin)
	}
	return &spec, nil
}
