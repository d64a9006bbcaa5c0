package prefabs

// ScenarioSpec lists the entities a headless simulation builds.
type ScenarioSpec struct {
	Name         string             `yaml:"name"`
	TickRate     float64            `yaml:"tick_rate"`
	Player       PlayerSpec         `yaml:"player"`
	Controllers  []ControllerEntry  `yaml:"controllers"`
	Collectibles []CollectibleEntry `yaml:"collectibles"`
	Stimuli      []StimulusSpec     `yaml:"stimuli"`
}

// PlayerSpec walks the player back and forth between waypoints.
type PlayerSpec struct {
	Speed        float64     `yaml:"speed"`
	PickupRadius float64     `yaml:"pickup_radius"`
	Waypoints    []PointSpec `yaml:"waypoints"`
}

type ControllerEntry struct {
	Name     string    `yaml:"name"`
	Prefab   string    `yaml:"prefab"`
	Position PointSpec `yaml:"position"`
}

type CollectibleEntry struct {
	Prefab   string    `yaml:"prefab"`
	Position PointSpec `yaml:"position"`
}

// StimulusSpec is a scripted perception event delivered at a given time.
type StimulusSpec struct {
	At         float64 `yaml:"at"`
	Controller string  `yaml:"controller"`
	Sense      string  `yaml:"sense"`
	Sensed     bool    `yaml:"sensed"`
}

func LoadScenarioSpec(filename string) (ScenarioSpec, error) {
	spec, err := LoadSpec[ScenarioSpec](filename)
	if err != nil {
		return spec, err
	}
	if spec.TickRate <= 0 {
		spec.TickRate = 60
	}
	return spec, nil
}
