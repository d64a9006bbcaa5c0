package ai

// SightProfile is the sight sense configuration for one state.
type SightProfile struct {
	Radius     float64
	LoseRadius float64
}

// SightConfig holds the relaxed and alert sight ranges. Chase and Combat
// use the alert range; every other state uses the relaxed one.
type SightConfig struct {
	RelaxedRadius     float64
	RelaxedLoseMargin float64
	AlertRadius       float64
	AlertLoseMargin   float64
}

func DefaultSightConfig() SightConfig {
	return SightConfig{
		RelaxedRadius:     800,
		RelaxedLoseMargin: 50,
		AlertRadius:       1400,
		AlertLoseMargin:   100,
	}
}

// Alert reports whether s uses the alert sight range.
func Alert(s State) bool {
	return s == Chase || s == Combat
}

func (c SightConfig) Profile(s State) SightProfile {
	if Alert(s) {
		return SightProfile{Radius: c.AlertRadius, LoseRadius: c.AlertRadius + c.AlertLoseMargin}
	}
	return SightProfile{Radius: c.RelaxedRadius, LoseRadius: c.RelaxedRadius + c.RelaxedLoseMargin}
}

// orDefault fills an all-zero config with the defaults.
func (c SightConfig) orDefault() SightConfig {
	if c == (SightConfig{}) {
		return DefaultSightConfig()
	}
	return c
}
