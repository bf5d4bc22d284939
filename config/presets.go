package config

var Presets = map[string]*Config{
	// Pure-birth process, no extinction.
	"yule": {
		N0:         1,
		Speciation: RateConfig{Rate: 0.1},
		Extinction: RateConfig{Rate: 0},
		TMax:       40,
		Fast:       true,
	},
	// Constant birth-death with moderate turnover, conditioned on
	// producing at least two lineages.
	"constant-bd": {
		N0:         1,
		Speciation: RateConfig{Rate: 0.11},
		Extinction: RateConfig{Rate: 0.08},
		TMax:       40,
		SizeMin:    2,
		Fast:       true,
	},
	// Mass-extinction style drop in speciation halfway through.
	"shifted": {
		N0:         1,
		Speciation: RateConfig{Values: []float64{0.2, 0.05}, Shifts: []float64{20}},
		Extinction: RateConfig{Rate: 0.05},
		TMax:       40,
		SizeMin:    2,
		Fast:       true,
	},
	// Age-dependent extinction: rate is a Weibull scale of 10 with
	// shape 1, distributionally an Exponential(0.1) lifetime.
	"age-extinction": {
		N0:                  1,
		Speciation:          RateConfig{Rate: 0.15},
		Extinction:          RateConfig{Rate: 10, Shape: 1},
		TMax:                20,
		Fast:                true,
		TrueExtinctionTimes: true,
	},
}

// GetPreset returns a copy of the named preset, or nil when unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
