package config

var Presets = map[string]map[string]*Config{
	"pendulum": {
		"gentle": {
			Scenario: "pendulum", Integrator: "rk4", Dt: 0.001, Duration: 10.0,
		},
		"coarse": {
			Scenario: "pendulum", Integrator: "semieuler", Dt: 0.005, Duration: 10.0,
		},
	},
	"chain": {
		"default": {
			Scenario: "chain", Integrator: "rk4", Dt: 0.001, Duration: 5.0,
			ReactionBody: 1,
		},
	},
	"leg": {
		"swing": {
			Scenario: "leg", Integrator: "rk4", Dt: 0.0005, Duration: 2.0,
			ReactionBody: 1,
		},
	},
	"rodtree": {
		"default": {
			Scenario: "rodtree", Integrator: "rk4", Dt: 0.001, Duration: 5.0,
			ProjectTol: 1e-10, ProjectEvery: 1, ReactionBody: 1,
		},
	},
	"freefall": {
		"tumble": {
			Scenario: "freefall", Integrator: "rk4", Dt: 0.002, Duration: 10.0,
		},
	},
}

// GetPreset looks up a named preset for a scenario; nil when absent.
func GetPreset(scenario, name string) *Config {
	group, ok := Presets[scenario]
	if !ok {
		return nil
	}
	return group[name]
}

// ListPresets returns the preset names for a scenario; nil when the
// scenario has none.
func ListPresets(scenario string) []string {
	group, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for n := range group {
		names = append(names, n)
	}
	return names
}
