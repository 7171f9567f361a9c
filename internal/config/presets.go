package config

// Presets are named constant sets. "classic" reproduces the constants the
// original relational engine shipped with (kappa=0.02, eps=0.1); "default"
// is the normalized modern set.
var Presets = map[string]*Config{
	"default": {
		Kappa: 1.0, Epsilon: 1e-6, Coverage: DefaultCoverage,
		Stress:  StressConfig{Iterations: DefaultIterations, NoiseScale: DefaultNoiseScale},
		Suggest: SuggestConfig{Budget: DefaultBudget, Step: DefaultStep},
	},
	"classic": {
		Kappa: 0.02, Epsilon: 0.1, Coverage: DefaultCoverage,
		Stress:  StressConfig{Iterations: DefaultIterations, NoiseScale: DefaultNoiseScale},
		Suggest: SuggestConfig{Budget: DefaultBudget, Step: DefaultStep},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
