package config

var Presets = map[string]map[string]*Config{
	"bm": {
		"standard": {
			Process: "bm", Duration: 10.0, StepSize: 0.01, Particles: 10000,
			Params: ProcessParams{Start: 0, Diffusion: 0.5},
		},
		"hot": {
			Process: "bm", Duration: 10.0, StepSize: 0.01, Particles: 10000,
			Params: ProcessParams{Start: 0, Diffusion: 2.0},
		},
	},
	"fbm": {
		"subdiffusive": {
			Process: "fbm", Duration: 10.0, StepSize: 0.01, Particles: 5000,
			Params: ProcessParams{Start: 0, Hurst: 0.3},
		},
		"superdiffusive": {
			Process: "fbm", Duration: 10.0, StepSize: 0.01, Particles: 5000,
			Params: ProcessParams{Start: 0, Hurst: 0.7},
		},
	},
	"levy": {
		"flight": {
			Process: "levy", Duration: 10.0, StepSize: 0.01, Particles: 10000,
			Params: ProcessParams{Start: 0, Alpha: 1.5},
		},
		"cauchy": {
			Process: "levy", Duration: 10.0, StepSize: 0.01, Particles: 10000,
			Params: ProcessParams{Start: 0, Alpha: 1.0},
		},
	},
	"ou": {
		"relax": {
			Process: "ou", Duration: 20.0, StepSize: 0.01, Particles: 10000,
			Params: ProcessParams{Start: 2.0, Theta: 1.0, Mu: 0, Sigma: 0.5},
		},
		"stiff": {
			Process: "ou", Duration: 5.0, StepSize: 0.001, Particles: 10000,
			Params: ProcessParams{Start: 1.0, Theta: 10.0, Mu: 0, Sigma: 1.0},
		},
	},
	"gbm": {
		"growth": {
			Process: "gbm", Duration: 10.0, StepSize: 0.01, Particles: 10000,
			Params: ProcessParams{Start: 1.0, Mu: 0.05, Sigma: 0.2},
		},
		"volatile": {
			Process: "gbm", Duration: 10.0, StepSize: 0.01, Particles: 10000,
			Params: ProcessParams{Start: 1.0, Mu: 0.0, Sigma: 0.8},
		},
	},
	"ctrw": {
		"heavy_wait": {
			Process: "ctrw", Duration: 50.0, StepSize: 0.01, Particles: 5000,
			Params: ProcessParams{Start: 0, Alpha: 0.7, Beta: 2.0},
		},
		"heavy_jump": {
			Process: "ctrw", Duration: 50.0, StepSize: 0.01, Particles: 5000,
			Params: ProcessParams{Start: 0, Alpha: 1.0, Beta: 1.2},
		},
	},
	"levy_walk": {
		"ballistic": {
			Process: "levy_walk", Duration: 50.0, StepSize: 0.01, Particles: 5000,
			Params: ProcessParams{Start: 0, Alpha: 0.8, Velocity: 1.0},
		},
		"diffusive": {
			Process: "levy_walk", Duration: 50.0, StepSize: 0.01, Particles: 5000,
			Params: ProcessParams{Start: 0, Alpha: 1.8, Velocity: 1.0},
		},
	},
	"poisson": {
		"slow": {
			Process: "poisson", Duration: 20.0, StepSize: 0.01, Particles: 10000,
			Params: ProcessParams{Lambda: 0.5},
		},
		"fast": {
			Process: "poisson", Duration: 20.0, StepSize: 0.01, Particles: 10000,
			Params: ProcessParams{Lambda: 5.0},
		},
	},
	"subordinator": {
		"stable": {
			Process: "subordinator", Duration: 10.0, StepSize: 0.01, Particles: 5000,
			Params: ProcessParams{Alpha: 0.7},
		},
		"inverse": {
			Process: "inv_subordinator", Duration: 10.0, StepSize: 0.01, Particles: 5000,
			Params: ProcessParams{Alpha: 0.7},
		},
	},
	"bridge": {
		"pinned": {
			Process: "bridge", Duration: 1.0, StepSize: 0.001, Particles: 10000,
		},
		"excursion": {
			Process: "excursion", Duration: 1.0, StepSize: 0.001, Particles: 10000,
		},
		"meander": {
			Process: "meander", Duration: 1.0, StepSize: 0.001, Particles: 10000,
		},
	},
}

func GetPreset(kind, preset string) *Config {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	cfg, ok := kindPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(kind string) []string {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(kindPresets))
	for name := range kindPresets {
		names = append(names, name)
	}
	return names
}
