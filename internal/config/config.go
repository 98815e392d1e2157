package config

import (
	"fmt"
	"os"

	"github.com/san-kum/diffusim/internal/process"
	"gopkg.in/yaml.v3"
)

const (
	DefaultStepSize  = 0.01
	DefaultDuration  = 10.0
	DefaultParticles = 10000
	DefaultDiffusion = 0.5
	DefaultHurst     = 0.5
	DefaultAlpha     = 1.5
	DefaultLambda    = 1.0
	DefaultSigma     = 0.1
	DefaultTheta     = 1.0
)

// Config describes one simulation run: the process kind, its parameters,
// and the grid/ensemble settings.
type Config struct {
	Process   string        `yaml:"process"`
	Duration  float64       `yaml:"duration"`
	StepSize  float64       `yaml:"step_size"`
	Particles int           `yaml:"particles"`
	Seed      uint64        `yaml:"seed"`
	Params    ProcessParams `yaml:"params"`
}

// ProcessParams is the union of per-kind numeric parameters; each kind reads
// only the fields it documents.
type ProcessParams struct {
	Start     float64 `yaml:"start"`
	Diffusion float64 `yaml:"diffusion"`
	Hurst     float64 `yaml:"hurst"`
	Alpha     float64 `yaml:"alpha"`
	Beta      float64 `yaml:"beta"`
	Theta     float64 `yaml:"theta"`
	Mu        float64 `yaml:"mu"`
	Sigma     float64 `yaml:"sigma"`
	Lambda    float64 `yaml:"lambda"`
	Shape     float64 `yaml:"shape"`
	Rate      float64 `yaml:"rate"`
	Velocity  float64 `yaml:"velocity"`
}

func DefaultConfig() *Config {
	return &Config{
		Process:   "bm",
		Duration:  DefaultDuration,
		StepSize:  DefaultStepSize,
		Particles: DefaultParticles,
		Params: ProcessParams{
			Diffusion: DefaultDiffusion,
			Hurst:     DefaultHurst,
			Alpha:     DefaultAlpha,
			Beta:      0,
			Theta:     DefaultTheta,
			Sigma:     DefaultSigma,
			Lambda:    DefaultLambda,
			Shape:     1,
			Rate:      1,
			Velocity:  1,
			Start:     0,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build constructs the validated process instance for this config. The kind
// set is closed; an unknown name is an error, not a fallback.
func (c *Config) Build() (process.Process, error) {
	p := c.Params
	switch c.Process {
	case "bm":
		return wrap(process.NewBm(p.Start, p.Diffusion))
	case "fbm":
		return wrap(process.NewFbm(p.Start, p.Hurst))
	case "levy":
		return wrap(process.NewLevy(p.Alpha, p.Start))
	case "asymmetric_levy":
		return wrap(process.NewAsymmetricLevy(p.Alpha, p.Beta, p.Start))
	case "cauchy":
		return wrap(process.NewCauchy(p.Start))
	case "asymmetric_cauchy":
		return wrap(process.NewAsymmetricCauchy(p.Beta, p.Start))
	case "subordinator":
		return wrap(process.NewSubordinator(p.Alpha))
	case "inv_subordinator":
		return wrap(process.NewInvSubordinator(p.Alpha))
	case "ctrw":
		return wrap(process.NewCTRW(p.Alpha, p.Beta, p.Start))
	case "poisson":
		return wrap(process.NewPoissonProcess(p.Lambda))
	case "levy_walk":
		return wrap(process.NewLevyWalk(p.Alpha, p.Velocity, p.Start))
	case "gamma":
		return wrap(process.NewGammaProcess(p.Shape, p.Rate))
	case "ou":
		return wrap(process.NewOU(p.Theta, p.Mu, p.Sigma, p.Start))
	case "gbm":
		return wrap(process.NewGeometricBm(p.Start, p.Mu, p.Sigma))
	case "bridge":
		return wrap(process.NewBrownianBridge())
	case "excursion":
		return wrap(process.NewBrownianExcursion())
	case "meander":
		return wrap(process.NewBrownianMeander())
	default:
		return nil, fmt.Errorf("unknown process kind %q", c.Process)
	}
}

func wrap[P process.Process](p P, err error) (process.Process, error) {
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Kinds lists the process names Build accepts.
func Kinds() []string {
	return []string{
		"bm", "fbm", "levy", "asymmetric_levy", "cauchy", "asymmetric_cauchy",
		"subordinator", "inv_subordinator", "ctrw", "poisson", "levy_walk",
		"gamma", "ou", "gbm", "bridge", "excursion", "meander",
	}
}
