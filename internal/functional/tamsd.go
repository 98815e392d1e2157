package functional

import (
	"fmt"
	"math"

	"github.com/san-kum/diffusim/internal/process"
	"github.com/san-kum/diffusim/internal/randx"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat"
)

// TAMSD is the time-averaged mean squared displacement of one path:
//
//	(1 / (T - delta)) * int_0^{T-delta} (x(t+delta) - x(t))^2 dt
//
// evaluated by Gauss-Legendre quadrature with cfg.QuadOrder nodes over a
// linearly interpolated trajectory.
func TAMSD(p process.Process, duration, delta float64, cfg Config) (float64, error) {
	cfg = cfg.withDefaults()
	if err := checkTamsd(duration, delta); err != nil {
		return 0, err
	}
	if err := cfg.validate(); err != nil {
		return 0, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = randx.EntropySeed()
	}
	return tamsdOnce(p, duration, delta, cfg, randx.Substream(seed, 0))
}

func tamsdOnce(p process.Process, duration, delta float64, cfg Config, src *randx.Stream) (float64, error) {
	path, err := p.Sample(src, duration, cfg.StepSize)
	if err != nil {
		return 0, err
	}
	window := duration - delta
	integrand := func(t float64) float64 {
		d := path.At(t+delta) - path.At(t)
		return d * d
	}
	integral := quad.Fixed(integrand, 0, window, cfg.QuadOrder, quad.Legendre{}, 0)
	return integral / window, nil
}

// EATAMSD is the ensemble average of TAMSD over cfg.Particles independent
// paths.
func EATAMSD(p process.Process, duration, delta float64, cfg Config) (float64, error) {
	cfg = cfg.withDefaults()
	if err := checkTamsd(duration, delta); err != nil {
		return 0, err
	}
	if err := cfg.validate(); err != nil {
		return 0, err
	}
	values, err := runEnsemble(cfg, func(src *randx.Stream) (float64, error) {
		return tamsdOnce(p, duration, delta, cfg, src)
	})
	if err != nil {
		return 0, err
	}
	return stat.Mean(values, nil), nil
}

func checkTamsd(duration, delta float64) error {
	if err := checkDuration(duration); err != nil {
		return err
	}
	if delta <= 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return fmt.Errorf("%w: delta must be positive, got %g", ErrInvalidParam, delta)
	}
	if delta >= duration {
		return fmt.Errorf("%w: delta must be smaller than duration, got delta=%g duration=%g",
			ErrInvalidParam, delta, duration)
	}
	return nil
}
