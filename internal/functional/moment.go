package functional

import (
	"math"

	"github.com/san-kum/diffusim/internal/process"
	"github.com/san-kum/diffusim/internal/randx"
	"gonum.org/v1/gonum/stat"
)

// RawMoment estimates E[X(duration)^order] over cfg.Particles independent
// paths. order 0 short-circuits to 1.0 without touching the random source.
func RawMoment(p process.Process, duration float64, order int, cfg Config) (float64, error) {
	cfg = cfg.withDefaults()
	if err := checkOrder(order); err != nil {
		return 0, err
	}
	if err := checkDuration(duration); err != nil {
		return 0, err
	}
	if err := cfg.validate(); err != nil {
		return 0, err
	}
	if order == 0 {
		return 1.0, nil
	}
	values, err := terminals(p, duration, cfg)
	if err != nil {
		return 0, err
	}
	return stat.MomentAbout(float64(order), values, 0, nil), nil
}

// CentralMoment estimates E[(X(duration) - mean)^order] with the empirical
// ensemble mean. order 0 and order 1 short-circuit to 1.0 and 0.0.
func CentralMoment(p process.Process, duration float64, order int, cfg Config) (float64, error) {
	cfg = cfg.withDefaults()
	if err := checkOrder(order); err != nil {
		return 0, err
	}
	if err := checkDuration(duration); err != nil {
		return 0, err
	}
	if err := cfg.validate(); err != nil {
		return 0, err
	}
	switch order {
	case 0:
		return 1.0, nil
	case 1:
		return 0.0, nil
	}
	values, err := terminals(p, duration, cfg)
	if err != nil {
		return 0, err
	}
	return stat.Moment(float64(order), values, nil), nil
}

// FracRawMoment estimates E[|X(duration)|^order] for real order >= 0. The
// absolute value keeps fractional powers defined for sign-changing laws;
// orders below the stability index stay finite where integer moments
// diverge. order 0 short-circuits to 1.0 without touching the random source.
func FracRawMoment(p process.Process, duration, order float64, cfg Config) (float64, error) {
	cfg = cfg.withDefaults()
	if err := checkFracOrder(order); err != nil {
		return 0, err
	}
	if err := checkDuration(duration); err != nil {
		return 0, err
	}
	if err := cfg.validate(); err != nil {
		return 0, err
	}
	if order == 0 {
		return 1.0, nil
	}
	values, err := terminals(p, duration, cfg)
	if err != nil {
		return 0, err
	}
	return fracMoment(values, 0, order), nil
}

// FracCentralMoment estimates E[|X(duration) - mean|^order] with the
// empirical ensemble mean. Only order 0 short-circuits: at order 1 this is
// the mean absolute deviation, not zero.
func FracCentralMoment(p process.Process, duration, order float64, cfg Config) (float64, error) {
	cfg = cfg.withDefaults()
	if err := checkFracOrder(order); err != nil {
		return 0, err
	}
	if err := checkDuration(duration); err != nil {
		return 0, err
	}
	if err := cfg.validate(); err != nil {
		return 0, err
	}
	if order == 0 {
		return 1.0, nil
	}
	values, err := terminals(p, duration, cfg)
	if err != nil {
		return 0, err
	}
	return fracMoment(values, stat.Mean(values, nil), order), nil
}

func fracMoment(values []float64, about, order float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += math.Pow(math.Abs(v-about), order)
	}
	return sum / float64(len(values))
}

// Mean is the first raw moment of the terminal state.
func Mean(p process.Process, duration float64, cfg Config) (float64, error) {
	return RawMoment(p, duration, 1, cfg)
}

// MSD is the ensemble mean squared displacement E[(X(T) - X(0))^2].
func MSD(p process.Process, duration float64, cfg Config) (float64, error) {
	cfg = cfg.withDefaults()
	if err := checkDuration(duration); err != nil {
		return 0, err
	}
	if err := cfg.validate(); err != nil {
		return 0, err
	}
	start := p.Start()
	values, err := runEnsemble(cfg, func(src *randx.Stream) (float64, error) {
		path, err := p.Sample(src, duration, cfg.StepSize)
		if err != nil {
			return 0, err
		}
		d := path.Last() - start
		return d * d, nil
	})
	if err != nil {
		return 0, err
	}
	return stat.Mean(values, nil), nil
}

func terminals(p process.Process, duration float64, cfg Config) ([]float64, error) {
	return runEnsemble(cfg, func(src *randx.Stream) (float64, error) {
		path, err := p.Sample(src, duration, cfg.StepSize)
		if err != nil {
			return 0, err
		}
		return path.Last(), nil
	})
}
