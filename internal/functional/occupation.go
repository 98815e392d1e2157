package functional

import (
	"github.com/san-kum/diffusim/internal/process"
	"github.com/san-kum/diffusim/internal/randx"
	"gonum.org/v1/gonum/stat"
)

// OccupationTime simulates one path to duration and sums the time-weighted
// intervals spent inside the closed domain [a, b], crediting the interval
// (t[i-1], t[i]] when the right endpoint x[i] is inside, clipped to the
// horizon so the result never exceeds duration. The right-endpoint
// convention is kept as-is for compatibility; changing it would silently
// shift every occupation statistic.
func OccupationTime(p process.Process, domain Domain, duration float64, cfg Config) (float64, error) {
	cfg = cfg.withDefaults()
	if err := domain.validate(); err != nil {
		return 0, err
	}
	if err := checkDuration(duration); err != nil {
		return 0, err
	}
	if err := cfg.validate(); err != nil {
		return 0, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = randx.EntropySeed()
	}
	return occupationOnce(p, domain, duration, cfg, randx.Substream(seed, 0))
}

func occupationOnce(p process.Process, domain Domain, duration float64, cfg Config, src *randx.Stream) (float64, error) {
	path, err := p.Sample(src, duration, cfg.StepSize)
	if err != nil {
		return 0, err
	}
	occ := 0.0
	for i := 1; i < path.Len(); i++ {
		if path.Times[i-1] >= duration {
			break
		}
		if domain.contains(path.Values[i]) {
			// Event grids overshoot the horizon by a full holding
			// interval; only the part inside [0, duration] counts.
			end := path.Times[i]
			if end > duration {
				end = duration
			}
			occ += end - path.Times[i-1]
		}
	}
	return occ, nil
}

// OccupationTimeStat is the occupation-time functional of one process,
// domain, and horizon, exposing moments over independent paths.
type OccupationTimeStat struct {
	p        process.Process
	domain   Domain
	duration float64
}

func NewOccupationTimeStat(p process.Process, domain Domain, duration float64) (*OccupationTimeStat, error) {
	if err := domain.validate(); err != nil {
		return nil, err
	}
	if err := checkDuration(duration); err != nil {
		return nil, err
	}
	return &OccupationTimeStat{p: p, domain: domain, duration: duration}, nil
}

// Simulate draws one occupation time.
func (o *OccupationTimeStat) Simulate(cfg Config) (float64, error) {
	return OccupationTime(o.p, o.domain, o.duration, cfg)
}

// RawMoment estimates E[O^order] over the occupation-time ensemble.
// order 0 short-circuits to 1.0 without simulating.
func (o *OccupationTimeStat) RawMoment(order int, cfg Config) (float64, error) {
	cfg = cfg.withDefaults()
	if err := checkOrder(order); err != nil {
		return 0, err
	}
	if err := cfg.validate(); err != nil {
		return 0, err
	}
	if order == 0 {
		return 1.0, nil
	}
	values, err := o.ensemble(cfg)
	if err != nil {
		return 0, err
	}
	return stat.MomentAbout(float64(order), values, 0, nil), nil
}

// CentralMoment estimates the central moment of the occupation-time
// ensemble. Orders 0 and 1 short-circuit to 1.0 and 0.0.
func (o *OccupationTimeStat) CentralMoment(order int, cfg Config) (float64, error) {
	cfg = cfg.withDefaults()
	if err := checkOrder(order); err != nil {
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
	values, err := o.ensemble(cfg)
	if err != nil {
		return 0, err
	}
	return stat.Moment(float64(order), values, nil), nil
}

// FracRawMoment estimates E[O^order] for real order >= 0. Occupation times
// are non-negative, so the absolute value is a no-op here.
func (o *OccupationTimeStat) FracRawMoment(order float64, cfg Config) (float64, error) {
	cfg = cfg.withDefaults()
	if err := checkFracOrder(order); err != nil {
		return 0, err
	}
	if err := cfg.validate(); err != nil {
		return 0, err
	}
	if order == 0 {
		return 1.0, nil
	}
	values, err := o.ensemble(cfg)
	if err != nil {
		return 0, err
	}
	return fracMoment(values, 0, order), nil
}

// FracCentralMoment estimates E[|O - mean|^order] over the occupation-time
// ensemble.
func (o *OccupationTimeStat) FracCentralMoment(order float64, cfg Config) (float64, error) {
	cfg = cfg.withDefaults()
	if err := checkFracOrder(order); err != nil {
		return 0, err
	}
	if err := cfg.validate(); err != nil {
		return 0, err
	}
	if order == 0 {
		return 1.0, nil
	}
	values, err := o.ensemble(cfg)
	if err != nil {
		return 0, err
	}
	return fracMoment(values, stat.Mean(values, nil), order), nil
}

func (o *OccupationTimeStat) ensemble(cfg Config) ([]float64, error) {
	return runEnsemble(cfg, func(src *randx.Stream) (float64, error) {
		return occupationOnce(o.p, o.domain, o.duration, cfg, src)
	})
}
