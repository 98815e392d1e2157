package functional

import (
	"math"

	"github.com/san-kum/diffusim/internal/process"
	"github.com/san-kum/diffusim/internal/randx"
	"gonum.org/v1/gonum/stat"
)

// FPT simulates a single path up to cfg.MaxDuration and returns the first
// grid time at which the value sits at or beyond a domain boundary. A start
// position already outside the open interval returns 0 without simulating.
// ok is false when the path never exits: an absence, not an error.
func FPT(p process.Process, domain Domain, cfg Config) (t float64, ok bool, err error) {
	cfg = cfg.withDefaults()
	if err := domain.validate(); err != nil {
		return 0, false, err
	}
	if err := cfg.validate(); err != nil {
		return 0, false, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = randx.EntropySeed()
	}
	return fptOnce(p, domain, cfg, randx.Substream(seed, 0))
}

func fptOnce(p process.Process, domain Domain, cfg Config, src *randx.Stream) (float64, bool, error) {
	if domain.exited(p.Start()) {
		return 0, true, nil
	}
	path, err := p.Sample(src, cfg.MaxDuration, cfg.StepSize)
	if err != nil {
		return 0, false, err
	}
	for i := range path.Times {
		// Event-driven grids run one event past the horizon; a crossing
		// there is outside the search window.
		if path.Times[i] > cfg.MaxDuration {
			break
		}
		if domain.exited(path.Values[i]) {
			return path.Times[i], true, nil
		}
	}
	return 0, false, nil
}

// FirstPassageTime is the FPT functional of one process and domain, exposing
// moments of the first-passage ensemble.
type FirstPassageTime struct {
	p      process.Process
	domain Domain
}

func NewFirstPassageTime(p process.Process, domain Domain) (*FirstPassageTime, error) {
	if err := domain.validate(); err != nil {
		return nil, err
	}
	return &FirstPassageTime{p: p, domain: domain}, nil
}

// Simulate draws one first-passage time. ok is false on timeout.
func (f *FirstPassageTime) Simulate(cfg Config) (float64, bool, error) {
	return FPT(f.p, f.domain, cfg)
}

// RawMoment estimates E[T^order] over the FPT ensemble. If any trial never
// crosses within cfg.MaxDuration the moment is unknown and ok is false.
// order 0 short-circuits to 1.0 without simulating.
func (f *FirstPassageTime) RawMoment(order int, cfg Config) (float64, bool, error) {
	cfg = cfg.withDefaults()
	if err := checkOrder(order); err != nil {
		return 0, false, err
	}
	if err := cfg.validate(); err != nil {
		return 0, false, err
	}
	if order == 0 {
		return 1.0, true, nil
	}
	values, ok, err := f.ensemble(cfg)
	if err != nil || !ok {
		return 0, false, err
	}
	return stat.MomentAbout(float64(order), values, 0, nil), true, nil
}

// CentralMoment estimates the central moment of the FPT ensemble. Orders 0
// and 1 short-circuit to 1.0 and 0.0.
func (f *FirstPassageTime) CentralMoment(order int, cfg Config) (float64, bool, error) {
	cfg = cfg.withDefaults()
	if err := checkOrder(order); err != nil {
		return 0, false, err
	}
	if err := cfg.validate(); err != nil {
		return 0, false, err
	}
	switch order {
	case 0:
		return 1.0, true, nil
	case 1:
		return 0.0, true, nil
	}
	values, ok, err := f.ensemble(cfg)
	if err != nil || !ok {
		return 0, false, err
	}
	return stat.Moment(float64(order), values, nil), true, nil
}

// FracRawMoment estimates E[T^order] for real order >= 0, absent under the
// same timeout rule as the integer moments. Passage times are non-negative,
// so the absolute value is a no-op here.
func (f *FirstPassageTime) FracRawMoment(order float64, cfg Config) (float64, bool, error) {
	cfg = cfg.withDefaults()
	if err := checkFracOrder(order); err != nil {
		return 0, false, err
	}
	if err := cfg.validate(); err != nil {
		return 0, false, err
	}
	if order == 0 {
		return 1.0, true, nil
	}
	values, ok, err := f.ensemble(cfg)
	if err != nil || !ok {
		return 0, false, err
	}
	return fracMoment(values, 0, order), true, nil
}

// FracCentralMoment estimates E[|T - mean|^order] over the FPT ensemble.
func (f *FirstPassageTime) FracCentralMoment(order float64, cfg Config) (float64, bool, error) {
	cfg = cfg.withDefaults()
	if err := checkFracOrder(order); err != nil {
		return 0, false, err
	}
	if err := cfg.validate(); err != nil {
		return 0, false, err
	}
	if order == 0 {
		return 1.0, true, nil
	}
	values, ok, err := f.ensemble(cfg)
	if err != nil || !ok {
		return 0, false, err
	}
	return fracMoment(values, stat.Mean(values, nil), order), true, nil
}

// ensemble collects one FPT per particle. Timeouts are marked NaN inside the
// trial (grid times are always finite) and surfaced as ok=false.
func (f *FirstPassageTime) ensemble(cfg Config) ([]float64, bool, error) {
	values, err := runEnsemble(cfg, func(src *randx.Stream) (float64, error) {
		t, ok, err := fptOnce(f.p, f.domain, cfg, src)
		if err != nil {
			return 0, err
		}
		if !ok {
			return math.NaN(), nil
		}
		return t, nil
	})
	if err != nil {
		return nil, false, err
	}
	for _, v := range values {
		if math.IsNaN(v) {
			return nil, false, nil
		}
	}
	return values, true, nil
}
