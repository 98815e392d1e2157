package process

import (
	"fmt"
	"math"

	"github.com/san-kum/diffusim/internal/randx"
)

// DriftFunc and DiffusionFunc are the user-supplied coefficient callables
// f(x, t) and g(x, t) of the Langevin family.
type (
	DriftFunc     func(x, t float64) float64
	DiffusionFunc func(x, t float64) float64
)

// Langevin is the Ito SDE dX = f(X, t) dt + g(X, t) dW integrated by
// Euler-Maruyama.
type Langevin struct {
	drift     DriftFunc
	diffusion DiffusionFunc
	start     float64
}

func NewLangevin(drift DriftFunc, diffusion DiffusionFunc, start float64) (*Langevin, error) {
	if drift == nil || diffusion == nil {
		return nil, fmt.Errorf("%w: drift and diffusion functions are required", ErrInvalidParam)
	}
	if err := checkFinite("start position", start); err != nil {
		return nil, err
	}
	return &Langevin{drift: drift, diffusion: diffusion, start: start}, nil
}

func (l *Langevin) Start() float64 { return l.start }

func (l *Langevin) Sample(src *randx.Stream, duration, stepSize float64) (Path, error) {
	times, err := grid(duration, stepSize)
	if err != nil {
		return Path{}, err
	}
	values := make([]float64, len(times))
	values[0] = l.start
	sqdt := math.Sqrt(stepSize)
	for i := 1; i < len(values); i++ {
		x, t := values[i-1], times[i-1]
		values[i] = x + l.drift(x, t)*stepSize + l.diffusion(x, t)*sqdt*src.StdNormal()
	}
	return Path{Times: times, Values: values}, nil
}

// GeneralizedLangevin replaces the Gaussian noise with symmetric
// alpha-stable noise: dX = f dt + g dL_alpha, increments scaled dt^(1/alpha).
type GeneralizedLangevin struct {
	drift     DriftFunc
	diffusion DiffusionFunc
	alpha     float64
	start     float64
}

func NewGeneralizedLangevin(drift DriftFunc, diffusion DiffusionFunc, alpha, start float64) (*GeneralizedLangevin, error) {
	if drift == nil || diffusion == nil {
		return nil, fmt.Errorf("%w: drift and diffusion functions are required", ErrInvalidParam)
	}
	if !(alpha > 0 && alpha <= 2) {
		return nil, fmt.Errorf("%w: alpha must be in (0, 2], got %g", ErrInvalidParam, alpha)
	}
	if err := checkFinite("start position", start); err != nil {
		return nil, err
	}
	return &GeneralizedLangevin{drift: drift, diffusion: diffusion, alpha: alpha, start: start}, nil
}

func (l *GeneralizedLangevin) Start() float64 { return l.start }

func (l *GeneralizedLangevin) Sample(src *randx.Stream, duration, stepSize float64) (Path, error) {
	times, err := grid(duration, stepSize)
	if err != nil {
		return Path{}, err
	}
	values := make([]float64, len(times))
	values[0] = l.start
	scale := math.Pow(stepSize, 1/l.alpha)
	for i := 1; i < len(values); i++ {
		x, t := values[i-1], times[i-1]
		xi, _ := src.SymStable(l.alpha)
		values[i] = x + l.drift(x, t)*stepSize + l.diffusion(x, t)*scale*xi
	}
	return Path{Times: times, Values: values}, nil
}

// SubordinatedLangevin integrates the Langevin dynamics against an
// alpha-stable operational clock S(t): each physical step advances the state
// by the subordinator increment ds, with Gaussian noise of variance ds. The
// clock path is drawn once per simulation.
type SubordinatedLangevin struct {
	drift     DriftFunc
	diffusion DiffusionFunc
	clock     *Subordinator
	start     float64
}

func NewSubordinatedLangevin(drift DriftFunc, diffusion DiffusionFunc, alpha, start float64) (*SubordinatedLangevin, error) {
	if drift == nil || diffusion == nil {
		return nil, fmt.Errorf("%w: drift and diffusion functions are required", ErrInvalidParam)
	}
	clock, err := NewSubordinator(alpha)
	if err != nil {
		return nil, err
	}
	if err := checkFinite("start position", start); err != nil {
		return nil, err
	}
	return &SubordinatedLangevin{drift: drift, diffusion: diffusion, clock: clock, start: start}, nil
}

func (l *SubordinatedLangevin) Start() float64 { return l.start }

func (l *SubordinatedLangevin) Sample(src *randx.Stream, duration, stepSize float64) (Path, error) {
	times, err := grid(duration, stepSize)
	if err != nil {
		return Path{}, err
	}
	n := len(times) - 1
	s := l.clock.samplePinned(src, n, stepSize)
	values := make([]float64, n+1)
	values[0] = l.start
	for i := 1; i <= n; i++ {
		x, t := values[i-1], times[i-1]
		ds := s[i] - s[i-1]
		values[i] = x + l.drift(x, t)*ds + l.diffusion(x, t)*math.Sqrt(ds)*src.StdNormal()
	}
	return Path{Times: times, Values: values}, nil
}
