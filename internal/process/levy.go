package process

import (
	"fmt"
	"math"

	"github.com/san-kum/diffusim/internal/randx"
)

// Levy is the symmetric alpha-stable Levy process. Increments scale as
// dt^(1/alpha), reflecting stable self-similarity rather than the sqrt(dt)
// of Brownian motion.
type Levy struct {
	alpha float64
	start float64
}

func NewLevy(alpha, start float64) (*Levy, error) {
	if !(alpha > 0 && alpha <= 2) {
		return nil, fmt.Errorf("%w: alpha must be in (0, 2], got %g", ErrInvalidParam, alpha)
	}
	if err := checkFinite("start position", start); err != nil {
		return nil, err
	}
	return &Levy{alpha: alpha, start: start}, nil
}

func (l *Levy) Start() float64 { return l.start }

func (l *Levy) Sample(src *randx.Stream, duration, stepSize float64) (Path, error) {
	times, err := grid(duration, stepSize)
	if err != nil {
		return Path{}, err
	}
	values := make([]float64, len(times))
	values[0] = l.start
	scale := math.Pow(stepSize, 1/l.alpha)
	for i := 1; i < len(values); i++ {
		xi, _ := src.SymStable(l.alpha)
		values[i] = values[i-1] + scale*xi
	}
	return Path{Times: times, Values: values}, nil
}

// AsymmetricLevy is the general (alpha, beta)-stable Levy process.
type AsymmetricLevy struct {
	alpha float64
	beta  float64
	start float64
}

func NewAsymmetricLevy(alpha, beta, start float64) (*AsymmetricLevy, error) {
	if !(alpha > 0 && alpha <= 2) {
		return nil, fmt.Errorf("%w: alpha must be in (0, 2], got %g", ErrInvalidParam, alpha)
	}
	if !(beta >= -1 && beta <= 1) {
		return nil, fmt.Errorf("%w: beta must be in [-1, 1], got %g", ErrInvalidParam, beta)
	}
	if err := checkFinite("start position", start); err != nil {
		return nil, err
	}
	return &AsymmetricLevy{alpha: alpha, beta: beta, start: start}, nil
}

func (l *AsymmetricLevy) Start() float64 { return l.start }

func (l *AsymmetricLevy) Sample(src *randx.Stream, duration, stepSize float64) (Path, error) {
	times, err := grid(duration, stepSize)
	if err != nil {
		return Path{}, err
	}
	values := make([]float64, len(times))
	values[0] = l.start
	// The per-step scale goes through the general sampler so the alpha=1
	// logarithmic shift is applied consistently.
	scale := math.Pow(stepSize, 1/l.alpha)
	for i := 1; i < len(values); i++ {
		xi, _ := src.Stable(l.alpha, l.beta, scale, 0)
		values[i] = values[i-1] + xi
	}
	return Path{Times: times, Values: values}, nil
}

// NewCauchy is the alpha=1 special case of the symmetric Levy process.
func NewCauchy(start float64) (*Levy, error) {
	return NewLevy(1, start)
}

// NewAsymmetricCauchy is the alpha=1 case of the asymmetric Levy process.
func NewAsymmetricCauchy(beta, start float64) (*AsymmetricLevy, error) {
	return NewAsymmetricLevy(1, beta, start)
}
