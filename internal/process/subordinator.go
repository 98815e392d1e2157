package process

import (
	"fmt"
	"math"

	"github.com/san-kum/diffusim/internal/randx"
)

// Subordinator is the non-decreasing alpha-stable Levy process, alpha in
// (0, 1), used as operational time for time-changed dynamics. Increments are
// fully skewed standard stable draws scaled by dt^(1/alpha).
type Subordinator struct {
	alpha float64
}

func NewSubordinator(alpha float64) (*Subordinator, error) {
	if !(alpha > 0 && alpha < 1) {
		return nil, fmt.Errorf("%w: subordinator alpha must be in (0, 1), got %g", ErrInvalidParam, alpha)
	}
	return &Subordinator{alpha: alpha}, nil
}

func (s *Subordinator) Start() float64 { return 0 }

func (s *Subordinator) Sample(src *randx.Stream, duration, stepSize float64) (Path, error) {
	times, err := grid(duration, stepSize)
	if err != nil {
		return Path{}, err
	}
	values := make([]float64, len(times))
	scale := math.Pow(stepSize, 1/s.alpha)
	for i := 1; i < len(values); i++ {
		xi, _ := src.SkewStable(s.alpha)
		values[i] = values[i-1] + scale*xi
	}
	return Path{Times: times, Values: values}, nil
}

// InvSubordinator is the right-continuous generalized inverse
// E(t) = inf{s : S(s) > t} of an alpha-stable subordinator.
type InvSubordinator struct {
	alpha float64
}

func NewInvSubordinator(alpha float64) (*InvSubordinator, error) {
	if !(alpha > 0 && alpha < 1) {
		return nil, fmt.Errorf("%w: inverse subordinator alpha must be in (0, 1), got %g", ErrInvalidParam, alpha)
	}
	return &InvSubordinator{alpha: alpha}, nil
}

func (s *InvSubordinator) Start() float64 { return 0 }

func (s *InvSubordinator) Sample(src *randx.Stream, duration, stepSize float64) (Path, error) {
	times, err := grid(duration, stepSize)
	if err != nil {
		return Path{}, err
	}
	// Simulate the parent subordinator in operational time until it clears
	// every physical level on the grid, then invert level by level.
	scale := math.Pow(stepSize, 1/s.alpha)
	top := times[len(times)-1]
	sub := []float64{0}
	for sub[len(sub)-1] <= top {
		xi, _ := src.SkewStable(s.alpha)
		sub = append(sub, sub[len(sub)-1]+scale*xi)
	}
	values := make([]float64, len(times))
	j := 0
	for i, t := range times {
		for sub[j] <= t {
			j++
		}
		values[i] = float64(j) * stepSize
	}
	values[0] = 0
	return Path{Times: times, Values: values}, nil
}

// samplePinned simulates the parent subordinator on the grid of stepSize
// operational-time steps, n steps long. Used by the subordinated Langevin
// integrator, which needs the raw (non-inverted) clock.
func (s *Subordinator) samplePinned(src *randx.Stream, n int, stepSize float64) []float64 {
	values := make([]float64, n+1)
	scale := math.Pow(stepSize, 1/s.alpha)
	for i := 1; i <= n; i++ {
		xi, _ := src.SkewStable(s.alpha)
		values[i] = values[i-1] + scale*xi
	}
	return values
}
