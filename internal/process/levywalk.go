package process

import (
	"fmt"
	"math"

	"github.com/san-kum/diffusim/internal/randx"
)

// LevyWalk is the finite-velocity coupled-jump walk: each flight lasts a
// power-law time tau with exponent alpha and covers velocity*tau in a random
// direction. Waiting time and jump length are coupled through the velocity,
// unlike the CTRW where they are independent. The grid is the sequence of
// turning points, truncated exactly at the requested duration.
type LevyWalk struct {
	alpha    float64
	velocity float64
	start    float64
}

func NewLevyWalk(alpha, velocity, start float64) (*LevyWalk, error) {
	if !(alpha > 0 && alpha <= 2) {
		return nil, fmt.Errorf("%w: alpha must be in (0, 2], got %g", ErrInvalidParam, alpha)
	}
	if err := checkPositive("velocity", velocity); err != nil {
		return nil, err
	}
	if err := checkFinite("start position", start); err != nil {
		return nil, err
	}
	return &LevyWalk{alpha: alpha, velocity: velocity, start: start}, nil
}

func (l *LevyWalk) Start() float64 { return l.start }

// flight draws a Pareto(1, alpha) flight duration.
func (l *LevyWalk) flight(src *randx.Stream) float64 {
	u, _ := src.Uniform(0, 1, false)
	return math.Pow(1-u, -1/l.alpha)
}

func (l *LevyWalk) direction(src *randx.Stream) float64 {
	up, _ := src.Bool(0.5)
	if up {
		return 1
	}
	return -1
}

// Sample runs ballistic flights until duration; the last flight is cut at
// exactly t = duration.
func (l *LevyWalk) Sample(src *randx.Stream, duration, _ float64) (Path, error) {
	if err := checkPositive("duration", duration); err != nil {
		return Path{}, err
	}
	times := []float64{0}
	values := []float64{l.start}
	t, x := 0.0, l.start
	for t < duration {
		tau := l.flight(src)
		dir := l.direction(src)
		if t+tau > duration {
			tau = duration - t
		}
		t += tau
		x += dir * l.velocity * tau
		times = append(times, t)
		values = append(values, x)
	}
	return Path{Times: times, Values: values}, nil
}

// SampleSteps simulates exactly numStep complete flights.
func (l *LevyWalk) SampleSteps(src *randx.Stream, numStep int) (Path, error) {
	if numStep <= 0 {
		return Path{}, checkPositive("num_step", float64(numStep))
	}
	times := make([]float64, numStep+1)
	values := make([]float64, numStep+1)
	values[0] = l.start
	for i := 1; i <= numStep; i++ {
		tau := l.flight(src)
		times[i] = times[i-1] + tau
		values[i] = values[i-1] + l.direction(src)*l.velocity*tau
	}
	return Path{Times: times, Values: values}, nil
}
