package process

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/diffusim/internal/randx"
)

// ErrInvalidParam is wrapped by every constructor and simulation rejection.
var ErrInvalidParam = errors.New("process: invalid parameter")

// Path is one realized trajectory: Times strictly increasing from 0,
// Values the same length, Values[0] equal to the start position. The core
// never retains a reference to an emitted path.
type Path struct {
	Times  []float64
	Values []float64
}

// Last returns the terminal value.
func (p Path) Last() float64 { return p.Values[len(p.Values)-1] }

// Len returns the number of grid points.
func (p Path) Len() int { return len(p.Times) }

// At evaluates the path at time t by linear interpolation between grid
// points. t outside [Times[0], Times[end]] clamps to the nearest endpoint.
func (p Path) At(t float64) float64 {
	n := len(p.Times)
	if t <= p.Times[0] {
		return p.Values[0]
	}
	if t >= p.Times[n-1] {
		return p.Values[n-1]
	}
	// Grids are uniform for step-driven processes; try direct indexing
	// before falling back to binary search.
	if n > 1 {
		dt := p.Times[1] - p.Times[0]
		i := int(t / dt)
		if i >= 0 && i+1 < n && p.Times[i] <= t && t <= p.Times[i+1] {
			return lerp(p.Times[i], p.Values[i], p.Times[i+1], p.Values[i+1], t)
		}
	}
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if p.Times[mid] <= t {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lerp(p.Times[lo], p.Values[lo], p.Times[hi], p.Values[hi], t)
}

func lerp(t0, x0, t1, x1, t float64) float64 {
	if t1 == t0 {
		return x0
	}
	return x0 + (x1-x0)*(t-t0)/(t1-t0)
}

// Process is one stochastic process instance, immutable after construction.
// Sample produces a fresh path on a deterministic grid; all randomness comes
// from the supplied stream. Event-driven processes accept stepSize for
// interface uniformity and ignore it.
type Process interface {
	Start() float64
	Sample(src *randx.Stream, duration, stepSize float64) (Path, error)
}

// Stepper is implemented by event-driven processes (Poisson, CTRW, LevyWalk)
// that can also simulate a fixed number of events instead of a duration.
type Stepper interface {
	SampleSteps(src *randx.Stream, numStep int) (Path, error)
}

// grid validates (duration, stepSize) and returns the uniform time grid
// t_i = i*stepSize, i = 0..ceil(duration/stepSize). The grid depends only on
// the two inputs, never on random draws.
func grid(duration, stepSize float64) ([]float64, error) {
	if err := checkSim(duration, stepSize); err != nil {
		return nil, err
	}
	n := int(math.Ceil(duration / stepSize))
	times := make([]float64, n+1)
	for i := range times {
		times[i] = float64(i) * stepSize
	}
	return times, nil
}

func checkSim(duration, stepSize float64) error {
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidParam, duration)
	}
	if stepSize <= 0 || math.IsNaN(stepSize) || math.IsInf(stepSize, 0) {
		return fmt.Errorf("%w: step size must be positive, got %g", ErrInvalidParam, stepSize)
	}
	return nil
}

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite, got %g", ErrInvalidParam, name, v)
	}
	return nil
}

func checkPositive(name string, v float64) error {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidParam, name, v)
	}
	return nil
}
