package process

import (
	"github.com/san-kum/diffusim/internal/randx"
)

// PoissonProcess is the counting process with rate lambda: event times are
// cumulative Exp(1/lambda) waits, the value is the running count. Event
// driven; Sample ignores stepSize.
type PoissonProcess struct {
	lambda float64
}

func NewPoissonProcess(lambda float64) (*PoissonProcess, error) {
	if err := checkPositive("lambda", lambda); err != nil {
		return nil, err
	}
	return &PoissonProcess{lambda: lambda}, nil
}

func (p *PoissonProcess) Start() float64 { return 0 }

// Rate returns lambda.
func (p *PoissonProcess) Rate() float64 { return p.lambda }

// Sample runs events until the cumulative waiting time exceeds duration.
// The final grid point is the first event time beyond duration, so callers
// scanning for level crossings see the full last holding interval.
func (p *PoissonProcess) Sample(src *randx.Stream, duration, _ float64) (Path, error) {
	if err := checkPositive("duration", duration); err != nil {
		return Path{}, err
	}
	times := []float64{0}
	values := []float64{0}
	t, n := 0.0, 0.0
	for t <= duration {
		w, _ := src.Exp(1 / p.lambda)
		t += w
		n++
		times = append(times, t)
		values = append(values, n)
	}
	return Path{Times: times, Values: values}, nil
}

// SampleSteps simulates exactly numStep events.
func (p *PoissonProcess) SampleSteps(src *randx.Stream, numStep int) (Path, error) {
	if numStep <= 0 {
		return Path{}, checkPositive("num_step", float64(numStep))
	}
	times := make([]float64, numStep+1)
	values := make([]float64, numStep+1)
	for i := 1; i <= numStep; i++ {
		w, _ := src.Exp(1 / p.lambda)
		times[i] = times[i-1] + w
		values[i] = float64(i)
	}
	return Path{Times: times, Values: values}, nil
}
