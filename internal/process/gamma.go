package process

import (
	"github.com/san-kum/diffusim/internal/randx"
)

// GammaProcess is the non-decreasing Levy process with independent
// Gamma(shape*dt, rate) increments.
type GammaProcess struct {
	shape float64
	rate  float64
}

func NewGammaProcess(shape, rate float64) (*GammaProcess, error) {
	if err := checkPositive("shape", shape); err != nil {
		return nil, err
	}
	if err := checkPositive("rate", rate); err != nil {
		return nil, err
	}
	return &GammaProcess{shape: shape, rate: rate}, nil
}

func (g *GammaProcess) Start() float64 { return 0 }

func (g *GammaProcess) Sample(src *randx.Stream, duration, stepSize float64) (Path, error) {
	times, err := grid(duration, stepSize)
	if err != nil {
		return Path{}, err
	}
	values := make([]float64, len(times))
	for i := 1; i < len(values); i++ {
		inc, err := src.Gamma(g.shape*stepSize, g.rate)
		if err != nil {
			return Path{}, err
		}
		values[i] = values[i-1] + inc
	}
	return Path{Times: times, Values: values}, nil
}
