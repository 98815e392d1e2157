package process

import (
	"math"

	"github.com/san-kum/diffusim/internal/randx"
)

// GeometricBm is geometric Brownian motion
// S_t = S_0 exp((mu - sigma^2/2) t + sigma W_t). Steps use the exact
// lognormal update, not Euler on S, so paths can never go negative.
type GeometricBm struct {
	start float64
	mu    float64
	sigma float64
}

func NewGeometricBm(start, mu, sigma float64) (*GeometricBm, error) {
	if err := checkPositive("start value", start); err != nil {
		return nil, err
	}
	if err := checkPositive("sigma", sigma); err != nil {
		return nil, err
	}
	if err := checkFinite("mu", mu); err != nil {
		return nil, err
	}
	return &GeometricBm{start: start, mu: mu, sigma: sigma}, nil
}

func (g *GeometricBm) Start() float64 { return g.start }

func (g *GeometricBm) Sample(src *randx.Stream, duration, stepSize float64) (Path, error) {
	times, err := grid(duration, stepSize)
	if err != nil {
		return Path{}, err
	}
	values := make([]float64, len(times))
	values[0] = g.start
	drift := (g.mu - 0.5*g.sigma*g.sigma) * stepSize
	vol := g.sigma * math.Sqrt(stepSize)
	for i := 1; i < len(values); i++ {
		values[i] = values[i-1] * math.Exp(drift+vol*src.StdNormal())
	}
	return Path{Times: times, Values: values}, nil
}
