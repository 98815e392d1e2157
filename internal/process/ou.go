package process

import (
	"math"

	"github.com/san-kum/diffusim/internal/randx"
)

// OU is the Ornstein-Uhlenbeck process
// dX = theta (mu - X) dt + sigma dW, theta > 0, sigma > 0.
type OU struct {
	theta float64
	mu    float64
	sigma float64
	start float64
}

func NewOU(theta, mu, sigma, start float64) (*OU, error) {
	if err := checkPositive("theta", theta); err != nil {
		return nil, err
	}
	if err := checkPositive("sigma", sigma); err != nil {
		return nil, err
	}
	if err := checkFinite("mu", mu); err != nil {
		return nil, err
	}
	if err := checkFinite("start position", start); err != nil {
		return nil, err
	}
	return &OU{theta: theta, mu: mu, sigma: sigma, start: start}, nil
}

func (o *OU) Start() float64 { return o.start }

func (o *OU) Sample(src *randx.Stream, duration, stepSize float64) (Path, error) {
	times, err := grid(duration, stepSize)
	if err != nil {
		return Path{}, err
	}
	values := make([]float64, len(times))
	values[0] = o.start
	noise := o.sigma * math.Sqrt(stepSize)
	for i := 1; i < len(values); i++ {
		x := values[i-1]
		values[i] = x + o.theta*(o.mu-x)*stepSize + noise*src.StdNormal()
	}
	return Path{Times: times, Values: values}, nil
}
