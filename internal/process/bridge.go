package process

import (
	"math"

	"github.com/san-kum/diffusim/internal/randx"
)

// BrownianBridge is standard Brownian motion on [0, T] pinned to 0 at both
// endpoints, simulated by the conditional-Gaussian forward recursion
// x[i+1] = x[i] - x[i] dt / (T - t[i]) + sqrt(dt) N(0, 1).
type BrownianBridge struct{}

func NewBrownianBridge() (*BrownianBridge, error) { return &BrownianBridge{}, nil }

func (b *BrownianBridge) Start() float64 { return 0 }

func (b *BrownianBridge) Sample(src *randx.Stream, duration, stepSize float64) (Path, error) {
	times, err := grid(duration, stepSize)
	if err != nil {
		return Path{}, err
	}
	values := bridgeValues(src, times)
	return Path{Times: times, Values: values}, nil
}

// bridgeValues fills a pinned 0->0 bridge over the given grid. The terminal
// point is exactly zero.
func bridgeValues(src *randx.Stream, times []float64) []float64 {
	n := len(times) - 1
	total := times[n]
	values := make([]float64, n+1)
	noise := math.Sqrt(times[1] - times[0])
	for i := 1; i < n; i++ {
		dt := times[i] - times[i-1]
		remaining := total - times[i-1]
		values[i] = values[i-1] - values[i-1]*dt/remaining + noise*src.StdNormal()
	}
	values[n] = 0
	return values
}

// BrownianExcursion is Brownian motion on [0, T] conditioned to stay
// positive and return to 0 at T. Realized as a Bessel(3) bridge: the norm of
// three independent pinned Brownian bridges.
type BrownianExcursion struct{}

func NewBrownianExcursion() (*BrownianExcursion, error) { return &BrownianExcursion{}, nil }

func (b *BrownianExcursion) Start() float64 { return 0 }

func (b *BrownianExcursion) Sample(src *randx.Stream, duration, stepSize float64) (Path, error) {
	times, err := grid(duration, stepSize)
	if err != nil {
		return Path{}, err
	}
	b1 := bridgeValues(src, times)
	b2 := bridgeValues(src, times)
	b3 := bridgeValues(src, times)
	values := make([]float64, len(times))
	for i := range values {
		values[i] = math.Sqrt(b1[i]*b1[i] + b2[i]*b2[i] + b3[i]*b3[i])
	}
	return Path{Times: times, Values: values}, nil
}

// BrownianMeander is Brownian motion on [0, T] conditioned to stay positive,
// free at the terminal time. Imhof's construction: the norm of three pinned
// bridges with a Rayleigh-distributed terminal radius folded into the first
// coordinate.
type BrownianMeander struct{}

func NewBrownianMeander() (*BrownianMeander, error) { return &BrownianMeander{}, nil }

func (b *BrownianMeander) Start() float64 { return 0 }

func (b *BrownianMeander) Sample(src *randx.Stream, duration, stepSize float64) (Path, error) {
	times, err := grid(duration, stepSize)
	if err != nil {
		return Path{}, err
	}
	total := times[len(times)-1]
	// Terminal radius r with P(r > x) = exp(-x^2 / 2T).
	r := math.Sqrt(2 * total * src.StdExp())
	b1 := bridgeValues(src, times)
	b2 := bridgeValues(src, times)
	b3 := bridgeValues(src, times)
	values := make([]float64, len(times))
	for i, t := range times {
		u := b1[i] + r*t/total
		values[i] = math.Sqrt(u*u + b2[i]*b2[i] + b3[i]*b3[i])
	}
	return Path{Times: times, Values: values}, nil
}
