package process

import (
	"math"

	"github.com/san-kum/diffusim/internal/randx"
)

// Bm is standard Brownian motion with diffusion coefficient D:
// dX = sqrt(2 D) dW.
type Bm struct {
	start float64
	d     float64
}

// NewBm validates and constructs a Brownian motion, D > 0.
func NewBm(start, diffusion float64) (*Bm, error) {
	if err := checkPositive("diffusion coefficient", diffusion); err != nil {
		return nil, err
	}
	if err := checkFinite("start position", start); err != nil {
		return nil, err
	}
	return &Bm{start: start, d: diffusion}, nil
}

func (b *Bm) Start() float64 { return b.start }

// Diffusion returns the diffusion coefficient D.
func (b *Bm) Diffusion() float64 { return b.d }

func (b *Bm) Sample(src *randx.Stream, duration, stepSize float64) (Path, error) {
	times, err := grid(duration, stepSize)
	if err != nil {
		return Path{}, err
	}
	values := make([]float64, len(times))
	values[0] = b.start
	step := math.Sqrt(2 * b.d * stepSize)
	for i := 1; i < len(values); i++ {
		values[i] = values[i-1] + step*src.StdNormal()
	}
	return Path{Times: times, Values: values}, nil
}
