package process

import (
	"fmt"

	"github.com/san-kum/diffusim/internal/randx"
)

// CTRW is the continuous-time random walk: power-law waiting times with
// exponent alpha in (0, 1] alternate with symmetric beta-stable jumps,
// beta in (0, 2]. alpha = 1 degenerates to exponential waits, beta = 2 to
// Gaussian jumps. Event driven; Sample ignores stepSize.
type CTRW struct {
	alpha float64
	beta  float64
	start float64
}

func NewCTRW(alpha, beta, start float64) (*CTRW, error) {
	if !(alpha > 0 && alpha <= 1) {
		return nil, fmt.Errorf("%w: alpha must be in (0, 1], got %g", ErrInvalidParam, alpha)
	}
	if !(beta > 0 && beta <= 2) {
		return nil, fmt.Errorf("%w: beta must be in (0, 2], got %g", ErrInvalidParam, beta)
	}
	if err := checkFinite("start position", start); err != nil {
		return nil, err
	}
	return &CTRW{alpha: alpha, beta: beta, start: start}, nil
}

func (c *CTRW) Start() float64 { return c.start }

func (c *CTRW) wait(src *randx.Stream) float64 {
	if c.alpha == 1 {
		return src.StdExp()
	}
	w, _ := src.SkewStable(c.alpha)
	return w
}

func (c *CTRW) jump(src *randx.Stream) float64 {
	if c.beta == 2 {
		return src.StdNormal()
	}
	j, _ := src.SymStable(c.beta)
	return j
}

// Sample draws jumps until the cumulative waiting time exceeds duration.
func (c *CTRW) Sample(src *randx.Stream, duration, _ float64) (Path, error) {
	if err := checkPositive("duration", duration); err != nil {
		return Path{}, err
	}
	times := []float64{0}
	values := []float64{c.start}
	t, x := 0.0, c.start
	for t <= duration {
		t += c.wait(src)
		x += c.jump(src)
		times = append(times, t)
		values = append(values, x)
	}
	return Path{Times: times, Values: values}, nil
}

// SampleSteps simulates exactly numStep jumps.
func (c *CTRW) SampleSteps(src *randx.Stream, numStep int) (Path, error) {
	if numStep <= 0 {
		return Path{}, checkPositive("num_step", float64(numStep))
	}
	times := make([]float64, numStep+1)
	values := make([]float64, numStep+1)
	values[0] = c.start
	for i := 1; i <= numStep; i++ {
		times[i] = times[i-1] + c.wait(src)
		values[i] = values[i-1] + c.jump(src)
	}
	return Path{Times: times, Values: values}, nil
}
