package functional

import (
	"errors"
	"fmt"
	"math"
	"runtime"
)

// ErrInvalidParam is wrapped by every estimator rejection.
var ErrInvalidParam = errors.New("functional: invalid parameter")

// Defaults shared by all estimators.
const (
	DefaultParticles   = 10000
	DefaultStepSize    = 0.01
	DefaultMaxDuration = 1000.0
	DefaultQuadOrder   = 10
)

// Config carries the per-call estimator parameters. The zero value is usable:
// unset fields take the package defaults. Nothing here outlives one call.
type Config struct {
	Particles   int     // ensemble size
	StepSize    float64 // integrator step
	MaxDuration float64 // first-passage ceiling
	QuadOrder   int     // Gauss-Legendre nodes for TAMSD
	Seed        uint64  // 0 = entropy-seeded; otherwise reproducible
	Workers     int     // parallel trial workers, <=0 = GOMAXPROCS
}

func (c Config) withDefaults() Config {
	if c.Particles == 0 {
		c.Particles = DefaultParticles
	}
	if c.StepSize == 0 {
		c.StepSize = DefaultStepSize
	}
	if c.MaxDuration == 0 {
		c.MaxDuration = DefaultMaxDuration
	}
	if c.QuadOrder == 0 {
		c.QuadOrder = DefaultQuadOrder
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	return c
}

func (c Config) validate() error {
	if c.Particles <= 0 {
		return fmt.Errorf("%w: particles must be positive, got %d", ErrInvalidParam, c.Particles)
	}
	if c.StepSize <= 0 || math.IsNaN(c.StepSize) || math.IsInf(c.StepSize, 0) {
		return fmt.Errorf("%w: step size must be positive, got %g", ErrInvalidParam, c.StepSize)
	}
	if c.MaxDuration <= 0 || math.IsNaN(c.MaxDuration) || math.IsInf(c.MaxDuration, 0) {
		return fmt.Errorf("%w: max duration must be positive, got %g", ErrInvalidParam, c.MaxDuration)
	}
	if c.QuadOrder <= 0 {
		return fmt.Errorf("%w: quadrature order must be positive, got %d", ErrInvalidParam, c.QuadOrder)
	}
	return nil
}

func checkOrder(order int) error {
	if order < 0 {
		return fmt.Errorf("%w: moment order must be non-negative, got %d", ErrInvalidParam, order)
	}
	return nil
}

func checkFracOrder(order float64) error {
	if order < 0 || math.IsNaN(order) || math.IsInf(order, 0) {
		return fmt.Errorf("%w: moment order must be non-negative and finite, got %g", ErrInvalidParam, order)
	}
	return nil
}

func checkDuration(duration float64) error {
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidParam, duration)
	}
	return nil
}

// Domain is the spatial (or count) interval (A, B), A < B, consumed
// read-only by the estimators.
type Domain struct {
	A, B float64
}

func (d Domain) validate() error {
	if math.IsNaN(d.A) || math.IsNaN(d.B) {
		return fmt.Errorf("%w: domain bounds must be numbers", ErrInvalidParam)
	}
	if d.A >= d.B {
		return fmt.Errorf("%w: domain needs a < b, got (%g, %g)", ErrInvalidParam, d.A, d.B)
	}
	return nil
}

// contains is the closed-interval inclusion test shared by the occupation
// estimators.
func (d Domain) contains(x float64) bool { return d.A <= x && x <= d.B }

// exited is the first-passage exit test: at or beyond either boundary.
func (d Domain) exited(x float64) bool { return x <= d.A || x >= d.B }
