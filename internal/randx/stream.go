package randx

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	mrand "math/rand/v2"
	"sync"
)

// ErrInvalidParam is wrapped by every sampler rejection.
var ErrInvalidParam = errors.New("randx: invalid parameter")

// Stream is a private pseudorandom source. Streams are not safe for
// concurrent use; give each worker its own.
type Stream struct {
	rng *mrand.Rand
}

// New returns a stream seeded from the OS entropy source.
func New() *Stream {
	return NewSeeded(EntropySeed())
}

// NewSeeded returns a deterministic stream. Identical seeds produce
// identical draw sequences.
func NewSeeded(seed uint64) *Stream {
	return &Stream{rng: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Fork derives an independent stream for trial idx. Used by the ensemble
// fan-out so parallel trials never share generator state.
func (s *Stream) Fork(idx uint64) *Stream {
	return &Stream{rng: mrand.New(mrand.NewPCG(s.rng.Uint64(), idx))}
}

// Substream returns the deterministic stream for trial idx under the given
// base seed. Distinct (seed, idx) pairs give independent generators; ensemble
// workers use this so results do not depend on scheduling.
func Substream(seed, idx uint64) *Stream {
	return &Stream{rng: mrand.New(mrand.NewPCG(seed, idx))}
}

// EntropySeed draws a base seed from the OS entropy source.
func EntropySeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("randx: entropy source unavailable: %v", err))
	}
	return binary.LittleEndian.Uint64(b[:])
}

var (
	defaultMu     sync.Mutex
	defaultStream = New()
)

// Default runs f against the shared ambient stream.
func Default(f func(*Stream)) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	f(defaultStream)
}

// Reseed resets the ambient stream. Only the standalone sampler helpers are
// affected; process simulations take their streams explicitly.
func Reseed(seed uint64) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultStream = NewSeeded(seed)
}

// Uniform draws from [low, high), or [low, high] when end is true.
func (s *Stream) Uniform(low, high float64, end bool) (float64, error) {
	if err := checkRange(low, high, end); err != nil {
		return 0, err
	}
	var u float64
	if end {
		// Float64 never returns 1; close the interval with a lattice draw.
		u = float64(s.rng.Uint64N(1<<53)) / float64(1<<53-1)
	} else {
		u = s.rng.Float64()
	}
	return low + u*(high-low), nil
}

// UniformInt draws an integer from [low, high), or [low, high] when end is true.
func (s *Stream) UniformInt(low, high int64, end bool) (int64, error) {
	if low > high || (low == high && !end) {
		return 0, fmt.Errorf("%w: need low < high, got [%d, %d)", ErrInvalidParam, low, high)
	}
	span := high - low
	if end {
		span++
	}
	return low + s.rng.Int64N(span), nil
}

// Normal draws from N(mu, sigma^2), sigma > 0.
func (s *Stream) Normal(mu, sigma float64) (float64, error) {
	if sigma <= 0 || !isFinite(sigma) || !isFinite(mu) {
		return 0, fmt.Errorf("%w: sigma must be positive, got %g", ErrInvalidParam, sigma)
	}
	return mu + sigma*s.rng.NormFloat64(), nil
}

// StdNormal draws from N(0, 1).
func (s *Stream) StdNormal() float64 { return s.rng.NormFloat64() }

// Exp draws from an exponential distribution with mean scale, scale > 0.
func (s *Stream) Exp(scale float64) (float64, error) {
	if scale <= 0 || !isFinite(scale) {
		return 0, fmt.Errorf("%w: scale must be positive, got %g", ErrInvalidParam, scale)
	}
	return scale * s.rng.ExpFloat64(), nil
}

// StdExp draws from Exp(1).
func (s *Stream) StdExp() float64 { return s.rng.ExpFloat64() }

// Bool draws true with probability p, 0 <= p <= 1.
func (s *Stream) Bool(p float64) (bool, error) {
	if p < 0 || p > 1 || math.IsNaN(p) {
		return false, fmt.Errorf("%w: p must be in [0, 1], got %g", ErrInvalidParam, p)
	}
	return s.rng.Float64() < p, nil
}

// Poisson draws a count from Poisson(lambda), lambda > 0. Knuth's product
// method, applied in chunks so large rates stay exact: a Poisson variate
// with rate a+b is the sum of independent Poisson(a) and Poisson(b) draws.
func (s *Stream) Poisson(lambda float64) (uint64, error) {
	if lambda <= 0 || !isFinite(lambda) {
		return 0, fmt.Errorf("%w: lambda must be positive, got %g", ErrInvalidParam, lambda)
	}
	const chunk = 30.0
	var n uint64
	for lambda > chunk {
		n += s.poissonKnuth(chunk)
		lambda -= chunk
	}
	return n + s.poissonKnuth(lambda), nil
}

func (s *Stream) poissonKnuth(lambda float64) uint64 {
	limit := math.Exp(-lambda)
	var k uint64
	p := 1.0
	for {
		p *= s.rng.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}

// Gamma draws from Gamma(shape, rate) with mean shape/rate. Marsaglia-Tsang
// squeeze method, boosted for shape < 1.
func (s *Stream) Gamma(shape, rate float64) (float64, error) {
	if shape <= 0 || rate <= 0 || !isFinite(shape) || !isFinite(rate) {
		return 0, fmt.Errorf("%w: shape and rate must be positive, got shape=%g rate=%g",
			ErrInvalidParam, shape, rate)
	}
	return s.gamma(shape) / rate, nil
}

func (s *Stream) gamma(shape float64) float64 {
	if shape < 1 {
		// Gamma(a) = Gamma(a+1) * U^(1/a)
		return s.gamma(shape+1) * math.Pow(s.rng.Float64(), 1/shape)
	}
	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)
	for {
		x := s.rng.NormFloat64()
		v := 1.0 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := s.rng.Float64()
		if u < 1.0-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v
		}
	}
}

// Uniforms draws n values from [low, high) (or the closed interval).
func (s *Stream) Uniforms(n int, low, high float64, end bool) ([]float64, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	if err := checkRange(low, high, end); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i], _ = s.Uniform(low, high, end)
	}
	return out, nil
}

// Normals draws n values from N(mu, sigma^2).
func (s *Stream) Normals(n int, mu, sigma float64) ([]float64, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	if sigma <= 0 || !isFinite(sigma) {
		return nil, fmt.Errorf("%w: sigma must be positive, got %g", ErrInvalidParam, sigma)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = mu + sigma*s.rng.NormFloat64()
	}
	return out, nil
}

// Exps draws n exponential values with mean scale.
func (s *Stream) Exps(n int, scale float64) ([]float64, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	if scale <= 0 || !isFinite(scale) {
		return nil, fmt.Errorf("%w: scale must be positive, got %g", ErrInvalidParam, scale)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = scale * s.rng.ExpFloat64()
	}
	return out, nil
}

// Poissons draws n counts from Poisson(lambda).
func (s *Stream) Poissons(n int, lambda float64) ([]uint64, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	if lambda <= 0 || !isFinite(lambda) {
		return nil, fmt.Errorf("%w: lambda must be positive, got %g", ErrInvalidParam, lambda)
	}
	out := make([]uint64, n)
	for i := range out {
		out[i], _ = s.Poisson(lambda)
	}
	return out, nil
}

// Bools draws n Bernoulli(p) values.
func (s *Stream) Bools(n int, p float64) ([]bool, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	if p < 0 || p > 1 || math.IsNaN(p) {
		return nil, fmt.Errorf("%w: p must be in [0, 1], got %g", ErrInvalidParam, p)
	}
	out := make([]bool, n)
	for i := range out {
		out[i] = s.rng.Float64() < p
	}
	return out, nil
}

func checkCount(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: sample count must be positive, got %d", ErrInvalidParam, n)
	}
	return nil
}

func checkRange(low, high float64, end bool) error {
	if math.IsNaN(low) || math.IsNaN(high) {
		return fmt.Errorf("%w: uniform bounds must be numbers", ErrInvalidParam)
	}
	if low > high || (low == high && !end) {
		return fmt.Errorf("%w: need low < high, got [%g, %g)", ErrInvalidParam, low, high)
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
