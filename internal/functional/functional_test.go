package functional

import (
	"math"
	"testing"

	"github.com/san-kum/diffusim/internal/process"
	"github.com/san-kum/diffusim/internal/randx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// poisonedProcess fails the test if any estimator touches the random source
// when a short-circuit applies.
type poisonedProcess struct {
	t *testing.T
}

func (p *poisonedProcess) Start() float64 { return 0 }

func (p *poisonedProcess) Sample(src *randx.Stream, duration, stepSize float64) (process.Path, error) {
	p.t.Fatal("simulation invoked for a short-circuited moment order")
	return process.Path{}, nil
}

func quick() Config {
	return Config{Particles: 2000, StepSize: 0.01, Seed: 17}
}

func TestMomentShortCircuits(t *testing.T) {
	p := &poisonedProcess{t: t}
	cfg := quick()

	raw, err := RawMoment(p, 1.0, 0, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1.0, raw)

	c0, err := CentralMoment(p, 1.0, 0, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1.0, c0)

	c1, err := CentralMoment(p, 1.0, 1, cfg)
	require.NoError(t, err)
	assert.Equal(t, 0.0, c1)
}

func TestFptMomentShortCircuits(t *testing.T) {
	p := &poisonedProcess{t: t}
	fpt, err := NewFirstPassageTime(p, Domain{A: -1, B: 1})
	require.NoError(t, err)

	v, ok, err := fpt.RawMoment(0, quick())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)

	v, ok, err = fpt.CentralMoment(1, quick())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)
}

func TestOccupationMomentShortCircuits(t *testing.T) {
	p := &poisonedProcess{t: t}
	occ, err := NewOccupationTimeStat(p, Domain{A: -1, B: 1}, 1.0)
	require.NoError(t, err)

	v, err := occ.RawMoment(0, quick())
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	v, err = occ.CentralMoment(1, quick())
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestBmSecondCentralMoment(t *testing.T) {
	const (
		d        = 0.5
		duration = 2.0
	)
	bm, err := process.NewBm(0, d)
	require.NoError(t, err)

	cfg := Config{Particles: 20000, StepSize: 0.01, Seed: 5}
	got, err := CentralMoment(bm, duration, 2, cfg)
	require.NoError(t, err)

	want := 2 * d * duration
	assert.InEpsilon(t, want, got, 0.1, "E[(X_T - mean)^2] should be ~2DT")
}

func TestOUStationaryVariance(t *testing.T) {
	const (
		theta = 2.0
		sigma = 0.8
	)
	ou, err := process.NewOU(theta, 0, sigma, 0)
	require.NoError(t, err)

	cfg := Config{Particles: 20000, StepSize: 0.01, Seed: 9}
	got, err := CentralMoment(ou, 10.0, 2, cfg)
	require.NoError(t, err)

	want := sigma * sigma / (2 * theta)
	assert.InEpsilon(t, want, got, 0.1, "stationary variance should be sigma^2/(2 theta)")
}

func TestMSDBrownian(t *testing.T) {
	bm, err := process.NewBm(3, 0.5)
	require.NoError(t, err)
	cfg := Config{Particles: 20000, StepSize: 0.01, Seed: 21}
	got, err := MSD(bm, 1.0, cfg)
	require.NoError(t, err)
	assert.InEpsilon(t, 1.0, got, 0.1, "MSD of D=0.5 Brownian motion over T=1 is 2DT=1")
}

func TestFPTStartOutsideDomain(t *testing.T) {
	procs := []process.Process{
		mustBm(t, 5, 0.5),
		mustOU(t, 5),
	}
	for _, p := range procs {
		v, ok, err := FPT(p, Domain{A: -1, B: 1}, Config{Seed: 1})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 0.0, v, "start outside (a,b) must return exactly 0")
	}
}

func mustBm(t *testing.T, start, d float64) *process.Bm {
	t.Helper()
	b, err := process.NewBm(start, d)
	require.NoError(t, err)
	return b
}

func mustOU(t *testing.T, start float64) *process.OU {
	t.Helper()
	o, err := process.NewOU(1, 0, 1, start)
	require.NoError(t, err)
	return o
}

func TestFPTTimeoutIsAbsent(t *testing.T) {
	// Zero drift, zero diffusion: the path never leaves the start point.
	frozen, err := process.NewLangevin(
		func(x, tt float64) float64 { return 0 },
		func(x, tt float64) float64 { return 0 },
		0,
	)
	require.NoError(t, err)

	_, ok, err := FPT(frozen, Domain{A: -1, B: 1}, Config{MaxDuration: 2, Seed: 1})
	require.NoError(t, err)
	assert.False(t, ok, "no crossing within max duration must report absence")

	fpt, err := NewFirstPassageTime(frozen, Domain{A: -1, B: 1})
	require.NoError(t, err)
	_, ok, err = fpt.RawMoment(1, Config{Particles: 8, MaxDuration: 2, Seed: 1})
	require.NoError(t, err)
	assert.False(t, ok, "any timed-out trial makes the FPT moment unknown")
}

func TestFPTMeanBrownianEscape(t *testing.T) {
	// Symmetric escape from (-L, L): E[T] = L^2 / (2D).
	const (
		d = 0.5
		l = 0.5
	)
	bm := mustBm(t, 0, d)
	fpt, err := NewFirstPassageTime(bm, Domain{A: -l, B: l})
	require.NoError(t, err)

	got, ok, err := fpt.RawMoment(1, Config{Particles: 4000, StepSize: 0.001, MaxDuration: 10, Seed: 3})
	require.NoError(t, err)
	require.True(t, ok)
	assert.InEpsilon(t, l*l/(2*d), got, 0.15)
}

func TestOccupationWideDomain(t *testing.T) {
	bm := mustBm(t, 0, 0.5)
	const duration = 3.0
	got, err := OccupationTime(bm, Domain{A: -1e9, B: 1e9}, duration, Config{Seed: 7})
	require.NoError(t, err)
	// The final grid interval is clipped at the horizon, so a wide domain
	// recovers the duration exactly.
	assert.InDelta(t, duration, got, 1e-9)
}

func TestOccupationMomentBounded(t *testing.T) {
	bm := mustBm(t, 0, 0.5)
	occ, err := NewOccupationTimeStat(bm, Domain{A: 0, B: 1e9}, 1.0)
	require.NoError(t, err)
	got, err := occ.RawMoment(1, Config{Particles: 4000, StepSize: 0.01, Seed: 13})
	require.NoError(t, err)
	// A symmetric walk from 0 spends about half its time above the origin.
	assert.InDelta(t, 0.5, got, 0.06)
}

func TestTamsdBrownian(t *testing.T) {
	const (
		d     = 0.5
		delta = 0.1
	)
	bm := mustBm(t, 0, d)
	got, err := EATAMSD(bm, 10.0, delta, Config{Particles: 500, StepSize: 0.01, QuadOrder: 16, Seed: 11})
	require.NoError(t, err)
	assert.InEpsilon(t, 2*d*delta, got, 0.15, "Brownian TAMSD should be ~2 D delta")
}

func TestTamsdRejectsBadWindow(t *testing.T) {
	bm := mustBm(t, 0, 0.5)
	_, err := TAMSD(bm, 1.0, 1.0, Config{Seed: 1})
	assert.Error(t, err)
	_, err = TAMSD(bm, 1.0, 0, Config{Seed: 1})
	assert.Error(t, err)
}

func TestEstimatorValidation(t *testing.T) {
	bm := mustBm(t, 0, 0.5)
	tests := []struct {
		name string
		call func() error
	}{
		{"negative order", func() error { _, err := RawMoment(bm, 1, -1, quick()); return err }},
		{"zero duration", func() error { _, err := RawMoment(bm, 0, 2, quick()); return err }},
		{"negative particles", func() error {
			_, err := RawMoment(bm, 1, 2, Config{Particles: -1})
			return err
		}},
		{"bad domain", func() error { _, _, err := FPT(bm, Domain{A: 1, B: 1}, quick()); return err }},
		{"inverted domain", func() error { _, _, err := FPT(bm, Domain{A: 2, B: -2}, quick()); return err }},
		{"occupation zero duration", func() error {
			_, err := OccupationTime(bm, Domain{A: -1, B: 1}, 0, quick())
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.call())
		})
	}
}

func TestSeededEstimatesReproducible(t *testing.T) {
	bm := mustBm(t, 0, 0.5)
	cfg := Config{Particles: 500, StepSize: 0.01, Seed: 99, Workers: 4}
	a, err := RawMoment(bm, 1.0, 2, cfg)
	require.NoError(t, err)
	b, err := RawMoment(bm, 1.0, 2, cfg)
	require.NoError(t, err)
	assert.Equal(t, a, b, "fixed seed must give identical estimates regardless of scheduling")
}

func TestPoissonCountFPT(t *testing.T) {
	// Time to reach count 5 at rate lambda has mean 5/lambda.
	const lambda = 2.0
	pp, err := process.NewPoissonProcess(lambda)
	require.NoError(t, err)

	fpt, err := NewFirstPassageTime(pp, Domain{A: -1, B: 5})
	require.NoError(t, err)
	got, ok, err := fpt.RawMoment(1, Config{Particles: 4000, MaxDuration: 100, Seed: 23})
	require.NoError(t, err)
	require.True(t, ok)
	assert.InEpsilon(t, 5/lambda, got, 0.1)
}

func TestFPTIgnoresEventsBeyondHorizon(t *testing.T) {
	// A slow counting process almost surely fires its first event long
	// after the ceiling; the grid still carries that event, but a crossing
	// there is not a passage within MaxDuration.
	pp, err := process.NewPoissonProcess(0.01)
	require.NoError(t, err)

	cfg := Config{Particles: 16, MaxDuration: 1, Seed: 42}
	_, ok, err := FPT(pp, Domain{A: -1, B: 1}, cfg)
	require.NoError(t, err)
	assert.False(t, ok, "crossing past MaxDuration must be reported as absent")

	fpt, err := NewFirstPassageTime(pp, Domain{A: -1, B: 1})
	require.NoError(t, err)
	_, ok, err = fpt.RawMoment(1, cfg)
	require.NoError(t, err)
	assert.False(t, ok, "moments over a timed-out ensemble must be absent")
}

func TestOccupationClippedAtHorizon(t *testing.T) {
	// The first holding interval of a slow counter extends far past the
	// horizon; only its part inside [0, duration] may be credited.
	pp, err := process.NewPoissonProcess(0.01)
	require.NoError(t, err)

	const duration = 1.0
	got, err := OccupationTime(pp, Domain{A: 0.5, B: 10}, duration, Config{Seed: 42})
	require.NoError(t, err)
	assert.LessOrEqual(t, got, duration, "occupation time can never exceed the horizon")

	wide, err := OccupationTime(pp, Domain{A: -1, B: 1e9}, duration, Config{Seed: 42})
	require.NoError(t, err)
	assert.InDelta(t, duration, wide, 1e-9)
}

func TestFracMomentShortCircuits(t *testing.T) {
	p := &poisonedProcess{t: t}
	cfg := quick()

	raw, err := FracRawMoment(p, 1.0, 0, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1.0, raw)

	c0, err := FracCentralMoment(p, 1.0, 0, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1.0, c0)

	fpt, err := NewFirstPassageTime(p, Domain{A: -1, B: 1})
	require.NoError(t, err)
	v, ok, err := fpt.FracRawMoment(0, cfg)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)

	occ, err := NewOccupationTimeStat(p, Domain{A: -1, B: 1}, 1.0)
	require.NoError(t, err)
	o0, err := occ.FracCentralMoment(0, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1.0, o0)
}

func TestFracMomentValidation(t *testing.T) {
	bm := mustBm(t, 0, 0.5)
	for _, order := range []float64{-0.5, math.NaN(), math.Inf(1)} {
		_, err := FracRawMoment(bm, 1.0, order, quick())
		assert.Error(t, err, "order %v", order)
		_, err = FracCentralMoment(bm, 1.0, order, quick())
		assert.Error(t, err, "order %v", order)
	}
}

func TestFracRawMomentBrownian(t *testing.T) {
	// X(1) ~ N(0, 1) for D = 0.5, so E|X|^p = 2^(p/2) Gamma((p+1)/2) / sqrt(pi).
	const p = 1.5
	bm := mustBm(t, 0, 0.5)
	got, err := FracRawMoment(bm, 1.0, p, Config{Particles: 4000, StepSize: 0.01, Seed: 19})
	require.NoError(t, err)

	want := math.Pow(2, p/2) * math.Gamma((p+1)/2) / math.Sqrt(math.Pi)
	assert.InEpsilon(t, want, got, 0.1)
}

func TestFracCentralMatchesIntegerAtTwo(t *testing.T) {
	// |x - mean|^2 is (x - mean)^2, so the fractional estimator at order 2
	// must agree with the integer one on the same seeded ensemble.
	bm := mustBm(t, 0, 0.5)
	cfg := Config{Particles: 1000, StepSize: 0.01, Seed: 29}

	frac, err := FracCentralMoment(bm, 1.0, 2.0, cfg)
	require.NoError(t, err)
	integer, err := CentralMoment(bm, 1.0, 2, cfg)
	require.NoError(t, err)
	assert.InDelta(t, integer, frac, 1e-9)
}

func TestFracFPTFirstOrderMatchesRaw(t *testing.T) {
	// Passage times are non-negative, so |T|^1 is T and the fractional
	// first moment reproduces the integer mean on the same seed.
	pp, err := process.NewPoissonProcess(2.0)
	require.NoError(t, err)
	fpt, err := NewFirstPassageTime(pp, Domain{A: -1, B: 5})
	require.NoError(t, err)

	cfg := Config{Particles: 1000, MaxDuration: 100, Seed: 23}
	frac, ok, err := fpt.FracRawMoment(1.0, cfg)
	require.NoError(t, err)
	require.True(t, ok)
	integer, ok, err := fpt.RawMoment(1, cfg)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, integer, frac, 1e-9)
}

func TestFracOccupationHalfOrder(t *testing.T) {
	bm := mustBm(t, 0, 0.5)
	occ, err := NewOccupationTimeStat(bm, Domain{A: -1e9, B: 1e9}, 4.0)
	require.NoError(t, err)

	// The wide-domain occupation time is deterministic (the horizon), so
	// E[O^0.5] is its square root.
	got, err := occ.FracRawMoment(0.5, Config{Particles: 64, StepSize: 0.01, Seed: 37})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-9)
}

func TestHeavyTailedMomentPropagates(t *testing.T) {
	// Cauchy moments are genuinely undefined; the estimate must come back
	// as computed, never silently replaced.
	c, err := process.NewCauchy(0)
	require.NoError(t, err)
	got, err := RawMoment(c, 1.0, 2, Config{Particles: 200, StepSize: 0.01, Seed: 31})
	require.NoError(t, err)
	assert.True(t, got > 0 || math.IsInf(got, 1), "second moment of Cauchy terminal must be large or infinite, got %v", got)
}
