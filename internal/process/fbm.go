package process

import (
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/diffusim/internal/randx"
)

// Fbm is fractional Brownian motion with Hurst exponent H in (0, 1).
// Increments form fractional Gaussian noise with autocovariance
// 0.5 (|k+1|^2H - 2|k|^2H + |k-1|^2H), generated by Davies-Harte circulant
// embedding with a Hosking (Durbin-Levinson) fallback when the embedding
// eigenvalues go negative.
type Fbm struct {
	hurst float64
	start float64
}

func NewFbm(start, hurst float64) (*Fbm, error) {
	if !(hurst > 0 && hurst < 1) {
		return nil, fmt.Errorf("%w: hurst exponent must be in (0, 1), got %g", ErrInvalidParam, hurst)
	}
	if err := checkFinite("start position", start); err != nil {
		return nil, err
	}
	return &Fbm{hurst: hurst, start: start}, nil
}

func (f *Fbm) Start() float64 { return f.start }

// Hurst returns the Hurst exponent.
func (f *Fbm) Hurst() float64 { return f.hurst }

func (f *Fbm) Sample(src *randx.Stream, duration, stepSize float64) (Path, error) {
	times, err := grid(duration, stepSize)
	if err != nil {
		return Path{}, err
	}
	n := len(times) - 1
	fgn := f.daviesHarte(src, n)
	if fgn == nil {
		fgn = f.hosking(src, n)
	}
	// Unit-step noise rescales to the grid by step^H self-similarity.
	scale := math.Pow(stepSize, f.hurst)
	values := make([]float64, n+1)
	values[0] = f.start
	for i := 1; i <= n; i++ {
		values[i] = values[i-1] + scale*fgn[i-1]
	}
	return Path{Times: times, Values: values}, nil
}

// fgnCov is the unit-step fractional Gaussian noise autocovariance at lag k.
func (f *Fbm) fgnCov(k int) float64 {
	h2 := 2 * f.hurst
	ka := float64(k)
	return 0.5 * (math.Pow(math.Abs(ka+1), h2) - 2*math.Pow(math.Abs(ka), h2) + math.Pow(math.Abs(ka-1), h2))
}

// daviesHarte draws n unit-step FGN samples, or nil if the circulant
// embedding is not nonnegative definite for this (H, n).
func (f *Fbm) daviesHarte(src *randx.Stream, n int) []float64 {
	if n == 1 {
		return []float64{src.StdNormal()}
	}
	m := 2 * n
	row := make([]float64, m)
	for k := 0; k <= n; k++ {
		row[k] = f.fgnCov(k)
	}
	for k := 1; k < n; k++ {
		row[m-k] = row[k]
	}
	eig := fft.FFTReal(row)
	lambda := make([]float64, m)
	for i, e := range eig {
		lambda[i] = real(e)
		if lambda[i] < 0 {
			if lambda[i] > -1e-10 {
				lambda[i] = 0
				continue
			}
			return nil
		}
	}
	w := make([]complex128, m)
	w[0] = complex(math.Sqrt(lambda[0])*src.StdNormal(), 0)
	w[n] = complex(math.Sqrt(lambda[n])*src.StdNormal(), 0)
	for k := 1; k < n; k++ {
		a := src.StdNormal()
		b := src.StdNormal()
		r := math.Sqrt(lambda[k] / 2)
		w[k] = complex(r*a, r*b)
		w[m-k] = complex(r*a, -r*b)
	}
	out := fft.FFT(w)
	norm := 1 / math.Sqrt(float64(m))
	fgn := make([]float64, n)
	for i := range fgn {
		fgn[i] = real(out[i]) * norm
	}
	return fgn
}

// hosking draws n unit-step FGN samples by the Durbin-Levinson recursion.
// O(n^2), used only when circulant embedding fails.
func (f *Fbm) hosking(src *randx.Stream, n int) []float64 {
	g := make([]float64, n)
	for k := range g {
		g[k] = f.fgnCov(k)
	}
	x := make([]float64, n)
	v := g[0]
	x[0] = math.Sqrt(v) * src.StdNormal()
	var phi []float64
	for i := 1; i < n; i++ {
		a := g[i]
		for j, p := range phi {
			a -= p * g[i-1-j]
		}
		a /= v
		next := make([]float64, i)
		for j := 0; j < i-1; j++ {
			next[j] = phi[j] - a*phi[i-2-j]
		}
		next[i-1] = a
		phi = next
		v *= 1 - a*a
		mean := 0.0
		for j, p := range phi {
			mean += p * x[i-1-j]
		}
		x[i] = mean + math.Sqrt(v)*src.StdNormal()
	}
	return x
}
