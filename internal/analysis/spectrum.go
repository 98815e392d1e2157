package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude spectrum of the series up to the
// Nyquist frequency. The input is zero padded to the next power of two.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)

	spec := fft.FFTReal(padded)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// Increments returns the first differences of a sampled trajectory. For a
// fractional process these are the stationary noise whose spectrum and
// moments carry the memory structure.
func Increments(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	inc := make([]float64, len(values)-1)
	for i := range inc {
		inc[i] = values[i+1] - values[i]
	}
	return inc
}
