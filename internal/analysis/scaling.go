package analysis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/diffusim/internal/process"
)

var ErrNotEnoughData = errors.New("analysis: not enough data")

// MSDCurve computes the ensemble mean squared displacement at every grid
// point. All paths must share one time grid.
func MSDCurve(paths []process.Path) ([]float64, []float64, error) {
	if len(paths) == 0 {
		return nil, nil, ErrNotEnoughData
	}
	grid := paths[0].Times
	for _, p := range paths {
		if len(p.Times) != len(grid) {
			return nil, nil, errors.New("analysis: path grids differ")
		}
	}

	msd := make([]float64, len(grid))
	for _, p := range paths {
		x0 := p.Values[0]
		for i, v := range p.Values {
			d := v - x0
			msd[i] += d * d
		}
	}
	for i := range msd {
		msd[i] /= float64(len(paths))
	}
	return grid, msd, nil
}

// DiffusionExponent fits MSD(t) = C * t^alpha by linear regression in log-log
// coordinates and reports alpha with the prefactor C. The t = 0 point and any
// non-positive MSD values are excluded from the fit.
func DiffusionExponent(times, msd []float64) (alpha, coeff float64, err error) {
	var logT, logM []float64
	for i := range times {
		if times[i] > 0 && msd[i] > 0 {
			logT = append(logT, math.Log(times[i]))
			logM = append(logM, math.Log(msd[i]))
		}
	}
	if len(logT) < 2 {
		return 0, 0, ErrNotEnoughData
	}

	intercept, slope := stat.LinearRegression(logT, logM, nil, false)
	return slope, math.Exp(intercept), nil
}

// HurstEstimate infers the Hurst exponent from the MSD scaling of an
// ensemble, H = alpha / 2.
func HurstEstimate(paths []process.Path) (float64, error) {
	times, msd, err := MSDCurve(paths)
	if err != nil {
		return 0, err
	}
	alpha, _, err := DiffusionExponent(times, msd)
	if err != nil {
		return 0, err
	}
	return alpha / 2, nil
}

// IncrementStats summarizes the step distribution of one trajectory.
type IncrementStats struct {
	Mean     float64
	StdDev   float64
	Skewness float64
	Kurtosis float64
}

func SummarizeIncrements(values []float64) (IncrementStats, error) {
	inc := Increments(values)
	if len(inc) < 2 {
		return IncrementStats{}, ErrNotEnoughData
	}
	mean, std := stat.MeanStdDev(inc, nil)
	return IncrementStats{
		Mean:     mean,
		StdDev:   std,
		Skewness: stat.Skew(inc, nil),
		Kurtosis: stat.ExKurtosis(inc, nil),
	}, nil
}
