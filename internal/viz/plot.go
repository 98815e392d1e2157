package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/diffusim/internal/process"
)

// RenderPath plots a single trajectory as a braille canvas with a value
// range caption.
func RenderPath(p process.Path, width, height int) string {
	c := NewCanvas(width, height)
	c.DrawSeries(p.Values, 0, 0)
	min, max := seriesRange(p.Values)
	var b strings.Builder
	b.WriteString(c.String())
	fmt.Fprintf(&b, "t: [0, %.3g]  x: [%.3g, %.3g]\n", p.Times[len(p.Times)-1], min, max)
	return b.String()
}

// RenderPaths overlays up to a handful of trajectories as a line graph.
// Paths are downsampled to the requested width so long grids stay readable.
func RenderPaths(paths []process.Path, width, height int) string {
	series := make([][]float64, len(paths))
	for i, p := range paths {
		series[i] = downsample(p.Values, width)
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(3),
	)
}

// RenderSeries plots a derived curve such as an ensemble moment over time.
func RenderSeries(values []float64, caption string, width, height int) string {
	return asciigraph.Plot(downsample(values, width),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.Precision(3),
	)
}

// RenderHistogram draws a bar histogram of the sample values, clipping to
// the central range when heavy tails would flatten the picture.
func RenderHistogram(values []float64, bins, width int) string {
	if len(values) == 0 || bins < 1 {
		return ""
	}

	lo, hi := clipRange(values)
	if lo == hi {
		return fmt.Sprintf("all %d samples at %.4g\n", len(values), lo)
	}

	counts := make([]int, bins)
	clipped := 0
	for _, v := range values {
		if v < lo || v > hi {
			clipped++
			continue
		}
		idx := int((v - lo) / (hi - lo) * float64(bins))
		if idx == bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	maxCount := 0
	for _, n := range counts {
		if n > maxCount {
			maxCount = n
		}
	}

	var b strings.Builder
	binWidth := (hi - lo) / float64(bins)
	for i, n := range counts {
		barLen := 0
		if maxCount > 0 {
			barLen = n * width / maxCount
		}
		fmt.Fprintf(&b, "%9.3g | %s %d\n", lo+(float64(i)+0.5)*binWidth, strings.Repeat("#", barLen), n)
	}
	if clipped > 0 {
		fmt.Fprintf(&b, "(%d samples outside [%.3g, %.3g])\n", clipped, lo, hi)
	}
	return b.String()
}

// downsample keeps every k-th point so the series fits in width columns.
func downsample(values []float64, width int) []float64 {
	if width < 2 || len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	for i := range out {
		out[i] = values[i*(len(values)-1)/(width-1)]
	}
	return out
}

// clipRange returns a display range that ignores the extreme 1% of samples
// on each side. Stable-law tails otherwise squash everything into one bin.
func clipRange(values []float64) (lo, hi float64) {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return 0, 0
	}
	sort.Float64s(sorted)
	k := len(sorted) / 100
	return sorted[k], sorted[len(sorted)-1-k]
}
