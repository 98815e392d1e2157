package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/diffusim/internal/process"
)

func TestCanvasSetBounds(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(100, 100)
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatal("out-of-range Set modified the canvas")
			}
		}
	}

	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("in-range Set left the cell empty")
	}
}

func TestCanvasDrawSeriesFlat(t *testing.T) {
	c := NewCanvas(10, 4)
	c.DrawSeries([]float64{1, 1, 1, 1}, 0, 0)
	if !strings.ContainsFunc(c.String(), func(r rune) bool { return r > 0x2800 && r <= 0x28FF }) {
		t.Error("flat series drew nothing")
	}
}

func TestRenderPath(t *testing.T) {
	p := process.Path{
		Times:  []float64{0, 0.5, 1.0},
		Values: []float64{0, 0.3, -0.2},
	}
	out := RenderPath(p, 20, 6)
	if !strings.Contains(out, "t: [0, 1]") {
		t.Errorf("missing time caption in %q", out)
	}
}

func TestRenderHistogram(t *testing.T) {
	values := []float64{-1, -0.5, 0, 0, 0.1, 0.2, 0.5, 1}
	out := RenderHistogram(values, 4, 20)
	if !strings.Contains(out, "#") {
		t.Error("expected histogram bars")
	}

	if out := RenderHistogram(nil, 4, 20); out != "" {
		t.Error("expected empty output for no samples")
	}
}

func TestDownsample(t *testing.T) {
	in := make([]float64, 1000)
	for i := range in {
		in[i] = float64(i)
	}
	out := downsample(in, 50)
	if len(out) != 50 {
		t.Fatalf("expected 50 points, got %d", len(out))
	}
	if out[0] != 0 || out[49] != 999 {
		t.Errorf("endpoints not preserved: %f, %f", out[0], out[49])
	}

	short := []float64{1, 2, 3}
	if got := downsample(short, 50); len(got) != 3 {
		t.Errorf("short series should pass through, got %d points", len(got))
	}
}
