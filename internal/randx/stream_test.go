package randx

import (
	"errors"
	"math"
	"testing"
)

func TestUniformBounds(t *testing.T) {
	s := NewSeeded(7)
	const n = 10000
	low, high := -2.5, 4.0

	open, err := s.Uniforms(n, low, high, false)
	if err != nil {
		t.Fatalf("uniforms failed: %v", err)
	}
	sum := 0.0
	for _, v := range open {
		if v < low || v >= high {
			t.Fatalf("sample %v outside [%v, %v)", v, low, high)
		}
		sum += v
	}
	mean := sum / n
	want := (low + high) / 2
	if math.Abs(mean-want) > 0.1 {
		t.Errorf("sample mean %.4f, want ~%.4f", mean, want)
	}

	closed, err := s.Uniforms(n, low, high, true)
	if err != nil {
		t.Fatalf("closed uniforms failed: %v", err)
	}
	for _, v := range closed {
		if v < low || v > high {
			t.Fatalf("sample %v outside [%v, %v]", v, low, high)
		}
	}
}

func TestUniformClosedSingleAdvance(t *testing.T) {
	// A closed-interval draw must consume exactly one generator word, the
	// same as the half-open draw, so the two variants stay in lockstep.
	a := NewSeeded(5)
	b := NewSeeded(5)

	if _, err := a.Uniform(0, 1, true); err != nil {
		t.Fatalf("uniform failed: %v", err)
	}
	b.rng.Uint64N(1 << 53)

	if got, want := a.rng.Uint64(), b.rng.Uint64(); got != want {
		t.Errorf("closed-interval draw advanced the stream unevenly: next word %d, want %d", got, want)
	}
}

func TestUniformIntRange(t *testing.T) {
	s := NewSeeded(11)
	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		v, err := s.UniformInt(3, 6, true)
		if err != nil {
			t.Fatalf("uniform int failed: %v", err)
		}
		if v < 3 || v > 6 {
			t.Fatalf("draw %d outside [3, 6]", v)
		}
		seen[v] = true
	}
	if !seen[6] {
		t.Error("inclusive upper bound never drawn in 1000 tries")
	}
	for i := 0; i < 1000; i++ {
		v, _ := s.UniformInt(3, 6, false)
		if v == 6 {
			t.Fatal("exclusive upper bound drawn")
		}
	}
}

func TestNormalMoments(t *testing.T) {
	s := NewSeeded(3)
	const n = 100000
	mu, sigma := 1.5, 2.0
	xs, err := s.Normals(n, mu, sigma)
	if err != nil {
		t.Fatalf("normals failed: %v", err)
	}
	var sum, sq float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / n
	for _, x := range xs {
		sq += (x - mean) * (x - mean)
	}
	variance := sq / n
	if math.Abs(mean-mu) > 0.05 {
		t.Errorf("mean %.4f, want ~%.4f", mean, mu)
	}
	if math.Abs(variance-sigma*sigma) > 0.2 {
		t.Errorf("variance %.4f, want ~%.4f", variance, sigma*sigma)
	}
}

func TestExpMean(t *testing.T) {
	for _, scale := range []float64{0.5, 1.0, 2.0} {
		s := NewSeeded(17)
		const n = 100000
		xs, err := s.Exps(n, scale)
		if err != nil {
			t.Fatalf("exps failed: %v", err)
		}
		sum := 0.0
		for _, x := range xs {
			if x < 0 {
				t.Fatal("negative exponential draw")
			}
			sum += x
		}
		if math.Abs(sum/n-scale) > 0.1*scale+0.02 {
			t.Errorf("scale %v: mean %.4f", scale, sum/n)
		}
	}
}

func TestPoissonMean(t *testing.T) {
	for _, lambda := range []float64{0.5, 4.0, 100.0} {
		s := NewSeeded(23)
		const n = 20000
		counts, err := s.Poissons(n, lambda)
		if err != nil {
			t.Fatalf("poissons failed: %v", err)
		}
		sum := 0.0
		for _, c := range counts {
			sum += float64(c)
		}
		mean := sum / n
		tol := 4 * math.Sqrt(lambda/n)
		if math.Abs(mean-lambda) > tol {
			t.Errorf("lambda %v: mean %.4f outside tolerance %.4f", lambda, mean, tol)
		}
	}
}

func TestGammaMean(t *testing.T) {
	cases := []struct{ shape, rate float64 }{
		{0.5, 1.0}, {2.0, 3.0}, {9.0, 0.5},
	}
	for _, tc := range cases {
		s := NewSeeded(29)
		const n = 50000
		sum := 0.0
		for i := 0; i < n; i++ {
			g, err := s.Gamma(tc.shape, tc.rate)
			if err != nil {
				t.Fatalf("gamma failed: %v", err)
			}
			if g < 0 {
				t.Fatal("negative gamma draw")
			}
			sum += g
		}
		want := tc.shape / tc.rate
		if math.Abs(sum/n-want) > 0.05*want+0.02 {
			t.Errorf("shape=%v rate=%v: mean %.4f, want ~%.4f", tc.shape, tc.rate, sum/n, want)
		}
	}
}

func TestBoolProbability(t *testing.T) {
	s := NewSeeded(31)
	const n = 50000
	hits := 0
	for i := 0; i < n; i++ {
		b, err := s.Bool(0.3)
		if err != nil {
			t.Fatalf("bool failed: %v", err)
		}
		if b {
			hits++
		}
	}
	p := float64(hits) / n
	if math.Abs(p-0.3) > 0.02 {
		t.Errorf("hit rate %.4f, want ~0.3", p)
	}
}

func TestInvalidParams(t *testing.T) {
	s := NewSeeded(1)
	tests := []struct {
		name string
		call func() error
	}{
		{"uniform low>=high", func() error { _, err := s.Uniform(2, 1, false); return err }},
		{"uniform empty open", func() error { _, err := s.Uniform(1, 1, false); return err }},
		{"normal sigma 0", func() error { _, err := s.Normal(0, 0); return err }},
		{"normal sigma neg", func() error { _, err := s.Normal(0, -1); return err }},
		{"exp scale 0", func() error { _, err := s.Exp(0); return err }},
		{"poisson lambda 0", func() error { _, err := s.Poisson(0); return err }},
		{"bool p>1", func() error { _, err := s.Bool(1.5); return err }},
		{"gamma shape 0", func() error { _, err := s.Gamma(0, 1); return err }},
		{"zero count", func() error { _, err := s.Normals(0, 0, 1); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidParam) {
				t.Errorf("error %v does not wrap ErrInvalidParam", err)
			}
		})
	}
}

func TestSeededReproducibility(t *testing.T) {
	a := NewSeeded(99)
	b := NewSeeded(99)
	for i := 0; i < 100; i++ {
		if a.StdNormal() != b.StdNormal() {
			t.Fatal("identical seeds diverged")
		}
	}
	c := NewSeeded(100)
	diverged := false
	d := NewSeeded(99)
	for i := 0; i < 100; i++ {
		if c.StdNormal() != d.StdNormal() {
			diverged = true
			break
		}
	}
	if !diverged {
		t.Error("different seeds produced identical sequences")
	}
}

func TestForkIndependence(t *testing.T) {
	base := NewSeeded(5)
	w0 := base.Fork(0)
	w1 := base.Fork(1)
	same := 0
	for i := 0; i < 100; i++ {
		if w0.StdNormal() == w1.StdNormal() {
			same++
		}
	}
	if same > 1 {
		t.Errorf("forked streams correlated: %d identical draws", same)
	}
}
