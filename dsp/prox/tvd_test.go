package prox

import (
	"math"
	"math/rand"
	"testing"
)

func TestSolvePentaSym(t *testing.T) {
	// Diagonally dominant symmetric pentadiagonal system with a known solution.
	n := 12
	rng := rand.New(rand.NewSource(7))

	diag := make([]float64, n)
	off1 := make([]float64, n)
	off2 := make([]float64, n)
	for i := 0; i < n; i++ {
		diag[i] = 12 + rng.Float64()
		off1[i] = -4
		off2[i] = 1
	}

	want := make([]float64, n)
	for i := range want {
		want[i] = rng.Float64()*2 - 1
	}

	// rhs = A * want, assembled from the band representation.
	rhs := make([]float64, n)
	for i := 0; i < n; i++ {
		v := diag[i] * want[i]
		if i >= 1 {
			v += off1[i-1] * want[i-1]
		}
		if i+1 < n {
			v += off1[i] * want[i+1]
		}
		if i >= 2 {
			v += off2[i-2] * want[i-2]
		}
		if i+2 < n {
			v += off2[i] * want[i+2]
		}
		rhs[i] = v
	}

	got := make([]float64, n)
	solvePentaSym(diag, off1, off2, rhs, got)

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-10 {
			t.Errorf("x[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTVDenoiseZeroWeightIsIdentity(t *testing.T) {
	in := []float64{3, -1, 4, -1, 5, -9, 2, 6}
	got := TVDenoise(in, 0)
	for i := range in {
		if got[i] != in[i] {
			t.Fatalf("got[%d] = %v, want exact %v", i, got[i], in[i])
		}
	}
}

func TestTVDenoiseShortInput(t *testing.T) {
	in := []float64{1, 2}
	got := TVDenoise(in, 5)
	for i := range in {
		if got[i] != in[i] {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], in[i])
		}
	}
}

func TestTVDenoiseFlattensNoisyRamp(t *testing.T) {
	n := 64
	rng := rand.New(rand.NewSource(3))
	clean := make([]float64, n)
	noisy := make([]float64, n)
	for i := range clean {
		clean[i] = 0.25 * float64(i)
		noisy[i] = clean[i] + 0.2*(rng.Float64()*2-1)
	}

	got := TVDenoise(noisy, 5)

	if tv, in := secondDiffSum(got), secondDiffSum(noisy); tv >= in {
		t.Fatalf("second-difference mass did not shrink: %v >= %v", tv, in)
	}

	var mse float64
	for i := range clean {
		d := got[i] - clean[i]
		mse += d * d
	}
	mse /= float64(n)
	if mse > 0.02 {
		t.Fatalf("denoised ramp too far from clean ramp: mse %v", mse)
	}
}

func TestTVDenoisePreservesPiecewiseLinear(t *testing.T) {
	// A piecewise-linear input has sparse second differences already; moderate
	// smoothing must not move it far.
	n := 40
	in := make([]float64, n)
	for i := range in {
		if i < 20 {
			in[i] = float64(i)
		} else {
			in[i] = 19 - 0.5*float64(i-20)
		}
	}
	got := TVDenoise(in, 0.5)
	for i := range in {
		if math.Abs(got[i]-in[i]) > 0.6 {
			t.Fatalf("got[%d] = %v drifted from %v", i, got[i], in[i])
		}
	}
}

func secondDiffSum(x []float64) float64 {
	sum := 0.0
	for i := 0; i+2 < len(x); i++ {
		sum += math.Abs(x[i] - 2*x[i+1] + x[i+2])
	}
	return sum
}
