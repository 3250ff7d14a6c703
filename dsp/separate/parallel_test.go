package separate

import (
	"sync/atomic"
	"testing"
)

func TestParallelForCoversAllIndices(t *testing.T) {
	for _, n := range []int{0, 1, 7, 64, 1000} {
		var hits []atomic.Int32
		if n > 0 {
			hits = make([]atomic.Int32, n)
		}
		var calls atomic.Int64

		parallelFor(n, func(i int) {
			hits[i].Add(1)
			calls.Add(1)
		})

		if calls.Load() != int64(n) {
			t.Fatalf("n=%d: %d calls", n, calls.Load())
		}
		for i := range hits {
			if hits[i].Load() != 1 {
				t.Fatalf("n=%d: index %d hit %d times", n, i, hits[i].Load())
			}
		}
	}
}

func TestParallelForIsABarrier(t *testing.T) {
	// Every write performed inside fn must be visible after the call returns.
	n := 512
	out := make([]int, n)
	parallelFor(n, func(i int) {
		out[i] = i * i
	})
	for i := range out {
		if out[i] != i*i {
			t.Fatalf("out[%d] = %d, want %d", i, out[i], i*i)
		}
	}
}
