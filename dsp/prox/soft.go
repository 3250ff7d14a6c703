package prox

import "math"

// SoftThreshold returns sign(z)*max(|z|-t, 0) elementwise as a new slice.
//
// This is the proximal operator of t*||.||_1. A negative t is a caller error;
// t = 0 returns an exact copy of the input.
func SoftThreshold(z []float64, t float64) []float64 {
	out := make([]float64, len(z))
	SoftThresholdTo(out, z, t)
	return out
}

// SoftThresholdTo writes sign(z)*max(|z|-t, 0) into dst.
// dst and z must have the same length; dst may alias z.
func SoftThresholdTo(dst, z []float64, t float64) {
	if t == 0 {
		copy(dst, z)
		return
	}
	for i, v := range z {
		a := math.Abs(v) - t
		if a <= 0 {
			dst[i] = 0
			continue
		}
		if v < 0 {
			a = -a
		}
		dst[i] = a
	}
}
