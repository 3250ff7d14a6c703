// Package teager implements the Teager-Kaiser energy operator.
//
// The operator tracks the instantaneous energy of an oscillation,
// e[i] = x[i]^2 - x[i-1]*x[i+1], which for a sinusoid A*sin(w*i) is the
// near-constant A^2*sin^2(w). It reacts within a few samples to amplitude
// changes, which makes it a good envelope for burst detection.
package teager

import "github.com/cwbudde/algo-vecmath"

// Energy returns the Teager-Kaiser energy of x. The two boundary samples,
// where no centered product exists, repeat their nearest interior value.
// Inputs shorter than 3 samples yield all zeros.
func Energy(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	if n < 3 {
		return out
	}

	sq := make([]float64, n)
	vecmath.MulBlock(sq, x, x)
	cross := make([]float64, n-2)
	vecmath.MulBlock(cross, x[:n-2], x[2:])

	for i := 1; i < n-1; i++ {
		out[i] = sq[i] - cross[i-1]
	}
	out[0] = out[1]
	out[n-1] = out[n-2]
	return out
}

// MeanEnergy returns the Teager-Kaiser energy averaged across channels.
// All channels must have the same length; an empty input returns nil.
func MeanEnergy(x [][]float64) []float64 {
	if len(x) == 0 {
		return nil
	}
	sum := Energy(x[0])
	for _, row := range x[1:] {
		vecmath.AddBlockInPlace(sum, Energy(row))
	}
	vecmath.ScaleBlockInPlace(sum, 1/float64(len(x)))
	return sum
}
