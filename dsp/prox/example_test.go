package prox_test

import (
	"fmt"
	"math"

	"github.com/mathworks/Sleep-Spindle-Detector/dsp/prox"
)

func ExampleSoftThreshold() {
	z := []float64{-2, -0.5, 0, 0.5, 2}
	fmt.Println(prox.SoftThreshold(z, 1))
	// Output:
	// [-1 0 0 0 1]
}

func ExampleSVTBlock() {
	// A rank-1 block: SVT with a threshold above its only singular value
	// annihilates it.
	block := []float64{
		1, 2,
		2, 4,
	}
	out, err := prox.SVTBlock(block, 2, 2, 10)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	peak := 0.0
	for _, v := range out {
		peak = math.Max(peak, math.Abs(v))
	}
	fmt.Printf("largest entry after shrinkage: %.4f\n", peak)
	// Output:
	// largest entry after shrinkage: 0.0000
}
