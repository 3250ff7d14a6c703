package blocks_test

import (
	"fmt"
	"math"

	"github.com/mathworks/Sleep-Spindle-Detector/dsp/blocks"
)

func ExampleTransform() {
	tr, err := blocks.New(4, 2, 10)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	y := [][]float64{{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}}
	c, err := tr.Analyze(y)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	rec, err := tr.Synthesize(c)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	worst := 0.0
	for i := range y[0] {
		worst = math.Max(worst, math.Abs(rec[0][i]-y[0][i]))
	}
	fmt.Printf("blocks: %d\n", tr.NumBlocks())
	fmt.Printf("round-trip exact: %v\n", worst < 1e-12)
	// Output:
	// blocks: 4
	// round-trip exact: true
}
