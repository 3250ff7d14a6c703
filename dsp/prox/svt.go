package prox

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SVTBlock applies singular value soft-thresholding to a rows x cols matrix
// stored row-major in block, returning the shrunk matrix in the same layout.
//
// Every singular value is passed through [SoftThreshold] with threshold tau and
// the matrix is rebuilt from the shrunk spectrum. This is the proximal operator
// of tau*||.||_* (nuclear norm) and is the workhorse of low-rank block models.
// tau = 0 returns an exact copy without factorizing.
func SVTBlock(block []float64, rows, cols int, tau float64) ([]float64, error) {
	if len(block) != rows*cols {
		return nil, fmt.Errorf("%w: %d != %d*%d", errBlockShape, len(block), rows, cols)
	}
	if tau == 0 {
		return append([]float64(nil), block...), nil
	}

	var svd mat.SVD
	a := mat.NewDense(rows, cols, append([]float64(nil), block...))
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, ErrSVDFailed
	}

	s := svd.Values(nil)
	SoftThresholdTo(s, s, tau)

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	var us, out mat.Dense
	us.Mul(&u, mat.NewDiagDense(len(s), s))
	out.Mul(&us, v.T())

	raw := out.RawMatrix()
	if raw.Stride == cols {
		return raw.Data[:rows*cols], nil
	}
	res := make([]float64, rows*cols)
	for r := 0; r < rows; r++ {
		copy(res[r*cols:(r+1)*cols], raw.Data[r*raw.Stride:r*raw.Stride+cols])
	}
	return res, nil
}

// NuclearNorm returns the sum of singular values of a rows x cols matrix
// stored row-major in block.
func NuclearNorm(block []float64, rows, cols int) (float64, error) {
	if len(block) != rows*cols {
		return 0, fmt.Errorf("%w: %d != %d*%d", errBlockShape, len(block), rows, cols)
	}

	var svd mat.SVD
	a := mat.NewDense(rows, cols, append([]float64(nil), block...))
	if ok := svd.Factorize(a, mat.SVDNone); !ok {
		return 0, ErrSVDFailed
	}

	sum := 0.0
	for _, sv := range svd.Values(nil) {
		sum += sv
	}
	return sum, nil
}
