package core

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// NewMatrix allocates a rows x cols matrix as a slice of row slices backed by
// one contiguous allocation.
func NewMatrix(rows, cols int) [][]float64 {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	backing := make([]float64, rows*cols)
	out := make([][]float64, rows)
	for r := range out {
		out[r] = backing[r*cols : (r+1)*cols]
	}
	return out
}

// CloneMatrix returns a deep copy of a row-slice matrix.
func CloneMatrix(src [][]float64) [][]float64 {
	if len(src) == 0 {
		return nil
	}
	out := make([][]float64, len(src))
	for r, row := range src {
		out[r] = append([]float64(nil), row...)
	}
	return out
}
