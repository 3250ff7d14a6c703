package blocks

import "errors"

var (
	// ErrBlockLength reports a non-positive block length.
	ErrBlockLength = errors.New("blocks: block length must be > 0")
	// ErrOverlap reports an overlap outside [0, blockLen).
	ErrOverlap = errors.New("blocks: overlap must satisfy 0 <= overlap < block length")
	// ErrGeometry reports a signal length incompatible with the block grid.
	ErrGeometry = errors.New("blocks: signal length does not fit block length and overlap")
	// ErrShape reports input data whose shape does not match the transform.
	ErrShape = errors.New("blocks: data shape does not match transform")
)
