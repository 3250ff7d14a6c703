package prox

import "errors"

var (
	// ErrSVDFailed reports that the singular value decomposition of a block
	// did not converge. It is surfaced as-is; callers do not retry.
	ErrSVDFailed = errors.New("prox: singular value decomposition failed to converge")

	errBlockShape = errors.New("prox: block data length does not match rows*cols")
)
