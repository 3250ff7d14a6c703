package separate

import "errors"

var (
	// ErrNoInput reports an empty or ragged input matrix.
	ErrNoInput = errors.New("separate: input must be a non-empty rectangular matrix")
	// ErrStepSize reports a non-positive augmented-Lagrangian step size.
	ErrStepSize = errors.New("separate: step size mu must be > 0")
	// ErrIterations reports a negative iteration count.
	ErrIterations = errors.New("separate: iteration count must be >= 0")
	// ErrWeight reports a negative regularization weight.
	ErrWeight = errors.New("separate: regularization weights must be >= 0")
	// ErrNotTightFrame reports a block transform that fails the Parseval
	// round-trip identity on the actual input. The closed-form consensus step
	// is only valid for tight frames, so this is rejected up front.
	ErrNotTightFrame = errors.New("separate: block transform is not a tight frame")
)
