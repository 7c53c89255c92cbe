package inheritance

import "errors"

var (
	// ErrInvalidInput marks a caller contract violation, such as asking for
	// the pairs of fewer than two candidates.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingAnnotation is returned when a lookup the checks depend on
	// cannot be answered, such as a phase lookup for an affected individual
	// that has no phase index.
	ErrMissingAnnotation = errors.New("missing annotation")
)
