package solver

import "errors"

var (
	// ErrEmptyCandidates is returned by Suggest when no candidate boards
	// remain. An empty Solve result itself is not an error.
	ErrEmptyCandidates = errors.New("no candidate boards remain")

	// ErrPreconditionUnmet is returned when Suggest is called before Solve,
	// or ApplyFeedback before any Suggest.
	ErrPreconditionUnmet = errors.New("operation called out of order")

	// ErrInconsistentFeedback is returned when no candidate board would have
	// produced the observed colors against the last suggestion. The
	// candidate set is left unchanged.
	ErrInconsistentFeedback = errors.New("feedback matches no candidate board")
)
