package aptitude

import "errors"

var (
	// ErrInvalidScore is returned for a response outside [MinScore, MaxScore].
	ErrInvalidScore = errors.New("invalid score")

	// ErrInvalidState is returned when an operation is not valid in the
	// session's current state, e.g. submitting after completion.
	ErrInvalidState = errors.New("invalid session state")

	// ErrOutOfRange is returned for a question index outside the bank.
	ErrOutOfRange = errors.New("question index out of range")

	// ErrIncompleteData is returned when scoring a response vector whose
	// length does not match the bank.
	ErrIncompleteData = errors.New("incomplete response data")
)
