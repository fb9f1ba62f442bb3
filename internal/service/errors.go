package service

import "errors"

// Sentinel errors for cipher workflows.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrFileNotFound indicates the input file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidShift indicates a key outside [-31, 31].
	ErrInvalidShift = errors.New("shift must be an integer between -31 and 31")

	// ErrNoSelection indicates interactive key recovery ended without a valid
	// key being chosen. It reports a failed recovery, not a fault.
	ErrNoSelection = errors.New("no valid shift selected")
)
