package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrReadingNotFound  = fmt.Errorf("%w: reading", ErrNotFound)
	ErrSnapshotNotFound = fmt.Errorf("%w: report snapshot", ErrNotFound)

	// Recording errors
	ErrNotBalanced          = errors.New("galvanometer is not at the null point")
	ErrPairComplete         = errors.New("both balance lengths already exist; please change R")
	ErrSlotAlreadyFilled    = errors.New("this gap configuration is already recorded; swap the gaps")
	ErrResistanceOutOfRange = errors.New("known resistance outside the resistance-box range")
	ErrJockeyOutOfRange     = errors.New("jockey position outside the wire")

	// Analysis errors
	ErrRevealLocked = errors.New("not enough complete readings to reveal the true value")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// NewRangeError annotates a range sentinel with the offending value and
// bounds; errors.Is against the sentinel still matches.
func NewRangeError(sentinel error, value, min, max float64) error {
	return fmt.Errorf("%w: %g outside [%g, %g]", sentinel, value, min, max)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRecordingError reports whether err is one of the non-fatal
// record-action rejections. These leave the session unchanged.
func IsRecordingError(err error) bool {
	return errors.Is(err, ErrNotBalanced) ||
		errors.Is(err, ErrPairComplete) ||
		errors.Is(err, ErrSlotAlreadyFilled)
}
