package bd

import (
	"errors"
	"fmt"
)

// Validation errors abort a call before any simulation work.
var (
	// ErrNegativeRate indicates a hazard that went negative on the probe grid.
	ErrNegativeRate = errors.New("bd: negative hazard")

	// ErrBadInitialCount indicates a non-positive initial lineage count.
	ErrBadInitialCount = errors.New("bd: initial lineage count must be positive")

	// ErrBadHorizon indicates a non-positive simulation horizon.
	ErrBadHorizon = errors.New("bd: horizon must be positive")

	// ErrBadSizeRange indicates a malformed size acceptance interval.
	ErrBadSizeRange = errors.New("bd: malformed size range")

	// ErrBeforeOrigin indicates a sampler queried about a time before the
	// lineage's birth.
	ErrBeforeOrigin = errors.New("bd: sample time precedes lineage origin")

	// ErrInfiniteHorizon indicates fast truncation requested without a
	// finite horizon.
	ErrInfiniteHorizon = errors.New("bd: fast mode requires a finite horizon")

	// ErrRateSpec indicates an inconsistent rate specification.
	ErrRateSpec = errors.New("bd: invalid rate specification")
)

// ErrRetryLimit is the soft failure of the rejection loop: the size target
// was not reached within the retry cap. It is recoverable by the caller and
// detectable with errors.Is.
var ErrRetryLimit = errors.New("bd: size target not reached within retry limit")

// RetryLimitError carries the number of attempts spent before giving up.
type RetryLimitError struct {
	Attempts int
}

func (e *RetryLimitError) Error() string {
	return fmt.Sprintf("%v (%d attempts)", ErrRetryLimit, e.Attempts)
}

func (e *RetryLimitError) Unwrap() error { return ErrRetryLimit }
