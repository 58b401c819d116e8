package services

import "errors"

var (
	// ErrNoActiveStreak is returned when a relapse or celebration is attempted
	// before the user has an active streak. Caller error, never retried.
	ErrNoActiveStreak = errors.New("no active streak for user")

	// ErrDuplicateActiveStreak signals a store integrity violation: more than
	// one open streak for a single user. The operation fails; we never pick one.
	ErrDuplicateActiveStreak = errors.New("multiple active streaks for user")

	// ErrInvalidRatingRange is returned when a check-in rating falls outside [1,10].
	ErrInvalidRatingRange = errors.New("rating outside allowed range 1-10")

	// ErrUnknownMilestoneDay is returned when a celebration references a day
	// that is not in the milestone catalog.
	ErrUnknownMilestoneDay = errors.New("unknown milestone day")

	// ErrMilestoneNotReached is returned when a celebration references a
	// catalog day the active streak has not reached yet.
	ErrMilestoneNotReached = errors.New("milestone not reached yet")
)

// PersistenceError marks a failed store write. In-memory state is never
// mutated ahead of a confirmed write, so the caller may retry or surface a
// transient failure without repair work.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return "persistence: " + e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistenceError reports whether err stems from a failed store write.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
