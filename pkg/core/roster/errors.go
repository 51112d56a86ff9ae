package roster

import (
	"errors"
	"fmt"
)

// Rejection reasons surfaced to callers. They are matched with errors.Is;
// callers add context by wrapping them with fmt.Errorf("%w").
var (
	ErrMissingFunction                = errors.New("area requires a function")
	ErrUnexpectedFunction             = errors.New("area does not take a function")
	ErrAreaNotAvailableOnDay          = errors.New("area is not available on this day")
	ErrServantAlreadyScheduledThisDay = errors.New("servant is already scheduled on this day")
	ErrAssignmentLocked               = errors.New("assignment is locked")
	ErrServantInactiveOrMissing       = errors.New("servant is inactive or missing")
	ErrStorageUnavailable             = errors.New("storage unavailable")

	ErrUnknownArea         = errors.New("unknown area")
	ErrInvalidDay          = errors.New("invalid service day")
	ErrInvalidWeekStart    = errors.New("week start must be a Saturday in 2006-01-02 format")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrServantNotFound     = errors.New("servant not found")
	ErrInvalidServantInput = errors.New("invalid servant input")
)

var reasons = []struct {
	err  error
	name string
}{
	{ErrMissingFunction, "MissingFunction"},
	{ErrUnexpectedFunction, "UnexpectedFunction"},
	{ErrAreaNotAvailableOnDay, "AreaNotAvailableOnDay"},
	{ErrServantAlreadyScheduledThisDay, "ServantAlreadyScheduledThisDay"},
	{ErrAssignmentLocked, "AssignmentLocked"},
	{ErrServantInactiveOrMissing, "ServantInactiveOrMissing"},
	{ErrStorageUnavailable, "StorageUnavailable"},
	{ErrUnknownArea, "UnknownArea"},
	{ErrInvalidDay, "InvalidDay"},
	{ErrInvalidWeekStart, "InvalidWeekStart"},
	{ErrAssignmentNotFound, "AssignmentNotFound"},
	{ErrServantNotFound, "ServantNotFound"},
	{ErrInvalidServantInput, "InvalidServantInput"},
}

// Reason returns the stable name of the rejection carried by err,
// or an empty string if err is nil or not a roster rejection
func Reason(err error) string {
	if err == nil {
		return ""
	}
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.name
		}
	}
	return ""
}

// IsRejection reports whether err is a structural rejection, meaning that
// re-running the same operation will keep failing for the same reason
func IsRejection(err error) bool {
	reason := Reason(err)
	return reason != "" && reason != "StorageUnavailable"
}

// StorageError wraps a persistence failure with ErrStorageUnavailable
func StorageError(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", ErrStorageUnavailable, op, err)
}
