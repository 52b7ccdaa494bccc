package chart

import "errors"

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrEntryNotFound   = errors.New("chart entry not found")
	// ErrEntryDeleted is returned for any edit or delete targeting an entry
	// that has already been soft-deleted. Delete is terminal.
	ErrEntryDeleted = errors.New("chart entry already deleted")
	// ErrVersionConflict is returned when an entry changed between the
	// caller's read and write. The caller should re-read and retry.
	ErrVersionConflict = errors.New("chart entry was modified concurrently")
)

// ValidationError reports a single rejected field so callers can render a
// field-level message. No state changes when one is returned.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// IsNotFound reports whether err signals a missing patient or entry.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPatientNotFound) || errors.Is(err, ErrEntryNotFound)
}

// IsConflict reports whether err signals a terminal-state or concurrent
// modification failure.
func IsConflict(err error) bool {
	return errors.Is(err, ErrEntryDeleted) || errors.Is(err, ErrVersionConflict)
}
