package ledger

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a lookup miss for a business, stakeholder or contract.
var ErrNotFound = errors.New("not found")

// ErrConflict reports a concurrent-write conflict; the caller should re-read
// and retry the whole operation.
var ErrConflict = errors.New("conflicting concurrent update")

// ValidationError rejects a semantically invalid request before anything is
// committed.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

func validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
