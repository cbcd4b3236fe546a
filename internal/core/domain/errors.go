package domain

import (
	"errors"
	"strings"
)

var ErrNotFound = errors.New("record not found")

// ErrCreateInProgress is returned when another create holding the same
// idempotency key has not finished yet.
var ErrCreateInProgress = errors.New("a create with this idempotency key is in progress")

// Violation is a single failed field constraint.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violation found in one payload, in field order.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Field+" "+v.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
