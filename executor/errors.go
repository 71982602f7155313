package executor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotEvaluated is wrapped by NotEvaluatedError
var ErrNotEvaluated = errors.New("document not evaluated")

// NotEvaluatedError is returned when a document with unresolved parts is applied.
// No object was touched when it is returned.
type NotEvaluatedError struct {
	Reasons []string
}

func (e *NotEvaluatedError) Error() string {
	return fmt.Sprintf("%v: %v", ErrNotEvaluated, strings.Join(e.Reasons, "; "))
}

func (e *NotEvaluatedError) Unwrap() error {
	return ErrNotEvaluated
}

// IsNotEvaluated reports whether err is caused by an unresolved document
func IsNotEvaluated(err error) bool {
	return errors.Is(err, ErrNotEvaluated)
}

// AsNotEvaluated extracts the NotEvaluatedError from err
func AsNotEvaluated(err error) (*NotEvaluatedError, bool) {
	var target *NotEvaluatedError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
