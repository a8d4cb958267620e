package service

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports input the tracker refuses to store.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return e.Problems[0]
	}
	return fmt.Sprintf("validation failed (%d errors):\n  - %s", len(e.Problems), strings.Join(e.Problems, "\n  - "))
}

func newValidationError(errs ...error) *ValidationError {
	v := &ValidationError{Problems: make([]string, 0, len(errs))}
	for _, err := range errs {
		v.Problems = append(v.Problems, err.Error())
	}
	return v
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
