package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound reports that an entity does not exist or belongs to a
// different user.
var ErrNotFound = errors.New("not found")

// ValidationError is a user-input problem the caller has to fix; it is
// surfaced synchronously and never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// translate maps persistence lookup misses to ErrNotFound; anything
// else propagates unchanged.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
