package model

import (
	"github.com/pkg/errors"
)

var (
	ValidationError = errors.New("validation failed")
	NotFoundError   = errors.New("not found")
	maskAny         = errors.WithStack
)

// IsValidation returns true if the cause of the given error is a ValidationError.
func IsValidation(err error) bool {
	return errors.Cause(err) == ValidationError
}

// IsNotFound returns true if the cause of the given error is a NotFoundError.
func IsNotFound(err error) bool {
	return errors.Cause(err) == NotFoundError
}
