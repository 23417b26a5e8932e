package application

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. The two cases are deliberately indistinguishable so the
	// sign-in endpoint leaks no user-enumeration signal.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserNotFound = errors.New("user not found")

	// ErrValidation marks client-fixable input problems detected in the
	// service layer. Wrapped errors carry the specific message.
	ErrValidation = errors.New("validation error")

	// ErrCapacityBelowCount is returned by event updates when strict
	// capacity checking is enabled and the new ceiling is below the current
	// participant count.
	ErrCapacityBelowCount = errors.New("capacity below current participant count")
)

func wrapValidation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

