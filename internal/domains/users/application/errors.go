package application

import (
	"errors"
	"fmt"

	"github.com/clear-solutions/users-api/internal/domains/users/ports"
)

var (
	// ErrEmailInUse signals a create collided with a stored email.
	ErrEmailInUse = errors.New("email already in use")
	// ErrBelowRequiredAge signals a birth date newer than the configured threshold.
	ErrBelowRequiredAge = errors.New("user below required age")
)

// BelowRequiredAgeError carries the configured threshold so the transport
// layer can report it. errors.Is matches it against ErrBelowRequiredAge.
type BelowRequiredAgeError struct {
	RequiredAge int
}

func (e *BelowRequiredAgeError) Error() string {
	return fmt.Sprintf("user must be at least %d years old", e.RequiredAge)
}

func (e *BelowRequiredAgeError) Is(target error) bool {
	return target == ErrBelowRequiredAge
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ports.ErrDuplicateEmail) {
		return fmt.Errorf("%w: %w", ErrEmailInUse, err)
	}
	return err
}
