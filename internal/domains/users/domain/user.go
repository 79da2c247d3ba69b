package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyEmail     = errors.New("email is required")
	ErrInvalidEmail   = errors.New("email must contain '@'")
	ErrEmptyFirstName = errors.New("first name is required")
	ErrEmptySurname   = errors.New("surname is required")
	ErrZeroBirthDate  = errors.New("birth date is required")
)

// User is the persisted user aggregate. The ID is assigned by the
// persistence gateway on first save and never changes afterwards.
type User struct {
	ID          int64
	Email       string
	FirstName   string
	Surname     string
	BirthDate   time.Time
	Address     string
	PhoneNumber string
}

// Draft carries the full field set needed to create or fully replace a user.
type Draft struct {
	Email       string
	FirstName   string
	Surname     string
	BirthDate   time.Time
	Address     string
	PhoneNumber string
}

// Patch carries the same fields as Draft, each individually optional.
// A nil field means "leave the stored value untouched".
type Patch struct {
	Email       *string
	FirstName   *string
	Surname     *string
	BirthDate   *time.Time
	Address     *string
	PhoneNumber *string
}

// NewUser builds an unsaved user from a draft.
func NewUser(draft Draft) *User {
	user := &User{}
	user.Replace(draft)
	return user
}

// Replace overwrites every field except the ID with the draft's values.
func (u *User) Replace(draft Draft) {
	u.Email = strings.TrimSpace(draft.Email)
	u.FirstName = strings.TrimSpace(draft.FirstName)
	u.Surname = strings.TrimSpace(draft.Surname)
	u.BirthDate = draft.BirthDate
	u.Address = draft.Address
	u.PhoneNumber = draft.PhoneNumber
}

// Merge applies the present patch fields and leaves absent ones untouched.
// Callers vet BirthDate against the age rule before merging.
func (u *User) Merge(patch Patch) {
	if patch.Email != nil {
		u.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.FirstName != nil {
		u.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.Surname != nil {
		u.Surname = strings.TrimSpace(*patch.Surname)
	}
	if patch.BirthDate != nil {
		u.BirthDate = *patch.BirthDate
	}
	if patch.Address != nil {
		u.Address = *patch.Address
	}
	if patch.PhoneNumber != nil {
		u.PhoneNumber = *patch.PhoneNumber
	}
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if u.FirstName == "" {
		return ErrEmptyFirstName
	}
	if u.Surname == "" {
		return ErrEmptySurname
	}
	if u.BirthDate.IsZero() {
		return ErrZeroBirthDate
	}
	return nil
}
