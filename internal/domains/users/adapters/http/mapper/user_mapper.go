package mapper

import (
	"github.com/oapi-codegen/runtime/types"

	userdomain "github.com/clear-solutions/users-api/internal/domains/users/domain"
)

// UserRequest is the payload for create and full replace. Binding tags
// enforce the field-level constraints; the business rules live in the
// application service.
type UserRequest struct {
	Email       string     `json:"email" binding:"required,email"`
	FirstName   string     `json:"firstName" binding:"required"`
	Surname     string     `json:"surname" binding:"required"`
	BirthDate   types.Date `json:"birthDate" binding:"required,beforetoday"`
	Address     string     `json:"address"`
	PhoneNumber string     `json:"phoneNumber"`
}

// UserPatchRequest is the partial-update payload; every field is optional
// and absent fields leave the stored value untouched.
type UserPatchRequest struct {
	Email       *string     `json:"email" binding:"omitempty,email"`
	FirstName   *string     `json:"firstName" binding:"omitempty,min=1"`
	Surname     *string     `json:"surname" binding:"omitempty,min=1"`
	BirthDate   *types.Date `json:"birthDate" binding:"omitempty,beforetoday"`
	Address     *string     `json:"address"`
	PhoneNumber *string     `json:"phoneNumber"`
}

// UserResponse is the wire representation of a persisted user.
type UserResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	Surname     string     `json:"surname"`
	BirthDate   types.Date `json:"birthDate"`
	Address     string     `json:"address"`
	PhoneNumber string     `json:"phoneNumber"`
}

// ToDraft converts a request payload to its domain counterpart.
func ToDraft(payload UserRequest) userdomain.Draft {
	return userdomain.Draft{
		Email:       payload.Email,
		FirstName:   payload.FirstName,
		Surname:     payload.Surname,
		BirthDate:   payload.BirthDate.Time,
		Address:     payload.Address,
		PhoneNumber: payload.PhoneNumber,
	}
}

// ToPatch converts a partial-update payload, carrying absence through as nil.
func ToPatch(payload UserPatchRequest) userdomain.Patch {
	patch := userdomain.Patch{
		Email:       payload.Email,
		FirstName:   payload.FirstName,
		Surname:     payload.Surname,
		Address:     payload.Address,
		PhoneNumber: payload.PhoneNumber,
	}
	if payload.BirthDate != nil {
		birthDate := payload.BirthDate.Time
		patch.BirthDate = &birthDate
	}
	return patch
}

// FromDomain converts a domain user into its wire representation.
func FromDomain(user *userdomain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		Surname:     user.Surname,
		BirthDate:   types.Date{Time: user.BirthDate},
		Address:     user.Address,
		PhoneNumber: user.PhoneNumber,
	}
}

// FromDomainList converts a slice of domain users; the result is never nil
// so an empty match set serializes as an empty JSON array.
func FromDomainList(users []*userdomain.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for _, user := range users {
		result = append(result, FromDomain(user))
	}
	return result
}
