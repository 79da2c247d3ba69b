package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/clear-solutions/users-api/internal/domains/users/adapters/http/mapper"
	"github.com/clear-solutions/users-api/internal/domains/users/application"
	"github.com/clear-solutions/users-api/internal/domains/users/domain"
	"github.com/clear-solutions/users-api/internal/domains/users/ports"
	apierrors "github.com/clear-solutions/users-api/internal/shared/errors"
)

const dateLayout = "2006-01-02"

// UserAPI exposes the user resource over HTTP.
type UserAPI struct {
	service   ports.Service
	responder *apierrors.Responder
}

// NewUserAPI wires dependencies.
func NewUserAPI(service ports.Service) *UserAPI {
	return &UserAPI{
		service:   service,
		responder: apierrors.NewResponder(domainErrorMapper),
	}
}

// domainErrorMapper translates service-layer failures into transport errors.
func domainErrorMapper(err error) (apierrors.APIError, bool) {
	var ageErr *application.BelowRequiredAgeError
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return apierrors.NotFound("User with this id not found"), true
	case errors.Is(err, application.ErrEmailInUse):
		return apierrors.BadRequest("Email already in use"), true
	case errors.As(err, &ageErr):
		return apierrors.BadRequest(fmt.Sprintf("User must be at least %d years old.", ageErr.RequiredAge)), true
	case errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrEmptyFirstName),
		errors.Is(err, domain.ErrEmptySurname),
		errors.Is(err, domain.ErrZeroBirthDate):
		return apierrors.BadRequest(err.Error()), true
	}
	return apierrors.APIError{}, false
}

// Get /api/v1/users
// List users whose birth date falls inside [from, to].
func (api *UserAPI) FindByBirthDateRange(c *gin.Context) {
	from, ok := api.dateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := api.dateQuery(c, "to")
	if !ok {
		return
	}
	if from.After(to) {
		api.responder.Respond(c, apierrors.BadRequest("'from' date must be before 'to' date"))
		return
	}
	users, err := api.service.FindByBirthDateRange(c.Request.Context(), from, to)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainList(users))
}

// Post /api/v1/users
// Create user
func (api *UserAPI) CreateUser(c *gin.Context) {
	var payload mapper.UserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.respondBindError(c, err)
		return
	}
	created, err := api.service.Create(c.Request.Context(), mapper.ToDraft(payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomain(created))
}

// Put /api/v1/users/:id
// Replace every field of an existing user
func (api *UserAPI) ReplaceUser(c *gin.Context) {
	id, ok := api.idParam(c)
	if !ok {
		return
	}
	var payload mapper.UserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.respondBindError(c, err)
		return
	}
	updated, err := api.service.Replace(c.Request.Context(), id, mapper.ToDraft(payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomain(updated))
}

// Patch /api/v1/users/:id
// Update only the fields present in the payload
func (api *UserAPI) PartialUpdateUser(c *gin.Context) {
	id, ok := api.idParam(c)
	if !ok {
		return
	}
	var payload mapper.UserPatchRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.respondBindError(c, err)
		return
	}
	updated, err := api.service.PartialUpdate(c.Request.Context(), id, mapper.ToPatch(payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomain(updated))
}

// Delete /api/v1/users/:id
// Delete user
func (api *UserAPI) DeleteUser(c *gin.Context) {
	id, ok := api.idParam(c)
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (api *UserAPI) idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		api.responder.Respond(c, apierrors.BadRequest("user id must be an integer"))
		return 0, false
	}
	return id, true
}

func (api *UserAPI) dateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		api.responder.Respond(c, apierrors.BadRequest("'"+name+"' query parameter is required"))
		return time.Time{}, false
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		api.responder.Respond(c, apierrors.BadRequest("'"+name+"' must be an ISO date (YYYY-MM-DD)"))
		return time.Time{}, false
	}
	return parsed, true
}

// respondBindError separates field-constraint violations, which carry a
// per-field error map, from unreadable payloads.
func (api *UserAPI) respondBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fieldErrors := make(map[string]string, len(validationErrs))
		for _, fieldErr := range validationErrs {
			fieldErrors[fieldErr.Field()] = validationMessage(fieldErr)
		}
		api.responder.Respond(c, apierrors.Validation(fieldErrors))
		return
	}
	api.responder.Respond(c, apierrors.BadRequest(err.Error()))
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "must not be null"
	case "email":
		return "must be a valid email address"
	case "beforetoday":
		return "must be a date that occurred before the current point in time"
	case "min":
		return "must not be empty"
	default:
		return "is invalid"
	}
}
