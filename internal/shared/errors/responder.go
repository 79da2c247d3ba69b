package errors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ErrorMapper converts a domain or application error into an APIError.
// The boolean reports whether the mapper recognized the error.
type ErrorMapper func(err error) (APIError, bool)

// Responder writes APIError responses and runs unrecognized errors through
// a mapper chain before falling back to a 500.
type Responder struct {
	mappers []ErrorMapper
}

// NewResponder creates a responder with the given mapper chain.
func NewResponder(mappers ...ErrorMapper) *Responder {
	return &Responder{mappers: mappers}
}

// AddMapper appends an error mapper to the chain.
func (r *Responder) AddMapper(mapper ErrorMapper) {
	r.mappers = append(r.mappers, mapper)
}

// Respond writes an APIError as JSON.
func (r *Responder) Respond(c *gin.Context, apiErr APIError) {
	c.JSON(apiErr.Status, apiErr.Body)
}

// RespondError translates err and writes the result. Errors no mapper
// recognizes surface as an internal error carrying the detail.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		r.Respond(c, apiErr)
		return
	}
	for _, mapper := range r.mappers {
		if mapped, ok := mapper(err); ok {
			r.Respond(c, mapped)
			return
		}
	}
	r.Respond(c, Internal("Internal error: "+err.Error()))
}
