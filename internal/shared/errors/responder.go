package errors

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/food-order-api/internal/shared/failure"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// Responder sends Problem Details responses.
type Responder struct {
	// BaseURI is prepended to problem type URIs if they are relative.
	BaseURI string
}

func NewResponder(baseURI string) *Responder {
	return &Responder{BaseURI: baseURI}
}

// DefaultResponder uses relative URIs for problem types and understands failures.
var DefaultResponder = NewChainedResponder("", FailureMapper)

// Respond sends a ProblemDetail response with proper content type.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" && c.Request != nil {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError converts an error to a ProblemDetail and responds.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	r.Respond(c, ErrInternal.WithDetail(err.Error()))
}

// BadRequest sends a 400 problem response.
func (r *Responder) BadRequest(c *gin.Context, detail string) {
	r.Respond(c, ErrBadRequest.WithDetail(detail))
}

func Respond(c *gin.Context, problem ProblemDetail) {
	DefaultResponder.Respond(c, problem)
}

func RespondError(c *gin.Context, err error) {
	DefaultResponder.RespondError(c, err)
}

// ErrorMapper maps domain/application errors to ProblemDetail.
type ErrorMapper func(err error) (ProblemDetail, bool)

// ChainedResponder supports custom error mapping.
type ChainedResponder struct {
	*Responder
	mappers []ErrorMapper
}

func NewChainedResponder(baseURI string, mappers ...ErrorMapper) *ChainedResponder {
	return &ChainedResponder{
		Responder: NewResponder(baseURI),
		mappers:   mappers,
	}
}

// RespondError tries each mapper before falling back to default handling.
func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	r.Responder.RespondError(c, err)
}

// FailureMapper translates classified failures into problems keyed on their kind.
func FailureMapper(err error) (ProblemDetail, bool) {
	var f *failure.Error
	if !errors.As(err, &f) {
		return ProblemDetail{}, false
	}
	var problem ProblemDetail
	switch {
	case errors.Is(err, failure.ErrNotFound):
		problem = ErrNotFound
	case errors.Is(err, failure.ErrOwnershipMismatch), errors.Is(err, failure.ErrAccessDenied):
		problem = ErrForbidden
	case errors.Is(err, failure.ErrInvalidTotalPrice):
		problem = ErrUnprocessable
	case errors.Is(err, failure.ErrAlreadyCanceled):
		problem = ErrConflict
	case errors.Is(err, failure.ErrInvalidInput):
		problem = ErrValidation
	default:
		return ProblemDetail{}, false
	}
	return problem.WithDetail(f.Error()).WithCode(string(f.Code)), true
}
