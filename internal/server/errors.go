package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/career-navigator/internal/ingestion"
	"github.com/jonathan/career-navigator/internal/skills"
)

// ErrNotFound indicates a stored resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates a feature whose backend is not configured
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error. Wrapped
// errors are matched by their innermost known type.
func HTTPStatus(err error) int {
	var (
		emptyErr      *ingestion.ExtractionEmptyError
		formatErr     *ingestion.UnsupportedFormatError
		decodeErr     *ingestion.DecodeError
		targetErr     *skills.TargetError
		roleErr       *skills.UnknownRoleError
		notFoundErr   *ErrNotFound
		validationErr *ErrValidation
		unavailErr    *ErrUnavailable
		fieldErrs     validator.ValidationErrors
		tooLargeErr   *http.MaxBytesError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &emptyErr), errors.As(err, &formatErr), errors.As(err, &decodeErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &roleErr), errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &targetErr), errors.As(err, &validationErr), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unavailErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
