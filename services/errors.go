package services

import (
	"errors"
	"fmt"

	"github.com/upb/wte-dashboard/backend/repositories"
)

// ErrorType categorises a DomainError; handlers map it to an HTTP status.
type ErrorType string

const (
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeInternal     ErrorType = "internal"
	ErrorTypeExternal     ErrorType = "external"
)

// DomainError is the error type returned by services. Details is copied into
// the error response body.
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError of the same Type, so errors.Is(err, ErrSiteNotFound)
// holds for every not-found error.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

var (
	ErrProfileNotFound   = NewDomainError(ErrorTypeNotFound, "profile not found", nil)
	ErrSiteNotFound      = NewDomainError(ErrorTypeNotFound, "site not found", nil)
	ErrWasteDataNotFound = NewDomainError(ErrorTypeNotFound, "waste data not found", nil)
	ErrScenarioNotFound  = NewDomainError(ErrorTypeNotFound, "scenario not found", nil)
	ErrRouteNotFound     = NewDomainError(ErrorTypeNotFound, "no module is mapped to this route", nil)

	ErrInvalidRole        = NewDomainError(ErrorTypeValidation, "invalid role", nil)
	ErrUnknownTechnology  = NewDomainError(ErrorTypeValidation, "unknown technology", nil)
	ErrInvalidComposition = NewDomainError(ErrorTypeValidation, "organic and recyclable shares exceed 100%", nil)
	ErrInvalidCoordinates = NewDomainError(ErrorTypeValidation, "coordinates out of range", nil)
	ErrInvalidSiteStatus  = NewDomainError(ErrorTypeValidation, "invalid site status", nil)
	ErrInvalidReference   = NewDomainError(ErrorTypeValidation, "referenced record does not exist", nil)

	ErrDuplicateTechnology = NewDomainError(ErrorTypeConflict, "technology already exists", nil)

	ErrInternal       = NewDomainError(ErrorTypeInternal, "internal server error", nil)
	ErrMonitorStopped = NewDomainError(ErrorTypeInternal, "telemetry monitor is not running", nil)
)

// GetErrorType returns the Type of a DomainError in err's chain, or "".
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// GetErrorDetails returns the Details of a DomainError in err's chain, or nil.
func GetErrorDetails(err error) map[string]interface{} {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Details
	}
	return nil
}

// WrapInternal wraps an unexpected failure; handlers hide its message.
func WrapInternal(message string, err error) error {
	return NewDomainError(ErrorTypeInternal, message, err)
}

// WrapExternal wraps a failure of a backing system such as the identity store.
func WrapExternal(message string, err error) error {
	return NewDomainError(ErrorTypeExternal, message, err)
}

// FromRepositoryError maps repository sentinel errors onto domain errors.
// notFound is the domain error reported when the record does not exist.
func FromRepositoryError(err error, notFound *DomainError, message string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return NewDomainError(ErrorTypeNotFound, notFound.Message, err)
	case errors.Is(err, repositories.ErrConflict):
		return NewDomainError(ErrorTypeConflict, message+": record already exists", err)
	case errors.Is(err, repositories.ErrInvalidReference):
		return NewDomainError(ErrorTypeValidation, ErrInvalidReference.Message, err)
	default:
		return WrapInternal(message, err)
	}
}
