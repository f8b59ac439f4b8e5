// Package errx provides structured application errors: per-feature
// registries of typed error codes carrying an HTTP status mapping,
// rendered uniformly at the transport boundary.
package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// Type classifies an error for propagation and HTTP mapping.
type Type string

const (
	TypeNotFound       Type = "NOT_FOUND"
	TypeValidation     Type = "VALIDATION"
	TypeConflict       Type = "CONFLICT"
	TypeBusiness       Type = "BUSINESS"
	TypeAuthentication Type = "AUTHENTICATION"
	TypeAuthorization  Type = "AUTHORIZATION"
	TypeInternal       Type = "INTERNAL"
	TypeExternal       Type = "EXTERNAL"
)

// Code is a registered error code within a registry.
type Code struct {
	registry   string
	code       string
	errType    Type
	httpStatus int
	message    string
}

// String returns the fully qualified code, e.g. "CANDIDATE:NOT_FOUND".
func (c Code) String() string {
	return c.registry + ":" + c.code
}

// Registry holds the error codes of one feature area.
type Registry struct {
	prefix string
	codes  map[string]Code
}

// NewRegistry creates a registry with the given feature prefix.
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		codes:  make(map[string]Code),
	}
}

// Register defines a new error code in the registry.
func (r *Registry) Register(code string, errType Type, httpStatus int, message string) Code {
	c := Code{
		registry:   r.prefix,
		code:       code,
		errType:    errType,
		httpStatus: httpStatus,
		message:    message,
	}
	r.codes[code] = c
	return c
}

// New creates an error for a registered code.
func (r *Registry) New(code Code) *Error {
	return &Error{
		Code:       code.String(),
		Type:       code.errType,
		HTTPStatus: code.httpStatus,
		Message:    code.message,
	}
}

// NewWithCause creates an error for a registered code wrapping a cause.
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	e := r.New(code)
	e.cause = cause
	return e
}

// Error is a structured application error.
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	HTTPStatus int            `json:"-"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetail attaches a single key/value detail, chainable.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails merges a detail map, chainable.
func (e *Error) WithDetails(details map[string]any) *Error {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// IsType reports whether the error carries the given type.
func (e *Error) IsType(t Type) bool {
	return e.Type == t
}

// ToHTTPResponse returns the JSON body for the error response.
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"code":    e.Code,
		"type":    e.Type,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// Wrap converts an arbitrary error into an *Error with the given type.
// Already-structured errors pass through unchanged so their code and
// HTTP status survive service-layer wrapping.
func Wrap(err error, message string, errType Type) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	status := http.StatusInternalServerError
	switch errType {
	case TypeNotFound:
		status = http.StatusNotFound
	case TypeValidation:
		status = http.StatusBadRequest
	case TypeConflict:
		status = http.StatusConflict
	case TypeBusiness:
		status = http.StatusUnprocessableEntity
	case TypeAuthentication:
		status = http.StatusUnauthorized
	case TypeAuthorization:
		status = http.StatusForbidden
	case TypeExternal:
		status = http.StatusBadGateway
	}
	return &Error{
		Code:       "GENERIC:" + string(errType),
		Type:       errType,
		HTTPStatus: status,
		Message:    message,
		cause:      err,
	}
}

// As finds the first *Error in err's chain.
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// IsCode reports whether err carries the fully qualified code,
// e.g. "CANDIDATE:NOT_FOUND".
func IsCode(err error, code string) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}
