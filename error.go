package apierrors

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Error codes for the builtin error kinds. These mirror the machine-readable
// codes commonly attached to API errors and are what the default handler
// keys its title selection on.
const (
	CodeParseError           = "parse_error"
	CodeValidationError      = "invalid"
	CodeAuthenticationFailed = "authentication_failed"
	CodeNotAuthenticated     = "not_authenticated"
	CodePermissionDenied     = "permission_denied"
	CodeNotFound             = "not_found"
	CodeMethodNotAllowed     = "method_not_allowed"
	CodeNotAcceptable        = "not_acceptable"
	CodeUnsupportedMediaType = "unsupported_media_type"
	CodeThrottled            = "throttled"
	CodeServerError          = "internal_server_error"
)

// StatusError is an error that has an HTTP status code. When an error
// reaching the formatter implements it, the adapters use that status for the
// response instead of 500.
type StatusError interface {
	GetStatus() int
	Error() string
}

// Error is a request-scoped API error. Message is the generic description
// for the error kind (e.g. "Not found.") and is used as the payload title.
// Detail optionally carries occurrence-specific information: a string, a
// list of strings, a Fields tree or a map of field names to reasons. With
// a nil Detail the formatted payload is bare (title only).
type Error struct {
	// Status is the HTTP status code associated with this error kind.
	Status int

	// Code is a short machine-readable identifier such as "not_found".
	Code string

	// Message is the generic human-readable description for the kind.
	Message string

	// Detail describes this specific occurrence. Accepted types: nil,
	// string, []string, []any (strings or nested string lists), Fields and
	// map[string]any.
	Detail any

	// Headers are extra response headers implied by the error, such as
	// Retry-After for throttling. Adapters apply them before writing.
	Headers map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

// GetStatus satisfies the StatusError interface.
func (e *Error) GetStatus() int {
	return e.Status
}

// WithHeader returns e with an extra response header set, e.g.
// WWW-Authenticate for authentication errors.
func (e *Error) WithHeader(name, value string) *Error {
	if e.Headers == nil {
		e.Headers = map[string]string{}
	}
	e.Headers[name] = value
	return e
}

// NewError creates a generic API error with the given status code and
// message. Use the kind constructors below for the standard error kinds.
func NewError(status int, message string, detail any) *Error {
	return &Error{
		Status:  status,
		Code:    "error",
		Message: message,
		Detail:  detail,
	}
}

func kindError(status int, code, message string, detail []string) *Error {
	e := &Error{Status: status, Code: code, Message: message}
	if len(detail) > 0 {
		e.Detail = detail
	}
	return e
}

// ValidationError creates a 400 validation error. The detail is usually a
// Fields tree or a map of field name to reasons, but free-form message
// strings and lists are accepted too.
func ValidationError(detail any) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Code:    CodeValidationError,
		Message: "Invalid input.",
		Detail:  detail,
	}
}

// ParseError creates a 400 for requests with malformed bodies.
func ParseError(detail ...string) *Error {
	return kindError(http.StatusBadRequest, CodeParseError, "Malformed request.", detail)
}

// AuthenticationFailed creates a 401 for requests with bad credentials.
func AuthenticationFailed(detail ...string) *Error {
	return kindError(http.StatusUnauthorized, CodeAuthenticationFailed,
		"Incorrect authentication credentials.", detail)
}

// NotAuthenticated creates a 401 for requests with no credentials at all.
func NotAuthenticated(detail ...string) *Error {
	return kindError(http.StatusUnauthorized, CodeNotAuthenticated,
		"Authentication credentials were not provided.", detail)
}

// PermissionDenied creates a 403.
func PermissionDenied(detail ...string) *Error {
	return kindError(http.StatusForbidden, CodePermissionDenied,
		"You do not have permission to perform this action.", detail)
}

// NotFound creates a 404.
func NotFound(detail ...string) *Error {
	return kindError(http.StatusNotFound, CodeNotFound, "Not found.", detail)
}

// MethodNotAllowed creates a 405. The generic title stays "Method not
// allowed." while the detail names the rejected method.
func MethodNotAllowed(method string) *Error {
	e := kindError(http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed.", nil)
	e.Detail = []string{fmt.Sprintf("Method %q not allowed.", method)}
	return e
}

// NotAcceptable creates a 406.
func NotAcceptable(detail ...string) *Error {
	return kindError(http.StatusNotAcceptable, CodeNotAcceptable,
		"Could not satisfy the request Accept header.", detail)
}

// UnsupportedMediaType creates a 415. The generic title stays "Unsupported
// media type." while the detail names the offending content type.
func UnsupportedMediaType(mediaType string) *Error {
	e := kindError(http.StatusUnsupportedMediaType, CodeUnsupportedMediaType,
		"Unsupported media type.", nil)
	e.Detail = []string{fmt.Sprintf("Unsupported media type %q in request.", mediaType)}
	return e
}

// Throttled creates a 429. A non-zero wait adds a human-readable detail and
// a Retry-After header; a zero wait produces a bare error.
func Throttled(wait time.Duration) *Error {
	e := kindError(http.StatusTooManyRequests, CodeThrottled, "Request was throttled.", nil)
	if wait > 0 {
		secs := int(wait.Round(time.Second) / time.Second)
		unit := "seconds"
		if secs == 1 {
			unit = "second"
		}
		e.Detail = []string{fmt.Sprintf("Request was throttled. Expected available in %d %s.", secs, unit)}
		e.WithHeader("Retry-After", strconv.Itoa(secs))
	}
	return e
}

// ServerError creates a 500. This is also what the catch-all handler
// reports for errors no other handler recognized.
func ServerError(detail ...string) *Error {
	return kindError(http.StatusInternalServerError, CodeServerError, "Server error.", detail)
}
