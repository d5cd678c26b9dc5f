package httpclient

import "fmt"

// ErrorType represents the category of error returned by a remote API.
type ErrorType int

const (
	ErrTypePermission ErrorType = iota
	ErrTypeRateLimit
	ErrTypeServiceUnavailable
	ErrTypeInvalidRequest
	ErrTypeNotFound
	ErrTypeTimeout
	ErrTypeUnknown
)

// String returns a human-readable description of the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrTypePermission:
		return "permission denied"
	case ErrTypeRateLimit:
		return "rate limit exceeded"
	case ErrTypeServiceUnavailable:
		return "service unavailable"
	case ErrTypeInvalidRequest:
		return "invalid request"
	case ErrTypeNotFound:
		return "not found"
	case ErrTypeTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error represents an API error with enough context to drive handling
// decisions without re-parsing response bodies.
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Retryable  bool
	API        string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s (status: %d)", e.API, e.Type.String(), e.Message, e.StatusCode)
}

// Is implements error equality checking for errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// IsRetryable returns true if the error is retryable.
func (e *Error) IsRetryable() bool {
	return e.Retryable
}

// NewPermissionError creates a permission-denied error. The caller lacks
// write access to the target resource.
func NewPermissionError(api, message string) *Error {
	return &Error{
		Type:       ErrTypePermission,
		Message:    message,
		StatusCode: 403,
		Retryable:  false,
		API:        api,
	}
}

// NewNotFoundError creates a not-found error. On GitHub this also covers
// resources the token cannot see at all.
func NewNotFoundError(api, message string) *Error {
	return &Error{
		Type:       ErrTypeNotFound,
		Message:    message,
		StatusCode: 404,
		Retryable:  false,
		API:        api,
	}
}

// NewTimeoutError creates a timeout or network error.
func NewTimeoutError(api, message string) *Error {
	return &Error{
		Type:      ErrTypeTimeout,
		Message:   message,
		Retryable: true,
		API:       api,
	}
}

// NewServiceUnavailableError creates a transient server-side error.
func NewServiceUnavailableError(api, message string) *Error {
	return &Error{
		Type:       ErrTypeServiceUnavailable,
		Message:    message,
		StatusCode: 503,
		Retryable:  true,
		API:        api,
	}
}

// NewInvalidRequestError creates a rejected-request error.
func NewInvalidRequestError(api, message string) *Error {
	return &Error{
		Type:       ErrTypeInvalidRequest,
		Message:    message,
		StatusCode: 400,
		Retryable:  false,
		API:        api,
	}
}
