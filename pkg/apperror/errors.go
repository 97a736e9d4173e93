package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrBadRequest          = errors.New("bad request")
	ErrInternal            = errors.New("internal server error")
	ErrInvalidInput        = errors.New("invalid input")
	ErrRateLimitExceeded   = errors.New("rate limit exceeded")
	ErrInsufficientBalance = errors.New("insufficient points")
	ErrAlreadyRedeemed     = errors.New("this reward can only be redeemed once")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	ErrConfiguration       = errors.New("server configuration error")
	ErrConflict            = errors.New("conflict")
)

// Kind tells the client what to do about an error.
type Kind string

const (
	KindInput   Kind = "input"   // fix your input
	KindRetry   Kind = "retry"   // try again later
	KindSupport Kind = "support" // contact support
)

// AppError is a custom error type that can hold an HTTP status code
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation wraps ErrInvalidInput with a user facing message.
func Validation(message string) *AppError {
	return New(http.StatusBadRequest, message, ErrInvalidInput)
}

// Upstream wraps ErrUpstreamUnavailable with a user facing message.
func Upstream(message string, cause error) *AppError {
	return New(http.StatusServiceUnavailable, message, errors.Join(ErrUpstreamUnavailable, cause))
}

// MapErrorToStatus maps common errors to HTTP status codes
func MapErrorToStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInsufficientBalance),
		errors.Is(err, ErrAlreadyRedeemed):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrRateLimitExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	}
	// Default to internal server error
	return http.StatusInternalServerError
}

// KindOf classifies an error for the client.
func KindOf(err error) Kind {
	if errors.Is(err, ErrConfiguration) {
		return KindSupport
	}
	status := MapErrorToStatus(err)
	switch {
	case status == http.StatusServiceUnavailable, status == http.StatusTooManyRequests:
		return KindRetry
	case status >= 500:
		return KindSupport
	default:
		return KindInput
	}
}
