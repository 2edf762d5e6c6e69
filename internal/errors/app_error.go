package errors

import (
	"errors"
	"net/http"
)

type AppError struct {
	Code        string
	Message     string
	StatusCode  int
	FieldErrors map[string]string
	Err         error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

// WithFieldErrors attaches the server's field-keyed error map, as returned in
// the body of a 4xx response.
func (e *AppError) WithFieldErrors(fields map[string]string) *AppError {
	e.FieldErrors = fields

	return e
}

const (
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeServer       = "SERVER_ERROR"
	ErrCodeNetwork      = "NETWORK_ERROR"
	ErrCodeThirdParty   = "THIRD_PARTY_ERROR"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

func ServerError(message string) *AppError {
	return NewAppError(ErrCodeServer, message, http.StatusInternalServerError)
}

// NetworkError covers transport-level failures where no response was received
// at all, so there is no server status code to carry.
func NetworkError(message string) *AppError {
	return NewAppError(ErrCodeNetwork, message, 0)
}

func ThirdPartyError(message string) *AppError {
	return NewAppError(ErrCodeThirdParty, message, http.StatusBadGateway)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// MessageOr returns the server-provided message carried by err, or the given
// fallback when err carries none.
func MessageOr(err error, fallback string) string {
	if appErr, ok := IsAppError(err); ok && appErr.Message != "" {
		return appErr.Message
	}

	return fallback
}
