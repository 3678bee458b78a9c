package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
	ErrorTypeExternal     ErrorType = "EXTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeRequired         ErrorCode = "REQUIRED"
	ErrCodeInvalidAmount    ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"
	ErrCodeInvalidDateRange ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeInvalidEmail     ErrorCode = "INVALID_EMAIL"
	ErrCodeWeakPassword     ErrorCode = "WEAK_PASSWORD"
	ErrCodeInvalidURL       ErrorCode = "INVALID_URL"
	ErrCodeInvalidEnum      ErrorCode = "INVALID_VALUE"
	ErrCodeMissingID        ErrorCode = "MISSING_ID"

	ErrCodeBadRequest   ErrorCode = "BAD_REQUEST"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeServerError  ErrorCode = "SERVER_ERROR"
	ErrCodeNetwork      ErrorCode = "NETWORK_ERROR"
	ErrCodeDecode       ErrorCode = "DECODE_ERROR"

	ErrCodeStorage ErrorCode = "STORAGE_ERROR"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// FieldErrors returns per-field validation failures, if any.
func (e *AppError) FieldErrors() []ValidationError {
	if ve, ok := e.Details.(ValidationErrors); ok {
		return ve.Errors
	}
	return nil
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewNetworkError marks a request that never produced an HTTP response.
// Its message is deliberately empty so callers fall back to their own wording.
func NewNetworkError(cause error) *AppError {
	return &AppError{
		Type:  ErrorTypeExternal,
		Code:  ErrCodeNetwork,
		Cause: cause,
	}
}

// NewFromStatus classifies a non-2xx API response. message is whatever the
// server supplied and may be empty.
func NewFromStatus(status int, message string) *AppError {
	e := &AppError{Message: message, StatusCode: status}
	switch {
	case status == http.StatusUnauthorized:
		e.Type, e.Code = ErrorTypeUnauthorized, ErrCodeUnauthorized
	case status == http.StatusForbidden:
		e.Type, e.Code = ErrorTypeForbidden, ErrCodeForbidden
	case status == http.StatusNotFound:
		e.Type, e.Code = ErrorTypeNotFound, ErrCodeNotFound
	case status == http.StatusConflict:
		e.Type, e.Code = ErrorTypeConflict, ErrCodeConflict
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		e.Type, e.Code = ErrorTypeValidation, ErrCodeBadRequest
	case status >= 500:
		e.Type, e.Code = ErrorTypeExternal, ErrCodeServerError
	default:
		e.Type, e.Code = ErrorTypeExternal, ErrCodeBadRequest
	}
	return e
}

var (
	ErrMissingID        = NewValidationError("missing identifier", ErrCodeMissingID)
	ErrNotAuthenticated = NewUnauthorizedError("not logged in", ErrCodeUnauthorized)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsType(err error, t ErrorType) bool {
	appErr, ok := IsAppError(err)
	return ok && appErr.Type == t
}

// ErrorMessage is the user-facing text for err: the server or validation
// message when one exists, otherwise fallback. Network failures always use
// fallback.
func ErrorMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	appErr, ok := IsAppError(err)
	if !ok || appErr.Code == ErrCodeNetwork {
		return fallback
	}
	if msg := appErr.GetDetailedMessage(); msg != "" {
		return msg
	}
	return fallback
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
