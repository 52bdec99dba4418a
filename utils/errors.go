package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind menandai kategori kegagalan bisnis yang dipetakan layer HTTP
// ke status code.
type ErrorKind string

const (
	ErrNotFound          ErrorKind = "not_found"
	ErrValidationFailed  ErrorKind = "validation_failed"
	ErrInvalidState      ErrorKind = "invalid_state"
	ErrEmptyCart         ErrorKind = "empty_cart"
	ErrAlreadyExists     ErrorKind = "already_exists"
	ErrForbidden         ErrorKind = "forbidden"
	ErrTransactionFailed ErrorKind = "transaction_failed"
)

// AppError adalah hasil kegagalan terstruktur dari service. Resource yang
// tidak ada dan resource milik user lain sama-sama memakai ErrNotFound
// supaya keberadaan data user lain tidak bocor.
type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  map[string]string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

func NewAppError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// WrapTransaction membungkus kegagalan tak terduga di dalam blok atomik.
// Cause dicatat di log, tidak dikirim ke caller di production.
func WrapTransaction(message string, cause error) *AppError {
	return &AppError{Kind: ErrTransactionFailed, Message: message, Cause: cause}
}

// NewValidationError membawa peta error per field.
func NewValidationError(message string, fields map[string]string) *AppError {
	return &AppError{Kind: ErrValidationFailed, Message: message, Fields: fields}
}

// AsAppError mengekstrak *AppError dari error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HTTPStatus memetakan kind ke status code.
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrValidationFailed, ErrEmptyCart:
		return http.StatusBadRequest
	case ErrInvalidState:
		return http.StatusUnprocessableEntity
	case ErrAlreadyExists:
		return http.StatusConflict
	case ErrForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
