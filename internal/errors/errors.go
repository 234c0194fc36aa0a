// Package errors defines the domain errors surfaced to API clients.
package errors

import (
	stderrors "errors"
	"net/http"
)

// DomainError is an error whose message is safe to show to the client and
// which carries the HTTP status it maps to.
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string {
	return e.Message
}

// WithMessage returns a copy of e carrying a different message. The copy
// still matches e under errors.Is.
func (e *DomainError) WithMessage(message string) *DomainError {
	return &DomainError{Code: e.Code, Message: message, Status: e.Status}
}

// Is matches domain errors by code so copies made with WithMessage compare
// equal to the sentinel they came from.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// HTTPStatus returns the status carried by err, or 500 when err is not a
// DomainError.
func HTTPStatus(err error) int {
	var de *DomainError
	if stderrors.As(err, &de) && de.Status != 0 {
		return de.Status
	}
	return http.StatusInternalServerError
}

var (
	ErrNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "Resource not found",
		Status:  http.StatusNotFound,
	}
	ErrUnauthenticated = &DomainError{
		Code:    "UNAUTHENTICATED",
		Message: "Unauthenticated",
		Status:  http.StatusUnauthorized,
	}
	ErrInvalidCredentials = &DomainError{
		Code:    "INVALID_CREDENTIALS",
		Message: "Invalid credentials",
		Status:  http.StatusUnauthorized,
	}
	ErrUserNotFound = &DomainError{
		Code:    "USER_NOT_FOUND",
		Message: "User not found",
		Status:  http.StatusNotFound,
	}
)

// ErrInUse is returned when deleting a row other rows still reference.
var ErrInUse = &DomainError{
	Code:    "IN_USE",
	Message: "Resource is in use and cannot be deleted",
	Status:  http.StatusConflict,
}
