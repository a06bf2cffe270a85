package pkg

import (
	"errors"
	"fmt"
	"net/http"

	"fieldservice_billing/internal/domain/gate"
	"fieldservice_billing/internal/domain/shared"
)

// AppError is an error with the HTTP status it should be answered with.
type AppError struct {
	Code       string
	Message    string
	Err        error
	HTTPStatus int
	Details    []gate.Reason
}

// HTTPError is the JSON body of an error response.
type HTTPError struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []gate.Reason `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewDomainErrorSimple(code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

func NewDomainError(code, message string, err error, status int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPStatus: status}
}

// ToHTTPError hides the wrapped error; only code, message and gate reasons
// reach the client.
func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{Code: e.Code, Message: e.Message, Details: e.Details}
}

// FromDomain maps a lifecycle error to its HTTP answer.
func FromDomain(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var upstream *shared.UpstreamError
	switch {
	case errors.Is(err, shared.ErrValidationFailed):
		return &AppError{Code: shared.CodeValidationFailed, Message: err.Error(), Err: err,
			HTTPStatus: http.StatusUnprocessableEntity, Details: shared.Reasons(err)}
	case errors.Is(err, shared.ErrInvalidTransition):
		return NewDomainError(shared.CodeInvalidTransition, err.Error(), err, http.StatusConflict)
	case errors.Is(err, shared.ErrExpired):
		return NewDomainError(shared.CodeExpired, err.Error(), err, http.StatusGone)
	case errors.Is(err, shared.ErrLocked):
		return NewDomainError(shared.CodeLocked, err.Error(), err, http.StatusLocked)
	case errors.As(err, &upstream):
		return NewDomainError(shared.CodeUpstreamFailure, upstream.Detail, err, http.StatusBadGateway)
	case errors.Is(err, shared.ErrUpstreamFailure):
		return NewDomainError(shared.CodeUpstreamFailure, err.Error(), err, http.StatusBadGateway)
	case errors.Is(err, shared.ErrConflict):
		return NewDomainError(shared.CodeConflict, err.Error(), err, http.StatusConflict)
	case errors.Is(err, shared.ErrNotFound):
		return NewDomainError(shared.CodeNotFound, err.Error(), err, http.StatusNotFound)
	case errors.Is(err, shared.ErrAlreadyExists):
		return NewDomainError(shared.CodeAlreadyExists, err.Error(), err, http.StatusConflict)
	case errors.Is(err, shared.ErrInvalidInput):
		return NewDomainError(shared.CodeInvalidInput, err.Error(), err, http.StatusBadRequest)
	default:
		return NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
