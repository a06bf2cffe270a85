package shared

import (
	"errors"
	"fmt"

	"fieldservice_billing/internal/domain/gate"
)

// Error codes shared by every document lifecycle.
const (
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeExpired           = "EXPIRED"
	CodeLocked            = "LOCKED"
	CodeUpstreamFailure   = "UPSTREAM_FAILURE"
	CodeConflict          = "CONFLICT"
	CodeNotFound          = "NOT_FOUND"
	CodeAlreadyExists     = "ALREADY_EXISTS"
	CodeInvalidInput      = "INVALID_INPUT"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError carrying the same code.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Sentinel kinds. Compare with errors.Is.
var (
	ErrValidationFailed  = NewDomainError(CodeValidationFailed, "Validation failed")
	ErrInvalidTransition = NewDomainError(CodeInvalidTransition, "Transition not allowed in current state")
	ErrExpired           = NewDomainError(CodeExpired, "Deadline has passed")
	ErrLocked            = NewDomainError(CodeLocked, "Document is locked")
	ErrUpstreamFailure   = NewDomainError(CodeUpstreamFailure, "Upstream request failed")
	ErrConflict          = NewDomainError(CodeConflict, "Resource was modified by another process")
	ErrNotFound          = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists     = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput      = NewDomainError(CodeInvalidInput, "Invalid input provided")
)

// ValidationError carries every failed gate check.
type ValidationError struct {
	Reasons []gate.Reason
}

func NewValidationError(reasons []gate.Reason) *ValidationError {
	return &ValidationError{Reasons: reasons}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", gate.Summary(e.Reasons))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// TransitionError names the document state that forbids the requested move.
type TransitionError struct {
	Document string
	Action   string
	Current  string
	Reason   string
}

func NewTransitionError(document, action, current, reason string) *TransitionError {
	return &TransitionError{Document: document, Action: action, Current: current, Reason: reason}
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s %s in status %s: %s", e.Action, e.Document, e.Current, e.Reason)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// UpstreamError wraps a transport or payment processor failure. Detail is the
// human-readable message reported by the upstream and is surfaced verbatim.
type UpstreamError struct {
	Source string
	Status int
	Detail string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s failed (status %d): %s", e.Source, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s failed: %s", e.Source, e.Detail)
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamFailure
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Upstream wraps err as an UpstreamError unless it already is a domain error.
func Upstream(source string, err error) error {
	if err == nil {
		return nil
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return err
	}
	var de *DomainError
	var ve *ValidationError
	var te *TransitionError
	if errors.As(err, &de) || errors.As(err, &ve) || errors.As(err, &te) {
		return err
	}
	return &UpstreamError{Source: source, Detail: err.Error(), Err: err}
}

// Reasons extracts gate reasons from a validation failure.
func Reasons(err error) []gate.Reason {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reasons
	}
	return nil
}
