package pkg

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"fieldservice_billing/internal/domain/gate"
	"fieldservice_billing/internal/domain/shared"

	"github.com/stretchr/testify/assert"
)

func TestFromDomain_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", shared.NewValidationError([]gate.Reason{{Code: "terms_required", Field: "terms_conditions"}}), http.StatusUnprocessableEntity, shared.CodeValidationFailed},
		{"transition", shared.NewTransitionError("quote", "sign", "DRAFT", "not sent"), http.StatusConflict, shared.CodeInvalidTransition},
		{"expired", fmt.Errorf("%w: quote Q-1", shared.ErrExpired), http.StatusGone, shared.CodeExpired},
		{"locked", fmt.Errorf("%w: invoice", shared.ErrLocked), http.StatusLocked, shared.CodeLocked},
		{"upstream", &shared.UpstreamError{Source: "payments", Status: 402, Detail: "card declined"}, http.StatusBadGateway, shared.CodeUpstreamFailure},
		{"conflict", shared.ErrConflict, http.StatusConflict, shared.CodeConflict},
		{"not found", fmt.Errorf("quote q-1: %w", shared.ErrNotFound), http.StatusNotFound, shared.CodeNotFound},
		{"exists", shared.ErrAlreadyExists, http.StatusConflict, shared.CodeAlreadyExists},
		{"input", shared.ErrInvalidInput, http.StatusBadRequest, shared.CodeInvalidInput},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := FromDomain(tc.err)
			assert.Equal(t, tc.status, appErr.HTTPStatus)
			assert.Equal(t, tc.code, appErr.Code)
		})
	}
}

func TestFromDomain_CarriesDetails(t *testing.T) {
	appErr := FromDomain(shared.NewValidationError([]gate.Reason{{Code: "terms_required", Field: "terms_conditions"}}))
	body := appErr.ToHTTPError()
	assert.Equal(t, "terms_conditions", body.Details[0].Field)

	upstream := FromDomain(&shared.UpstreamError{Source: "payments", Detail: "card declined"})
	assert.Equal(t, "card declined", upstream.ToHTTPError().Message)
}

func TestFromDomain_PassesAppErrorThrough(t *testing.T) {
	orig := NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	assert.Same(t, orig, FromDomain(fmt.Errorf("wrapped: %w", orig)))
	assert.Equal(t, "INVALID_REQUEST: Invalid request", orig.Error())
}
