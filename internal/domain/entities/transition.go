package entities

import (
	"strings"
	"time"

	"fieldservice_billing/internal/domain/expiry"
	"fieldservice_billing/internal/domain/gate"
)

// TransitionKind names a gated document transition.
type TransitionKind string

const (
	TransitionSend        TransitionKind = "send"
	TransitionSign        TransitionKind = "sign"
	TransitionDecline     TransitionKind = "decline"
	TransitionInvoiceEdit TransitionKind = "invoice_edit"
)

func (k TransitionKind) IsValid() bool {
	switch k {
	case TransitionSend, TransitionSign, TransitionDecline, TransitionInvoiceEdit:
		return true
	}
	return false
}

// TransitionContext is the snapshot a transition is validated against.
type TransitionContext struct {
	Quote   *Quote
	Client  *Client
	Service *Service
	Invoice *Invoice
	Now     time.Time
}

// ValidateTransition runs every check for kind and returns the failures.
// Missing snapshots fail the checks that need them.
func ValidateTransition(kind TransitionKind, c TransitionContext) []gate.Reason {
	switch kind {
	case TransitionSend:
		return gate.Run(sendChecks(c)...)
	case TransitionSign, TransitionDecline:
		return gate.Run(decisionChecks(c)...)
	case TransitionInvoiceEdit:
		return gate.Run(gate.Check{
			Code:    "invoice_locked",
			Field:   "status",
			Message: "invoice is paid or has a paid payout",
			Pass:    func() bool { return c.Invoice != nil && !c.Invoice.Locked() },
		})
	}
	return []gate.Reason{{Code: "unknown_transition", Message: "unknown transition " + string(kind)}}
}

func sendChecks(c TransitionContext) []gate.Check {
	q := c.Quote
	return []gate.Check{
		{Code: "valid_until_required", Field: "valid_until", Message: "valid until date is required",
			Pass: func() bool { return q != nil && !q.ValidUntil.IsZero() }},
		{Code: "terms_required", Field: "terms_conditions", Message: "terms and conditions are required",
			Pass: func() bool { return q != nil && strings.TrimSpace(q.TermsConditions) != "" }},
		{Code: "deadline_passed", Field: "valid_until", Message: "valid until date is already in the past",
			Pass: func() bool { return q != nil && !q.ValidUntil.IsZero() && !expiry.IsExpired(q.ValidUntil, c.Now) }},
		{Code: "client_inactive", Field: "client", Message: "client is not active",
			Pass: func() bool { return c.Client != nil && c.Client.IsActive() }},
		{Code: "service_not_active", Field: "service", Message: "service is not active",
			Pass: func() bool { return c.Service != nil && c.Service.Status == ServiceStatusActive }},
		{Code: "quote_already_signed", Field: "status", Message: "quote is already signed",
			Pass: func() bool { return q != nil && q.Status != QuoteStatusSigned }},
	}
}

func decisionChecks(c TransitionContext) []gate.Check {
	q := c.Quote
	return []gate.Check{
		{Code: "quote_not_sent", Field: "status", Message: "quote has not been sent or was already decided",
			Pass: func() bool { return q != nil && q.Status == QuoteStatusSent }},
		{Code: "quote_expired", Field: "valid_until", Message: "quote has expired",
			Pass: func() bool { return q != nil && !expiry.IsExpired(q.ValidUntil, c.Now) }},
	}
}

// SignPreconditions are the sibling checks re-run at sign time against the
// freshly read client and service.
func SignPreconditions(client *Client, service *Service) []gate.Reason {
	return gate.Run(
		gate.Check{Code: "client_inactive", Field: "client", Message: "client is not active",
			Pass: func() bool { return client != nil && client.IsActive() }},
		gate.Check{Code: "service_not_active", Field: "service", Message: "service is not active",
			Pass: func() bool { return service != nil && service.Status == ServiceStatusActive }},
	)
}
