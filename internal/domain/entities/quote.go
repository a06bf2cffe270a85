package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fieldservice_billing/internal/domain/expiry"
	"fieldservice_billing/internal/domain/gate"
	"fieldservice_billing/internal/domain/shared"
)

// QuoteStatus is the stored lifecycle state of a quote.
//
// QuoteStatusExpired is never stored: it is what EffectiveStatus reports for a
// SENT quote past its deadline, so extending the deadline of a SENT quote
// makes it stop reporting EXPIRED.
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "DRAFT"
	QuoteStatusSent     QuoteStatus = "SENT"
	QuoteStatusSigned   QuoteStatus = "SIGNED"
	QuoteStatusDeclined QuoteStatus = "DECLINED"
	QuoteStatusExpired  QuoteStatus = "EXPIRED"
)

// IsStored reports whether s may appear in storage.
func (s QuoteStatus) IsStored() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusSigned, QuoteStatusDeclined:
		return true
	}
	return false
}

// IsTerminal is true for SIGNED and DECLINED.
func (s QuoteStatus) IsTerminal() bool {
	return s == QuoteStatusSigned || s == QuoteStatusDeclined
}

// Decision is the counterparty's answer. SignatureRef is set only for a
// signature; a decline carries the timestamp alone.
type Decision struct {
	At           time.Time `json:"at"`
	SignatureRef string    `json:"signature_ref,omitempty"`
}

// Quote is a priced proposal for a service awaiting the client's decision.
type Quote struct {
	ID              string      `json:"id"`
	QuoteNumber     string      `json:"quote_number"`
	ServiceID       string      `json:"service_id"`
	ClientID        string      `json:"client_id"`
	Status          QuoteStatus `json:"status"`
	ValidUntil      time.Time   `json:"valid_until"`
	TermsConditions string      `json:"terms_conditions"`
	Notes           string      `json:"notes,omitempty"`
	SentAt          *time.Time  `json:"sent_at,omitempty"`
	Decision        *Decision   `json:"decision,omitempty"`
	Version         int         `json:"version"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// QuoteEdit lists the fields a caller wants to change. Nil means unchanged.
type QuoteEdit struct {
	ValidUntil      *time.Time
	TermsConditions *string
	Notes           *string
}

var ErrQuoteInvariant = errors.New("quote record violates decision invariants")

// NewQuote creates a DRAFT quote.
func NewQuote(id, number, serviceID, clientID string, validUntil time.Time, terms, notes string, now time.Time) (Quote, error) {
	reasons := gate.Run(
		gate.Require(strings.TrimSpace(serviceID) != "", "service_required", "service_id", "service is required"),
		gate.Require(strings.TrimSpace(clientID) != "", "client_required", "client_id", "client is required"),
	)
	if !gate.Passed(reasons) {
		return Quote{}, shared.NewValidationError(reasons)
	}
	return Quote{
		ID:              id,
		QuoteNumber:     number,
		ServiceID:       strings.TrimSpace(serviceID),
		ClientID:        strings.TrimSpace(clientID),
		Status:          QuoteStatusDraft,
		ValidUntil:      validUntil.UTC(),
		TermsConditions: terms,
		Notes:           notes,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// EffectiveStatus is the status shown to callers at time now.
func (q Quote) EffectiveStatus(now time.Time) QuoteStatus {
	if q.Status == QuoteStatusSent && expiry.IsExpired(q.ValidUntil, now) {
		return QuoteStatusExpired
	}
	return q.Status
}

// SignedAt is the decision time of a SIGNED or DECLINED quote.
func (q Quote) SignedAt() *time.Time {
	if q.Decision == nil {
		return nil
	}
	at := q.Decision.At
	return &at
}

// SignatureRef is the stored signature artifact reference, empty unless SIGNED.
func (q Quote) SignatureRef() string {
	if q.Decision == nil {
		return ""
	}
	return q.Decision.SignatureRef
}

// CheckInvariants rejects records whose decision does not match their status.
func (q Quote) CheckInvariants() error {
	switch q.Status {
	case QuoteStatusDraft, QuoteStatusSent:
		if q.Decision != nil {
			return fmt.Errorf("%w: %s quote %s carries a decision", ErrQuoteInvariant, q.Status, q.ID)
		}
	case QuoteStatusSigned:
		if q.Decision == nil || q.Decision.At.IsZero() || q.Decision.SignatureRef == "" {
			return fmt.Errorf("%w: signed quote %s lacks signature or signed_at", ErrQuoteInvariant, q.ID)
		}
	case QuoteStatusDeclined:
		if q.Decision == nil || q.Decision.At.IsZero() || q.Decision.SignatureRef != "" {
			return fmt.Errorf("%w: declined quote %s must have signed_at and no signature", ErrQuoteInvariant, q.ID)
		}
	default:
		return fmt.Errorf("%w: quote %s has unknown status %q", ErrQuoteInvariant, q.ID, q.Status)
	}
	return nil
}

// Send moves a DRAFT quote to SENT when the send gate passes for the given
// client and service snapshots.
func (q *Quote) Send(client Client, service Service, now time.Time) error {
	if q.Status != QuoteStatusDraft {
		return shared.NewTransitionError("quote", string(TransitionSend), string(q.EffectiveStatus(now)), "only draft quotes can be sent")
	}
	reasons := ValidateTransition(TransitionSend, TransitionContext{Quote: q, Client: &client, Service: &service, Now: now})
	if !gate.Passed(reasons) {
		return shared.NewValidationError(reasons)
	}
	q.Status = QuoteStatusSent
	sent := now
	q.SentAt = &sent
	q.UpdatedAt = now
	return nil
}

// Sign records the client's signature on a SENT, unexpired quote.
func (q *Quote) Sign(signatureRef string, now time.Time) error {
	if err := q.decidable(TransitionSign, now); err != nil {
		return err
	}
	if strings.TrimSpace(signatureRef) == "" {
		return shared.NewValidationError([]gate.Reason{{Code: "signature_required", Field: "signature", Message: "a signature is required to sign"}})
	}
	q.Status = QuoteStatusSigned
	q.Decision = &Decision{At: now, SignatureRef: signatureRef}
	q.UpdatedAt = now
	return nil
}

// Decline records the client's refusal of a SENT, unexpired quote.
func (q *Quote) Decline(now time.Time) error {
	if err := q.decidable(TransitionDecline, now); err != nil {
		return err
	}
	q.Status = QuoteStatusDeclined
	q.Decision = &Decision{At: now}
	q.UpdatedAt = now
	return nil
}

// CanDecide reports, without mutating q, why kind could not be applied now.
func (q Quote) CanDecide(kind TransitionKind, now time.Time) error {
	return q.decidable(kind, now)
}

func (q *Quote) decidable(kind TransitionKind, now time.Time) error {
	if q.Status != QuoteStatusSent {
		return shared.NewTransitionError("quote", string(kind), string(q.Status), "only sent quotes can be decided")
	}
	if expiry.IsExpired(q.ValidUntil, now) {
		return fmt.Errorf("%w: quote %s was valid until %s", shared.ErrExpired, q.QuoteNumber, q.ValidUntil.Format(time.RFC3339))
	}
	return nil
}

// ApplyEdit changes editable fields. Once sent the terms are fixed, since
// they are what the client signs; after a decision only notes may change.
func (q *Quote) ApplyEdit(edit QuoteEdit, now time.Time) error {
	if q.Status.IsTerminal() && (edit.ValidUntil != nil || edit.TermsConditions != nil) {
		return fmt.Errorf("%w: quote %s is %s; only notes can change", shared.ErrLocked, q.QuoteNumber, q.Status)
	}
	if q.Status == QuoteStatusSent && edit.TermsConditions != nil {
		return shared.NewTransitionError("quote", "edit terms of", string(q.Status), "terms are fixed once the quote is sent")
	}
	if edit.ValidUntil != nil {
		q.ValidUntil = edit.ValidUntil.UTC()
	}
	if edit.TermsConditions != nil {
		q.TermsConditions = *edit.TermsConditions
	}
	if edit.Notes != nil {
		q.Notes = *edit.Notes
	}
	q.UpdatedAt = now
	return nil
}
