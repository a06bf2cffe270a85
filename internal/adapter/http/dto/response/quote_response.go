package response

import (
	"time"

	"fieldservice_billing/internal/domain/entities"
	"fieldservice_billing/internal/domain/gate"
)

// QuoteResponse reports the effective status: a SENT quote past its deadline
// is shown as EXPIRED.
type QuoteResponse struct {
	ID              string     `json:"id"`
	QuoteNumber     string     `json:"quote_number"`
	ServiceID       string     `json:"service_id"`
	ClientID        string     `json:"client_id"`
	Status          string     `json:"status"`
	ValidUntil      time.Time  `json:"valid_until"`
	TermsConditions string     `json:"terms_conditions"`
	Notes           string     `json:"notes,omitempty"`
	SentAt          *time.Time `json:"sent_at,omitempty"`
	SignedAt        *time.Time `json:"signed_at,omitempty"`
	SignatureRef    string     `json:"signature_ref,omitempty"`
	Version         int        `json:"version"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func FromQuote(q entities.Quote, now time.Time) QuoteResponse {
	return QuoteResponse{
		ID:              q.ID,
		QuoteNumber:     q.QuoteNumber,
		ServiceID:       q.ServiceID,
		ClientID:        q.ClientID,
		Status:          string(q.EffectiveStatus(now)),
		ValidUntil:      q.ValidUntil,
		TermsConditions: q.TermsConditions,
		Notes:           q.Notes,
		SentAt:          q.SentAt,
		SignedAt:        q.SignedAt(),
		SignatureRef:    q.SignatureRef(),
		Version:         q.Version,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

type QuoteStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// TransitionCheckResponse lists every reason blocking a transition; an empty
// list means it is allowed.
type TransitionCheckResponse struct {
	Kind    string        `json:"kind"`
	Allowed bool          `json:"allowed"`
	Reasons []gate.Reason `json:"reasons"`
}

func FromReasons(kind entities.TransitionKind, reasons []gate.Reason) TransitionCheckResponse {
	if reasons == nil {
		reasons = []gate.Reason{}
	}
	return TransitionCheckResponse{Kind: string(kind), Allowed: gate.Passed(reasons), Reasons: reasons}
}
