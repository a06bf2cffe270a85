package request

import (
	"strings"
	"time"

	"fieldservice_billing/internal/domain/entities"
	"fieldservice_billing/internal/domain/signature"
	"fieldservice_billing/internal/usecase"
)

type CreateQuoteRequest struct {
	ServiceID       string    `json:"service_id" binding:"required"`
	ClientID        string    `json:"client_id" binding:"required"`
	ValidUntil      time.Time `json:"valid_until" binding:"required"`
	TermsConditions string    `json:"terms_conditions"`
	Notes           string    `json:"notes"`
}

func (r CreateQuoteRequest) ToInput() usecase.CreateQuoteInput {
	return usecase.CreateQuoteInput{
		ServiceID:       strings.TrimSpace(r.ServiceID),
		ClientID:        strings.TrimSpace(r.ClientID),
		ValidUntil:      r.ValidUntil,
		TermsConditions: r.TermsConditions,
		Notes:           r.Notes,
	}
}

// UpdateQuoteRequest is a partial edit. Omitted fields keep their value;
// Version, when set, must match the stored version.
type UpdateQuoteRequest struct {
	ValidUntil      *time.Time `json:"valid_until"`
	TermsConditions *string    `json:"terms_conditions"`
	Notes           *string    `json:"notes"`
	Version         int        `json:"version"`
}

func (r UpdateQuoteRequest) ToInput() usecase.UpdateQuoteInput {
	return usecase.UpdateQuoteInput{
		Edit: entities.QuoteEdit{
			ValidUntil:      r.ValidUntil,
			TermsConditions: r.TermsConditions,
			Notes:           r.Notes,
		},
		Version: r.Version,
	}
}

// SignatureRequest is the output of the signing canvas.
type SignatureRequest struct {
	DataURL string             `json:"data_url"`
	Strokes []signature.Stroke `json:"strokes"`
	Width   int                `json:"width"`
	Height  int                `json:"height"`
}

func (r SignatureRequest) ToInput() signature.Input {
	return signature.Input{DataURL: r.DataURL, Strokes: r.Strokes, Width: r.Width, Height: r.Height}
}

type SignQuoteRequest struct {
	Signature SignatureRequest `json:"signature"`
}

// TransitionRequest applies a named transition. Signature is read for "sign"
// only.
type TransitionRequest struct {
	Kind      string            `json:"kind" binding:"required"`
	Signature *SignatureRequest `json:"signature"`
}

func (r TransitionRequest) ResolveKind() entities.TransitionKind {
	return entities.TransitionKind(strings.ToLower(strings.TrimSpace(r.Kind)))
}

func (r TransitionRequest) ToPayload() usecase.TransitionPayload {
	if r.Signature == nil {
		return usecase.TransitionPayload{}
	}
	return usecase.TransitionPayload{Signature: r.Signature.ToInput()}
}
