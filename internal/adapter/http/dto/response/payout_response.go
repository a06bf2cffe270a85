package response

import (
	"time"

	"fieldservice_billing/internal/usecase"
)

type RefundResponse struct {
	ID               string    `json:"id"`
	Amount           string    `json:"amount"`
	Reason           string    `json:"reason,omitempty"`
	ProviderRefundID string    `json:"provider_refund_id"`
	ApprovedAt       time.Time `json:"approved_at"`
}

// PayoutResponse carries the derived refund balance. IllustrativeNet is an
// estimate after the configured processor fee, not a settled amount.
type PayoutResponse struct {
	ID               string           `json:"id"`
	InvoiceID        string           `json:"invoice_id"`
	Amount           string           `json:"amount"`
	Currency         string           `json:"currency"`
	Status           string           `json:"status"`
	FailureReason    string           `json:"failure_reason,omitempty"`
	PaymentReference string           `json:"payment_reference"`
	Refunds          []RefundResponse `json:"refunds"`
	Refunded         string           `json:"refunded"`
	Refundable       string           `json:"refundable"`
	FullyRefunded    bool             `json:"fully_refunded"`
	IllustrativeNet  string           `json:"illustrative_net"`
	Version          int              `json:"version"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func FromPayoutView(v usecase.PayoutView) PayoutResponse {
	refunds := make([]RefundResponse, 0, len(v.Refunds))
	for _, r := range v.Refunds {
		refunds = append(refunds, RefundResponse{
			ID:               r.ID,
			Amount:           r.Amount.StringFixed(2),
			Reason:           r.Reason,
			ProviderRefundID: r.ProviderRefundID,
			ApprovedAt:       r.ApprovedAt,
		})
	}
	return PayoutResponse{
		ID:               v.ID,
		InvoiceID:        v.InvoiceID,
		Amount:           v.Amount.StringFixed(2),
		Currency:         v.Currency,
		Status:           string(v.Status),
		FailureReason:    v.FailureReason,
		PaymentReference: v.PaymentReference,
		Refunds:          refunds,
		Refunded:         v.Refunded.StringFixed(2),
		Refundable:       v.Refundable.StringFixed(2),
		FullyRefunded:    v.FullyRefunded,
		IllustrativeNet:  v.IllustrativeNet.StringFixed(2),
		Version:          v.Version,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}
