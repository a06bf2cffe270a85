package response

import (
	"time"

	"fieldservice_billing/internal/domain/entities"
)

// InvoiceResponse renders money with two decimals.
type InvoiceResponse struct {
	ID               string     `json:"id"`
	InvoiceNumber    string     `json:"invoice_number"`
	QuoteID          string     `json:"quote_id"`
	ServiceID        string     `json:"service_id"`
	ClientID         string     `json:"client_id"`
	Status           string     `json:"status"`
	DueDate          time.Time  `json:"due_date"`
	Subtotal         string     `json:"subtotal"`
	TaxRate          string     `json:"tax_rate"`
	TaxAmount        string     `json:"tax_amount"`
	TotalAmount      string     `json:"total_amount"`
	Currency         string     `json:"currency"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
	PaymentReference string     `json:"payment_reference,omitempty"`
	HasPaidPayout    bool       `json:"has_paid_payout"`
	Version          int        `json:"version"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func FromInvoice(inv entities.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:               inv.ID,
		InvoiceNumber:    inv.InvoiceNumber,
		QuoteID:          inv.QuoteID,
		ServiceID:        inv.ServiceID,
		ClientID:         inv.ClientID,
		Status:           string(inv.Status),
		DueDate:          inv.DueDate,
		Subtotal:         inv.Subtotal.StringFixed(2),
		TaxRate:          inv.TaxRate.String(),
		TaxAmount:        inv.TaxAmount.StringFixed(2),
		TotalAmount:      inv.TotalAmount.StringFixed(2),
		Currency:         inv.Currency,
		PaidAt:           inv.PaidAt,
		PaymentReference: inv.PaymentReference,
		HasPaidPayout:    inv.HasPaidPayout,
		Version:          inv.Version,
		CreatedAt:        inv.CreatedAt,
		UpdatedAt:        inv.UpdatedAt,
	}
}

// InvoicePaymentResponse is the result of paying an invoice: the locked
// invoice and the payout it produced.
type InvoicePaymentResponse struct {
	Invoice InvoiceResponse `json:"invoice"`
	Payout  PayoutResponse  `json:"payout"`
}
