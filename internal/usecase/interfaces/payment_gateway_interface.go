package interfaces

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// PaymentIntentRequest asks the processor to reserve an invoice amount.
type PaymentIntentRequest struct {
	InvoiceID   string
	Amount      decimal.Decimal
	Currency    string
	Description string
	PayerEmail  string
	// IdempotencyKey is forwarded to the processor so a retried request maps
	// to the same intent.
	IdempotencyKey string
}

type PaymentIntent struct {
	ID     string
	Status string
}

// PaymentConfirmation is a captured payment. Reference is what gets stored on
// the invoice and refunded against.
type PaymentConfirmation struct {
	Reference string
	Status    string
	Raw       json.RawMessage
}

type RefundResult struct {
	ID     string
	Status string
}

// IPaymentGateway abstracts the payment processor (e.g. Mercado Pago).
//
// Failures are returned as *shared.UpstreamError carrying the processor's
// status and its human-readable detail.
type IPaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (PaymentIntent, error)
	ConfirmPayment(ctx context.Context, intentID, paymentMethodRef string) (PaymentConfirmation, error)
	Refund(ctx context.Context, paymentRef string, amount decimal.Decimal, reason string) (RefundResult, error)
}
