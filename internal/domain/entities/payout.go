package entities

import (
	"fmt"
	"strings"
	"time"

	"fieldservice_billing/internal/domain/gate"
	"fieldservice_billing/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayoutStatus is reported by the payment processor.
type PayoutStatus string

const (
	PayoutStatusPending PayoutStatus = "PENDING"
	PayoutStatusPaid    PayoutStatus = "PAID"
	PayoutStatusFailed  PayoutStatus = "FAILED"
)

func (s PayoutStatus) IsValid() bool {
	switch s {
	case PayoutStatusPending, PayoutStatusPaid, PayoutStatusFailed:
		return true
	}
	return false
}

// payoutNamespace seeds deterministic payout ids so that one invoice can only
// ever map to one payout record.
var payoutNamespace = uuid.MustParse("6f1c2a4e-8d1b-4f7a-9a55-3c0e4b7d9e21")

// PayoutIDForInvoice is the idempotency key of the payout created for invoiceID.
func PayoutIDForInvoice(invoiceID string) string {
	return uuid.NewSHA1(payoutNamespace, []byte(invoiceID)).String()
}

// RefundRecord is a refund approved by the payment processor.
type RefundRecord struct {
	ID               string          `json:"id"`
	Amount           decimal.Decimal `json:"amount"`
	Reason           string          `json:"reason"`
	ProviderRefundID string          `json:"provider_refund_id"`
	ApprovedAt       time.Time       `json:"approved_at"`
}

// Payout records the funds owed to the business for a paid invoice.
type Payout struct {
	ID               string          `json:"id"`
	InvoiceID        string          `json:"invoice_id"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	Status           PayoutStatus    `json:"status"`
	FailureReason    string          `json:"failure_reason,omitempty"`
	PaymentReference string          `json:"payment_reference"`
	Refunds          []RefundRecord  `json:"refunds"`
	Version          int             `json:"version"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// NewPayoutFromInvoice builds the PENDING payout of a PAID invoice.
func NewPayoutFromInvoice(inv Invoice, now time.Time) (Payout, error) {
	if inv.Status != InvoiceStatusPaid {
		return Payout{}, shared.NewTransitionError("invoice", "create payout for", string(inv.Status), "only paid invoices produce payouts")
	}
	return Payout{
		ID:               PayoutIDForInvoice(inv.ID),
		InvoiceID:        inv.ID,
		Amount:           inv.TotalAmount,
		Currency:         inv.Currency,
		Status:           PayoutStatusPending,
		PaymentReference: inv.PaymentReference,
		Refunds:          []RefundRecord{},
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// RefundedTotal is the sum of approved refunds.
func (p Payout) RefundedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, r := range p.Refunds {
		total = total.Add(r.Amount)
	}
	return total
}

// Refundable is what remains refundable.
func (p Payout) Refundable() decimal.Decimal {
	left := p.Amount.Sub(p.RefundedTotal())
	if left.IsNegative() {
		return decimal.Zero
	}
	return left
}

// FullyRefunded is metadata, not a status: a PAID payout whose refunds cover
// the whole amount.
func (p Payout) FullyRefunded() bool {
	return p.Amount.IsPositive() && p.RefundedTotal().GreaterThanOrEqual(p.Amount)
}

// CheckRefund validates a refund request without contacting the processor.
func (p Payout) CheckRefund(amount decimal.Decimal) error {
	if p.Status != PayoutStatusPaid {
		return shared.NewTransitionError("payout", "refund", string(p.Status), "only paid payouts can be refunded")
	}
	reasons := gate.Run(
		gate.Require(amount.IsPositive(), "refund_amount_not_positive", "amount", "refund amount must be positive"),
		gate.Require(amount.Equal(RoundMoney(amount)), "refund_amount_precision", "amount", "refund amount cannot have fractions of a cent"),
		gate.Require(amount.LessThanOrEqual(p.Refundable()), "refund_exceeds_balance", "amount",
			fmt.Sprintf("refund exceeds the refundable balance of %s", p.Refundable().StringFixed(2))),
	)
	if !gate.Passed(reasons) {
		return shared.NewValidationError(reasons)
	}
	return nil
}

// AddRefund appends an approved refund, re-checking the bound.
func (p *Payout) AddRefund(r RefundRecord, now time.Time) error {
	if err := p.CheckRefund(r.Amount); err != nil {
		return err
	}
	p.Refunds = append(p.Refunds, r)
	p.UpdatedAt = now
	return nil
}

// RecordStatus applies a processor status update. Repeating the current status
// is a no-op; only PENDING payouts move.
func (p *Payout) RecordStatus(status PayoutStatus, failureReason string, now time.Time) (bool, error) {
	if !status.IsValid() {
		return false, fmt.Errorf("%w: unknown payout status %q", shared.ErrInvalidInput, status)
	}
	if status == p.Status {
		return false, nil
	}
	if p.Status != PayoutStatusPending || status == PayoutStatusPending {
		return false, shared.NewTransitionError("payout", "move to "+string(status), string(p.Status), "payout status already settled")
	}
	if status == PayoutStatusFailed {
		if strings.TrimSpace(failureReason) == "" {
			return false, shared.NewValidationError([]gate.Reason{{Code: "failure_reason_required", Field: "failure_reason", Message: "failed payouts need a reason"}})
		}
		p.FailureReason = failureReason
	}
	p.Status = status
	p.UpdatedAt = now
	return true, nil
}

// IllustrativeNet estimates the amount kept after refunds and a percent fee.
// Display only: the processor-reported net is authoritative for settlement.
func (p Payout) IllustrativeNet(feePercent decimal.Decimal) decimal.Decimal {
	gross := p.Amount.Sub(p.RefundedTotal())
	fee := gross.Mul(feePercent).Div(hundred).Round(2)
	return gross.Sub(fee).Round(2)
}
