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

// InvoiceStatus is the stored lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusSent      InvoiceStatus = "SENT"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// IsTerminal is true for PAID and CANCELLED.
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

var invoiceNamespace = uuid.MustParse("0b7e5c1d-3a2f-4c9e-8f61-2d4a9b8c7e10")

// InvoiceIDForQuote is the id of the single invoice a quote may produce.
func InvoiceIDForQuote(quoteID string) string {
	return uuid.NewSHA1(invoiceNamespace, []byte(quoteID)).String()
}

// Invoice bills a signed quote's service.
//
// TaxAmount and TotalAmount are derived by RecomputeTotals and are rewritten on
// every change to Subtotal or TaxRate.
type Invoice struct {
	ID               string          `json:"id"`
	InvoiceNumber    string          `json:"invoice_number"`
	QuoteID          string          `json:"quote_id"`
	ServiceID        string          `json:"service_id"`
	ClientID         string          `json:"client_id"`
	Status           InvoiceStatus   `json:"status"`
	DueDate          time.Time       `json:"due_date"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	TaxRate          decimal.Decimal `json:"tax_rate"`
	TaxAmount        decimal.Decimal `json:"tax_amount"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Currency         string          `json:"currency"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	PaymentReference string          `json:"payment_reference,omitempty"`
	HasPaidPayout    bool            `json:"has_paid_payout"`
	Version          int             `json:"version"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// InvoiceEdit lists the fields a caller wants to change. Nil means unchanged.
type InvoiceEdit struct {
	Subtotal *decimal.Decimal
	TaxRate  *decimal.Decimal
	DueDate  *time.Time
}

// NewInvoiceFromQuote creates a DRAFT invoice from a signed quote, copying the
// service price and currency once.
func NewInvoiceFromQuote(id, number string, quote Quote, service Service, dueDate time.Time, taxRate decimal.Decimal, now time.Time) (Invoice, error) {
	if quote.Status != QuoteStatusSigned {
		return Invoice{}, shared.NewTransitionError("quote", "invoice", string(quote.EffectiveStatus(now)), "only signed quotes can be invoiced")
	}
	reasons := gate.Run(amountChecks(service.Price, taxRate)...)
	if !gate.Passed(reasons) {
		return Invoice{}, shared.NewValidationError(reasons)
	}
	currency := strings.TrimSpace(service.Currency)
	if currency == "" {
		currency = DefaultCurrency
	}
	inv := Invoice{
		ID:            id,
		InvoiceNumber: number,
		QuoteID:       quote.ID,
		ServiceID:     quote.ServiceID,
		ClientID:      quote.ClientID,
		Status:        InvoiceStatusDraft,
		DueDate:       dueDate.UTC(),
		Subtotal:      RoundMoney(service.Price),
		TaxRate:       taxRate,
		Currency:      currency,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	inv.recompute()
	return inv, nil
}

// Locked is true once the invoice is paid or linked to a paid payout.
func (i Invoice) Locked() bool {
	return i.Status == InvoiceStatusPaid || i.HasPaidPayout
}

// Totals returns the derived fields for the current subtotal and tax rate.
func (i Invoice) Totals() Totals {
	return RecomputeTotals(i.Subtotal, i.TaxRate)
}

func (i *Invoice) recompute() {
	t := i.Totals()
	i.TaxAmount = t.TaxAmount
	i.TotalAmount = t.TotalAmount
}

func (i *Invoice) ensureUnlocked(action string) error {
	if i.Locked() {
		return fmt.Errorf("%w: cannot %s invoice %s (status %s, paid payout %t)", shared.ErrLocked, action, i.InvoiceNumber, i.Status, i.HasPaidPayout)
	}
	return nil
}

// ApplyEdit changes subtotal, tax rate or due date and recomputes totals.
func (i *Invoice) ApplyEdit(edit InvoiceEdit, now time.Time) error {
	if err := i.ensureUnlocked("edit"); err != nil {
		return err
	}
	if i.Status == InvoiceStatusCancelled {
		return shared.NewTransitionError("invoice", "edit", string(i.Status), "cancelled invoices cannot be edited")
	}
	subtotal, rate := i.Subtotal, i.TaxRate
	if edit.Subtotal != nil {
		subtotal = *edit.Subtotal
	}
	if edit.TaxRate != nil {
		rate = *edit.TaxRate
	}
	reasons := gate.Run(amountChecks(subtotal, rate)...)
	if !gate.Passed(reasons) {
		return shared.NewValidationError(reasons)
	}
	i.Subtotal = RoundMoney(subtotal)
	i.TaxRate = rate
	if edit.DueDate != nil {
		i.DueDate = edit.DueDate.UTC()
	}
	i.recompute()
	i.UpdatedAt = now
	return nil
}

// MarkSent moves a DRAFT invoice to SENT.
func (i *Invoice) MarkSent(now time.Time) error {
	if err := i.ensureUnlocked("send"); err != nil {
		return err
	}
	if i.Status != InvoiceStatusDraft {
		return shared.NewTransitionError("invoice", "send", string(i.Status), "only draft invoices can be sent")
	}
	i.Status = InvoiceStatusSent
	i.UpdatedAt = now
	return nil
}

// MarkCancelled moves a DRAFT or SENT invoice to CANCELLED.
func (i *Invoice) MarkCancelled(now time.Time) error {
	if err := i.ensureUnlocked("cancel"); err != nil {
		return err
	}
	if i.Status == InvoiceStatusCancelled {
		return shared.NewTransitionError("invoice", "cancel", string(i.Status), "invoice is already cancelled")
	}
	i.Status = InvoiceStatusCancelled
	i.UpdatedAt = now
	return nil
}

// CanBePaid checks the invoice may be charged.
func (i Invoice) CanBePaid() error {
	if err := i.ensureUnlocked("pay"); err != nil {
		return err
	}
	if i.Status == InvoiceStatusCancelled {
		return shared.NewTransitionError("invoice", "pay", string(i.Status), "cancelled invoices cannot be paid")
	}
	if !i.TotalAmount.IsPositive() {
		return shared.NewValidationError([]gate.Reason{{Code: "nothing_to_pay", Field: "total_amount", Message: "invoice total must be positive"}})
	}
	return nil
}

// MarkPaid flips the invoice to PAID after a confirmed payment.
func (i *Invoice) MarkPaid(paymentRef string, now time.Time) error {
	if err := i.CanBePaid(); err != nil {
		return err
	}
	if strings.TrimSpace(paymentRef) == "" {
		return shared.NewValidationError([]gate.Reason{{Code: "payment_reference_required", Field: "payment_reference", Message: "a confirmed payment reference is required"}})
	}
	paid := now
	i.Status = InvoiceStatusPaid
	i.PaidAt = &paid
	i.PaymentReference = paymentRef
	i.UpdatedAt = now
	return nil
}

// MarkPayoutPaid records that the linked payout settled. It is a status flip
// and therefore allowed on a locked invoice.
func (i *Invoice) MarkPayoutPaid(now time.Time) bool {
	if i.HasPaidPayout {
		return false
	}
	i.HasPaidPayout = true
	i.UpdatedAt = now
	return true
}

func amountChecks(subtotal, rate decimal.Decimal) []gate.Check {
	return []gate.Check{
		gate.Require(!subtotal.IsNegative(), "subtotal_negative", "subtotal", "subtotal cannot be negative"),
		gate.Require(!rate.IsNegative() && rate.LessThanOrEqual(hundred), "tax_rate_out_of_range", "tax_rate", "tax rate must be between 0 and 100"),
	}
}
