package request

import (
	"strings"
	"time"

	"fieldservice_billing/internal/domain/entities"
	"fieldservice_billing/internal/usecase"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest overrides the configured due date and tax rate. Both
// are optional.
type CreateInvoiceRequest struct {
	DueDate *time.Time       `json:"due_date"`
	TaxRate *decimal.Decimal `json:"tax_rate"`
}

func (r CreateInvoiceRequest) ToInput() usecase.CreateInvoiceInput {
	return usecase.CreateInvoiceInput{DueDate: r.DueDate, TaxRate: r.TaxRate}
}

type UpdateInvoiceRequest struct {
	Subtotal *decimal.Decimal `json:"subtotal"`
	TaxRate  *decimal.Decimal `json:"tax_rate"`
	DueDate  *time.Time       `json:"due_date"`
	Version  int              `json:"version"`
}

func (r UpdateInvoiceRequest) ToInput() usecase.UpdateInvoiceInput {
	return usecase.UpdateInvoiceInput{
		Edit:    entities.InvoiceEdit{Subtotal: r.Subtotal, TaxRate: r.TaxRate, DueDate: r.DueDate},
		Version: r.Version,
	}
}

// PayInvoiceRequest carries the processor token of the client's payment
// method.
type PayInvoiceRequest struct {
	PaymentMethodRef string `json:"payment_method_ref" binding:"required"`
}

func (r PayInvoiceRequest) ResolveMethodRef() string {
	return strings.TrimSpace(r.PaymentMethodRef)
}
