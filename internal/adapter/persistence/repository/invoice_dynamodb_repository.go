package repository

import (
	"context"

	"fieldservice_billing/internal/domain/entities"
	"fieldservice_billing/internal/usecase/interfaces"
)

type invoiceItem struct {
	ID               string `dynamodbav:"id"`
	InvoiceNumber    string `dynamodbav:"invoice_number"`
	QuoteID          string `dynamodbav:"quote_id"`
	ServiceID        string `dynamodbav:"service_id"`
	ClientID         string `dynamodbav:"client_id"`
	Status           string `dynamodbav:"status"`
	DueDate          string `dynamodbav:"due_date"`
	Subtotal         string `dynamodbav:"subtotal"`
	TaxRate          string `dynamodbav:"tax_rate"`
	TaxAmount        string `dynamodbav:"tax_amount"`
	TotalAmount      string `dynamodbav:"total_amount"`
	Currency         string `dynamodbav:"currency"`
	PaidAt           string `dynamodbav:"paid_at,omitempty"`
	PaymentReference string `dynamodbav:"payment_reference,omitempty"`
	HasPaidPayout    bool   `dynamodbav:"has_paid_payout"`
	Version          int    `dynamodbav:"version"`
	CreatedAt        string `dynamodbav:"created_at"`
	UpdatedAt        string `dynamodbav:"updated_at"`
}

// InvoiceDynamoRepository persists invoices in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: quote_id-index (PK: quote_id)
//
// Invoice ids are derived from the quote id, so the conditional create is what
// keeps a quote to a single invoice.
type InvoiceDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func NewInvoiceDynamoRepository(ddb DynamoAPI, tableName string) *InvoiceDynamoRepository {
	return &InvoiceDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *InvoiceDynamoRepository) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	if inv.Version == 0 {
		inv.Version = 1
	}
	if err := putNew(ctx, r.ddb, r.tableName, "invoice", inv.ID, toInvoiceItem(inv)); err != nil {
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	var it invoiceItem
	found, err := getItem(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

// GetByQuoteID reads the derived id first (strongly consistent) and falls back
// to the quote_id index for invoices created under another id scheme.
func (r *InvoiceDynamoRepository) GetByQuoteID(ctx context.Context, quoteID string) (entities.Invoice, error) {
	inv, err := r.GetByID(ctx, entities.InvoiceIDForQuote(quoteID))
	if err != nil || inv.ID != "" {
		return inv, err
	}
	var it invoiceItem
	found, err := queryOne(ctx, r.ddb, r.tableName, invoicesQuoteIDIndex, "quote_id", quoteID, &it)
	if err != nil || !found {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func (r *InvoiceDynamoRepository) Update(ctx context.Context, inv entities.Invoice, expectedVersion int) (entities.Invoice, error) {
	inv.Version = expectedVersion + 1
	if err := putIfVersion(ctx, r.ddb, r.tableName, "invoice", inv.ID, toInvoiceItem(inv), expectedVersion); err != nil {
		return entities.Invoice{}, err
	}
	return inv, nil
}

func toInvoiceItem(inv entities.Invoice) invoiceItem {
	return invoiceItem{
		ID:               inv.ID,
		InvoiceNumber:    inv.InvoiceNumber,
		QuoteID:          inv.QuoteID,
		ServiceID:        inv.ServiceID,
		ClientID:         inv.ClientID,
		Status:           string(inv.Status),
		DueDate:          formatTime(inv.DueDate),
		Subtotal:         inv.Subtotal.String(),
		TaxRate:          inv.TaxRate.String(),
		TaxAmount:        inv.TaxAmount.String(),
		TotalAmount:      inv.TotalAmount.String(),
		Currency:         inv.Currency,
		PaidAt:           formatTimePtr(inv.PaidAt),
		PaymentReference: inv.PaymentReference,
		HasPaidPayout:    inv.HasPaidPayout,
		Version:          inv.Version,
		CreatedAt:        formatTime(inv.CreatedAt),
		UpdatedAt:        formatTime(inv.UpdatedAt),
	}
}

func fromInvoiceItem(it invoiceItem) entities.Invoice {
	return entities.Invoice{
		ID:               it.ID,
		InvoiceNumber:    it.InvoiceNumber,
		QuoteID:          it.QuoteID,
		ServiceID:        it.ServiceID,
		ClientID:         it.ClientID,
		Status:           entities.InvoiceStatus(it.Status),
		DueDate:          parseTime(it.DueDate),
		Subtotal:         parseDecimal(it.Subtotal),
		TaxRate:          parseDecimal(it.TaxRate),
		TaxAmount:        parseDecimal(it.TaxAmount),
		TotalAmount:      parseDecimal(it.TotalAmount),
		Currency:         it.Currency,
		PaidAt:           parseTimePtr(it.PaidAt),
		PaymentReference: it.PaymentReference,
		HasPaidPayout:    it.HasPaidPayout,
		Version:          it.Version,
		CreatedAt:        parseTime(it.CreatedAt),
		UpdatedAt:        parseTime(it.UpdatedAt),
	}
}
