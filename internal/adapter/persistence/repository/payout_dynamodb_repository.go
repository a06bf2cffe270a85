package repository

import (
	"context"

	"fieldservice_billing/internal/domain/entities"
	"fieldservice_billing/internal/usecase/interfaces"
)

type refundItem struct {
	ID               string `dynamodbav:"id"`
	Amount           string `dynamodbav:"amount"`
	Reason           string `dynamodbav:"reason,omitempty"`
	ProviderRefundID string `dynamodbav:"provider_refund_id"`
	ApprovedAt       string `dynamodbav:"approved_at"`
}

type payoutItem struct {
	ID               string       `dynamodbav:"id"`
	InvoiceID        string       `dynamodbav:"invoice_id"`
	Amount           string       `dynamodbav:"amount"`
	Currency         string       `dynamodbav:"currency"`
	Status           string       `dynamodbav:"status"`
	FailureReason    string       `dynamodbav:"failure_reason,omitempty"`
	PaymentReference string       `dynamodbav:"payment_reference"`
	Refunds          []refundItem `dynamodbav:"refunds"`
	Version          int          `dynamodbav:"version"`
	CreatedAt        string       `dynamodbav:"created_at"`
	UpdatedAt        string       `dynamodbav:"updated_at"`
}

// PayoutDynamoRepository persists payouts in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: invoice_id-index (PK: invoice_id)
type PayoutDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IPayoutRepository = (*PayoutDynamoRepository)(nil)

func NewPayoutDynamoRepository(ddb DynamoAPI, tableName string) *PayoutDynamoRepository {
	return &PayoutDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PayoutDynamoRepository) Create(ctx context.Context, p entities.Payout) (entities.Payout, error) {
	if p.Version == 0 {
		p.Version = 1
	}
	if err := putNew(ctx, r.ddb, r.tableName, "payout", p.ID, toPayoutItem(p)); err != nil {
		return entities.Payout{}, err
	}
	return p, nil
}

func (r *PayoutDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payout, error) {
	var it payoutItem
	found, err := getItem(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Payout{}, err
	}
	return fromPayoutItem(it), nil
}

// GetByInvoiceID resolves the deterministic payout id first, then the index.
func (r *PayoutDynamoRepository) GetByInvoiceID(ctx context.Context, invoiceID string) (entities.Payout, error) {
	p, err := r.GetByID(ctx, entities.PayoutIDForInvoice(invoiceID))
	if err != nil || p.ID != "" {
		return p, err
	}
	var it payoutItem
	found, err := queryOne(ctx, r.ddb, r.tableName, payoutsInvoiceIDIndex, "invoice_id", invoiceID, &it)
	if err != nil || !found {
		return entities.Payout{}, err
	}
	return fromPayoutItem(it), nil
}

func (r *PayoutDynamoRepository) Update(ctx context.Context, p entities.Payout, expectedVersion int) (entities.Payout, error) {
	p.Version = expectedVersion + 1
	if err := putIfVersion(ctx, r.ddb, r.tableName, "payout", p.ID, toPayoutItem(p), expectedVersion); err != nil {
		return entities.Payout{}, err
	}
	return p, nil
}

func toPayoutItem(p entities.Payout) payoutItem {
	refunds := make([]refundItem, 0, len(p.Refunds))
	for _, r := range p.Refunds {
		refunds = append(refunds, refundItem{
			ID:               r.ID,
			Amount:           r.Amount.String(),
			Reason:           r.Reason,
			ProviderRefundID: r.ProviderRefundID,
			ApprovedAt:       formatTime(r.ApprovedAt),
		})
	}
	return payoutItem{
		ID:               p.ID,
		InvoiceID:        p.InvoiceID,
		Amount:           p.Amount.String(),
		Currency:         p.Currency,
		Status:           string(p.Status),
		FailureReason:    p.FailureReason,
		PaymentReference: p.PaymentReference,
		Refunds:          refunds,
		Version:          p.Version,
		CreatedAt:        formatTime(p.CreatedAt),
		UpdatedAt:        formatTime(p.UpdatedAt),
	}
}

func fromPayoutItem(it payoutItem) entities.Payout {
	refunds := make([]entities.RefundRecord, 0, len(it.Refunds))
	for _, r := range it.Refunds {
		refunds = append(refunds, entities.RefundRecord{
			ID:               r.ID,
			Amount:           parseDecimal(r.Amount),
			Reason:           r.Reason,
			ProviderRefundID: r.ProviderRefundID,
			ApprovedAt:       parseTime(r.ApprovedAt),
		})
	}
	return entities.Payout{
		ID:               it.ID,
		InvoiceID:        it.InvoiceID,
		Amount:           parseDecimal(it.Amount),
		Currency:         it.Currency,
		Status:           entities.PayoutStatus(it.Status),
		FailureReason:    it.FailureReason,
		PaymentReference: it.PaymentReference,
		Refunds:          refunds,
		Version:          it.Version,
		CreatedAt:        parseTime(it.CreatedAt),
		UpdatedAt:        parseTime(it.UpdatedAt),
	}
}
