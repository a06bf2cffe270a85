package repository

import (
	"context"
	"fmt"

	"fieldservice_billing/internal/domain/entities"
	"fieldservice_billing/internal/usecase/interfaces"
)

type quoteItem struct {
	ID              string `dynamodbav:"id"`
	QuoteNumber     string `dynamodbav:"quote_number"`
	ServiceID       string `dynamodbav:"service_id"`
	ClientID        string `dynamodbav:"client_id"`
	Status          string `dynamodbav:"status"`
	ValidUntil      string `dynamodbav:"valid_until"`
	TermsConditions string `dynamodbav:"terms_conditions"`
	Notes           string `dynamodbav:"notes,omitempty"`
	SentAt          string `dynamodbav:"sent_at,omitempty"`
	SignedAt        string `dynamodbav:"signed_at,omitempty"`
	SignatureRef    string `dynamodbav:"signature_ref,omitempty"`
	Version         int    `dynamodbav:"version"`
	CreatedAt       string `dynamodbav:"created_at"`
	UpdatedAt       string `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists quotes in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
type QuoteDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb DynamoAPI, tableName string) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	if q.Version == 0 {
		q.Version = 1
	}
	if err := putNew(ctx, r.ddb, r.tableName, "quote", q.ID, toQuoteItem(q)); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

// GetByID returns a zero quote when missing. Stored records that break the
// decision invariants are reported as errors instead of being returned.
func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	var it quoteItem
	found, err := getItem(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Quote{}, err
	}
	q := fromQuoteItem(it)
	if err := q.CheckInvariants(); err != nil {
		return entities.Quote{}, fmt.Errorf("load quote %s: %w", id, err)
	}
	return q, nil
}

func (r *QuoteDynamoRepository) Update(ctx context.Context, q entities.Quote, expectedVersion int) (entities.Quote, error) {
	q.Version = expectedVersion + 1
	if err := putIfVersion(ctx, r.ddb, r.tableName, "quote", q.ID, toQuoteItem(q), expectedVersion); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func toQuoteItem(q entities.Quote) quoteItem {
	it := quoteItem{
		ID:              q.ID,
		QuoteNumber:     q.QuoteNumber,
		ServiceID:       q.ServiceID,
		ClientID:        q.ClientID,
		Status:          string(q.Status),
		ValidUntil:      formatTime(q.ValidUntil),
		TermsConditions: q.TermsConditions,
		Notes:           q.Notes,
		SentAt:          formatTimePtr(q.SentAt),
		Version:         q.Version,
		CreatedAt:       formatTime(q.CreatedAt),
		UpdatedAt:       formatTime(q.UpdatedAt),
	}
	if q.Decision != nil {
		it.SignedAt = formatTime(q.Decision.At)
		it.SignatureRef = q.Decision.SignatureRef
	}
	return it
}

func fromQuoteItem(it quoteItem) entities.Quote {
	q := entities.Quote{
		ID:              it.ID,
		QuoteNumber:     it.QuoteNumber,
		ServiceID:       it.ServiceID,
		ClientID:        it.ClientID,
		Status:          entities.QuoteStatus(it.Status),
		ValidUntil:      parseTime(it.ValidUntil),
		TermsConditions: it.TermsConditions,
		Notes:           it.Notes,
		SentAt:          parseTimePtr(it.SentAt),
		Version:         it.Version,
		CreatedAt:       parseTime(it.CreatedAt),
		UpdatedAt:       parseTime(it.UpdatedAt),
	}
	if it.SignedAt != "" || it.SignatureRef != "" {
		q.Decision = &entities.Decision{At: parseTime(it.SignedAt), SignatureRef: it.SignatureRef}
	}
	return q
}
