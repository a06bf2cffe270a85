package repository

import (
	"context"

	"fieldservice_billing/internal/domain/entities"
	"fieldservice_billing/internal/usecase/interfaces"
)

type serviceItem struct {
	ID         string `dynamodbav:"id"`
	BusinessID string `dynamodbav:"business_id,omitempty"`
	ClientID   string `dynamodbav:"client_id,omitempty"`
	Name       string `dynamodbav:"name,omitempty"`
	Status     string `dynamodbav:"status"`
	Price      string `dynamodbav:"price"`
	Currency   string `dynamodbav:"currency"`
	UpdatedAt  string `dynamodbav:"updated_at"`
}

// ServiceDynamoRepository keeps the latest service snapshot pushed by the
// business-side workflow.
type ServiceDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IServiceRepository = (*ServiceDynamoRepository)(nil)

func NewServiceDynamoRepository(ddb DynamoAPI, tableName string) *ServiceDynamoRepository {
	return &ServiceDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *ServiceDynamoRepository) Upsert(ctx context.Context, s entities.Service) (entities.Service, error) {
	it := serviceItem{
		ID:         s.ID,
		BusinessID: s.BusinessID,
		ClientID:   s.ClientID,
		Name:       s.Name,
		Status:     string(s.Status),
		Price:      s.Price.String(),
		Currency:   s.Currency,
		UpdatedAt:  formatTime(s.UpdatedAt),
	}
	if err := putAny(ctx, r.ddb, r.tableName, it); err != nil {
		return entities.Service{}, err
	}
	return s, nil
}

func (r *ServiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Service, error) {
	var it serviceItem
	found, err := getItem(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Service{}, err
	}
	return entities.Service{
		ID:         it.ID,
		BusinessID: it.BusinessID,
		ClientID:   it.ClientID,
		Name:       it.Name,
		Status:     entities.ServiceStatus(it.Status),
		Price:      parseDecimal(it.Price),
		Currency:   it.Currency,
		UpdatedAt:  parseTime(it.UpdatedAt),
	}, nil
}

type clientItem struct {
	ID        string `dynamodbav:"id"`
	Name      string `dynamodbav:"name,omitempty"`
	Email     string `dynamodbav:"email,omitempty"`
	Activity  string `dynamodbav:"activity"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// ClientDynamoRepository stores the normalized client activity, never the raw
// upstream flag.
type ClientDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IClientRepository = (*ClientDynamoRepository)(nil)

func NewClientDynamoRepository(ddb DynamoAPI, tableName string) *ClientDynamoRepository {
	return &ClientDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *ClientDynamoRepository) Upsert(ctx context.Context, c entities.Client) (entities.Client, error) {
	it := clientItem{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Activity:  string(c.Activity),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
	if err := putAny(ctx, r.ddb, r.tableName, it); err != nil {
		return entities.Client{}, err
	}
	return c, nil
}

func (r *ClientDynamoRepository) GetByID(ctx context.Context, id string) (entities.Client, error) {
	var it clientItem
	found, err := getItem(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Client{}, err
	}
	activity, err := entities.ParseActivity(it.Activity)
	if err != nil {
		activity = entities.ClientActivityUnknown
	}
	return entities.Client{
		ID:        it.ID,
		Name:      it.Name,
		Email:     it.Email,
		Activity:  activity,
		UpdatedAt: parseTime(it.UpdatedAt),
	}, nil
}

// Repositories bundles the DynamoDB repositories for one set of tables.
type Repositories struct {
	Services *ServiceDynamoRepository
	Clients  *ClientDynamoRepository
	Quotes   *QuoteDynamoRepository
	Invoices *InvoiceDynamoRepository
	Payouts  *PayoutDynamoRepository
}

func NewRepositories(ddb DynamoAPI, t Tables) *Repositories {
	return &Repositories{
		Services: NewServiceDynamoRepository(ddb, t.Services),
		Clients:  NewClientDynamoRepository(ddb, t.Clients),
		Quotes:   NewQuoteDynamoRepository(ddb, t.Quotes),
		Invoices: NewInvoiceDynamoRepository(ddb, t.Invoices),
		Payouts:  NewPayoutDynamoRepository(ddb, t.Payouts),
	}
}
