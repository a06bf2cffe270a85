package usecase

import (
	"context"
	"strings"

	"fieldservice_billing/internal/domain/entities"
	"fieldservice_billing/internal/domain/gate"
	"fieldservice_billing/internal/domain/shared"
	"fieldservice_billing/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ServiceInput mirrors the business-side service record.
type ServiceInput struct {
	ID         string
	BusinessID string
	ClientID   string
	Name       string
	Status     entities.ServiceStatus
	Price      decimal.Decimal
	Currency   string
}

// ClientInput mirrors the business-side client record. Active is the raw
// upstream flag: a bool, "True"/"False", or nil.
type ClientInput struct {
	ID     string
	Name   string
	Email  string
	Active any
}

// IPartyUseCase keeps the local copies of the service and client records that
// quotes and invoices are validated against.
type IPartyUseCase interface {
	UpsertService(ctx context.Context, in ServiceInput) (entities.Service, error)
	GetService(ctx context.Context, id string) (entities.Service, error)
	UpsertClient(ctx context.Context, in ClientInput) (entities.Client, error)
	GetClient(ctx context.Context, id string) (entities.Client, error)
}

type PartyUseCase struct {
	services        interfaces.IServiceRepository
	clients         interfaces.IClientRepository
	defaultCurrency string
	options
}

var _ IPartyUseCase = (*PartyUseCase)(nil)

// NewPartyUseCase stores services without a currency in defaultCurrency,
// falling back to entities.DefaultCurrency when it is empty.
func NewPartyUseCase(services interfaces.IServiceRepository, clients interfaces.IClientRepository, defaultCurrency string, opts ...Option) *PartyUseCase {
	defaultCurrency = strings.ToUpper(strings.TrimSpace(defaultCurrency))
	if defaultCurrency == "" {
		defaultCurrency = entities.DefaultCurrency
	}
	return &PartyUseCase{services: services, clients: clients, defaultCurrency: defaultCurrency, options: newOptions(opts)}
}

func (u *PartyUseCase) UpsertService(ctx context.Context, in ServiceInput) (entities.Service, error) {
	reasons := gate.Run(
		gate.Require(strings.TrimSpace(in.ID) != "", "service_id_required", "id", "service id is required"),
		gate.Require(in.Status.IsValid(), "service_status_invalid", "status", "status must be PENDING, ACTIVE, COMPLETED or CANCELLED"),
		gate.Require(!in.Price.IsNegative(), "price_negative", "price", "price cannot be negative"),
	)
	if !gate.Passed(reasons) {
		return entities.Service{}, shared.NewValidationError(reasons)
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = u.defaultCurrency
	}

	svc, err := u.services.Upsert(ctx, entities.Service{
		ID:         strings.TrimSpace(in.ID),
		BusinessID: strings.TrimSpace(in.BusinessID),
		ClientID:   strings.TrimSpace(in.ClientID),
		Name:       strings.TrimSpace(in.Name),
		Status:     in.Status,
		Price:      in.Price,
		Currency:   currency,
		UpdatedAt:  u.clock(),
	})
	if err != nil {
		u.logger(ctx).Error("[service][usecase] upsert failed", zap.String("service_id", in.ID), zap.Error(err))
		return entities.Service{}, err
	}
	return svc, nil
}

func (u *PartyUseCase) GetService(ctx context.Context, id string) (entities.Service, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Service{}, invalidInput("service id is required")
	}
	svc, err := u.services.GetByID(ctx, id)
	if err != nil {
		return entities.Service{}, err
	}
	if svc.ID == "" {
		return entities.Service{}, notFound("service", id)
	}
	return svc, nil
}

func (u *PartyUseCase) UpsertClient(ctx context.Context, in ClientInput) (entities.Client, error) {
	if strings.TrimSpace(in.ID) == "" {
		return entities.Client{}, shared.NewValidationError([]gate.Reason{{Code: "client_id_required", Field: "id", Message: "client id is required"}})
	}
	activity, err := entities.ParseActivity(in.Active)
	if err != nil {
		return entities.Client{}, invalidInput(err.Error())
	}

	client, err := u.clients.Upsert(ctx, entities.Client{
		ID:        strings.TrimSpace(in.ID),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Activity:  activity,
		UpdatedAt: u.clock(),
	})
	if err != nil {
		u.logger(ctx).Error("[client][usecase] upsert failed", zap.String("client_id", in.ID), zap.Error(err))
		return entities.Client{}, err
	}
	return client, nil
}

func (u *PartyUseCase) GetClient(ctx context.Context, id string) (entities.Client, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Client{}, invalidInput("client id is required")
	}
	client, err := u.clients.GetByID(ctx, id)
	if err != nil {
		return entities.Client{}, err
	}
	if client.ID == "" {
		return entities.Client{}, notFound("client", id)
	}
	return client, nil
}
