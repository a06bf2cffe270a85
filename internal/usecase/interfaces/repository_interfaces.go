package interfaces

import (
	"context"

	"fieldservice_billing/internal/domain/entities"
)

// Repositories return a zero-value entity and a nil error when the record is
// missing. Create fails with shared.ErrAlreadyExists on a duplicate id. Update
// commits only if the stored version still equals expectedVersion, otherwise
// it fails with shared.ErrConflict; the stored record gets expectedVersion+1.

type IServiceRepository interface {
	Upsert(ctx context.Context, s entities.Service) (entities.Service, error)
	GetByID(ctx context.Context, id string) (entities.Service, error)
}

type IClientRepository interface {
	Upsert(ctx context.Context, c entities.Client) (entities.Client, error)
	GetByID(ctx context.Context, id string) (entities.Client, error)
}

type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	Update(ctx context.Context, q entities.Quote, expectedVersion int) (entities.Quote, error)
}

type IInvoiceRepository interface {
	Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	GetByQuoteID(ctx context.Context, quoteID string) (entities.Invoice, error)
	Update(ctx context.Context, inv entities.Invoice, expectedVersion int) (entities.Invoice, error)
}

type IPayoutRepository interface {
	Create(ctx context.Context, p entities.Payout) (entities.Payout, error)
	GetByID(ctx context.Context, id string) (entities.Payout, error)
	GetByInvoiceID(ctx context.Context, invoiceID string) (entities.Payout, error)
	Update(ctx context.Context, p entities.Payout, expectedVersion int) (entities.Payout, error)
}
