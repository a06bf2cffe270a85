package memory

import (
	"context"

	"fieldservice_billing/internal/domain/entities"
	"fieldservice_billing/internal/usecase/interfaces"
)

// Store bundles the in-memory repositories.
type Store struct {
	Services *ServiceRepository
	Clients  *ClientRepository
	Quotes   *QuoteRepository
	Invoices *InvoiceRepository
	Payouts  *PayoutRepository
}

func NewStore() *Store {
	return &Store{
		Services: &ServiceRepository{t: newTable("service", func(s entities.Service) entities.Service { return s },
			func(entities.Service) int { return 1 }, func(*entities.Service, int) {})},
		Clients: &ClientRepository{t: newTable("client", func(c entities.Client) entities.Client { return c },
			func(entities.Client) int { return 1 }, func(*entities.Client, int) {})},
		Quotes: &QuoteRepository{t: newTable("quote", cloneQuote,
			func(q entities.Quote) int { return q.Version }, func(q *entities.Quote, v int) { q.Version = v })},
		Invoices: &InvoiceRepository{t: newTable("invoice", cloneInvoice,
			func(i entities.Invoice) int { return i.Version }, func(i *entities.Invoice, v int) { i.Version = v })},
		Payouts: &PayoutRepository{t: newTable("payout", clonePayout,
			func(p entities.Payout) int { return p.Version }, func(p *entities.Payout, v int) { p.Version = v })},
	}
}

type ServiceRepository struct{ t *table[entities.Service] }

var _ interfaces.IServiceRepository = (*ServiceRepository)(nil)

func (r *ServiceRepository) Upsert(_ context.Context, s entities.Service) (entities.Service, error) {
	return r.t.put(s.ID, s), nil
}

func (r *ServiceRepository) GetByID(_ context.Context, id string) (entities.Service, error) {
	s, _ := r.t.get(id)
	return s, nil
}

type ClientRepository struct{ t *table[entities.Client] }

var _ interfaces.IClientRepository = (*ClientRepository)(nil)

func (r *ClientRepository) Upsert(_ context.Context, c entities.Client) (entities.Client, error) {
	return r.t.put(c.ID, c), nil
}

func (r *ClientRepository) GetByID(_ context.Context, id string) (entities.Client, error) {
	c, _ := r.t.get(id)
	return c, nil
}

type QuoteRepository struct{ t *table[entities.Quote] }

var _ interfaces.IQuoteRepository = (*QuoteRepository)(nil)

func (r *QuoteRepository) Create(_ context.Context, q entities.Quote) (entities.Quote, error) {
	return r.t.create(q.ID, q, nil)
}

func (r *QuoteRepository) GetByID(_ context.Context, id string) (entities.Quote, error) {
	q, _ := r.t.get(id)
	return q, nil
}

func (r *QuoteRepository) Update(_ context.Context, q entities.Quote, expectedVersion int) (entities.Quote, error) {
	return r.t.update(q.ID, q, expectedVersion)
}

type InvoiceRepository struct{ t *table[entities.Invoice] }

var _ interfaces.IInvoiceRepository = (*InvoiceRepository)(nil)

// Create enforces one invoice per quote.
func (r *InvoiceRepository) Create(_ context.Context, inv entities.Invoice) (entities.Invoice, error) {
	return r.t.create(inv.ID, inv, func(existing entities.Invoice) bool {
		return existing.QuoteID != inv.QuoteID
	})
}

func (r *InvoiceRepository) GetByID(_ context.Context, id string) (entities.Invoice, error) {
	inv, _ := r.t.get(id)
	return inv, nil
}

func (r *InvoiceRepository) GetByQuoteID(_ context.Context, quoteID string) (entities.Invoice, error) {
	inv, _ := r.t.find(func(i entities.Invoice) bool { return i.QuoteID == quoteID })
	return inv, nil
}

func (r *InvoiceRepository) Update(_ context.Context, inv entities.Invoice, expectedVersion int) (entities.Invoice, error) {
	return r.t.update(inv.ID, inv, expectedVersion)
}

type PayoutRepository struct{ t *table[entities.Payout] }

var _ interfaces.IPayoutRepository = (*PayoutRepository)(nil)

func (r *PayoutRepository) Create(_ context.Context, p entities.Payout) (entities.Payout, error) {
	return r.t.create(p.ID, p, func(existing entities.Payout) bool {
		return existing.InvoiceID != p.InvoiceID
	})
}

func (r *PayoutRepository) GetByID(_ context.Context, id string) (entities.Payout, error) {
	p, _ := r.t.get(id)
	return p, nil
}

func (r *PayoutRepository) GetByInvoiceID(_ context.Context, invoiceID string) (entities.Payout, error) {
	p, _ := r.t.find(func(p entities.Payout) bool { return p.InvoiceID == invoiceID })
	return p, nil
}

func (r *PayoutRepository) Update(_ context.Context, p entities.Payout, expectedVersion int) (entities.Payout, error) {
	return r.t.update(p.ID, p, expectedVersion)
}

func cloneQuote(q entities.Quote) entities.Quote {
	if q.SentAt != nil {
		at := *q.SentAt
		q.SentAt = &at
	}
	if q.Decision != nil {
		d := *q.Decision
		q.Decision = &d
	}
	return q
}

func cloneInvoice(i entities.Invoice) entities.Invoice {
	if i.PaidAt != nil {
		at := *i.PaidAt
		i.PaidAt = &at
	}
	return i
}

func clonePayout(p entities.Payout) entities.Payout {
	p.Refunds = append([]entities.RefundRecord{}, p.Refunds...)
	return p
}
