package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fieldservice_billing/internal/domain/entities"
	"fieldservice_billing/internal/domain/shared"
	"fieldservice_billing/internal/infrastructure/cache"
	"fieldservice_billing/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvoiceDefaults fill the fields a caller leaves out when invoicing a quote.
type InvoiceDefaults struct {
	TaxRate decimal.Decimal
	DueDays int
}

// editHold bounds how long an edit keeps the charge key.
const editHold = 30 * time.Second

// CreateInvoiceInput overrides InvoiceDefaults when set.
type CreateInvoiceInput struct {
	DueDate *time.Time
	TaxRate *decimal.Decimal
}

// UpdateInvoiceInput carries the edit and, when non-zero, the version the
// caller last saw.
type UpdateInvoiceInput struct {
	Edit    entities.InvoiceEdit
	Version int
}

// IInvoiceUseCase drives the invoice lifecycle up to payment. Charging lives in
// the workflow coordinator.
type IInvoiceUseCase interface {
	CreateFromQuote(ctx context.Context, quoteID string, in CreateInvoiceInput) (entities.Invoice, error)
	Get(ctx context.Context, id string) (entities.Invoice, error)
	GetByQuote(ctx context.Context, quoteID string) (entities.Invoice, error)
	Update(ctx context.Context, id string, in UpdateInvoiceInput) (entities.Invoice, error)
	Send(ctx context.Context, id string) (entities.Invoice, error)
	Cancel(ctx context.Context, id string) (entities.Invoice, error)
}

type InvoiceUseCase struct {
	invoices interfaces.IInvoiceRepository
	quotes   interfaces.IQuoteRepository
	services interfaces.IServiceRepository
	ledger   interfaces.IChargeLedger
	defaults InvoiceDefaults
	options
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(
	invoices interfaces.IInvoiceRepository,
	quotes interfaces.IQuoteRepository,
	services interfaces.IServiceRepository,
	ledger interfaces.IChargeLedger,
	defaults InvoiceDefaults,
	opts ...Option,
) *InvoiceUseCase {
	if defaults.DueDays <= 0 {
		defaults.DueDays = 30
	}
	return &InvoiceUseCase{
		invoices: invoices,
		quotes:   quotes,
		services: services,
		ledger:   ledger,
		defaults: defaults,
		options:  newOptions(opts),
	}
}

// CreateFromQuote bills a SIGNED quote. The invoice copies the service price
// and currency as they are now; later service changes never reach it. The
// invoice id is derived from the quote id, so a second call fails with
// shared.ErrAlreadyExists.
func (u *InvoiceUseCase) CreateFromQuote(ctx context.Context, quoteID string, in CreateInvoiceInput) (inv entities.Invoice, err error) {
	defer func() { u.observe("invoice", "create", err) }()
	log := u.logger(ctx)

	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Invoice{}, invalidInput("quote id is required")
	}
	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if q.ID == "" {
		return entities.Invoice{}, notFound("quote", quoteID)
	}
	existing, err := u.invoices.GetByQuoteID(ctx, q.ID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if existing.ID != "" {
		return entities.Invoice{}, alreadyInvoiced(q.ID, existing.ID)
	}
	svc, err := u.services.GetByID(ctx, q.ServiceID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if svc.ID == "" {
		return entities.Invoice{}, notFound("service", q.ServiceID)
	}

	now := u.clock()
	due := now.AddDate(0, 0, u.defaults.DueDays)
	if in.DueDate != nil {
		due = *in.DueDate
	}
	rate := u.defaults.TaxRate
	if in.TaxRate != nil {
		rate = *in.TaxRate
	}

	id := entities.InvoiceIDForQuote(q.ID)
	inv, err = entities.NewInvoiceFromQuote(id, entities.DocumentNumber("INV", now, id), q, svc, due, rate, now)
	if err != nil {
		return entities.Invoice{}, err
	}
	inv, err = u.invoices.Create(ctx, inv)
	if err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return entities.Invoice{}, alreadyInvoiced(q.ID, id)
		}
		log.Error("[invoice][usecase] create failed", zap.String("quote_id", q.ID), zap.Error(err))
		return entities.Invoice{}, err
	}
	u.invalidate(ctx, cache.InvoiceCreated, cache.Refs{QuoteID: q.ID, InvoiceID: inv.ID})
	log.Info("[invoice][usecase] created",
		zap.String("invoice_id", inv.ID),
		zap.String("quote_id", q.ID),
		zap.String("total_amount", inv.TotalAmount.StringFixed(2)),
		zap.String("currency", inv.Currency))
	return inv, nil
}

func (u *InvoiceUseCase) Get(ctx context.Context, id string) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, invalidInput("invoice id is required")
	}
	inv, err := cached(ctx, u.options, cache.InvoiceKey(id),
		func() (entities.Invoice, error) { return u.invoices.GetByID(ctx, id) },
		func(inv entities.Invoice) bool { return inv.ID != "" })
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, notFound("invoice", id)
	}
	return inv, nil
}

func (u *InvoiceUseCase) GetByQuote(ctx context.Context, quoteID string) (entities.Invoice, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Invoice{}, invalidInput("quote id is required")
	}
	inv, err := cached(ctx, u.options, cache.InvoiceByQuoteKey(quoteID),
		func() (entities.Invoice, error) { return u.invoices.GetByQuoteID(ctx, quoteID) },
		func(inv entities.Invoice) bool { return inv.ID != "" })
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, notFound("invoice for quote", quoteID)
	}
	return inv, nil
}

func (u *InvoiceUseCase) load(ctx context.Context, id string) (entities.Invoice, error) {
	return loadInvoice(ctx, u.invoices, id)
}

func (u *InvoiceUseCase) Update(ctx context.Context, id string, in UpdateInvoiceInput) (inv entities.Invoice, err error) {
	defer func() { u.observe("invoice", "update", err) }()

	inv, err = u.load(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if in.Version != 0 && in.Version != inv.Version {
		return entities.Invoice{}, staleVersion("invoice", inv.ID, in.Version, inv.Version)
	}
	return u.commit(ctx, inv, cache.InvoiceUpdated, true, func(inv *entities.Invoice, now time.Time) error {
		return inv.ApplyEdit(in.Edit, now)
	})
}

func (u *InvoiceUseCase) Send(ctx context.Context, id string) (inv entities.Invoice, err error) {
	defer func() { u.observe("invoice", "send", err) }()

	inv, err = u.load(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	return u.commit(ctx, inv, cache.InvoiceSent, false, (*entities.Invoice).MarkSent)
}

func (u *InvoiceUseCase) Cancel(ctx context.Context, id string) (inv entities.Invoice, err error) {
	defer func() { u.observe("invoice", "cancel", err) }()

	inv, err = u.load(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	return u.commit(ctx, inv, cache.InvoiceCancelled, true, (*entities.Invoice).MarkCancelled)
}

// commit applies change to inv and writes it against the version it was read
// at. Changes that alter what a charge would collect (hold) are refused while
// a charge holds the invoice charge key.
func (u *InvoiceUseCase) commit(ctx context.Context, inv entities.Invoice, m cache.Mutation, hold bool, change func(*entities.Invoice, time.Time) error) (entities.Invoice, error) {
	read := inv.Version
	if err := change(&inv, u.clock()); err != nil {
		return entities.Invoice{}, err
	}
	if hold {
		release, err := u.holdCharge(ctx, inv.ID)
		if err != nil {
			return entities.Invoice{}, err
		}
		defer release()
	}
	inv, err := u.invoices.Update(ctx, inv, read)
	if err != nil {
		return entities.Invoice{}, err
	}
	u.invalidate(ctx, m, cache.Refs{QuoteID: inv.QuoteID, InvoiceID: inv.ID})
	u.logger(ctx).Info("[invoice][usecase] committed",
		zap.String("invoice_id", inv.ID),
		zap.String("mutation", string(m)),
		zap.String("status", string(inv.Status)),
		zap.Int("version", inv.Version))
	return inv, nil
}

// holdCharge reserves the charge key for the length of an edit so no charge
// starts against an amount that is about to change.
func (u *InvoiceUseCase) holdCharge(ctx context.Context, id string) (func(), error) {
	key := cache.ChargeKey(id)
	ok, err := u.ledger.Reserve(ctx, key, editHold)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: a payment for invoice %s is in progress", shared.ErrConflict, id)
	}
	return func() {
		if err := u.ledger.Release(context.WithoutCancel(ctx), key); err != nil {
			u.logger(ctx).Warn("[invoice][usecase] charge key release failed", zap.String("key", key), zap.Error(err))
		}
	}, nil
}

func loadInvoice(ctx context.Context, repo interfaces.IInvoiceRepository, id string) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, invalidInput("invoice id is required")
	}
	inv, err := repo.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, notFound("invoice", id)
	}
	return inv, nil
}
