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

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// refundLockTTL bounds how long a crashed refund request can block the next.
const refundLockTTL = 2 * time.Minute

// PayoutView is a payout with its display-only figures.
type PayoutView struct {
	entities.Payout
	Refunded        decimal.Decimal
	Refundable      decimal.Decimal
	FullyRefunded   bool
	IllustrativeNet decimal.Decimal
}

// IPayoutUseCase manages the payout of a paid invoice and its refunds.
type IPayoutUseCase interface {
	CreateFromInvoice(ctx context.Context, invoiceID string) (entities.Payout, error)
	Get(ctx context.Context, id string) (entities.Payout, error)
	GetByInvoice(ctx context.Context, invoiceID string) (entities.Payout, error)
	View(p entities.Payout) PayoutView
	RequestRefund(ctx context.Context, payoutID string, amount decimal.Decimal, reason string) (entities.Payout, error)
}

type PayoutUseCase struct {
	payouts    interfaces.IPayoutRepository
	invoices   interfaces.IInvoiceRepository
	gateway    interfaces.IPaymentGateway
	locks      interfaces.IChargeLedger
	feePercent decimal.Decimal
	options
}

var _ IPayoutUseCase = (*PayoutUseCase)(nil)

// NewPayoutUseCase wires the payout ledger. locks serializes refunds per
// payout; feePercent only feeds IllustrativeNet.
func NewPayoutUseCase(
	payouts interfaces.IPayoutRepository,
	invoices interfaces.IInvoiceRepository,
	gateway interfaces.IPaymentGateway,
	locks interfaces.IChargeLedger,
	feePercent decimal.Decimal,
	opts ...Option,
) *PayoutUseCase {
	return &PayoutUseCase{
		payouts:    payouts,
		invoices:   invoices,
		gateway:    gateway,
		locks:      locks,
		feePercent: feePercent,
		options:    newOptions(opts),
	}
}

// CreateFromInvoice runs once per PAID invoice. Repeating it returns the
// payout that already exists.
func (u *PayoutUseCase) CreateFromInvoice(ctx context.Context, invoiceID string) (entities.Payout, error) {
	inv, err := loadInvoice(ctx, u.invoices, invoiceID)
	if err != nil {
		return entities.Payout{}, err
	}
	return u.createFor(ctx, inv)
}

func (u *PayoutUseCase) createFor(ctx context.Context, inv entities.Invoice) (p entities.Payout, err error) {
	defer func() { u.observe("payout", "create", err) }()

	p, err = entities.NewPayoutFromInvoice(inv, u.clock())
	if err != nil {
		return entities.Payout{}, err
	}
	created, err := u.payouts.Create(ctx, p)
	if errors.Is(err, shared.ErrAlreadyExists) {
		existing, gerr := u.payouts.GetByID(ctx, p.ID)
		if gerr != nil {
			return entities.Payout{}, gerr
		}
		return existing, nil
	}
	if err != nil {
		return entities.Payout{}, err
	}
	u.invalidate(ctx, cache.PayoutCreated, cache.Refs{InvoiceID: inv.ID, PayoutID: created.ID})
	u.logger(ctx).Info("[payout][usecase] created",
		zap.String("payout_id", created.ID),
		zap.String("invoice_id", inv.ID),
		zap.String("amount", created.Amount.StringFixed(2)))
	return created, nil
}

func (u *PayoutUseCase) Get(ctx context.Context, id string) (entities.Payout, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payout{}, invalidInput("payout id is required")
	}
	p, err := cached(ctx, u.options, cache.PayoutKey(id),
		func() (entities.Payout, error) { return u.payouts.GetByID(ctx, id) },
		func(p entities.Payout) bool { return p.ID != "" })
	if err != nil {
		return entities.Payout{}, err
	}
	if p.ID == "" {
		return entities.Payout{}, notFound("payout", id)
	}
	return p, nil
}

func (u *PayoutUseCase) GetByInvoice(ctx context.Context, invoiceID string) (entities.Payout, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return entities.Payout{}, invalidInput("invoice id is required")
	}
	p, err := cached(ctx, u.options, cache.PayoutByInvoiceKey(invoiceID),
		func() (entities.Payout, error) { return u.payouts.GetByInvoiceID(ctx, invoiceID) },
		func(p entities.Payout) bool { return p.ID != "" })
	if err != nil {
		return entities.Payout{}, err
	}
	if p.ID == "" {
		return entities.Payout{}, notFound("payout for invoice", invoiceID)
	}
	return p, nil
}

func (u *PayoutUseCase) View(p entities.Payout) PayoutView {
	return PayoutView{
		Payout:          p,
		Refunded:        p.RefundedTotal(),
		Refundable:      p.Refundable(),
		FullyRefunded:   p.FullyRefunded(),
		IllustrativeNet: p.IllustrativeNet(u.feePercent),
	}
}

// RequestRefund checks the bound locally, asks the processor, then appends
// the approved refund. Refunds of one payout are serialized through the lock
// ledger so two requests cannot both pass the bound on the same balance.
func (u *PayoutUseCase) RequestRefund(ctx context.Context, payoutID string, amount decimal.Decimal, reason string) (p entities.Payout, err error) {
	log := u.logger(ctx)
	defer func() {
		value, _ := amount.Float64()
		u.metrics.Refund(outcome(err), value)
		u.observe("payout", "refund", err)
	}()

	p, err = loadPayout(ctx, u.payouts, payoutID)
	if err != nil {
		return entities.Payout{}, err
	}
	if err := p.CheckRefund(amount); err != nil {
		return entities.Payout{}, err
	}

	key := cache.RefundKey(p.ID)
	ok, err := u.locks.Reserve(ctx, key, refundLockTTL)
	if err != nil {
		return entities.Payout{}, err
	}
	if !ok {
		return entities.Payout{}, fmt.Errorf("%w: a refund for payout %s is already in progress", shared.ErrConflict, p.ID)
	}
	defer func() {
		if rerr := u.locks.Release(context.WithoutCancel(ctx), key); rerr != nil {
			log.Warn("[payout][usecase] refund lock release failed", zap.String("key", key), zap.Error(rerr))
		}
	}()

	// Re-read under the lock: a refund that finished meanwhile lowers the balance.
	p, err = loadPayout(ctx, u.payouts, p.ID)
	if err != nil {
		return entities.Payout{}, err
	}
	if err := p.CheckRefund(amount); err != nil {
		return entities.Payout{}, err
	}

	res, err := u.gateway.Refund(ctx, p.PaymentReference, amount, reason)
	if err != nil {
		log.Warn("[payout][usecase] processor refused refund",
			zap.String("payout_id", p.ID),
			zap.String("amount", amount.StringFixed(2)),
			zap.Error(err))
		return entities.Payout{}, shared.Upstream("payment processor", err)
	}

	record := entities.RefundRecord{
		ID:               uuid.NewString(),
		Amount:           amount,
		Reason:           reason,
		ProviderRefundID: res.ID,
	}
	for attempt := 1; ; attempt++ {
		now := u.clock()
		record.ApprovedAt = now
		read := p.Version
		if err = p.AddRefund(record, now); err != nil {
			break
		}
		p, err = u.payouts.Update(ctx, p, read)
		if err == nil {
			u.invalidate(ctx, cache.PayoutRefunded, cache.Refs{InvoiceID: p.InvoiceID, PayoutID: p.ID})
			log.Info("[payout][usecase] refund recorded",
				zap.String("payout_id", p.ID),
				zap.String("provider_refund_id", res.ID),
				zap.String("amount", amount.StringFixed(2)))
			return p, nil
		}
		if !errors.Is(err, shared.ErrConflict) || attempt == commitAttempts {
			break
		}
		if p, err = loadPayout(ctx, u.payouts, payoutID); err != nil {
			break
		}
	}
	log.Error("[payout][usecase] refund approved upstream but not recorded",
		zap.String("payout_id", payoutID),
		zap.String("provider_refund_id", res.ID),
		zap.String("amount", amount.StringFixed(2)),
		zap.Error(err))
	return entities.Payout{}, err
}

func loadPayout(ctx context.Context, repo interfaces.IPayoutRepository, id string) (entities.Payout, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payout{}, invalidInput("payout id is required")
	}
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payout{}, err
	}
	if p.ID == "" {
		return entities.Payout{}, notFound("payout", id)
	}
	return p, nil
}
