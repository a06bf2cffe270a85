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

// IWorkflowCoordinator runs the steps that cross document boundaries.
type IWorkflowCoordinator interface {
	CreateInvoiceFromQuote(ctx context.Context, quoteID string, in CreateInvoiceInput) (entities.Invoice, error)
	MarkInvoicePaid(ctx context.Context, invoiceID, paymentMethodRef string) (entities.Invoice, entities.Payout, error)
	RecordPayoutStatus(ctx context.Context, payoutID string, status entities.PayoutStatus, failureReason string) (entities.Payout, error)
}

type WorkflowCoordinator struct {
	invoiceUC *InvoiceUseCase
	payoutUC  *PayoutUseCase
	invoices  interfaces.IInvoiceRepository
	payouts   interfaces.IPayoutRepository
	clients   interfaces.IClientRepository
	gateway   interfaces.IPaymentGateway
	ledger    interfaces.IChargeLedger
	chargeTTL time.Duration
	options
}

var _ IWorkflowCoordinator = (*WorkflowCoordinator)(nil)

// NewWorkflowCoordinator wires the cross-document flows. chargeTTL is how long
// a confirmed payment reference is remembered under the invoice charge key.
func NewWorkflowCoordinator(
	invoiceUC *InvoiceUseCase,
	payoutUC *PayoutUseCase,
	invoices interfaces.IInvoiceRepository,
	payouts interfaces.IPayoutRepository,
	clients interfaces.IClientRepository,
	gateway interfaces.IPaymentGateway,
	ledger interfaces.IChargeLedger,
	chargeTTL time.Duration,
	opts ...Option,
) *WorkflowCoordinator {
	if chargeTTL <= 0 {
		chargeTTL = 24 * time.Hour
	}
	return &WorkflowCoordinator{
		invoiceUC: invoiceUC,
		payoutUC:  payoutUC,
		invoices:  invoices,
		payouts:   payouts,
		clients:   clients,
		gateway:   gateway,
		ledger:    ledger,
		chargeTTL: chargeTTL,
		options:   newOptions(opts),
	}
}

func (w *WorkflowCoordinator) CreateInvoiceFromQuote(ctx context.Context, quoteID string, in CreateInvoiceInput) (entities.Invoice, error) {
	return w.invoiceUC.CreateFromQuote(ctx, quoteID, in)
}

// MarkInvoicePaid charges the invoice, commits PAID and opens its payout.
//
// The confirmed payment reference is remembered under the invoice charge key
// before the invoice is written, so a retry after a failed commit reuses it
// instead of charging again. A charge whose invoice changed or was cancelled
// before the commit is refunded and the call fails with shared.ErrConflict.
func (w *WorkflowCoordinator) MarkInvoicePaid(ctx context.Context, invoiceID, paymentMethodRef string) (inv entities.Invoice, p entities.Payout, err error) {
	defer func() { w.observe("invoice", "pay", err) }()
	log := w.logger(ctx)

	inv, err = loadInvoice(ctx, w.invoices, invoiceID)
	if err != nil {
		return entities.Invoice{}, entities.Payout{}, err
	}
	if inv.Status == entities.InvoiceStatusPaid {
		p, err = w.payoutUC.createFor(ctx, inv)
		return inv, p, err
	}
	if err := inv.CanBePaid(); err != nil {
		return entities.Invoice{}, entities.Payout{}, err
	}
	if strings.TrimSpace(paymentMethodRef) == "" {
		return entities.Invoice{}, entities.Payout{}, invalidInput("payment method is required")
	}

	c, err := w.charge(ctx, inv, paymentMethodRef)
	if err != nil {
		return entities.Invoice{}, entities.Payout{}, err
	}
	ref := c.ref

	inv, err = w.commitPaid(ctx, inv.ID, c)
	if err != nil {
		log.Error("[invoice][coordinator] charge confirmed but invoice not committed",
			zap.String("invoice_id", invoiceID),
			zap.String("payment_reference", ref),
			zap.Error(err))
		return entities.Invoice{}, entities.Payout{}, err
	}
	w.invalidate(ctx, cache.InvoicePaid, cache.Refs{QuoteID: inv.QuoteID, InvoiceID: inv.ID})
	log.Info("[invoice][coordinator] paid",
		zap.String("invoice_id", inv.ID),
		zap.String("payment_reference", ref),
		zap.String("total_amount", inv.TotalAmount.StringFixed(2)))

	p, err = w.payoutUC.createFor(ctx, inv)
	if err != nil {
		return inv, entities.Payout{}, err
	}
	return inv, p, nil
}

// confirmedCharge is what the processor collected for an invoice.
type confirmedCharge struct {
	ref      string
	amount   decimal.Decimal
	currency string
}

// charge collects inv's total, reusing a confirmed charge. While the charge key
// is held no edit can change the invoice, so the amount is taken from a read
// made after the key was won.
func (w *WorkflowCoordinator) charge(ctx context.Context, inv entities.Invoice, methodRef string) (confirmedCharge, error) {
	log := w.logger(ctx)
	key := cache.ChargeKey(inv.ID)
	reused := func(ref string) confirmedCharge {
		log.Info("[invoice][coordinator] reusing confirmed charge", zap.String("invoice_id", inv.ID), zap.String("payment_reference", ref))
		return confirmedCharge{ref: ref, amount: inv.TotalAmount, currency: inv.Currency}
	}

	if ref, ok, err := w.ledger.Lookup(ctx, key); err != nil {
		return confirmedCharge{}, err
	} else if ok {
		return reused(ref), nil
	}

	reserved, err := w.ledger.Reserve(ctx, key, w.chargeTTL)
	if err != nil {
		return confirmedCharge{}, err
	}
	if !reserved {
		if ref, ok, err := w.ledger.Lookup(ctx, key); err == nil && ok {
			return reused(ref), nil
		}
		return confirmedCharge{}, fmt.Errorf("%w: a charge or edit for invoice %s is already in progress", shared.ErrConflict, inv.ID)
	}

	release := func() {
		if rerr := w.ledger.Release(context.WithoutCancel(ctx), key); rerr != nil {
			log.Warn("[invoice][coordinator] charge key release failed", zap.String("key", key), zap.Error(rerr))
		}
	}

	inv, err = loadInvoice(ctx, w.invoices, inv.ID)
	if err == nil {
		err = inv.CanBePaid()
	}
	if err != nil {
		release()
		return confirmedCharge{}, err
	}
	client, err := w.clients.GetByID(ctx, inv.ClientID)
	if err != nil {
		release()
		return confirmedCharge{}, err
	}
	intent, err := w.gateway.CreatePaymentIntent(ctx, interfaces.PaymentIntentRequest{
		InvoiceID:      inv.ID,
		Amount:         inv.TotalAmount,
		Currency:       inv.Currency,
		Description:    "Invoice " + inv.InvoiceNumber,
		PayerEmail:     client.Email,
		IdempotencyKey: key,
	})
	if err != nil {
		release()
		log.Warn("[invoice][coordinator] payment intent failed", zap.String("invoice_id", inv.ID), zap.Error(err))
		return confirmedCharge{}, shared.Upstream("payment processor", err)
	}
	conf, err := w.gateway.ConfirmPayment(ctx, intent.ID, methodRef)
	if err != nil {
		release()
		log.Warn("[invoice][coordinator] payment confirmation failed", zap.String("invoice_id", inv.ID), zap.Error(err))
		return confirmedCharge{}, shared.Upstream("payment processor", err)
	}
	if conf.Reference == "" {
		release()
		return confirmedCharge{}, &shared.UpstreamError{Source: "payment processor", Detail: "confirmation carried no payment reference"}
	}

	if err := w.ledger.Complete(context.WithoutCancel(ctx), key, conf.Reference, w.chargeTTL); err != nil {
		log.Error("[invoice][coordinator] charge ledger write failed",
			zap.String("invoice_id", inv.ID),
			zap.String("payment_reference", conf.Reference),
			zap.Error(err))
	}
	return confirmedCharge{ref: conf.Reference, amount: inv.TotalAmount, currency: inv.Currency}, nil
}

// commitPaid writes PAID with the charge reference, re-reading on conflicts. A
// concurrent commit of the same reference counts as success. An invoice that
// no longer matches what was collected is not marked paid; the charge is
// refunded instead.
func (w *WorkflowCoordinator) commitPaid(ctx context.Context, id string, c confirmedCharge) (entities.Invoice, error) {
	var err error
	for attempt := 1; attempt <= commitAttempts; attempt++ {
		var inv entities.Invoice
		inv, err = loadInvoice(ctx, w.invoices, id)
		if err != nil {
			return entities.Invoice{}, err
		}
		if inv.Status == entities.InvoiceStatusPaid && inv.PaymentReference == c.ref {
			return inv, nil
		}
		if !inv.TotalAmount.Equal(c.amount) || inv.Currency != c.currency {
			return entities.Invoice{}, w.compensate(ctx, inv, c,
				fmt.Sprintf("its total changed to %s %s", inv.TotalAmount.StringFixed(2), inv.Currency))
		}
		read := inv.Version
		if merr := inv.MarkPaid(c.ref, w.clock()); merr != nil {
			return entities.Invoice{}, w.compensate(ctx, inv, c, merr.Error())
		}
		inv, err = w.invoices.Update(ctx, inv, read)
		if err == nil {
			return inv, nil
		}
		if !errors.Is(err, shared.ErrConflict) {
			return entities.Invoice{}, err
		}
	}
	return entities.Invoice{}, err
}

// compensate refunds a confirmed charge the invoice can no longer take. On a
// successful refund the charge key is dropped so the invoice can be paid again
// and the caller gets shared.ErrConflict naming the refunded payment. A failed
// refund is an upstream failure that still carries the payment reference.
func (w *WorkflowCoordinator) compensate(ctx context.Context, inv entities.Invoice, c confirmedCharge, why string) error {
	log := w.logger(ctx)
	ctx = context.WithoutCancel(ctx)
	res, err := w.gateway.Refund(ctx, c.ref, c.amount, "invoice changed during payment")
	if err != nil {
		log.Error("[invoice][coordinator] compensating refund failed",
			zap.String("invoice_id", inv.ID),
			zap.String("payment_reference", c.ref),
			zap.String("amount", c.amount.StringFixed(2)),
			zap.Error(err))
		return &shared.UpstreamError{
			Source: "payment processor",
			Detail: fmt.Sprintf("payment %s for invoice %s was captured but not applied (%s) and its refund failed: %v", c.ref, inv.ID, why, err),
			Err:    err,
		}
	}
	if ferr := w.ledger.Forget(ctx, cache.ChargeKey(inv.ID)); ferr != nil {
		log.Warn("[invoice][coordinator] charge key forget failed", zap.String("invoice_id", inv.ID), zap.Error(ferr))
	}
	log.Warn("[invoice][coordinator] charge refunded, invoice changed during payment",
		zap.String("invoice_id", inv.ID),
		zap.String("payment_reference", c.ref),
		zap.String("refund_id", res.ID),
		zap.String("reason", why))
	return fmt.Errorf("%w: invoice %s changed during payment (%s); payment %s was refunded as %s",
		shared.ErrConflict, inv.ID, why, c.ref, res.ID)
}

// RecordPayoutStatus applies a processor status update and, once the payout
// is PAID, flags the invoice so it stays locked.
func (w *WorkflowCoordinator) RecordPayoutStatus(ctx context.Context, payoutID string, status entities.PayoutStatus, failureReason string) (p entities.Payout, err error) {
	defer func() { w.observe("payout", "status", err) }()
	log := w.logger(ctx)

	p, err = loadPayout(ctx, w.payouts, payoutID)
	if err != nil {
		return entities.Payout{}, err
	}
	read := p.Version
	changed, err := p.RecordStatus(status, failureReason, w.clock())
	if err != nil {
		return entities.Payout{}, err
	}
	if changed {
		p, err = w.payouts.Update(ctx, p, read)
		if err != nil {
			return entities.Payout{}, err
		}
		w.invalidate(ctx, cache.PayoutStatus, cache.Refs{InvoiceID: p.InvoiceID, PayoutID: p.ID})
		log.Info("[payout][coordinator] status recorded",
			zap.String("payout_id", p.ID),
			zap.String("status", string(p.Status)),
			zap.String("failure_reason", p.FailureReason))
	}

	if p.Status == entities.PayoutStatusPaid {
		if err := w.flagPayoutPaid(ctx, p.InvoiceID); err != nil {
			log.Error("[payout][coordinator] invoice flag failed", zap.String("invoice_id", p.InvoiceID), zap.Error(err))
			return entities.Payout{}, err
		}
	}
	return p, nil
}

func (w *WorkflowCoordinator) flagPayoutPaid(ctx context.Context, invoiceID string) error {
	var err error
	for attempt := 1; attempt <= commitAttempts; attempt++ {
		var inv entities.Invoice
		inv, err = loadInvoice(ctx, w.invoices, invoiceID)
		if err != nil {
			return err
		}
		read := inv.Version
		if !inv.MarkPayoutPaid(w.clock()) {
			return nil
		}
		inv, err = w.invoices.Update(ctx, inv, read)
		if err == nil {
			w.invalidate(ctx, cache.InvoicePayoutPaid, cache.Refs{QuoteID: inv.QuoteID, InvoiceID: inv.ID})
			return nil
		}
		if !errors.Is(err, shared.ErrConflict) {
			return err
		}
	}
	return err
}
