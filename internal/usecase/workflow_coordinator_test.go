package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"fieldservice_billing/internal/domain/entities"
	"fieldservice_billing/internal/domain/shared"
	"fieldservice_billing/internal/infrastructure/cache"
	"fieldservice_billing/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func (f *fixture) expectCharge(ref string) {
	f.gateway.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req interfaces.PaymentIntentRequest) (interfaces.PaymentIntent, error) {
			return interfaces.PaymentIntent{ID: "pi-" + req.InvoiceID, Status: "pending"}, nil
		})
	f.gateway.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any(), "tok_visa").
		Return(interfaces.PaymentConfirmation{Reference: ref, Status: "approved"}, nil)
}

// paidInvoice returns an invoice for subtotal (no tax) that has been charged.
func (f *fixture) paidInvoice(t *testing.T, subtotal string) (entities.Invoice, entities.Payout) {
	t.Helper()
	inv := f.draftInvoice(t)
	s := decimal.RequireFromString(subtotal)
	zero := decimal.Zero
	_, err := f.invoices.Update(f.ctx, inv.ID, UpdateInvoiceInput{Edit: entities.InvoiceEdit{Subtotal: &s, TaxRate: &zero}})
	require.NoError(t, err)

	f.expectCharge("pay-1")
	inv, p, err := f.flow.MarkInvoicePaid(f.ctx, inv.ID, "tok_visa")
	require.NoError(t, err)
	return inv, p
}

func TestWorkflowCoordinator_MarkInvoicePaid(t *testing.T) {
	f := newFixture(t)
	inv := f.draftInvoice(t)

	f.gateway.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req interfaces.PaymentIntentRequest) (interfaces.PaymentIntent, error) {
			assert.Equal(t, cache.ChargeKey(inv.ID), req.IdempotencyKey)
			assert.Equal(t, "113.00", req.Amount.StringFixed(2))
			assert.Equal(t, "CAD", req.Currency)
			assert.Equal(t, "ana@example.com", req.PayerEmail)
			return interfaces.PaymentIntent{ID: "pi-1"}, nil
		})
	f.gateway.EXPECT().ConfirmPayment(gomock.Any(), "pi-1", "tok_visa").
		Return(interfaces.PaymentConfirmation{Reference: "pay-1", Status: "approved"}, nil)

	paid, payout, err := f.flow.MarkInvoicePaid(f.ctx, inv.ID, "tok_visa")
	require.NoError(t, err)

	assert.Equal(t, entities.InvoiceStatusPaid, paid.Status)
	assert.Equal(t, "pay-1", paid.PaymentReference)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, entities.PayoutIDForInvoice(inv.ID), payout.ID)
	assert.Equal(t, entities.PayoutStatusPending, payout.Status)
	assert.True(t, payout.Amount.Equal(paid.TotalAmount))

	subtotal := decimal.NewFromInt(1)
	_, err = f.invoices.Update(f.ctx, inv.ID, UpdateInvoiceInput{Edit: entities.InvoiceEdit{Subtotal: &subtotal}})
	assert.ErrorIs(t, err, shared.ErrLocked)
	_, err = f.invoices.Cancel(f.ctx, inv.ID)
	assert.ErrorIs(t, err, shared.ErrLocked)

	again, samePayout, err := f.flow.MarkInvoicePaid(f.ctx, inv.ID, "tok_visa")
	require.NoError(t, err)
	assert.Equal(t, paid.Version, again.Version)
	assert.Equal(t, payout.ID, samePayout.ID)
}

func TestWorkflowCoordinator_MarkInvoicePaid_DeclinedKeepsStatus(t *testing.T) {
	f := newFixture(t)
	inv := f.draftInvoice(t)

	f.gateway.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).Return(interfaces.PaymentIntent{ID: "pi-1"}, nil)
	f.gateway.EXPECT().ConfirmPayment(gomock.Any(), "pi-1", "tok_visa").
		Return(interfaces.PaymentConfirmation{}, &shared.UpstreamError{Source: "mercadopago", Status: 402, Detail: "Your card was declined."})

	_, _, err := f.flow.MarkInvoicePaid(f.ctx, inv.ID, "tok_visa")
	var ue *shared.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "Your card was declined.", ue.Detail)

	stored, err := f.invoices.Get(f.ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.InvoiceStatusDraft, stored.Status)

	// The charge key was released, so the customer can retry.
	f.expectCharge("pay-2")
	paid, _, err := f.flow.MarkInvoicePaid(f.ctx, inv.ID, "tok_visa")
	require.NoError(t, err)
	assert.Equal(t, "pay-2", paid.PaymentReference)
}

func TestWorkflowCoordinator_MarkInvoicePaid_ValidationBeforeCharge(t *testing.T) {
	f := newFixture(t)
	inv := f.draftInvoice(t)

	_, _, err := f.flow.MarkInvoicePaid(f.ctx, inv.ID, " ")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	zero := decimal.Zero
	_, err = f.invoices.Update(f.ctx, inv.ID, UpdateInvoiceInput{Edit: entities.InvoiceEdit{Subtotal: &zero}})
	require.NoError(t, err)
	_, _, err = f.flow.MarkInvoicePaid(f.ctx, inv.ID, "tok_visa")
	assert.ErrorIs(t, err, shared.ErrValidationFailed)

	_, _, err = f.flow.MarkInvoicePaid(f.ctx, "missing", "tok_visa")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestWorkflowCoordinator_MarkInvoicePaid_ChargeInProgress(t *testing.T) {
	f := newFixture(t)
	inv := f.draftInvoice(t)

	ok, err := f.ledger.Reserve(f.ctx, cache.ChargeKey(inv.ID), time.Hour)
	require.NoError(t, err)
	require.True(t, ok)

	_, _, err = f.flow.MarkInvoicePaid(f.ctx, inv.ID, "tok_visa")
	assert.ErrorIs(t, err, shared.ErrConflict)
}

// failingUpdates makes the first n invoice updates fail with a storage error.
type failingUpdates struct {
	interfaces.IInvoiceRepository
	n atomic.Int32
}

func (r *failingUpdates) Update(ctx context.Context, inv entities.Invoice, expected int) (entities.Invoice, error) {
	if r.n.Add(-1) >= 0 {
		return entities.Invoice{}, errors.New("dynamodb: throughput exceeded")
	}
	return r.IInvoiceRepository.Update(ctx, inv, expected)
}

func TestWorkflowCoordinator_RetriedMarkPaidNeverChargesTwice(t *testing.T) {
	f := newFixture(t)
	inv := f.draftInvoice(t)

	flaky := &failingUpdates{IInvoiceRepository: f.store.Invoices}
	flaky.n.Store(1)
	flow := NewWorkflowCoordinator(f.invoices, f.payouts, flaky, f.store.Payouts, f.store.Clients,
		f.gateway, f.ledger, 0, WithClock(f.clock.Now))

	f.expectCharge("pay-1")
	_, _, err := flow.MarkInvoicePaid(f.ctx, inv.ID, "tok_visa")
	require.Error(t, err)

	stored, err := f.store.Invoices.GetByID(f.ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.InvoiceStatusDraft, stored.Status)

	// No further gateway expectations: a second charge would fail the test.
	paid, payout, err := flow.MarkInvoicePaid(f.ctx, inv.ID, "tok_visa")
	require.NoError(t, err)
	assert.Equal(t, "pay-1", paid.PaymentReference)
	assert.Equal(t, "pay-1", payout.PaymentReference)
}

func TestWorkflowCoordinator_RecordPayoutStatus(t *testing.T) {
	f := newFixture(t)
	inv, p := f.paidInvoice(t, "200.00")

	_, err := f.flow.RecordPayoutStatus(f.ctx, p.ID, entities.PayoutStatusFailed, "")
	assert.ErrorIs(t, err, shared.ErrValidationFailed)

	_, err = f.flow.RecordPayoutStatus(f.ctx, p.ID, "SETTLED", "")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	paid, err := f.flow.RecordPayoutStatus(f.ctx, p.ID, entities.PayoutStatusPaid, "")
	require.NoError(t, err)
	assert.Equal(t, entities.PayoutStatusPaid, paid.Status)

	flagged, err := f.invoices.Get(f.ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, flagged.HasPaidPayout)
	assert.True(t, flagged.Locked())

	again, err := f.flow.RecordPayoutStatus(f.ctx, p.ID, entities.PayoutStatusPaid, "")
	require.NoError(t, err)
	assert.Equal(t, paid.Version, again.Version)

	_, err = f.flow.RecordPayoutStatus(f.ctx, p.ID, entities.PayoutStatusFailed, "chargeback")
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
}

func TestWorkflowCoordinator_EndToEnd(t *testing.T) {
	f := newFixture(t)
	q := f.signedQuote(t)

	inv, err := f.flow.CreateInvoiceFromQuote(f.ctx, q.ID, CreateInvoiceInput{})
	require.NoError(t, err)
	_, err = f.invoices.Send(f.ctx, inv.ID)
	require.NoError(t, err)

	f.expectCharge("pay-9")
	inv, p, err := f.flow.MarkInvoicePaid(f.ctx, inv.ID, "tok_visa")
	require.NoError(t, err)
	assert.Equal(t, entities.InvoiceStatusPaid, inv.Status)

	byInvoice, err := f.payouts.GetByInvoice(f.ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, byInvoice.ID)
}

func TestWorkflowCoordinator_EditsWaitForChargeInFlight(t *testing.T) {
	f := newFixture(t)
	inv := f.draftInvoice(t)

	f.gateway.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).Return(interfaces.PaymentIntent{ID: "pi-1"}, nil)
	f.gateway.EXPECT().ConfirmPayment(gomock.Any(), "pi-1", "tok_visa").
		DoAndReturn(func(ctx context.Context, _, _ string) (interfaces.PaymentConfirmation, error) {
			subtotal := decimal.NewFromInt(5000)
			_, err := f.invoices.Update(ctx, inv.ID, UpdateInvoiceInput{Edit: entities.InvoiceEdit{Subtotal: &subtotal}})
			assert.ErrorIs(t, err, shared.ErrConflict)
			_, err = f.invoices.Cancel(ctx, inv.ID)
			assert.ErrorIs(t, err, shared.ErrConflict)
			return interfaces.PaymentConfirmation{Reference: "pay-1", Status: "approved"}, nil
		})

	paid, payout, err := f.flow.MarkInvoicePaid(f.ctx, inv.ID, "tok_visa")
	require.NoError(t, err)
	assert.Equal(t, "113.00", paid.TotalAmount.StringFixed(2))
	assert.Equal(t, "113.00", payout.Amount.StringFixed(2))
}

func TestWorkflowCoordinator_EditReleasesChargeKey(t *testing.T) {
	f := newFixture(t)
	inv := f.draftInvoice(t)

	subtotal := decimal.NewFromInt(50)
	_, err := f.invoices.Update(f.ctx, inv.ID, UpdateInvoiceInput{Edit: entities.InvoiceEdit{Subtotal: &subtotal}})
	require.NoError(t, err)

	f.expectCharge("pay-1")
	paid, _, err := f.flow.MarkInvoicePaid(f.ctx, inv.ID, "tok_visa")
	require.NoError(t, err)
	assert.Equal(t, "56.50", paid.TotalAmount.StringFixed(2))
}

func amountOf(s string) gomock.Matcher {
	want := decimal.RequireFromString(s)
	return gomock.Cond(func(x any) bool {
		d, ok := x.(decimal.Decimal)
		return ok && d.Equal(want)
	})
}

// changeStored writes straight to the store, the way a writer that never saw
// the charge key would.
func (f *fixture) changeStored(t *testing.T, id string, change func(*entities.Invoice) error) {
	t.Helper()
	inv, err := f.store.Invoices.GetByID(f.ctx, id)
	require.NoError(t, err)
	read := inv.Version
	require.NoError(t, change(&inv))
	_, err = f.store.Invoices.Update(f.ctx, inv, read)
	require.NoError(t, err)
}

func TestWorkflowCoordinator_StaleChargeIsRefunded(t *testing.T) {
	f := newFixture(t)
	inv := f.draftInvoice(t)

	f.gateway.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).Return(interfaces.PaymentIntent{ID: "pi-1"}, nil)
	f.gateway.EXPECT().ConfirmPayment(gomock.Any(), "pi-1", "tok_visa").
		DoAndReturn(func(context.Context, string, string) (interfaces.PaymentConfirmation, error) {
			f.changeStored(t, inv.ID, func(inv *entities.Invoice) error {
				subtotal := decimal.NewFromInt(5000)
				return inv.ApplyEdit(entities.InvoiceEdit{Subtotal: &subtotal}, t0)
			})
			return interfaces.PaymentConfirmation{Reference: "pay-1", Status: "approved"}, nil
		})
	f.gateway.EXPECT().Refund(gomock.Any(), "pay-1", amountOf("113.00"), gomock.Any()).
		Return(interfaces.RefundResult{ID: "rf-1", Status: "approved"}, nil)

	_, _, err := f.flow.MarkInvoicePaid(f.ctx, inv.ID, "tok_visa")
	require.ErrorIs(t, err, shared.ErrConflict)
	assert.Contains(t, err.Error(), "pay-1")
	assert.Contains(t, err.Error(), "rf-1")

	stored, err := f.store.Invoices.GetByID(f.ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.InvoiceStatusDraft, stored.Status)
	assert.Equal(t, "5650.00", stored.TotalAmount.StringFixed(2))
	_, err = f.payouts.GetByInvoice(f.ctx, inv.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, ok, err := f.ledger.Lookup(f.ctx, cache.ChargeKey(inv.ID))
	require.NoError(t, err)
	assert.False(t, ok)

	// A fresh charge collects the new total.
	f.expectCharge("pay-2")
	paid, payout, err := f.flow.MarkInvoicePaid(f.ctx, inv.ID, "tok_visa")
	require.NoError(t, err)
	assert.Equal(t, "pay-2", paid.PaymentReference)
	assert.Equal(t, "5650.00", payout.Amount.StringFixed(2))
}

func TestWorkflowCoordinator_ChargeForCancelledInvoiceIsRefunded(t *testing.T) {
	f := newFixture(t)
	inv := f.draftInvoice(t)

	f.gateway.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).Return(interfaces.PaymentIntent{ID: "pi-1"}, nil)
	f.gateway.EXPECT().ConfirmPayment(gomock.Any(), "pi-1", "tok_visa").
		DoAndReturn(func(context.Context, string, string) (interfaces.PaymentConfirmation, error) {
			f.changeStored(t, inv.ID, func(inv *entities.Invoice) error { return inv.MarkCancelled(t0) })
			return interfaces.PaymentConfirmation{Reference: "pay-1", Status: "approved"}, nil
		})
	f.gateway.EXPECT().Refund(gomock.Any(), "pay-1", amountOf("113.00"), gomock.Any()).
		Return(interfaces.RefundResult{ID: "rf-1", Status: "approved"}, nil)

	_, _, err := f.flow.MarkInvoicePaid(f.ctx, inv.ID, "tok_visa")
	require.ErrorIs(t, err, shared.ErrConflict)
	assert.Contains(t, err.Error(), "pay-1")

	stored, err := f.store.Invoices.GetByID(f.ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.InvoiceStatusCancelled, stored.Status)
	assert.Empty(t, stored.PaymentReference)
}

func TestWorkflowCoordinator_FailedCompensationKeepsReference(t *testing.T) {
	f := newFixture(t)
	inv := f.draftInvoice(t)

	f.gateway.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).Return(interfaces.PaymentIntent{ID: "pi-1"}, nil)
	f.gateway.EXPECT().ConfirmPayment(gomock.Any(), "pi-1", "tok_visa").
		DoAndReturn(func(context.Context, string, string) (interfaces.PaymentConfirmation, error) {
			f.changeStored(t, inv.ID, func(inv *entities.Invoice) error { return inv.MarkCancelled(t0) })
			return interfaces.PaymentConfirmation{Reference: "pay-1", Status: "approved"}, nil
		})
	f.gateway.EXPECT().Refund(gomock.Any(), "pay-1", gomock.Any(), gomock.Any()).
		Return(interfaces.RefundResult{}, &shared.UpstreamError{Source: "mercadopago", Status: 503, Detail: "try later"})

	_, _, err := f.flow.MarkInvoicePaid(f.ctx, inv.ID, "tok_visa")
	var ue *shared.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Contains(t, ue.Detail, "pay-1")

	ref, ok, err := f.ledger.Lookup(f.ctx, cache.ChargeKey(inv.ID))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "pay-1", ref)
}
