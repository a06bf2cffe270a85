package usecase

import (
	"testing"
	"time"

	"fieldservice_billing/internal/domain/entities"
	"fieldservice_billing/internal/domain/shared"
	"fieldservice_billing/internal/infrastructure/cache"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceUseCase_CreateFromSignedQuote(t *testing.T) {
	f := newFixture(t)
	inv := f.draftInvoice(t)

	assert.Equal(t, entities.InvoiceStatusDraft, inv.Status)
	assert.Equal(t, "CAD", inv.Currency)
	assert.Equal(t, "100.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "13.00", inv.TaxAmount.StringFixed(2))
	assert.Equal(t, "113.00", inv.TotalAmount.StringFixed(2))
	assert.Equal(t, t0.AddDate(0, 0, 14), inv.DueDate)
	assert.Equal(t, entities.InvoiceIDForQuote(inv.QuoteID), inv.ID)

	_, err := f.invoices.CreateFromQuote(f.ctx, inv.QuoteID, CreateInvoiceInput{})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	byQuote, err := f.invoices.GetByQuote(f.ctx, inv.QuoteID)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, byQuote.ID)
}

func TestInvoiceUseCase_PriceSnapshotIgnoresLaterServiceChanges(t *testing.T) {
	f := newFixture(t)
	inv := f.draftInvoice(t)

	_, err := f.store.Services.Upsert(f.ctx, entities.Service{
		ID: "svc-1", Status: entities.ServiceStatusActive, Price: decimal.NewFromInt(999), Currency: "USD",
	})
	require.NoError(t, err)

	got, err := f.invoices.Get(f.ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "CAD", got.Currency)
}

func TestInvoiceUseCase_CreateRequiresSignedQuote(t *testing.T) {
	f := newFixture(t)
	q := f.sentQuote(t)

	_, err := f.invoices.CreateFromQuote(f.ctx, q.ID, CreateInvoiceInput{})
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)

	_, err = f.invoices.CreateFromQuote(f.ctx, "missing", CreateInvoiceInput{})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInvoiceUseCase_CreateWithOverrides(t *testing.T) {
	f := newFixture(t)
	q := f.signedQuote(t)
	due := t0.Add(48 * time.Hour)
	rate := decimal.RequireFromString("7.5")

	inv, err := f.invoices.CreateFromQuote(f.ctx, q.ID, CreateInvoiceInput{DueDate: &due, TaxRate: &rate})
	require.NoError(t, err)
	assert.Equal(t, due, inv.DueDate)
	assert.Equal(t, "7.50", inv.TaxAmount.StringFixed(2))
}

func TestInvoiceUseCase_UpdateRecomputesAndInvalidates(t *testing.T) {
	f := newFixture(t)
	inv := f.draftInvoice(t)
	_, err := f.invoices.Get(f.ctx, inv.ID)
	require.NoError(t, err)

	subtotal := decimal.RequireFromString("19.99")
	rate := decimal.RequireFromString("7.5")
	updated, err := f.invoices.Update(f.ctx, inv.ID, UpdateInvoiceInput{
		Edit:    entities.InvoiceEdit{Subtotal: &subtotal, TaxRate: &rate},
		Version: inv.Version,
	})
	require.NoError(t, err)
	assert.Equal(t, "1.50", updated.TaxAmount.StringFixed(2))
	assert.Equal(t, "21.49", updated.TotalAmount.StringFixed(2))

	var stale entities.Invoice
	hit, _ := f.docs.Get(f.ctx, cache.InvoiceKey(inv.ID), &stale)
	assert.False(t, hit)

	got, err := f.invoices.Get(f.ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "21.49", got.TotalAmount.StringFixed(2))

	_, err = f.invoices.Update(f.ctx, inv.ID, UpdateInvoiceInput{Edit: entities.InvoiceEdit{Subtotal: &subtotal}, Version: inv.Version})
	assert.ErrorIs(t, err, shared.ErrConflict)

	negative := decimal.NewFromInt(-1)
	_, err = f.invoices.Update(f.ctx, inv.ID, UpdateInvoiceInput{Edit: entities.InvoiceEdit{Subtotal: &negative}})
	assert.ErrorIs(t, err, shared.ErrValidationFailed)
}

func TestInvoiceUseCase_SendAndCancelAreOneWay(t *testing.T) {
	f := newFixture(t)
	inv := f.draftInvoice(t)

	sent, err := f.invoices.Send(f.ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.InvoiceStatusSent, sent.Status)

	_, err = f.invoices.Send(f.ctx, inv.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)

	cancelled, err := f.invoices.Cancel(f.ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.InvoiceStatusCancelled, cancelled.Status)

	_, err = f.invoices.Cancel(f.ctx, inv.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
	_, _, err = f.flow.MarkInvoicePaid(f.ctx, inv.ID, "tok")
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
}

func TestInvoiceUseCase_AmountChangesRefusedWhileCharging(t *testing.T) {
	f := newFixture(t)
	inv := f.draftInvoice(t)

	ok, err := f.ledger.Reserve(f.ctx, cache.ChargeKey(inv.ID), time.Hour)
	require.NoError(t, err)
	require.True(t, ok)

	subtotal := decimal.NewFromInt(5000)
	_, err = f.invoices.Update(f.ctx, inv.ID, UpdateInvoiceInput{Edit: entities.InvoiceEdit{Subtotal: &subtotal}})
	assert.ErrorIs(t, err, shared.ErrConflict)
	_, err = f.invoices.Cancel(f.ctx, inv.ID)
	assert.ErrorIs(t, err, shared.ErrConflict)

	// Sending does not change what is collected.
	sent, err := f.invoices.Send(f.ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "113.00", sent.TotalAmount.StringFixed(2))

	stored, err := f.store.Invoices.GetByID(f.ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "113.00", stored.TotalAmount.StringFixed(2))
	assert.Equal(t, entities.InvoiceStatusSent, stored.Status)

	// The caller's reservation is untouched by the refused edits.
	ok, err = f.ledger.Reserve(f.ctx, cache.ChargeKey(inv.ID), time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)
}
