package entities

import (
	"testing"
	"time"

	"fieldservice_billing/internal/domain/gate"
	"fieldservice_billing/internal/domain/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedQuote(t *testing.T) Quote {
	t.Helper()
	q := sentQuote(t)
	require.NoError(t, q.Sign("sig://q-1", testNow))
	return q
}

func draftInvoice(t *testing.T, price, rate string) Invoice {
	t.Helper()
	svc := activeSvc
	svc.Price = decimal.RequireFromString(price)
	svc.Currency = "CAD"
	inv, err := NewInvoiceFromQuote("inv-1", "INV-1", signedQuote(t), svc, testNow.Add(30*24*time.Hour), decimal.RequireFromString(rate), testNow)
	require.NoError(t, err)
	return inv
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestNewInvoiceFromQuote(t *testing.T) {
	inv := draftInvoice(t, "100.00", "13")

	assert.Equal(t, InvoiceStatusDraft, inv.Status)
	assert.Equal(t, "q-1", inv.QuoteID)
	assert.Equal(t, "svc-1", inv.ServiceID)
	assert.Equal(t, "CAD", inv.Currency)
	assert.Equal(t, "13.00", inv.TaxAmount.StringFixed(2))
	assert.Equal(t, "113.00", inv.TotalAmount.StringFixed(2))
	assert.False(t, inv.Locked())
}

func TestNewInvoiceFromQuote_RequiresSignedQuote(t *testing.T) {
	_, err := NewInvoiceFromQuote("inv-1", "INV-1", sentQuote(t), activeSvc, testNow, decimal.Zero, testNow)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
}

func TestNewInvoiceFromQuote_DefaultsCurrency(t *testing.T) {
	svc := activeSvc
	svc.Price = decimal.NewFromInt(10)
	inv, err := NewInvoiceFromQuote("inv-1", "INV-1", signedQuote(t), svc, testNow, decimal.Zero, testNow)
	require.NoError(t, err)
	assert.Equal(t, DefaultCurrency, inv.Currency)
}

func TestInvoice_ApplyEditRecomputesTotals(t *testing.T) {
	inv := draftInvoice(t, "100.00", "13")

	require.NoError(t, inv.ApplyEdit(InvoiceEdit{Subtotal: dec("19.99"), TaxRate: dec("7.5")}, testNow))
	assert.Equal(t, "1.50", inv.TaxAmount.StringFixed(2))
	assert.Equal(t, "21.49", inv.TotalAmount.StringFixed(2))

	require.NoError(t, inv.ApplyEdit(InvoiceEdit{TaxRate: dec("0")}, testNow))
	assert.Equal(t, "19.99", inv.TotalAmount.StringFixed(2))
}

func TestInvoice_ApplyEditValidatesAmounts(t *testing.T) {
	inv := draftInvoice(t, "100.00", "13")

	err := inv.ApplyEdit(InvoiceEdit{Subtotal: dec("-1"), TaxRate: dec("101")}, testNow)
	require.ErrorIs(t, err, shared.ErrValidationFailed)
	assert.Equal(t, []string{"subtotal_negative", "tax_rate_out_of_range"}, gate.Codes(shared.Reasons(err)))
	assert.Equal(t, "113.00", inv.TotalAmount.StringFixed(2))
}

func TestInvoice_LockedAfterPaid(t *testing.T) {
	inv := draftInvoice(t, "100.00", "13")
	require.NoError(t, inv.MarkPaid("pay-1", testNow))

	assert.True(t, inv.Locked())
	require.NotNil(t, inv.PaidAt)
	assert.ErrorIs(t, inv.ApplyEdit(InvoiceEdit{Subtotal: dec("1")}, testNow), shared.ErrLocked)
	assert.ErrorIs(t, inv.MarkSent(testNow), shared.ErrLocked)
	assert.ErrorIs(t, inv.MarkCancelled(testNow), shared.ErrLocked)
	assert.ErrorIs(t, inv.CanBePaid(), shared.ErrLocked)
}

func TestInvoice_LockedByPaidPayout(t *testing.T) {
	inv := draftInvoice(t, "100.00", "13")
	assert.True(t, inv.MarkPayoutPaid(testNow))
	assert.False(t, inv.MarkPayoutPaid(testNow))

	assert.True(t, inv.Locked())
	assert.ErrorIs(t, inv.ApplyEdit(InvoiceEdit{DueDate: &testNow}, testNow), shared.ErrLocked)
}

func TestInvoice_StatusFlipsAreOneWay(t *testing.T) {
	inv := draftInvoice(t, "100.00", "13")
	require.NoError(t, inv.MarkSent(testNow))
	assert.ErrorIs(t, inv.MarkSent(testNow), shared.ErrInvalidTransition)

	require.NoError(t, inv.MarkCancelled(testNow))
	assert.ErrorIs(t, inv.MarkCancelled(testNow), shared.ErrInvalidTransition)
	assert.ErrorIs(t, inv.MarkSent(testNow), shared.ErrInvalidTransition)
	assert.ErrorIs(t, inv.CanBePaid(), shared.ErrInvalidTransition)
	assert.ErrorIs(t, inv.ApplyEdit(InvoiceEdit{Subtotal: dec("5")}, testNow), shared.ErrInvalidTransition)
}

func TestInvoice_MarkPaidNeedsReferenceAndAmount(t *testing.T) {
	inv := draftInvoice(t, "100.00", "13")
	assert.ErrorIs(t, inv.MarkPaid("", testNow), shared.ErrValidationFailed)
	assert.Equal(t, InvoiceStatusDraft, inv.Status)

	free := draftInvoice(t, "0", "0")
	assert.ErrorIs(t, free.CanBePaid(), shared.ErrValidationFailed)
}
