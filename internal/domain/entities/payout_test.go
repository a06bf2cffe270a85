package entities

import (
	"testing"

	"fieldservice_billing/internal/domain/gate"
	"fieldservice_billing/internal/domain/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paidPayout(t *testing.T, amount string) Payout {
	t.Helper()
	inv := draftInvoice(t, amount, "0")
	require.NoError(t, inv.MarkPaid("pay-1", testNow))
	p, err := NewPayoutFromInvoice(inv, testNow)
	require.NoError(t, err)
	_, err = p.RecordStatus(PayoutStatusPaid, "", testNow)
	require.NoError(t, err)
	return p
}

func refund(id, amount string) RefundRecord {
	return RefundRecord{ID: id, Amount: decimal.RequireFromString(amount), ProviderRefundID: "mp-" + id, ApprovedAt: testNow}
}

func TestPayoutIDForInvoice_IsDeterministic(t *testing.T) {
	assert.Equal(t, PayoutIDForInvoice("inv-1"), PayoutIDForInvoice("inv-1"))
	assert.NotEqual(t, PayoutIDForInvoice("inv-1"), PayoutIDForInvoice("inv-2"))
}

func TestNewPayoutFromInvoice(t *testing.T) {
	inv := draftInvoice(t, "100.00", "13")
	_, err := NewPayoutFromInvoice(inv, testNow)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)

	require.NoError(t, inv.MarkPaid("pay-1", testNow))
	p, err := NewPayoutFromInvoice(inv, testNow)
	require.NoError(t, err)
	assert.Equal(t, PayoutIDForInvoice("inv-1"), p.ID)
	assert.Equal(t, "113.00", p.Amount.StringFixed(2))
	assert.Equal(t, PayoutStatusPending, p.Status)
	assert.Equal(t, "pay-1", p.PaymentReference)
}

func TestPayout_RefundBound(t *testing.T) {
	p := paidPayout(t, "200.00")

	require.NoError(t, p.AddRefund(refund("r1", "150"), testNow))
	err := p.AddRefund(refund("r2", "100"), testNow)
	require.ErrorIs(t, err, shared.ErrValidationFailed)
	assert.Equal(t, []string{"refund_exceeds_balance"}, gate.Codes(shared.Reasons(err)))

	assert.Equal(t, "150.00", p.RefundedTotal().StringFixed(2))
	assert.Equal(t, "50.00", p.Refundable().StringFixed(2))
	assert.False(t, p.FullyRefunded())

	require.NoError(t, p.AddRefund(refund("r3", "50"), testNow))
	assert.True(t, p.FullyRefunded())
	assert.Equal(t, PayoutStatusPaid, p.Status)
}

func TestPayout_RefundRequiresPositiveAmountAndPaidStatus(t *testing.T) {
	p := paidPayout(t, "200.00")
	assert.Equal(t, []string{"refund_amount_not_positive"}, gate.Codes(shared.Reasons(p.CheckRefund(decimal.Zero))))

	inv := draftInvoice(t, "200.00", "0")
	require.NoError(t, inv.MarkPaid("pay-1", testNow))
	pending, err := NewPayoutFromInvoice(inv, testNow)
	require.NoError(t, err)
	assert.ErrorIs(t, pending.CheckRefund(decimal.NewFromInt(1)), shared.ErrInvalidTransition)
}

func TestPayout_RefundRejectsFractionsOfACent(t *testing.T) {
	p := paidPayout(t, "200.00")

	err := p.AddRefund(refund("r1", "199.995"), testNow)
	require.ErrorIs(t, err, shared.ErrValidationFailed)
	assert.Equal(t, []string{"refund_amount_precision"}, gate.Codes(shared.Reasons(err)))
	assert.Empty(t, p.Refunds)

	assert.Equal(t, []string{"refund_amount_precision"}, gate.Codes(shared.Reasons(p.CheckRefund(decimal.RequireFromString("0.005")))))

	require.NoError(t, p.AddRefund(refund("r2", "199.99"), testNow))
	require.NoError(t, p.AddRefund(refund("r3", "0.010"), testNow))
	assert.True(t, p.FullyRefunded())
	assert.Equal(t, "200.00", p.RefundedTotal().StringFixed(2))
}

func TestPayout_RecordStatus(t *testing.T) {
	inv := draftInvoice(t, "200.00", "0")
	require.NoError(t, inv.MarkPaid("pay-1", testNow))
	p, err := NewPayoutFromInvoice(inv, testNow)
	require.NoError(t, err)

	_, err = p.RecordStatus(PayoutStatusFailed, "", testNow)
	assert.ErrorIs(t, err, shared.ErrValidationFailed)

	_, err = p.RecordStatus("SETTLED", "", testNow)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	changed, err := p.RecordStatus(PayoutStatusFailed, "account closed", testNow)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "account closed", p.FailureReason)

	changed, err = p.RecordStatus(PayoutStatusFailed, "account closed", testNow)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = p.RecordStatus(PayoutStatusPaid, "", testNow)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
}

func TestPayout_IllustrativeNet(t *testing.T) {
	p := paidPayout(t, "200.00")
	require.NoError(t, p.AddRefund(refund("r1", "50"), testNow))

	assert.Equal(t, "145.50", p.IllustrativeNet(decimal.RequireFromString("3")).StringFixed(2))
}
