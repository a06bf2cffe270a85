package entities

import (
	"errors"
	"testing"
	"time"

	"fieldservice_billing/internal/domain/gate"
	"fieldservice_billing/internal/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

var (
	testNow      = mustTime("2026-03-01T10:00:00Z")
	activeClient = Client{ID: "cl-1", Activity: ClientActivityActive}
	activeSvc    = Service{ID: "svc-1", Status: ServiceStatusActive}
)

func draftQuote(t *testing.T) Quote {
	t.Helper()
	q, err := NewQuote("q-1", "Q-1", "svc-1", "cl-1", testNow.Add(72*time.Hour), "Net 30", "", testNow)
	require.NoError(t, err)
	return q
}

func sentQuote(t *testing.T) Quote {
	t.Helper()
	q := draftQuote(t)
	require.NoError(t, q.Send(activeClient, activeSvc, testNow))
	return q
}

func TestNewQuote(t *testing.T) {
	q := draftQuote(t)
	assert.Equal(t, QuoteStatusDraft, q.Status)
	assert.Equal(t, 1, q.Version)
	assert.NoError(t, q.CheckInvariants())

	_, err := NewQuote("q-2", "Q-2", " ", "", testNow, "", "", testNow)
	require.ErrorIs(t, err, shared.ErrValidationFailed)
	assert.Equal(t, []string{"service_required", "client_required"}, gate.Codes(shared.Reasons(err)))
}

func TestQuote_SendRequiresTermsThenSucceeds(t *testing.T) {
	q := draftQuote(t)
	q.TermsConditions = "  "

	err := q.Send(activeClient, activeSvc, testNow)
	require.ErrorIs(t, err, shared.ErrValidationFailed)
	assert.Equal(t, []string{"terms_conditions"}, gate.Fields(shared.Reasons(err)))
	assert.Equal(t, QuoteStatusDraft, q.Status)

	terms := "Payment due on completion"
	require.NoError(t, q.ApplyEdit(QuoteEdit{TermsConditions: &terms}, testNow))
	require.NoError(t, q.Send(activeClient, activeSvc, testNow))
	assert.Equal(t, QuoteStatusSent, q.Status)
	require.NotNil(t, q.SentAt)
}

func TestQuote_SendReportsEveryReason(t *testing.T) {
	q := draftQuote(t)
	q.TermsConditions = ""
	q.ValidUntil = testNow.Add(-time.Hour)

	err := q.Send(Client{Activity: ClientActivityInactive}, Service{Status: ServiceStatusPending}, testNow)
	require.ErrorIs(t, err, shared.ErrValidationFailed)
	assert.Equal(t, []string{"terms_required", "deadline_passed", "client_inactive", "service_not_active"}, gate.Codes(shared.Reasons(err)))
}

func TestQuote_SendFromWrongState(t *testing.T) {
	q := sentQuote(t)
	err := q.Send(activeClient, activeSvc, testNow)

	var te *shared.TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "SENT", te.Current)
}

func TestQuote_SignAndDeclineInvariants(t *testing.T) {
	signed := sentQuote(t)
	require.NoError(t, signed.Sign("sig://q-1", testNow.Add(time.Hour)))
	assert.Equal(t, QuoteStatusSigned, signed.Status)
	assert.Equal(t, "sig://q-1", signed.SignatureRef())
	require.NotNil(t, signed.SignedAt())
	assert.NoError(t, signed.CheckInvariants())

	declined := sentQuote(t)
	require.NoError(t, declined.Decline(testNow.Add(time.Hour)))
	assert.Equal(t, QuoteStatusDeclined, declined.Status)
	assert.Empty(t, declined.SignatureRef())
	require.NotNil(t, declined.SignedAt())
	assert.NoError(t, declined.CheckInvariants())
}

func TestQuote_SignRequiresSignature(t *testing.T) {
	q := sentQuote(t)
	err := q.Sign(" ", testNow)
	require.ErrorIs(t, err, shared.ErrValidationFailed)
	assert.Equal(t, QuoteStatusSent, q.Status)
}

func TestQuote_ExpiredQuoteCannotBeDecided(t *testing.T) {
	q := sentQuote(t)
	late := q.ValidUntil.Add(time.Second)

	assert.Equal(t, QuoteStatusExpired, q.EffectiveStatus(late))
	assert.ErrorIs(t, q.Sign("sig", late), shared.ErrExpired)
	assert.ErrorIs(t, q.Decline(late), shared.ErrExpired)
	assert.Equal(t, QuoteStatusSent, q.Status)

	// at the deadline instant the quote is already expired
	assert.ErrorIs(t, q.Decline(q.ValidUntil), shared.ErrExpired)
}

func TestQuote_ExtendingDeadlineClearsExpired(t *testing.T) {
	q := sentQuote(t)
	late := q.ValidUntil.Add(time.Hour)
	require.Equal(t, QuoteStatusExpired, q.EffectiveStatus(late))

	extended := late.Add(24 * time.Hour)
	require.NoError(t, q.ApplyEdit(QuoteEdit{ValidUntil: &extended}, late))
	assert.Equal(t, QuoteStatusSent, q.EffectiveStatus(late))
	assert.NoError(t, q.Sign("sig", late))
}

func TestQuote_TerminalStatesNeverExit(t *testing.T) {
	q := sentQuote(t)
	require.NoError(t, q.Decline(testNow))

	assert.ErrorIs(t, q.Sign("sig", testNow), shared.ErrInvalidTransition)
	assert.ErrorIs(t, q.Decline(testNow), shared.ErrInvalidTransition)
	assert.ErrorIs(t, q.Send(activeClient, activeSvc, testNow), shared.ErrInvalidTransition)
	assert.Equal(t, QuoteStatusDeclined, q.Status)
}

func TestQuote_DecidingADraftIsInvalid(t *testing.T) {
	q := draftQuote(t)
	var te *shared.TransitionError
	require.True(t, errors.As(q.Sign("sig", testNow), &te))
	assert.Equal(t, "DRAFT", te.Current)
}

func TestQuote_OnlyNotesEditableAfterDecision(t *testing.T) {
	q := sentQuote(t)
	require.NoError(t, q.Sign("sig", testNow))

	notes := "crew arrives at 9"
	require.NoError(t, q.ApplyEdit(QuoteEdit{Notes: &notes}, testNow))
	assert.Equal(t, notes, q.Notes)

	terms := "changed"
	assert.ErrorIs(t, q.ApplyEdit(QuoteEdit{TermsConditions: &terms}, testNow), shared.ErrLocked)
	later := testNow.Add(time.Hour)
	assert.ErrorIs(t, q.ApplyEdit(QuoteEdit{ValidUntil: &later}, testNow), shared.ErrLocked)
}

func TestQuote_TermsFixedOnceSent(t *testing.T) {
	q := sentQuote(t)
	sent := q.TermsConditions

	empty := ""
	err := q.ApplyEdit(QuoteEdit{TermsConditions: &empty}, testNow)
	require.ErrorIs(t, err, shared.ErrInvalidTransition)
	var te *shared.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "SENT", te.Current)
	assert.Equal(t, sent, q.TermsConditions)

	later := testNow.Add(time.Hour)
	notes := "gate code 1234"
	require.NoError(t, q.ApplyEdit(QuoteEdit{ValidUntil: &later, Notes: &notes}, testNow))
	assert.Equal(t, later, q.ValidUntil)

	require.NoError(t, q.Sign("sig", testNow))
	assert.Equal(t, sent, q.TermsConditions)
}

func TestQuote_CheckInvariantsRejectsIllegalRecords(t *testing.T) {
	tests := []struct {
		name string
		q    Quote
	}{
		{name: "declined with signature", q: Quote{Status: QuoteStatusDeclined, Decision: &Decision{At: testNow, SignatureRef: "sig"}}},
		{name: "signed without signature", q: Quote{Status: QuoteStatusSigned, Decision: &Decision{At: testNow}}},
		{name: "signed without decision", q: Quote{Status: QuoteStatusSigned}},
		{name: "sent with decision", q: Quote{Status: QuoteStatusSent, Decision: &Decision{At: testNow}}},
		{name: "stored expired", q: Quote{Status: QuoteStatusExpired}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.q.CheckInvariants(), ErrQuoteInvariant)
		})
	}
}

func TestValidateTransition(t *testing.T) {
	q := sentQuote(t)

	assert.Empty(t, ValidateTransition(TransitionSign, TransitionContext{Quote: &q, Now: testNow}))

	late := q.ValidUntil.Add(time.Minute)
	assert.Equal(t, []string{"quote_expired"}, gate.Codes(ValidateTransition(TransitionDecline, TransitionContext{Quote: &q, Now: late})))

	signed := q
	signed.Status = QuoteStatusSigned
	codes := gate.Codes(ValidateTransition(TransitionSend, TransitionContext{Quote: &signed, Client: &activeClient, Service: &activeSvc, Now: testNow}))
	assert.Equal(t, []string{"quote_already_signed"}, codes)

	assert.Equal(t, []string{"client_inactive", "service_not_active"},
		gate.Codes(ValidateTransition(TransitionSend, TransitionContext{Quote: &q, Now: testNow})))

	assert.Equal(t, []string{"invoice_locked"}, gate.Codes(ValidateTransition(TransitionInvoiceEdit, TransitionContext{Invoice: &Invoice{Status: InvoiceStatusPaid}})))
	assert.Empty(t, ValidateTransition(TransitionInvoiceEdit, TransitionContext{Invoice: &Invoice{Status: InvoiceStatusDraft}}))

	assert.Equal(t, []string{"unknown_transition"}, gate.Codes(ValidateTransition("archive", TransitionContext{})))
}

func TestSignPreconditions(t *testing.T) {
	assert.Empty(t, SignPreconditions(&activeClient, &activeSvc))
	inactive := Client{Activity: ClientActivityInactive}
	assert.Equal(t, []string{"client_inactive"}, gate.Codes(SignPreconditions(&inactive, &activeSvc)))
	assert.Equal(t, []string{"client_inactive", "service_not_active"}, gate.Codes(SignPreconditions(nil, nil)))
}
