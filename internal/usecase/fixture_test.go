package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"fieldservice_billing/internal/adapter/persistence/memory"
	"fieldservice_billing/internal/domain/entities"
	"fieldservice_billing/internal/domain/signature"
	"fieldservice_billing/internal/infrastructure/cache"
	"fieldservice_billing/internal/infrastructure/storage"
	mock_interfaces "fieldservice_billing/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	ctx      context.Context
	clock    *testClock
	store    *memory.Store
	gateway  *mock_interfaces.MockIPaymentGateway
	notifier *mock_interfaces.MockINotifier
	sigs     *storage.MemorySignatureStore
	ledger   *cache.InMemoryChargeLedger
	docs     *cache.InMemoryDocumentCache

	quotes   *QuoteUseCase
	invoices *InvoiceUseCase
	payouts  *PayoutUseCase
	flow     *WorkflowCoordinator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		ctx:      context.Background(),
		clock:    &testClock{now: t0},
		store:    memory.NewStore(),
		gateway:  mock_interfaces.NewMockIPaymentGateway(ctrl),
		notifier: mock_interfaces.NewMockINotifier(ctrl),
		sigs:     storage.NewMemorySignatureStore(),
		ledger:   cache.NewInMemoryChargeLedger(),
		docs:     cache.NewInMemoryDocumentCache(time.Minute),
	}
	opts := []Option{WithClock(f.clock.Now), WithCache(f.docs)}

	f.quotes = NewQuoteUseCase(f.store.Quotes, f.store.Clients, f.store.Services, f.notifier, f.sigs, 5*time.Millisecond, opts...)
	t.Cleanup(f.quotes.Close)
	f.invoices = NewInvoiceUseCase(f.store.Invoices, f.store.Quotes, f.store.Services, f.ledger,
		InvoiceDefaults{TaxRate: decimal.NewFromInt(13), DueDays: 14}, opts...)
	f.payouts = NewPayoutUseCase(f.store.Payouts, f.store.Invoices, f.gateway, f.ledger, decimal.RequireFromString("2.9"), opts...)
	f.flow = NewWorkflowCoordinator(f.invoices, f.payouts, f.store.Invoices, f.store.Payouts, f.store.Clients,
		f.gateway, f.ledger, time.Hour, opts...)

	f.seed(t, entities.ServiceStatusActive, entities.ClientActivityActive)
	return f
}

func (f *fixture) seed(t *testing.T, svcStatus entities.ServiceStatus, activity entities.ClientActivity) {
	t.Helper()
	_, err := f.store.Services.Upsert(f.ctx, entities.Service{
		ID: "svc-1", ClientID: "cl-1", Name: "Boiler service", Status: svcStatus,
		Price: decimal.RequireFromString("100.00"), Currency: "CAD",
	})
	require.NoError(t, err)
	_, err = f.store.Clients.Upsert(f.ctx, entities.Client{ID: "cl-1", Name: "Ana", Email: "ana@example.com", Activity: activity})
	require.NoError(t, err)
}

func (f *fixture) draftQuote(t *testing.T) entities.Quote {
	t.Helper()
	q, err := f.quotes.Create(f.ctx, CreateQuoteInput{
		ServiceID:       "svc-1",
		ClientID:        "cl-1",
		ValidUntil:      t0.Add(72 * time.Hour),
		TermsConditions: "Net 30",
	})
	require.NoError(t, err)
	return q
}

func (f *fixture) sentQuote(t *testing.T) entities.Quote {
	t.Helper()
	q := f.draftQuote(t)
	f.notifier.EXPECT().QuoteSent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	q, err := f.quotes.Send(f.ctx, q.ID)
	require.NoError(t, err)
	return q
}

func (f *fixture) signedQuote(t *testing.T) entities.Quote {
	t.Helper()
	q := f.sentQuote(t)
	q, err := f.quotes.Sign(f.ctx, q.ID, drawn())
	require.NoError(t, err)
	return q
}

func (f *fixture) draftInvoice(t *testing.T) entities.Invoice {
	t.Helper()
	q := f.signedQuote(t)
	inv, err := f.invoices.CreateFromQuote(f.ctx, q.ID, CreateInvoiceInput{})
	require.NoError(t, err)
	return inv
}

func drawn() signature.Input {
	return signature.Input{
		Strokes: []signature.Stroke{{{X: 5, Y: 5}, {X: 60, Y: 20}, {X: 90, Y: 8}}},
		Width:   100,
		Height:  30,
	}
}
