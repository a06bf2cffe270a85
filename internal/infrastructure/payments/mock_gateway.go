package payments

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"fieldservice_billing/internal/domain/shared"
	"fieldservice_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Tokens understood by MockGateway.
const (
	MockTokenDecline = "tok_decline"
	MockTokenError   = "tok_error"
)

// MockGateway approves every charge and refund except the MockToken* cases.
// It is selected with payments.provider = mock.
type MockGateway struct {
	logger *zap.Logger
	seq    atomic.Int64

	mu       sync.Mutex
	intents  map[string]interfaces.PaymentIntentRequest
	captured map[string]decimal.Decimal
	refunded map[string]decimal.Decimal
}

var _ interfaces.IPaymentGateway = (*MockGateway)(nil)

func NewMockGateway(logger *zap.Logger) *MockGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("[payment][gateway] mock mode enabled")
	return &MockGateway{
		logger:   logger,
		intents:  make(map[string]interfaces.PaymentIntentRequest),
		captured: make(map[string]decimal.Decimal),
		refunded: make(map[string]decimal.Decimal),
	}
}

func (g *MockGateway) CreatePaymentIntent(_ context.Context, req interfaces.PaymentIntentRequest) (interfaces.PaymentIntent, error) {
	id := req.IdempotencyKey
	if id == "" {
		id = uuid.NewString()
	}
	g.mu.Lock()
	g.intents[id] = req
	g.mu.Unlock()
	g.logger.Debug("[payment][gateway] mock intent", zap.String("intent_id", id), zap.String("invoice_id", req.InvoiceID))
	return interfaces.PaymentIntent{ID: id, Status: statusPending}, nil
}

func (g *MockGateway) ConfirmPayment(_ context.Context, intentID, paymentMethodRef string) (interfaces.PaymentConfirmation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	req, ok := g.intents[intentID]
	if !ok {
		return interfaces.PaymentConfirmation{}, &shared.UpstreamError{Source: "mock", Status: 404, Detail: "unknown payment intent " + intentID}
	}
	delete(g.intents, intentID)

	switch strings.TrimSpace(paymentMethodRef) {
	case MockTokenDecline:
		return interfaces.PaymentConfirmation{}, &shared.UpstreamError{Source: "mock", Status: 402, Detail: "Your card was declined."}
	case MockTokenError:
		return interfaces.PaymentConfirmation{}, &shared.UpstreamError{Source: "mock", Status: 503, Detail: "processor unavailable"}
	}

	ref := "mock-" + strconv.FormatInt(time.Now().UTC().UnixNano(), 10) + "-" + strconv.FormatInt(g.seq.Add(1), 10)
	g.captured[ref] = req.Amount
	g.logger.Info("[payment][gateway] mock create success", zap.String("provider_payment_id", ref), zap.String("provider_status", statusApproved))
	return interfaces.PaymentConfirmation{Reference: ref, Status: statusApproved}, nil
}

func (g *MockGateway) Refund(_ context.Context, paymentRef string, amount decimal.Decimal, _ string) (interfaces.RefundResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	captured, ok := g.captured[paymentRef]
	if !ok {
		return interfaces.RefundResult{}, &shared.UpstreamError{Source: "mock", Status: 404, Detail: "payment " + paymentRef + " not found"}
	}
	total := g.refunded[paymentRef].Add(amount)
	if total.GreaterThan(captured) {
		return interfaces.RefundResult{}, &shared.UpstreamError{Source: "mock", Status: 400, Detail: "refund exceeds captured amount"}
	}
	g.refunded[paymentRef] = total
	return interfaces.RefundResult{ID: "mock-refund-" + strconv.FormatInt(g.seq.Add(1), 10), Status: statusApproved}, nil
}

// Captured is the number of confirmed charges.
func (g *MockGateway) Captured() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.captured)
}
