package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"fieldservice_billing/internal/domain/shared"
	"fieldservice_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/refund"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const sourceMercadoPago = "mercadopago"

var ErrMissingMercadoPagoAccessToken = errors.New("missing mercadopago access token")

// Processor statuses used by Mercado Pago.
const (
	statusApproved   = "approved"
	statusAuthorized = "authorized"
	statusPending    = "pending"
)

type paymentAPI interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
	Get(ctx context.Context, id int) (*payment.Response, error)
	Capture(ctx context.Context, id int) (*payment.Response, error)
}

type refundAPI interface {
	CreatePartialRefund(ctx context.Context, paymentID int, amount float64) (*refund.Response, error)
}

// MercadoPagoGateway charges invoices through Mercado Pago.
//
// An intent is kept locally until ConfirmPayment supplies the card token; the
// processor payment is created then, and captured if it came back authorized.
type MercadoPagoGateway struct {
	payments paymentAPI
	refunds  refundAPI
	logger   *zap.Logger

	mu      sync.Mutex
	intents map[string]interfaces.PaymentIntentRequest
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string, logger *zap.Logger) (*MercadoPagoGateway, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if accessToken == "" {
		logger.Error("[payment][gateway] missing access token")
		return nil, ErrMissingMercadoPagoAccessToken
	}
	cfg, err := config.New(accessToken)
	if err != nil {
		logger.Error("[payment][gateway] failed creating sdk config", zap.Error(err))
		return nil, err
	}
	logger.Info("[payment][gateway] Mercado Pago client initialized")
	return newMercadoPagoGateway(payment.NewClient(cfg), refund.NewClient(cfg), logger), nil
}

func newMercadoPagoGateway(p paymentAPI, r refundAPI, logger *zap.Logger) *MercadoPagoGateway {
	return &MercadoPagoGateway{
		payments: p,
		refunds:  r,
		logger:   logger,
		intents:  make(map[string]interfaces.PaymentIntentRequest),
	}
}

func (g *MercadoPagoGateway) CreatePaymentIntent(_ context.Context, req interfaces.PaymentIntentRequest) (interfaces.PaymentIntent, error) {
	if !req.Amount.IsPositive() {
		return interfaces.PaymentIntent{}, &shared.UpstreamError{Source: sourceMercadoPago, Detail: "amount must be positive"}
	}
	id := req.IdempotencyKey
	if id == "" {
		id = uuid.NewString()
	}
	g.mu.Lock()
	g.intents[id] = req
	g.mu.Unlock()

	g.logger.Info("[payment][gateway] intent created",
		zap.String("intent_id", id),
		zap.String("invoice_id", req.InvoiceID),
		zap.String("amount", req.Amount.StringFixed(2)))
	return interfaces.PaymentIntent{ID: id, Status: statusPending}, nil
}

// takeIntent removes the intent whatever the outcome of the confirm that
// follows; a retry starts from a new intent.
func (g *MercadoPagoGateway) takeIntent(id string) (interfaces.PaymentIntentRequest, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	req, ok := g.intents[id]
	delete(g.intents, id)
	return req, ok
}

func (g *MercadoPagoGateway) ConfirmPayment(ctx context.Context, intentID, paymentMethodRef string) (interfaces.PaymentConfirmation, error) {
	req, ok := g.takeIntent(intentID)
	if !ok {
		return interfaces.PaymentConfirmation{}, &shared.UpstreamError{Source: sourceMercadoPago, Detail: "unknown payment intent " + intentID}
	}

	amount, _ := req.Amount.Round(2).Float64()
	mpReq := payment.Request{
		TransactionAmount: amount,
		Description:       req.Description,
		ExternalReference: req.InvoiceID,
		Token:             paymentMethodRef,
		Installments:      1,
	}
	if req.PayerEmail != "" {
		mpReq.Payer = &payment.PayerRequest{Email: req.PayerEmail}
	}

	g.logger.Info("[payment][gateway] create start", zap.String("intent_id", intentID), zap.String("invoice_id", req.InvoiceID))
	resp, err := g.payments.Create(ctx, mpReq)
	if err != nil {
		g.logger.Error("[payment][gateway] sdk create failed", zap.String("intent_id", intentID), zap.Error(err))
		return interfaces.PaymentConfirmation{}, upstream(err)
	}

	if resp.Status == statusAuthorized {
		resp, err = g.payments.Capture(ctx, resp.ID)
		if err != nil {
			g.logger.Error("[payment][gateway] sdk capture failed", zap.String("intent_id", intentID), zap.Error(err))
			return interfaces.PaymentConfirmation{}, upstream(err)
		}
	}
	if resp.Status != statusApproved {
		g.logger.Warn("[payment][gateway] payment not approved",
			zap.Int("provider_payment_id", resp.ID),
			zap.String("provider_status", resp.Status),
			zap.String("status_detail", resp.StatusDetail))
		return interfaces.PaymentConfirmation{}, &shared.UpstreamError{
			Source: sourceMercadoPago,
			Detail: declineDetail(resp),
		}
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		g.logger.Error("[payment][gateway] response marshal failed", zap.Error(err))
		return interfaces.PaymentConfirmation{}, err
	}

	g.logger.Info("[payment][gateway] create success",
		zap.Int("provider_payment_id", resp.ID),
		zap.String("provider_status", resp.Status))
	return interfaces.PaymentConfirmation{
		Reference: strconv.Itoa(resp.ID),
		Status:    resp.Status,
		Raw:       raw,
	}, nil
}

func (g *MercadoPagoGateway) Refund(ctx context.Context, paymentRef string, amount decimal.Decimal, reason string) (interfaces.RefundResult, error) {
	paymentID, err := strconv.Atoi(strings.TrimSpace(paymentRef))
	if err != nil {
		return interfaces.RefundResult{}, &shared.UpstreamError{Source: sourceMercadoPago, Detail: "invalid payment reference " + paymentRef, Err: err}
	}
	if !amount.Equal(amount.Round(2)) {
		return interfaces.RefundResult{}, fmt.Errorf("%w: refund amount %s has fractions of a cent", shared.ErrInvalidInput, amount.String())
	}
	value, _ := amount.Float64()

	g.logger.Info("[payment][gateway] refund start",
		zap.Int("provider_payment_id", paymentID),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("reason", reason))
	resp, err := g.refunds.CreatePartialRefund(ctx, paymentID, value)
	if err != nil {
		g.logger.Error("[payment][gateway] sdk refund failed", zap.Int("provider_payment_id", paymentID), zap.Error(err))
		return interfaces.RefundResult{}, upstream(err)
	}
	if resp.Status != "" && resp.Status != statusApproved {
		return interfaces.RefundResult{}, &shared.UpstreamError{
			Source: sourceMercadoPago,
			Detail: fmt.Sprintf("refund %d was %s", resp.ID, resp.Status),
		}
	}
	g.logger.Info("[payment][gateway] refund success", zap.Int("provider_refund_id", resp.ID))
	return interfaces.RefundResult{ID: strconv.Itoa(resp.ID), Status: resp.Status}, nil
}

func upstream(err error) error {
	return &shared.UpstreamError{Source: sourceMercadoPago, Detail: err.Error(), Err: err}
}

func declineDetail(resp *payment.Response) string {
	if resp.StatusDetail != "" {
		return fmt.Sprintf("payment %s: %s", resp.Status, resp.StatusDetail)
	}
	return "payment " + resp.Status
}
