// Package notifier tells clients that a quote is waiting for them.
package notifier

import (
	"context"
	"errors"
	"time"

	"fieldservice_billing/internal/domain/entities"
	"fieldservice_billing/internal/infrastructure/logger"
	"fieldservice_billing/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var ErrNoRecipient = errors.New("client has no email address")

// LogNotifier records the notification in the service log. Delivery is left to
// whatever ships those logs.
type LogNotifier struct {
	base *zap.Logger
}

var _ interfaces.INotifier = (*LogNotifier)(nil)

func NewLogNotifier(l *zap.Logger) *LogNotifier {
	if l == nil {
		l = zap.NewNop()
	}
	return &LogNotifier{base: l}
}

func (n *LogNotifier) QuoteSent(ctx context.Context, q entities.Quote, c entities.Client) error {
	if c.Email == "" {
		return ErrNoRecipient
	}
	logger.FromContextOr(ctx, n.base).Info("[quote][notify] quote sent",
		zap.String("quote_id", q.ID),
		zap.String("quote_number", q.QuoteNumber),
		zap.String("client_id", c.ID),
		zap.String("to", c.Email),
		zap.Time("valid_until", q.ValidUntil),
		zap.Duration("valid_for", time.Until(q.ValidUntil).Round(time.Minute)))
	return nil
}
