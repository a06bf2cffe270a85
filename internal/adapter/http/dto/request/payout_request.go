package request

import (
	"strings"

	"fieldservice_billing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// PayoutStatusRequest is the processor's settlement report for a payout.
type PayoutStatusRequest struct {
	Status        string `json:"status" binding:"required"`
	FailureReason string `json:"failure_reason"`
}

func (r PayoutStatusRequest) ResolveStatus() entities.PayoutStatus {
	return entities.PayoutStatus(strings.ToUpper(strings.TrimSpace(r.Status)))
}

type RefundRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}
