package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceStatus is owned by the business-side service workflow; this service
// only reads it as a precondition.
type ServiceStatus string

const (
	ServiceStatusPending   ServiceStatus = "PENDING"
	ServiceStatusActive    ServiceStatus = "ACTIVE"
	ServiceStatusCompleted ServiceStatus = "COMPLETED"
	ServiceStatusCancelled ServiceStatus = "CANCELLED"
)

func (s ServiceStatus) IsValid() bool {
	switch s {
	case ServiceStatusPending, ServiceStatusActive, ServiceStatusCompleted, ServiceStatusCancelled:
		return true
	}
	return false
}

// Service is a sellable unit of work for a client.
type Service struct {
	ID         string          `json:"id"`
	BusinessID string          `json:"business_id"`
	ClientID   string          `json:"client_id"`
	Name       string          `json:"name"`
	Status     ServiceStatus   `json:"status"`
	Price      decimal.Decimal `json:"price"`
	Currency   string          `json:"currency"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
