package request

import (
	"strings"

	"fieldservice_billing/internal/domain/entities"
	"fieldservice_billing/internal/usecase"

	"github.com/shopspring/decimal"
)

// ServiceRequest mirrors the business-side service record; the id comes from
// the path.
type ServiceRequest struct {
	BusinessID string          `json:"business_id"`
	ClientID   string          `json:"client_id"`
	Name       string          `json:"name"`
	Status     string          `json:"status" binding:"required"`
	Price      decimal.Decimal `json:"price"`
	Currency   string          `json:"currency"`
}

func (r ServiceRequest) ToInput(id string) usecase.ServiceInput {
	return usecase.ServiceInput{
		ID:         id,
		BusinessID: r.BusinessID,
		ClientID:   r.ClientID,
		Name:       r.Name,
		Status:     entities.ServiceStatus(strings.ToUpper(strings.TrimSpace(r.Status))),
		Price:      r.Price,
		Currency:   r.Currency,
	}
}

// ClientRequest accepts is_active as a boolean, as "True"/"False", or absent.
type ClientRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive any    `json:"is_active"`
}

func (r ClientRequest) ToInput(id string) usecase.ClientInput {
	return usecase.ClientInput{ID: id, Name: r.Name, Email: r.Email, Active: r.IsActive}
}
