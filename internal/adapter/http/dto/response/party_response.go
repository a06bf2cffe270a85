package response

import (
	"time"

	"fieldservice_billing/internal/domain/entities"
)

type ServiceResponse struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"business_id,omitempty"`
	ClientID   string    `json:"client_id,omitempty"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	Price      string    `json:"price"`
	Currency   string    `json:"currency"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromService(s entities.Service) ServiceResponse {
	return ServiceResponse{
		ID:         s.ID,
		BusinessID: s.BusinessID,
		ClientID:   s.ClientID,
		Name:       s.Name,
		Status:     string(s.Status),
		Price:      s.Price.StringFixed(2),
		Currency:   s.Currency,
		UpdatedAt:  s.UpdatedAt,
	}
}

// ClientResponse reports activity in its normalized form: ACTIVE, INACTIVE or
// UNKNOWN.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Activity  string    `json:"activity"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromClient(c entities.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Activity:  string(c.Activity),
		UpdatedAt: c.UpdatedAt,
	}
}
