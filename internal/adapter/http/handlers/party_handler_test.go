package handlers

import (
	"net/http"
	"testing"

	"fieldservice_billing/internal/adapter/http/handlers/mocks"
	"fieldservice_billing/internal/domain/entities"
	"fieldservice_billing/internal/domain/shared"
	"fieldservice_billing/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestPartyHandler_PutService(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIPartyUseCase(ctrl)
	r := gin.New()
	r.PUT("/v1/services/:id", NewPartyHandler(uc).PutService)

	uc.EXPECT().UpsertService(gomock.Any(), usecase.ServiceInput{
		ID: "svc-1", Name: "Boiler service", Status: entities.ServiceStatusActive,
		Price: decimal.RequireFromString("100.00"), Currency: "CAD",
	}).Return(entities.Service{ID: "svc-1", Status: entities.ServiceStatusActive, Price: decimal.NewFromInt(100), Currency: "CAD"}, nil)

	w := serve(r, http.MethodPut, "/v1/services/svc-1", `{"name":"Boiler service","status":"active","price":"100.00","currency":"CAD"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if body := decode(t, w); body["price"] != "100.00" {
		t.Fatalf("unexpected response body: %s", w.Body.String())
	}
}

func TestPartyHandler_PutClientAcceptsStringFlag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIPartyUseCase(ctrl)
	r := gin.New()
	r.PUT("/v1/clients/:id", NewPartyHandler(uc).PutClient)
	r.GET("/v1/clients/:id", NewPartyHandler(uc).GetClient)

	uc.EXPECT().UpsertClient(gomock.Any(), usecase.ClientInput{ID: "cl-1", Email: "ana@example.com", Active: "True"}).
		Return(entities.Client{ID: "cl-1", Email: "ana@example.com", Activity: entities.ClientActivityActive}, nil)

	w := serve(r, http.MethodPut, "/v1/clients/cl-1", `{"email":"ana@example.com","is_active":"True"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if body := decode(t, w); body["activity"] != "ACTIVE" {
		t.Fatalf("unexpected response body: %s", w.Body.String())
	}

	uc.EXPECT().GetClient(gomock.Any(), "cl-2").Return(entities.Client{}, shared.ErrNotFound)
	if w := serve(r, http.MethodGet, "/v1/clients/cl-2", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
