package handlers

import (
	"net/http"

	request "fieldservice_billing/internal/adapter/http/dto/request"
	response "fieldservice_billing/internal/adapter/http/dto/response"
	"fieldservice_billing/internal/usecase"

	"github.com/gin-gonic/gin"
)

// PartyHandler receives the service and client records owned by the
// business-side system.
type PartyHandler struct {
	usecase usecase.IPartyUseCase
}

func NewPartyHandler(uc usecase.IPartyUseCase) *PartyHandler {
	return &PartyHandler{usecase: uc}
}

// PutService godoc
// @Summary      Create or replace a service record
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "Service ID"
// @Param        service  body      request.ServiceRequest  true  "Service"
// @Success      200      {object}  response.ServiceResponse
// @Router       /services/{id} [put]
func (h *PartyHandler) PutService(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var payload request.ServiceRequest
	if !bind(c, &payload, false) {
		return
	}
	svc, err := h.usecase.UpsertService(c.Request.Context(), payload.ToInput(id))
	if err != nil {
		respondError(c, "service", err)
		return
	}
	c.JSON(http.StatusOK, response.FromService(svc))
}

func (h *PartyHandler) GetService(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	svc, err := h.usecase.GetService(c.Request.Context(), id)
	if err != nil {
		respondError(c, "service", err)
		return
	}
	c.JSON(http.StatusOK, response.FromService(svc))
}

// PutClient godoc
// @Summary      Create or replace a client record
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id      path      string                 true  "Client ID"
// @Param        client  body      request.ClientRequest  true  "Client"
// @Success      200     {object}  response.ClientResponse
// @Router       /clients/{id} [put]
func (h *PartyHandler) PutClient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var payload request.ClientRequest
	if !bind(c, &payload, false) {
		return
	}
	client, err := h.usecase.UpsertClient(c.Request.Context(), payload.ToInput(id))
	if err != nil {
		respondError(c, "client", err)
		return
	}
	c.JSON(http.StatusOK, response.FromClient(client))
}

func (h *PartyHandler) GetClient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	client, err := h.usecase.GetClient(c.Request.Context(), id)
	if err != nil {
		respondError(c, "client", err)
		return
	}
	c.JSON(http.StatusOK, response.FromClient(client))
}
