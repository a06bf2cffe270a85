package handlers

import (
	"net/http"

	request "fieldservice_billing/internal/adapter/http/dto/request"
	response "fieldservice_billing/internal/adapter/http/dto/response"
	"fieldservice_billing/internal/usecase"

	"github.com/gin-gonic/gin"
)

// PayoutHandler handles payout settlement reports and refunds.
type PayoutHandler struct {
	payouts usecase.IPayoutUseCase
	flow    usecase.IWorkflowCoordinator
}

func NewPayoutHandler(payouts usecase.IPayoutUseCase, flow usecase.IWorkflowCoordinator) *PayoutHandler {
	return &PayoutHandler{payouts: payouts, flow: flow}
}

// GetPayout godoc
// @Summary      Get a payout
// @Tags         payouts
// @Produce      json
// @Param        id   path      string  true  "Payout ID"
// @Success      200  {object}  response.PayoutResponse
// @Router       /payouts/{id} [get]
func (h *PayoutHandler) GetPayout(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.payouts.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "payout", err)
		return
	}
	c.JSON(http.StatusOK, response.FromPayoutView(h.payouts.View(p)))
}

// RecordStatus godoc
// @Summary      Record the processor's payout status
// @Tags         payouts
// @Accept       json
// @Produce      json
// @Param        id      path      string                       true  "Payout ID"
// @Param        status  body      request.PayoutStatusRequest  true  "Status"
// @Success      200     {object}  response.PayoutResponse
// @Router       /payouts/{id}/status [put]
func (h *PayoutHandler) RecordStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var payload request.PayoutStatusRequest
	if !bind(c, &payload, false) {
		return
	}
	p, err := h.flow.RecordPayoutStatus(c.Request.Context(), id, payload.ResolveStatus(), payload.FailureReason)
	if err != nil {
		respondError(c, "payout", err)
		return
	}
	c.JSON(http.StatusOK, response.FromPayoutView(h.payouts.View(p)))
}

// RequestRefund godoc
// @Summary      Refund part or all of a settled payout
// @Tags         payouts
// @Accept       json
// @Produce      json
// @Param        id      path      string                 true  "Payout ID"
// @Param        refund  body      request.RefundRequest  true  "Refund"
// @Success      201     {object}  response.PayoutResponse
// @Failure      422     {object}  pkg.HTTPError
// @Failure      502     {object}  pkg.HTTPError
// @Router       /payouts/{id}/refunds [post]
func (h *PayoutHandler) RequestRefund(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var payload request.RefundRequest
	if !bind(c, &payload, false) {
		return
	}
	p, err := h.payouts.RequestRefund(c.Request.Context(), id, payload.Amount, payload.Reason)
	if err != nil {
		respondError(c, "payout", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromPayoutView(h.payouts.View(p)))
}
