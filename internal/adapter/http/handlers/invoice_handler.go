package handlers

import (
	"net/http"

	request "fieldservice_billing/internal/adapter/http/dto/request"
	response "fieldservice_billing/internal/adapter/http/dto/response"
	"fieldservice_billing/internal/usecase"

	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles HTTP requests for invoices. Creation and payment go
// through the workflow coordinator.
type InvoiceHandler struct {
	invoices usecase.IInvoiceUseCase
	payouts  usecase.IPayoutUseCase
	flow     usecase.IWorkflowCoordinator
}

func NewInvoiceHandler(invoices usecase.IInvoiceUseCase, payouts usecase.IPayoutUseCase, flow usecase.IWorkflowCoordinator) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, payouts: payouts, flow: flow}
}

// CreateFromQuote godoc
// @Summary      Invoice a signed quote
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true   "Quote ID"
// @Param        invoice  body      request.CreateInvoiceRequest  false  "Overrides"
// @Success      201      {object}  response.InvoiceResponse
// @Failure      409      {object}  pkg.HTTPError
// @Router       /quotes/{id}/invoice [post]
func (h *InvoiceHandler) CreateFromQuote(c *gin.Context) {
	quoteID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var payload request.CreateInvoiceRequest
	if !bind(c, &payload, true) {
		return
	}
	inv, err := h.flow.CreateInvoiceFromQuote(c.Request.Context(), quoteID, payload.ToInput())
	if err != nil {
		respondError(c, "invoice", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromInvoice(inv))
}

// GetByQuote godoc
// @Summary      Get the invoice of a quote
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  response.InvoiceResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /quotes/{id}/invoice [get]
func (h *InvoiceHandler) GetByQuote(c *gin.Context) {
	quoteID, ok := pathID(c, "id")
	if !ok {
		return
	}
	inv, err := h.invoices.GetByQuote(c.Request.Context(), quoteID)
	if err != nil {
		respondError(c, "invoice", err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// GetInvoice godoc
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  response.InvoiceResponse
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	inv, err := h.invoices.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "invoice", err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// UpdateInvoice godoc
// @Summary      Edit a draft or sent invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Invoice ID"
// @Param        invoice  body      request.UpdateInvoiceRequest  true  "Edit"
// @Success      200      {object}  response.InvoiceResponse
// @Failure      423      {object}  pkg.HTTPError
// @Router       /invoices/{id} [patch]
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var payload request.UpdateInvoiceRequest
	if !bind(c, &payload, false) {
		return
	}
	inv, err := h.invoices.Update(c.Request.Context(), id, payload.ToInput())
	if err != nil {
		respondError(c, "invoice", err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// SendInvoice godoc
// @Summary      Send an invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  response.InvoiceResponse
// @Router       /invoices/{id}/send [post]
func (h *InvoiceHandler) SendInvoice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	inv, err := h.invoices.Send(c.Request.Context(), id)
	if err != nil {
		respondError(c, "invoice", err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// CancelInvoice godoc
// @Summary      Cancel an unpaid invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  response.InvoiceResponse
// @Router       /invoices/{id}/cancel [post]
func (h *InvoiceHandler) CancelInvoice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	inv, err := h.invoices.Cancel(c.Request.Context(), id)
	if err != nil {
		respondError(c, "invoice", err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// PayInvoice godoc
// @Summary      Charge the client and mark the invoice paid
// @Description  Charges at most once per invoice; repeating the call returns the paid invoice and its payout.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Invoice ID"
// @Param        payment  body      request.PayInvoiceRequest  true  "Payment method"
// @Success      200      {object}  response.InvoicePaymentResponse
// @Failure      409      {object}  pkg.HTTPError
// @Failure      502      {object}  pkg.HTTPError
// @Router       /invoices/{id}/pay [post]
func (h *InvoiceHandler) PayInvoice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var payload request.PayInvoiceRequest
	if !bind(c, &payload, false) {
		return
	}
	inv, payout, err := h.flow.MarkInvoicePaid(c.Request.Context(), id, payload.ResolveMethodRef())
	if err != nil {
		respondError(c, "invoice", err)
		return
	}
	c.JSON(http.StatusOK, response.InvoicePaymentResponse{
		Invoice: response.FromInvoice(inv),
		Payout:  response.FromPayoutView(h.payouts.View(payout)),
	})
}

// GetPayout godoc
// @Summary      Get the payout of an invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  response.PayoutResponse
// @Router       /invoices/{id}/payout [get]
func (h *InvoiceHandler) GetPayout(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.payouts.GetByInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, "payout", err)
		return
	}
	c.JSON(http.StatusOK, response.FromPayoutView(h.payouts.View(p)))
}
