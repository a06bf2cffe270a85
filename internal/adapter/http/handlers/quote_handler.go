package handlers

import (
	"net/http"

	request "fieldservice_billing/internal/adapter/http/dto/request"
	response "fieldservice_billing/internal/adapter/http/dto/response"
	"fieldservice_billing/internal/usecase"

	"github.com/gin-gonic/gin"
)

// QuoteHandler handles HTTP requests for quotes.
type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// CreateQuote godoc
// @Summary      Draft a quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        quote  body      request.CreateQuoteRequest  true  "Quote"
// @Success      201    {object}  response.QuoteResponse
// @Failure      400    {object}  pkg.HTTPError
// @Failure      404    {object}  pkg.HTTPError
// @Failure      422    {object}  pkg.HTTPError
// @Router       /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.CreateQuoteRequest
	if !bind(c, &payload, false) {
		return
	}
	q, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		respondError(c, "quote", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromQuote(q, now()))
}

// GetQuote godoc
// @Summary      Get a quote
// @Tags         quotes
// @Produce      json
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  response.QuoteResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	q, err := h.usecase.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "quote", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q, now()))
}

// UpdateQuote godoc
// @Summary      Edit a quote
// @Description  Draft quotes accept every field. After sending only the deadline and notes change; after a decision only notes.
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id     path      string                      true  "Quote ID"
// @Param        quote  body      request.UpdateQuoteRequest  true  "Edit"
// @Success      200    {object}  response.QuoteResponse
// @Failure      409    {object}  pkg.HTTPError
// @Failure      423    {object}  pkg.HTTPError
// @Router       /quotes/{id} [patch]
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var payload request.UpdateQuoteRequest
	if !bind(c, &payload, false) {
		return
	}
	q, err := h.usecase.Update(c.Request.Context(), id, payload.ToInput())
	if err != nil {
		respondError(c, "quote", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q, now()))
}

// SendQuote godoc
// @Summary      Send a quote to its client
// @Tags         quotes
// @Produce      json
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  response.QuoteResponse
// @Failure      422  {object}  pkg.HTTPError
// @Router       /quotes/{id}/send [post]
func (h *QuoteHandler) SendQuote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	q, err := h.usecase.Send(c.Request.Context(), id)
	if err != nil {
		respondError(c, "quote", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q, now()))
}

// SignQuote godoc
// @Summary      Sign a sent quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id         path      string                    true  "Quote ID"
// @Param        signature  body      request.SignQuoteRequest  true  "Signature"
// @Success      200        {object}  response.QuoteResponse
// @Failure      410        {object}  pkg.HTTPError
// @Failure      422        {object}  pkg.HTTPError
// @Router       /quotes/{id}/sign [post]
func (h *QuoteHandler) SignQuote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var payload request.SignQuoteRequest
	if !bind(c, &payload, false) {
		return
	}
	q, err := h.usecase.Sign(c.Request.Context(), id, payload.Signature.ToInput())
	if err != nil {
		respondError(c, "quote", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q, now()))
}

// DeclineQuote godoc
// @Summary      Decline a sent quote
// @Tags         quotes
// @Produce      json
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  response.QuoteResponse
// @Failure      410  {object}  pkg.HTTPError
// @Router       /quotes/{id}/decline [post]
func (h *QuoteHandler) DeclineQuote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	q, err := h.usecase.Decline(c.Request.Context(), id)
	if err != nil {
		respondError(c, "quote", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q, now()))
}

// ApplyTransition godoc
// @Summary      Apply a named transition (send, sign, decline)
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id          path      string                     true  "Quote ID"
// @Param        transition  body      request.TransitionRequest  true  "Transition"
// @Success      200         {object}  response.QuoteResponse
// @Router       /quotes/{id}/transitions [post]
func (h *QuoteHandler) ApplyTransition(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var payload request.TransitionRequest
	if !bind(c, &payload, false) {
		return
	}
	q, err := h.usecase.ApplyTransition(c.Request.Context(), id, payload.ResolveKind(), payload.ToPayload())
	if err != nil {
		respondError(c, "quote", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q, now()))
}

// ValidateTransition godoc
// @Summary      List every reason blocking a transition
// @Tags         quotes
// @Produce      json
// @Param        id    path      string  true  "Quote ID"
// @Param        kind  path      string  true  "send, sign or decline"
// @Success      200   {object}  response.TransitionCheckResponse
// @Router       /quotes/{id}/transitions/{kind} [get]
func (h *QuoteHandler) ValidateTransition(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	kind := request.TransitionRequest{Kind: c.Param("kind")}.ResolveKind()
	reasons, err := h.usecase.ValidateTransition(c.Request.Context(), id, kind)
	if err != nil {
		respondError(c, "quote", err)
		return
	}
	c.JSON(http.StatusOK, response.FromReasons(kind, reasons))
}

// GetQuoteStatus godoc
// @Summary      Effective status of a quote
// @Tags         quotes
// @Produce      json
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  response.QuoteStatusResponse
// @Router       /quotes/{id}/status [get]
func (h *QuoteHandler) GetQuoteStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	status, err := h.usecase.EffectiveStatus(c.Request.Context(), id)
	if err != nil {
		respondError(c, "quote", err)
		return
	}
	c.JSON(http.StatusOK, response.QuoteStatusResponse{ID: id, Status: string(status)})
}
