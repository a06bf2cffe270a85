package routes

import (
	"fieldservice_billing/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathServices = "/services"
	PathClients  = "/clients"
	PathQuotes   = "/quotes"
	PathInvoices = "/invoices"
	PathPayouts  = "/payouts"
)

func addPartyRoutes(rg *gin.RouterGroup, h *handlers.PartyHandler) {
	services := rg.Group(PathServices)
	{
		services.PUT("/:id", h.PutService)
		services.GET("/:id", h.GetService)
	}

	clients := rg.Group(PathClients)
	{
		clients.PUT("/:id", h.PutClient)
		clients.GET("/:id", h.GetClient)
	}
}

func addQuoteRoutes(rg *gin.RouterGroup, h *handlers.QuoteHandler, invoices *handlers.InvoiceHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", h.CreateQuote)
		quotes.GET("/:id", h.GetQuote)
		quotes.PATCH("/:id", h.UpdateQuote)
		quotes.GET("/:id/status", h.GetQuoteStatus)
		quotes.POST("/:id/send", h.SendQuote)
		quotes.POST("/:id/sign", h.SignQuote)
		quotes.POST("/:id/decline", h.DeclineQuote)
		quotes.POST("/:id/transitions", h.ApplyTransition)
		quotes.GET("/:id/transitions/:kind", h.ValidateTransition)

		quotes.POST("/:id/invoice", invoices.CreateFromQuote)
		quotes.GET("/:id/invoice", invoices.GetByQuote)
	}
}

func addInvoiceRoutes(rg *gin.RouterGroup, h *handlers.InvoiceHandler) {
	invoices := rg.Group(PathInvoices)
	{
		invoices.GET("/:id", h.GetInvoice)
		invoices.PATCH("/:id", h.UpdateInvoice)
		invoices.POST("/:id/send", h.SendInvoice)
		invoices.POST("/:id/cancel", h.CancelInvoice)
		invoices.POST("/:id/pay", h.PayInvoice)
		invoices.GET("/:id/payout", h.GetPayout)
	}
}

func addPayoutRoutes(rg *gin.RouterGroup, h *handlers.PayoutHandler) {
	payouts := rg.Group(PathPayouts)
	{
		payouts.GET("/:id", h.GetPayout)
		payouts.PUT("/:id/status", h.RecordStatus)
		payouts.POST("/:id/refunds", h.RequestRefund)
	}
}
