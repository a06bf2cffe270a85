package routes

import (
	"net/http"

	_ "fieldservice_billing/docs" // swagger docs
	"fieldservice_billing/internal/adapter/http/handlers"
	"fieldservice_billing/internal/infrastructure/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted under /v1.
type Handlers struct {
	Quotes   *handlers.QuoteHandler
	Invoices *handlers.InvoiceHandler
	Payouts  *handlers.PayoutHandler
	Parties  *handlers.PartyHandler
}

// NewRouter builds the engine: request logging and recovery, swagger, the
// metrics endpoint when metricsHandler is set, and the /v1 API.
func NewRouter(log *zap.Logger, h Handlers, metricsHandler http.Handler) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, log)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPartyRoutes(v1, h.Parties)
	addQuoteRoutes(v1, h.Quotes, h.Invoices)
	addInvoiceRoutes(v1, h.Invoices)
	addPayoutRoutes(v1, h.Payouts)
	return router
}

func setMiddlewares(router *gin.Engine, log *zap.Logger) {
	router.Use(logger.Recovery(log))
	router.Use(logger.GinMiddleware(log))
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}
