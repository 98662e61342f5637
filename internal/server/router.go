package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kulugbekwork/lema/internal/logger"
)

// RouterConfig wires handlers into the HTTP router.
type RouterConfig struct {
	WebhookHandler *WebhookHandler
	BillingHandler *BillingHandler
	Logger         *logger.Logger
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(cfg.Logger), gin.Recovery())

	router.GET("/healthcheck", HealthCheck)

	router.POST("/webhooks/billing", cfg.WebhookHandler.Handle)

	// Checkout routes are optional; the webhook endpoint can run alone
	// when outbound API credentials are not configured.
	if cfg.BillingHandler != nil {
		api := router.Group("/api")
		{
			api.POST("/checkout", cfg.BillingHandler.CreateCheckout)
			api.GET("/billing-portal", cfg.BillingHandler.BillingPortal)
		}
	}

	return router
}

// requestLogger logs one structured line per request.
func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}
