package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bloomwithanjli/checkout/internal/infra/logging"
)

// NewRouter wires the single, configuration-driven server definition.
// An empty origin list means any origin; a non-empty list is enforced
// strictly, with rejection.
func NewRouter(h *Handler, allowedOrigins []string, logger logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(accessLog(logger))
	r.Use(cors.New(corsConfig(allowedOrigins)))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.POST("/create-order", h.CreateOrder)
		api.POST("/verify-payment", h.VerifyPayment)
		api.GET("/download-guide/:paymentId", h.DownloadGuide)
		api.POST("/webhook", h.ReceiveWebhook)
	}

	return r
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = []string{"Content-Type", "Authorization"}
	cfg.MaxAge = 12 * time.Hour

	if len(allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = allowedOrigins
	cfg.AllowCredentials = true
	return cfg
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func accessLog(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request", map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  c.GetString("request_id"),
		})
	}
}
