package router

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pticevod/poultry-ledger/internal/server/handlers"
)

// New wires the Gin engine with routes and middleware.
func New(batch *handlers.BatchHandler, product *handlers.ProductHandler,
	log *slog.Logger, exposeMetrics bool) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))

	api := r.Group("/api")
	{
		api.POST("/batches", batch.Create)
		api.GET("/batches", batch.List)
		api.GET("/batches/:id", batch.Get)
		api.PUT("/batches/:id/name", batch.Rename)
		api.POST("/batches/:id/mortality", batch.RegisterMortality)
		api.POST("/batches/:id/status", batch.SwitchStatus)
		api.POST("/batches/:id/product-consumption", batch.RegisterConsumption)
		api.POST("/batches/:id/weight-measurements", batch.RegisterWeight)
		api.GET("/batches/:id/activities", batch.ListActivities)
		api.GET("/batches/:id/report.xlsx", batch.LedgerReport)

		api.POST("/products", product.Create)
		api.GET("/products", product.List)
		api.GET("/products/:id", product.Get)
		api.POST("/products/:id/receive", product.ReceiveStock)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	if exposeMetrics {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	return r
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP())
	}
}
