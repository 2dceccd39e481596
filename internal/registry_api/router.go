// Package registry_api assembles the HTTP surface of the share registry.
package registry_api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/boardroom-share-registry/internal/registry_api/handler"
	"github.com/boardroom-share-registry/internal/registry_api/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	shareholderHandler *handler.ShareholderHandler,
	entryHandler *handler.ShareEntryHandler,
	transactionHandler *handler.TransactionHandler,
	capTableHandler *handler.CapTableHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints, all tenant scoped
	v1 := r.Group("/api/v1")
	v1.Use(middleware.TenantID())
	{
		// Shareholder operations
		shareholders := v1.Group("/shareholders")
		{
			shareholders.POST("", shareholderHandler.Create)
			shareholders.GET("", shareholderHandler.List)
			shareholders.GET("/:id", shareholderHandler.GetByID)
			shareholders.PUT("/:id", shareholderHandler.Update)
			shareholders.DELETE("/:id", shareholderHandler.Remove)
		}

		// Share entry reads; entries mutate only through transactions
		shares := v1.Group("/shares")
		{
			shares.GET("", entryHandler.List)
			shares.GET("/:id", entryHandler.GetByID)
		}

		// Ledger operations. The ledger is append-only: modification and
		// deletion verbs answer 405.
		transactions := v1.Group("/transactions")
		{
			transactions.POST("", transactionHandler.Create)
			transactions.GET("", transactionHandler.List)
			transactions.GET("/:id", transactionHandler.GetByID)
			transactions.PUT("/:id", transactionHandler.Immutable)
			transactions.PATCH("/:id", transactionHandler.Immutable)
			transactions.DELETE("/:id", transactionHandler.Immutable)
		}

		// Aggregations
		v1.GET("/captable", capTableHandler.Get)
		v1.GET("/registry/export", capTableHandler.Export)
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
