package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/boardroom-share-registry/internal/registry_api/middleware"
	"github.com/boardroom-share-registry/internal/registry_api/service"
)

// CapTableHandler handles HTTP requests for ownership aggregations
type CapTableHandler struct {
	capTableService service.CapTableService
	logger          *slog.Logger
}

// NewCapTableHandler creates a new cap table handler
func NewCapTableHandler(logger *slog.Logger, capTableService service.CapTableService) *CapTableHandler {
	return &CapTableHandler{
		capTableService: capTableService,
		logger:          logger,
	}
}

// Get computes and returns the tenant's current cap table
func (h *CapTableHandler) Get(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	summary, err := h.capTableService.GetCapTable(c.Request.Context(), tenantID)
	if err != nil {
		h.logger.Error("Failed to compute cap table", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, summary)
}

// Export returns the full registry document: shareholders, transaction
// history and the current cap table
func (h *CapTableHandler) Export(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	export, err := h.capTableService.Export(c.Request.Context(), tenantID)
	if err != nil {
		h.logger.Error("Failed to export registry", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, export)
}
