package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/boardroom-share-registry/internal/domain/shared"
	"github.com/boardroom-share-registry/internal/domain/shareholder"
	"github.com/boardroom-share-registry/internal/registry_api/middleware"
	"github.com/boardroom-share-registry/internal/registry_api/service"
)

// ShareholderHandler handles HTTP requests for shareholder operations
type ShareholderHandler struct {
	shareholderService service.ShareholderService
	logger             *slog.Logger
}

// NewShareholderHandler creates a new shareholder handler
func NewShareholderHandler(logger *slog.Logger, shareholderService service.ShareholderService) *ShareholderHandler {
	return &ShareholderHandler{
		shareholderService: shareholderService,
		logger:             logger,
	}
}

// Create registers a new shareholder
func (h *ShareholderHandler) Create(c *gin.Context) {
	var req CreateShareholderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tenantID := middleware.GetTenantID(c)
	holder, err := h.shareholderService.CreateShareholder(c.Request.Context(), tenantID, req.Name, req.Type, req.OrganizationNumber, req.Email, req.Address)
	if err != nil {
		if errors.Is(err, shareholder.ErrEmptyName) || errors.Is(err, shareholder.ErrInvalidType) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create shareholder", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, holder)
}

// GetByID retrieves a shareholder by its ID, returning 404 if not found
func (h *ShareholderHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid shareholder ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid shareholder ID")
		return
	}

	tenantID := middleware.GetTenantID(c)
	holder, err := h.shareholderService.GetShareholderByID(c.Request.Context(), tenantID, id)
	if err != nil {
		var notFoundErr shareholder.ErrShareholderNotFound
		if errors.As(err, &notFoundErr) {
			RespondNotFound(c, "Shareholder not found")
			return
		}
		h.logger.Error("Failed to get shareholder", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, holder)
}

// List retrieves the tenant's shareholders; ?active=true narrows to active ones
func (h *ShareholderHandler) List(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	activeOnly := c.Query("active") == "true"

	holders, err := h.shareholderService.ListShareholders(c.Request.Context(), tenantID, activeOnly)
	if err != nil {
		h.logger.Error("Failed to list shareholders", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, holders)
}

// Update applies a partial update to a shareholder
func (h *ShareholderHandler) Update(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid shareholder ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid shareholder ID")
		return
	}

	var req UpdateShareholderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	patch := shareholder.Patch{
		Name:               req.Name,
		OrganizationNumber: req.OrganizationNumber,
		Email:              req.Email,
		Address:            req.Address,
	}
	if req.Type != nil {
		t := shared.ShareholderType(*req.Type)
		patch.Type = &t
	}

	tenantID := middleware.GetTenantID(c)
	holder, err := h.shareholderService.UpdateShareholder(c.Request.Context(), tenantID, id, patch)
	if err != nil {
		var notFoundErr shareholder.ErrShareholderNotFound
		switch {
		case errors.As(err, &notFoundErr):
			RespondNotFound(c, "Shareholder not found")
		case errors.Is(err, shareholder.ErrEmptyName), errors.Is(err, shareholder.ErrInvalidType):
			RespondBadRequest(c, err.Error())
		default:
			h.logger.Error("Failed to update shareholder", "id", idParam, "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, holder)
}

// Remove soft-removes a shareholder. Removal is refused with 409 while the
// holder still has active share entries.
func (h *ShareholderHandler) Remove(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid shareholder ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid shareholder ID")
		return
	}

	tenantID := middleware.GetTenantID(c)
	if err := h.shareholderService.RemoveShareholder(c.Request.Context(), tenantID, id); err != nil {
		var notFoundErr shareholder.ErrShareholderNotFound
		var activeHoldingsErr shareholder.ErrActiveHoldings
		switch {
		case errors.As(err, &notFoundErr):
			RespondNotFound(c, "Shareholder not found")
		case errors.As(err, &activeHoldingsErr):
			RespondConflict(c, "Shareholder still holds active share entries")
		default:
			h.logger.Error("Failed to remove shareholder", "id", idParam, "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondNoContent(c)
}
