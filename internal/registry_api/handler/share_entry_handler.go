package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/boardroom-share-registry/internal/domain/shareentry"
	"github.com/boardroom-share-registry/internal/registry_api/middleware"
	"github.com/boardroom-share-registry/internal/registry_api/service"
)

// ShareEntryHandler handles HTTP requests for share entries. The surface is
// read-only; entries change only as a consequence of ledger transactions.
type ShareEntryHandler struct {
	entryService service.ShareEntryService
	logger       *slog.Logger
}

// NewShareEntryHandler creates a new share entry handler
func NewShareEntryHandler(logger *slog.Logger, entryService service.ShareEntryService) *ShareEntryHandler {
	return &ShareEntryHandler{
		entryService: entryService,
		logger:       logger,
	}
}

// GetByID retrieves an entry by its ID, returning 404 if not found
func (h *ShareEntryHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid share entry ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid share entry ID")
		return
	}

	tenantID := middleware.GetTenantID(c)
	entry, err := h.entryService.GetEntryByID(c.Request.Context(), tenantID, id)
	if err != nil {
		var notFoundErr shareentry.ErrEntryNotFound
		if errors.As(err, &notFoundErr) {
			RespondNotFound(c, "Share entry not found")
			return
		}
		h.logger.Error("Failed to get share entry", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, entry)
}

// List retrieves entries; ?active=true narrows to active ones and
// ?shareholder_id= narrows to one holder
func (h *ShareEntryHandler) List(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	activeOnly := c.Query("active") == "true"

	var shareholderID *uuid.UUID
	if raw := c.Query("shareholder_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondBadRequest(c, "Invalid shareholder ID")
			return
		}
		shareholderID = &id
	}

	entries, err := h.entryService.ListEntries(c.Request.Context(), tenantID, activeOnly, shareholderID)
	if err != nil {
		h.logger.Error("Failed to list share entries", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, entries)
}
