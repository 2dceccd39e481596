package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/boardroom-share-registry/internal/domain/shared"
	"github.com/boardroom-share-registry/internal/domain/shareentry"
	"github.com/boardroom-share-registry/internal/domain/shareholder"
	"github.com/boardroom-share-registry/internal/domain/sharetx"
	"github.com/boardroom-share-registry/internal/registry_api/middleware"
	"github.com/boardroom-share-registry/internal/registry_api/service"
)

// TransactionHandler handles HTTP requests for ledger transactions
type TransactionHandler struct {
	transactionService service.TransactionService
	logger             *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(logger *slog.Logger, transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// Create records a new ledger transaction and applies its holdings changes
func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	transaction := &sharetx.Transaction{
		TenantID:        middleware.GetTenantID(c),
		Type:            shared.TransactionType(req.Type),
		ShareClass:      shared.ShareClass(req.ShareClass),
		NumberOfShares:  req.NumberOfShares,
		ShareNumberFrom: req.ShareNumberFrom,
		ShareNumberTo:   req.ShareNumberTo,
		NominalValue:    req.NominalValue,
		VotesPerShare:   req.VotesPerShare,
		PricePerShare:   req.PricePerShare,
		TotalAmount:     req.TotalAmount,
		Description:     req.Description,
	}

	if req.Date != "" {
		date, err := parseTransactionDate(req.Date)
		if err != nil {
			RespondBadRequest(c, "Invalid date: use YYYY-MM-DD or RFC 3339")
			return
		}
		transaction.Date = date
	}

	if req.FromShareholderID != nil {
		id, err := uuid.Parse(*req.FromShareholderID)
		if err != nil {
			RespondBadRequest(c, "Invalid source shareholder ID")
			return
		}
		transaction.FromShareholderID = &id
	}
	if req.ToShareholderID != nil {
		id, err := uuid.Parse(*req.ToShareholderID)
		if err != nil {
			RespondBadRequest(c, "Invalid destination shareholder ID")
			return
		}
		transaction.ToShareholderID = &id
	}

	created, err := h.transactionService.CreateTransaction(c.Request.Context(), transaction)
	if err != nil {
		h.respondTransactionError(c, err)
		return
	}

	RespondCreated(c, created)
}

// GetByID retrieves a transaction by its ID, returning 404 if not found
func (h *TransactionHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid transaction ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid transaction ID")
		return
	}

	tenantID := middleware.GetTenantID(c)
	transaction, err := h.transactionService.GetTransactionByID(c.Request.Context(), tenantID, id)
	if err != nil {
		var notFoundErr sharetx.ErrTransactionNotFound
		if errors.As(err, &notFoundErr) {
			RespondNotFound(c, "Transaction not found")
			return
		}
		h.logger.Error("Failed to get transaction", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, transaction)
}

// List retrieves the tenant's full transaction history, newest first
func (h *TransactionHandler) List(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	transactions, err := h.transactionService.ListTransactions(c.Request.Context(), tenantID)
	if err != nil {
		h.logger.Error("Failed to list transactions", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, transactions)
}

// Immutable answers every attempt to modify or delete a ledger transaction.
// Corrections are recorded as new offsetting transactions.
func (h *TransactionHandler) Immutable(c *gin.Context) {
	RespondImmutableLedger(c)
}

// respondTransactionError maps orchestration failures onto the HTTP surface
func (h *TransactionHandler) respondTransactionError(c *gin.Context, err error) {
	var (
		holderNotFoundErr shareholder.ErrShareholderNotFound
		notHeldErr        sharetx.ErrSharesNotHeld
		overlapErr        sharetx.ErrRangeOverlap
		votesErr          sharetx.ErrVotingWeightMismatch
		inactiveErr       sharetx.ErrShareholderInactive
		emptyClassErr     sharetx.ErrEmptyShareClass
		consumedErr       shareentry.ErrEntryConsumed
	)

	switch {
	case errors.As(err, &holderNotFoundErr):
		RespondNotFound(c, "Shareholder not found: "+holderNotFoundErr.ShareholderID.String())
	case errors.As(err, &notHeldErr):
		RespondConflict(c, err.Error())
	case errors.As(err, &overlapErr):
		RespondConflict(c, err.Error())
	case errors.As(err, &consumedErr):
		RespondConflict(c, "A concurrent transaction consumed the affected shares; retry")
	case errors.As(err, &votesErr),
		errors.As(err, &inactiveErr),
		errors.As(err, &emptyClassErr),
		errors.Is(err, sharetx.ErrInvalidTransactionType),
		errors.Is(err, sharetx.ErrInvalidShareCount),
		errors.Is(err, sharetx.ErrInvalidShareRange),
		errors.Is(err, sharetx.ErrMissingRecipient),
		errors.Is(err, sharetx.ErrMissingSource),
		errors.Is(err, sharetx.ErrInvalidSplitRatio),
		errors.Is(err, sharetx.ErrSplitRatioTooLarge),
		errors.Is(err, shareentry.ErrInvalidRange),
		errors.Is(err, shareentry.ErrInvalidNominalValue),
		errors.Is(err, shareentry.ErrNegativeVotes),
		errors.Is(err, shareentry.ErrInvalidShareClass):
		RespondBadRequest(c, err.Error())
	default:
		h.logger.Error("Failed to create transaction", "error", err)
		RespondInternalError(c)
	}
}

// parseTransactionDate accepts a plain date or a full RFC 3339 timestamp
func parseTransactionDate(raw string) (time.Time, error) {
	if date, err := time.Parse("2006-01-02", raw); err == nil {
		return date, nil
	}
	return time.Parse(time.RFC3339, raw)
}
