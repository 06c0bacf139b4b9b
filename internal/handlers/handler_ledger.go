package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/propfolio/property_ledger/internal/core/ports/services"
	"github.com/propfolio/property_ledger/internal/dto"
	"github.com/propfolio/property_ledger/internal/middleware"
)

// ledgerHandler handles HTTP requests for bank ledgers and ledger entries.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ledgerService}
}

func (h *ledgerHandler) createBankLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	var req dto.CreateBankLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBankLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	ledger, err := h.ledgerService.CreateBankLedger(c.Request.Context(), entityID, req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ledger)
}

func (h *ledgerHandler) getBankLedger(c *gin.Context) {
	entityID := c.Param("entityID")
	bankLedgerID := c.Param("bankLedgerID")

	ledger, err := h.ledgerService.GetBankLedgerByID(c.Request.Context(), entityID, bankLedgerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ledger)
}

func (h *ledgerHandler) listBankLedgers(c *gin.Context) {
	entityID := c.Param("entityID")

	ledgers, err := h.ledgerService.ListBankLedgers(c.Request.Context(), entityID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bankLedgers": ledgers})
}

func (h *ledgerHandler) createBalancedSet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	var req dto.CreateBalancedSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBalancedSet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	entries, err := h.ledgerService.CreateBalancedSet(c.Request.Context(), entityID, req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entries": dto.ToLedgerEntryResponses(entries)})
}

func (h *ledgerHandler) recordSimpleTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	var req dto.SimpleTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordSimpleTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	entries, err := h.ledgerService.RecordSimpleTransaction(c.Request.Context(), entityID, req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entries": dto.ToLedgerEntryResponses(entries)})
}

func (h *ledgerHandler) recordCheckDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	var req dto.CheckDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordCheckDeposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	entries, err := h.ledgerService.RecordCheckDeposit(c.Request.Context(), entityID, req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entries": dto.ToLedgerEntryResponses(entries)})
}

func (h *ledgerHandler) deleteEntry(c *gin.Context) {
	entityID := c.Param("entityID")
	entryID := c.Param("entryID")

	if _, ok := requireActor(c); !ok {
		return
	}

	if err := h.ledgerService.DeleteEntry(c.Request.Context(), entityID, entryID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ledgerHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	page, err := h.ledgerService.ListEntries(c.Request.Context(), entityID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// registerLedgerRoutes registers bank ledger and entry routes
func registerLedgerRoutes(group *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	bankLedgers := group.Group("/bank-ledgers")
	{
		bankLedgers.POST("", h.createBankLedger)
		bankLedgers.GET("", h.listBankLedgers)
		bankLedgers.GET("/:bankLedgerID", h.getBankLedger)
	}

	entries := group.Group("/entries")
	{
		entries.POST("", h.createBalancedSet)
		entries.GET("", h.listEntries)
		entries.DELETE("/:entryID", h.deleteEntry)
	}

	group.POST("/transactions", h.recordSimpleTransaction)
	group.POST("/check-deposits", h.recordCheckDeposit)
}
