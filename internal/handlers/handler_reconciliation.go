package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/propfolio/property_ledger/internal/core/ports/services"
	"github.com/propfolio/property_ledger/internal/dto"
	"github.com/propfolio/property_ledger/internal/middleware"
)

// reconciliationHandler handles HTTP requests for bank reconciliation.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newReconciliationHandler(reconciliationService portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{reconciliationService: reconciliationService}
}

func (h *reconciliationHandler) importStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	var req dto.ImportStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for importStatement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	statement, err := h.reconciliationService.ImportStatement(c.Request.Context(), entityID, req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, statement)
}

func (h *reconciliationHandler) suggestMatches(c *gin.Context) {
	entityID := c.Param("entityID")
	bankLedgerID := c.Param("bankLedgerID")

	suggestions, err := h.reconciliationService.SuggestMatches(c.Request.Context(), entityID, bankLedgerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (h *reconciliationHandler) createReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	var req dto.CreateReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createReconciliation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	reconciliation, err := h.reconciliationService.CreateReconciliation(c.Request.Context(), entityID, req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reconciliation)
}

func (h *reconciliationHandler) createAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	var req dto.AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	entries, err := h.reconciliationService.CreateAdjustmentEntry(c.Request.Context(), entityID, req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entries": dto.ToLedgerEntryResponses(entries)})
}

func (h *reconciliationHandler) getReconciliationSummary(c *gin.Context) {
	entityID := c.Param("entityID")
	bankLedgerID := c.Param("bankLedgerID")

	var statementID *string
	if raw := c.Query("statementID"); raw != "" {
		statementID = &raw
	}

	summary, err := h.reconciliationService.ReconciliationSummary(c.Request.Context(), entityID, bankLedgerID, statementID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// registerReconciliationRoutes registers statement import and reconciliation routes
func registerReconciliationRoutes(group *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)

	group.POST("/statements", h.importStatement)
	group.POST("/reconciliations", h.createReconciliation)
	group.POST("/adjustments", h.createAdjustment)
	group.GET("/bank-ledgers/:bankLedgerID/match-suggestions", h.suggestMatches)
	group.GET("/bank-ledgers/:bankLedgerID/reconciliation-summary", h.getReconciliationSummary)
}
