package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/propfolio/property_ledger/internal/core/ports/services"
	"github.com/propfolio/property_ledger/internal/dto"
	"github.com/propfolio/property_ledger/internal/middleware"
)

// chartAccountHandler handles HTTP requests for the chart of accounts.
type chartAccountHandler struct {
	accountService portssvc.ChartAccountSvcFacade
}

func newChartAccountHandler(accountService portssvc.ChartAccountSvcFacade) *chartAccountHandler {
	return &chartAccountHandler{accountService: accountService}
}

func (h *chartAccountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	var req dto.CreateChartAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), entityID, req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToChartAccountResponse(account))
}

func (h *chartAccountHandler) getAccount(c *gin.Context) {
	entityID := c.Param("entityID")
	accountID := c.Param("accountID")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), entityID, accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChartAccountResponse(account))
}

func (h *chartAccountHandler) listAccounts(c *gin.Context) {
	entityID := c.Param("entityID")
	includeInactive := c.Query("includeInactive") == "true"

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), entityID, includeInactive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToChartAccountResponses(accounts)})
}

func (h *chartAccountHandler) deactivateAccount(c *gin.Context) {
	entityID := c.Param("entityID")
	accountID := c.Param("accountID")

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), entityID, accountID, actor); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// registerAccountRoutes registers chart of accounts routes
func registerAccountRoutes(group *gin.RouterGroup, accountService portssvc.ChartAccountSvcFacade) {
	h := newChartAccountHandler(accountService)

	accounts := group.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.DELETE("/:accountID", h.deactivateAccount)
	}
}
