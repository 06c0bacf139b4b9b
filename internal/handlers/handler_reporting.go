package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/propfolio/property_ledger/internal/core/ports/services"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

// parseDateParam parses an optional YYYY-MM-DD query parameter, defaulting to
// the given fallback.
func parseDateParam(c *gin.Context, name string, fallback time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

// parseRequiredDateParam parses a mandatory YYYY-MM-DD query parameter.
func parseRequiredDateParam(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " query parameter is required"})
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

func (h *reportingHandler) getAccountBalance(c *gin.Context) {
	entityID := c.Param("entityID")
	accountID := c.Param("accountID")

	var asOf *time.Time
	if raw := c.Query("asOf"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
			return
		}
		asOf = &t
	}

	balance, err := h.reportingService.AccountBalance(c.Request.Context(), entityID, accountID, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accountID": accountID, "balance": balance})
}

func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	entityID := c.Param("entityID")

	asOf, ok := parseDateParam(c, "asOf", time.Now().UTC())
	if !ok {
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), entityID, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) getFinancialSummary(c *gin.Context) {
	entityID := c.Param("entityID")

	summary, err := h.reportingService.FinancialSummary(c.Request.Context(), entityID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	entityID := c.Param("entityID")

	from, ok := parseRequiredDateParam(c, "from")
	if !ok {
		return
	}
	to, ok := parseRequiredDateParam(c, "to")
	if !ok {
		return
	}

	report, err := h.reportingService.IncomeStatement(c.Request.Context(), entityID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	entityID := c.Param("entityID")

	asOf, ok := parseDateParam(c, "asOf", time.Now().UTC())
	if !ok {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), entityID, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) getCashFlowStatement(c *gin.Context) {
	entityID := c.Param("entityID")

	from, ok := parseRequiredDateParam(c, "from")
	if !ok {
		return
	}
	to, ok := parseRequiredDateParam(c, "to")
	if !ok {
		return
	}

	report, err := h.reportingService.CashFlowStatement(c.Request.Context(), entityID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// registerReportingRoutes registers financial report routes
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	group.GET("/accounts/:accountID/balance", h.getAccountBalance)

	reports := group.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/summary", h.getFinancialSummary)
		reports.GET("/income-statement", h.getIncomeStatement)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/cash-flow", h.getCashFlowStatement)
	}
}
