package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/smb_ledger/internal/core/ports/services"
	"github.com/SscSPs/smb_ledger/internal/dto"
	"github.com/SscSPs/smb_ledger/internal/middleware"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// RegisterReportingRoutes registers routes related to financial reports
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/ledger", h.getGeneralLedger)
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/income-statement", h.getIncomeStatement)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
	}
}

// Filters on the report endpoints are never rejected: query binding only
// reads strings, and malformed dates or sort values fall back to defaults.

// getGeneralLedger godoc
// @Summary Generate the general ledger
// @Description Per-account entry listing with running balances. Malformed dates are ignored, unknown sort values fall back to date/asc, and an inverted range or unknown account yields an empty report.
// @Tags reports
// @Produce json
// @Param start_date query string false "Start date (YYYY-MM-DD), inclusive"
// @Param end_date query string false "End date (YYYY-MM-DD), inclusive"
// @Param account_code query string false "Restrict to one account"
// @Param sort_field query string false "Sort field" Enums(date, description, side, amount)
// @Param sort_order query string false "Sort order" Enums(asc, desc)
// @Success 200 {object} dto.LedgerResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/ledger [get]
func (h *reportingHandler) getGeneralLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := ownerFromContext(c, logger)
	if !ok {
		return
	}

	var params dto.LedgerQueryParams
	_ = c.ShouldBindQuery(&params)
	query := params.ToDomain(logger)

	report, err := h.reportingService.GeneralLedger(c.Request.Context(), ownerID, query)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate general ledger")
		return
	}

	logger.Info("General ledger generated successfully", slog.Int("accounts", len(report.Accounts)))
	c.JSON(http.StatusOK, dto.ToLedgerResponse(report))
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Every account with debit and credit totals and its ending balance
// @Tags reports
// @Produce json
// @Param start_date query string false "Start date (YYYY-MM-DD), inclusive"
// @Param end_date query string false "End date (YYYY-MM-DD), inclusive"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := ownerFromContext(c, logger)
	if !ok {
		return
	}

	var params dto.ReportQuery
	_ = c.ShouldBindQuery(&params)

	report, err := h.reportingService.TrialBalance(c.Request.Context(), ownerID, params.DateRange(logger))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate trial balance report")
		return
	}

	logger.Info("Trial balance report generated successfully", slog.Int("row_count", len(report.Rows)))
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// getIncomeStatement godoc
// @Summary Generate income statement
// @Description Revenue and expense balances with net income over the period
// @Tags reports
// @Produce json
// @Param start_date query string false "Start date (YYYY-MM-DD), inclusive"
// @Param end_date query string false "End date (YYYY-MM-DD), inclusive"
// @Success 200 {object} dto.IncomeStatementResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := ownerFromContext(c, logger)
	if !ok {
		return
	}

	var params dto.ReportQuery
	_ = c.ShouldBindQuery(&params)

	report, err := h.reportingService.IncomeStatement(c.Request.Context(), ownerID, params.DateRange(logger))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate income statement")
		return
	}

	logger.Info("Income statement generated successfully",
		slog.Int("revenue_accounts", len(report.Revenue)),
		slog.Int("expense_accounts", len(report.Expenses)))
	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(report))
}

// getBalanceSheet godoc
// @Summary Generate balance sheet report
// @Description Asset, liability and equity balances with the A - (L + E) check
// @Tags reports
// @Produce json
// @Param start_date query string false "Start date (YYYY-MM-DD), inclusive"
// @Param end_date query string false "End date (YYYY-MM-DD), inclusive"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := ownerFromContext(c, logger)
	if !ok {
		return
	}

	var params dto.ReportQuery
	_ = c.ShouldBindQuery(&params)

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), ownerID, params.DateRange(logger))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate balance sheet report")
		return
	}

	logger.Info("Balance sheet report generated successfully",
		slog.Int("asset_accounts", len(report.Assets)),
		slog.Int("liability_accounts", len(report.Liabilities)),
		slog.Int("equity_accounts", len(report.Equity)))
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}
