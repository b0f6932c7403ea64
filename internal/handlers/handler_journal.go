package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/smb_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/smb_ledger/internal/core/ports/services"
	"github.com/SscSPs/smb_ledger/internal/dto"
	"github.com/SscSPs/smb_ledger/internal/middleware"
)

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService portssvc.PostingSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.PostingSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// RegisterJournalRoutes registers journal specific routes
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.PostingSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:journalID", h.getJournal)
	}
}

// createJournal godoc
// @Summary Post a manual journal
// @Description Stores a caller-built journal such as opening balances or closing entries. Every account must exist and debits must equal credits.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.CreateJournalRequest true "Journal with entries"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid or unbalanced journal"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Source reference already posted"
// @Failure 500 {object} map[string]string "Failed to persist journal"
// @Security BearerAuth
// @Router /journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := ownerFromContext(c, logger)
	if !ok {
		return
	}

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}
	draft, err := req.ToDomain()
	if err != nil {
		respondServiceError(c, logger, err, "Invalid journal")
		return
	}

	journal, err := h.journalService.PostJournal(c.Request.Context(), ownerID, draft)
	if err != nil {
		// The draft came from the caller, so an imbalance is their input error.
		if errors.Is(err, apperrors.ErrImbalance) {
			logger.Warn("Rejected unbalanced journal", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondServiceError(c, logger, err, "Failed to persist journal")
		return
	}

	logger.Info("Journal persisted successfully", slog.String("journal_id", journal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(*journal))
}

// listJournals godoc
// @Summary List journals
// @Description Lists the caller's journals by date, oldest first, one page at a time
// @Tags journals
// @Produce  json
// @Param   start_date query string false "Start date (YYYY-MM-DD), inclusive"
// @Param   end_date query string false "End date (YYYY-MM-DD), inclusive"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} map[string]string "Invalid page token or limit"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list journals"
// @Security BearerAuth
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := ownerFromContext(c, logger)
	if !ok {
		return
	}

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listJournals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	journals, next, err := h.journalService.ListJournals(c.Request.Context(), ownerID, params.DateRange(logger), params.Limit, params.NextToken)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list journals")
		return
	}

	logger.Debug("Journals listed", slog.Int("count", len(journals)))
	c.JSON(http.StatusOK, dto.ToListJournalsResponse(journals, next))
}

// getJournal godoc
// @Summary Get a journal
// @Description Retrieves one of the caller's journals with its entries
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal"
// @Security BearerAuth
// @Router /journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := ownerFromContext(c, logger)
	if !ok {
		return
	}
	journalID := c.Param("journalID")

	journal, err := h.journalService.GetJournal(c.Request.Context(), ownerID, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Journal not found", slog.String("journal_id", journalID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
			return
		}
		respondServiceError(c, logger, err, "Failed to retrieve journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(*journal))
}
