package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/smb_ledger/internal/apperrors"
	"github.com/SscSPs/smb_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/smb_ledger/internal/core/ports/services"
	"github.com/SscSPs/smb_ledger/internal/dto"
	"github.com/SscSPs/smb_ledger/internal/middleware"
)

// Batch result statuses.
const (
	statusPosted    = "posted"
	statusRejected  = "rejected"
	statusDuplicate = "duplicate"
	statusFailed    = "failed"
)

type postingHandler struct {
	posting portssvc.PostingSvc
}

func newPostingHandler(posting portssvc.PostingSvc) *postingHandler {
	return &postingHandler{posting: posting}
}

// RegisterPostingRoutes registers the source record posting routes.
func RegisterPostingRoutes(rg *gin.RouterGroup, posting portssvc.PostingSvc) {
	h := newPostingHandler(posting)

	postings := rg.Group("/postings")
	{
		postings.POST("", h.postRecord)
		postings.POST("/batch", h.postBatch)
	}
}

// postRecord godoc
// @Summary Post a business source record
// @Description Translates a cash income, cash expense, receivable or debt record into journals and stores them atomically
// @Tags postings
// @Accept json
// @Produce json
// @Param record body dto.PostingRequest true "Source record"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Invalid record"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Record already posted"
// @Failure 422 {object} map[string]string "Chart of accounts is missing a posting account"
// @Failure 500 {object} map[string]string "Failed to post record"
// @Security BearerAuth
// @Router /postings [post]
func (h *postingHandler) postRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := ownerFromContext(c, logger)
	if !ok {
		return
	}

	var req dto.PostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for postRecord", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}
	src, err := req.ToDomain()
	if err != nil {
		respondServiceError(c, logger, err, "Invalid source record")
		return
	}

	logger = logger.With(slog.String("source_id", src.SourceID), slog.String("kind", string(src.Kind)))
	journals, err := h.posting.Post(c.Request.Context(), ownerID, src)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post record")
		return
	}

	logger.Info("Source record posted", slog.Int("journals", len(journals)))
	c.JSON(http.StatusCreated, dto.ToPostingResponse(src.SourceID, journals))
}

// postBatch godoc
// @Summary Post a batch of source records
// @Description Posts each record independently; one record's failure never blocks the others
// @Tags postings
// @Accept json
// @Produce json
// @Param batch body dto.BatchPostingRequest true "Source records"
// @Success 200 {object} dto.BatchPostingResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /postings/batch [post]
func (h *postingHandler) postBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := ownerFromContext(c, logger)
	if !ok {
		return
	}

	var req dto.BatchPostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for postBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	resp := dto.BatchPostingResponse{Results: make([]dto.PostingResultResponse, len(req.Records))}

	// Records that fail to parse are reported in place; the rest go to the service.
	srcs := make([]domain.SourceTransaction, 0, len(req.Records))
	slots := make([]int, 0, len(req.Records))
	for i, r := range req.Records {
		src, err := r.ToDomain()
		if err != nil {
			resp.Results[i] = dto.ToPostingResultResponse(domain.PostingResult{SourceID: r.SourceID, Err: err}, statusRejected)
			resp.Failed++
			continue
		}
		srcs = append(srcs, src)
		slots = append(slots, i)
	}

	for k, result := range h.posting.PostBatch(c.Request.Context(), ownerID, srcs) {
		status := batchStatus(result.Err)
		if result.Err == nil {
			resp.Posted++
		} else {
			resp.Failed++
		}
		resp.Results[slots[k]] = dto.ToPostingResultResponse(result, status)
	}

	logger.Info("Batch posted", slog.Int("posted", resp.Posted), slog.Int("failed", resp.Failed))
	c.JSON(http.StatusOK, resp)
}

func batchStatus(err error) string {
	switch {
	case err == nil:
		return statusPosted
	case errors.Is(err, apperrors.ErrDuplicate):
		return statusDuplicate
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrConfiguration):
		return statusRejected
	}
	return statusFailed
}
