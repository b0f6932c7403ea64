package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/smb_ledger/internal/apperrors"
	"github.com/SscSPs/smb_ledger/internal/core/domain"
)

// CategoryRequest optionally routes a cash record to a specific account.
type CategoryRequest struct {
	Name        string `json:"name"`
	AccountCode string `json:"accountCode" binding:"required"`
}

// PostingRequest is one business source record to translate into journals.
type PostingRequest struct {
	SourceID    string           `json:"sourceID" binding:"required"`
	Kind        string           `json:"kind" binding:"required,oneof=CASH_INCOME CASH_EXPENSE RECEIVABLE DEBT"`
	Date        string           `json:"date" binding:"required" example:"2024-01-31"`
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount" swaggertype:"string" example:"100.00"`
	PaidAmount  *decimal.Decimal `json:"paidAmount,omitempty" swaggertype:"string" example:"40.00"`
	PaidDate    *string          `json:"paidDate,omitempty" example:"2024-02-15"`
	Category    *CategoryRequest `json:"category,omitempty"`
}

// BatchPostingRequest posts several records; each succeeds or fails on its own.
type BatchPostingRequest struct {
	Records []PostingRequest `json:"records" binding:"required,min=1,dive"`
}

// ToDomain parses the request into a source record. Dates here are required
// input, so a malformed one is a validation error.
func (r PostingRequest) ToDomain() (domain.SourceTransaction, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return domain.SourceTransaction{}, apperrors.NewValidationError("date", "must be YYYY-MM-DD")
	}

	src := domain.SourceTransaction{
		SourceID:    r.SourceID,
		Kind:        domain.SourceKind(r.Kind),
		Date:        date,
		Description: r.Description,
		Amount:      r.Amount,
	}
	if r.PaidAmount != nil {
		src.PaidAmount = *r.PaidAmount
	}
	if r.PaidDate != nil && *r.PaidDate != "" {
		paid, err := domain.ParseDate(*r.PaidDate)
		if err != nil {
			return domain.SourceTransaction{}, apperrors.NewValidationError("paidDate", "must be YYYY-MM-DD")
		}
		src.PaidDate = &paid
	}
	if r.Category != nil {
		src.Category = &domain.Category{Name: r.Category.Name, AccountCode: r.Category.AccountCode}
	}
	return src, nil
}

// PostingResponse lists the journals produced by one record.
type PostingResponse struct {
	SourceID string            `json:"sourceID"`
	Journals []JournalResponse `json:"journals"`
}

// PostingResultResponse is one record's outcome in a batch.
type PostingResultResponse struct {
	SourceID string            `json:"sourceID"`
	Status   string            `json:"status"`
	Journals []JournalResponse `json:"journals,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// BatchPostingResponse summarizes a batch.
type BatchPostingResponse struct {
	Posted  int                     `json:"posted"`
	Failed  int                     `json:"failed"`
	Results []PostingResultResponse `json:"results"`
}

// ToPostingResponse converts the journals produced by a single record.
func ToPostingResponse(sourceID string, journals []domain.Journal) PostingResponse {
	return PostingResponse{SourceID: sourceID, Journals: ToJournalResponses(journals)}
}

// ToPostingResultResponse converts one batch result. The status is computed
// by the caller from the error class.
func ToPostingResultResponse(result domain.PostingResult, status string) PostingResultResponse {
	resp := PostingResultResponse{SourceID: result.SourceID, Status: status}
	if result.Err != nil {
		resp.Error = result.Err.Error()
		return resp
	}
	resp.Journals = ToJournalResponses(result.Journals)
	return resp
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}
