package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/smb_ledger/internal/apperrors"
	"github.com/SscSPs/smb_ledger/internal/core/domain"
)

// JournalEntryRequest is one leg of a manual journal.
type JournalEntryRequest struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Side        string          `json:"side" binding:"required,oneof=DEBIT CREDIT"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"250.00"`
}

// CreateJournalRequest is a caller-built journal: opening balances, closing
// entries or imports.
type CreateJournalRequest struct {
	Date        string                `json:"date" binding:"required" example:"2024-12-31"`
	Description string                `json:"description" binding:"required"`
	SourceRef   string                `json:"sourceRef,omitempty"`
	Entries     []JournalEntryRequest `json:"entries" binding:"required,min=2,dive"`
}

// ToDomain builds the journal draft. IDs are assigned by the posting service.
func (r CreateJournalRequest) ToDomain() (domain.Journal, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return domain.Journal{}, apperrors.NewValidationError("date", "must be YYYY-MM-DD")
	}
	draft := domain.Journal{
		JournalDate: date,
		Description: r.Description,
		SourceRef:   r.SourceRef,
		Entries:     make([]domain.JournalEntry, len(r.Entries)),
	}
	for i, e := range r.Entries {
		draft.Entries[i] = domain.JournalEntry{
			AccountCode: e.AccountCode,
			Side:        domain.Side(e.Side),
			Amount:      e.Amount,
		}
	}
	return draft, nil
}

// ListJournalsParams pages through the caller's journals.
type ListJournalsParams struct {
	ReportQuery
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// JournalEntryResponse is one leg of a stored journal.
type JournalEntryResponse struct {
	EntryID     string          `json:"entryID"`
	AccountCode string          `json:"accountCode"`
	Side        string          `json:"side"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string"`
}

// JournalResponse is a stored journal with its entries.
type JournalResponse struct {
	JournalID   string                 `json:"journalID"`
	Date        string                 `json:"date"`
	Description string                 `json:"description"`
	SourceRef   string                 `json:"sourceRef,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	Entries     []JournalEntryResponse `json:"entries"`
}

// ListJournalsResponse is one page of journals.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToJournalResponse converts a domain journal.
func ToJournalResponse(j domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:   j.JournalID,
		Date:        formatDate(j.JournalDate),
		Description: j.Description,
		SourceRef:   j.SourceRef,
		CreatedAt:   j.CreatedAt,
		Entries:     make([]JournalEntryResponse, len(j.Entries)),
	}
	for i, e := range j.Entries {
		resp.Entries[i] = JournalEntryResponse{
			EntryID:     e.EntryID,
			AccountCode: e.AccountCode,
			Side:        string(e.Side),
			Amount:      e.Amount,
		}
	}
	return resp
}

// ToJournalResponses converts a slice of journals.
func ToJournalResponses(journals []domain.Journal) []JournalResponse {
	out := make([]JournalResponse, len(journals))
	for i, j := range journals {
		out[i] = ToJournalResponse(j)
	}
	return out
}

// ToListJournalsResponse converts a page of journals.
func ToListJournalsResponse(journals []domain.Journal, nextToken *string) ListJournalsResponse {
	return ListJournalsResponse{Journals: ToJournalResponses(journals), NextToken: nextToken}
}
