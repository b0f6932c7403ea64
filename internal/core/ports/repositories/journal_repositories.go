package repositories

import (
	"context"

	"github.com/SscSPs/smb_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a journal with its entries. Journals owned by
	// someone else are reported as apperrors.ErrNotFound.
	FindJournalByID(ctx context.Context, ownerID, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a page of the owner's journals ordered by date then
	// insertion sequence. It returns the journals, a token for the next page, and an error.
	ListJournals(ctx context.Context, ownerID string, dateRange domain.DateRange, limit int, nextToken *string) ([]domain.Journal, *string, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournals persists all journals and their entries atomically: either
	// every journal is stored or none is. A journal repeating an existing
	// (owner, source ref, source seq) triple fails with apperrors.ErrDuplicate.
	SaveJournals(ctx context.Context, journals []domain.Journal) error
}

// EntryReader is the narrow read path used by the report engine.
type EntryReader interface {
	// FetchEntries returns the owner's entries matching the filter, joined with
	// their journal date and description, ordered by (date, seq). Owner scoping
	// happens in the query itself.
	FetchEntries(ctx context.Context, ownerID string, filter domain.EntryFilter) ([]domain.LedgerEntry, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	EntryReader
}
