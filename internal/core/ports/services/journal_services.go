package services

import (
	"context"

	"github.com/SscSPs/smb_ledger/internal/core/domain"
)

// PostingSvc turns business source records into balanced journals.
type PostingSvc interface {
	// Post translates one source record and stores all of its journals
	// atomically. Nothing is stored when an error is returned.
	Post(ctx context.Context, ownerID string, src domain.SourceTransaction) ([]domain.Journal, error)

	// PostBatch posts every record independently; a failure is reported in
	// that record's result and does not stop the others.
	PostBatch(ctx context.Context, ownerID string, srcs []domain.SourceTransaction) []domain.PostingResult

	// PostJournal stores a caller-built journal (opening balances, closing
	// entries, imports). Every account code must exist in the chart and the
	// journal must balance.
	PostJournal(ctx context.Context, ownerID string, draft domain.Journal) (*domain.Journal, error)
}

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournal retrieves a journal owned by ownerID.
	GetJournal(ctx context.Context, ownerID, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a page of the owner's journals.
	ListJournals(ctx context.Context, ownerID string, dateRange domain.DateRange, limit int, nextToken *string) ([]domain.Journal, *string, error)
}

// PostingSvcFacade combines the write and read sides of the journal services
type PostingSvcFacade interface {
	PostingSvc
	JournalReaderSvc
}
