package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal is the journals table row. SourceRef and SourceSeq are NULL for
// journals that did not come from a source record.
type Journal struct {
	JournalID   string    `db:"journal_id"`
	Seq         int64     `db:"seq"`
	OwnerID     string    `db:"owner_id"`
	JournalDate time.Time `db:"journal_date"`
	Description string    `db:"description"`
	SourceRef   *string   `db:"source_ref"`
	SourceSeq   *int      `db:"source_seq"`
	CreatedAt   time.Time `db:"created_at"`
}

// JournalEntry is the journal_entries table row. Seq is assigned by the
// database and gives insertion order across all journals.
type JournalEntry struct {
	EntryID     string          `db:"entry_id"`
	Seq         int64           `db:"seq"`
	JournalID   string          `db:"journal_id"`
	AccountCode string          `db:"account_code"`
	Side        string          `db:"side"`
	Amount      decimal.Decimal `db:"amount"`
}

// LedgerRow is a journal entry joined with its journal header.
type LedgerRow struct {
	JournalEntry
	OwnerID            string    `db:"owner_id"`
	JournalDate        time.Time `db:"journal_date"`
	JournalDescription string    `db:"description"`
}
