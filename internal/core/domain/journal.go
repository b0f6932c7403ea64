package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side indicates whether a journal entry is a debit or a credit leg.
type Side string

const (
	Debit  Side = "DEBIT"
	Credit Side = "CREDIT"
)

// IsValid reports whether s is DEBIT or CREDIT.
func (s Side) IsValid() bool {
	return s == Debit || s == Credit
}

// Journal represents a single, balanced accounting event owned by one user.
// Journals are append-only: nothing updates or deletes them once saved.
type Journal struct {
	JournalID   string         `json:"journalID"`
	OwnerID     string         `json:"ownerID"`
	JournalDate time.Time      `json:"journalDate"`
	Description string         `json:"description"`
	SourceRef   string         `json:"sourceRef,omitempty"` // e.g. "RECEIVABLE:inv-42"
	SourceSeq   int            `json:"sourceSeq,omitempty"` // 1 for the main journal, 2 for its payment
	CreatedAt   time.Time      `json:"createdAt"`
	Entries     []JournalEntry `json:"entries,omitempty"`
}

// JournalEntry is one debit or credit leg against a single account.
type JournalEntry struct {
	EntryID     string          `json:"entryID"`
	JournalID   string          `json:"journalID"`
	AccountCode string          `json:"accountCode"`
	Side        Side            `json:"side"`
	Amount      decimal.Decimal `json:"amount"` // never negative
}

// LedgerEntry is a journal entry joined with its parent journal, as read back
// for reporting. Seq is the storage insertion order and breaks ties between
// entries on the same date.
type LedgerEntry struct {
	JournalEntry
	OwnerID            string    `json:"ownerID"`
	JournalDate        time.Time `json:"journalDate"`
	JournalDescription string    `json:"journalDescription"`
	Seq                int64     `json:"seq"`
}

// EntryFilter narrows FetchEntries. An empty AccountCode means all accounts.
type EntryFilter struct {
	AccountCode string
	Range       DateRange
}
