package mapping

import (
	"github.com/SscSPs/smb_ledger/internal/core/domain"
	"github.com/SscSPs/smb_ledger/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	m := models.Journal{
		JournalID:   d.JournalID,
		OwnerID:     d.OwnerID,
		JournalDate: domain.TruncateDate(d.JournalDate),
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
	}
	if d.SourceRef != "" {
		ref, seq := d.SourceRef, d.SourceSeq
		m.SourceRef = &ref
		m.SourceSeq = &seq
	}
	return m
}

// ToDomainJournal converts a model Journal to a domain Journal
func ToDomainJournal(m models.Journal) domain.Journal {
	d := domain.Journal{
		JournalID:   m.JournalID,
		OwnerID:     m.OwnerID,
		JournalDate: domain.TruncateDate(m.JournalDate),
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
	if m.SourceRef != nil {
		d.SourceRef = *m.SourceRef
	}
	if m.SourceSeq != nil {
		d.SourceSeq = *m.SourceSeq
	}
	return d
}

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:     d.EntryID,
		JournalID:   d.JournalID,
		AccountCode: d.AccountCode,
		Side:        string(d.Side),
		Amount:      d.Amount,
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		JournalID:   m.JournalID,
		AccountCode: m.AccountCode,
		Side:        domain.Side(m.Side),
		Amount:      m.Amount,
	}
}

// ToDomainLedgerEntry converts a joined ledger row to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerRow) domain.LedgerEntry {
	return domain.LedgerEntry{
		JournalEntry:       ToDomainJournalEntry(m.JournalEntry),
		OwnerID:            m.OwnerID,
		JournalDate:        domain.TruncateDate(m.JournalDate),
		JournalDescription: m.JournalDescription,
		Seq:                m.Seq,
	}
}

// ToDomainLedgerEntrySlice converts joined ledger rows to domain LedgerEntries
func ToDomainLedgerEntrySlice(ms []models.LedgerRow) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
