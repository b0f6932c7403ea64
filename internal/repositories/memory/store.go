// Package memory is an in-process Ledger Store used for tests, the CLI and
// single-process deployments without a database.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/SscSPs/smb_ledger/internal/apperrors"
	"github.com/SscSPs/smb_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/smb_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/smb_ledger/internal/utils/pagination"
)

type storedEntry struct {
	entry domain.JournalEntry
	seq   int64
}

type storedJournal struct {
	journal domain.Journal // without entries
	seq     int64
	entries []storedEntry
}

type sourceKey struct {
	owner string
	ref   string
	seq   int
}

// Store keeps accounts and journals in memory behind one RWMutex.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
	journals []storedJournal
	byID     map[string]int
	sources  map[sourceKey]struct{}
	seq      int64
}

var (
	_ portsrepo.AccountRepositoryFacade = (*Store)(nil)
	_ portsrepo.JournalRepositoryFacade = (*Store)(nil)
)

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]domain.Account),
		byID:     make(map[string]int),
		sources:  make(map[sourceKey]struct{}),
	}
}

// NewRepositoryProvider exposes one store as both repositories.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{AccountRepo: s, JournalRepo: s}
}

func (s *Store) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		out = append(out, acc)
	}
	slices.SortFunc(out, func(a, b domain.Account) int { return cmp.Compare(a.Code, b.Code) })
	return out, nil
}

func (s *Store) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[code]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

func (s *Store) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, acc := range accounts {
		if existing, ok := s.accounts[acc.Code]; ok && existing.Type != acc.Type {
			return &apperrors.ConfigurationError{Role: "seeded " + string(acc.Type), Code: acc.Code}
		}
	}
	for _, acc := range accounts {
		if _, ok := s.accounts[acc.Code]; !ok {
			s.accounts[acc.Code] = acc
		}
	}
	return nil
}

func (s *Store) SaveJournals(ctx context.Context, journals []domain.Journal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Check everything first so a failure leaves the store untouched.
	batch := make(map[sourceKey]struct{})
	for _, j := range journals {
		if _, ok := s.byID[j.JournalID]; ok {
			return fmt.Errorf("%w: journal %s", apperrors.ErrDuplicate, j.JournalID)
		}
		if j.SourceRef == "" {
			continue
		}
		key := sourceKey{owner: j.OwnerID, ref: j.SourceRef, seq: j.SourceSeq}
		if _, ok := s.sources[key]; ok {
			return fmt.Errorf("%w: source %s/%d", apperrors.ErrDuplicate, j.SourceRef, j.SourceSeq)
		}
		if _, ok := batch[key]; ok {
			return fmt.Errorf("%w: source %s/%d", apperrors.ErrDuplicate, j.SourceRef, j.SourceSeq)
		}
		batch[key] = struct{}{}
	}

	for _, j := range journals {
		s.seq++
		stored := storedJournal{seq: s.seq}
		stored.journal = j
		stored.journal.Entries = nil
		for _, e := range j.Entries {
			s.seq++
			stored.entries = append(stored.entries, storedEntry{entry: e, seq: s.seq})
		}
		s.byID[j.JournalID] = len(s.journals)
		s.journals = append(s.journals, stored)
		if j.SourceRef != "" {
			s.sources[sourceKey{owner: j.OwnerID, ref: j.SourceRef, seq: j.SourceSeq}] = struct{}{}
		}
	}
	return nil
}

func (s *Store) FindJournalByID(ctx context.Context, ownerID, journalID string) (*domain.Journal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[journalID]
	if !ok || s.journals[idx].journal.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	j := s.journals[idx].materialize()
	return &j, nil
}

func (s *Store) ListJournals(ctx context.Context, ownerID string, dateRange domain.DateRange, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	var (
		cursorDate time.Time
		cursorSeq  int64
		hasCursor  bool
	)
	if nextToken != nil && *nextToken != "" {
		d, seq, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		cursorDate, cursorSeq, hasCursor = d, seq, true
	}

	s.mu.RLock()
	matched := make([]storedJournal, 0)
	for _, sj := range s.journals {
		if sj.journal.OwnerID != ownerID || !dateRange.Contains(sj.journal.JournalDate) {
			continue
		}
		if hasCursor && !pagination.After(sj.journal.JournalDate, sj.seq, cursorDate, cursorSeq) {
			continue
		}
		matched = append(matched, sj)
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, compareStored)

	var next *string
	if len(matched) > limit {
		last := matched[limit-1]
		token := pagination.EncodeToken(last.journal.JournalDate, last.seq)
		next = &token
		matched = matched[:limit]
	}

	out := make([]domain.Journal, 0, len(matched))
	for _, sj := range matched {
		out = append(out, sj.materialize())
	}
	return out, next, nil
}

func (s *Store) FetchEntries(ctx context.Context, ownerID string, filter domain.EntryFilter) ([]domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.LedgerEntry, 0)
	for _, sj := range s.journals {
		if sj.journal.OwnerID != ownerID || !filter.Range.Contains(sj.journal.JournalDate) {
			continue
		}
		for _, se := range sj.entries {
			if filter.AccountCode != "" && se.entry.AccountCode != filter.AccountCode {
				continue
			}
			out = append(out, domain.LedgerEntry{
				JournalEntry:       se.entry,
				OwnerID:            sj.journal.OwnerID,
				JournalDate:        sj.journal.JournalDate,
				JournalDescription: sj.journal.Description,
				Seq:                se.seq,
			})
		}
	}
	slices.SortStableFunc(out, func(a, b domain.LedgerEntry) int {
		if c := a.JournalDate.Compare(b.JournalDate); c != 0 {
			return c
		}
		return cmp.Compare(a.Seq, b.Seq)
	})
	return out, nil
}

func (sj storedJournal) materialize() domain.Journal {
	j := sj.journal
	j.Entries = make([]domain.JournalEntry, 0, len(sj.entries))
	for _, se := range sj.entries {
		j.Entries = append(j.Entries, se.entry)
	}
	return j
}

func compareStored(a, b storedJournal) int {
	if c := a.journal.JournalDate.Compare(b.journal.JournalDate); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}
