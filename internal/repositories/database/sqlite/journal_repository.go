package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/smb_ledger/internal/apperrors"
	"github.com/SscSPs/smb_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/smb_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/smb_ledger/internal/models"
	"github.com/SscSPs/smb_ledger/internal/utils/mapping"
	"github.com/SscSPs/smb_ledger/internal/utils/pagination"
)

type JournalRepository struct {
	BaseRepository
}

var _ portsrepo.JournalRepositoryFacade = (*JournalRepository)(nil)

const journalColumns = `journal_id, seq, owner_id, journal_date, description, source_ref, source_seq, created_at`

func (r *JournalRepository) SaveJournals(ctx context.Context, journals []domain.Journal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	for _, j := range journals {
		mj := mapping.ToModelJournal(j)
		_, err := tx.ExecContext(ctx,
			`INSERT INTO journals (journal_id, owner_id, journal_date, description, source_ref, source_seq, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			mj.JournalID, mj.OwnerID, mj.JournalDate.Format(dateLayout), mj.Description,
			mj.SourceRef, mj.SourceSeq, mj.CreatedAt.UTC().Format(timestampLayout))
		if err != nil {
			return insertError("journal "+mj.JournalID, err)
		}
		for _, e := range j.Entries {
			me := mapping.ToModelJournalEntry(e)
			_, err := tx.ExecContext(ctx,
				`INSERT INTO journal_entries (entry_id, journal_id, account_code, side, amount) VALUES (?, ?, ?, ?, ?)`,
				me.EntryID, me.JournalID, me.AccountCode, me.Side, me.Amount.String())
			if err != nil {
				return insertError("entry "+me.EntryID, err)
			}
		}
	}
	return r.Commit(tx)
}

func (r *JournalRepository) FindJournalByID(ctx context.Context, ownerID, journalID string) (*domain.Journal, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+journalColumns+` FROM journals WHERE journal_id = ? AND owner_id = ?`, journalID, ownerID)
	m, err := scanJournal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal by ID "+journalID, err)
	}

	entries, err := r.findEntries(ctx, []string{journalID})
	if err != nil {
		return nil, err
	}
	journal := mapping.ToDomainJournal(m)
	journal.Entries = entries[journalID]
	return &journal, nil
}

func (r *JournalRepository) ListJournals(ctx context.Context, ownerID string, dateRange domain.DateRange, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	var sb strings.Builder
	sb.WriteString(`SELECT ` + journalColumns + ` FROM journals WHERE owner_id = ?`)
	args := []any{ownerID}
	appendRange(&sb, &args, "journal_date", dateRange)
	if nextToken != nil && *nextToken != "" {
		lastDate, lastSeq, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		sb.WriteString(` AND (journal_date, seq) > (?, ?)`)
		args = append(args, lastDate.Format(dateLayout), lastSeq)
	}
	sb.WriteString(` ORDER BY journal_date, seq LIMIT ?`)
	args = append(args, fetchLimit)

	rows, err := r.DB.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journals for owner "+ownerID, err)
	}
	defer rows.Close()

	page := make([]models.Journal, 0, fetchLimit)
	for rows.Next() {
		m, err := scanJournal(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal row", err)
		}
		page = append(page, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal rows", err)
	}

	var nextTokenVal *string
	if len(page) > limit {
		last := page[limit-1]
		token := pagination.EncodeToken(last.JournalDate, last.Seq)
		nextTokenVal = &token
		page = page[:limit]
	}

	ids := make([]string, len(page))
	for i, m := range page {
		ids[i] = m.JournalID
	}
	entries, err := r.findEntries(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	journals := make([]domain.Journal, len(page))
	for i, m := range page {
		journals[i] = mapping.ToDomainJournal(m)
		journals[i].Entries = entries[m.JournalID]
	}
	return journals, nextTokenVal, nil
}

func (r *JournalRepository) FetchEntries(ctx context.Context, ownerID string, filter domain.EntryFilter) ([]domain.LedgerEntry, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT e.entry_id, e.seq, e.journal_id, e.account_code, e.side, e.amount,
		       j.owner_id, j.journal_date, j.description
		FROM journal_entries e
		JOIN journals j ON j.journal_id = e.journal_id
		WHERE j.owner_id = ?`)
	args := []any{ownerID}
	if filter.AccountCode != "" {
		sb.WriteString(` AND e.account_code = ?`)
		args = append(args, filter.AccountCode)
	}
	appendRange(&sb, &args, "j.journal_date", filter.Range)
	sb.WriteString(` ORDER BY j.journal_date, e.seq`)

	rows, err := r.DB.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries for owner "+ownerID, err)
	}
	defer rows.Close()

	result := []models.LedgerRow{}
	for rows.Next() {
		var m models.LedgerRow
		var journalDate string
		if err := rows.Scan(&m.EntryID, &m.Seq, &m.JournalID, &m.AccountCode, &m.Side, &m.Amount,
			&m.OwnerID, &journalDate, &m.JournalDescription); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		if m.JournalDate, err = time.Parse(dateLayout, journalDate); err != nil {
			return nil, apperrors.NewAppError(500, "malformed journal date "+journalDate, err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}
	return mapping.ToDomainLedgerEntrySlice(result), nil
}

func (r *JournalRepository) findEntries(ctx context.Context, journalIDs []string) (map[string][]domain.JournalEntry, error) {
	grouped := make(map[string][]domain.JournalEntry, len(journalIDs))
	if len(journalIDs) == 0 {
		return grouped, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(journalIDs)), ",")
	args := make([]any, len(journalIDs))
	for i, id := range journalIDs {
		args[i] = id
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT entry_id, seq, journal_id, account_code, side, amount
		 FROM journal_entries WHERE journal_id IN (`+placeholders+`) ORDER BY seq`, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.JournalEntry
		if err := rows.Scan(&m.EntryID, &m.Seq, &m.JournalID, &m.AccountCode, &m.Side, &m.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		grouped[m.JournalID] = append(grouped[m.JournalID], mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	return grouped, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJournal(row rowScanner) (models.Journal, error) {
	var (
		m                  models.Journal
		journalDate, stamp string
		sourceRef          sql.NullString
		sourceSeq          sql.NullInt64
	)
	if err := row.Scan(&m.JournalID, &m.Seq, &m.OwnerID, &journalDate, &m.Description, &sourceRef, &sourceSeq, &stamp); err != nil {
		return m, err
	}
	var err error
	if m.JournalDate, err = time.Parse(dateLayout, journalDate); err != nil {
		return m, fmt.Errorf("malformed journal date %q: %w", journalDate, err)
	}
	if m.CreatedAt, err = time.Parse(timestampLayout, stamp); err != nil {
		return m, fmt.Errorf("malformed created_at %q: %w", stamp, err)
	}
	if sourceRef.Valid {
		m.SourceRef = &sourceRef.String
	}
	if sourceSeq.Valid {
		seq := int(sourceSeq.Int64)
		m.SourceSeq = &seq
	}
	return m, nil
}

func appendRange(sb *strings.Builder, args *[]any, column string, r domain.DateRange) {
	if r.Start != nil {
		sb.WriteString(" AND " + column + " >= ?")
		*args = append(*args, r.Start.Format(dateLayout))
	}
	if r.End != nil {
		sb.WriteString(" AND " + column + " <= ?")
		*args = append(*args, r.End.Format(dateLayout))
	}
}

func insertError(what string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrDuplicate, what, err)
	}
	return apperrors.NewAppError(500, "failed to insert "+what, err)
}
