package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/smb_ledger/internal/apperrors"
	"github.com/SscSPs/smb_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/smb_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/smb_ledger/internal/models"
	"github.com/SscSPs/smb_ledger/internal/utils/mapping"
	"github.com/SscSPs/smb_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal and entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveJournals inserts all journals and their entries within one DB transaction.
func (r *PgxJournalRepository) SaveJournals(ctx context.Context, journals []domain.Journal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored once the transaction is committed.
	defer r.Rollback(ctx, tx)

	journalQuery := `
		INSERT INTO journals (journal_id, owner_id, journal_date, description, source_ref, source_seq, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	entryQuery := `
		INSERT INTO journal_entries (entry_id, journal_id, account_code, side, amount)
		VALUES ($1, $2, $3, $4, $5);
	`

	// Entries are queued after their journal so seq follows posting order.
	batch := &pgx.Batch{}
	for _, j := range journals {
		mj := mapping.ToModelJournal(j)
		batch.Queue(journalQuery, mj.JournalID, mj.OwnerID, mj.JournalDate, mj.Description, mj.SourceRef, mj.SourceSeq, mj.CreatedAt)
		for _, e := range j.Entries {
			me := mapping.ToModelJournalEntry(e)
			batch.Queue(entryQuery, me.EntryID, me.JournalID, me.AccountCode, me.Side, me.Amount)
		}
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", apperrors.ErrDuplicate, err)
		}
		return apperrors.NewAppError(500, "failed to insert journals", err)
	}

	return r.Commit(ctx, tx)
}

// FindJournalByID retrieves a journal and its entries, scoped to the owner.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, ownerID, journalID string) (*domain.Journal, error) {
	query := `
		SELECT journal_id, seq, owner_id, journal_date, description, source_ref, source_seq, created_at
		FROM journals
		WHERE journal_id = $1 AND owner_id = $2;
	`
	var m models.Journal
	err := r.Pool.QueryRow(ctx, query, journalID, ownerID).Scan(
		&m.JournalID, &m.Seq, &m.OwnerID, &m.JournalDate, &m.Description, &m.SourceRef, &m.SourceSeq, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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

// ListJournals returns a page of the owner's journals, oldest first.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, ownerID string, dateRange domain.DateRange, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	var sb strings.Builder
	sb.WriteString(`
		SELECT journal_id, seq, owner_id, journal_date, description, source_ref, source_seq, created_at
		FROM journals
		WHERE owner_id = $1`)
	args := []any{ownerID}

	if dateRange.Start != nil {
		args = append(args, *dateRange.Start)
		sb.WriteString(" AND journal_date >= $" + strconv.Itoa(len(args)))
	}
	if dateRange.End != nil {
		args = append(args, *dateRange.End)
		sb.WriteString(" AND journal_date <= $" + strconv.Itoa(len(args)))
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastSeq, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		args = append(args, lastDate, lastSeq)
		sb.WriteString(fmt.Sprintf(" AND (journal_date, seq) > ($%d, $%d)", len(args)-1, len(args)))
	}
	args = append(args, fetchLimit)
	sb.WriteString(" ORDER BY journal_date, seq LIMIT $" + strconv.Itoa(len(args)) + ";")

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journals for owner "+ownerID, err)
	}
	defer rows.Close()

	page := make([]models.Journal, 0, fetchLimit)
	for rows.Next() {
		var m models.Journal
		if err := rows.Scan(&m.JournalID, &m.Seq, &m.OwnerID, &m.JournalDate, &m.Description, &m.SourceRef, &m.SourceSeq, &m.CreatedAt); err != nil {
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
		token := pagination.EncodeToken(domain.TruncateDate(last.JournalDate), last.Seq)
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

// FetchEntries joins entries with their journal, filtering by owner in SQL.
func (r *PgxJournalRepository) FetchEntries(ctx context.Context, ownerID string, filter domain.EntryFilter) ([]domain.LedgerEntry, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT e.entry_id, e.seq, e.journal_id, e.account_code, e.side, e.amount,
		       j.owner_id, j.journal_date, j.description
		FROM journal_entries e
		JOIN journals j ON j.journal_id = e.journal_id
		WHERE j.owner_id = $1`)
	args := []any{ownerID}

	if filter.AccountCode != "" {
		args = append(args, filter.AccountCode)
		sb.WriteString(" AND e.account_code = $" + strconv.Itoa(len(args)))
	}
	if filter.Range.Start != nil {
		args = append(args, *filter.Range.Start)
		sb.WriteString(" AND j.journal_date >= $" + strconv.Itoa(len(args)))
	}
	if filter.Range.End != nil {
		args = append(args, *filter.Range.End)
		sb.WriteString(" AND j.journal_date <= $" + strconv.Itoa(len(args)))
	}
	sb.WriteString(" ORDER BY j.journal_date, e.seq;")

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries for owner "+ownerID, err)
	}
	defer rows.Close()

	result := []models.LedgerRow{}
	for rows.Next() {
		var m models.LedgerRow
		if err := rows.Scan(&m.EntryID, &m.Seq, &m.JournalID, &m.AccountCode, &m.Side, &m.Amount,
			&m.OwnerID, &m.JournalDate, &m.JournalDescription); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}
	return mapping.ToDomainLedgerEntrySlice(result), nil
}

// findEntries loads entries for several journals, grouped by journal id.
func (r *PgxJournalRepository) findEntries(ctx context.Context, journalIDs []string) (map[string][]domain.JournalEntry, error) {
	grouped := make(map[string][]domain.JournalEntry, len(journalIDs))
	if len(journalIDs) == 0 {
		return grouped, nil
	}

	query := `
		SELECT entry_id, seq, journal_id, account_code, side, amount
		FROM journal_entries
		WHERE journal_id = ANY($1)
		ORDER BY seq;
	`
	rows, err := r.Pool.Query(ctx, query, journalIDs)
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
