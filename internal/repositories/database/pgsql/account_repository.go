package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/smb_ledger/internal/apperrors"
	"github.com/SscSPs/smb_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/smb_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/smb_ledger/internal/models"
	"github.com/SscSPs/smb_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for the chart of accounts.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// ListAccounts returns the whole chart ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT code, name, account_type FROM accounts ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var m models.Account
		if err := rows.Scan(&m.Code, &m.Name, &m.AccountType); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

// FindAccountByCode retrieves one account.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT code, name, account_type FROM accounts WHERE code = $1;`
	var m models.Account
	err := r.Pool.QueryRow(ctx, query, code).Scan(&m.Code, &m.Name, &m.AccountType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+code, err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// SaveAccounts seeds the chart inside one transaction. Existing codes are left
// untouched unless their type differs, which aborts the whole seed.
func (r *PgxAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	insert := `INSERT INTO accounts (code, name, account_type) VALUES ($1, $2, $3) ON CONFLICT (code) DO NOTHING;`
	check := `SELECT account_type FROM accounts WHERE code = $1;`
	for _, acc := range accounts {
		m := mapping.ToModelAccount(acc)
		if _, err := tx.Exec(ctx, insert, m.Code, m.Name, m.AccountType); err != nil {
			return apperrors.NewAppError(500, "failed to insert account "+m.Code, err)
		}
		var stored string
		if err := tx.QueryRow(ctx, check, m.Code).Scan(&stored); err != nil {
			return apperrors.NewAppError(500, "failed to read back account "+m.Code, err)
		}
		if stored != m.AccountType {
			return &apperrors.ConfigurationError{Role: "seeded " + m.AccountType, Code: m.Code}
		}
	}

	return r.Commit(ctx, tx)
}
