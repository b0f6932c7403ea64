package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SscSPs/smb_ledger/internal/apperrors"
	"github.com/SscSPs/smb_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/smb_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/smb_ledger/internal/models"
	"github.com/SscSPs/smb_ledger/internal/utils/mapping"
)

type AccountRepository struct {
	BaseRepository
}

var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

func (r *AccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT code, name, account_type FROM accounts ORDER BY code`)
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

func (r *AccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	var m models.Account
	err := r.DB.QueryRowContext(ctx, `SELECT code, name, account_type FROM accounts WHERE code = ?`, code).
		Scan(&m.Code, &m.Name, &m.AccountType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+code, err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func (r *AccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	for _, acc := range accounts {
		m := mapping.ToModelAccount(acc)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO accounts (code, name, account_type) VALUES (?, ?, ?) ON CONFLICT (code) DO NOTHING`,
			m.Code, m.Name, m.AccountType); err != nil {
			return apperrors.NewAppError(500, "failed to insert account "+m.Code, err)
		}
		var stored string
		if err := tx.QueryRowContext(ctx, `SELECT account_type FROM accounts WHERE code = ?`, m.Code).Scan(&stored); err != nil {
			return apperrors.NewAppError(500, "failed to read back account "+m.Code, err)
		}
		if stored != m.AccountType {
			return &apperrors.ConfigurationError{Role: "seeded " + m.AccountType, Code: m.Code}
		}
	}
	return r.Commit(tx)
}
