package repositories

import (
	"context"

	"github.com/SscSPs/smb_ledger/internal/core/domain"
)

// AccountReader defines read operations for the chart of accounts
type AccountReader interface {
	// ListAccounts returns every account ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// FindAccountByCode retrieves a specific account by its code.
	// Returns apperrors.ErrNotFound if no such account exists.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)
}

// AccountWriter defines write operations for the chart of accounts
type AccountWriter interface {
	// SaveAccounts inserts the given accounts, skipping codes that already exist
	// with the same type. An existing code with a different type is rejected with
	// an *apperrors.ConfigurationError since account types never change.
	SaveAccounts(ctx context.Context, accounts []domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
