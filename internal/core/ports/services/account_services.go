package services

import (
	"context"

	"github.com/SscSPs/smb_ledger/internal/core/domain"
)

// ChartOfAccountsSvc is the read-only chart of accounts registry. It is loaded
// once at boot and safe for concurrent use.
type ChartOfAccountsSvc interface {
	// LookupByCode returns the account or apperrors.ErrNotFound.
	LookupByCode(ctx context.Context, code string) (*domain.Account, error)

	// ListByType returns the accounts of one type ordered by code.
	ListByType(ctx context.Context, accountType domain.AccountType) []domain.Account

	// ListAll returns every account ordered by code.
	ListAll(ctx context.Context) []domain.Account

	// RequireWellKnown fails with an *apperrors.ConfigurationError naming the
	// first posting role whose code is missing from the chart.
	RequireWellKnown(ctx context.Context, wk domain.WellKnownAccounts) error
}
