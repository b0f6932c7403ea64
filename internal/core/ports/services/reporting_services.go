package services

import (
	"context"

	"github.com/SscSPs/smb_ledger/internal/core/domain"
)

// ReportingService derives financial reports from the owner's ledger. Bad
// filters never fail a report: unknown sort values fall back to date/asc, an
// inverted date range and an unknown account yield an empty report. Only
// storage failures are returned as errors.
type ReportingService interface {
	// GeneralLedger returns per-account entry sections with running balances.
	GeneralLedger(ctx context.Context, ownerID string, query domain.LedgerQuery) (*domain.LedgerReport, error)

	// TrialBalance lists every account with debit, credit and ending balance.
	TrialBalance(ctx context.Context, ownerID string, dateRange domain.DateRange) (*domain.TrialBalanceReport, error)

	// IncomeStatement reports revenue, expense and net over the range.
	IncomeStatement(ctx context.Context, ownerID string, dateRange domain.DateRange) (*domain.IncomeStatement, error)

	// BalanceSheet reports asset, liability and equity balances over the range.
	BalanceSheet(ctx context.Context, ownerID string, dateRange domain.DateRange) (*domain.BalanceSheet, error)
}
