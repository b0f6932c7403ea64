package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/smb_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/smb_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/smb_ledger/internal/core/ports/services"
	"github.com/SscSPs/smb_ledger/internal/core/services"
	"github.com/SscSPs/smb_ledger/internal/repositories/memory"
)

const (
	ownerA = "user-a"
	ownerB = "user-b"

	capitalCode          = "3101"
	retainedEarningsCode = "3201"
	consultingCode       = "4102"
	rentCode             = "5102"
)

func testChart() []domain.Account {
	return []domain.Account{
		{Code: domain.CashAccountCode, Name: "Cash", Type: domain.Asset},
		{Code: domain.ReceivableAccountCode, Name: "Accounts Receivable", Type: domain.Asset},
		{Code: domain.PayableAccountCode, Name: "Accounts Payable", Type: domain.Liability},
		{Code: capitalCode, Name: "Owner's Capital", Type: domain.Equity},
		{Code: retainedEarningsCode, Name: "Retained Earnings", Type: domain.Equity},
		{Code: domain.DefaultRevenueAccountCode, Name: "Sales Revenue", Type: domain.Revenue},
		{Code: consultingCode, Name: "Consulting Revenue", Type: domain.Revenue},
		{Code: domain.DefaultExpenseAccountCode, Name: "General Expense", Type: domain.Expense},
		{Code: rentCode, Name: "Rent Expense", Type: domain.Expense},
	}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(day int) time.Time { return time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC) }

func datePtr(day int) *time.Time {
	t := date(day)
	return &t
}

// ledgerFixture wires real services over the in-memory store.
type ledgerFixture struct {
	store     *memory.Store
	chart     portssvc.ChartOfAccountsSvc
	posting   portssvc.PostingSvcFacade
	reporting portssvc.ReportingService
}

func newLedgerFixture(t *testing.T, accounts []domain.Account) *ledgerFixture {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.SaveAccounts(context.Background(), accounts))
	chart, err := services.LoadChartService(context.Background(), store)
	require.NoError(t, err)
	return &ledgerFixture{
		store:     store,
		chart:     chart,
		posting:   services.NewPostingService(store, chart),
		reporting: services.NewReportingService(store, chart),
	}
}

func cashIncome(id string, day int, amount string) domain.SourceTransaction {
	return domain.SourceTransaction{SourceID: id, Kind: domain.CashIncome, Date: date(day), Description: "income " + id, Amount: d(amount)}
}

func cashExpense(id string, day int, amount string) domain.SourceTransaction {
	return domain.SourceTransaction{SourceID: id, Kind: domain.CashExpense, Date: date(day), Description: "expense " + id, Amount: d(amount)}
}

func receivable(id string, day int, amount, paid string, paidDay int) domain.SourceTransaction {
	return domain.SourceTransaction{SourceID: id, Kind: domain.Receivable, Date: date(day), PaidDate: datePtr(paidDay), Description: "invoice " + id, Amount: d(amount), PaidAmount: d(paid)}
}

func debt(id string, day int, amount, paid string, paidDay int) domain.SourceTransaction {
	return domain.SourceTransaction{SourceID: id, Kind: domain.Debt, Date: date(day), PaidDate: datePtr(paidDay), Description: "bill " + id, Amount: d(amount), PaidAmount: d(paid)}
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveJournals(ctx context.Context, journals []domain.Journal) error {
	args := m.Called(ctx, journals)
	return args.Error(0)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, ownerID, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, ownerID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, ownerID string, dateRange domain.DateRange, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	args := m.Called(ctx, ownerID, dateRange, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Journal), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) FetchEntries(ctx context.Context, ownerID string, filter domain.EntryFilter) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}
