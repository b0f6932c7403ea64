package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/smb_ledger/internal/apperrors"
	"github.com/SscSPs/smb_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/smb_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/smb_ledger/internal/core/ports/services"
	"github.com/SscSPs/smb_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ReportObserver receives the wall time of each generated report.
type ReportObserver interface {
	ObserveReport(report string, elapsed time.Duration)
}

// reportingService implements the ReportingService interface. It holds no
// mutable state; every call reads the ledger afresh.
type reportingService struct {
	BaseService
	entries  portsrepo.EntryReader
	chart    portssvc.ChartOfAccountsSvc
	observer ReportObserver
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportObserver sets the metrics sink for report timings.
func WithReportObserver(o ReportObserver) ReportingServiceOption {
	return func(s *reportingService) {
		s.observer = o
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(entries portsrepo.EntryReader, chart portssvc.ChartOfAccountsSvc, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		entries: entries,
		chart:   chart,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// ledgerComparators holds one ascending comparator per sort field.
var ledgerComparators = map[domain.SortField]func(a, b domain.LedgerRow) int{
	domain.SortByDate: func(a, b domain.LedgerRow) int {
		return a.Date.Compare(b.Date)
	},
	domain.SortByDescription: func(a, b domain.LedgerRow) int {
		return strings.Compare(a.Description, b.Description)
	},
	domain.SortBySide: func(a, b domain.LedgerRow) int {
		return strings.Compare(string(a.Side), string(b.Side))
	},
	domain.SortByAmount: func(a, b domain.LedgerRow) int {
		return a.Amount.Cmp(b.Amount)
	},
}

// sideTotals accumulates the debit and credit sums of one account.
type sideTotals struct {
	debit  decimal.Decimal
	credit decimal.Decimal
}

func (t sideTotals) add(e domain.LedgerEntry) sideTotals {
	switch e.Side {
	case domain.Debit:
		t.debit = t.debit.Add(e.Amount)
	case domain.Credit:
		t.credit = t.credit.Add(e.Amount)
	}
	return t
}

func (s *reportingService) GeneralLedger(ctx context.Context, ownerID string, query domain.LedgerQuery) (*domain.LedgerReport, error) {
	defer s.observe("ledger", time.Now())

	query = s.normalizeLedgerQuery(ctx, query)
	report := &domain.LedgerReport{
		Range:     query.Range,
		SortField: query.SortField,
		SortOrder: query.SortOrder,
		Accounts:  []domain.LedgerAccount{},
	}
	if s.skipInverted(ctx, "ledger", query.Range) {
		return report, nil
	}

	var accounts []domain.Account
	if query.AccountCode != "" {
		acc, err := s.chart.LookupByCode(ctx, query.AccountCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				s.LogDebug(ctx, "Ledger requested for unknown account, returning empty report",
					slog.String("account_code", query.AccountCode))
				return report, nil
			}
			return nil, err
		}
		accounts = []domain.Account{*acc}
	} else {
		accounts = s.chart.ListAll(ctx)
	}

	entries, err := s.fetch(ctx, ownerID, domain.EntryFilter{AccountCode: query.AccountCode, Range: query.Range})
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]domain.LedgerEntry)
	for _, e := range entries {
		grouped[e.AccountCode] = append(grouped[e.AccountCode], e)
	}

	for _, acc := range accounts {
		report.Accounts = append(report.Accounts, buildLedgerAccount(acc, grouped[acc.Code], query.SortField, query.SortOrder))
	}

	s.LogInfo(ctx, "General ledger generated",
		slog.String("owner_id", ownerID),
		slog.Int("account_count", len(report.Accounts)),
		slog.Int("entry_count", len(entries)))
	return report, nil
}

func (s *reportingService) TrialBalance(ctx context.Context, ownerID string, dateRange domain.DateRange) (*domain.TrialBalanceReport, error) {
	defer s.observe("trial_balance", time.Now())

	report := &domain.TrialBalanceReport{
		Range:       dateRange,
		Rows:        []domain.TrialBalanceRow{},
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		Balanced:    true,
	}
	if s.skipInverted(ctx, "trial_balance", dateRange) {
		return report, nil
	}

	totals, err := s.totalsByAccount(ctx, ownerID, dateRange)
	if err != nil {
		return nil, err
	}

	for _, acc := range s.chart.ListAll(ctx) {
		t := totals[acc.Code]
		report.Rows = append(report.Rows, domain.TrialBalanceRow{
			Account:       acc,
			DebitTotal:    t.debit,
			CreditTotal:   t.credit,
			EndingBalance: accounting.EndingBalance(acc.Type, t.debit, t.credit),
		})
		report.TotalDebit = report.TotalDebit.Add(t.debit)
		report.TotalCredit = report.TotalCredit.Add(t.credit)
	}
	report.Balanced = report.TotalDebit.Equal(report.TotalCredit)

	s.LogInfo(ctx, "Trial balance generated",
		slog.String("owner_id", ownerID),
		slog.Int("row_count", len(report.Rows)),
		slog.Bool("balanced", report.Balanced))
	return report, nil
}

func (s *reportingService) IncomeStatement(ctx context.Context, ownerID string, dateRange domain.DateRange) (*domain.IncomeStatement, error) {
	defer s.observe("income_statement", time.Now())

	report := &domain.IncomeStatement{
		Range:        dateRange,
		Revenue:      []domain.AccountAmount{},
		Expenses:     []domain.AccountAmount{},
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		Net:          decimal.Zero,
	}
	if s.skipInverted(ctx, "income_statement", dateRange) {
		return report, nil
	}

	totals, err := s.totalsByAccount(ctx, ownerID, dateRange)
	if err != nil {
		return nil, err
	}

	report.Revenue, report.TotalIncome = s.section(ctx, domain.Revenue, totals)
	report.Expenses, report.TotalExpense = s.section(ctx, domain.Expense, totals)
	report.Net = report.TotalIncome.Sub(report.TotalExpense)

	s.LogInfo(ctx, "Income statement generated",
		slog.String("owner_id", ownerID),
		slog.String("net", report.Net.String()))
	return report, nil
}

func (s *reportingService) BalanceSheet(ctx context.Context, ownerID string, dateRange domain.DateRange) (*domain.BalanceSheet, error) {
	defer s.observe("balance_sheet", time.Now())

	report := &domain.BalanceSheet{
		Range:            dateRange,
		Assets:           []domain.AccountAmount{},
		Liabilities:      []domain.AccountAmount{},
		Equity:           []domain.AccountAmount{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		Check:            decimal.Zero,
		NetIncome:        decimal.Zero,
		Balanced:         true,
	}
	if s.skipInverted(ctx, "balance_sheet", dateRange) {
		return report, nil
	}

	totals, err := s.totalsByAccount(ctx, ownerID, dateRange)
	if err != nil {
		return nil, err
	}

	report.Assets, report.TotalAssets = s.section(ctx, domain.Asset, totals)
	report.Liabilities, report.TotalLiabilities = s.section(ctx, domain.Liability, totals)
	report.Equity, report.TotalEquity = s.section(ctx, domain.Equity, totals)
	report.Check = report.TotalAssets.Sub(report.TotalLiabilities.Add(report.TotalEquity))

	_, income := s.section(ctx, domain.Revenue, totals)
	_, expense := s.section(ctx, domain.Expense, totals)
	report.NetIncome = income.Sub(expense)
	report.Balanced = report.Check.Equal(report.NetIncome)

	s.LogInfo(ctx, "Balance sheet generated",
		slog.String("owner_id", ownerID),
		slog.String("check", report.Check.String()),
		slog.Bool("balanced", report.Balanced))
	return report, nil
}

// normalizeLedgerQuery replaces unknown sort values with date/asc.
func (s *reportingService) normalizeLedgerQuery(ctx context.Context, q domain.LedgerQuery) domain.LedgerQuery {
	if !q.SortField.IsValid() {
		s.LogDebug(ctx, "Unknown sort field, using date ascending", slog.Int("sort_field", int(q.SortField)))
		q.SortField = domain.SortByDate
		q.SortOrder = domain.Ascending
	}
	if q.SortOrder != domain.Ascending && q.SortOrder != domain.Descending {
		q.SortOrder = domain.Ascending
	}
	return q
}

// skipInverted reports whether the range selects nothing. Storage is not
// queried for such a range.
func (s *reportingService) skipInverted(ctx context.Context, report string, r domain.DateRange) bool {
	if !r.IsInverted() {
		return false
	}
	s.LogDebug(ctx, "Start date after end date, returning empty report",
		slog.String("report", report),
		slog.String("start_date", r.Start.Format(domain.DateLayout)),
		slog.String("end_date", r.End.Format(domain.DateLayout)))
	return true
}

func (s *reportingService) fetch(ctx context.Context, ownerID string, filter domain.EntryFilter) ([]domain.LedgerEntry, error) {
	entries, err := s.entries.FetchEntries(ctx, ownerID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch ledger entries", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to fetch ledger entries: %w", err)
	}
	return entries, nil
}

func (s *reportingService) totalsByAccount(ctx context.Context, ownerID string, r domain.DateRange) (map[string]sideTotals, error) {
	entries, err := s.fetch(ctx, ownerID, domain.EntryFilter{Range: r})
	if err != nil {
		return nil, err
	}
	totals := make(map[string]sideTotals)
	for _, e := range entries {
		t, ok := totals[e.AccountCode]
		if !ok {
			t = sideTotals{debit: decimal.Zero, credit: decimal.Zero}
		}
		totals[e.AccountCode] = t.add(e)
	}
	return totals, nil
}

// section lists every account of one type with its ending balance, and the sum.
func (s *reportingService) section(ctx context.Context, accountType domain.AccountType, totals map[string]sideTotals) ([]domain.AccountAmount, decimal.Decimal) {
	rows := []domain.AccountAmount{}
	sum := decimal.Zero
	for _, acc := range s.chart.ListByType(ctx, accountType) {
		t := totals[acc.Code]
		balance := accounting.EndingBalance(acc.Type, t.debit, t.credit)
		rows = append(rows, domain.AccountAmount{Account: acc, Balance: balance})
		sum = sum.Add(balance)
	}
	return rows, sum
}

func (s *reportingService) observe(report string, start time.Time) {
	if s.observer != nil {
		s.observer.ObserveReport(report, time.Since(start))
	}
}

// buildLedgerAccount folds the entries chronologically to attach running
// balances, then reorders the rows for display. The display sort never feeds
// back into the fold.
func buildLedgerAccount(acc domain.Account, entries []domain.LedgerEntry, field domain.SortField, order domain.SortOrder) domain.LedgerAccount {
	chrono := slices.Clone(entries)
	slices.SortStableFunc(chrono, func(a, b domain.LedgerEntry) int {
		if c := a.JournalDate.Compare(b.JournalDate); c != 0 {
			return c
		}
		return cmp.Compare(a.Seq, b.Seq)
	})

	section := domain.LedgerAccount{
		Account:     acc,
		Rows:        make([]domain.LedgerRow, 0, len(chrono)),
		DebitTotal:  decimal.Zero,
		CreditTotal: decimal.Zero,
	}
	running := decimal.Zero
	for _, e := range chrono {
		running = running.Add(accounting.RunningDelta(e.Side, e.Amount))
		switch e.Side {
		case domain.Debit:
			section.DebitTotal = section.DebitTotal.Add(e.Amount)
		case domain.Credit:
			section.CreditTotal = section.CreditTotal.Add(e.Amount)
		}
		section.Rows = append(section.Rows, domain.LedgerRow{
			EntryID:        e.EntryID,
			JournalID:      e.JournalID,
			Date:           e.JournalDate,
			Description:    e.JournalDescription,
			Side:           e.Side,
			Amount:         e.Amount,
			RunningBalance: running,
		})
	}
	section.EndingBalance = accounting.EndingBalance(acc.Type, section.DebitTotal, section.CreditTotal)

	sortLedgerRows(section.Rows, field, order)
	return section
}

// sortLedgerRows stable-sorts rows in place. Equal keys keep chronological order
// in both directions.
func sortLedgerRows(rows []domain.LedgerRow, field domain.SortField, order domain.SortOrder) {
	compare, ok := ledgerComparators[field]
	if !ok {
		compare = ledgerComparators[domain.SortByDate]
	}
	if order == domain.Descending {
		asc := compare
		compare = func(a, b domain.LedgerRow) int { return asc(b, a) }
	}
	slices.SortStableFunc(rows, compare)
}
