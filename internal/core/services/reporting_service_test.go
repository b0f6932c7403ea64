package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/smb_ledger/internal/core/domain"
	"github.com/SscSPs/smb_ledger/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	ctx context.Context
	fx  *ledgerFixture
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

func (s *ReportingServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.fx = newLedgerFixture(s.T(), testChart())
}

// postSampleRecords posts the cash income, cash expense and receivable records
// on three consecutive days, with the receivable payment on day 3.
func (s *ReportingServiceTestSuite) postSampleRecords(owner string) {
	for _, src := range []domain.SourceTransaction{
		cashIncome("A", 1, "1000000"),
		cashExpense("B", 2, "200000"),
		receivable("C", 3, "500000", "300000", 3),
	} {
		_, err := s.fx.posting.Post(s.ctx, owner, src)
		s.Require().NoError(err)
	}
}

func (s *ReportingServiceTestSuite) ledger(q domain.LedgerQuery) *domain.LedgerReport {
	report, err := s.fx.reporting.GeneralLedger(s.ctx, ownerA, q)
	s.Require().NoError(err)
	return report
}

func (s *ReportingServiceTestSuite) TestCashIncomeLedgerBalance() {
	_, err := s.fx.posting.Post(s.ctx, ownerA, cashIncome("A", 1, "1000000"))
	s.Require().NoError(err)

	report := s.ledger(domain.LedgerQuery{AccountCode: domain.CashAccountCode})
	s.Require().Len(report.Accounts, 1)
	cash := report.Accounts[0]
	s.Equal(domain.CashAccountCode, cash.Account.Code)
	s.True(cash.EndingBalance.Equal(d("1000000")), "ending balance %s", cash.EndingBalance)
	s.Require().Len(cash.Rows, 1)
	s.Equal(domain.Debit, cash.Rows[0].Side)

	revenue := s.ledger(domain.LedgerQuery{AccountCode: domain.DefaultRevenueAccountCode}).Accounts[0]
	s.True(revenue.EndingBalance.Equal(d("1000000")))
	s.True(revenue.CreditTotal.Equal(d("1000000")))
}

func (s *ReportingServiceTestSuite) TestTrialBalanceCashRow() {
	s.postSampleRecords(ownerA)

	tb, err := s.fx.reporting.TrialBalance(s.ctx, ownerA, domain.NewDateRange(nil, datePtr(2)))
	s.Require().NoError(err)
	s.Require().Len(tb.Rows, len(testChart()), "every account is listed")

	var cash *domain.TrialBalanceRow
	for i := range tb.Rows {
		if tb.Rows[i].Account.Code == domain.CashAccountCode {
			cash = &tb.Rows[i]
		}
	}
	s.Require().NotNil(cash)
	s.True(cash.DebitTotal.Equal(d("1000000")))
	s.True(cash.CreditTotal.Equal(d("200000")))
	s.True(cash.EndingBalance.Equal(d("800000")))
	s.True(tb.Balanced)
	s.True(tb.TotalDebit.Equal(d("1200000")))

	for i := 1; i < len(tb.Rows); i++ {
		s.Less(tb.Rows[i-1].Account.Code, tb.Rows[i].Account.Code)
	}
}

func (s *ReportingServiceTestSuite) TestPartiallyPaidReceivableBalance() {
	s.postSampleRecords(ownerA)

	report := s.ledger(domain.LedgerQuery{AccountCode: domain.ReceivableAccountCode})
	s.Require().Len(report.Accounts, 1)
	recv := report.Accounts[0]
	s.True(recv.EndingBalance.Equal(d("200000")), "ending balance %s", recv.EndingBalance)
	s.True(recv.DebitTotal.Equal(d("500000")))
	s.True(recv.CreditTotal.Equal(d("300000")))
}

func (s *ReportingServiceTestSuite) TestDisplaySortKeepsChronologicalRunningBalance() {
	s.postSampleRecords(ownerA)

	chrono := s.ledger(domain.LedgerQuery{AccountCode: domain.CashAccountCode}).Accounts[0].Rows
	s.Require().Len(chrono, 3)
	wantRunning := []string{"1000000", "800000", "1100000"}
	for i, row := range chrono {
		s.True(row.RunningBalance.Equal(d(wantRunning[i])), "row %d running %s", i, row.RunningBalance)
	}
	runningByEntry := map[string]string{}
	for _, row := range chrono {
		runningByEntry[row.EntryID] = row.RunningBalance.String()
	}

	sorted := s.ledger(domain.LedgerQuery{
		AccountCode: domain.CashAccountCode,
		SortField:   domain.SortByAmount,
		SortOrder:   domain.Descending,
	}).Accounts[0]
	s.Require().Len(sorted.Rows, 3)
	for i := 1; i < len(sorted.Rows); i++ {
		s.True(sorted.Rows[i-1].Amount.GreaterThan(sorted.Rows[i].Amount), "rows must be strictly amount-descending")
	}
	for _, row := range sorted.Rows {
		s.Equal(runningByEntry[row.EntryID], row.RunningBalance.String(), "running balance must not depend on display order")
	}
	s.True(sorted.EndingBalance.Equal(d("1100000")))
}

func (s *ReportingServiceTestSuite) TestInvertedRangeReturnsEmpty() {
	s.postSampleRecords(ownerA)
	inverted := domain.NewDateRange(datePtr(3), datePtr(1))

	ledger := s.ledger(domain.LedgerQuery{Range: inverted})
	s.NotNil(ledger.Accounts)
	s.Empty(ledger.Accounts)

	tb, err := s.fx.reporting.TrialBalance(s.ctx, ownerA, inverted)
	s.Require().NoError(err)
	s.Empty(tb.Rows)
	s.True(tb.TotalDebit.IsZero())

	is, err := s.fx.reporting.IncomeStatement(s.ctx, ownerA, inverted)
	s.Require().NoError(err)
	s.Empty(is.Revenue)
	s.True(is.Net.IsZero())

	bs, err := s.fx.reporting.BalanceSheet(s.ctx, ownerA, inverted)
	s.Require().NoError(err)
	s.Empty(bs.Assets)
	s.True(bs.Check.IsZero())
}

func (s *ReportingServiceTestSuite) TestLedgerDateRangeIsInclusive() {
	s.postSampleRecords(ownerA)

	report := s.ledger(domain.LedgerQuery{AccountCode: domain.CashAccountCode, Range: domain.NewDateRange(datePtr(2), datePtr(3))})
	rows := report.Accounts[0].Rows
	s.Require().Len(rows, 2)
	s.Equal(date(2), rows[0].Date)
	s.Equal(date(3), rows[1].Date)
	s.True(rows[0].RunningBalance.Equal(d("-200000")), "fold starts at zero inside the range")
}

func (s *ReportingServiceTestSuite) TestLedgerWithoutFilterListsChart() {
	s.postSampleRecords(ownerA)

	report := s.ledger(domain.LedgerQuery{})
	s.Require().Len(report.Accounts, len(testChart()))
	s.Equal(domain.CashAccountCode, report.Accounts[0].Account.Code)
	for _, section := range report.Accounts {
		s.NotNil(section.Rows)
	}
}

func (s *ReportingServiceTestSuite) TestUnknownAccountYieldsEmptyLedger() {
	s.postSampleRecords(ownerA)
	report := s.ledger(domain.LedgerQuery{AccountCode: "9999"})
	s.NotNil(report.Accounts)
	s.Empty(report.Accounts)
}

func (s *ReportingServiceTestSuite) TestInvalidSortFallsBackToDateAscending() {
	s.postSampleRecords(ownerA)

	report := s.ledger(domain.LedgerQuery{AccountCode: domain.CashAccountCode, SortField: domain.SortField(42), SortOrder: domain.Descending})
	s.Equal(domain.SortByDate, report.SortField)
	s.Equal(domain.Ascending, report.SortOrder)
	rows := report.Accounts[0].Rows
	for i := 1; i < len(rows); i++ {
		s.False(rows[i].Date.Before(rows[i-1].Date))
	}

	report = s.ledger(domain.LedgerQuery{AccountCode: domain.CashAccountCode, SortField: domain.SortByAmount, SortOrder: domain.SortOrder(7)})
	s.Equal(domain.Ascending, report.SortOrder)
}

func (s *ReportingServiceTestSuite) TestSortByDescriptionAndSide() {
	s.postSampleRecords(ownerA)

	rows := s.ledger(domain.LedgerQuery{AccountCode: domain.CashAccountCode, SortField: domain.SortBySide}).Accounts[0].Rows
	s.Equal(domain.Credit, rows[0].Side)
	s.Equal(domain.Debit, rows[2].Side)
	s.Equal(date(1), rows[1].Date, "equal keys keep chronological order")

	rows = s.ledger(domain.LedgerQuery{AccountCode: domain.CashAccountCode, SortField: domain.SortByDescription, SortOrder: domain.Descending}).Accounts[0].Rows
	s.Equal("invoice C (payment)", rows[0].Description)
	s.Equal("expense B", rows[2].Description)
}

func (s *ReportingServiceTestSuite) TestIncomeStatement() {
	s.postSampleRecords(ownerA)

	is, err := s.fx.reporting.IncomeStatement(s.ctx, ownerA, domain.DateRange{})
	s.Require().NoError(err)
	s.Len(is.Revenue, 2)
	s.Len(is.Expenses, 2)
	s.True(is.TotalIncome.Equal(d("1500000")))
	s.True(is.TotalExpense.Equal(d("200000")))
	s.True(is.Net.Equal(d("1300000")))
}

func (s *ReportingServiceTestSuite) TestOwnerScoping() {
	s.postSampleRecords(ownerA)
	_, err := s.fx.posting.Post(s.ctx, ownerB, cashIncome("other", 1, "777"))
	s.Require().NoError(err)

	cash := s.ledger(domain.LedgerQuery{AccountCode: domain.CashAccountCode}).Accounts[0]
	s.Len(cash.Rows, 3)
	s.True(cash.EndingBalance.Equal(d("1100000")))

	other, err := s.fx.reporting.GeneralLedger(s.ctx, ownerB, domain.LedgerQuery{AccountCode: domain.CashAccountCode})
	s.Require().NoError(err)
	s.Len(other.Accounts[0].Rows, 1)

	empty, err := s.fx.reporting.TrialBalance(s.ctx, "nobody", domain.DateRange{})
	s.Require().NoError(err)
	s.True(empty.TotalDebit.IsZero())
	s.Len(empty.Rows, len(testChart()), "empty ledger still renders every account")
}

func (s *ReportingServiceTestSuite) TestEveryJournalBalances() {
	s.postSampleRecords(ownerA)
	_, err := s.fx.posting.Post(s.ctx, ownerA, debt("D", 4, "400000", "100000", 5))
	s.Require().NoError(err)

	journals, _, err := s.fx.posting.ListJournals(s.ctx, ownerA, domain.DateRange{}, 100, nil)
	s.Require().NoError(err)
	s.Len(journals, 6)
	for _, j := range journals {
		debit, credit := d("0"), d("0")
		for _, e := range j.Entries {
			if e.Side == domain.Debit {
				debit = debit.Add(e.Amount)
			} else {
				credit = credit.Add(e.Amount)
			}
		}
		s.True(debit.Equal(credit), "journal %s: %s != %s", j.JournalID, debit, credit)
	}
}

// Repeated calls over unchanged data render identical bytes.
func (s *ReportingServiceTestSuite) TestReportsAreIdempotent() {
	s.postSampleRecords(ownerA)

	render := func() []byte {
		ledger, err := s.fx.reporting.GeneralLedger(s.ctx, ownerA, domain.LedgerQuery{SortField: domain.SortByAmount, SortOrder: domain.Descending})
		s.Require().NoError(err)
		tb, err := s.fx.reporting.TrialBalance(s.ctx, ownerA, domain.DateRange{})
		s.Require().NoError(err)
		is, err := s.fx.reporting.IncomeStatement(s.ctx, ownerA, domain.DateRange{})
		s.Require().NoError(err)
		bs, err := s.fx.reporting.BalanceSheet(s.ctx, ownerA, domain.DateRange{})
		s.Require().NoError(err)
		out, err := json.Marshal([]any{ledger, tb, is, bs})
		s.Require().NoError(err)
		return out
	}

	first := render()
	for range 3 {
		s.Equal(string(first), string(render()))
	}
}

// A fully posted and closed ledger satisfies A = L + E.
func (s *ReportingServiceTestSuite) TestBalanceSheetIdentity() {
	_, err := s.fx.posting.PostJournal(s.ctx, ownerA, domain.Journal{
		JournalDate: date(1),
		Description: "Owner investment",
		Entries: []domain.JournalEntry{
			{AccountCode: domain.CashAccountCode, Side: domain.Debit, Amount: d("5000000")},
			{AccountCode: capitalCode, Side: domain.Credit, Amount: d("5000000")},
		},
	})
	s.Require().NoError(err)
	s.postSampleRecords(ownerA)
	_, err = s.fx.posting.Post(s.ctx, ownerA, debt("D", 4, "400000", "100000", 5))
	s.Require().NoError(err)

	open, err := s.fx.reporting.BalanceSheet(s.ctx, ownerA, domain.DateRange{})
	s.Require().NoError(err)
	s.True(open.TotalAssets.Equal(d("6200000")), "assets %s", open.TotalAssets)
	s.True(open.TotalLiabilities.Equal(d("300000")))
	s.True(open.TotalEquity.Equal(d("5000000")))
	s.True(open.Check.Equal(d("900000")), "unclosed income shows up in check")
	s.True(open.NetIncome.Equal(d("900000")))
	s.True(open.Balanced)

	_, err = s.fx.posting.PostJournal(s.ctx, ownerA, domain.Journal{
		JournalDate: date(31),
		Description: "Close income and expense",
		Entries: []domain.JournalEntry{
			{AccountCode: domain.DefaultRevenueAccountCode, Side: domain.Debit, Amount: d("1500000")},
			{AccountCode: domain.DefaultExpenseAccountCode, Side: domain.Credit, Amount: d("600000")},
			{AccountCode: retainedEarningsCode, Side: domain.Credit, Amount: d("900000")},
		},
	})
	s.Require().NoError(err)

	closed, err := s.fx.reporting.BalanceSheet(s.ctx, ownerA, domain.DateRange{})
	s.Require().NoError(err)
	s.True(closed.TotalAssets.Equal(closed.TotalLiabilities.Add(closed.TotalEquity)),
		"%s != %s + %s", closed.TotalAssets, closed.TotalLiabilities, closed.TotalEquity)
	s.True(closed.Check.IsZero())
	s.True(closed.NetIncome.IsZero())
	s.True(closed.Balanced)
}

func TestReporting_InvertedRangeDoesNotQueryStorage(t *testing.T) {
	ctx := context.Background()
	chart, err := services.NewChartService(testChart())
	require.NoError(t, err)
	repo := new(MockJournalRepository)
	svc := services.NewReportingService(repo, chart)

	inverted := domain.NewDateRange(datePtr(10), datePtr(1))
	_, err = svc.GeneralLedger(ctx, ownerA, domain.LedgerQuery{Range: inverted})
	require.NoError(t, err)
	_, err = svc.TrialBalance(ctx, ownerA, inverted)
	require.NoError(t, err)
	_, err = svc.IncomeStatement(ctx, ownerA, inverted)
	require.NoError(t, err)
	_, err = svc.BalanceSheet(ctx, ownerA, inverted)
	require.NoError(t, err)

	repo.AssertNotCalled(t, "FetchEntries", mock.Anything, mock.Anything, mock.Anything)
}

func TestReporting_OwnerAndFilterReachStorage(t *testing.T) {
	ctx := context.Background()
	chart, err := services.NewChartService(testChart())
	require.NoError(t, err)
	repo := new(MockJournalRepository)
	r := domain.NewDateRange(datePtr(1), datePtr(31))
	repo.On("FetchEntries", ctx, ownerA, domain.EntryFilter{AccountCode: domain.CashAccountCode, Range: r}).
		Return([]domain.LedgerEntry{}, nil).Once()

	svc := services.NewReportingService(repo, chart)
	report, err := svc.GeneralLedger(ctx, ownerA, domain.LedgerQuery{AccountCode: domain.CashAccountCode, Range: r})
	require.NoError(t, err)
	require.Len(t, report.Accounts, 1)
	assert.True(t, report.Accounts[0].EndingBalance.IsZero())
	repo.AssertExpectations(t)
}

func TestReporting_StorageErrorPropagates(t *testing.T) {
	ctx := context.Background()
	chart, err := services.NewChartService(testChart())
	require.NoError(t, err)
	repo := new(MockJournalRepository)
	boom := errors.New("db down")
	repo.On("FetchEntries", ctx, ownerA, mock.Anything).Return(nil, boom)

	svc := services.NewReportingService(repo, chart)
	_, err = svc.TrialBalance(ctx, ownerA, domain.DateRange{})
	assert.ErrorIs(t, err, boom)
}
