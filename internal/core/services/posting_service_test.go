package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/smb_ledger/internal/apperrors"
	"github.com/SscSPs/smb_ledger/internal/core/domain"
	"github.com/SscSPs/smb_ledger/internal/core/services"
	"github.com/SscSPs/smb_ledger/internal/utils/accounting"
)

type PostingServiceTestSuite struct {
	suite.Suite
	ctx context.Context
	fx  *ledgerFixture
}

func (s *PostingServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.fx = newLedgerFixture(s.T(), testChart())
}

func TestPostingService(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}

func (s *PostingServiceTestSuite) requireLegs(j domain.Journal, debitCode, creditCode, amount string) {
	s.Require().Len(j.Entries, 2)
	debit, credit := j.Entries[0], j.Entries[1]
	s.Equal(domain.Debit, debit.Side)
	s.Equal(debitCode, debit.AccountCode)
	s.True(debit.Amount.Equal(d(amount)), "debit amount %s", debit.Amount)
	s.Equal(domain.Credit, credit.Side)
	s.Equal(creditCode, credit.AccountCode)
	s.True(credit.Amount.Equal(d(amount)), "credit amount %s", credit.Amount)
	s.NoError(accounting.ValidateJournalBalance(j))
}

func (s *PostingServiceTestSuite) TestCashIncome_DefaultRevenue() {
	journals, err := s.fx.posting.Post(s.ctx, ownerA, cashIncome("ci-1", 1, "1000000"))
	s.Require().NoError(err)
	s.Require().Len(journals, 1)
	s.requireLegs(journals[0], domain.CashAccountCode, domain.DefaultRevenueAccountCode, "1000000")
	s.Equal(ownerA, journals[0].OwnerID)
	s.Equal("CASH_INCOME:ci-1", journals[0].SourceRef)
	s.Equal(1, journals[0].SourceSeq)
}

func (s *PostingServiceTestSuite) TestCashIncome_CategoryAccount() {
	src := cashIncome("ci-2", 1, "750")
	src.Category = &domain.Category{Name: "Consulting", AccountCode: consultingCode}

	journals, err := s.fx.posting.Post(s.ctx, ownerA, src)
	s.Require().NoError(err)
	s.requireLegs(journals[0], domain.CashAccountCode, consultingCode, "750")
}

func (s *PostingServiceTestSuite) TestCashExpense_DefaultAndCategory() {
	journals, err := s.fx.posting.Post(s.ctx, ownerA, cashExpense("ce-1", 2, "200000"))
	s.Require().NoError(err)
	s.Require().Len(journals, 1)
	s.requireLegs(journals[0], domain.DefaultExpenseAccountCode, domain.CashAccountCode, "200000")

	src := cashExpense("ce-2", 2, "1200")
	src.Category = &domain.Category{Name: "Rent", AccountCode: rentCode}
	journals, err = s.fx.posting.Post(s.ctx, ownerA, src)
	s.Require().NoError(err)
	s.requireLegs(journals[0], rentCode, domain.CashAccountCode, "1200")
}

func (s *PostingServiceTestSuite) TestUnmappedCategoryFallsBack() {
	src := cashExpense("ce-3", 2, "10")
	src.Category = &domain.Category{Name: "Misc"}
	journals, err := s.fx.posting.Post(s.ctx, ownerA, src)
	s.Require().NoError(err)
	s.requireLegs(journals[0], domain.DefaultExpenseAccountCode, domain.CashAccountCode, "10")
}

func (s *PostingServiceTestSuite) TestReceivable_PartialPayment() {
	journals, err := s.fx.posting.Post(s.ctx, ownerA, receivable("inv-1", 3, "500000", "300000", 5))
	s.Require().NoError(err)
	s.Require().Len(journals, 2)
	s.requireLegs(journals[0], domain.ReceivableAccountCode, domain.DefaultRevenueAccountCode, "500000")
	s.requireLegs(journals[1], domain.CashAccountCode, domain.ReceivableAccountCode, "300000")
	s.Equal(date(3), journals[0].JournalDate)
	s.Equal(date(5), journals[1].JournalDate, "payment journal uses the paid date")
	s.Equal(2, journals[1].SourceSeq)
}

func (s *PostingServiceTestSuite) TestReceivable_Unpaid() {
	journals, err := s.fx.posting.Post(s.ctx, ownerA, receivable("inv-2", 3, "100", "0", 3))
	s.Require().NoError(err)
	s.Len(journals, 1)
}

func (s *PostingServiceTestSuite) TestDebt_FullPaymentWithoutPaidDate() {
	src := debt("bill-1", 4, "400", "400", 0)
	src.PaidDate = nil
	journals, err := s.fx.posting.Post(s.ctx, ownerA, src)
	s.Require().NoError(err)
	s.Require().Len(journals, 2)
	s.requireLegs(journals[0], domain.DefaultExpenseAccountCode, domain.PayableAccountCode, "400")
	s.requireLegs(journals[1], domain.PayableAccountCode, domain.CashAccountCode, "400")
	s.Equal(date(4), journals[1].JournalDate, "payment falls back to the record date")
}

func (s *PostingServiceTestSuite) TestValidation() {
	cases := map[string]func(src *domain.SourceTransaction){
		"zero amount":      func(src *domain.SourceTransaction) { src.Amount = d("0") },
		"negative amount":  func(src *domain.SourceTransaction) { src.Amount = d("-5") },
		"negative paid":    func(src *domain.SourceTransaction) { src.PaidAmount = d("-1") },
		"overpaid":         func(src *domain.SourceTransaction) { src.PaidAmount = d("1000") },
		"unknown kind":     func(src *domain.SourceTransaction) { src.Kind = "GIFT" },
		"missing date":     func(src *domain.SourceTransaction) { src.Date = time.Time{} },
		"missing sourceID": func(src *domain.SourceTransaction) { src.SourceID = "" },
		"amount too fine":  func(src *domain.SourceTransaction) { src.Amount = d("100.00001") },
		"paid too fine":    func(src *domain.SourceTransaction) { src.PaidAmount = d("0.00001") },
	}
	for name, mutate := range cases {
		s.Run(name, func() {
			src := receivable("inv-v", 3, "100", "50", 3)
			mutate(&src)
			journals, err := s.fx.posting.Post(s.ctx, ownerA, src)
			s.ErrorIs(err, apperrors.ErrValidation)
			s.Nil(journals)
		})
	}

	entries, err := s.fx.store.FetchEntries(s.ctx, ownerA, domain.EntryFilter{})
	s.Require().NoError(err)
	s.Empty(entries, "rejected records must not write anything")
}

func (s *PostingServiceTestSuite) TestDuplicateSourceRejected() {
	_, err := s.fx.posting.Post(s.ctx, ownerA, receivable("inv-9", 3, "100", "40", 4))
	s.Require().NoError(err)

	_, err = s.fx.posting.Post(s.ctx, ownerA, receivable("inv-9", 3, "100", "40", 4))
	s.ErrorIs(err, apperrors.ErrDuplicate)

	entries, err := s.fx.store.FetchEntries(s.ctx, ownerA, domain.EntryFilter{})
	s.Require().NoError(err)
	s.Len(entries, 4, "second posting must not double count")

	_, err = s.fx.posting.Post(s.ctx, ownerB, receivable("inv-9", 3, "100", "40", 4))
	s.NoError(err, "source ids are scoped per owner")
}

func (s *PostingServiceTestSuite) TestPostBatch_IndependentRecords() {
	bad := cashIncome("bad", 1, "0")
	results := s.fx.posting.PostBatch(s.ctx, ownerA, []domain.SourceTransaction{
		cashIncome("ok-1", 1, "10"),
		bad,
		receivable("ok-2", 2, "30", "10", 3),
	})
	s.Require().Len(results, 3)
	s.NoError(results[0].Err)
	s.Len(results[0].Journals, 1)
	s.ErrorIs(results[1].Err, apperrors.ErrValidation)
	s.Empty(results[1].Journals)
	s.NoError(results[2].Err)
	s.Len(results[2].Journals, 2)

	entries, err := s.fx.store.FetchEntries(s.ctx, ownerA, domain.EntryFilter{})
	s.Require().NoError(err)
	s.Len(entries, 6)
}

func (s *PostingServiceTestSuite) TestPostJournal() {
	draft := domain.Journal{
		JournalDate: date(1),
		Description: "Owner investment",
		Entries: []domain.JournalEntry{
			{AccountCode: domain.CashAccountCode, Side: domain.Debit, Amount: d("5000")},
			{AccountCode: capitalCode, Side: domain.Credit, Amount: d("5000")},
		},
	}
	j, err := s.fx.posting.PostJournal(s.ctx, ownerA, draft)
	s.Require().NoError(err)
	s.NotEmpty(j.JournalID)
	for _, e := range j.Entries {
		s.Equal(j.JournalID, e.JournalID)
		s.NotEmpty(e.EntryID)
	}

	got, err := s.fx.posting.GetJournal(s.ctx, ownerA, j.JournalID)
	s.Require().NoError(err)
	s.Equal(j.Description, got.Description)

	_, err = s.fx.posting.GetJournal(s.ctx, ownerB, j.JournalID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PostingServiceTestSuite) TestPostJournal_HardBalanceCheck() {
	draft := domain.Journal{
		JournalDate: date(1),
		Description: "typo",
		Entries: []domain.JournalEntry{
			{AccountCode: domain.CashAccountCode, Side: domain.Debit, Amount: d("5000")},
			{AccountCode: capitalCode, Side: domain.Credit, Amount: d("500")},
		},
	}
	_, err := s.fx.posting.PostJournal(s.ctx, ownerA, draft)
	s.ErrorIs(err, apperrors.ErrImbalance)

	draft.Entries[1].Amount = d("5000")
	draft.Entries[1].AccountCode = "3999"
	_, err = s.fx.posting.PostJournal(s.ctx, ownerA, draft)
	s.ErrorIs(err, apperrors.ErrValidation)

	journals, _, err := s.fx.posting.ListJournals(s.ctx, ownerA, domain.DateRange{}, 0, nil)
	s.Require().NoError(err)
	s.Empty(journals)
}

func (s *PostingServiceTestSuite) TestListJournals_Paging() {
	for i, src := range []domain.SourceTransaction{cashIncome("a", 3, "1"), cashIncome("b", 1, "1"), cashIncome("c", 2, "1")} {
		_, err := s.fx.posting.Post(s.ctx, ownerA, src)
		s.Require().NoError(err, "record %d", i)
	}

	page, next, err := s.fx.posting.ListJournals(s.ctx, ownerA, domain.DateRange{}, 2, nil)
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal(date(1), page[0].JournalDate)
	s.Equal(date(2), page[1].JournalDate)
	s.Require().NotNil(next)

	page, next, err = s.fx.posting.ListJournals(s.ctx, ownerA, domain.DateRange{}, 2, next)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal(date(3), page[0].JournalDate)
	s.Nil(next)

	inverted := domain.NewDateRange(datePtr(5), datePtr(1))
	page, _, err = s.fx.posting.ListJournals(s.ctx, ownerA, inverted, 10, nil)
	s.Require().NoError(err)
	s.Empty(page)
}

func TestPost_ConfigurationErrorWhenDefaultExpenseMissing(t *testing.T) {
	var accounts []domain.Account
	for _, acc := range testChart() {
		if acc.Code != domain.DefaultExpenseAccountCode {
			accounts = append(accounts, acc)
		}
	}
	fx := newLedgerFixture(t, accounts)
	ctx := context.Background()

	_, err := fx.posting.Post(ctx, ownerA, cashExpense("ce-x", 1, "200000"))
	require.ErrorIs(t, err, apperrors.ErrConfiguration)
	var cfgErr *apperrors.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, domain.DefaultExpenseAccountCode, cfgErr.Code)

	// A category with its own account does not need the default.
	src := cashExpense("ce-y", 1, "50")
	src.Category = &domain.Category{Name: "Rent", AccountCode: rentCode}
	_, err = fx.posting.Post(ctx, ownerA, src)
	assert.NoError(t, err)

	// A category mapped to an account outside the chart is never posted elsewhere.
	src = cashIncome("ci-z", 1, "50")
	src.Category = &domain.Category{Name: "Ghost", AccountCode: "4999"}
	_, err = fx.posting.Post(ctx, ownerA, src)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)

	entries, err := fx.store.FetchEntries(ctx, ownerA, domain.EntryFilter{})
	require.NoError(t, err)
	assert.Len(t, entries, 2, "only the rent expense was written")
}

func TestPost_CategoryAccountMustMatchKind(t *testing.T) {
	ctx := context.Background()
	fx := newLedgerFixture(t, testChart())

	income := cashIncome("ci-cash", 1, "100")
	income.Category = &domain.Category{Name: "Transfer", AccountCode: domain.CashAccountCode}
	journals, err := fx.posting.Post(ctx, ownerA, income)
	require.ErrorIs(t, err, apperrors.ErrConfiguration)
	assert.Nil(t, journals)
	var cfgErr *apperrors.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "category Transfer", cfgErr.Role)
	assert.Equal(t, domain.CashAccountCode, cfgErr.Code)

	expense := cashExpense("ce-payable", 1, "50")
	expense.Category = &domain.Category{Name: "Supplier", AccountCode: domain.PayableAccountCode}
	_, err = fx.posting.Post(ctx, ownerA, expense)
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "category Supplier", cfgErr.Role)
	assert.Equal(t, domain.PayableAccountCode, cfgErr.Code)

	// An expense account is not a valid income category either.
	income = cashIncome("ci-rent", 1, "100")
	income.Category = &domain.Category{Name: "Rent", AccountCode: rentCode}
	_, err = fx.posting.Post(ctx, ownerA, income)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)

	entries, err := fx.store.FetchEntries(ctx, ownerA, domain.EntryFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)

	stmt, err := fx.reporting.IncomeStatement(ctx, ownerA, domain.DateRange{})
	require.NoError(t, err)
	assert.True(t, stmt.TotalIncome.IsZero())
}

func TestPost_SavesAllJournalsOfARecordInOneCall(t *testing.T) {
	ctx := context.Background()
	chart, err := services.NewChartService(testChart())
	require.NoError(t, err)

	repo := new(MockJournalRepository)
	repo.On("SaveJournals", ctx, mock.MatchedBy(func(js []domain.Journal) bool { return len(js) == 2 })).
		Return(errors.New("connection reset")).Once()

	svc := services.NewPostingService(repo, chart)
	journals, err := svc.Post(ctx, ownerA, receivable("inv-1", 1, "500", "300", 2))
	assert.Error(t, err)
	assert.Nil(t, journals)
	repo.AssertExpectations(t)
	repo.AssertNumberOfCalls(t, "SaveJournals", 1)
}

type recorder struct {
	postings map[string]int
}

func (r *recorder) ObservePosting(kind, result string) { r.postings[kind+"/"+result]++ }

func TestPost_RecordsOutcomes(t *testing.T) {
	ctx := context.Background()
	fx := newLedgerFixture(t, testChart())
	rec := &recorder{postings: map[string]int{}}
	svc := services.NewPostingService(fx.store, fx.chart, services.WithPostingRecorder(rec))

	_, _ = svc.Post(ctx, ownerA, cashIncome("1", 1, "5"))
	_, _ = svc.Post(ctx, ownerA, cashIncome("1", 1, "5"))
	_, _ = svc.Post(ctx, ownerA, cashIncome("2", 1, "0"))

	assert.Equal(t, 1, rec.postings["CASH_INCOME/posted"])
	assert.Equal(t, 1, rec.postings["CASH_INCOME/duplicate"])
	assert.Equal(t, 1, rec.postings["CASH_INCOME/rejected"])
}

func TestResolveAccount(t *testing.T) {
	assert.Equal(t, "4101", services.ResolveAccount(nil, "4101"))
	assert.Equal(t, "4101", services.ResolveAccount(&domain.Category{Name: "x"}, "4101"))
	assert.Equal(t, "4102", services.ResolveAccount(&domain.Category{Name: "x", AccountCode: "4102"}, "4101"))
}
