package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/smb_ledger/internal/apperrors"
	"github.com/SscSPs/smb_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/smb_ledger/internal/core/ports/services"
	"github.com/SscSPs/smb_ledger/internal/dto"
	"github.com/SscSPs/smb_ledger/internal/handlers"
	"github.com/SscSPs/smb_ledger/internal/platform/config"
)

// --- Mock ChartOfAccountsSvc ---
type MockChartService struct {
	mock.Mock
}

func (m *MockChartService) LookupByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockChartService) ListByType(ctx context.Context, accountType domain.AccountType) []domain.Account {
	return m.Called(ctx, accountType).Get(0).([]domain.Account)
}
func (m *MockChartService) ListAll(ctx context.Context) []domain.Account {
	return m.Called(ctx).Get(0).([]domain.Account)
}
func (m *MockChartService) RequireWellKnown(ctx context.Context, wk domain.WellKnownAccounts) error {
	return m.Called(ctx, wk).Error(0)
}

var _ portssvc.ChartOfAccountsSvc = (*MockChartService)(nil)

// --- Mock PostingSvcFacade ---
type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) Post(ctx context.Context, ownerID string, src domain.SourceTransaction) ([]domain.Journal, error) {
	args := m.Called(ctx, ownerID, src)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}
func (m *MockPostingService) PostBatch(ctx context.Context, ownerID string, srcs []domain.SourceTransaction) []domain.PostingResult {
	return m.Called(ctx, ownerID, srcs).Get(0).([]domain.PostingResult)
}
func (m *MockPostingService) PostJournal(ctx context.Context, ownerID string, draft domain.Journal) (*domain.Journal, error) {
	args := m.Called(ctx, ownerID, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockPostingService) GetJournal(ctx context.Context, ownerID, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, ownerID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockPostingService) ListJournals(ctx context.Context, ownerID string, dateRange domain.DateRange, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	args := m.Called(ctx, ownerID, dateRange, limit, nextToken)
	var next *string
	if v := args.Get(1); v != nil {
		next = v.(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Journal), next, args.Error(2)
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GeneralLedger(ctx context.Context, ownerID string, query domain.LedgerQuery) (*domain.LedgerReport, error) {
	args := m.Called(ctx, ownerID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerReport), args.Error(1)
}
func (m *MockReportingService) TrialBalance(ctx context.Context, ownerID string, dateRange domain.DateRange) (*domain.TrialBalanceReport, error) {
	args := m.Called(ctx, ownerID, dateRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalanceReport), args.Error(1)
}
func (m *MockReportingService) IncomeStatement(ctx context.Context, ownerID string, dateRange domain.DateRange) (*domain.IncomeStatement, error) {
	args := m.Called(ctx, ownerID, dateRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatement), args.Error(1)
}
func (m *MockReportingService) BalanceSheet(ctx context.Context, ownerID string, dateRange domain.DateRange) (*domain.BalanceSheet, error) {
	args := m.Called(ctx, ownerID, dateRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheet), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	chart     *MockChartService
	posting   *MockPostingService
	reporting *MockReportingService
	jwtSecret string
	token     string
}

const testOwner = "owner-1"

// generateTestToken creates a dummy JWT for testing.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "smb-ledger-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.token = suite.generateTestToken(testOwner)

	suite.chart = new(MockChartService)
	suite.posting = new(MockPostingService)
	suite.reporting = new(MockReportingService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	services := &portssvc.ServiceContainer{Chart: suite.chart, Posting: suite.posting, Reporting: suite.reporting}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, services, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("metrics"))
	}))
}

func (suite *HandlerTestSuite) do(method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Authorization", "Bearer "+suite.token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	return rec
}

func (suite *HandlerTestSuite) TestPublicRoutes() {
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	suite.Equal(http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	suite.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	suite.Equal("metrics", rec.Body.String())

	rec = httptest.NewRecorder()
	suite.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))
	suite.Equal(http.StatusUnauthorized, rec.Code)
}

func (suite *HandlerTestSuite) TestListAccounts() {
	cash := domain.Account{Code: "1101", Name: "Cash", Type: domain.Asset}
	suite.chart.On("ListAll", mock.Anything).Return([]domain.Account{cash}).Once()
	suite.chart.On("ListByType", mock.Anything, domain.Asset).Return([]domain.Account{cash}).Once()

	rec := suite.do(http.MethodGet, "/api/v1/accounts", nil)
	suite.Equal(http.StatusOK, rec.Code)
	var resp dto.ListAccountsResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	suite.Equal([]dto.AccountResponse{{Code: "1101", Name: "Cash", Type: "ASSET"}}, resp.Accounts)

	rec = suite.do(http.MethodGet, "/api/v1/accounts?type=asset", nil)
	suite.Equal(http.StatusOK, rec.Code)

	rec = suite.do(http.MethodGet, "/api/v1/accounts?type=cash", nil)
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.chart.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetAccountNotFound() {
	suite.chart.On("LookupByCode", mock.Anything, "0000").Return(nil, apperrors.ErrNotFound)
	rec := suite.do(http.MethodGet, "/api/v1/accounts/0000", nil)
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *HandlerTestSuite) TestPostRecord_Success() {
	journals := []domain.Journal{{JournalID: "j1", JournalDate: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), Entries: []domain.JournalEntry{
		{EntryID: "e1", AccountCode: "1101", Side: domain.Debit, Amount: decimal.NewFromInt(100)},
		{EntryID: "e2", AccountCode: "4101", Side: domain.Credit, Amount: decimal.NewFromInt(100)},
	}}}
	suite.posting.On("Post", mock.Anything, testOwner, mock.MatchedBy(func(src domain.SourceTransaction) bool {
		return src.SourceID == "s1" && src.Kind == domain.CashIncome && src.Amount.Equal(decimal.NewFromInt(100))
	})).Return(journals, nil).Once()

	rec := suite.do(http.MethodPost, "/api/v1/postings", map[string]any{
		"sourceID": "s1", "kind": "CASH_INCOME", "date": "2024-01-31", "amount": "100",
	})
	suite.Equal(http.StatusCreated, rec.Code)
	var resp dto.PostingResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	suite.Equal("2024-01-31", resp.Journals[0].Date)
	suite.posting.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestPostRecord_ErrorMapping() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperrors.NewValidationError("amount", "must be positive"), http.StatusBadRequest},
		{"configuration", &apperrors.ConfigurationError{Role: "cash", Code: "1101"}, http.StatusUnprocessableEntity},
		{"duplicate", apperrors.ErrDuplicate, http.StatusConflict},
		{"imbalance is internal here", &apperrors.ImbalanceError{Journal: "x"}, http.StatusInternalServerError},
		{"storage", apperrors.NewAppError(500, "db down", nil), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.posting.ExpectedCalls = nil
			suite.posting.On("Post", mock.Anything, testOwner, mock.Anything).Return(nil, tt.err).Once()
			rec := suite.do(http.MethodPost, "/api/v1/postings", map[string]any{
				"sourceID": "s1", "kind": "DEBT", "date": "2024-01-31", "amount": "5",
			})
			suite.Equal(tt.status, rec.Code)
		})
	}
}

func (suite *HandlerTestSuite) TestPostRecord_BindingErrors() {
	rec := suite.do(http.MethodPost, "/api/v1/postings", map[string]any{"sourceID": "s1", "kind": "GIFT", "date": "2024-01-31"})
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Contains(rec.Body.String(), "oneof")

	rec = suite.do(http.MethodPost, "/api/v1/postings", map[string]any{"sourceID": "s1", "kind": "DEBT", "date": "31-01-2024"})
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.posting.AssertNotCalled(suite.T(), "Post", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestPostBatch() {
	suite.posting.On("PostBatch", mock.Anything, testOwner, mock.MatchedBy(func(srcs []domain.SourceTransaction) bool {
		return len(srcs) == 2 && srcs[0].SourceID == "a" && srcs[1].SourceID == "c"
	})).Return([]domain.PostingResult{
		{SourceID: "a", Journals: []domain.Journal{{JournalID: "j1"}}},
		{SourceID: "c", Err: apperrors.ErrDuplicate},
	}).Once()

	rec := suite.do(http.MethodPost, "/api/v1/postings/batch", map[string]any{"records": []map[string]any{
		{"sourceID": "a", "kind": "CASH_INCOME", "date": "2024-01-01", "amount": "1"},
		{"sourceID": "b", "kind": "CASH_INCOME", "date": "not-a-date", "amount": "1"},
		{"sourceID": "c", "kind": "CASH_INCOME", "date": "2024-01-03", "amount": "1"},
	}})
	suite.Equal(http.StatusOK, rec.Code)

	var resp dto.BatchPostingResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	suite.Equal(1, resp.Posted)
	suite.Equal(2, resp.Failed)
	suite.Require().Len(resp.Results, 3)
	suite.Equal("posted", resp.Results[0].Status)
	suite.Equal("rejected", resp.Results[1].Status)
	suite.Equal("b", resp.Results[1].SourceID)
	suite.Equal("duplicate", resp.Results[2].Status)
}

func (suite *HandlerTestSuite) TestCreateJournal() {
	body := map[string]any{
		"date": "2024-12-31", "description": "opening capital",
		"entries": []map[string]any{
			{"accountCode": "1101", "side": "DEBIT", "amount": "10"},
			{"accountCode": "3101", "side": "CREDIT", "amount": "9"},
		},
	}

	suite.posting.On("PostJournal", mock.Anything, testOwner, mock.Anything).
		Return(nil, &apperrors.ImbalanceError{Journal: "opening capital", Debit: decimal.NewFromInt(10), Credit: decimal.NewFromInt(9)}).Once()
	rec := suite.do(http.MethodPost, "/api/v1/journals", body)
	suite.Equal(http.StatusBadRequest, rec.Code, "a caller-built imbalance is bad input")
	suite.Contains(rec.Body.String(), "does not balance")

	suite.posting.On("PostJournal", mock.Anything, testOwner, mock.Anything).
		Return(&domain.Journal{JournalID: "j9", JournalDate: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)}, nil).Once()
	rec = suite.do(http.MethodPost, "/api/v1/journals", body)
	suite.Equal(http.StatusCreated, rec.Code)

	rec = suite.do(http.MethodPost, "/api/v1/journals", map[string]any{"date": "2024-12-31", "description": "x", "entries": []map[string]any{}})
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *HandlerTestSuite) TestGetAndListJournals() {
	suite.posting.On("GetJournal", mock.Anything, testOwner, "missing").Return(nil, apperrors.ErrNotFound).Once()
	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/api/v1/journals/missing", nil).Code)

	next := "tok"
	suite.posting.On("ListJournals", mock.Anything, testOwner, mock.MatchedBy(func(r domain.DateRange) bool {
		return r.Start != nil && r.End == nil
	}), 5, (*string)(nil)).Return([]domain.Journal{{JournalID: "j1"}}, &next, nil).Once()
	rec := suite.do(http.MethodGet, "/api/v1/journals?start_date=2024-01-01&end_date=bogus&limit=5", nil)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), `"nextToken":"tok"`)

	suite.posting.On("ListJournals", mock.Anything, testOwner, mock.Anything, 0, mock.Anything).
		Return(nil, nil, apperrors.NewValidationError("nextToken", "malformed")).Once()
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/journals?nextToken=zz", nil).Code)

	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/journals?limit=1000", nil).Code)
}

func (suite *HandlerTestSuite) TestLedgerFiltersNeverFail() {
	suite.reporting.On("GeneralLedger", mock.Anything, testOwner, mock.MatchedBy(func(q domain.LedgerQuery) bool {
		return q.Range.Start == nil && q.Range.End != nil &&
			q.SortField == domain.SortByDate && q.SortOrder == domain.Ascending &&
			q.AccountCode == "1101"
	})).Return(&domain.LedgerReport{SortField: domain.SortByDate}, nil).Once()

	rec := suite.do(http.MethodGet, "/api/v1/reports/ledger?start_date=01/02/2024&end_date=2024-03-01&account_code=1101&sort_field=colour&sort_order=up", nil)
	suite.Equal(http.StatusOK, rec.Code)
	suite.reporting.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestStatements() {
	suite.reporting.On("TrialBalance", mock.Anything, testOwner, mock.Anything).Return(&domain.TrialBalanceReport{Balanced: true}, nil).Once()
	suite.reporting.On("IncomeStatement", mock.Anything, testOwner, mock.Anything).Return(&domain.IncomeStatement{Net: decimal.NewFromInt(7)}, nil).Once()
	suite.reporting.On("BalanceSheet", mock.Anything, testOwner, mock.Anything).Return(nil, apperrors.NewAppError(500, "boom", nil)).Once()

	rec := suite.do(http.MethodGet, "/api/v1/reports/trial-balance", nil)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), `"balanced":true`)

	rec = suite.do(http.MethodGet, "/api/v1/reports/income-statement?start_date=2024-01-01", nil)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), `"net":"7"`)

	rec = suite.do(http.MethodGet, "/api/v1/reports/balance-sheet", nil)
	suite.Equal(http.StatusInternalServerError, rec.Code)
	suite.NotContains(rec.Body.String(), "boom")
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
