package dto

import (
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/smb_ledger/internal/apperrors"
	"github.com/SscSPs/smb_ledger/internal/core/domain"
)

// ReportQuery carries the optional inclusive date bounds shared by every report.
type ReportQuery struct {
	StartDate string `form:"start_date" example:"2024-01-01"`
	EndDate   string `form:"end_date" example:"2024-12-31"`
}

// DateRange parses both bounds. A malformed bound is dropped and logged so a
// bad filter never fails a report.
func (q ReportQuery) DateRange(logger *slog.Logger) domain.DateRange {
	start := parseBound(logger, "start_date", q.StartDate)
	end := parseBound(logger, "end_date", q.EndDate)
	return domain.NewDateRange(start, end)
}

func parseBound(logger *slog.Logger, field, raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := domain.ParseDate(raw)
	if err != nil {
		verr := apperrors.NewValidationError(field, "must be YYYY-MM-DD")
		logger.Warn("Ignoring malformed date filter", slog.String("value", raw), slog.String("error", verr.Error()))
		return nil
	}
	return &t
}

// LedgerQueryParams are the general ledger filters.
type LedgerQueryParams struct {
	ReportQuery
	AccountCode string `form:"account_code"`
	SortField   string `form:"sort_field" enums:"date,description,side,amount"`
	SortOrder   string `form:"sort_order" enums:"asc,desc"`
}

// ToDomain builds the ledger query. An unknown sort field resets the sort to
// date ascending, whatever order was asked for; an unknown order alone falls
// back to ascending.
func (q LedgerQueryParams) ToDomain(logger *slog.Logger) domain.LedgerQuery {
	query := domain.LedgerQuery{
		Range:       q.DateRange(logger),
		AccountCode: strings.TrimSpace(q.AccountCode),
		SortField:   domain.SortByDate,
		SortOrder:   domain.Ascending,
	}
	if q.SortField != "" {
		field, ok := domain.ParseSortField(q.SortField)
		if !ok {
			logger.Warn("Unknown sort field, using date ascending", slog.String("sort_field", q.SortField))
			return query
		}
		query.SortField = field
	}
	if q.SortOrder != "" {
		order, ok := domain.ParseSortOrder(q.SortOrder)
		if !ok {
			logger.Warn("Unknown sort order, using asc", slog.String("sort_order", q.SortOrder))
		}
		query.SortOrder = order
	}
	return query
}

// PeriodResponse echoes the applied range; nil bounds are open.
type PeriodResponse struct {
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

func toPeriod(r domain.DateRange) PeriodResponse {
	var p PeriodResponse
	if r.Start != nil {
		s := formatDate(*r.Start)
		p.StartDate = &s
	}
	if r.End != nil {
		e := formatDate(*r.End)
		p.EndDate = &e
	}
	return p
}

// LedgerRowResponse is one entry line in a ledger section.
type LedgerRowResponse struct {
	EntryID        string          `json:"entryID"`
	JournalID      string          `json:"journalID"`
	Date           string          `json:"date"`
	Description    string          `json:"description"`
	Side           string          `json:"side"`
	Amount         decimal.Decimal `json:"amount" swaggertype:"string"`
	RunningBalance decimal.Decimal `json:"runningBalance" swaggertype:"string"`
}

// LedgerAccountResponse is the ledger section for one account.
type LedgerAccountResponse struct {
	AccountCode   string              `json:"accountCode"`
	AccountName   string              `json:"accountName"`
	AccountType   string              `json:"accountType"`
	Rows          []LedgerRowResponse `json:"rows"`
	DebitTotal    decimal.Decimal     `json:"debitTotal" swaggertype:"string"`
	CreditTotal   decimal.Decimal     `json:"creditTotal" swaggertype:"string"`
	EndingBalance decimal.Decimal     `json:"endingBalance" swaggertype:"string"`
}

// LedgerResponse is the general ledger report.
type LedgerResponse struct {
	Period    PeriodResponse          `json:"period"`
	SortField string                  `json:"sortField"`
	SortOrder string                  `json:"sortOrder"`
	Accounts  []LedgerAccountResponse `json:"accounts"`
}

// ToLedgerResponse converts a domain ledger report.
func ToLedgerResponse(report *domain.LedgerReport) LedgerResponse {
	resp := LedgerResponse{
		Period:    toPeriod(report.Range),
		SortField: report.SortField.String(),
		SortOrder: report.SortOrder.String(),
		Accounts:  make([]LedgerAccountResponse, len(report.Accounts)),
	}
	for i, section := range report.Accounts {
		rows := make([]LedgerRowResponse, len(section.Rows))
		for j, row := range section.Rows {
			rows[j] = LedgerRowResponse{
				EntryID:        row.EntryID,
				JournalID:      row.JournalID,
				Date:           formatDate(row.Date),
				Description:    row.Description,
				Side:           string(row.Side),
				Amount:         row.Amount,
				RunningBalance: row.RunningBalance,
			}
		}
		resp.Accounts[i] = LedgerAccountResponse{
			AccountCode:   section.Account.Code,
			AccountName:   section.Account.Name,
			AccountType:   string(section.Account.Type),
			Rows:          rows,
			DebitTotal:    section.DebitTotal,
			CreditTotal:   section.CreditTotal,
			EndingBalance: section.EndingBalance,
		}
	}
	return resp
}

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	AccountType   string          `json:"accountType"`
	Debit         decimal.Decimal `json:"debit" swaggertype:"string"`
	Credit        decimal.Decimal `json:"credit" swaggertype:"string"`
	EndingBalance decimal.Decimal `json:"endingBalance" swaggertype:"string"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	Period PeriodResponse            `json:"period"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit" swaggertype:"string"`
		Credit decimal.Decimal `json:"credit" swaggertype:"string"`
	} `json:"totals"`
	Balanced bool `json:"balanced"`
}

// ToTrialBalanceResponse converts a domain trial balance to a DTO response
func ToTrialBalanceResponse(report *domain.TrialBalanceReport) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		Period:   toPeriod(report.Range),
		Rows:     make([]TrialBalanceRowResponse, len(report.Rows)),
		Balanced: report.Balanced,
	}
	for i, row := range report.Rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			AccountCode:   row.Account.Code,
			AccountName:   row.Account.Name,
			AccountType:   string(row.Account.Type),
			Debit:         row.DebitTotal,
			Credit:        row.CreditTotal,
			EndingBalance: row.EndingBalance,
		}
	}
	resp.Totals.Debit = report.TotalDebit
	resp.Totals.Credit = report.TotalCredit
	return resp
}

// AccountAmountResponse represents an account with its amount in a financial report
type AccountAmountResponse struct {
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string"`
}

func toAccountAmounts(in []domain.AccountAmount) []AccountAmountResponse {
	out := make([]AccountAmountResponse, len(in))
	for i, a := range in {
		out[i] = AccountAmountResponse{AccountCode: a.Account.Code, Name: a.Account.Name, Amount: a.Balance}
	}
	return out
}

// IncomeStatementResponse represents the income statement response
type IncomeStatementResponse struct {
	Period   PeriodResponse          `json:"period"`
	Revenue  []AccountAmountResponse `json:"revenue"`
	Expenses []AccountAmountResponse `json:"expenses"`
	Summary  struct {
		TotalIncome  decimal.Decimal `json:"totalIncome" swaggertype:"string"`
		TotalExpense decimal.Decimal `json:"totalExpense" swaggertype:"string"`
		Net          decimal.Decimal `json:"net" swaggertype:"string"`
	} `json:"summary"`
}

// ToIncomeStatementResponse converts a domain income statement.
func ToIncomeStatementResponse(report *domain.IncomeStatement) IncomeStatementResponse {
	resp := IncomeStatementResponse{
		Period:   toPeriod(report.Range),
		Revenue:  toAccountAmounts(report.Revenue),
		Expenses: toAccountAmounts(report.Expenses),
	}
	resp.Summary.TotalIncome = report.TotalIncome
	resp.Summary.TotalExpense = report.TotalExpense
	resp.Summary.Net = report.Net
	return resp
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	Period      PeriodResponse          `json:"period"`
	Assets      []AccountAmountResponse `json:"assets"`
	Liabilities []AccountAmountResponse `json:"liabilities"`
	Equity      []AccountAmountResponse `json:"equity"`
	Summary     struct {
		TotalAssets      decimal.Decimal `json:"totalAssets" swaggertype:"string"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities" swaggertype:"string"`
		TotalEquity      decimal.Decimal `json:"totalEquity" swaggertype:"string"`
		Check            decimal.Decimal `json:"check" swaggertype:"string"`
		NetIncome        decimal.Decimal `json:"netIncome" swaggertype:"string"`
		Balanced         bool            `json:"balanced"`
	} `json:"summary"`
}

// ToBalanceSheetResponse converts a domain balance sheet to a DTO response
func ToBalanceSheetResponse(report *domain.BalanceSheet) BalanceSheetResponse {
	resp := BalanceSheetResponse{
		Period:      toPeriod(report.Range),
		Assets:      toAccountAmounts(report.Assets),
		Liabilities: toAccountAmounts(report.Liabilities),
		Equity:      toAccountAmounts(report.Equity),
	}
	resp.Summary.TotalAssets = report.TotalAssets
	resp.Summary.TotalLiabilities = report.TotalLiabilities
	resp.Summary.TotalEquity = report.TotalEquity
	resp.Summary.Check = report.Check
	resp.Summary.NetIncome = report.NetIncome
	resp.Summary.Balanced = report.Balanced
	return resp
}
