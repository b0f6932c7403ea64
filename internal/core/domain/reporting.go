package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SortField is the closed set of columns the general ledger can be sorted by.
type SortField int

const (
	SortByDate SortField = iota
	SortByDescription
	SortBySide
	SortByAmount
)

var sortFieldNames = map[SortField]string{
	SortByDate:        "date",
	SortByDescription: "description",
	SortBySide:        "side",
	SortByAmount:      "amount",
}

// SortFields lists every sort field.
func SortFields() []SortField {
	return []SortField{SortByDate, SortByDescription, SortBySide, SortByAmount}
}

func (f SortField) String() string {
	if name, ok := sortFieldNames[f]; ok {
		return name
	}
	return "unknown"
}

// IsValid reports whether f is one of the declared fields.
func (f SortField) IsValid() bool {
	_, ok := sortFieldNames[f]
	return ok
}

// ParseSortField maps a query value to a SortField; ok is false for unknown names.
func ParseSortField(s string) (SortField, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, name := range sortFieldNames {
		if name == s {
			return f, true
		}
	}
	return SortByDate, false
}

// SortOrder is ascending or descending.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

func (o SortOrder) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// ParseSortOrder maps "asc"/"desc"; ok is false for anything else.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return Ascending, true
	case "desc":
		return Descending, true
	}
	return Ascending, false
}

// LedgerQuery holds the general ledger request parameters.
type LedgerQuery struct {
	Range       DateRange
	AccountCode string
	SortField   SortField
	SortOrder   SortOrder
}

// LedgerRow is one entry line of an account section. RunningBalance is the
// chronological fold value after this entry, independent of display order.
type LedgerRow struct {
	EntryID        string          `json:"entryID"`
	JournalID      string          `json:"journalID"`
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	Side           Side            `json:"side"`
	Amount         decimal.Decimal `json:"amount"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// LedgerAccount is the general ledger section for a single account.
type LedgerAccount struct {
	Account       Account         `json:"account"`
	Rows          []LedgerRow     `json:"rows"`
	DebitTotal    decimal.Decimal `json:"debitTotal"`
	CreditTotal   decimal.Decimal `json:"creditTotal"`
	EndingBalance decimal.Decimal `json:"endingBalance"`
}

// LedgerReport is the general ledger for the requested accounts.
type LedgerReport struct {
	Range     DateRange       `json:"-"`
	SortField SortField       `json:"-"`
	SortOrder SortOrder       `json:"-"`
	Accounts  []LedgerAccount `json:"accounts"`
}

// TrialBalanceRow represents a single row in a trial balance report
type TrialBalanceRow struct {
	Account       Account         `json:"account"`
	DebitTotal    decimal.Decimal `json:"debitTotal"`
	CreditTotal   decimal.Decimal `json:"creditTotal"`
	EndingBalance decimal.Decimal `json:"endingBalance"`
}

// TrialBalanceReport lists every account with its totals.
type TrialBalanceReport struct {
	Range       DateRange         `json:"-"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	Balanced    bool              `json:"balanced"`
}

// AccountAmount represents an account with its ending balance for financial statements
type AccountAmount struct {
	Account Account         `json:"account"`
	Balance decimal.Decimal `json:"balance"`
}

// IncomeStatement is the profit and loss view over revenue and expense accounts.
type IncomeStatement struct {
	Range        DateRange       `json:"-"`
	Revenue      []AccountAmount `json:"revenue"`
	Expenses     []AccountAmount `json:"expenses"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Net          decimal.Decimal `json:"net"`
}

// BalanceSheet restricts to asset, liability and equity accounts.
// Check is TotalAssets - (TotalLiabilities + TotalEquity). NetIncome is the
// revenue minus expense that has not been closed into an equity account.
type BalanceSheet struct {
	Range            DateRange       `json:"-"`
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	Check            decimal.Decimal `json:"check"`
	NetIncome        decimal.Decimal `json:"netIncome"`
	Balanced         bool            `json:"balanced"`
}
