package domain

import (
	"fmt"
	"strings"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountTypes lists every account type in statement order.
func AccountTypes() []AccountType {
	return []AccountType{Asset, Liability, Equity, Revenue, Expense}
}

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether debits increase the balance of this type.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// ParseAccountType accepts any casing of the type name.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("unknown account type %q", s)
	}
	return t, nil
}

// Account is one row in the chart of accounts. Code is the stable identifier
// referenced by journal entries; Type never changes after creation.
type Account struct {
	Code string      `json:"code"`
	Name string      `json:"name"`
	Type AccountType `json:"type"`
}

// Well-known account codes used by the posting rules.
const (
	CashAccountCode           = "1101"
	ReceivableAccountCode     = "1201"
	PayableAccountCode        = "2101"
	DefaultRevenueAccountCode = "4101"
	DefaultExpenseAccountCode = "5101"
)

// WellKnownAccounts maps each posting role to an account code.
type WellKnownAccounts struct {
	Cash           string
	Receivable     string
	Payable        string
	DefaultRevenue string
	DefaultExpense string
}

// DefaultWellKnownAccounts returns the built-in codes.
func DefaultWellKnownAccounts() WellKnownAccounts {
	return WellKnownAccounts{
		Cash:           CashAccountCode,
		Receivable:     ReceivableAccountCode,
		Payable:        PayableAccountCode,
		DefaultRevenue: DefaultRevenueAccountCode,
		DefaultExpense: DefaultExpenseAccountCode,
	}
}

// AccountRole pairs a posting role name with its configured code and the
// account type the role requires.
type AccountRole struct {
	Role string
	Code string
	Type AccountType
}

// Roles returns the roles in a fixed order so validation output is stable.
func (w WellKnownAccounts) Roles() []AccountRole {
	return []AccountRole{
		{Role: "cash", Code: w.Cash, Type: Asset},
		{Role: "receivable", Code: w.Receivable, Type: Asset},
		{Role: "payable", Code: w.Payable, Type: Liability},
		{Role: "default revenue", Code: w.DefaultRevenue, Type: Revenue},
		{Role: "default expense", Code: w.DefaultExpense, Type: Expense},
	}
}
