package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceKind identifies the business transaction a posting comes from.
type SourceKind string

const (
	CashIncome  SourceKind = "CASH_INCOME"
	CashExpense SourceKind = "CASH_EXPENSE"
	Receivable  SourceKind = "RECEIVABLE" // credit sale
	Debt        SourceKind = "DEBT"       // credit purchase
)

// IsValid reports whether k is a known source kind.
func (k SourceKind) IsValid() bool {
	switch k {
	case CashIncome, CashExpense, Receivable, Debt:
		return true
	}
	return false
}

// Category is the user-facing income/expense category of a source record.
// AccountCode is empty when the category has no account mapping.
type Category struct {
	Name        string `json:"name" yaml:"name"`
	AccountCode string `json:"accountCode,omitempty" yaml:"account_code,omitempty"`
}

// SourceTransaction is one raw business record handed to the posting translator.
type SourceTransaction struct {
	SourceID    string          `json:"sourceID" yaml:"source_id"`
	Kind        SourceKind      `json:"kind" yaml:"kind"`
	Date        time.Time       `json:"date" yaml:"date"`
	Description string          `json:"description" yaml:"description"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	PaidAmount  decimal.Decimal `json:"paidAmount" yaml:"paid_amount"` // receivable/debt only
	PaidDate    *time.Time      `json:"paidDate,omitempty" yaml:"paid_date,omitempty"`
	Category    *Category       `json:"category,omitempty" yaml:"category,omitempty"`
}

// PostingResult is the outcome of posting one source record.
type PostingResult struct {
	SourceID string    `json:"sourceID"`
	Journals []Journal `json:"journals,omitempty"`
	Err      error     `json:"-"`
}
