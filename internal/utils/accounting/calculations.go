package accounting

import (
	"github.com/SscSPs/smb_ledger/internal/apperrors"
	"github.com/SscSPs/smb_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal places every stored amount carries.
// The postgres schema pins the same scale on journal_entries.amount.
const AmountScale int32 = 4

// WithinScale reports whether amount is exact at AmountScale decimal places.
// Trailing zeros beyond the scale are fine.
func WithinScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(AmountScale))
}

// EndingBalance applies the normal-balance convention of the account type.
// Debit-normal accounts (ASSET, EXPENSE) report debits minus credits; all
// other types report credits minus debits.
func EndingBalance(accountType domain.AccountType, debitTotal, creditTotal decimal.Decimal) decimal.Decimal {
	if accountType.IsDebitNormal() {
		return debitTotal.Sub(creditTotal)
	}
	return creditTotal.Sub(debitTotal)
}

// RunningDelta is the raw fold step used for the running balance column:
// +amount for a debit, -amount for a credit, whatever the account type.
func RunningDelta(side domain.Side, amount decimal.Decimal) decimal.Decimal {
	if side == domain.Credit {
		return amount.Neg()
	}
	return amount
}

// SumSides totals the debit and credit legs of a set of entries.
func SumSides(entries []domain.JournalEntry) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, e := range entries {
		switch e.Side {
		case domain.Debit:
			debit = debit.Add(e.Amount)
		case domain.Credit:
			credit = credit.Add(e.Amount)
		}
	}
	return debit, credit
}

// ValidateJournalBalance checks that the journal has at least two legs, that
// every leg has a valid side and a positive amount of at most AmountScale
// decimal places, and that debits equal credits.
func ValidateJournalBalance(journal domain.Journal) error {
	if len(journal.Entries) < 2 {
		return apperrors.NewValidationError("entries", "journal must have at least two entries")
	}

	for _, e := range journal.Entries {
		if !e.Side.IsValid() {
			return apperrors.NewValidationError("side", "must be DEBIT or CREDIT, got "+string(e.Side))
		}
		if !e.Amount.IsPositive() {
			return apperrors.NewValidationError("amount", "must be positive for account "+e.AccountCode)
		}
		if !WithinScale(e.Amount) {
			return apperrors.NewValidationError("amount", "has more than 4 decimal places for account "+e.AccountCode)
		}
	}

	debit, credit := SumSides(journal.Entries)
	if !debit.Equal(credit) {
		return &apperrors.ImbalanceError{Journal: journal.Description, Debit: debit, Credit: credit}
	}
	return nil
}
