package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/smb_ledger/internal/apperrors"
	"github.com/SscSPs/smb_ledger/internal/core/domain"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// newTable right-aligns the columns listed in numeric.
func newTable(headers []string, numeric ...int) *table.Table {
	right := make(map[int]bool, len(numeric))
	for _, c := range numeric {
		right[c] = true
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case right[col]:
				return numberStyle
			}
			return cellStyle
		})
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func balancedLabel(ok bool) string {
	if ok {
		return okStyle.Render("balanced")
	}
	return warnStyle.Render("NOT BALANCED")
}

func renderLedger(w io.Writer, report *domain.LedgerReport) {
	fmt.Fprintln(w, titleStyle.Render("GENERAL LEDGER"), periodLabel(report.Range))
	fmt.Fprintf(w, "sorted by %s %s\n", report.SortField, report.SortOrder)
	if len(report.Accounts) == 0 {
		fmt.Fprintln(w, "(no accounts)")
		return
	}
	for _, section := range report.Accounts {
		fmt.Fprintln(w)
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s %s", section.Account.Code, section.Account.Name)), string(section.Account.Type))
		t := newTable([]string{"Date", "Description", "Debit", "Credit", "Balance"}, 2, 3, 4)
		for _, row := range section.Rows {
			debit, credit := "", ""
			if row.Side == domain.Debit {
				debit = money(row.Amount)
			} else {
				credit = money(row.Amount)
			}
			t.Row(row.Date.Format(domain.DateLayout), row.Description, debit, credit, money(row.RunningBalance))
		}
		t.Row("", "Total", money(section.DebitTotal), money(section.CreditTotal), money(section.EndingBalance))
		fmt.Fprintln(w, t.Render())
	}
}

func renderTrialBalance(w io.Writer, report *domain.TrialBalanceReport) {
	fmt.Fprintln(w, titleStyle.Render("TRIAL BALANCE"), periodLabel(report.Range))
	t := newTable([]string{"Code", "Account", "Type", "Debit", "Credit", "Balance"}, 3, 4, 5)
	for _, row := range report.Rows {
		t.Row(row.Account.Code, row.Account.Name, string(row.Account.Type), money(row.DebitTotal), money(row.CreditTotal), money(row.EndingBalance))
	}
	t.Row("", "Total", "", money(report.TotalDebit), money(report.TotalCredit), "")
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, balancedLabel(report.Balanced))
}

func amountsTable(w io.Writer, heading string, rows []domain.AccountAmount, total decimal.Decimal) {
	t := newTable([]string{"Code", heading, "Amount"}, 2)
	for _, a := range rows {
		t.Row(a.Account.Code, a.Account.Name, money(a.Balance))
	}
	t.Row("", "Total "+heading, money(total))
	fmt.Fprintln(w, t.Render())
}

func renderIncomeStatement(w io.Writer, report *domain.IncomeStatement) {
	fmt.Fprintln(w, titleStyle.Render("INCOME STATEMENT"), periodLabel(report.Range))
	amountsTable(w, "Revenue", report.Revenue, report.TotalIncome)
	amountsTable(w, "Expenses", report.Expenses, report.TotalExpense)
	fmt.Fprintf(w, "Net income: %s\n", money(report.Net))
}

func renderBalanceSheet(w io.Writer, report *domain.BalanceSheet) {
	fmt.Fprintln(w, titleStyle.Render("BALANCE SHEET"), periodLabel(report.Range))
	amountsTable(w, "Assets", report.Assets, report.TotalAssets)
	amountsTable(w, "Liabilities", report.Liabilities, report.TotalLiabilities)
	amountsTable(w, "Equity", report.Equity, report.TotalEquity)
	fmt.Fprintf(w, "Check A - (L + E): %s\n", money(report.Check))
	fmt.Fprintf(w, "Unclosed net income: %s\n", money(report.NetIncome))
	fmt.Fprintln(w, balancedLabel(report.Balanced))
}

func renderPostingResults(w io.Writer, results []domain.PostingResult) {
	if len(results) == 0 {
		return
	}
	t := newTable([]string{"Source", "Status", "Journals", "Detail"}, 2)
	for _, r := range results {
		status, detail := "posted", ""
		switch {
		case r.Err == nil:
		case errors.Is(r.Err, apperrors.ErrDuplicate):
			status, detail = "duplicate", r.Err.Error()
		default:
			status, detail = "failed", r.Err.Error()
		}
		t.Row(r.SourceID, status, fmt.Sprint(len(r.Journals)), detail)
	}
	fmt.Fprintln(w, t.Render())
}
