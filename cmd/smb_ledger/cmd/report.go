package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/SscSPs/smb_ledger/internal/core/domain"
	"github.com/SscSPs/smb_ledger/internal/dto"
	"github.com/SscSPs/smb_ledger/internal/platform/app"
)

var (
	reportOwner   string
	reportStart   string
	reportEnd     string
	reportAccount string
	reportSort    string
	reportOrder   string
	reportFormat  string
)

var reportCmd = &cobra.Command{
	Use:       "report <ledger|trial-balance|income-statement|balance-sheet>",
	Short:     "Print a financial report",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"ledger", "trial-balance", "income-statement", "balance-sheet"},
	RunE:      runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportOwner, "owner", "", "owner id to report on (required)")
	reportCmd.Flags().StringVar(&reportStart, "start", "", "start date YYYY-MM-DD, inclusive")
	reportCmd.Flags().StringVar(&reportEnd, "end", "", "end date YYYY-MM-DD, inclusive")
	reportCmd.Flags().StringVar(&reportAccount, "account", "", "ledger only: restrict to one account code")
	reportCmd.Flags().StringVar(&reportSort, "sort", "date", "ledger only: date, description, side or amount")
	reportCmd.Flags().StringVar(&reportOrder, "order", "asc", "ledger only: asc or desc")
	reportCmd.Flags().StringVarP(&reportFormat, "output", "o", "table", "table or json")
	_ = reportCmd.MarkFlagRequired("owner")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	a, err := app.Bootstrap(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	query := dto.LedgerQueryParams{
		ReportQuery: dto.ReportQuery{StartDate: reportStart, EndDate: reportEnd},
		AccountCode: reportAccount,
		SortField:   reportSort,
		SortOrder:   reportOrder,
	}
	dateRange := query.DateRange(logger)
	reporting := a.Services.Reporting
	out := cmd.OutOrStdout()

	var payload any
	var render func(io.Writer)
	start := time.Now()

	switch args[0] {
	case "ledger":
		report, err := reporting.GeneralLedger(ctx, reportOwner, query.ToDomain(logger))
		if err != nil {
			return err
		}
		payload, render = dto.ToLedgerResponse(report), func(w io.Writer) { renderLedger(w, report) }
	case "trial-balance":
		report, err := reporting.TrialBalance(ctx, reportOwner, dateRange)
		if err != nil {
			return err
		}
		payload, render = dto.ToTrialBalanceResponse(report), func(w io.Writer) { renderTrialBalance(w, report) }
	case "income-statement":
		report, err := reporting.IncomeStatement(ctx, reportOwner, dateRange)
		if err != nil {
			return err
		}
		payload, render = dto.ToIncomeStatementResponse(report), func(w io.Writer) { renderIncomeStatement(w, report) }
	case "balance-sheet":
		report, err := reporting.BalanceSheet(ctx, reportOwner, dateRange)
		if err != nil {
			return err
		}
		payload, render = dto.ToBalanceSheetResponse(report), func(w io.Writer) { renderBalanceSheet(w, report) }
	default:
		return fmt.Errorf("unknown report %q", args[0])
	}
	logger.Debug("Report built", "report", args[0], "elapsed", time.Since(start))

	switch reportFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "table":
		render(out)
		return nil
	}
	return fmt.Errorf("unknown output format %q", reportFormat)
}

func periodLabel(r domain.DateRange) string {
	start, end := "beginning", "today"
	if r.Start != nil {
		start = r.Start.Format(domain.DateLayout)
	}
	if r.End != nil {
		end = r.End.Format(domain.DateLayout)
	}
	return start + " to " + end
}
