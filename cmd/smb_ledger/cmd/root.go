// Package cmd provides the smb_ledger commands.
package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SscSPs/smb_ledger/internal/middleware"
	"github.com/SscSPs/smb_ledger/internal/platform/app"
	"github.com/SscSPs/smb_ledger/internal/platform/config"
)

var (
	debug bool

	cfg    *config.Config
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "smb_ledger",
	Short: "Double-entry ledger and financial reports for small businesses",
	Long: `smb_ledger posts business records (cash income, cash expenses,
receivables and debts) into a double-entry ledger and derives the general
ledger, trial balance, income statement and balance sheet from it.

Configuration is read from the environment and an optional .env file.

Example:
  smb_ledger serve
  smb_ledger import --owner biz-1 --file records.yaml
  smb_ledger report trial-balance --owner biz-1 --start 2024-01-01 --end 2024-12-31`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if debug {
			level = "debug"
		}
		logger = app.NewLogger(os.Stderr, level)
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(reportCmd)
}

// commandContext carries the CLI logger so services log through it.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return middleware.WithLogger(ctx, logger)
}
