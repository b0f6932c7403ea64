package cmd

import (
	"github.com/spf13/cobra"

	"github.com/SscSPs/smb_ledger/internal/platform/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations for the configured storage driver",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Migrate(commandContext(cmd), cfg, logger)
	},
}
