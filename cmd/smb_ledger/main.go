// Package main is the entry point for the smb_ledger service and CLI.
package main

import (
	"os"

	"github.com/SscSPs/smb_ledger/cmd/smb_ledger/cmd"
)

// @title SMB Ledger API
// @version 1.0
// @description Double-entry ledger and financial reports for small businesses.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
