package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/SscSPs/smb_ledger/internal/core/domain"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     string

	StorageDriver string
	DatabaseURL   string
	SQLitePath    string
	RunMigrations bool

	JWTSecret string

	// ChartFile is a YAML chart of accounts; empty means the embedded default chart.
	ChartFile string

	RateLimit          string
	CORSAllowedOrigins []string

	CashAccountCode           string
	ReceivableAccountCode     string
	PayableAccountCode        string
	DefaultRevenueAccountCode string
	DefaultExpenseAccountCode string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_DRIVER", StorageMemory)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "smb_ledger.db")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("CHART_FILE", "")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CASH_ACCOUNT_CODE", domain.CashAccountCode)
	v.SetDefault("RECEIVABLE_ACCOUNT_CODE", domain.ReceivableAccountCode)
	v.SetDefault("PAYABLE_ACCOUNT_CODE", domain.PayableAccountCode)
	v.SetDefault("DEFAULT_REVENUE_ACCOUNT_CODE", domain.DefaultRevenueAccountCode)
	v.SetDefault("DEFAULT_EXPENSE_ACCOUNT_CODE", domain.DefaultExpenseAccountCode)
	v.AutomaticEnv()

	cfg := &Config{
		Port:                      v.GetString("PORT"),
		IsProduction:              v.GetBool("IS_PRODUCTION"),
		LogLevel:                  strings.ToLower(v.GetString("LOG_LEVEL")),
		StorageDriver:             strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		DatabaseURL:               v.GetString("PGSQL_URL"),
		SQLitePath:                v.GetString("SQLITE_PATH"),
		RunMigrations:             v.GetBool("RUN_MIGRATIONS"),
		JWTSecret:                 v.GetString("JWT_SECRET"),
		ChartFile:                 v.GetString("CHART_FILE"),
		RateLimit:                 v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins:        splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		CashAccountCode:           v.GetString("CASH_ACCOUNT_CODE"),
		ReceivableAccountCode:     v.GetString("RECEIVABLE_ACCOUNT_CODE"),
		PayableAccountCode:        v.GetString("PAYABLE_ACCOUNT_CODE"),
		DefaultRevenueAccountCode: v.GetString("DEFAULT_REVENUE_ACCOUNT_CODE"),
		DefaultExpenseAccountCode: v.GetString("DEFAULT_EXPENSE_ACCOUNT_CODE"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
		}
	case StorageSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH is required when STORAGE_DRIVER=%s", StorageSQLite)
		}
	case StorageMemory:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	return cfg, nil
}

// WellKnown returns the well-known account codes, with any configured overrides applied.
func (c *Config) WellKnown() domain.WellKnownAccounts {
	return domain.WellKnownAccounts{
		Cash:           c.CashAccountCode,
		Receivable:     c.ReceivableAccountCode,
		Payable:        c.PayableAccountCode,
		DefaultRevenue: c.DefaultRevenueAccountCode,
		DefaultExpense: c.DefaultExpenseAccountCode,
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
