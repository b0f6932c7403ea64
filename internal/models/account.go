package models

// Account is the accounts table row.
type Account struct {
	Code        string `db:"code"`
	Name        string `db:"name"`
	AccountType string `db:"account_type"`
}
