package dto

import "github.com/SscSPs/smb_ledger/internal/core/domain"

// ListAccountsParams filters the chart listing. An empty Type lists every account.
type ListAccountsParams struct {
	Type string `form:"type"`
}

// AccountResponse is one chart of accounts row.
type AccountResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// ListAccountsResponse wraps the chart listing.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain account to its API shape.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		Code: acc.Code,
		Name: acc.Name,
		Type: string(acc.Type),
	}
}

// ToListAccountsResponse converts a slice of accounts.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	resp := ListAccountsResponse{Accounts: make([]AccountResponse, len(accounts))}
	for i := range accounts {
		resp.Accounts[i] = ToAccountResponse(&accounts[i])
	}
	return resp
}
