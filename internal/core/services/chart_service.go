package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/SscSPs/smb_ledger/internal/apperrors"
	"github.com/SscSPs/smb_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/smb_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/smb_ledger/internal/core/ports/services"
)

// chartService is an immutable, in-memory view of the chart of accounts.
type chartService struct {
	BaseService
	accounts []domain.Account // ordered by code
	byCode   map[string]domain.Account
}

var _ portssvc.ChartOfAccountsSvc = (*chartService)(nil)

// NewChartService builds the registry from a fixed account list. Duplicate
// codes and unknown account types are rejected.
func NewChartService(accounts []domain.Account) (portssvc.ChartOfAccountsSvc, error) {
	svc := &chartService{
		accounts: make([]domain.Account, 0, len(accounts)),
		byCode:   make(map[string]domain.Account, len(accounts)),
	}
	for _, acc := range accounts {
		if acc.Code == "" {
			return nil, apperrors.NewValidationError("code", "must not be empty")
		}
		if !acc.Type.IsValid() {
			return nil, apperrors.NewValidationError("type", fmt.Sprintf("unknown account type %q for account %s", acc.Type, acc.Code))
		}
		if _, dup := svc.byCode[acc.Code]; dup {
			return nil, fmt.Errorf("%w: account code %s appears twice", apperrors.ErrDuplicate, acc.Code)
		}
		svc.byCode[acc.Code] = acc
		svc.accounts = append(svc.accounts, acc)
	}
	slices.SortFunc(svc.accounts, func(a, b domain.Account) int {
		return cmp.Compare(a.Code, b.Code)
	})
	return svc, nil
}

// LoadChartService reads the whole chart from storage once.
func LoadChartService(ctx context.Context, repo portsrepo.AccountReader) (portssvc.ChartOfAccountsSvc, error) {
	accounts, err := repo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	return NewChartService(accounts)
}

func (s *chartService) LookupByCode(ctx context.Context, code string) (*domain.Account, error) {
	acc, ok := s.byCode[code]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, code)
	}
	return &acc, nil
}

func (s *chartService) ListByType(ctx context.Context, accountType domain.AccountType) []domain.Account {
	out := make([]domain.Account, 0)
	for _, acc := range s.accounts {
		if acc.Type == accountType {
			out = append(out, acc)
		}
	}
	return out
}

func (s *chartService) ListAll(ctx context.Context) []domain.Account {
	return slices.Clone(s.accounts)
}

func (s *chartService) RequireWellKnown(ctx context.Context, wk domain.WellKnownAccounts) error {
	for _, role := range wk.Roles() {
		acc, err := s.LookupByCode(ctx, role.Code)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return &apperrors.ConfigurationError{Role: role.Role, Code: role.Code}
			}
			return err
		}
		if acc.Type != role.Type {
			return &apperrors.ConfigurationError{
				Role:   role.Role,
				Code:   role.Code,
				Reason: fmt.Sprintf("is %s, want %s", acc.Type, role.Type),
			}
		}
	}
	return nil
}
