// Package chart reads chart-of-accounts seed files.
package chart

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SscSPs/smb_ledger/internal/apperrors"
	"github.com/SscSPs/smb_ledger/internal/core/domain"
)

//go:embed default_chart.yaml
var defaultChart []byte

type file struct {
	Accounts []entry `yaml:"accounts"`
}

type entry struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Default returns the embedded chart of accounts.
func Default() ([]domain.Account, error) {
	return decode(defaultChart)
}

// Load reads a chart from path, or the embedded default when path is empty.
func Load(path string) ([]domain.Account, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open chart file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a YAML chart document.
func Parse(r io.Reader) ([]domain.Account, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read chart: %w", err)
	}
	return decode(raw)
}

func decode(raw []byte) ([]domain.Account, error) {
	var doc file
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	if len(doc.Accounts) == 0 {
		return nil, apperrors.NewValidationError("accounts", "must list at least one account")
	}

	accounts := make([]domain.Account, 0, len(doc.Accounts))
	for i, e := range doc.Accounts {
		t, err := domain.ParseAccountType(e.Type)
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("accounts[%d].type", i), err.Error())
		}
		if e.Code == "" {
			return nil, apperrors.NewValidationError(fmt.Sprintf("accounts[%d].code", i), "is required")
		}
		accounts = append(accounts, domain.Account{Code: e.Code, Name: e.Name, Type: t})
	}
	return accounts, nil
}
