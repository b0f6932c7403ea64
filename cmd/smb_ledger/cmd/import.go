package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/SscSPs/smb_ledger/internal/apperrors"
	"github.com/SscSPs/smb_ledger/internal/core/domain"
	"github.com/SscSPs/smb_ledger/internal/platform/app"
)

var (
	importOwner string
	importFile  string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Post journals and source records from a YAML file",
	Long: `Post manual journals (opening balances, closing entries) and business
source records from a YAML file. Journals are posted first, then every record
independently; a failed record does not stop the rest.

File format:
  journals:
    - date: 2024-01-01
      description: Owner capital
      source_ref: opening
      entries:
        - {account_code: "1101", side: DEBIT, amount: 10000}
        - {account_code: "3101", side: CREDIT, amount: 10000}
  records:
    - source_id: inv-1
      kind: RECEIVABLE
      date: 2024-03-01
      amount: 500
      paid_amount: 200
      paid_date: 2024-03-10`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importOwner, "owner", "", "owner id the journals belong to (required)")
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "YAML file to import (required)")
	_ = importCmd.MarkFlagRequired("owner")
	_ = importCmd.MarkFlagRequired("file")
}

type importDocument struct {
	Journals []importJournal            `yaml:"journals"`
	Records  []domain.SourceTransaction `yaml:"records"`
}

type importJournal struct {
	Date        time.Time     `yaml:"date"`
	Description string        `yaml:"description"`
	SourceRef   string        `yaml:"source_ref"`
	Entries     []importEntry `yaml:"entries"`
}

type importEntry struct {
	AccountCode string          `yaml:"account_code"`
	Side        string          `yaml:"side"`
	Amount      decimal.Decimal `yaml:"amount"`
}

func (j importJournal) toDraft() domain.Journal {
	draft := domain.Journal{
		JournalDate: j.Date,
		Description: j.Description,
		SourceRef:   j.SourceRef,
		Entries:     make([]domain.JournalEntry, len(j.Entries)),
	}
	for i, e := range j.Entries {
		draft.Entries[i] = domain.JournalEntry{
			AccountCode: e.AccountCode,
			Side:        domain.Side(strings.ToUpper(strings.TrimSpace(e.Side))),
			Amount:      e.Amount,
		}
	}
	return draft
}

func parseImport(r io.Reader) (*importDocument, error) {
	var doc importDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("decode import file: %w", err)
	}
	for i := range doc.Records {
		doc.Records[i].Kind = domain.SourceKind(strings.ToUpper(strings.TrimSpace(string(doc.Records[i].Kind))))
	}
	return &doc, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	f, err := os.Open(importFile)
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	doc, err := parseImport(f)
	if err != nil {
		return err
	}

	a, err := app.Bootstrap(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	failed := 0

	for _, j := range doc.Journals {
		journal, err := a.Services.Posting.PostJournal(ctx, importOwner, j.toDraft())
		switch {
		case err == nil:
			fmt.Fprintf(out, "journal %-30s posted %s\n", j.Description, journal.JournalID)
		case errors.Is(err, apperrors.ErrDuplicate):
			fmt.Fprintf(out, "journal %-30s skipped (already posted)\n", j.Description)
		default:
			failed++
			fmt.Fprintf(out, "journal %-30s FAILED: %v\n", j.Description, err)
		}
	}

	results := a.Services.Posting.PostBatch(ctx, importOwner, doc.Records)
	renderPostingResults(out, results)
	for _, r := range results {
		if r.Err != nil && !errors.Is(r.Err, apperrors.ErrDuplicate) {
			failed++
		}
	}

	logger.Info("Import finished",
		slog.String("owner", importOwner),
		slog.Int("journals", len(doc.Journals)),
		slog.Int("records", len(doc.Records)),
		slog.Int("failed", failed))
	if failed > 0 {
		return fmt.Errorf("%d item(s) failed to import", failed)
	}
	return nil
}
