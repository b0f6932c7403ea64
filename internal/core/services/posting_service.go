package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/smb_ledger/internal/apperrors"
	"github.com/SscSPs/smb_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/smb_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/smb_ledger/internal/core/ports/services"
	"github.com/SscSPs/smb_ledger/internal/utils/accounting"
)

const (
	defaultJournalPageSize = 20
	maxJournalPageSize     = 100
)

// Posting outcomes reported to the PostingRecorder.
const (
	PostingResultPosted    = "posted"
	PostingResultRejected  = "rejected"
	PostingResultDuplicate = "duplicate"
	PostingResultFailed    = "failed"
)

// PostingRecorder receives one observation per posted source record.
type PostingRecorder interface {
	ObservePosting(kind, result string)
}

// postingService translates source records into journals and stores them.
type postingService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	chart       portssvc.ChartOfAccountsSvc
	wellKnown   domain.WellKnownAccounts
	recorder    PostingRecorder
	now         func() time.Time
}

// PostingServiceOption is a functional option for configuring the posting service
type PostingServiceOption func(*postingService)

// WithWellKnownAccounts overrides the built-in well-known account codes.
func WithWellKnownAccounts(wk domain.WellKnownAccounts) PostingServiceOption {
	return func(s *postingService) {
		s.wellKnown = wk
	}
}

// WithPostingRecorder sets the metrics sink for posting outcomes.
func WithPostingRecorder(r PostingRecorder) PostingServiceOption {
	return func(s *postingService) {
		s.recorder = r
	}
}

// WithClock replaces time.Now for CreatedAt stamps.
func WithClock(now func() time.Time) PostingServiceOption {
	return func(s *postingService) {
		s.now = now
	}
}

// NewPostingService creates a new posting service with the provided options
func NewPostingService(journalRepo portsrepo.JournalRepositoryFacade, chart portssvc.ChartOfAccountsSvc, options ...PostingServiceOption) portssvc.PostingSvcFacade {
	svc := &postingService{
		journalRepo: journalRepo,
		chart:       chart,
		wellKnown:   domain.DefaultWellKnownAccounts(),
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// ResolveAccount picks the category's mapped account, or fallback when the
// category is absent or unmapped.
func ResolveAccount(category *domain.Category, fallback string) string {
	if category != nil && category.AccountCode != "" {
		return category.AccountCode
	}
	return fallback
}

func (s *postingService) Post(ctx context.Context, ownerID string, src domain.SourceTransaction) ([]domain.Journal, error) {
	journals, err := s.translate(ctx, ownerID, src)
	if err != nil {
		s.observe(src.Kind, PostingResultRejected)
		s.LogWarn(ctx, "Source record rejected",
			slog.String("source_id", src.SourceID),
			slog.String("kind", string(src.Kind)),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.journalRepo.SaveJournals(ctx, journals); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.observe(src.Kind, PostingResultDuplicate)
			return nil, fmt.Errorf("source record %s already posted: %w", src.SourceID, err)
		}
		s.observe(src.Kind, PostingResultFailed)
		s.LogError(ctx, err, "Failed to save journals",
			slog.String("source_id", src.SourceID),
			slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to save journals for source %s: %w", src.SourceID, err)
	}

	s.observe(src.Kind, PostingResultPosted)
	s.LogInfo(ctx, "Source record posted",
		slog.String("source_id", src.SourceID),
		slog.String("kind", string(src.Kind)),
		slog.Int("journal_count", len(journals)))
	return journals, nil
}

func (s *postingService) PostBatch(ctx context.Context, ownerID string, srcs []domain.SourceTransaction) []domain.PostingResult {
	results := make([]domain.PostingResult, 0, len(srcs))
	for _, src := range srcs {
		journals, err := s.Post(ctx, ownerID, src)
		results = append(results, domain.PostingResult{SourceID: src.SourceID, Journals: journals, Err: err})
	}
	return results
}

func (s *postingService) PostJournal(ctx context.Context, ownerID string, draft domain.Journal) (*domain.Journal, error) {
	if ownerID == "" {
		return nil, apperrors.NewValidationError("owner_id", "is required")
	}
	if draft.JournalDate.IsZero() {
		return nil, apperrors.NewValidationError("journal_date", "is required")
	}
	if draft.Description == "" {
		return nil, apperrors.NewValidationError("description", "is required")
	}

	for _, e := range draft.Entries {
		if _, err := s.chart.LookupByCode(ctx, e.AccountCode); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError("account_code", "unknown account "+e.AccountCode)
			}
			return nil, err
		}
	}

	journal := s.newJournal(ownerID, draft.JournalDate, draft.Description, draft.SourceRef, draft.SourceSeq)
	if journal.SourceRef != "" && journal.SourceSeq == 0 {
		journal.SourceSeq = 1
	}
	for _, e := range draft.Entries {
		journal.Entries = append(journal.Entries, domain.JournalEntry{
			EntryID:     uuid.NewString(),
			JournalID:   journal.JournalID,
			AccountCode: e.AccountCode,
			Side:        e.Side,
			Amount:      e.Amount,
		})
	}

	if err := accounting.ValidateJournalBalance(journal); err != nil {
		s.LogWarn(ctx, "Manual journal rejected", slog.String("owner_id", ownerID), slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.journalRepo.SaveJournals(ctx, []domain.Journal{journal}); err != nil {
		s.LogError(ctx, err, "Failed to save manual journal", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}

	s.LogInfo(ctx, "Manual journal posted", slog.String("journal_id", journal.JournalID), slog.String("owner_id", ownerID))
	return &journal, nil
}

func (s *postingService) GetJournal(ctx context.Context, ownerID, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, ownerID, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get journal", slog.String("journal_id", journalID))
		}
		return nil, err
	}
	return journal, nil
}

func (s *postingService) ListJournals(ctx context.Context, ownerID string, dateRange domain.DateRange, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = defaultJournalPageSize
	}
	if limit > maxJournalPageSize {
		limit = maxJournalPageSize
	}
	if dateRange.IsInverted() {
		return []domain.Journal{}, nil, nil
	}

	journals, next, err := s.journalRepo.ListJournals(ctx, ownerID, dateRange, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals", slog.String("owner_id", ownerID))
		return nil, nil, fmt.Errorf("failed to list journals: %w", err)
	}
	return journals, next, nil
}

// translate applies the posting rules for one source record. Every returned
// journal balances and references only accounts present in the chart.
func (s *postingService) translate(ctx context.Context, ownerID string, src domain.SourceTransaction) ([]domain.Journal, error) {
	if err := validateSource(ownerID, src); err != nil {
		return nil, err
	}

	wk := s.wellKnown
	ref := string(src.Kind) + ":" + src.SourceID
	date := domain.TruncateDate(src.Date)
	paidDate := date
	if src.PaidDate != nil {
		paidDate = domain.TruncateDate(*src.PaidDate)
	}

	type leg struct {
		role, debit, creditRole, credit string
		debitType, creditType           domain.AccountType
	}

	var main leg
	var payment *leg
	switch src.Kind {
	case domain.CashIncome:
		main = leg{"cash", wk.Cash, categoryRole(src.Category, "default revenue"), ResolveAccount(src.Category, wk.DefaultRevenue), domain.Asset, domain.Revenue}
	case domain.CashExpense:
		main = leg{categoryRole(src.Category, "default expense"), ResolveAccount(src.Category, wk.DefaultExpense), "cash", wk.Cash, domain.Expense, domain.Asset}
	case domain.Receivable:
		main = leg{"receivable", wk.Receivable, "default revenue", wk.DefaultRevenue, domain.Asset, domain.Revenue}
		payment = &leg{"cash", wk.Cash, "receivable", wk.Receivable, domain.Asset, domain.Asset}
	case domain.Debt:
		main = leg{"default expense", wk.DefaultExpense, "payable", wk.Payable, domain.Expense, domain.Liability}
		payment = &leg{"payable", wk.Payable, "cash", wk.Cash, domain.Liability, domain.Asset}
	}

	legs := []leg{main}
	if payment != nil && src.PaidAmount.IsPositive() {
		legs = append(legs, *payment)
	}
	for _, l := range legs {
		if err := s.requireAccount(ctx, l.role, l.debit, l.debitType); err != nil {
			return nil, err
		}
		if err := s.requireAccount(ctx, l.creditRole, l.credit, l.creditType); err != nil {
			return nil, err
		}
	}

	journals := []domain.Journal{
		s.twoLegJournal(ownerID, date, src.Description, ref, 1, main.debit, main.credit, src.Amount),
	}
	if len(legs) == 2 {
		journals = append(journals,
			s.twoLegJournal(ownerID, paidDate, src.Description+" (payment)", ref, 2, payment.debit, payment.credit, src.PaidAmount))
	}

	for _, j := range journals {
		if err := accounting.ValidateJournalBalance(j); err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrInternal, err)
		}
	}
	return journals, nil
}

// requireAccount resolves code in the chart and checks it has the type the
// role posts to.
func (s *postingService) requireAccount(ctx context.Context, role, code string, want domain.AccountType) error {
	if code == "" {
		return &apperrors.ConfigurationError{Role: role, Code: code}
	}
	acc, err := s.chart.LookupByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &apperrors.ConfigurationError{Role: role, Code: code}
		}
		return err
	}
	if acc.Type != want {
		return &apperrors.ConfigurationError{
			Role:   role,
			Code:   code,
			Reason: fmt.Sprintf("is %s, want %s", acc.Type, want),
		}
	}
	return nil
}

func (s *postingService) newJournal(ownerID string, date time.Time, description, sourceRef string, sourceSeq int) domain.Journal {
	return domain.Journal{
		JournalID:   uuid.NewString(),
		OwnerID:     ownerID,
		JournalDate: domain.TruncateDate(date),
		Description: description,
		SourceRef:   sourceRef,
		SourceSeq:   sourceSeq,
		CreatedAt:   s.now().UTC(),
	}
}

func (s *postingService) twoLegJournal(ownerID string, date time.Time, description, sourceRef string, sourceSeq int, debitCode, creditCode string, amount decimal.Decimal) domain.Journal {
	j := s.newJournal(ownerID, date, description, sourceRef, sourceSeq)
	j.Entries = []domain.JournalEntry{
		{EntryID: uuid.NewString(), JournalID: j.JournalID, AccountCode: debitCode, Side: domain.Debit, Amount: amount},
		{EntryID: uuid.NewString(), JournalID: j.JournalID, AccountCode: creditCode, Side: domain.Credit, Amount: amount},
	}
	return j
}

func (s *postingService) observe(kind domain.SourceKind, result string) {
	if s.recorder != nil {
		s.recorder.ObservePosting(string(kind), result)
	}
}

func categoryRole(category *domain.Category, fallbackRole string) string {
	if category != nil && category.AccountCode != "" {
		return "category " + category.Name
	}
	return fallbackRole
}

func validateSource(ownerID string, src domain.SourceTransaction) error {
	switch {
	case ownerID == "":
		return apperrors.NewValidationError("owner_id", "is required")
	case src.SourceID == "":
		return apperrors.NewValidationError("source_id", "is required")
	case !src.Kind.IsValid():
		return apperrors.NewValidationError("kind", fmt.Sprintf("unknown source kind %q", src.Kind))
	case src.Date.IsZero():
		return apperrors.NewValidationError("date", "is required")
	case !src.Amount.IsPositive():
		return apperrors.NewValidationError("amount", "must be positive")
	case src.PaidAmount.IsNegative():
		return apperrors.NewValidationError("paid_amount", "must not be negative")
	case !accounting.WithinScale(src.Amount):
		return apperrors.NewValidationError("amount", "must have at most 4 decimal places")
	case !accounting.WithinScale(src.PaidAmount):
		return apperrors.NewValidationError("paid_amount", "must have at most 4 decimal places")
	}
	if src.Kind == domain.Receivable || src.Kind == domain.Debt {
		if src.PaidAmount.GreaterThan(src.Amount) {
			return apperrors.NewValidationError("paid_amount", "must not exceed amount")
		}
	}
	return nil
}
