package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/smb_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/smb_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/smb_ledger/internal/core/ports/services"
)

// Observer bundles the metrics sinks the services report to.
type Observer interface {
	PostingRecorder
	ReportObserver
}

// NewServiceContainer loads the chart of accounts from storage, checks the
// well-known posting accounts against it and wires the services.
func NewServiceContainer(ctx context.Context, repos portsrepo.RepositoryProvider, wellKnown domain.WellKnownAccounts, observer Observer) (*portssvc.ServiceContainer, error) {
	chart, err := LoadChartService(ctx, repos.AccountRepo)
	if err != nil {
		return nil, err
	}
	if err := chart.RequireWellKnown(ctx, wellKnown); err != nil {
		return nil, fmt.Errorf("chart of accounts is missing a posting account: %w", err)
	}

	postingOpts := []PostingServiceOption{WithWellKnownAccounts(wellKnown)}
	reportingOpts := []ReportingServiceOption{}
	if observer != nil {
		postingOpts = append(postingOpts, WithPostingRecorder(observer))
		reportingOpts = append(reportingOpts, WithReportObserver(observer))
	}

	return &portssvc.ServiceContainer{
		Chart:     chart,
		Posting:   NewPostingService(repos.JournalRepo, chart, postingOpts...),
		Reporting: NewReportingService(repos.JournalRepo, chart, reportingOpts...),
	}, nil
}
