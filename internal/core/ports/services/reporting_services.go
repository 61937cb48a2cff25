package services

import (
	"context"
	"time"

	"github.com/temple-trust/temple_finance_app/internal/core/domain"
)

// ReportingSvcFacade computes time-bounded financial rollups.
// Generation is read-only; a report may observe a snapshot that concurrent
// writes have since moved past, which is accepted.
type ReportingSvcFacade interface {
	// Generate builds the full report for [from, to]. Rejected expenses never
	// contribute to expense totals.
	Generate(ctx context.Context, from, to time.Time) (*domain.FinanceReport, error)

	// GenerateQuick resolves a calendar preset relative to now and generates.
	GenerateQuick(ctx context.Context, preset domain.ReportPreset, now time.Time) (*domain.FinanceReport, error)

	// ExportCSV serialises a report into the fixed-section CSV contract.
	// Exporting the same report twice yields byte-identical output.
	ExportCSV(report *domain.FinanceReport) ([]byte, error)
}

// TimelineSvcFacade reads the audit activity feed.
type TimelineSvcFacade interface {
	// ListRecentEvents retrieves the most recent timeline events, newest first.
	ListRecentEvents(ctx context.Context, limit int) ([]domain.TimelineEvent, error)
}
