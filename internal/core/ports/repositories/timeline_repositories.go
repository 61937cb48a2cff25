package repositories

import (
	"context"

	"github.com/temple-trust/temple_finance_app/internal/core/domain"
)

// TimelineReader defines read operations for the audit timeline
type TimelineReader interface {
	// ListRecentEvents retrieves the most recent timeline events, newest first.
	ListRecentEvents(ctx context.Context, limit int) ([]domain.TimelineEvent, error)
}

// TimelineWriter defines write operations for the audit timeline
type TimelineWriter interface {
	// SaveEvent appends a timeline event outside any lifecycle transaction.
	// Used only by the sweep when repairing a detected gap.
	SaveEvent(ctx context.Context, event domain.TimelineEvent) error
}

// TimelineSweeper detects lifecycle transitions that are missing their audit
// timeline event (a partial commit left by an older code path or manual fix).
type TimelineSweeper interface {
	// FindMissingLifecycleEvents returns one reconstructed event for every
	// decided/reconciled row that has no matching timeline entry.
	FindMissingLifecycleEvents(ctx context.Context) ([]domain.TimelineEvent, error)
}

// TimelineRepositoryFacade combines all timeline repository interfaces
type TimelineRepositoryFacade interface {
	TimelineReader
	TimelineWriter
	TimelineSweeper
}
