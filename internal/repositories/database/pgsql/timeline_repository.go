package pgsql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/temple-trust/temple_finance_app/internal/apperrors"
	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	portsrepo "github.com/temple-trust/temple_finance_app/internal/core/ports/repositories"
	"github.com/temple-trust/temple_finance_app/internal/models"
	"github.com/temple-trust/temple_finance_app/internal/utils/mapping"
)

type PgxTimelineRepository struct {
	BaseRepository
}

// newPgxTimelineRepository creates a new repository for timeline data.
func newPgxTimelineRepository(pool *pgxpool.Pool) portsrepo.TimelineRepositoryFacade {
	return &PgxTimelineRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TimelineRepositoryFacade = (*PgxTimelineRepository)(nil)

const timelineColumns = `event_id, event_type, entity_table, entity_id, created_at`

// insertTimelineEventTx appends a timeline event inside a lifecycle
// transaction. Shared by the donation, expense and budget-request repositories.
func insertTimelineEventTx(ctx context.Context, tx pgx.Tx, event domain.TimelineEvent) error {
	query := `
		INSERT INTO timeline_events (` + timelineColumns + `)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := tx.Exec(ctx, query,
		event.EventID, string(event.EventType), event.EntityTable, event.EntityID, event.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert timeline event", err)
	}
	return nil
}

// ListRecentEvents retrieves the most recent timeline events, newest first.
func (r *PgxTimelineRepository) ListRecentEvents(ctx context.Context, limit int) ([]domain.TimelineEvent, error) {
	query := `SELECT ` + timelineColumns + ` FROM timeline_events ORDER BY created_at DESC LIMIT $1;`
	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list timeline events: %w", err)
	}
	defer rows.Close()

	var modelEvents []models.TimelineEvent
	for rows.Next() {
		var m models.TimelineEvent
		if err := rows.Scan(&m.EventID, &m.EventType, &m.EntityTable, &m.EntityID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan timeline row: %w", err)
		}
		modelEvents = append(modelEvents, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate timeline rows: %w", err)
	}
	return mapping.ToDomainTimelineEventSlice(modelEvents), nil
}

// SaveEvent appends a timeline event outside any lifecycle transaction.
// Used only by the sweep when repairing a detected gap.
func (r *PgxTimelineRepository) SaveEvent(ctx context.Context, event domain.TimelineEvent) error {
	query := `
		INSERT INTO timeline_events (` + timelineColumns + `)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query,
		event.EventID, string(event.EventType), event.EntityTable, event.EntityID, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save timeline event %s: %w", event.EventID, err)
	}
	return nil
}

// missingEventsQuery reconstructs one event per missing timeline entry for
// every transition a row's current state implies. Paid expenses passed through
// approved first, so they are checked for both events. Timestamps come from
// the row's own decision columns so repaired events sort where the transition
// actually happened.
const missingEventsQuery = `
	SELECT 'expense_' || e.status AS event_type, 'expenses' AS entity_table, e.expense_id AS entity_id,
	       e.last_updated_at AS created_at
	FROM expenses e
	WHERE e.status IN ('approved', 'rejected', 'paid')
	  AND NOT EXISTS (
	      SELECT 1 FROM timeline_events t
	      WHERE t.entity_id = e.expense_id AND t.event_type = 'expense_' || e.status
	  )
	UNION ALL
	SELECT 'expense_approved', 'expenses', e.expense_id, COALESCE(e.approval_date, e.last_updated_at)
	FROM expenses e
	WHERE e.status = 'paid'
	  AND NOT EXISTS (
	      SELECT 1 FROM timeline_events t
	      WHERE t.entity_id = e.expense_id AND t.event_type = 'expense_approved'
	  )
	UNION ALL
	SELECT 'budget_request_' || b.status, 'budget_requests', b.request_id, COALESCE(b.decided_at, b.last_updated_at)
	FROM budget_requests b
	WHERE b.status IN ('approved', 'rejected')
	  AND NOT EXISTS (
	      SELECT 1 FROM timeline_events t
	      WHERE t.entity_id = b.request_id AND t.event_type = 'budget_request_' || b.status
	  )
	UNION ALL
	SELECT 'donation_' || CASE d.recon_status WHEN 'matched' THEN 'matched' ELSE 'exception' END,
	       'donations', d.donation_id, d.last_updated_at
	FROM donations d
	WHERE d.recon_status IN ('matched', 'exception')
	  AND NOT EXISTS (
	      SELECT 1 FROM timeline_events t
	      WHERE t.entity_id = d.donation_id
	        AND t.event_type = 'donation_' || CASE d.recon_status WHEN 'matched' THEN 'matched' ELSE 'exception' END
	  );
`

// FindMissingLifecycleEvents returns one reconstructed event per gap, with a
// fresh event ID so SaveEvent can append it directly.
func (r *PgxTimelineRepository) FindMissingLifecycleEvents(ctx context.Context) ([]domain.TimelineEvent, error) {
	rows, err := r.Pool.Query(ctx, missingEventsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to find missing timeline events: %w", err)
	}
	defer rows.Close()

	var events []domain.TimelineEvent
	for rows.Next() {
		var event domain.TimelineEvent
		var eventType string
		if err := rows.Scan(&eventType, &event.EntityTable, &event.EntityID, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan missing event row: %w", err)
		}
		event.EventID = uuid.NewString()
		event.EventType = domain.TimelineEventType(eventType)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate missing event rows: %w", err)
	}
	return events, nil
}
