package services

import (
	"context"
	"log/slog"
	"time"

	portsrepo "github.com/temple-trust/temple_finance_app/internal/core/ports/repositories"
)

// TimelineSweep periodically verifies that every decided or reconciled row has
// a matching timeline event, and re-emits the missing ones. Lifecycle writes
// run the status update and timeline insert in one database transaction, so a
// gap here means an older code path or a manual fix touched the row; the gap
// is repaired with at-least-once semantics, never silently dropped.
type TimelineSweep struct {
	BaseService
	timelineRepo portsrepo.TimelineRepositoryFacade
	interval     time.Duration
}

// NewTimelineSweep creates a sweep that runs every interval.
func NewTimelineSweep(timelineRepo portsrepo.TimelineRepositoryFacade, interval time.Duration) *TimelineSweep {
	return &TimelineSweep{timelineRepo: timelineRepo, interval: interval}
}

// Run blocks, sweeping on every tick until ctx is cancelled.
func (s *TimelineSweep) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SweepOnce(ctx); err != nil {
				s.LogError(ctx, err, "Timeline sweep failed")
			}
		}
	}
}

// SweepOnce finds and repairs all missing timeline events. Failures on a
// single event are logged and retried on the next tick.
func (s *TimelineSweep) SweepOnce(ctx context.Context) error {
	missing, err := s.timelineRepo.FindMissingLifecycleEvents(ctx)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}

	s.LogWarn(ctx, "Timeline gaps detected", slog.Int("count", len(missing)))
	for _, event := range missing {
		if err := s.timelineRepo.SaveEvent(ctx, event); err != nil {
			s.LogError(ctx, err, "Failed to repair timeline gap",
				slog.String("entity_table", event.EntityTable),
				slog.String("entity_id", event.EntityID))
			continue
		}
		s.LogInfo(ctx, "Timeline gap repaired",
			slog.String("event_type", string(event.EventType)),
			slog.String("entity_id", event.EntityID))
	}
	return nil
}
