package services

import (
	"context"

	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	portsrepo "github.com/temple-trust/temple_finance_app/internal/core/ports/repositories"
	portssvc "github.com/temple-trust/temple_finance_app/internal/core/ports/services"
)

const defaultTimelineLimit = 50

// timelineService reads the audit activity feed.
type timelineService struct {
	BaseService
	timelineRepo portsrepo.TimelineReader
}

// NewTimelineService creates a new TimelineService.
func NewTimelineService(timelineRepo portsrepo.TimelineReader) portssvc.TimelineSvcFacade {
	return &timelineService{timelineRepo: timelineRepo}
}

var _ portssvc.TimelineSvcFacade = (*timelineService)(nil)

// ListRecentEvents retrieves the most recent timeline events, newest first.
func (s *timelineService) ListRecentEvents(ctx context.Context, limit int) ([]domain.TimelineEvent, error) {
	if limit <= 0 {
		limit = defaultTimelineLimit
	}
	return s.timelineRepo.ListRecentEvents(ctx, limit)
}
