package mapping

import (
	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	"github.com/temple-trust/temple_finance_app/internal/models"
)

// ToDomainTimelineEvent converts a model TimelineEvent to a domain TimelineEvent
func ToDomainTimelineEvent(m models.TimelineEvent) domain.TimelineEvent {
	return domain.TimelineEvent{
		EventID:     m.EventID,
		EventType:   domain.TimelineEventType(m.EventType),
		EntityTable: m.EntityTable,
		EntityID:    m.EntityID,
		CreatedAt:   m.CreatedAt,
	}
}

// ToDomainTimelineEventSlice converts a slice of model TimelineEvents to domain TimelineEvents
func ToDomainTimelineEventSlice(ms []models.TimelineEvent) []domain.TimelineEvent {
	ds := make([]domain.TimelineEvent, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTimelineEvent(m)
	}
	return ds
}
