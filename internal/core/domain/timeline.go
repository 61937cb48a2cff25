package domain

import "time"

// TimelineEventType names a lifecycle transition for the activity feed.
type TimelineEventType string

const (
	EventExpenseApproved       TimelineEventType = "expense_approved"
	EventExpenseRejected       TimelineEventType = "expense_rejected"
	EventExpensePaid           TimelineEventType = "expense_paid"
	EventBudgetRequestApproved TimelineEventType = "budget_request_approved"
	EventBudgetRequestRejected TimelineEventType = "budget_request_rejected"
	EventDonationMatched       TimelineEventType = "donation_matched"
	EventDonationException     TimelineEventType = "donation_exception"
)

// TimelineEvent is an append-only audit log entry, written only by the
// lifecycle service, exactly one per committed transition.
type TimelineEvent struct {
	EventID     string            `json:"eventID"`
	EventType   TimelineEventType `json:"eventType"`
	EntityTable string            `json:"entityTable"`
	EntityID    string            `json:"entityID"`
	CreatedAt   time.Time         `json:"createdAt"`
}
