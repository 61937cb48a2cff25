package models

import "time"

// TimelineEvent is the database representation of an audit log row.
// Append-only: there is no update path for this table.
type TimelineEvent struct {
	EventID     string    `db:"event_id"`
	EventType   string    `db:"event_type"`
	EntityTable string    `db:"entity_table"`
	EntityID    string    `db:"entity_id"`
	CreatedAt   time.Time `db:"created_at"`
}
