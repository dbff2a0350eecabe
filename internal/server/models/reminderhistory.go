package models

import "time"

// History actions. Rows are insert-only; nothing ever updates or deletes
// them apart from the user-removal cascade.
const (
	HistoryActionEdit   = "edit"
	HistoryActionDelete = "delete"
)

type ReminderHistory struct {
	ID         int64
	UserID     string
	ReminderID int64
	Action     string
	// OldData is the state of the reminder immediately before the action.
	// NewData carries the incoming change payload and is nil for deletes.
	OldData   map[string]any
	NewData   map[string]any
	CreatedAt time.Time
}
