package models

import "time"

// SnapshotTimeLayout is the format used for dates inside history snapshots.
const SnapshotTimeLayout = "2006-01-02 15:04"

type Reminder struct {
	ID               int64
	UserID           string
	MedicineType     string
	MedicineName     string
	Dosage           string
	StartDate        time.Time
	EndDate          *time.Time
	ReminderInterval float64
	CreatedAt        time.Time
}

// Snapshot returns the mutable fields of the reminder as a history payload.
// Dates are rendered with SnapshotTimeLayout; a missing end date stays nil
// so it serializes as JSON null.
func (r *Reminder) Snapshot() map[string]any {
	var endDate any
	if r.EndDate != nil {
		endDate = r.EndDate.Format(SnapshotTimeLayout)
	}
	return map[string]any{
		"medicine_type":     r.MedicineType,
		"medicine_name":     r.MedicineName,
		"dosage":            r.Dosage,
		"start_date":        r.StartDate.Format(SnapshotTimeLayout),
		"end_date":          endDate,
		"reminder_interval": r.ReminderInterval,
	}
}
