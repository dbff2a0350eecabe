package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/common"
	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/dbx"
	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/models"
	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/repositories/repomanager"
)

// dateLayouts are the accepted input formats for start_date and end_date.
var dateLayouts = []string{time.RFC3339, models.SnapshotTimeLayout, "2006-01-02T15:04"}

// ReminderInput carries the fields of a create or update request. Nil
// pointers mean "not supplied", which create treats as missing and update
// treats as "keep the current value". EndDate distinguishes absent
// (EndDate == nil) from explicitly cleared (EndDate set, empty string).
type ReminderInput struct {
	MedicineType     *string
	MedicineName     *string
	Dosage           *string
	StartDate        *string
	EndDate          *string
	ReminderInterval *float64
}

// ReminderService implements the reminder CRUD operations. Update and
// delete pair the mutation with an audit write inside one transaction.
type ReminderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewReminderService constructs a ReminderService over the given database.
func NewReminderService(db *sql.DB, m repomanager.RepositoryManager) *ReminderService {
	return &ReminderService{db: db, repomanager: m}
}

// Create validates input and persists a new reminder owned by userID. The
// owner always comes from the authenticated caller; nothing in the payload
// can change it. On validation failure every bad field is reported and no
// write happens.
func (s *ReminderService) Create(ctx context.Context, userID string, input *ReminderInput) (*models.Reminder, error) {
	verr := common.NewValidationError()

	reminder := &models.Reminder{UserID: userID}

	if input.MedicineType == nil || *input.MedicineType == "" {
		verr.Add("medicine_type", "this field is required")
	} else {
		reminder.MedicineType = *input.MedicineType
	}
	if input.MedicineName == nil || *input.MedicineName == "" {
		verr.Add("medicine_name", "this field is required")
	} else {
		reminder.MedicineName = *input.MedicineName
	}
	if input.Dosage == nil || *input.Dosage == "" {
		verr.Add("dosage", "this field is required")
	} else {
		reminder.Dosage = *input.Dosage
	}

	if input.StartDate == nil || *input.StartDate == "" {
		verr.Add("start_date", "this field is required")
	} else if t, err := parseDate(*input.StartDate); err != nil {
		verr.Add("start_date", "invalid date format")
	} else {
		reminder.StartDate = t
	}

	if input.EndDate != nil && *input.EndDate != "" {
		if t, err := parseDate(*input.EndDate); err != nil {
			verr.Add("end_date", "invalid date format")
		} else {
			reminder.EndDate = &t
		}
	}

	if input.ReminderInterval == nil {
		verr.Add("reminder_interval", "this field is required")
	} else if *input.ReminderInterval <= 0 {
		verr.Add("reminder_interval", "must be greater than zero")
	} else {
		reminder.ReminderInterval = *input.ReminderInterval
	}

	if verr.Empty() && reminder.EndDate != nil && reminder.EndDate.Before(reminder.StartDate) {
		verr.Add("end_date", "must not be before start_date")
	}

	if !verr.Empty() {
		return nil, verr
	}

	repo := s.repomanager.Reminders(s.db)
	created, err := repo.Create(ctx, reminder)
	if err != nil {
		return nil, fmt.Errorf("error creating reminder: %w", err)
	}
	return created, nil
}

// List returns all reminders owned by userID.
func (s *ReminderService) List(ctx context.Context, userID string) ([]*models.Reminder, error) {
	repo := s.repomanager.Reminders(s.db)
	result, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing reminders: %w", err)
	}
	return result, nil
}

// Update applies a partial change to a reminder owned by userID. The state
// of the six mutable fields is snapshotted before the change; the UPDATE
// and the audit INSERT (action=edit, new_data=rawPayload) commit in one
// transaction. A reminder that does not exist, or belongs to someone else,
// is the same common.ErrorNotFound.
func (s *ReminderService) Update(ctx context.Context, userID string, reminderID int64, input *ReminderInput, rawPayload map[string]any) (*models.Reminder, error) {
	repo := s.repomanager.Reminders(s.db)
	reminder, err := repo.GetByID(ctx, reminderID, userID)
	if err != nil {
		return nil, err
	}

	oldData := reminder.Snapshot()

	if err := applyPatch(reminder, input); err != nil {
		return nil, err
	}

	entry := &models.ReminderHistory{
		UserID:     userID,
		ReminderID: reminderID,
		Action:     models.HistoryActionEdit,
		OldData:    oldData,
		NewData:    rawPayload,
	}

	err = dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Reminders(tx).Update(ctx, reminder); err != nil {
			return err
		}
		return s.repomanager.History(tx).Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	return reminder, nil
}

// Delete removes a reminder owned by userID. The audit row (action=delete,
// new_data absent) is written before the row delete, inside the same
// transaction; deleting an already-deleted id is NotFound and records
// nothing.
func (s *ReminderService) Delete(ctx context.Context, userID string, reminderID int64) error {
	repo := s.repomanager.Reminders(s.db)
	reminder, err := repo.GetByID(ctx, reminderID, userID)
	if err != nil {
		return err
	}

	entry := &models.ReminderHistory{
		UserID:     userID,
		ReminderID: reminderID,
		Action:     models.HistoryActionDelete,
		OldData:    reminder.Snapshot(),
	}

	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.History(tx).Create(ctx, entry); err != nil {
			return err
		}
		return s.repomanager.Reminders(tx).Delete(ctx, reminderID, userID)
	})
}

// applyPatch merges the supplied fields of input into reminder, validating
// as it goes. Unspecified fields keep their current value.
func applyPatch(reminder *models.Reminder, input *ReminderInput) error {
	verr := common.NewValidationError()

	if input.MedicineType != nil {
		reminder.MedicineType = *input.MedicineType
	}
	if input.MedicineName != nil {
		reminder.MedicineName = *input.MedicineName
	}
	if input.Dosage != nil {
		reminder.Dosage = *input.Dosage
	}

	if input.StartDate != nil {
		if t, err := parseDate(*input.StartDate); err != nil {
			verr.Add("start_date", "invalid date format")
		} else {
			reminder.StartDate = t
		}
	}

	if input.EndDate != nil {
		if *input.EndDate == "" {
			reminder.EndDate = nil
		} else if t, err := parseDate(*input.EndDate); err != nil {
			verr.Add("end_date", "invalid date format")
		} else {
			reminder.EndDate = &t
		}
	}

	if input.ReminderInterval != nil {
		if *input.ReminderInterval <= 0 {
			verr.Add("reminder_interval", "must be greater than zero")
		} else {
			reminder.ReminderInterval = *input.ReminderInterval
		}
	}

	if verr.Empty() && reminder.EndDate != nil && reminder.EndDate.Before(reminder.StartDate) {
		verr.Add("end_date", "must not be before start_date")
	}

	if !verr.Empty() {
		return verr
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %q", value)
}
