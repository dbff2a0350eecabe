// Package reminders provides a PostgreSQL-backed repository for
// medication reminders.
package reminders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/common"
	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/dbx"
	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/models"
)

// PostgresRepository implements reminder storage over a dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a reminder and fills in its generated id and created_at.
func (r *PostgresRepository) Create(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	query := `
		INSERT INTO reminders (user_id, medicine_type, medicine_name, dosage, start_date, end_date, reminder_interval)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		reminder.UserID, reminder.MedicineType, reminder.MedicineName, reminder.Dosage,
		reminder.StartDate, reminder.EndDate, reminder.ReminderInterval,
	).Scan(&reminder.ID, &reminder.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return reminder, nil
}

// GetByUserID returns all reminders owned by userID in insertion order.
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) ([]*models.Reminder, error) {
	query := `
		SELECT id, user_id, medicine_type, medicine_name, dosage, start_date, end_date, reminder_interval, created_at
		FROM reminders
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select reminders: %w", err)
	}
	defer rows.Close()

	var result []*models.Reminder
	for rows.Next() {
		var item models.Reminder
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.MedicineType, &item.MedicineName, &item.Dosage,
			&item.StartDate, &item.EndDate, &item.ReminderInterval, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns the reminder with the given id owned by userID.
// Both a missing row and a row owned by another user yield
// common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, reminderID int64, userID string) (*models.Reminder, error) {
	query := `
		SELECT id, user_id, medicine_type, medicine_name, dosage, start_date, end_date, reminder_interval, created_at
		FROM reminders
		WHERE id = $1 AND user_id = $2
	`
	reminder := &models.Reminder{}
	err := r.db.QueryRowContext(ctx, query, reminderID, userID).Scan(
		&reminder.ID, &reminder.UserID, &reminder.MedicineType, &reminder.MedicineName, &reminder.Dosage,
		&reminder.StartDate, &reminder.EndDate, &reminder.ReminderInterval, &reminder.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return reminder, nil
}

// Update rewrites the mutable fields of a reminder, scoped by (id, owner).
// created_at is never touched. Zero rows affected maps to
// common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, reminder *models.Reminder) error {
	query := `
		UPDATE reminders
		SET medicine_type = $1, medicine_name = $2, dosage = $3, start_date = $4, end_date = $5, reminder_interval = $6
		WHERE id = $7 AND user_id = $8
	`
	res, err := r.db.ExecContext(ctx, query,
		reminder.MedicineType, reminder.MedicineName, reminder.Dosage,
		reminder.StartDate, reminder.EndDate, reminder.ReminderInterval,
		reminder.ID, reminder.UserID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes a reminder scoped by (id, owner). Zero rows affected maps
// to common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, reminderID int64, userID string) error {
	query := `
		DELETE FROM reminders
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, reminderID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
