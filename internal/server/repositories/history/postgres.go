// Package history provides a PostgreSQL-backed repository for the
// insert-only reminder audit trail.
package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/dbx"
	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/models"
)

// PostgresRepository implements audit storage over a dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create appends an audit row. OldData and NewData are stored as jsonb;
// a nil NewData becomes SQL NULL.
func (r *PostgresRepository) Create(ctx context.Context, entry *models.ReminderHistory) error {
	oldData, err := json.Marshal(entry.OldData)
	if err != nil {
		return fmt.Errorf("marshal old_data: %w", err)
	}

	var newData []byte
	if entry.NewData != nil {
		newData, err = json.Marshal(entry.NewData)
		if err != nil {
			return fmt.Errorf("marshal new_data: %w", err)
		}
	}

	query := `
		INSERT INTO reminder_history (user_id, reminder_id, action, old_data, new_data)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query,
		entry.UserID, entry.ReminderID, entry.Action, oldData, newData); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetByUserID returns the user's audit rows newest-first, with insertion
// order breaking timestamp ties.
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) ([]*models.ReminderHistory, error) {
	query := `
		SELECT id, user_id, reminder_id, action, old_data, new_data, created_at
		FROM reminder_history
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select history: %w", err)
	}
	defer rows.Close()

	var result []*models.ReminderHistory
	for rows.Next() {
		var (
			item    models.ReminderHistory
			oldData []byte
			newData []byte
		)
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ReminderID, &item.Action,
			&oldData, &newData, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		if oldData != nil {
			if err := json.Unmarshal(oldData, &item.OldData); err != nil {
				return nil, fmt.Errorf("unmarshal old_data: %w", err)
			}
		}
		if newData != nil {
			if err := json.Unmarshal(newData, &item.NewData); err != nil {
				return nil, fmt.Errorf("unmarshal new_data: %w", err)
			}
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
