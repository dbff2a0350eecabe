// Package sessions provides a PostgreSQL-backed repository for the
// server-side session rows backing bearer tokens.
package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/common"
	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/dbx"
	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/models"
)

// PostgresRepository implements session storage over a dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a session row for userID expiring at now+validity.
func (r *PostgresRepository) Create(ctx context.Context, sessionID, userID string, validity time.Duration) error {
	query := `
		INSERT INTO sessions (id, user_id, expires_at)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, sessionID, userID, time.Now().Add(validity)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Find returns the session row for the given id.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) Find(ctx context.Context, sessionID string) (*models.Session, error) {
	query := `
		SELECT id, user_id, expires_at
		FROM sessions
		WHERE id = $1
	`
	session := &models.Session{}
	if err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&session.ID, &session.UserID, &session.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return session, nil
}

// Delete removes a session row, revoking the matching token.
func (r *PostgresRepository) Delete(ctx context.Context, sessionID string) error {
	query := `
		DELETE FROM sessions
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
