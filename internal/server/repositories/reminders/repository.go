package reminders

import (
	"context"

	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/models"
)

// Repository persists reminder rows. Every read and write is scoped by the
// owning user; a row belonging to somebody else behaves as if it did not
// exist.
type Repository interface {
	Create(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error)
	GetByUserID(ctx context.Context, userID string) ([]*models.Reminder, error)
	GetByID(ctx context.Context, reminderID int64, userID string) (*models.Reminder, error)
	Update(ctx context.Context, reminder *models.Reminder) error
	Delete(ctx context.Context, reminderID int64, userID string) error
}
