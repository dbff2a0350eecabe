package history

import (
	"context"

	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/models"
)

// Repository persists the append-only audit trail. There is deliberately no
// update or delete operation.
type Repository interface {
	Create(ctx context.Context, entry *models.ReminderHistory) error
	GetByUserID(ctx context.Context, userID string) ([]*models.ReminderHistory, error)
}
