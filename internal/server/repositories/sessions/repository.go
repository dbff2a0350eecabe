package sessions

import (
	"context"
	"time"

	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, sessionID, userID string, validity time.Duration) error
	Find(ctx context.Context, sessionID string) (*models.Session, error)
	Delete(ctx context.Context, sessionID string) error
}
