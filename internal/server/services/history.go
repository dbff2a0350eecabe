package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/models"
	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/repositories/repomanager"
)

// HistoryService is the read-only view over the audit trail.
type HistoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewHistoryService constructs a HistoryService over the given database.
func NewHistoryService(db *sql.DB, m repomanager.RepositoryManager) *HistoryService {
	return &HistoryService{db: db, repomanager: m}
}

// List returns the caller's audit entries newest-first. Repeated
// timestamps keep the later insertion first.
func (s *HistoryService) List(ctx context.Context, userID string) ([]*models.ReminderHistory, error) {
	repo := s.repomanager.History(s.db)
	result, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing history: %w", err)
	}
	return result, nil
}
