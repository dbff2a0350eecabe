package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/dbx"
	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/models"
	historyrepo "github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/repositories/history"
	remindersrepo "github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/repositories/reminders"
	sessionsrepo "github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/repositories/sessions"
	usersrepo "github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// --- fake repositories ---

type fakeUsersRepo struct {
	createErr error
	created   *models.User

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = "u1"
	u.CreatedAt = time.Now()
	f.created = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeSessionsRepo struct {
	createErr  error
	createdIDs []string

	findOut *models.Session
	findErr error

	delErr     error
	deletedIDs []string
}

func (f *fakeSessionsRepo) Create(ctx context.Context, sessionID, userID string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.createdIDs = append(f.createdIDs, sessionID)
	return nil
}

func (f *fakeSessionsRepo) Find(ctx context.Context, sessionID string) (*models.Session, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeSessionsRepo) Delete(ctx context.Context, sessionID string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deletedIDs = append(f.deletedIDs, sessionID)
	return nil
}

type fakeRemindersRepo struct {
	createErr error
	created   *models.Reminder

	listOut []*models.Reminder
	listErr error

	getOut *models.Reminder
	getErr error

	updateErr error
	updated   *models.Reminder

	deleteErr error
	deleted   []int64
}

func (f *fakeRemindersRepo) Create(ctx context.Context, r *models.Reminder) (*models.Reminder, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	r.ID = 1
	r.CreatedAt = time.Now()
	f.created = r
	return r, nil
}

func (f *fakeRemindersRepo) GetByUserID(ctx context.Context, userID string) ([]*models.Reminder, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeRemindersRepo) GetByID(ctx context.Context, reminderID int64, userID string) (*models.Reminder, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeRemindersRepo) Update(ctx context.Context, r *models.Reminder) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = r
	return nil
}

func (f *fakeRemindersRepo) Delete(ctx context.Context, reminderID int64, userID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, reminderID)
	return nil
}

type fakeHistoryRepo struct {
	createErr error
	created   []*models.ReminderHistory

	listOut []*models.ReminderHistory
	listErr error
}

func (f *fakeHistoryRepo) Create(ctx context.Context, entry *models.ReminderHistory) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, entry)
	return nil
}

func (f *fakeHistoryRepo) GetByUserID(ctx context.Context, userID string) ([]*models.ReminderHistory, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

// --- fake repository manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	s *fakeSessionsRepo
	r *fakeRemindersRepo
	h *fakeHistoryRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return m.u }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository { return m.s }
func (m *fakeRepoManager) Reminders(db dbx.DBTX) remindersrepo.Repository { return m.r }
func (m *fakeRepoManager) History(db dbx.DBTX) historyrepo.Repository { return m.h }

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u: &fakeUsersRepo{},
		s: &fakeSessionsRepo{},
		r: &fakeRemindersRepo{},
		h: &fakeHistoryRepo{},
	}
}
