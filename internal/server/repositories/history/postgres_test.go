package history

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_EditCarriesNewData(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO reminder_history`).
		WithArgs("u1", int64(7), models.HistoryActionEdit,
			[]byte(`{"dosage":"100mg"}`), []byte(`{"dosage":"200mg"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &models.ReminderHistory{
		UserID:     "u1",
		ReminderID: 7,
		Action:     models.HistoryActionEdit,
		OldData:    map[string]any{"dosage": "100mg"},
		NewData:    map[string]any{"dosage": "200mg"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DeleteStoresNullNewData(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO reminder_history`).
		WithArgs("u1", int64(7), models.HistoryActionDelete,
			[]byte(`{"dosage":"100mg"}`), nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &models.ReminderHistory{
		UserID:     "u1",
		ReminderID: 7,
		Action:     models.HistoryActionDelete,
		OldData:    map[string]any{"dosage": "100mg"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetByUserID_DecodesPayloads(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	t2 := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	t1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "user_id", "reminder_id", "action", "old_data", "new_data", "created_at"}).
		AddRow(int64(2), "u1", int64(7), models.HistoryActionDelete, []byte(`{"dosage":"200mg"}`), nil, t2).
		AddRow(int64(1), "u1", int64(7), models.HistoryActionEdit, []byte(`{"dosage":"100mg"}`), []byte(`{"dosage":"200mg"}`), t1)

	mock.ExpectQuery(`SELECT .* FROM reminder_history\s+WHERE user_id = \$1\s+ORDER BY created_at DESC, id DESC`).
		WithArgs("u1").
		WillReturnRows(rows)

	got, err := repo.GetByUserID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 entries, got %d", len(got))
	}
	if got[0].Action != models.HistoryActionDelete || got[0].NewData != nil {
		t.Fatalf("unexpected first entry: %+v", got[0])
	}
	if got[1].NewData["dosage"] != "200mg" {
		t.Fatalf("unexpected new_data: %+v", got[1].NewData)
	}
	if got[1].OldData["dosage"] != "100mg" {
		t.Fatalf("unexpected old_data: %+v", got[1].OldData)
	}
}
