package repomanager

import (
	"context"
	"database/sql"

	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/dbx"
	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/repositories/history"
	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/repositories/reminders"
	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/repositories/sessions"
	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same
// factory serves plain connections and transactions alike.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Reminders(db dbx.DBTX) reminders.Repository
	History(db dbx.DBTX) history.Repository
}
