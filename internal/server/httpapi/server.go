// Package httpapi exposes the pill-reminder service over HTTP: routing,
// JSON codecs, the bearer-token middleware, and the mapping from service
// errors to status codes.
package httpapi

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/logging"
	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/models"
	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/services"
)

// UserService is the authentication surface the handlers depend on.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, token string) (userID, sessionID string, err error)
}

// ReminderService is the reminder CRUD surface the handlers depend on.
type ReminderService interface {
	Create(ctx context.Context, userID string, input *services.ReminderInput) (*models.Reminder, error)
	List(ctx context.Context, userID string) ([]*models.Reminder, error)
	Update(ctx context.Context, userID string, reminderID int64, input *services.ReminderInput, rawPayload map[string]any) (*models.Reminder, error)
	Delete(ctx context.Context, userID string, reminderID int64) error
}

// HistoryService is the read-only audit surface the handlers depend on.
type HistoryService interface {
	List(ctx context.Context, userID string) ([]*models.ReminderHistory, error)
}

type Server struct {
	address   string
	app       *fiber.App
	logger    logging.Logger
	users     UserService
	reminders ReminderService
	history   HistoryService
}

func NewServer(a string, l logging.Logger, us UserService, rs ReminderService, hs HistoryService) *Server {
	s := &Server{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		reminders: rs,
		history:   hs,
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	api := app.Group("/api")
	api.Post("/register/", s.handleRegister)
	api.Post("/login/", s.handleLogin)
	api.Post("/logout/", s.requireAuth, s.handleLogout)

	api.Post("/reminders/add/", s.requireAuth, s.handleAddReminder)
	api.Get("/reminders/", s.requireAuth, s.handleListReminders)
	api.Get("/reminders/history/", s.requireAuth, s.handleListHistory)
	api.Put("/reminders/:id/", s.requireAuth, s.handleUpdateReminder)
	api.Delete("/reminders/:id/", s.requireAuth, s.handleDeleteReminder)

	s.app = app
	return s
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		_ = s.app.Shutdown()
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.app.Listen(s.address); err != nil {
		return err
	}

	return nil
}
