package httpapi

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/common"
	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/models"
	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/services"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type reminderRequest struct {
	MedicineType     *string  `json:"medicine_type"`
	MedicineName     *string  `json:"medicine_name"`
	Dosage           *string  `json:"dosage"`
	StartDate        *string  `json:"start_date"`
	EndDate          *string  `json:"end_date"`
	ReminderInterval *float64 `json:"reminder_interval"`
}

func (r *reminderRequest) toInput() *services.ReminderInput {
	return &services.ReminderInput{
		MedicineType:     r.MedicineType,
		MedicineName:     r.MedicineName,
		Dosage:           r.Dosage,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		ReminderInterval: r.ReminderInterval,
	}
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func renderUser(u *models.User) userResponse {
	return userResponse{ID: u.ID, Username: u.UserName, Email: u.Email}
}

type reminderResponse struct {
	ID               int64      `json:"id"`
	User             string     `json:"user"`
	MedicineType     string     `json:"medicine_type"`
	MedicineName     string     `json:"medicine_name"`
	Dosage           string     `json:"dosage"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	ReminderInterval float64    `json:"reminder_interval"`
	CreatedAt        time.Time  `json:"created_at"`
}

func renderReminder(r *models.Reminder) reminderResponse {
	return reminderResponse{
		ID:               r.ID,
		User:             r.UserID,
		MedicineType:     r.MedicineType,
		MedicineName:     r.MedicineName,
		Dosage:           r.Dosage,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		ReminderInterval: r.ReminderInterval,
		CreatedAt:        r.CreatedAt,
	}
}

// historyTimeLayout is the second-precision format of audit timestamps in
// API responses.
const historyTimeLayout = "2006-01-02 15:04:05"

type historyResponse struct {
	Action     string         `json:"action"`
	ReminderID int64          `json:"reminder_id"`
	OldData    map[string]any `json:"old_data"`
	NewData    map[string]any `json:"new_data"`
	Timestamp  string         `json:"timestamp"`
}

func renderHistory(h *models.ReminderHistory) historyResponse {
	resp := historyResponse{
		Action:     h.Action,
		ReminderID: h.ReminderID,
		OldData:    h.OldData,
		Timestamp:  h.CreatedAt.Format(historyTimeLayout),
	}
	if h.Action == models.HistoryActionEdit {
		resp.NewData = h.NewData
	}
	return resp
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "could not parse request body"})
	}

	user, token, err := s.users.Register(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return s.renderError(c, err)
	}

	s.logger.Info(c.Context(), "user registered", "username", user.UserName)
	return c.JSON(fiber.Map{"user": renderUser(user), "token": token})
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "could not parse request body"})
	}

	user, token, err := s.users.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid username or password"})
		}
		return s.renderError(c, err)
	}

	return c.JSON(fiber.Map{"user": renderUser(user), "token": token})
}

func (s *Server) handleLogout(c *fiber.Ctx) error {
	sessionID := c.Locals(localSessionID).(string)

	if err := s.users.Logout(c.Context(), sessionID); err != nil {
		return s.renderError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Logged out successfully!"})
}

func (s *Server) handleAddReminder(c *fiber.Ctx) error {
	userID := c.Locals(localUserID).(string)

	var req reminderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "could not parse request body"})
	}

	reminder, err := s.reminders.Create(c.Context(), userID, req.toInput())
	if err != nil {
		return s.renderError(c, err)
	}

	s.logger.Info(c.Context(), "reminder added", "user", userID, "reminder", reminder.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Reminder added successfully!",
		"data":    renderReminder(reminder),
	})
}

func (s *Server) handleListReminders(c *fiber.Ctx) error {
	userID := c.Locals(localUserID).(string)

	list, err := s.reminders.List(c.Context(), userID)
	if err != nil {
		return s.renderError(c, err)
	}

	result := make([]reminderResponse, 0, len(list))
	for _, r := range list {
		result = append(result, renderReminder(r))
	}
	return c.JSON(result)
}

func (s *Server) handleUpdateReminder(c *fiber.Ctx) error {
	userID := c.Locals(localUserID).(string)

	reminderID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "not found"})
	}

	var req reminderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "could not parse request body"})
	}

	// the audit trail stores the incoming payload verbatim
	var rawPayload map[string]any
	if err := json.Unmarshal(c.Body(), &rawPayload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "could not parse request body"})
	}

	reminder, err := s.reminders.Update(c.Context(), userID, reminderID, req.toInput(), rawPayload)
	if err != nil {
		return s.renderError(c, err)
	}

	s.logger.Info(c.Context(), "reminder updated", "user", userID, "reminder", reminderID)
	return c.JSON(fiber.Map{
		"message": "Reminder updated successfully!",
		"data":    renderReminder(reminder),
	})
}

func (s *Server) handleDeleteReminder(c *fiber.Ctx) error {
	userID := c.Locals(localUserID).(string)

	reminderID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "not found"})
	}

	if err := s.reminders.Delete(c.Context(), userID, reminderID); err != nil {
		return s.renderError(c, err)
	}

	s.logger.Info(c.Context(), "reminder deleted", "user", userID, "reminder", reminderID)
	return c.JSON(fiber.Map{"message": "Reminder deleted successfully!"})
}

func (s *Server) handleListHistory(c *fiber.Ctx) error {
	userID := c.Locals(localUserID).(string)

	list, err := s.history.List(c.Context(), userID)
	if err != nil {
		return s.renderError(c, err)
	}

	result := make([]historyResponse, 0, len(list))
	for _, h := range list {
		result = append(result, renderHistory(h))
	}
	return c.JSON(result)
}

// renderError maps service errors to the API's status codes and JSON shapes.
func (s *Server) renderError(c *fiber.Ctx, err error) error {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(verr.Fields)
	case errors.Is(err, common.ErrorNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "not found"})
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "invalid token"})
	default:
		s.logger.Error(c.Context(), "request failed", "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "internal server error"})
	}
}
