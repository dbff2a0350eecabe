package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by requireAuth for downstream handlers.
const (
	localUserID    = "userID"
	localSessionID = "sessionID"
)

// requireAuth rejects requests without a valid bearer token before any
// handler runs. The token must verify AND its session must still be alive.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "authentication credentials were not provided",
		})
	}

	userID, sessionID, err := s.users.Authenticate(c.Context(), token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "invalid token",
		})
	}

	c.Locals(localUserID, userID)
	c.Locals(localSessionID, sessionID)
	return c.Next()
}
