package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// sessionIdentity extracts the username and session id the JWT middleware
// stored on the request.
func sessionIdentity(c *fiber.Ctx) (string, string, error) {
	username, _ := c.Locals("username").(string)
	sessionID, _ := c.Locals("session_id").(string)

	if username == "" || sessionID == "" {
		return "", "", fmt.Errorf("missing session identity")
	}

	return username, sessionID, nil
}
