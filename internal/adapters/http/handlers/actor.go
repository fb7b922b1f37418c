package handlers

import (
	"packbill-backoffice/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// actorFromContext builds the acting user from the claims the auth
// middleware stored in the request context
func actorFromContext(c *fiber.Ctx) services.Actor {
	userID, _ := c.Locals("userID").(uint)
	username, _ := c.Locals("username").(string)
	isStaff, _ := c.Locals("isStaff").(bool)
	isSuperuser, _ := c.Locals("isSuperuser").(bool)

	return services.Actor{
		ID:       userID,
		Username: username,
		IsAdmin:  isStaff || isSuperuser,
	}
}
