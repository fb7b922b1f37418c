package middleware

import (
	"strings"

	"packbill-backoffice/internal/config"
	"packbill-backoffice/internal/pkg/jwt"
	"packbill-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates the bearer access token and stores the
// claims in the request context
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Get token from Authorization header
		var accessToken string
		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Authentication credentials were not provided.")
		}

		// 2. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 3. Set user info in context
		c.Locals("userID", claims.UserID)
		c.Locals("username", claims.Username)
		c.Locals("userType", claims.UserType)
		c.Locals("isStaff", claims.IsStaff)
		c.Locals("isSuperuser", claims.IsSuperuser)

		return c.Next()
	}
}

// AdminOnly allows only accounts whose token carries is_staff or
// is_superuser
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isStaff, _ := c.Locals("isStaff").(bool)
		isSuperuser, _ := c.Locals("isSuperuser").(bool)

		if !isStaff && !isSuperuser {
			return response.Forbidden(c, "You do not have permission to perform this action.")
		}

		return c.Next()
	}
}
