package handlers

import (
	"errors"

	"packbill-backoffice/internal/core/services"
	"packbill-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles the token endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// TokenRequest represents login request body
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token handles login and issues a token pair
// @Summary Obtain token pair
// @Description Authenticate with username and password, returns access and refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body TokenRequest true "Credentials"
// @Success 200 {object} services.TokenPair
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /token/ [post]
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Username == "" || req.Password == "" {
		return response.BadRequest(c, "Username and password are required")
	}

	tokens, err := h.authService.Login(c.Context(), &services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials),
			errors.Is(err, services.ErrUserInactive):
			// Same message for both so probes cannot tell accounts apart
			return response.Unauthorized(c, "No active account found with the given credentials")
		default:
			return response.InternalServerError(c, "Failed to log in")
		}
	}

	return response.OK(c, tokens)
}

// RefreshRequest represents token refresh request body
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// TokenRefresh handles refresh token rotation
// @Summary Refresh token pair
// @Description Exchange a refresh token for a new access and refresh token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "Refresh token"
// @Success 200 {object} services.TokenPair
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /token/refresh/ [post]
func (h *AuthHandler) TokenRefresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Refresh == "" {
		return response.BadRequest(c, "Refresh token is required")
	}

	tokens, err := h.authService.Refresh(c.Context(), req.Refresh)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTokenExpired):
			return response.Unauthorized(c, "Token is expired")
		case errors.Is(err, services.ErrInvalidToken),
			errors.Is(err, services.ErrTokenRevoked),
			errors.Is(err, services.ErrUserNotFound),
			errors.Is(err, services.ErrUserInactive):
			return response.Unauthorized(c, "Token is invalid or revoked")
		default:
			return response.InternalServerError(c, "Failed to refresh token")
		}
	}

	return response.OK(c, tokens)
}

// Me handles getting the authenticated user's own profile
// @Summary Get own profile
// @Description Get the authenticated user's profile
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} response.ErrorBody
// @Router /users/me/ [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Authentication credentials were not provided.")
	}

	user, err := h.authService.GetUserByID(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get profile")
	}

	return response.OK(c, user.ToResponse())
}

// Logout handles revoking all of the user's refresh tokens
// @Summary Log out
// @Description Revoke all refresh tokens of the authenticated user
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} response.ErrorBody
// @Router /token/revoke/ [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Authentication credentials were not provided.")
	}

	if err := h.authService.RevokeAll(c.Context(), userID); err != nil {
		return response.InternalServerError(c, "Failed to log out")
	}

	return response.NoContent(c)
}
