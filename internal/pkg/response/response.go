package response

import "github.com/gofiber/fiber/v2"

// ErrorBody is the error payload shape the frontend reads ({"detail": ...})
type ErrorBody struct {
	Detail string `json:"detail"`
}

// Error sends an error response with the given status code
func Error(c *fiber.Ctx, statusCode int, detail string) error {
	return c.Status(statusCode).JSON(ErrorBody{Detail: detail})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, detail string) error {
	return Error(c, fiber.StatusBadRequest, detail)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, detail string) error {
	return Error(c, fiber.StatusUnauthorized, detail)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, detail string) error {
	return Error(c, fiber.StatusForbidden, detail)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, detail string) error {
	return Error(c, fiber.StatusNotFound, detail)
}

// Conflict sends a 409 conflict response
func Conflict(c *fiber.Ctx, detail string) error {
	return Error(c, fiber.StatusConflict, detail)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, detail string) error {
	return Error(c, fiber.StatusInternalServerError, detail)
}

// OK sends a 200 response with the given payload
func OK(c *fiber.Ctx, data interface{}) error {
	return c.JSON(data)
}

// Created sends a 201 response with the given payload
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// NoContent sends a 204 response
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
