package response

import "github.com/gofiber/fiber/v2"

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a success response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NoContent sends a 204 response
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// Error sends an error response. The error string is a stable code
// (e.g. "DuplicateLoan") that clients can match on.
func Error(c *fiber.Ctx, statusCode int, code string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Error:   code,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, code string) error {
	return Error(c, fiber.StatusBadRequest, code)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, code string) error {
	return Error(c, fiber.StatusUnauthorized, code)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, code string) error {
	return Error(c, fiber.StatusForbidden, code)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, code string) error {
	return Error(c, fiber.StatusNotFound, code)
}

// Conflict sends a 409 conflict response
func Conflict(c *fiber.Ctx, code string) error {
	return Error(c, fiber.StatusConflict, code)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, code string) error {
	return Error(c, fiber.StatusInternalServerError, code)
}
