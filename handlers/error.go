package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"yt-summarizer/errors"
)

// NewErrorHandler builds the app-wide fiber error handler. Application
// errors carry their own status code and user-facing message; anything
// else is reported as a plain 500.
func NewErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		if e, ok := err.(*errors.AppError); ok {
			code = e.Code
			message = e.Message
		} else if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		log.WithFields(logrus.Fields{
			"request_id": c.Get("X-Request-ID"),
			"path":       c.Path(),
			"method":     c.Method(),
			"status":     code,
		}).WithError(err).Error("Request error")

		return c.Status(code).JSON(fiber.Map{
			"success":    false,
			"error":      message,
			"request_id": c.Get("X-Request-ID"),
		})
	}
}
