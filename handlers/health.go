package handlers

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	db      *sql.DB
	version string
	started time.Time
}

func NewHealthHandler(db *sql.DB, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version, started: time.Now()}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "ok"
	code := fiber.StatusOK

	if err := h.db.PingContext(c.Context()); err != nil {
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":  status,
		"version": h.version,
		"uptime":  time.Since(h.started).String(),
	})
}
