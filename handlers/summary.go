package handlers

import (
	"github.com/gofiber/fiber/v2"

	"yt-summarizer/errors"
	"yt-summarizer/models"
	"yt-summarizer/services/summary"
)

type SummaryHandler struct {
	service summary.Service
}

func NewSummaryHandler(service summary.Service) *SummaryHandler {
	return &SummaryHandler{service: service}
}

// Summarize runs the full URL to summary flow.
func (h *SummaryHandler) Summarize(c *fiber.Ctx) error {
	const op = "SummaryHandler.Summarize"

	var req models.SummarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.InvalidInput(op, err, "Invalid request body")
	}
	if req.URL == "" {
		return errors.InvalidInput(op, nil, "URL is required")
	}

	vid, err := h.service.Summarize(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    models.NewVideoResponse(vid),
	})
}

// Models lists the model names installed on the inference server.
func (h *SummaryHandler) Models(c *fiber.Ctx) error {
	names, err := h.service.Models(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"models": names,
			"tones":  summary.Tones(),
		},
	})
}
