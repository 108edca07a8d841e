package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"yt-summarizer/errors"
	"yt-summarizer/models"
	"yt-summarizer/services/video"
)

type VideoHandler struct {
	service video.Service
}

func NewVideoHandler(service video.Service) *VideoHandler {
	return &VideoHandler{service: service}
}

// Transcript fetches a transcript for the submitted URL.
func (h *VideoHandler) Transcript(c *fiber.Ctx) error {
	const op = "VideoHandler.Transcript"

	var req models.TranscriptRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.InvalidInput(op, err, "Invalid request body")
	}
	if req.URL == "" {
		return errors.InvalidInput(op, nil, "URL is required")
	}

	vid, err := h.service.Fetch(c.Context(), req.URL)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    models.NewVideoResponse(vid),
	})
}

// Get returns a stored video record by ID.
func (h *VideoHandler) Get(c *fiber.Ctx) error {
	vid, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    models.NewVideoResponse(vid),
	})
}

// DownloadTranscript serves the transcript as a plain text attachment.
func (h *VideoHandler) DownloadTranscript(c *fiber.Ctx) error {
	const op = "VideoHandler.DownloadTranscript"

	vid, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if vid.Transcript == "" {
		return errors.NotFound(op, nil, "No transcript available for this video")
	}

	return sendTextFile(c, downloadName(vid, "transcript"), vid.Transcript)
}

// DownloadSummary serves the summary as a plain text attachment.
func (h *VideoHandler) DownloadSummary(c *fiber.Ctx) error {
	const op = "VideoHandler.DownloadSummary"

	vid, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if vid.Summary == "" {
		return errors.NotFound(op, nil, "No summary available for this video")
	}

	return sendTextFile(c, downloadName(vid, "summary"), vid.Summary)
}

func sendTextFile(c *fiber.Ctx, filename, body string) error {
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.SendString(body)
}

func downloadName(v *models.Video, suffix string) string {
	base := sanitizeFilename(v.Title)
	if base == "" {
		base = v.VideoID
	}
	return base + "_" + suffix + ".txt"
}

// sanitizeFilename keeps titles usable as attachment names.
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}
