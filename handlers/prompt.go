package handlers

import (
	"github.com/gofiber/fiber/v2"

	"yt-summarizer/errors"
	"yt-summarizer/models"
	"yt-summarizer/repository"
	"yt-summarizer/services/summary"
)

// PromptHandler exposes the saved custom prompt. One prompt is kept;
// deleting it restores the stock template.
type PromptHandler struct {
	repo repository.PromptRepository
}

func NewPromptHandler(repo repository.PromptRepository) *PromptHandler {
	return &PromptHandler{repo: repo}
}

func (h *PromptHandler) Get(c *fiber.Ctx) error {
	text, err := h.repo.Get(c.Context())
	if err != nil {
		if !errors.IsNotFound(err) {
			return err
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data": models.PromptResponse{
				Prompt:  summary.DefaultPrompt(),
				Default: true,
			},
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    models.PromptResponse{Prompt: text},
	})
}

func (h *PromptHandler) Save(c *fiber.Ctx) error {
	const op = "PromptHandler.Save"

	var req models.PromptRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.InvalidInput(op, err, "Invalid request body")
	}
	if req.Prompt == "" {
		return errors.InvalidInput(op, nil, "Prompt text is required")
	}

	if err := h.repo.Save(c.Context(), req.Prompt); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    models.PromptResponse{Prompt: req.Prompt},
	})
}

// Reset discards the saved prompt and returns the stock template.
func (h *PromptHandler) Reset(c *fiber.Ctx) error {
	if err := h.repo.Delete(c.Context()); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": models.PromptResponse{
			Prompt:  summary.DefaultPrompt(),
			Default: true,
		},
	})
}
