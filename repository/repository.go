package repository

import (
	"context"

	"yt-summarizer/models"
)

type VideoRepository interface {
	Save(ctx context.Context, video *models.Video) error
	Find(ctx context.Context, id string) (*models.Video, error)
	FindByVideoID(ctx context.Context, videoID string) (*models.Video, error)
}

// PromptRepository stores the user's saved custom prompt. Deleting
// restores the default template.
type PromptRepository interface {
	Get(ctx context.Context) (string, error)
	Save(ctx context.Context, prompt string) error
	Delete(ctx context.Context) error
}
