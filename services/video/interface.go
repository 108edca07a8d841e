package video

import (
	"context"

	"yt-summarizer/models"
	"yt-summarizer/youtube"
)

// Service fetches and caches video transcripts.
type Service interface {
	// Fetch resolves a URL to a video record with its transcript,
	// using the cache when a completed record exists.
	Fetch(ctx context.Context, url string) (*models.Video, error)
	// Get looks up a stored record by its record ID.
	Get(ctx context.Context, id string) (*models.Video, error)
}

// YouTubeClient covers the YouTube calls this service makes.
type YouTubeClient interface {
	FetchTitle(ctx context.Context, videoID string) (string, error)
	FetchTranscript(ctx context.Context, videoID string) ([]youtube.Fragment, error)
}
