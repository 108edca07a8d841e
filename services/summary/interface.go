package summary

import (
	"context"

	"yt-summarizer/models"
	"yt-summarizer/ollama"
)

// Service generates summaries for video transcripts.
type Service interface {
	// Summarize fetches the transcript for the requested URL and
	// generates a summary with the requested model and tone.
	Summarize(ctx context.Context, req models.SummarizeRequest) (*models.Video, error)
	// Models lists the model names available on the inference server.
	Models(ctx context.Context) ([]string, error)
}

// Inference is the model server surface this service depends on.
type Inference interface {
	ListModels(ctx context.Context) ([]ollama.Model, error)
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Config holds summarization settings.
type Config struct {
	// DefaultModel is used when a request names no model.
	DefaultModel string
	// ChunkWords is the word budget above which a transcript is
	// summarized in chunks.
	ChunkWords int
}
