package summary

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"yt-summarizer/errors"
	"yt-summarizer/models"
	"yt-summarizer/repository"
	"yt-summarizer/services/video"
)

type service struct {
	videos    video.Service
	inference Inference
	repo      repository.VideoRepository
	config    Config
	log       *logrus.Logger
}

func NewService(
	videos video.Service,
	inference Inference,
	repo repository.VideoRepository,
	config Config,
	log *logrus.Logger,
) Service {
	return &service{
		videos:    videos,
		inference: inference,
		repo:      repo,
		config:    config,
		log:       log,
	}
}

func (s *service) Summarize(ctx context.Context, req models.SummarizeRequest) (*models.Video, error) {
	const op = "SummaryService.Summarize"
	logger := s.log.WithField("url", req.URL)

	instruction, err := ResolveInstruction(req.Tone, req.CustomPrompt)
	if err != nil {
		return nil, err
	}

	vid, err := s.videos.Fetch(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	model := req.Model
	if model == "" {
		model = s.config.DefaultModel
	}
	if err := s.checkModel(ctx, model); err != nil {
		return nil, err
	}

	toneLabel := s.toneLabel(req)
	if vid.HasSummary(model, toneLabel) && req.CustomPrompt == "" {
		logger.WithField("model", model).Info("Using cached summary")
		return vid, nil
	}

	logger = logger.WithFields(logrus.Fields{
		"video_id": vid.VideoID,
		"model":    model,
		"tone":     toneLabel,
	})
	logger.Info("Generating summary")

	text, err := s.summarizeText(ctx, model, instruction, vid.Transcript)
	if err != nil {
		logger.WithError(err).Warn("Summary generation failed")
		return nil, err
	}

	vid.Summary = text
	vid.SummaryModel = model
	vid.Tone = toneLabel
	vid.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, vid); err != nil {
		logger.WithError(err).Error("Failed to cache summary")
	}

	logger.WithField("summary_length", len(text)).Info("Summary generated")
	return vid, nil
}

func (s *service) Models(ctx context.Context) ([]string, error) {
	installed, err := s.inference.ListModels(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(installed))
	for _, m := range installed {
		names = append(names, m.Name)
	}
	return names, nil
}

// checkModel rejects a model the server does not have before any
// transcript-sized prompt is sent.
func (s *service) checkModel(ctx context.Context, model string) error {
	const op = "SummaryService.checkModel"

	if model == "" {
		return errors.InvalidInput(op, nil, "No model selected and no default configured")
	}

	installed, err := s.inference.ListModels(ctx)
	if err != nil {
		return err
	}

	for _, m := range installed {
		if m.Name == model {
			return nil
		}
	}
	return errors.ModelNotFound(op, nil, "Model is not installed on the server: "+model)
}

// summarizeText sends the transcript through the model, chunking when
// it exceeds the word budget and then condensing the chunk summaries.
func (s *service) summarizeText(ctx context.Context, model, instruction, transcript string) (string, error) {
	const op = "SummaryService.summarizeText"

	chunks := s.splitText(transcript)
	if len(chunks) == 1 {
		return s.inference.Generate(ctx, model, BuildPrompt(instruction, chunks[0]))
	}

	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		select {
		case <-ctx.Done():
			return "", errors.Internal(op, ctx.Err(), "Summary generation cancelled")
		default:
		}

		s.log.WithFields(logrus.Fields{
			"chunk": i + 1,
			"total": len(chunks),
		}).Debug("Summarizing chunk")

		text, err := s.inference.Generate(ctx, model, BuildPrompt(instruction, chunk))
		if err != nil {
			return "", err
		}
		summaries = append(summaries, text)
	}

	return s.combineSummaries(ctx, model, instruction, summaries)
}

func (s *service) splitText(text string) []string {
	words := strings.Fields(text)
	if len(words) <= s.config.ChunkWords {
		return []string{text}
	}

	var chunks []string
	for i := 0; i < len(words); i += s.config.ChunkWords {
		end := i + s.config.ChunkWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}

func (s *service) combineSummaries(ctx context.Context, model, instruction string, summaries []string) (string, error) {
	combined := strings.Join(summaries, "\n\n")
	if len(strings.Fields(combined)) <= s.config.ChunkWords {
		return combined, nil
	}

	// The combined chunk summaries are still too long; condense once more.
	return s.inference.Generate(ctx, model, BuildPrompt(instruction, combined))
}

func (s *service) toneLabel(req models.SummarizeRequest) string {
	if req.CustomPrompt != "" {
		return "custom"
	}
	if req.Tone == "" {
		return ToneProfessional
	}
	return req.Tone
}
