package video

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"yt-summarizer/errors"
	"yt-summarizer/models"
	"yt-summarizer/repository"
	"yt-summarizer/validation"
	"yt-summarizer/youtube"
)

type service struct {
	repo      repository.VideoRepository
	yt        YouTubeClient
	validator *validation.Validator
	log       *logrus.Logger
}

func NewService(
	repo repository.VideoRepository,
	yt YouTubeClient,
	validator *validation.Validator,
	log *logrus.Logger,
) Service {
	return &service{
		repo:      repo,
		yt:        yt,
		validator: validator,
		log:       log,
	}
}

// Fetch is synchronous: the request blocks until YouTube answers or
// errors. A completed cached record skips the network entirely.
func (s *service) Fetch(ctx context.Context, rawURL string) (*models.Video, error) {
	const op = "VideoService.Fetch"
	logger := s.log.WithField("url", rawURL)

	if err := s.validator.ValidateURL(rawURL); err != nil {
		logger.WithError(err).Warn("URL validation failed")
		return nil, err
	}

	videoID, err := s.validator.ExtractVideoID(rawURL)
	if err != nil {
		logger.WithError(err).Warn("Could not extract video ID")
		return nil, err
	}
	logger = logger.WithField("video_id", videoID)

	if cached, err := s.repo.FindByVideoID(ctx, videoID); err == nil &&
		cached.IsCompleted() && cached.Transcript != "" {
		logger.Info("Using cached transcript")
		return cached, nil
	}

	title, err := s.yt.FetchTitle(ctx, videoID)
	if err != nil {
		logger.WithError(err).Warn("Title lookup failed")
		s.recordFailure(ctx, videoID, rawURL, "", err)
		return nil, err
	}

	fragments, err := s.yt.FetchTranscript(ctx, videoID)
	if err != nil {
		logger.WithError(err).Warn("Transcript fetch failed")
		s.recordFailure(ctx, videoID, rawURL, title, err)
		return nil, err
	}

	now := time.Now()
	video := &models.Video{
		ID:         uuid.New().String(),
		VideoID:    videoID,
		URL:        rawURL,
		Title:      title,
		Status:     models.StatusCompleted,
		Transcript: youtube.JoinFragments(fragments),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// The cache is an optimization; a failed save must not cost the
	// user a transcript that was already fetched.
	if err := s.repo.Save(ctx, video); err != nil {
		logger.WithError(err).Error("Failed to cache transcript")
	}

	logger.WithFields(logrus.Fields{
		"title":             video.Title,
		"transcript_length": len(video.Transcript),
	}).Info("Transcript fetched")

	return video, nil
}

// recordFailure keeps the last failed attempt for a video. Failed
// records never satisfy the cache check, so a later request retries.
func (s *service) recordFailure(ctx context.Context, videoID, rawURL, title string, cause error) {
	now := time.Now()
	failed := &models.Video{
		ID:        uuid.New().String(),
		VideoID:   videoID,
		URL:       rawURL,
		Title:     title,
		Status:    models.StatusFailed,
		Error:     cause.Error(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Save(ctx, failed); err != nil {
		s.log.WithError(err).WithField("video_id", videoID).Error("Failed to record fetch failure")
	}
}

func (s *service) Get(ctx context.Context, id string) (*models.Video, error) {
	const op = "VideoService.Get"

	if id == "" {
		return nil, errors.InvalidInput(op, nil, "ID is required")
	}

	video, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	return video, nil
}
