package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"yt-summarizer/errors"
	"yt-summarizer/models"
)

const (
	saveVideoQuery = `
        INSERT INTO videos (
            id, video_id, url, title, status, transcript,
            summary, summary_model, tone, error, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(video_id) DO UPDATE SET
            url = excluded.url,
            title = excluded.title,
            status = excluded.status,
            transcript = excluded.transcript,
            summary = excluded.summary,
            summary_model = excluded.summary_model,
            tone = excluded.tone,
            error = excluded.error,
            updated_at = excluded.updated_at
    `

	findVideoQuery = `
        SELECT id, video_id, url, title, status, transcript,
               summary, summary_model, tone, error, created_at, updated_at
        FROM videos WHERE id = ?
    `

	findByVideoIDQuery = `
        SELECT id, video_id, url, title, status, transcript,
               summary, summary_model, tone, error, created_at, updated_at
        FROM videos WHERE video_id = ?
    `
)

type VideoRepository struct {
	db *sql.DB
}

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Save(ctx context.Context, video *models.Video) error {
	const op = "sqlite.VideoRepository.Save"

	for i := 0; i < 3; i++ {
		err := r.save(ctx, video)
		if err == nil {
			return nil
		}
		if !isLockError(err) {
			return errors.Internal(op, err, "Failed to save video")
		}
		time.Sleep(time.Second * time.Duration(i+1))
	}
	return errors.Internal(op, nil, "Failed after retries")
}

func (r *VideoRepository) save(ctx context.Context, video *models.Video) error {
	_, err := r.db.ExecContext(ctx, saveVideoQuery,
		video.ID,
		video.VideoID,
		video.URL,
		video.Title,
		string(video.Status),
		video.Transcript,
		video.Summary,
		video.SummaryModel,
		video.Tone,
		video.Error,
		video.CreatedAt,
		video.UpdatedAt,
	)
	return err
}

func (r *VideoRepository) Find(ctx context.Context, id string) (*models.Video, error) {
	const op = "sqlite.VideoRepository.Find"
	return r.scanVideo(ctx, op, findVideoQuery, id)
}

func (r *VideoRepository) FindByVideoID(ctx context.Context, videoID string) (*models.Video, error) {
	const op = "sqlite.VideoRepository.FindByVideoID"
	return r.scanVideo(ctx, op, findByVideoIDQuery, videoID)
}

func (r *VideoRepository) scanVideo(ctx context.Context, op, query, arg string) (*models.Video, error) {
	video := &models.Video{}
	var status string

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&video.ID,
		&video.VideoID,
		&video.URL,
		&video.Title,
		&status,
		&video.Transcript,
		&video.Summary,
		&video.SummaryModel,
		&video.Tone,
		&video.Error,
		&video.CreatedAt,
		&video.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound(op, nil, "Video not found")
	}
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to query video")
	}

	video.Status = models.Status(status)
	return video, nil
}

func isLockError(err error) bool {
	return strings.Contains(err.Error(), "database is locked") ||
		strings.Contains(err.Error(), "busy")
}
