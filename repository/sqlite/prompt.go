package sqlite

import (
	"context"
	"database/sql"
	"time"

	"yt-summarizer/errors"
)

// customPromptName is the single row key for the user's saved prompt.
const customPromptName = "custom"

type PromptRepository struct {
	db *sql.DB
}

func NewPromptRepository(db *sql.DB) *PromptRepository {
	return &PromptRepository{db: db}
}

func (r *PromptRepository) Get(ctx context.Context) (string, error) {
	const op = "sqlite.PromptRepository.Get"

	var text string
	err := r.db.QueryRowContext(ctx,
		`SELECT text FROM prompts WHERE name = ?`, customPromptName).Scan(&text)

	if err == sql.ErrNoRows {
		return "", errors.NotFound(op, nil, "No saved prompt")
	}
	if err != nil {
		return "", errors.Internal(op, err, "Failed to load saved prompt")
	}

	return text, nil
}

func (r *PromptRepository) Save(ctx context.Context, prompt string) error {
	const op = "sqlite.PromptRepository.Save"

	_, err := r.db.ExecContext(ctx, `
        INSERT INTO prompts (name, text, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(name) DO UPDATE SET
            text = excluded.text,
            updated_at = excluded.updated_at`,
		customPromptName, prompt, time.Now())
	if err != nil {
		return errors.Internal(op, err, "Failed to save prompt")
	}

	return nil
}

func (r *PromptRepository) Delete(ctx context.Context) error {
	const op = "sqlite.PromptRepository.Delete"

	_, err := r.db.ExecContext(ctx,
		`DELETE FROM prompts WHERE name = ?`, customPromptName)
	if err != nil {
		return errors.Internal(op, err, "Failed to delete saved prompt")
	}

	return nil
}
