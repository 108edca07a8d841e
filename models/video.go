package models

import (
	"time"
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Video is one processed video: its identity, transcript and the most
// recently generated summary.
type Video struct {
	ID           string    `json:"id"`
	VideoID      string    `json:"video_id"`
	URL          string    `json:"url"`
	Title        string    `json:"title"`
	Status       Status    `json:"status"`
	Transcript   string    `json:"transcript,omitempty"`
	Summary      string    `json:"summary,omitempty"`
	SummaryModel string    `json:"summary_model,omitempty"`
	Tone         string    `json:"tone,omitempty"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (v *Video) IsCompleted() bool { return v.Status == StatusCompleted }
func (v *Video) IsFailed() bool    { return v.Status == StatusFailed }

// HasSummary reports whether a summary generated with the same model
// and tone is already stored.
func (v *Video) HasSummary(model, tone string) bool {
	return v.Summary != "" && v.SummaryModel == model && v.Tone == tone
}
