package models

// TranscriptRequest is the incoming request to fetch a transcript.
type TranscriptRequest struct {
	URL string `json:"url"`
}

// SummarizeRequest is the incoming request to generate a summary.
type SummarizeRequest struct {
	URL          string `json:"url"`
	Model        string `json:"model,omitempty"`
	Tone         string `json:"tone,omitempty"`
	CustomPrompt string `json:"custom_prompt,omitempty"`
}

// VideoResponse is the API representation of a video record.
type VideoResponse struct {
	ID           string `json:"id"`
	VideoID      string `json:"video_id"`
	URL          string `json:"url"`
	Title        string `json:"title"`
	Status       Status `json:"status"`
	Transcript   string `json:"transcript,omitempty"`
	Summary      string `json:"summary,omitempty"`
	SummaryModel string `json:"summary_model,omitempty"`
	Tone         string `json:"tone,omitempty"`
	Error        string `json:"error,omitempty"`
}

// NewVideoResponse creates a response from a video model
func NewVideoResponse(v *Video) *VideoResponse {
	return &VideoResponse{
		ID:           v.ID,
		VideoID:      v.VideoID,
		URL:          v.URL,
		Title:        v.Title,
		Status:       v.Status,
		Transcript:   v.Transcript,
		Summary:      v.Summary,
		SummaryModel: v.SummaryModel,
		Tone:         v.Tone,
		Error:        v.Error,
	}
}

// PromptRequest carries a user-edited prompt to be saved.
type PromptRequest struct {
	Prompt string `json:"prompt"`
}

// PromptResponse returns the stored custom prompt, if any.
type PromptResponse struct {
	Prompt  string `json:"prompt"`
	Default bool   `json:"default"`
}
