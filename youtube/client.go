package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"yt-summarizer/config"
	apperrors "yt-summarizer/errors"
)

// Client talks to YouTube's public caption and oembed endpoints. It is
// a thin adapter: one attempt per call, classified errors, no retries.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	config     config.YouTubeConfig
	log        *logrus.Logger
}

func NewClient(cfg config.YouTubeConfig, log *logrus.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.FetchTimeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerMinute)/60, 1),
		config:     cfg,
		log:        log,
	}
}

// Fragment is one timestamped caption unit.
type Fragment struct {
	StartMs    int64  `json:"start_ms"`
	DurationMs int64  `json:"duration_ms"`
	Text       string `json:"text"`
}

// timedtextResponse is the raw fmt=json3 caption payload.
type timedtextResponse struct {
	Events []timedtextEvent `json:"events"`
}

type timedtextEvent struct {
	TStartMs    int64              `json:"tStartMs"`
	DDurationMs int64              `json:"dDurationMs"`
	Segs        []timedtextSegment `json:"segs,omitempty"`
}

type timedtextSegment struct {
	UTF8 string `json:"utf8"`
}

// oembedResponse carries the subset of the oembed payload we use.
type oembedResponse struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
}

// FetchTitle resolves the video title via the oembed endpoint. A 4xx
// response means the video itself does not exist or is private.
func (c *Client) FetchTitle(ctx context.Context, videoID string) (string, error) {
	const op = "youtube.Client.FetchTitle"

	if videoID == "" {
		return "", apperrors.InvalidInput(op, nil, "video ID is required")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", apperrors.FetchFailed(op, err, "Request cancelled")
	}

	params := url.Values{}
	params.Set("url", "https://www.youtube.com/watch?v="+videoID)
	params.Set("format", "json")
	apiURL := fmt.Sprintf("%s?%s", c.config.OEmbedURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return "", apperrors.Internal(op, err, "Failed to build oembed request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.FetchFailed(op, errors.Wrap(err, "oembed request"), "Failed to reach YouTube")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest, http.StatusNotFound, http.StatusUnauthorized, http.StatusForbidden:
		return "", apperrors.VideoUnavailable(op, nil, "Video not found or unavailable")
	default:
		return "", apperrors.FetchFailed(op, nil,
			fmt.Sprintf("oembed returned status %d", resp.StatusCode))
	}

	var payload oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", apperrors.FetchFailed(op, errors.Wrap(err, "decode oembed response"), "Invalid response from YouTube")
	}

	if payload.Title == "" {
		// The original falls back to the video ID when no title is available.
		return videoID, nil
	}
	return payload.Title, nil
}

// FetchTranscript fetches the caption track for a video and returns its
// fragments in temporal order.
func (c *Client) FetchTranscript(ctx context.Context, videoID string) ([]Fragment, error) {
	const op = "youtube.Client.FetchTranscript"

	if videoID == "" {
		return nil, apperrors.InvalidInput(op, nil, "video ID is required")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperrors.FetchFailed(op, err, "Request cancelled")
	}

	params := url.Values{}
	params.Set("v", videoID)
	params.Set("lang", c.config.Language)
	params.Set("fmt", "json3")
	apiURL := fmt.Sprintf("%s?%s", c.config.TimedtextURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, apperrors.Internal(op, err, "Failed to build timedtext request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.FetchFailed(op, errors.Wrap(err, "timedtext request"), "Failed to reach YouTube")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusForbidden:
		return nil, apperrors.TranscriptsDisabled(op, nil, "Captions are disabled or unavailable for this video")
	case http.StatusTooManyRequests:
		return nil, apperrors.FetchFailed(op, nil, "Rate limited by YouTube")
	default:
		return nil, apperrors.FetchFailed(op, nil,
			fmt.Sprintf("timedtext returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.FetchFailed(op, errors.Wrap(err, "read timedtext response"), "Failed to read caption data")
	}

	// The endpoint answers 200 with an empty body when the video has no
	// caption track in the requested language.
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, apperrors.TranscriptsDisabled(op, nil, "Captions are disabled or unavailable for this video")
	}

	fragments, err := parseTimedtext(body)
	if err != nil {
		return nil, apperrors.FetchFailed(op, err, "Invalid caption data from YouTube")
	}

	if len(fragments) == 0 {
		return nil, apperrors.TranscriptsDisabled(op, nil, "Captions are disabled or unavailable for this video")
	}

	c.log.WithFields(logrus.Fields{
		"video_id":  videoID,
		"fragments": len(fragments),
	}).Debug("Fetched caption track")

	return fragments, nil
}

// Transcript fetches the caption track and joins it into a single text
// blob, preserving fragment order.
func (c *Client) Transcript(ctx context.Context, videoID string) (string, error) {
	fragments, err := c.FetchTranscript(ctx, videoID)
	if err != nil {
		return "", err
	}
	return JoinFragments(fragments), nil
}

func parseTimedtext(data []byte) ([]Fragment, error) {
	var resp timedtextResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, errors.Wrap(err, "unmarshal timedtext JSON")
	}

	var fragments []Fragment
	for _, event := range resp.Events {
		// Events without segments carry styling or window data.
		if len(event.Segs) == 0 {
			continue
		}

		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}

		line := strings.TrimSpace(text.String())
		if line == "" {
			continue
		}

		fragments = append(fragments, Fragment{
			StartMs:    event.TStartMs,
			DurationMs: event.DDurationMs,
			Text:       line,
		})
	}

	return fragments, nil
}

// JoinFragments concatenates fragment texts in their provided order
// with a newline separator.
func JoinFragments(fragments []Fragment) string {
	var sb strings.Builder
	for i, f := range fragments {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(f.Text)
	}
	return sb.String()
}
