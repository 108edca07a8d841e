package validation

import (
	"net/url"
	"regexp"
	"strings"

	"yt-summarizer/errors"
)

// videoIDPattern matches a canonical YouTube video identifier.
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateURL performs basic shape validation before extraction.
func (v *Validator) ValidateURL(urlStr string) error {
	const op = "Validator.ValidateURL"

	urlStr = strings.TrimSpace(urlStr)
	if urlStr == "" {
		return errors.InvalidURL(op, nil, "URL is required")
	}

	// A bare canonical identifier is accepted as-is.
	if videoIDPattern.MatchString(urlStr) {
		return nil
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return errors.InvalidURL(op, err, "Invalid URL format")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.InvalidURL(op, nil, "URL must use HTTP or HTTPS")
	}

	host := parsedURL.Hostname()
	if !isYouTubeHost(host) {
		return errors.InvalidURL(op, nil, "Only YouTube URLs are supported")
	}

	return nil
}

// ExtractVideoID normalizes any accepted URL shape to the canonical
// 11-character video identifier. Extraction is pure: the same input
// always yields the same identifier.
func (v *Validator) ExtractVideoID(urlStr string) (string, error) {
	const op = "Validator.ExtractVideoID"

	urlStr = strings.TrimSpace(urlStr)
	if urlStr == "" {
		return "", errors.InvalidURL(op, nil, "URL is required")
	}

	if videoIDPattern.MatchString(urlStr) {
		return urlStr, nil
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", errors.InvalidURL(op, err, "Invalid URL format")
	}

	host := parsedURL.Hostname()
	if !isYouTubeHost(host) {
		return "", errors.InvalidURL(op, nil, "Only YouTube URLs are supported")
	}

	var id string
	switch {
	case strings.ToLower(host) == "youtu.be":
		id = firstPathSegment(parsedURL.Path)
	case parsedURL.Path == "/watch":
		id = parsedURL.Query().Get("v")
	default:
		id = idFromPath(parsedURL.Path)
	}

	if !videoIDPattern.MatchString(id) {
		return "", errors.InvalidURL(op, nil, "Could not extract a video ID from the URL")
	}

	return id, nil
}

func isYouTubeHost(host string) bool {
	host = strings.ToLower(host)
	return host == "youtu.be" ||
		host == "youtube.com" ||
		strings.HasSuffix(host, ".youtube.com") ||
		host == "youtube-nocookie.com" ||
		strings.HasSuffix(host, ".youtube-nocookie.com")
}

func firstPathSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	return path
}

// idFromPath handles the /embed/<id>, /shorts/<id>, /live/<id> and
// /v/<id> shapes.
func idFromPath(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) != 2 {
		return ""
	}
	switch segments[0] {
	case "embed", "shorts", "live", "v":
		return segments[1]
	}
	return ""
}
