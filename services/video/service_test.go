package video

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"

	"yt-summarizer/errors"
	"yt-summarizer/models"
	"yt-summarizer/validation"
	"yt-summarizer/youtube"
)

type fakeRepo struct {
	videos map[string]*models.Video
	saved  []*models.Video
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{videos: make(map[string]*models.Video)}
}

func (r *fakeRepo) Save(_ context.Context, v *models.Video) error {
	r.videos[v.VideoID] = v
	r.saved = append(r.saved, v)
	return nil
}

func (r *fakeRepo) Find(_ context.Context, id string) (*models.Video, error) {
	for _, v := range r.videos {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, errors.NotFound("fakeRepo.Find", nil, "Video not found")
}

func (r *fakeRepo) FindByVideoID(_ context.Context, videoID string) (*models.Video, error) {
	if v, ok := r.videos[videoID]; ok {
		return v, nil
	}
	return nil, errors.NotFound("fakeRepo.FindByVideoID", nil, "Video not found")
}

type fakeYouTube struct {
	title      string
	titleErr   error
	fragments  []youtube.Fragment
	fetchErr   error
	titleCalls int
	fetchCalls int
}

func (f *fakeYouTube) FetchTitle(_ context.Context, videoID string) (string, error) {
	f.titleCalls++
	if f.titleErr != nil {
		return "", f.titleErr
	}
	return f.title, nil
}

func (f *fakeYouTube) FetchTranscript(_ context.Context, videoID string) ([]youtube.Fragment, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.fragments, nil
}

func newTestService(repo *fakeRepo, yt *fakeYouTube) Service {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewService(repo, yt, validation.NewValidator(), log)
}

func TestFetchJoinsFragmentsInOrder(t *testing.T) {
	yt := &fakeYouTube{
		title: "A Talk",
		fragments: []youtube.Fragment{
			{StartMs: 0, Text: "first"},
			{StartMs: 1000, Text: "second"},
			{StartMs: 2000, Text: "third"},
		},
	}
	repo := newFakeRepo()
	svc := newTestService(repo, yt)

	video, err := svc.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if video.Transcript != "first\nsecond\nthird" {
		t.Errorf("fragments joined out of order: %q", video.Transcript)
	}
	if video.Title != "A Talk" {
		t.Errorf("expected title %q, got %q", "A Talk", video.Title)
	}
	if video.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("expected video ID dQw4w9WgXcQ, got %s", video.VideoID)
	}
	if !video.IsCompleted() {
		t.Errorf("expected completed status, got %s", video.Status)
	}
	if len(repo.saved) != 1 {
		t.Errorf("expected one save, got %d", len(repo.saved))
	}
}

func TestFetchInvalidURLSkipsYouTube(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"not a url", "not a url"},
		{"wrong host", "https://vimeo.com/12345"},
		{"short id", "https://youtu.be/abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yt := &fakeYouTube{}
			svc := newTestService(newFakeRepo(), yt)

			_, err := svc.Fetch(context.Background(), tt.url)
			if errors.KindOf(err) != errors.KindInvalidURL {
				t.Errorf("expected KindInvalidURL, got %v", err)
			}
			if yt.titleCalls != 0 || yt.fetchCalls != 0 {
				t.Error("YouTube should not be called for invalid URLs")
			}
		})
	}
}

func TestFetchUsesCache(t *testing.T) {
	repo := newFakeRepo()
	repo.videos["dQw4w9WgXcQ"] = &models.Video{
		ID:         "cached-id",
		VideoID:    "dQw4w9WgXcQ",
		Status:     models.StatusCompleted,
		Transcript: "cached transcript",
	}
	yt := &fakeYouTube{}
	svc := newTestService(repo, yt)

	video, err := svc.Fetch(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if video.ID != "cached-id" {
		t.Errorf("expected cached record, got %+v", video)
	}
	if yt.titleCalls != 0 || yt.fetchCalls != 0 {
		t.Error("cache hit should not hit the network")
	}
}

func TestFetchPropagatesDisabledTranscripts(t *testing.T) {
	yt := &fakeYouTube{
		title:    "No Captions Here",
		fetchErr: errors.TranscriptsDisabled("test", nil, "Transcripts are disabled for this video"),
	}
	repo := newFakeRepo()
	svc := newTestService(repo, yt)

	_, err := svc.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if errors.KindOf(err) != errors.KindTranscriptsDisabled {
		t.Errorf("expected KindTranscriptsDisabled, got %v", err)
	}

	// The failure is recorded, with the title that was already resolved.
	if len(repo.saved) != 1 {
		t.Fatalf("expected one failure record, got %d saves", len(repo.saved))
	}
	failed := repo.saved[0]
	if !failed.IsFailed() {
		t.Errorf("expected failed status, got %s", failed.Status)
	}
	if failed.Error == "" {
		t.Error("failure record should carry the error message")
	}
	if failed.Title != "No Captions Here" {
		t.Errorf("failure record should keep the resolved title, got %q", failed.Title)
	}
	if failed.Transcript != "" {
		t.Errorf("failure record should have no transcript, got %q", failed.Transcript)
	}
}

func TestFetchFailureDoesNotBlockRetry(t *testing.T) {
	repo := newFakeRepo()
	yt := &fakeYouTube{
		title:    "A Talk",
		fetchErr: errors.FetchFailed("test", nil, "Rate limited by YouTube"),
	}
	svc := newTestService(repo, yt)

	if _, err := svc.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ"); err == nil {
		t.Fatal("expected first fetch to fail")
	}

	// The recorded failure must not be served as a cache hit.
	yt.fetchErr = nil
	yt.fragments = []youtube.Fragment{{Text: "recovered"}}

	video, err := svc.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if !video.IsCompleted() || video.Transcript != "recovered" {
		t.Errorf("retry should replace the failure record: %+v", video)
	}
	if yt.fetchCalls != 2 {
		t.Errorf("expected the retry to hit the network, got %d calls", yt.fetchCalls)
	}
}

func TestFetchPropagatesUnavailableVideo(t *testing.T) {
	yt := &fakeYouTube{
		titleErr: errors.VideoUnavailable("test", nil, "Video is unavailable"),
	}
	repo := newFakeRepo()
	svc := newTestService(repo, yt)

	_, err := svc.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if errors.KindOf(err) != errors.KindVideoUnavailable {
		t.Errorf("expected KindVideoUnavailable, got %v", err)
	}
	if yt.fetchCalls != 0 {
		t.Error("transcript fetch should not run when the title lookup fails")
	}
	if len(repo.saved) != 1 || !repo.saved[0].IsFailed() {
		t.Errorf("expected a failure record, got %+v", repo.saved)
	}
}

func TestGet(t *testing.T) {
	repo := newFakeRepo()
	repo.videos["dQw4w9WgXcQ"] = &models.Video{ID: "some-id", VideoID: "dQw4w9WgXcQ"}
	svc := newTestService(repo, &fakeYouTube{})

	video, err := svc.Get(context.Background(), "some-id")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if video.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("unexpected record: %+v", video)
	}

	if _, err := svc.Get(context.Background(), ""); errors.KindOf(err) != errors.KindInvalidInput {
		t.Errorf("expected KindInvalidInput for empty ID, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "missing"); !errors.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}
