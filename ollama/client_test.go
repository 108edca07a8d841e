package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"yt-summarizer/config"
	"yt-summarizer/errors"
)

func newTestClient(host string) *Client {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewClient(config.OllamaConfig{
		Host:           host,
		RequestTimeout: 5 * time.Second,
	}, log)
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("expected /api/tags, got %s", r.URL.Path)
		}
		w.Write([]byte(`{"models": [
			{"name": "llama3.2:latest", "size": 2019393189, "details": {"family": "llama", "parameter_size": "3.2B"}},
			{"name": "mistral:latest", "size": 4113301824, "details": {"family": "llama", "parameter_size": "7.2B"}}
		]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	models, err := client.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels failed: %v", err)
	}

	if len(models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(models))
	}
	if models[0].Name != "llama3.2:latest" {
		t.Errorf("expected llama3.2:latest, got %s", models[0].Name)
	}
	if models[1].Details.ParameterSize != "7.2B" {
		t.Errorf("expected parameter size 7.2B, got %s", models[1].Details.ParameterSize)
	}
}

func TestListModelsServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.ListModels(context.Background())
	if !errors.Is(err, errors.KindServerUnreachable) {
		t.Errorf("expected server unreachable, got %v", err)
	}
}

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("expected /api/chat, got %s", r.URL.Path)
		}

		var req struct {
			Model    string `json:"model"`
			Stream   bool   `json:"stream"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Model != "llama3.2" {
			t.Errorf("expected model llama3.2, got %s", req.Model)
		}
		if req.Stream {
			t.Error("stream must be disabled")
		}
		if len(req.Messages) != 1 || req.Messages[0].Content != "summarize this" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		w.Write([]byte(`{"message": {"role": "assistant", "content": "a summary"}, "done": true}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	text, err := client.Generate(context.Background(), "llama3.2", "summarize this")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if text != "a summary" {
		t.Errorf("Generate = %q, want %q", text, "a summary")
	}
}

func TestGenerateServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Generate(context.Background(), "llama3.2", "prompt")
	if !errors.Is(err, errors.KindServerUnreachable) {
		t.Errorf("expected server unreachable, got %v", err)
	}
}

func TestGenerateModelNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "model 'missing:latest' not found"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Generate(context.Background(), "missing:latest", "prompt")
	if !errors.Is(err, errors.KindModelNotFound) {
		t.Errorf("expected model not found, got %v", err)
	}
}

func TestGenerateInferenceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "something broke"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Generate(context.Background(), "llama3.2", "prompt")
	if !errors.Is(err, errors.KindInferenceFailed) {
		t.Errorf("expected inference failure, got %v", err)
	}
}

func TestGenerateEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": {"role": "assistant", "content": "  "}, "done": true}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Generate(context.Background(), "llama3.2", "prompt")
	if !errors.Is(err, errors.KindInferenceFailed) {
		t.Errorf("expected inference failure on empty content, got %v", err)
	}
}
