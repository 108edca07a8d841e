package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"yt-summarizer/config"
	apperrors "yt-summarizer/errors"
)

// Client talks to a locally running Ollama server. Calls are single
// blocking requests with no streaming and no retries.
type Client struct {
	host       string
	httpClient *http.Client
	log        *logrus.Logger
}

func NewClient(cfg config.OllamaConfig, log *logrus.Logger) *Client {
	return &Client{
		host:       strings.TrimRight(cfg.Host, "/"),
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		log:        log,
	}
}

// Model describes a model installed on the server.
type Model struct {
	Name       string       `json:"name"`
	Size       int64        `json:"size"`
	ModifiedAt string       `json:"modified_at"`
	Details    ModelDetails `json:"details"`
}

type ModelDetails struct {
	Family        string `json:"family"`
	ParameterSize string `json:"parameter_size"`
}

type tagsResponse struct {
	Models []Model `json:"models"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatResponse struct {
	Message message `json:"message"`
	Done    bool    `json:"done"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ListModels returns the models installed on the server.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	const op = "ollama.Client.ListModels"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/api/tags", nil)
	if err != nil {
		return nil, apperrors.Internal(op, err, "Failed to build model list request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.ServerUnreachable(op, errors.Wrap(err, "list models"),
			"Model server is not reachable; make sure Ollama is running")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.InferenceFailed(op, nil,
			fmt.Sprintf("model server returned status %d", resp.StatusCode))
	}

	var payload tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.InferenceFailed(op, errors.Wrap(err, "decode tags response"),
			"Invalid response from model server")
	}

	return payload.Models, nil
}

// Generate submits a single prompt to the given model and returns the
// generated text.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	const op = "ollama.Client.Generate"

	if model == "" {
		return "", apperrors.InvalidInput(op, nil, "model name is required")
	}

	body, err := json.Marshal(chatRequest{
		Model:    model,
		Messages: []message{{Role: "user", Content: prompt}},
		Stream:   false,
	})
	if err != nil {
		return "", apperrors.Internal(op, err, "Failed to encode chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", apperrors.Internal(op, err, "Failed to build chat request")
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.WithFields(logrus.Fields{
		"model":         model,
		"prompt_length": len(prompt),
	}).Info("Submitting prompt to model server")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.ServerUnreachable(op, errors.Wrap(err, "chat request"),
			"Model server is not reachable; make sure Ollama is running")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", classifyStatus(op, resp)
	}

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", apperrors.InferenceFailed(op, errors.Wrap(err, "decode chat response"),
			"Invalid response from model server")
	}

	content := strings.TrimSpace(payload.Message.Content)
	if content == "" {
		return "", apperrors.InferenceFailed(op, nil, "Empty response from model")
	}

	return content, nil
}

func classifyStatus(op string, resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	var payload errorResponse
	serverMsg := ""
	if json.Unmarshal(data, &payload) == nil {
		serverMsg = payload.Error
	}

	if resp.StatusCode == http.StatusNotFound || strings.Contains(serverMsg, "not found") {
		msg := "Selected model is not installed on the server"
		if serverMsg != "" {
			msg = serverMsg
		}
		return apperrors.ModelNotFound(op, nil, msg)
	}

	msg := fmt.Sprintf("model server returned status %d", resp.StatusCode)
	if serverMsg != "" {
		msg = serverMsg
	}
	return apperrors.InferenceFailed(op, nil, msg)
}
