package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Completer turns a prompt into raw model text. Implementations should
// honour ctx for cancellation and timeouts.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// StatusError is returned when the model server replies with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("model server returned status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("model server returned status %d", e.StatusCode)
}

// OllamaCompleter calls the native Ollama /api/generate endpoint with JSON
// output mode and streaming disabled.
type OllamaCompleter struct {
	url    string // e.g. "http://localhost:11434"
	model  string // e.g. "llama3.1"
	client *http.Client
}

var _ Completer = (*OllamaCompleter)(nil)

func NewOllamaCompleter(url, model string, client *http.Client) *OllamaCompleter {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &OllamaCompleter{url: url, model: model, client: client}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format"`
}

type generateResponse struct {
	Response json.RawMessage `json:"response"`
}

// Complete sends a single non-streaming generate request.
func (c *OllamaCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Format: "json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode model response: %w", err)
	}
	return responseText(out.Response)
}

// responseText unwraps the "response" field. Ollama sends a string; some
// compatible servers inline the JSON object itself.
func responseText(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", errors.New("model response has no response field")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("failed to decode response text: %w", err)
		}
		return s, nil
	}
	return string(raw), nil
}
