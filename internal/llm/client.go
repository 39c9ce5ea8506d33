// Package llm talks to a local Ollama-compatible language model over HTTP.
//
// The pipeline uses the model as a noisy oracle: every answer is parsed
// defensively and a failed or unparseable response causes the record to be
// skipped, never the run to abort.
package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// Generator is the narrow interface the pipeline stages depend on; tests
// substitute a canned implementation.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client calls the /api/generate endpoint of a local model server.
type Client struct {
	endpoint string
	model    string
	delay    time.Duration
	http     *http.Client
}

// New returns a client for the given endpoint (e.g. http://localhost:11434)
// and model name. delay is slept after every request so a long batch does
// not saturate the local server.
func New(endpoint, model string, delay, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		model:    model,
		delay:    delay,
		http:     &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate sends one prompt and returns the raw model text. The configured
// delay is applied after the request, success or not.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	defer func() {
		if c.delay > 0 {
			time.Sleep(c.delay)
		}
	}()

	body, err := json.Marshal(generateRequest{Model: c.model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("POST %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("POST %s: status %d", c.endpoint, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var gr generateResponse
	if err := json.Unmarshal(data, &gr); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	return gr.Response, nil
}
