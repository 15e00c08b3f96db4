// Package genai integrates the external generative-model service:
// the transport client, the batched issue extractor, and the colocated
// coverage/documentation heuristics.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"codeinsight/src/config"
	"codeinsight/src/model"
	"codeinsight/src/util"
)

// TextGenerator is the single operation the pipeline needs from the
// external model. Failures of any kind (auth, quota, network) surface as
// one error; callers degrade locally rather than propagating it.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Client calls the generative-model HTTP endpoint with retry/backoff.
// A missing API key does not prevent construction; Enabled reports the
// credential state so callers can skip model passes entirely.
type Client struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
	retryConf  config.RetryConfig
}

// NewClient creates a new generative-model client. The API key is read
// from the environment variable named in the config.
func NewClient(cfg config.GenAIConfig) *Client {
	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		util.Warn("No API key in %s; model-assisted analysis disabled", cfg.APIKeyEnv)
	}

	return &Client{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		retryConf: cfg.Retry,
	}
}

// Enabled reports whether the client holds credentials
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// GenerateText sends a prompt and returns the model's raw text reply
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", &model.ExternalServiceError{Op: "generate", Err: fmt.Errorf("no credentials")}
	}

	req := generateRequest{Model: c.model, Prompt: prompt}

	var resp generateResponse
	if err := c.post(ctx, req, &resp); err != nil {
		return "", &model.ExternalServiceError{Op: "generate", Err: err}
	}

	return resp.Text, nil
}

func (c *Client) post(ctx context.Context, body any, result any) error {
	var lastErr error

	for attempt := 0; attempt <= c.retryConf.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := c.calculateBackoff(attempt)
			util.Warn("Retrying model call (attempt %d/%d) after %v", attempt+1, c.retryConf.MaxAttempts, delay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := c.doPost(ctx, body, result)
		if err == nil {
			return nil
		}

		lastErr = err
		if !c.shouldRetry(err) {
			break
		}
	}

	return lastErr
}

func (c *Client) doPost(ctx context.Context, body any, result any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	delay := float64(c.retryConf.InitialDelay)
	for i := 0; i < attempt; i++ {
		delay *= c.retryConf.BackoffFactor
	}
	if delay > float64(c.retryConf.MaxDelay) {
		delay = float64(c.retryConf.MaxDelay)
	}
	return time.Duration(delay)
}

func (c *Client) shouldRetry(err error) bool {
	if apiErr, ok := err.(*APIError); ok {
		for _, code := range c.retryConf.RetryOnStatus {
			if apiErr.StatusCode == code {
				return true
			}
		}
	}
	return false
}

// APIError represents an error response from the model service
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("model service error (status %d): %s", e.StatusCode, e.Body)
}
