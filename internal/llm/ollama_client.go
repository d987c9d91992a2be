// ABOUTME: Ollama HTTP client for completions and model management
// ABOUTME: Generate never returns an error to callers; failures carry a fallback reply
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultOllamaURL is the standard local Ollama endpoint.
	DefaultOllamaURL = "http://localhost:11434"
	// DefaultGenerateTimeout bounds one completion request.
	DefaultGenerateTimeout = 60 * time.Second
	// DefaultPullTimeout bounds a model download.
	DefaultPullTimeout = 5 * time.Minute
)

// ClientConfig holds configuration for the Ollama client.
type ClientConfig struct {
	BaseURL         string
	Model           string
	GenerateTimeout time.Duration
	PullTimeout     time.Duration
}

// DefaultConfig returns the default client configuration. An empty model
// defers to the RAM-based recommendation at request time.
func DefaultConfig(baseURL string) *ClientConfig {
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}
	return &ClientConfig{
		BaseURL:         baseURL,
		GenerateTimeout: DefaultGenerateTimeout,
		PullTimeout:     DefaultPullTimeout,
	}
}

// Client talks to a local Ollama server.
type Client struct {
	baseURL         string
	model           string
	generateTimeout time.Duration
	pullTimeout     time.Duration
	httpClient      *http.Client
}

// NewClient creates a Client with the given configuration. A nil config uses
// the defaults.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig("")
	}
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}
	generateTimeout := config.GenerateTimeout
	if generateTimeout <= 0 {
		generateTimeout = DefaultGenerateTimeout
	}
	pullTimeout := config.PullTimeout
	if pullTimeout <= 0 {
		pullTimeout = DefaultPullTimeout
	}

	return &Client{
		baseURL:         baseURL,
		model:           config.Model,
		generateTimeout: generateTimeout,
		pullTimeout:     pullTimeout,
		httpClient:      &http.Client{},
	}
}

// CompletionResult is the outcome of one Generate call. When Success is
// false, FallbackResponse carries a canned reply the caller can surface
// instead of an error page.
type CompletionResult struct {
	Success          bool    `json:"success"`
	Response         string  `json:"response,omitempty"`
	ModelUsed        string  `json:"model_used,omitempty"`
	ProcessingTime   float64 `json:"processing_time,omitempty"`
	ContextUsed      bool    `json:"context_used"`
	Error            string  `json:"error,omitempty"`
	FallbackResponse string  `json:"fallback_response,omitempty"`
}

type generateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate runs one completion. The context string is the assembled user
// context; model overrides the configured default when non-empty. Transport
// failures, timeouts, and non-200 responses all produce an unsuccessful
// result with a keyword fallback reply rather than an error.
func (c *Client) Generate(ctx context.Context, message, userContext, model string) CompletionResult {
	if model == "" {
		model = c.model
	}
	if model == "" {
		model = RecommendedModel()
	}

	prompt := buildPrompt(message, userContext)
	body, err := json.Marshal(generateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
		Options: map[string]interface{}{
			"temperature": 0.7,
			"top_p":       0.9,
			"top_k":       40,
		},
	})
	if err != nil {
		return c.failure(message, userContext, fmt.Sprintf("encode request: %v", err))
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.generateTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return c.failure(message, userContext, fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if reqCtx.Err() == context.DeadlineExceeded {
			return c.failure(message, userContext, "request timed out")
		}
		return c.failure(message, userContext, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return c.failure(message, userContext, fmt.Sprintf("ollama API error: HTTP %d", resp.StatusCode))
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return c.failure(message, userContext, fmt.Sprintf("decode response: %v", err))
	}

	return CompletionResult{
		Success:        true,
		Response:       strings.TrimSpace(decoded.Response),
		ModelUsed:      model,
		ProcessingTime: time.Since(start).Seconds(),
		ContextUsed:    userContext != "",
	}
}

func (c *Client) failure(message, userContext, reason string) CompletionResult {
	return CompletionResult{
		Success:          false,
		ContextUsed:      userContext != "",
		Error:            reason,
		FallbackResponse: fallbackResponse(message),
	}
}

// ServerStatus describes whether Ollama is reachable and what it has pulled.
type ServerStatus struct {
	Status           string   `json:"status"`
	Available        bool     `json:"available"`
	Models           []string `json:"models,omitempty"`
	RecommendedModel string   `json:"recommended_model,omitempty"`
	Error            string   `json:"error,omitempty"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Status checks the Ollama server and lists its installed models. Unreachable
// or erroring servers are reported in the result, not as an error.
func (c *Client) Status(ctx context.Context) ServerStatus {
	reqCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return ServerStatus{Status: "error", Error: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ServerStatus{Status: "not_running", Error: "ollama not running"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return ServerStatus{Status: "error", Error: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return ServerStatus{Status: "error", Error: err.Error()}
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return ServerStatus{
		Status:           "running",
		Available:        true,
		Models:           names,
		RecommendedModel: RecommendedModel(),
	}
}

type modelRequest struct {
	Name string `json:"name"`
}

// PullModel downloads a model. Downloads are slow, so this uses the pull
// timeout rather than the generate timeout.
func (c *Client) PullModel(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	return c.modelOp(ctx, http.MethodPost, "/api/pull", name, c.pullTimeout)
}

// DeleteModel removes a pulled model from the Ollama server.
func (c *Client) DeleteModel(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	return c.modelOp(ctx, http.MethodDelete, "/api/delete", name, 30*time.Second)
}

func (c *Client) modelOp(ctx context.Context, method, path, name string, timeout time.Duration) error {
	body, err := json.Marshal(modelRequest{Name: name})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s %s: HTTP %d", method, path, resp.StatusCode)
	}
	return nil
}
