// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/paper-brief/internal/httputil"
	"github.com/pdiddy/paper-brief/pkg/types"
)

// openAIDefaultBaseURL is the OpenAI-compatible endpoint used when no base
// URL is configured. Package-level var for test substitution.
var openAIDefaultBaseURL = "https://api.groq.com/openai/v1"

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "llama-3.1-8b-instant"

// OpenAIBackend calls an OpenAI-compatible chat completions API.
type OpenAIBackend struct {
	APIKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

// NewOpenAIBackend builds an OpenAIBackend from the summary configuration.
func NewOpenAIBackend(cfg types.SummaryConfig) *OpenAIBackend {
	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIBackend{
		APIKey:  cfg.APIKey,
		Model:   model,
		BaseURL: cfg.BaseURL,
		Client:  httputil.NewClient(cfg.HTTPConfig),
	}
}

// chatRequest is the request body for the chat completions API.
type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float32       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

// chatMessage is a single message in the conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the chat completions response we read.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Name returns the backend identifier.
func (c *OpenAIBackend) Name() string { return "openai:" + c.Model }

// Complete sends the system and user messages and returns the first
// choice's content.
func (c *OpenAIBackend) Complete(ctx context.Context, p Prompt) (string, error) {
	reqBody := chatRequest{
		Model:       c.Model,
		Temperature: p.Temperature,
		Messages: []chatMessage{
			{Role: "system", Content: p.System},
			{Role: "user", Content: p.User},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	client := c.Client
	if client == nil {
		client = httputil.NewClient(types.HTTPConfig{})
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling chat completions API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completions API returned %d: %s", resp.StatusCode, httputil.Snippet(resp.Body))
	}

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding chat completions response: %w", err)
	}
	if len(cResp.Choices) == 0 {
		return "", fmt.Errorf("chat completions API returned no choices")
	}
	return cResp.Choices[0].Message.Content, nil
}

func (c *OpenAIBackend) endpoint() string {
	base := c.BaseURL
	if base == "" {
		base = openAIDefaultBaseURL
	}
	return strings.TrimRight(base, "/") + "/chat/completions"
}
