// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/pdiddy/paper-brief/internal/httputil"
	"github.com/pdiddy/paper-brief/pkg/types"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiBackend calls the Google Gen AI API. The system prompt travels as
// the system instruction and the user prompt as the only content turn.
type GeminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiBackend builds a GeminiBackend from the summary configuration.
// cfg.BaseURL, when set, overrides the API endpoint.
func NewGeminiBackend(ctx context.Context, cfg types.SummaryConfig) (*GeminiBackend, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httputil.NewClient(cfg.HTTPConfig),
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating GenAI client: %w", err)
	}
	return &GeminiBackend{client: client, model: model}, nil
}

// Name returns the backend identifier.
func (g *GeminiBackend) Name() string { return "gemini:" + g.model }

// Complete generates one response and returns its text.
func (g *GeminiBackend) Complete(ctx context.Context, p Prompt) (string, error) {
	temperature := p.Temperature
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(p.User),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(p.System, genai.RoleUser),
			Temperature:       &temperature,
			CandidateCount:    1,
		})
	if err != nil {
		return "", fmt.Errorf("calling GenAI API: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("GenAI API returned no candidates")
	}
	return resp.Text(), nil
}
