// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize produces short abstract-based summaries with a
// text-generation backend. Summaries are best effort: any failure is logged
// and the paper simply gets no summary.
package summarize

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pdiddy/paper-brief/internal/logging"
	"github.com/pdiddy/paper-brief/pkg/types"
)

// NoAbstractSentinel is returned, without calling the backend, when a paper
// has no usable abstract.
const NoAbstractSentinel = "No abstract found in the paper metadata."

// MinAbstractLength is the largest trimmed abstract length (in characters)
// that is still treated as no abstract.
const MinAbstractLength = 40

// DefaultTimeout bounds one backend call when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// ErrMissingAPIKey is returned when a backend is built without a credential.
var ErrMissingAPIKey = errors.New("text-generation API key is not set")

// Backend abstracts the text-generation API so tests can supply a mock.
type Backend interface {
	// Name identifies the backend and model (e.g. "openai:llama-3.1-8b-instant").
	Name() string

	// Complete sends one prompt and returns the first generated text.
	Complete(ctx context.Context, p Prompt) (string, error)
}

// Cache stores generated summaries between requests.
type Cache interface {
	Get(ctx context.Context, key string) (summary string, ok bool, err error)
	Put(ctx context.Context, key, summary string) error
}

// Summarizer turns a paper's abstract into a short summary.
type Summarizer struct {
	backend Backend
	cache   Cache
	logger  *zap.Logger
	timeout time.Duration
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithCache stores successful summaries in c and serves repeats from it.
func WithCache(c Cache) Option {
	return func(s *Summarizer) { s.cache = c }
}

// WithTimeout bounds each backend call.
func WithTimeout(d time.Duration) Option {
	return func(s *Summarizer) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New returns a Summarizer that calls backend.
func New(backend Backend, logger *zap.Logger, opts ...Option) *Summarizer {
	s := &Summarizer{
		backend: backend,
		logger:  logging.OrNop(logger),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize returns a summary of p's abstract, the NoAbstractSentinel when
// the abstract is too short to summarize, or nil when generation failed or
// produced no text. It never returns an error; failures are logged with the
// paper ID.
func (s *Summarizer) Summarize(ctx context.Context, p types.Paper) *string {
	abstract := strings.TrimSpace(p.Abstract)
	if utf8.RuneCountInString(abstract) <= MinAbstractLength {
		sentinel := NoAbstractSentinel
		return &sentinel
	}

	text, err := s.generate(ctx, p.ID, abstract)
	if err != nil {
		s.logger.Warn("summary unavailable",
			zap.String("paper_id", p.ID),
			zap.String("backend", s.backend.Name()),
			zap.Error(err))
		return nil
	}
	if text == "" {
		s.logger.Debug("backend returned empty summary", zap.String("paper_id", p.ID))
		return nil
	}
	return &text
}

// generate produces the trimmed completion for abstract. Errors wrap
// types.ErrSummaryUnavailable; empty text is not an error.
func (s *Summarizer) generate(ctx context.Context, paperID, abstract string) (string, error) {
	key := cacheKey(s.backend.Name(), paperID, abstract)
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			s.logger.Warn("summary cache read failed", zap.String("paper_id", paperID), zap.Error(err))
		case ok:
			s.logger.Debug("summary cache hit", zap.String("paper_id", paperID))
			return cached, nil
		}
	}

	prompt, err := BuildPrompt(abstract)
	if err != nil {
		return "", fmt.Errorf("%w: rendering prompt: %v", types.ErrSummaryUnavailable, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.backend.Complete(callCtx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrSummaryUnavailable, err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", nil
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, key, out); err != nil {
			s.logger.Warn("summary cache write failed", zap.String("paper_id", paperID), zap.Error(err))
		}
	}
	return out, nil
}

// cacheKey derives a stable key from backend, paper ID, and abstract so a
// changed abstract or model never serves a stale summary.
func cacheKey(backend, paperID, abstract string) string {
	h := sha256.New()
	h.Write([]byte(backend))
	h.Write([]byte{0})
	h.Write([]byte(paperID))
	h.Write([]byte{0})
	h.Write([]byte(abstract))
	return fmt.Sprintf("summary:%x", h.Sum(nil))
}

// NewBackend builds the backend selected by cfg.Provider.
func NewBackend(ctx context.Context, cfg types.SummaryConfig) (Backend, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	switch cfg.Provider {
	case types.ProviderOpenAI, "":
		return NewOpenAIBackend(cfg), nil
	case types.ProviderGemini:
		b, err := NewGeminiBackend(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported summary provider %q: use openai or gemini", cfg.Provider)
	}
}
