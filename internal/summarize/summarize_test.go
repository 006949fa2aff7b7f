// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/paper-brief/pkg/types"
)

// mockBackend records prompts and returns a canned response.
type mockBackend struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []Prompt
	deadline bool
}

func (m *mockBackend) Name() string { return "mock" }

func (m *mockBackend) Complete(ctx context.Context, p Prompt) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, p)
	_, m.deadline = ctx.Deadline()
	return m.response, m.err
}

func (m *mockBackend) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// memCache is an in-memory Cache.
type memCache struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	putErr error
	puts   int
}

func newMemCache() *memCache { return &memCache{data: map[string]string{}} }

func (c *memCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", false, c.getErr
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Put(_ context.Context, key, summary string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	if c.putErr != nil {
		return c.putErr
	}
	c.data[key] = summary
	return nil
}

const longAbstract = "We study liquid cooling of lithium-ion battery packs and report a 12 percent reduction in peak cell temperature."

func paperWithAbstract(abstract string) types.Paper {
	return types.Paper{ID: "W42", Title: "Cooling", Abstract: abstract}
}

func TestSummarizeShortAbstractReturnsSentinel(t *testing.T) {
	tests := []struct {
		name     string
		abstract string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t "},
		{"short", "Too short to summarize."},
		{"exactly forty characters", strings.Repeat("a", 40)},
		{"forty characters padded", "  " + strings.Repeat("b", 40) + "  "},
		{"forty multibyte runes", strings.Repeat("é", 40)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mb := &mockBackend{response: "should not be used"}
			s := New(mb, nil)

			got := s.Summarize(context.Background(), paperWithAbstract(tt.abstract))
			require.NotNil(t, got)
			assert.Equal(t, NoAbstractSentinel, *got)
			assert.Zero(t, mb.calls(), "backend must not be called")
		})
	}
}

func TestSummarizeCallsBackendAboveThreshold(t *testing.T) {
	mb := &mockBackend{response: "  A short summary.  \n"}
	s := New(mb, nil)

	got := s.Summarize(context.Background(), paperWithAbstract(strings.Repeat("a", 41)))
	require.NotNil(t, got)
	assert.Equal(t, "A short summary.", *got)
	assert.Equal(t, 1, mb.calls())
}

func TestSummarizePromptContents(t *testing.T) {
	mb := &mockBackend{response: "ok"}
	s := New(mb, nil)

	_ = s.Summarize(context.Background(), paperWithAbstract("  "+longAbstract+"  "))
	require.Equal(t, 1, mb.calls())

	p := mb.prompts[0]
	assert.Equal(t, Temperature, p.Temperature)
	assert.Contains(t, p.System, "ONLY")
	assert.Contains(t, p.System, "2-3")
	assert.Contains(t, p.User, "\"\"\"\n"+longAbstract+"\n\"\"\"")
	assert.Contains(t, p.User, FallbackSentence)
	assert.True(t, mb.deadline, "backend call should carry a deadline")
}

func TestSummarizeBackendErrorReturnsNilAndLogs(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	mb := &mockBackend{err: errors.New("rate limited")}
	s := New(mb, zap.New(core))

	got := s.Summarize(context.Background(), paperWithAbstract(longAbstract))
	assert.Nil(t, got)

	entries := logs.FilterMessage("summary unavailable").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "W42", fields["paper_id"])
	assert.Contains(t, fields["error"], "rate limited")
}

func TestSummarizeEmptyResponseReturnsNil(t *testing.T) {
	for _, resp := range []string{"", "   \n"} {
		mb := &mockBackend{response: resp}
		s := New(mb, nil)
		assert.Nil(t, s.Summarize(context.Background(), paperWithAbstract(longAbstract)))
	}
}

func TestGenerateWrapsSummaryUnavailable(t *testing.T) {
	s := New(&mockBackend{err: errors.New("boom")}, nil)
	_, err := s.generate(context.Background(), "W1", longAbstract)
	assert.ErrorIs(t, err, types.ErrSummaryUnavailable)
}

func TestSummarizeCachedSummary(t *testing.T) {
	cache := newMemCache()
	mb := &mockBackend{response: "Cached summary."}
	s := New(mb, nil, WithCache(cache))

	p := paperWithAbstract(longAbstract)
	first := s.Summarize(context.Background(), p)
	second := s.Summarize(context.Background(), p)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)
	assert.Equal(t, 1, mb.calls(), "second call should be served from cache")
	assert.Equal(t, 1, cache.puts)
}

func TestSummarizeDoesNotCacheFailures(t *testing.T) {
	cache := newMemCache()
	s := New(&mockBackend{err: errors.New("down")}, nil, WithCache(cache))

	assert.Nil(t, s.Summarize(context.Background(), paperWithAbstract(longAbstract)))
	assert.Zero(t, cache.puts)

	s = New(&mockBackend{response: ""}, nil, WithCache(cache))
	assert.Nil(t, s.Summarize(context.Background(), paperWithAbstract(longAbstract)))
	assert.Zero(t, cache.puts)
}

func TestSummarizeCacheErrorsAreNotFatal(t *testing.T) {
	cache := newMemCache()
	cache.getErr = errors.New("read failed")
	cache.putErr = errors.New("write failed")
	core, logs := observer.New(zapcore.WarnLevel)
	mb := &mockBackend{response: "Still works."}
	s := New(mb, zap.New(core), WithCache(cache))

	got := s.Summarize(context.Background(), paperWithAbstract(longAbstract))
	require.NotNil(t, got)
	assert.Equal(t, "Still works.", *got)
	assert.Equal(t, 1, logs.FilterMessage("summary cache read failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("summary cache write failed").Len())
}

func TestCacheKey(t *testing.T) {
	base := cacheKey("mock", "W1", "abstract")
	assert.True(t, strings.HasPrefix(base, "summary:"))
	assert.Equal(t, base, cacheKey("mock", "W1", "abstract"))
	assert.NotEqual(t, base, cacheKey("other", "W1", "abstract"))
	assert.NotEqual(t, base, cacheKey("mock", "W2", "abstract"))
	assert.NotEqual(t, base, cacheKey("mock", "W1", "changed"))
}

func TestWithTimeout(t *testing.T) {
	s := New(&mockBackend{}, nil, WithTimeout(5*time.Second))
	assert.Equal(t, 5*time.Second, s.timeout)

	s = New(&mockBackend{}, nil, WithTimeout(0))
	assert.Equal(t, DefaultTimeout, s.timeout)
}

func TestNewBackend(t *testing.T) {
	ctx := context.Background()

	_, err := NewBackend(ctx, types.SummaryConfig{Provider: types.ProviderOpenAI})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = NewBackend(ctx, types.SummaryConfig{APIKey: "  "})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	b, err := NewBackend(ctx, types.SummaryConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "openai:"+DefaultOpenAIModel, b.Name())

	b, err = NewBackend(ctx, types.SummaryConfig{APIKey: "k", Provider: types.ProviderOpenAI, Model: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.Equal(t, "openai:gpt-4o-mini", b.Name())

	_, err = NewBackend(ctx, types.SummaryConfig{APIKey: "k", Provider: "cohere"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported summary provider")
}
