// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich runs the search, cite, and summarize pipeline for one
// query and returns the enriched papers in search order.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/paper-brief/internal/cite"
	"github.com/pdiddy/paper-brief/internal/logging"
	"github.com/pdiddy/paper-brief/pkg/types"
)

// DefaultConcurrency bounds per-paper enrichment when none is configured.
const DefaultConcurrency = 4

// DefaultLimit is the number of candidates requested when none is configured.
const DefaultLimit = 8

// Searcher finds candidate papers for a query.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]types.Paper, error)
}

// Summarizer produces an optional summary for one paper. It never fails;
// a nil result means no summary.
type Summarizer interface {
	Summarize(ctx context.Context, p types.Paper) *string
}

// Orchestrator enriches search results. It holds no per-request state and
// is safe for concurrent use.
type Orchestrator struct {
	searcher    Searcher
	summarizer  Summarizer
	logger      *zap.Logger
	limit       int
	concurrency int
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLimit sets how many candidates are requested from the searcher.
func WithLimit(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.limit = n
		}
	}
}

// WithConcurrency bounds how many papers are enriched at once.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// New returns an Orchestrator. A nil summarizer leaves every summary nil.
func New(searcher Searcher, summarizer Summarizer, logger *zap.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		searcher:    searcher,
		summarizer:  summarizer,
		logger:      logging.OrNop(logger),
		limit:       DefaultLimit,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Handle searches once for query and enriches every result. An empty query
// returns types.ErrInvalidRequest without searching. A search failure
// aborts the whole request with an error wrapping
// types.ErrSearchUnavailable; a summary failure only drops that summary.
func (o *Orchestrator) Handle(ctx context.Context, query string) ([]types.EnrichedPaper, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is empty", types.ErrInvalidRequest)
	}

	start := time.Now()
	papers, err := o.searcher.Search(ctx, query, o.limit)
	if err != nil {
		if errors.Is(err, types.ErrSearchUnavailable) || errors.Is(err, types.ErrInvalidRequest) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", types.ErrSearchUnavailable, err)
	}
	o.logger.Debug("search complete",
		zap.String("query", query),
		zap.Int("results", len(papers)),
		zap.Duration("elapsed", time.Since(start)))

	enriched := make([]types.EnrichedPaper, len(papers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, p := range papers {
		g.Go(func() error {
			enriched[i] = o.enrichOne(gctx, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	o.logger.Info("query enriched",
		zap.String("query", query),
		zap.Int("papers", len(enriched)),
		zap.Int("summarized", countSummaries(enriched)),
		zap.Duration("elapsed", time.Since(start)))
	return enriched, nil
}

func (o *Orchestrator) enrichOne(ctx context.Context, p types.Paper) types.EnrichedPaper {
	ep := types.EnrichedPaper{
		Paper:          p,
		APACitation:    cite.APA(p),
		BibTeXCitation: cite.BibTeX(p),
	}
	if o.summarizer != nil {
		ep.Summary = o.summarize(ctx, p)
	}
	return ep
}

// summarize runs the summarizer on a worker goroutine, where a panic would
// take down the process; a recovered panic leaves the summary nil.
func (o *Orchestrator) summarize(ctx context.Context, p types.Paper) (summary *string) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("summarizer panicked",
				zap.String("paper_id", p.ID),
				zap.Any("panic", r))
			summary = nil
		}
	}()
	return o.summarizer.Summarize(ctx, p)
}

func countSummaries(papers []types.EnrichedPaper) int {
	n := 0
	for _, p := range papers {
		if p.Summary != nil {
			n++
		}
	}
	return n
}
