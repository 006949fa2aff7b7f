// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/paper-brief/internal/cache"
	"github.com/pdiddy/paper-brief/internal/enrich"
	"github.com/pdiddy/paper-brief/internal/search"
	"github.com/pdiddy/paper-brief/internal/summarize"
	"github.com/pdiddy/paper-brief/pkg/types"
)

// buildPipeline wires the search adapter, the optional summarizer with its
// cache, and the orchestrator. The returned cleanup releases the cache.
func buildPipeline(ctx context.Context, cfg types.Config, withSummary bool, logger *zap.Logger) (*enrich.Orchestrator, func(), error) {
	cleanup := func() {}
	searcher := search.NewOpenAlex(cfg.Search, logger)

	var summarizer enrich.Summarizer
	if withSummary {
		backend, err := summarize.NewBackend(ctx, cfg.Summary)
		if err != nil {
			return nil, cleanup, fmt.Errorf("configuring summarizer: %w", err)
		}

		opts := []summarize.Option{summarize.WithTimeout(cfg.Summary.Timeout)}
		store, err := cache.Open(ctx, cfg.Cache)
		if err != nil {
			return nil, cleanup, fmt.Errorf("opening summary cache: %w", err)
		}
		if store != nil {
			opts = append(opts, summarize.WithCache(store))
			cleanup = func() {
				if err := store.Close(); err != nil {
					logger.Warn("closing summary cache", zap.Error(err))
				}
			}
			logger.Info("summary cache enabled", zap.String("backend", string(cfg.Cache.Backend)))
		}

		summarizer = summarize.New(backend, logger, opts...)
		logger.Info("summarizer ready", zap.String("backend", backend.Name()))
	}

	orch := enrich.New(searcher, summarizer, logger,
		enrich.WithLimit(cfg.Search.MaxResults),
		enrich.WithConcurrency(cfg.Summary.Concurrency))
	return orch, cleanup, nil
}
