// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/paper-brief/pkg/types"
)

// DefaultTimeout is used when an HTTPConfig leaves Timeout unset.
const DefaultTimeout = 15 * time.Second

// SnippetLimit is the number of body bytes kept for diagnostics.
const SnippetLimit = 4096

// NewClient returns an http.Client bounded by cfg.Timeout whose requests
// carry cfg.UserAgent unless the caller already set one. The client makes
// exactly one attempt per request; callers decide how to degrade.
func NewClient(cfg types.HTTPConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	var transport http.RoundTripper = http.DefaultTransport
	if cfg.UserAgent != "" {
		transport = &userAgentTransport{base: transport, userAgent: cfg.UserAgent}
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(clone)
}

// Snippet reads at most SnippetLimit bytes of r and returns them trimmed.
// Read errors are ignored; the result is for logging only.
func Snippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, SnippetLimit))
	return strings.TrimSpace(string(b))
}
