// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Error taxonomy shared across stages. Callers match with errors.Is; stages
// wrap these with context using fmt.Errorf("...: %w").
var (
	// ErrInvalidRequest marks a request the caller must fix (empty query).
	ErrInvalidRequest = errors.New("invalid request")

	// ErrSearchUnavailable marks a failed bibliographic search. It aborts
	// the whole request.
	ErrSearchUnavailable = errors.New("search unavailable")

	// ErrSummaryUnavailable marks a failed summary for one paper. It never
	// leaves the summarize stage; the paper is returned without a summary.
	ErrSummaryUnavailable = errors.New("summary unavailable")
)
