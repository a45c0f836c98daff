package domain

import (
	"context"
	"errors"
)

// Service is the statistics entry point consumed by the HTTP layer.
type Service interface {
	// GetStatistics resolves the requested window, aggregates the order
	// ledger and returns one snapshot. When the ledger is unreachable
	// and fallback is enabled, a synthetic snapshot with
	// Source=SourceFallback is returned instead.
	GetStatistics(ctx context.Context, req StatsRequest) (*StatisticsSnapshot, error)

	// Current returns the last snapshot applied for a scope, if any.
	// Superseded requests never update it.
	Current(scope string) (*StatisticsSnapshot, bool)
}

var (
	// ErrInvalidRange rejects custom windows with start >= end or
	// missing bounds. Surfaced to the caller, never hidden by fallback.
	ErrInvalidRange = errors.New("invalid_range")

	// ErrLedgerUnavailable covers any failure reaching or reading the
	// order store. All-or-nothing per snapshot request.
	ErrLedgerUnavailable = errors.New("ledger_unavailable")

	// ErrStaleRequest signals a result that arrived after a newer
	// request superseded it. Internal, dropped before it reaches users.
	ErrStaleRequest = errors.New("stale_request")

	ErrInvalidAgent = errors.New("invalid_agent")
)
