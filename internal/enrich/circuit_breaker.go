// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

package enrich

import (
	"context"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/rewind/internal/logging"
	"github.com/tomtom215/rewind/internal/models"
)

// CircuitBreakerClient wraps a MetadataClient with the circuit breaker
// pattern, so a dead or quota-exhausted metadata service stops costing
// a full timeout per batch: once the circuit opens, remaining batches
// fail fast and take the fallback path.
//
// DETERMINISM NOTE: the breaker uses real time for its interval and
// timeout windows. The timing only decides when to retry the external
// service, never data contents; tests exercise the wrapped client
// directly.
type CircuitBreakerClient struct {
	client MetadataClient
	cb     *gobreaker.CircuitBreaker[[]models.VideoMetadata]
}

// Ensure CircuitBreakerClient implements MetadataClient
var _ MetadataClient = (*CircuitBreakerClient)(nil)

// NewCircuitBreakerClient wraps client with a circuit breaker.
// Configuration:
//   - opens after 3 consecutive failures (batch runs are short; a
//     failure-rate window would rarely fill before the run ends)
//   - 1 request allowed in half-open state
//   - 30 second timeout before attempting recovery
func NewCircuitBreakerClient(client MetadataClient) *CircuitBreakerClient {
	cb := gobreaker.NewCircuitBreaker[[]models.VideoMetadata](gobreaker.Settings{
		Name:        "youtube-api",
		MaxRequests: 1,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("[CIRCUIT BREAKER] State transition")
		},
	})

	return &CircuitBreakerClient{client: client, cb: cb}
}

// VideoMetadata executes the lookup through the circuit breaker.
// An open circuit surfaces as an ordinary lookup error, which the
// enricher already treats as "no metadata for this batch".
func (c *CircuitBreakerClient) VideoMetadata(ctx context.Context, ids []string) ([]models.VideoMetadata, error) {
	return c.cb.Execute(func() ([]models.VideoMetadata, error) {
		return c.client.VideoMetadata(ctx, ids)
	})
}
