// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

// Package enrich resolves per-video attributes (duration, channel,
// category) through batched external lookups with a deterministic
// fallback path. A batch failure is recovered locally: it is logged,
// counted, and its members fall back, but the pipeline continues.
package enrich

import (
	"context"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/rewind/internal/logging"
	"github.com/tomtom215/rewind/internal/metrics"
	"github.com/tomtom215/rewind/internal/models"
)

// Stats tallies the outcome of one enrichment run. FailedBatches is
// surfaced in the end-of-run summary.
type Stats struct {
	DistinctVideos int
	Batches        int
	FailedBatches  int
	Resolved       int
	FallbackEvents int
}

// Options configures an Enricher.
type Options struct {
	// BatchSize is the number of ids per lookup call, capped at the
	// external service's limit of 50.
	BatchSize int

	// Timeout bounds each batch call; expiry counts as a batch failure.
	Timeout time.Duration

	// RequestsPerSecond throttles lookup calls. 0 disables throttling.
	RequestsPerSecond float64
}

// Enricher merges external metadata into events by video id. The
// metadata map is owned by the Enricher alone and accumulated during
// its sequential batch loop.
type Enricher struct {
	client  MetadataClient // nil = no lookup capability configured
	opts    Options
	limiter *rate.Limiter

	stats Stats
}

// New creates an Enricher. A nil client means no credential was
// provided: every event then takes the fallback path, which is still a
// total, deterministic enrichment.
func New(client MetadataClient, opts Options) *Enricher {
	if opts.BatchSize <= 0 || opts.BatchSize > 50 {
		opts.BatchSize = 50
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &Enricher{client: client, opts: opts, limiter: limiter}
}

// Enrich resolves channel, category and duration for every event.
// Events with a metadata match take the external values; all others
// keep fallback values:
//
//   - channel: first whitespace-delimited token of the title
//   - category: the event's topic label if known, else "Unknown"
//   - duration: whatever the parser carried forward (0 if none)
//
// The merge is a left join on video id, deterministic and total.
func (e *Enricher) Enrich(ctx context.Context, events []models.WatchEvent) []models.WatchEvent {
	meta := e.lookupAll(ctx, distinctVideoIDs(events))

	enriched := make([]models.WatchEvent, len(events))
	for i, ev := range events {
		if rec, ok := meta[ev.VideoID]; ok {
			ev.Channel = rec.ChannelTitle
			ev.Category = rec.CategoryID
			ev.DurationMinutes = rec.DurationMinutes
		} else {
			ev.Channel = firstToken(ev.Title)
			if ev.Topic != "" {
				ev.Category = ev.Topic
			} else {
				ev.Category = "Unknown"
			}
			// DurationMinutes keeps the parser-carried value.
			e.stats.FallbackEvents++
		}
		enriched[i] = ev
	}

	logging.Info().
		Int("distinct_videos", e.stats.DistinctVideos).
		Int("batches", e.stats.Batches).
		Int("failed_batches", e.stats.FailedBatches).
		Int("resolved", e.stats.Resolved).
		Int("fallback_events", e.stats.FallbackEvents).
		Msg("Enriched events")

	return enriched
}

// Stats returns the tallies of the last Enrich call.
func (e *Enricher) Stats() Stats {
	return e.stats
}

// lookupAll issues one lookup call per batch, sequentially, and
// accumulates results by video id. Batch failures are recovered
// locally; their ids simply stay absent from the map.
func (e *Enricher) lookupAll(ctx context.Context, ids []string) map[string]models.VideoMetadata {
	meta := make(map[string]models.VideoMetadata, len(ids))
	e.stats.DistinctVideos = len(ids)

	if e.client == nil || len(ids) == 0 {
		if e.client == nil {
			logging.Debug().Msg("No metadata lookup configured, using fallback enrichment")
		}
		return meta
	}

	for start := 0; start < len(ids); start += e.opts.BatchSize {
		end := start + e.opts.BatchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		e.stats.Batches++
		metrics.LookupBatches.Inc()

		records, err := e.lookupBatch(ctx, batch)
		if err != nil {
			e.stats.FailedBatches++
			metrics.LookupFailures.Inc()
			logging.Warn().Err(err).Int("batch_size", len(batch)).Msg("Metadata batch lookup failed, falling back")
			continue
		}

		for _, rec := range records {
			meta[rec.VideoID] = rec
			e.stats.Resolved++
		}
	}

	return meta
}

// lookupBatch runs one rate-limited, timeout-bounded lookup call.
func (e *Enricher) lookupBatch(ctx context.Context, ids []string) ([]models.VideoMetadata, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	return e.client.VideoMetadata(ctx, ids)
}

// distinctVideoIDs returns the distinct non-empty video ids in first
// appearance order, so batch composition is deterministic.
func distinctVideoIDs(events []models.WatchEvent) []string {
	seen := make(map[string]struct{}, len(events))
	ids := make([]string, 0, len(events))
	for _, ev := range events {
		if ev.VideoID == "" {
			continue
		}
		if _, ok := seen[ev.VideoID]; ok {
			continue
		}
		seen[ev.VideoID] = struct{}{}
		ids = append(ids, ev.VideoID)
	}
	return ids
}

// firstToken returns the first whitespace-delimited token of s, the
// channel-name fallback heuristic. Deliberately naive, preserved as
// documented behavior.
func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
