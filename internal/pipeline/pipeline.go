// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

// Package pipeline implements the event-to-session core: filtering,
// chronological ordering, session segmentation, and behavioral feature
// derivation. The stages run strictly left to right over an in-memory
// event slice; the only externally-suspending collaborator is the
// enricher, whose failures never abort the remaining stages.
package pipeline

import (
	"context"
	"sort"
	"time"

	"github.com/tomtom215/rewind/internal/logging"
	"github.com/tomtom215/rewind/internal/models"
)

// TopicLabeler assigns an opaque topic label to each title,
// index-aligned with the input. Implementations are deterministic for
// a fixed input; the labeling algorithm itself is interchangeable.
type TopicLabeler interface {
	Label(titles []string) []string
}

// Enricher resolves channel, category and duration for every event.
// Implementations must be total: every returned event carries non-empty
// channel and category and a non-negative duration, whether from the
// external source or the fallback heuristics.
type Enricher interface {
	Enrich(ctx context.Context, events []models.WatchEvent) []models.WatchEvent
}

// Options are the validated thresholds the pipeline runs with.
type Options struct {
	SessionGap           time.Duration
	RetentionYears       int
	BingeThresholdVideos int
	DurationShortMax     float64
	DurationMediumMax    float64

	// Now is the clock used for the retention window. Defaults to
	// time.Now; tests inject a fixed clock.
	Now func() time.Time
}

// Result is the pipeline output: the enriched, fully derived event
// stream and the session partition over it.
type Result struct {
	Events   []models.WatchEvent
	Sessions []models.Session

	FilterStats FilterStats
}

// Pipeline wires the stages together. Construct one per run.
type Pipeline struct {
	opts     Options
	labeler  TopicLabeler
	enricher Enricher
}

// New creates a Pipeline with the given collaborators.
func New(opts Options, labeler TopicLabeler, enricher Enricher) *Pipeline {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{opts: opts, labeler: labeler, enricher: enricher}
}

// Run executes filter, sort, segmentation, classification, enrichment
// and derivation over parsed events. The input slice is not modified.
//
// Stage order matters: classification precedes enrichment because the
// fallback category is the event's topic label, and derivation comes
// last because channel-binge detection needs resolved channels in
// session order.
func (p *Pipeline) Run(ctx context.Context, parsed []models.WatchEvent) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	events := make([]models.WatchEvent, len(parsed))
	copy(events, parsed)

	filter := NewFilter(p.opts.RetentionYears, p.opts.Now)
	events, fstats := filter.Apply(events)
	logging.Info().
		Int("input", fstats.Input).
		Int("kept", fstats.Kept).
		Int("out_of_window", fstats.OutOfWindow).
		Int("duplicates", fstats.Duplicates).
		Msg("Filtered events")

	// Total order by watched_at; the stable sort keeps original log
	// order for equal timestamps.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].WatchedAt.Before(events[j].WatchedAt)
	})

	sessions := NewSegmenter(p.opts.SessionGap).Segment(events)
	logging.Info().Int("sessions", len(sessions)).Msg("Segmented events into sessions")

	if p.labeler != nil && len(events) > 0 {
		titles := make([]string, len(events))
		for i := range events {
			titles[i] = events[i].Title
		}
		for i, label := range p.labeler.Label(titles) {
			events[i].Topic = label
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if p.enricher != nil {
		events = p.enricher.Enrich(ctx, events)
	}

	NewDeriver(p.opts.BingeThresholdVideos, p.opts.DurationShortMax, p.opts.DurationMediumMax).
		Derive(events, sessions)

	return &Result{Events: events, Sessions: sessions, FilterStats: fstats}, nil
}
