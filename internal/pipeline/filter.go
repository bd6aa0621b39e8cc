// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/rewind/internal/metrics"
	"github.com/tomtom215/rewind/internal/models"
)

// FilterStats tallies the outcome of the filter stage.
type FilterStats struct {
	Input         int
	Kept          int
	MissingFields int
	OutOfWindow   int
	Duplicates    int
}

// Filter drops out-of-scope events: entries older than the retention
// window, entries with an empty title or URL, and exact duplicates of
// an already-seen event. Order is preserved; the final sort happens
// before segmentation, not here.
type Filter struct {
	retentionYears int
	now            func() time.Time
}

// NewFilter creates a Filter. now is injectable for tests; pass
// time.Now in production.
func NewFilter(retentionYears int, now func() time.Time) *Filter {
	if now == nil {
		now = time.Now
	}
	return &Filter{retentionYears: retentionYears, now: now}
}

// Apply returns the retained events in their original order.
//
// The retention cutoff is years*365 days back from now. That is how the
// window has always been measured for this export format; it drifts from
// calendar years across leap days, a known limitation kept for
// compatibility with historic runs.
func (f *Filter) Apply(events []models.WatchEvent) ([]models.WatchEvent, FilterStats) {
	cutoff := f.now().AddDate(0, 0, -f.retentionYears*365)

	stats := FilterStats{Input: len(events)}
	seen := make(map[uuid.UUID]struct{}, len(events))
	kept := make([]models.WatchEvent, 0, len(events))

	for _, ev := range events {
		switch {
		case ev.Title == "" || ev.URL == "":
			stats.MissingFields++
			metrics.EntriesDropped.WithLabelValues("missing_fields").Inc()
		case ev.WatchedAt.Before(cutoff):
			stats.OutOfWindow++
			metrics.EntriesDropped.WithLabelValues("retention").Inc()
		default:
			if _, dup := seen[ev.ID]; dup {
				stats.Duplicates++
				metrics.EntriesDropped.WithLabelValues("duplicate").Inc()
				continue
			}
			seen[ev.ID] = struct{}{}
			kept = append(kept, ev)
		}
	}

	stats.Kept = len(kept)
	return kept, stats
}
