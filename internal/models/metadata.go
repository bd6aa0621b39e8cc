// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

package models

// VideoMetadata holds externally sourced attributes for a video,
// keyed by VideoID. Owned by the enricher and merged into events via
// a left join on VideoID; events without a match keep fallback values.
type VideoMetadata struct {
	VideoID         string  `json:"video_id"`
	ChannelTitle    string  `json:"channel_title"`
	CategoryID      string  `json:"category_id"`
	DurationMinutes float64 `json:"duration_minutes"`
	PublishedAt     string  `json:"published_at"`
}
