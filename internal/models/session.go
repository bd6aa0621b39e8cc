// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

package models

import (
	"time"
)

// Session is a maximal run of events with no inter-event gap exceeding
// the configured threshold. Sessions partition the event stream: every
// event belongs to exactly one session, sessions are contiguous in time
// order, and they are never merged or split after creation.
type Session struct {
	ID         int       `json:"session_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	VideoCount int       `json:"video_count"`

	// DurationMinutes is End minus Start. A single-event session has
	// duration 0.
	DurationMinutes float64 `json:"duration_minutes"`
}

// IsBinge reports whether the session qualifies as a binge session
// under the given threshold (number of member videos).
func (s Session) IsBinge(threshold int) bool {
	return s.VideoCount >= threshold
}
