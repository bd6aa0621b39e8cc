// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

package pipeline

import (
	"time"

	"github.com/tomtom215/rewind/internal/models"
)

// Segmenter partitions a chronologically sorted event stream into
// viewing sessions using a temporal-gap heuristic. The session counter
// is owned by the Segmenter alone and mutated only during its single
// left-to-right pass; a session boundary is solely a function of the
// two timestamps spanning it.
type Segmenter struct {
	gap time.Duration
}

// NewSegmenter creates a Segmenter with the given gap threshold.
func NewSegmenter(gap time.Duration) *Segmenter {
	return &Segmenter{gap: gap}
}

// Segment assigns a session ID to every event and returns the session
// list. Events must already be sorted ascending by WatchedAt (ties in
// original log order). Session IDs start at 1 and increase
// monotonically; sessions are immutable once created, never merged or
// split. An event joins the current session unless its gap from the
// previous event exceeds the threshold (the first event always opens a
// new session).
func (s *Segmenter) Segment(events []models.WatchEvent) []models.Session {
	if len(events) == 0 {
		return nil
	}

	var (
		sessionID int
		prevTime  time.Time
		sessions  []models.Session
	)

	for i := range events {
		if sessionID == 0 || events[i].WatchedAt.Sub(prevTime) > s.gap {
			sessionID++
			sessions = append(sessions, models.Session{
				ID:    sessionID,
				Start: events[i].WatchedAt,
			})
		}

		cur := &sessions[len(sessions)-1]
		cur.End = events[i].WatchedAt
		cur.VideoCount++
		cur.DurationMinutes = cur.End.Sub(cur.Start).Minutes()

		events[i].SessionID = sessionID
		prevTime = events[i].WatchedAt
	}

	return sessions
}
