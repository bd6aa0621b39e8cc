// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

package pipeline

import (
	"time"

	"github.com/tomtom215/rewind/internal/models"
)

// Deriver computes the behavioral feature columns on enriched,
// session-assigned events. All derivations are total: every event
// receives every field, with no failure cases.
type Deriver struct {
	bingeThreshold int
	shortMax       float64
	mediumMax      float64
}

// NewDeriver creates a Deriver.
func NewDeriver(bingeThreshold int, shortMax, mediumMax float64) *Deriver {
	return &Deriver{
		bingeThreshold: bingeThreshold,
		shortMax:       shortMax,
		mediumMax:      mediumMax,
	}
}

// Derive fills the derived fields in place. Events must be in the
// sorted, session-assigned order: channel-binge detection compares each
// event's channel to the immediately preceding event within the same
// session, so it depends on session-local ordering.
func (d *Deriver) Derive(events []models.WatchEvent, sessions []models.Session) {
	bingeByID := make(map[int]bool, len(sessions))
	for _, s := range sessions {
		bingeByID[s.ID] = s.IsBinge(d.bingeThreshold)
	}

	prevSession := 0
	prevChannel := ""

	for i := range events {
		ev := &events[i]

		ev.Weekday = ev.WatchedAt.Weekday().String()
		ev.Hour = ev.WatchedAt.Hour()
		ev.Season = season(ev.WatchedAt.Month())
		ev.TimePeriod = timePeriod(ev.Hour)
		ev.IsWeekend = ev.Weekday == "Saturday" || ev.Weekday == "Sunday"
		ev.DurationCategory = d.durationCategory(ev.DurationMinutes)
		ev.IsBingeSession = bingeByID[ev.SessionID]

		// Session-scoped shift: the first event of a session never
		// qualifies as a channel binge.
		ev.IsChannelBinge = ev.SessionID == prevSession && ev.Channel == prevChannel

		prevSession = ev.SessionID
		prevChannel = ev.Channel
	}
}

// season buckets a month into the meteorological season.
func season(m time.Month) string {
	switch m {
	case time.March, time.April, time.May:
		return "Spring"
	case time.June, time.July, time.August:
		return "Summer"
	case time.September, time.October, time.November:
		return "Fall"
	default:
		return "Winter"
	}
}

// timePeriod buckets an hour of day into a coarse period.
func timePeriod(hour int) string {
	switch {
	case hour < 6:
		return "Dawn"
	case hour < 12:
		return "Morning"
	case hour < 18:
		return "Afternoon"
	default:
		return "Evening"
	}
}

// durationCategory buckets a duration in minutes by the configured
// breakpoints.
func (d *Deriver) durationCategory(minutes float64) string {
	switch {
	case minutes < d.shortMax:
		return "Short"
	case minutes < d.mediumMax:
		return "Medium"
	default:
		return "Long"
	}
}
