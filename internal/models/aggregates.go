// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

package models

import (
	"time"
)

// Weekdays lists day names in the fixed Monday-first order used by the
// weekday/hour heatmap and anywhere weekday rows are rendered.
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// HeatmapRow is one weekday row of the weekday-by-hour watch frequency
// matrix. Counts always has 24 entries, one per hour of day.
type HeatmapRow struct {
	Weekday string `json:"weekday"`
	Counts  []int  `json:"counts"`
}

// ChannelStats aggregates watch activity for a single channel.
type ChannelStats struct {
	Channel     string  `json:"channel"`
	Videos      int     `json:"videos"`
	Minutes     float64 `json:"minutes"`
	AvgDuration float64 `json:"avg_duration"`
}

// CategoryStats aggregates watch activity for a single category.
type CategoryStats struct {
	Category string  `json:"category"`
	Videos   int     `json:"videos"`
	Minutes  float64 `json:"minutes"`
}

// TopicStats aggregates watch activity for a single topic cluster.
type TopicStats struct {
	Topic   string  `json:"topic"`
	Videos  int     `json:"videos"`
	Minutes float64 `json:"minutes"`
}

// SessionStats is one row of the per-session detail table.
type SessionStats struct {
	SessionID       int       `json:"session_id"`
	Videos          int       `json:"videos"`
	DurationMinutes float64   `json:"duration_minutes"`
	WatchMinutes    float64   `json:"watch_minutes"`
	Start           time.Time `json:"start_time"`
	End             time.Time `json:"end_time"`
	IsBinge         bool      `json:"is_binge"`
}

// DailyStats aggregates watch activity for one calendar day.
type DailyStats struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	Videos   int     `json:"videos"`
	Minutes  float64 `json:"minutes"`
	Sessions int     `json:"sessions"`
}
