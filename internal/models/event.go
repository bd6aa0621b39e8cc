// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

package models

import (
	"time"

	"github.com/google/uuid"
)

// WatchEvent represents a single watch occurrence parsed from the
// history export and carried through the pipeline. Fields are filled
// in stages: the parser sets Title/URL/VideoID/WatchedAt, the segmenter
// sets SessionID, the classifier sets Topic, the enricher resolves
// Channel/Category/DurationMinutes, and the deriver fills the rest.
type WatchEvent struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	VideoID   string    `json:"video_id,omitempty"` // empty when the URL carries no 11-char token
	WatchedAt time.Time `json:"watched_at"`

	// Resolved by enrichment (external metadata or fallback).
	DurationMinutes float64 `json:"duration_minutes"`
	Channel         string  `json:"channel"`
	Category        string  `json:"category"`

	// Assigned by the segmenter. Immutable once set.
	SessionID int `json:"session_id"`

	// Opaque label from the topic classifier.
	Topic string `json:"topic"`

	// Derived fields.
	Weekday          string `json:"weekday"`
	Hour             int    `json:"hour"`
	Season           string `json:"season"`
	TimePeriod       string `json:"time_period"`
	IsWeekend        bool   `json:"is_weekend"`
	DurationCategory string `json:"duration_category"`
	IsBingeSession   bool   `json:"is_binge_session"`
	IsChannelBinge   bool   `json:"is_channel_binge"`
}
