// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

package config

import (
	"time"
)

// Config is the root configuration for a Rewind run.
type Config struct {
	Input    InputConfig    `koanf:"input"`
	Pipeline PipelineConfig `koanf:"pipeline"`
	YouTube  YouTubeConfig  `koanf:"youtube"`
	Classify ClassifyConfig `koanf:"classify"`
	Output   OutputConfig   `koanf:"output"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// InputConfig locates the watch-history export to ingest.
type InputConfig struct {
	// Path is the Takeout watch-history HTML file.
	Path string `koanf:"path" validate:"required"`
}

// PipelineConfig holds the thresholds that shape event filtering,
// session segmentation and feature derivation.
type PipelineConfig struct {
	// SessionGapMinutes is the inactivity gap that splits sessions.
	SessionGapMinutes int `koanf:"session_gap_minutes" validate:"gt=0"`

	// RetentionYears is how far back from now events are kept.
	RetentionYears int `koanf:"retention_years" validate:"gt=0"`

	// BingeThresholdVideos is the minimum videos per session for the
	// session to count as a binge.
	BingeThresholdVideos int `koanf:"binge_threshold_videos" validate:"gte=1"`

	// DurationShortMax and DurationMediumMax are the breakpoints (in
	// minutes) between Short/Medium and Medium/Long videos.
	DurationShortMax  float64 `koanf:"duration_short_max" validate:"gt=0"`
	DurationMediumMax float64 `koanf:"duration_medium_max" validate:"gtfield=DurationShortMax"`
}

// SessionGap returns the session gap as a time.Duration.
func (p PipelineConfig) SessionGap() time.Duration {
	return time.Duration(p.SessionGapMinutes) * time.Minute
}

// YouTubeConfig configures the external metadata lookup. An empty APIKey
// disables lookups entirely; every event then takes the fallback path.
type YouTubeConfig struct {
	APIKey string `koanf:"api_key"`

	// BatchSize is the number of video ids per videos.list call.
	// The API caps this at 50.
	BatchSize int `koanf:"batch_size" validate:"gt=0,lte=50"`

	// Timeout bounds each batch lookup call.
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`

	// RequestsPerSecond throttles lookup calls (0 = unlimited).
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"gte=0"`
}

// ClassifyConfig configures the title topic classifier.
type ClassifyConfig struct {
	// Topics is the number of topic clusters.
	Topics int `koanf:"topics" validate:"gt=0"`

	// MinDocFreq drops terms appearing in fewer documents.
	MinDocFreq int `koanf:"min_doc_freq" validate:"gte=1"`

	// MaxDocShare drops terms appearing in more than this share of
	// documents.
	MaxDocShare float64 `koanf:"max_doc_share" validate:"gt=0,lte=1"`
}

// OutputConfig controls where and how result tables are written.
type OutputConfig struct {
	// Dir is the directory the CSV tables are written into.
	Dir string `koanf:"dir" validate:"required"`

	// TopChannels is the N of the top-N channel table.
	TopChannels int `koanf:"top_channels" validate:"gt=0"`
}

// LoggingConfig mirrors the logging package configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Path: "watch-history.html",
		},
		Pipeline: PipelineConfig{
			SessionGapMinutes:    30,
			RetentionYears:       3,
			BingeThresholdVideos: 3,
			DurationShortMax:     4,
			DurationMediumMax:    20,
		},
		YouTube: YouTubeConfig{
			APIKey:            "",
			BatchSize:         50,
			Timeout:           30 * time.Second,
			RequestsPerSecond: 4,
		},
		Classify: ClassifyConfig{
			Topics:      8,
			MinDocFreq:  5,
			MaxDocShare: 0.8,
		},
		Output: OutputConfig{
			Dir:         "reports",
			TopChannels: 30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
