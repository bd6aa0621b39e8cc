// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

// Package main is the entry point for the Rewind CLI.
//
// Rewind ingests a Google Takeout watch-history HTML export, normalizes
// it into structured watch events, enriches the events with YouTube
// metadata, derives session and behavioral features (binge detection,
// time-of-day buckets), and writes aggregate CSV reports.
//
// # Pipeline
//
//	Parser -> Filter -> Segmenter -> Classifier -> Enricher -> Deriver -> Aggregator
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, a YAML config file
// (REWIND_CONFIG or rewind.yaml), and built-in defaults.
//
//	INPUT_PATH              watch-history HTML export (default: watch-history.html)
//	OUTPUT_DIR              directory for the CSV tables (default: reports)
//	SESSION_GAP_MINUTES     inactivity gap that splits sessions (default: 30)
//	RETENTION_YEARS         how far back events are kept (default: 3)
//	API_BATCH_SIZE          video ids per metadata lookup (default: 50, max 50)
//	BINGE_THRESHOLD_VIDEOS  videos per session to count as a binge (default: 3)
//	YOUTUBE_API_KEY         enables metadata lookups; empty = fallback only
//	LOG_LEVEL / LOG_FORMAT  logging configuration
//
// # Exit codes
//
//	0  run completed, all artifacts written
//	1  configuration or input error, or one or more artifacts failed
//
// A run aborted by SIGINT/SIGTERM before the output stage writes
// nothing; already-written artifacts from a partially failed output
// stage are kept (tables are independent).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/rewind/internal/aggregate"
	"github.com/tomtom215/rewind/internal/classify"
	"github.com/tomtom215/rewind/internal/config"
	"github.com/tomtom215/rewind/internal/enrich"
	"github.com/tomtom215/rewind/internal/logging"
	"github.com/tomtom215/rewind/internal/pipeline"
	"github.com/tomtom215/rewind/internal/report"
	"github.com/tomtom215/rewind/internal/takeout"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("Run failed")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	f, err := os.Open(cfg.Input.Path)
	if err != nil {
		return fmt.Errorf("open history export: %w", err)
	}
	defer func() { _ = f.Close() }()

	parsed, parseStats, err := takeout.NewParser().Parse(f)
	if err != nil {
		return err
	}

	enricher := enrich.New(newMetadataClient(cfg), enrich.Options{
		BatchSize:         cfg.YouTube.BatchSize,
		Timeout:           cfg.YouTube.Timeout,
		RequestsPerSecond: cfg.YouTube.RequestsPerSecond,
	})

	labeler := classify.NewTopicLabeler(classify.Options{
		Topics:      cfg.Classify.Topics,
		MinDocFreq:  cfg.Classify.MinDocFreq,
		MaxDocShare: cfg.Classify.MaxDocShare,
	})

	p := pipeline.New(pipeline.Options{
		SessionGap:           cfg.Pipeline.SessionGap(),
		RetentionYears:       cfg.Pipeline.RetentionYears,
		BingeThresholdVideos: cfg.Pipeline.BingeThresholdVideos,
		DurationShortMax:     cfg.Pipeline.DurationShortMax,
		DurationMediumMax:    cfg.Pipeline.DurationMediumMax,
	}, labeler, enricher)

	result, err := p.Run(ctx, parsed)
	if err != nil {
		// Aborted before output: nothing has been persisted.
		return err
	}

	tables := buildTables(cfg, result)

	writer, err := report.NewWriter(cfg.Output.Dir)
	if err != nil {
		return err
	}
	failed := writer.WriteAll(tables)

	logSummary(result, parseStats, enricher.Stats(), len(tables)-len(failed))

	if len(failed) > 0 {
		names := make([]string, 0, len(failed))
		for name := range failed {
			names = append(names, name)
		}
		return fmt.Errorf("%d of %d artifacts failed: %v", len(failed), len(tables), names)
	}
	return nil
}

// newMetadataClient builds the lookup capability, or nil when no API
// key is configured.
func newMetadataClient(cfg *config.Config) enrich.MetadataClient {
	if cfg.YouTube.APIKey == "" {
		return nil
	}
	return enrich.NewCircuitBreakerClient(enrich.NewYouTubeClient(cfg.YouTube.APIKey))
}

// buildTables runs every aggregation over the pipeline result.
func buildTables(cfg *config.Config, result *pipeline.Result) []report.Table {
	sessionStats := aggregate.Sessions(result.Events, result.Sessions)

	return []report.Table{
		report.EventsTable(result.Events),
		report.HeatmapTable(aggregate.Heatmap(result.Events)),
		report.ChannelsTable(aggregate.TopChannels(result.Events, cfg.Output.TopChannels)),
		report.CategoriesTable(aggregate.Categories(result.Events)),
		report.TopicsTable(aggregate.Topics(result.Events)),
		report.SessionsTable("session_stats", sessionStats),
		report.DailyTable(aggregate.Daily(result.Events)),
		report.SessionsTable("binge_sessions", aggregate.BingeSessions(sessionStats)),
	}
}

// logSummary emits the end-of-run diagnostics, including the lookup
// failure count.
func logSummary(result *pipeline.Result, parseStats takeout.Stats, enrichStats enrich.Stats, written int) {
	var totalMinutes float64
	bingeEvents := 0
	for _, ev := range result.Events {
		totalMinutes += ev.DurationMinutes
		if ev.IsBingeSession {
			bingeEvents++
		}
	}

	ev := logging.Info().
		Int("entries", parseStats.Entries).
		Int("parsed", parseStats.Parsed).
		Int("events", len(result.Events)).
		Int("sessions", len(result.Sessions)).
		Float64("total_minutes", totalMinutes).
		Int("binge_events", bingeEvents).
		Int("failed_lookup_batches", enrichStats.FailedBatches).
		Int("tables_written", written)

	if len(result.Events) > 0 {
		ev = ev.
			Str("first", result.Events[0].WatchedAt.Format("2006-01-02")).
			Str("last", result.Events[len(result.Events)-1].WatchedAt.Format("2006-01-02"))
	}

	ev.Msg("Watch-history analysis complete")
}
