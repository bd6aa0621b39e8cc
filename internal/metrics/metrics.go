// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

// Package metrics provides Prometheus instrumentation for the pipeline.
// A batch run does not serve a /metrics endpoint, but the counters feed
// the end-of-run diagnostics and make the stages observable when Rewind
// is embedded in a scheduler that scrapes the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Parser metrics
	EntriesParsed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rewind_entries_parsed_total",
			Help: "Total number of history entries successfully parsed",
		},
	)

	EntriesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rewind_entries_dropped_total",
			Help: "Total number of history entries dropped during parse or filter",
		},
		[]string{"reason"}, // "no_link", "excluded_url", "bad_timestamp", "missing_fields", "retention", "duplicate"
	)

	// Enricher metrics
	LookupBatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rewind_lookup_batches_total",
			Help: "Total number of metadata lookup batches issued",
		},
	)

	LookupFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rewind_lookup_failures_total",
			Help: "Total number of metadata lookup batches that failed and fell back",
		},
	)

	// Output metrics
	TablesWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rewind_tables_written_total",
			Help: "Total number of result tables written successfully",
		},
	)

	TableWriteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rewind_table_write_failures_total",
			Help: "Total number of result tables that failed to write",
		},
		[]string{"table"},
	)
)
