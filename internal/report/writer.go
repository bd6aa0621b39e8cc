// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

// Package report renders the pipeline result into UTF-8 CSV tables,
// one file per table, each with a header row. Tables are independent
// artifacts: a failed write is fatal for that artifact only, completed
// tables are never rolled back, and the run reports exactly which
// artifacts failed.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tomtom215/rewind/internal/logging"
	"github.com/tomtom215/rewind/internal/metrics"
)

// Writer writes result tables into a directory.
type Writer struct {
	dir string
}

// NewWriter creates a Writer rooted at dir, creating it if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return &Writer{dir: dir}, nil
}

// WriteAll writes every table and returns the names of the artifacts
// that failed, paired with their errors. Failures do not stop the
// remaining tables from being written.
func (w *Writer) WriteAll(tables []Table) map[string]error {
	failed := make(map[string]error)

	for _, t := range tables {
		if err := w.write(t); err != nil {
			failed[t.Name] = err
			metrics.TableWriteFailures.WithLabelValues(t.Name).Inc()
			logging.Error().Err(err).Str("table", t.Name).Msg("Failed to write result table")
			continue
		}
		metrics.TablesWritten.Inc()
		logging.Debug().Str("table", t.Name).Int("rows", len(t.Rows)).Msg("Wrote result table")
	}

	return failed
}

// write renders one table to <dir>/<name>.csv. A partially written
// file is removed on failure so a broken artifact never looks complete.
func (w *Writer) write(t Table) error {
	path := filepath.Join(w.dir, t.Name+".csv")

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	cw := csv.NewWriter(f)
	writeErr := cw.Write(t.Header)
	if writeErr == nil {
		writeErr = cw.WriteAll(t.Rows)
	}
	cw.Flush()
	if writeErr == nil {
		writeErr = cw.Error()
	}

	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}

	if writeErr != nil {
		_ = os.Remove(path)
		return fmt.Errorf("write %s: %w", path, writeErr)
	}
	return nil
}
