// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/rewind/internal/models"
)

func TestWriter_WriteAll(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	tables := []Table{
		{
			Name:   "watch_by_category",
			Header: []string{"category", "videos", "minutes"},
			Rows: [][]string{
				{"Music", "3", "12.5"},
				{"Gaming, with comma", "1", "60"},
			},
		},
		{
			Name:   "topic_summary",
			Header: []string{"topic", "videos", "minutes"},
		},
	}

	failed := w.WriteAll(tables)
	if len(failed) != 0 {
		t.Fatalf("WriteAll failures: %v", failed)
	}

	data, err := os.ReadFile(filepath.Join(dir, "watch_by_category.csv"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "category,videos,minutes\nMusic,3,12.5\n\"Gaming, with comma\",1,60\n"
	if string(data) != want {
		t.Errorf("csv content:\n%q\nwant:\n%q", string(data), want)
	}

	// A table with no rows still gets its header.
	data, err = os.ReadFile(filepath.Join(dir, "topic_summary.csv"))
	if err != nil {
		t.Fatalf("read empty table: %v", err)
	}
	if string(data) != "topic,videos,minutes\n" {
		t.Errorf("empty table content = %q, want header only", string(data))
	}
}

func TestWriter_Deterministic(t *testing.T) {
	table := Table{
		Name:   "daily_stats",
		Header: []string{"date", "videos", "minutes", "sessions"},
		Rows: [][]string{
			{"2026-03-02", "3", "40", "2"},
			{"2026-03-03", "1", "5", "1"},
		},
	}

	read := func() []byte {
		dir := t.TempDir()
		w, err := NewWriter(dir)
		if err != nil {
			t.Fatalf("NewWriter: %v", err)
		}
		if failed := w.WriteAll([]Table{table}); len(failed) != 0 {
			t.Fatalf("WriteAll failures: %v", failed)
		}
		data, err := os.ReadFile(filepath.Join(dir, "daily_stats.csv"))
		if err != nil {
			t.Fatalf("read output: %v", err)
		}
		return data
	}

	if first, second := read(), read(); !bytes.Equal(first, second) {
		t.Error("repeated writes of the same table are not byte-identical")
	}
}

func TestWriter_FailureIsPerArtifact(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	// A name that resolves to an uncreatable path fails that artifact
	// without touching the others.
	tables := []Table{
		{Name: "missing/subdir", Header: []string{"a"}},
		{Name: "survivor", Header: []string{"a"}, Rows: [][]string{{"1"}}},
	}

	failed := w.WriteAll(tables)
	if len(failed) != 1 {
		t.Fatalf("got %d failures, want 1: %v", len(failed), failed)
	}
	if _, ok := failed["missing/subdir"]; !ok {
		t.Errorf("failure map missing broken artifact: %v", failed)
	}
	if _, err := os.Stat(filepath.Join(dir, "survivor.csv")); err != nil {
		t.Errorf("surviving table not written: %v", err)
	}
}

func TestEventsTable(t *testing.T) {
	ev := models.WatchEvent{
		Title:            "Go Concurrency Patterns",
		URL:              "https://www.youtube.com/watch?v=f6kdp27TYZs",
		VideoID:          "f6kdp27TYZs",
		WatchedAt:        time.Date(2026, 3, 2, 14, 30, 5, 0, time.UTC),
		DurationMinutes:  65.5,
		Channel:          "Google Developers",
		Category:         "Science & Technology",
		SessionID:        3,
		Topic:            "2",
		Weekday:          "Monday",
		Hour:             14,
		Season:           "Spring",
		TimePeriod:       "Afternoon",
		IsWeekend:        false,
		DurationCategory: "Long",
		IsBingeSession:   true,
		IsChannelBinge:   false,
	}

	table := EventsTable([]models.WatchEvent{ev})
	if table.Name != "enriched_events" {
		t.Errorf("name = %q, want enriched_events", table.Name)
	}
	if len(table.Header) != 18 {
		t.Fatalf("header has %d columns, want 18", len(table.Header))
	}
	if len(table.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(table.Rows))
	}

	row := table.Rows[0]
	if len(row) != len(table.Header) {
		t.Fatalf("row has %d cells for %d header columns", len(row), len(table.Header))
	}
	checks := map[string]string{
		"title":            "Go Concurrency Patterns",
		"watched_at":       "2026-03-02 14:30:05",
		"duration_minutes": "65.5",
		"session_id":       "3",
		"is_weekend":       "false",
		"is_binge_session": "true",
	}
	for col, want := range checks {
		idx := -1
		for i, h := range table.Header {
			if h == col {
				idx = i
				break
			}
		}
		if idx < 0 {
			t.Fatalf("header missing column %q", col)
		}
		if row[idx] != want {
			t.Errorf("column %q = %q, want %q", col, row[idx], want)
		}
	}
}

func TestHeatmapTable(t *testing.T) {
	rows := []models.HeatmapRow{
		{Weekday: "Monday", Counts: make([]int, 24)},
	}
	rows[0].Counts[9] = 4

	table := HeatmapTable(rows)
	if len(table.Header) != 25 {
		t.Fatalf("header has %d columns, want 25", len(table.Header))
	}
	if table.Header[0] != "weekday" || table.Header[1] != "0" || table.Header[24] != "23" {
		t.Errorf("unexpected header: %v", table.Header)
	}
	if table.Rows[0][0] != "Monday" || table.Rows[0][10] != "4" {
		t.Errorf("unexpected row: %v", table.Rows[0])
	}
}

func TestSessionsTable_Naming(t *testing.T) {
	stats := []models.SessionStats{{
		SessionID:       1,
		Videos:          3,
		DurationMinutes: 20,
		WatchMinutes:    45.25,
		Start:           time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		End:             time.Date(2026, 3, 2, 10, 20, 0, 0, time.UTC),
		IsBinge:         true,
	}}

	all := SessionsTable("session_stats", stats)
	binges := SessionsTable("binge_sessions", stats)
	if all.Name != "session_stats" || binges.Name != "binge_sessions" {
		t.Errorf("table names = %q %q", all.Name, binges.Name)
	}

	row := all.Rows[0]
	want := []string{"1", "3", "20", "45.25", "2026-03-02 10:00:00", "2026-03-02 10:20:00", "true"}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("row[%d] = %q, want %q", i, row[i], want[i])
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0"},
		{65.5, "65.5"},
		{4 + 13.0/60, "4.216666666666667"},
		{120, "120"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.input); got != tt.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
