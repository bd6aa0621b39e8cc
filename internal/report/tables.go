// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

package report

import (
	"strconv"

	"github.com/tomtom215/rewind/internal/models"
)

// timeLayout renders timestamps in the output tables. Times are
// timezone-naive throughout the pipeline, so no offset is rendered.
const timeLayout = "2006-01-02 15:04:05"

// Table is one result artifact: a name (the CSV file stem), a header
// row, and data rows.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// EventsTable renders the full enriched event table.
func EventsTable(events []models.WatchEvent) Table {
	t := Table{
		Name: "enriched_events",
		Header: []string{
			"id", "title", "url", "video_id", "watched_at", "duration_minutes",
			"channel", "category", "session_id", "topic", "weekday", "hour",
			"season", "time_period", "is_weekend", "duration_category",
			"is_binge_session", "is_channel_binge",
		},
	}
	for _, ev := range events {
		t.Rows = append(t.Rows, []string{
			ev.ID.String(),
			ev.Title,
			ev.URL,
			ev.VideoID,
			ev.WatchedAt.Format(timeLayout),
			formatFloat(ev.DurationMinutes),
			ev.Channel,
			ev.Category,
			strconv.Itoa(ev.SessionID),
			ev.Topic,
			ev.Weekday,
			strconv.Itoa(ev.Hour),
			ev.Season,
			ev.TimePeriod,
			strconv.FormatBool(ev.IsWeekend),
			ev.DurationCategory,
			strconv.FormatBool(ev.IsBingeSession),
			strconv.FormatBool(ev.IsChannelBinge),
		})
	}
	return t
}

// HeatmapTable renders the weekday-by-hour count matrix.
func HeatmapTable(rows []models.HeatmapRow) Table {
	header := make([]string, 0, 25)
	header = append(header, "weekday")
	for h := 0; h < 24; h++ {
		header = append(header, strconv.Itoa(h))
	}

	t := Table{Name: "watch_heatmap_weekday_hour", Header: header}
	for _, row := range rows {
		r := make([]string, 0, 25)
		r = append(r, row.Weekday)
		for _, c := range row.Counts {
			r = append(r, strconv.Itoa(c))
		}
		t.Rows = append(t.Rows, r)
	}
	return t
}

// ChannelsTable renders the top-N channel table.
func ChannelsTable(stats []models.ChannelStats) Table {
	t := Table{
		Name:   "top_channels",
		Header: []string{"channel", "videos", "minutes", "avg_duration"},
	}
	for _, s := range stats {
		t.Rows = append(t.Rows, []string{
			s.Channel,
			strconv.Itoa(s.Videos),
			formatFloat(s.Minutes),
			formatFloat(s.AvgDuration),
		})
	}
	return t
}

// CategoriesTable renders the per-category table.
func CategoriesTable(stats []models.CategoryStats) Table {
	t := Table{
		Name:   "watch_by_category",
		Header: []string{"category", "videos", "minutes"},
	}
	for _, s := range stats {
		t.Rows = append(t.Rows, []string{
			s.Category,
			strconv.Itoa(s.Videos),
			formatFloat(s.Minutes),
		})
	}
	return t
}

// TopicsTable renders the per-topic table.
func TopicsTable(stats []models.TopicStats) Table {
	t := Table{
		Name:   "topic_summary",
		Header: []string{"topic", "videos", "minutes"},
	}
	for _, s := range stats {
		t.Rows = append(t.Rows, []string{
			s.Topic,
			strconv.Itoa(s.Videos),
			formatFloat(s.Minutes),
		})
	}
	return t
}

// SessionsTable renders the per-session detail table.
func SessionsTable(name string, stats []models.SessionStats) Table {
	t := Table{
		Name: name,
		Header: []string{
			"session_id", "videos", "duration_minutes", "watch_minutes",
			"start_time", "end_time", "is_binge",
		},
	}
	for _, s := range stats {
		t.Rows = append(t.Rows, sessionRow(s))
	}
	return t
}

func sessionRow(s models.SessionStats) []string {
	return []string{
		strconv.Itoa(s.SessionID),
		strconv.Itoa(s.Videos),
		formatFloat(s.DurationMinutes),
		formatFloat(s.WatchMinutes),
		s.Start.Format(timeLayout),
		s.End.Format(timeLayout),
		strconv.FormatBool(s.IsBinge),
	}
}

// DailyTable renders the per-day table.
func DailyTable(stats []models.DailyStats) Table {
	t := Table{
		Name:   "daily_stats",
		Header: []string{"date", "videos", "minutes", "sessions"},
	}
	for _, s := range stats {
		t.Rows = append(t.Rows, []string{
			s.Date,
			strconv.Itoa(s.Videos),
			formatFloat(s.Minutes),
			strconv.Itoa(s.Sessions),
		})
	}
	return t
}

// formatFloat renders a float with the minimal digits that round-trip,
// so output is byte-stable across runs.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
