// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

package aggregate

import (
	"testing"
	"time"

	"github.com/tomtom215/rewind/internal/models"
)

func event(weekday string, hour int, channel, category, topic string, sessionID int, minutes float64, watched time.Time) models.WatchEvent {
	return models.WatchEvent{
		Weekday:         weekday,
		Hour:            hour,
		Channel:         channel,
		Category:        category,
		Topic:           topic,
		SessionID:       sessionID,
		DurationMinutes: minutes,
		WatchedAt:       watched,
	}
}

func TestHeatmap_AlwaysFullGrid(t *testing.T) {
	rows := Heatmap(nil)
	if len(rows) != 7 {
		t.Fatalf("got %d rows, want 7", len(rows))
	}
	for i, row := range rows {
		if row.Weekday != models.Weekdays[i] {
			t.Errorf("row %d weekday = %q, want %q", i, row.Weekday, models.Weekdays[i])
		}
		if len(row.Counts) != 24 {
			t.Errorf("row %q has %d hour columns, want 24", row.Weekday, len(row.Counts))
		}
		for h, c := range row.Counts {
			if c != 0 {
				t.Errorf("empty input: rows[%d].Counts[%d] = %d, want 0", i, h, c)
			}
		}
	}
}

func TestHeatmap_Counts(t *testing.T) {
	ts := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	events := []models.WatchEvent{
		event("Monday", 14, "", "", "", 1, 0, ts),
		event("Monday", 14, "", "", "", 1, 0, ts),
		event("Sunday", 23, "", "", "", 2, 0, ts),
	}

	rows := Heatmap(events)
	if rows[0].Counts[14] != 2 {
		t.Errorf("Monday 14h = %d, want 2", rows[0].Counts[14])
	}
	if rows[6].Counts[23] != 1 {
		t.Errorf("Sunday 23h = %d, want 1", rows[6].Counts[23])
	}
	if rows[0].Counts[13] != 0 {
		t.Errorf("Monday 13h = %d, want 0", rows[0].Counts[13])
	}
}

func TestTopChannels(t *testing.T) {
	ts := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	events := []models.WatchEvent{
		event("Monday", 14, "Beta", "", "", 1, 10, ts),
		event("Monday", 14, "Beta", "", "", 1, 20, ts),
		event("Monday", 14, "Alpha", "", "", 1, 5, ts),
		event("Monday", 14, "Alpha", "", "", 1, 5, ts),
		event("Monday", 14, "Gamma", "", "", 1, 100, ts),
	}

	stats := TopChannels(events, 0)
	if len(stats) != 3 {
		t.Fatalf("got %d channels, want 3", len(stats))
	}

	// Alpha and Beta tie at 2 videos; the name breaks the tie.
	wantOrder := []string{"Alpha", "Beta", "Gamma"}
	for i, want := range wantOrder {
		if stats[i].Channel != want {
			t.Errorf("stats[%d].Channel = %q, want %q", i, stats[i].Channel, want)
		}
	}

	if stats[1].Minutes != 30 || stats[1].AvgDuration != 15 {
		t.Errorf("Beta stats = %+v, want Minutes=30 AvgDuration=15", stats[1])
	}

	top2 := TopChannels(events, 2)
	if len(top2) != 2 || top2[0].Channel != "Alpha" || top2[1].Channel != "Beta" {
		t.Errorf("TopChannels(n=2) = %v, want [Alpha Beta]", top2)
	}
}

func TestCategories_OrderedByMinutes(t *testing.T) {
	ts := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	events := []models.WatchEvent{
		event("Monday", 14, "", "Music", "", 1, 5, ts),
		event("Monday", 14, "", "Music", "", 1, 5, ts),
		event("Monday", 14, "", "Gaming", "", 1, 60, ts),
		event("Monday", 14, "", "Comedy", "", 1, 10, ts),
		event("Monday", 14, "", "Animals", "", 1, 10, ts),
	}

	stats := Categories(events)
	wantOrder := []string{"Gaming", "Animals", "Comedy", "Music"}
	if len(stats) != len(wantOrder) {
		t.Fatalf("got %d categories, want %d", len(stats), len(wantOrder))
	}
	for i, want := range wantOrder {
		if stats[i].Category != want {
			t.Errorf("stats[%d].Category = %q, want %q", i, stats[i].Category, want)
		}
	}
	if stats[3].Videos != 2 || stats[3].Minutes != 10 {
		t.Errorf("Music stats = %+v, want Videos=2 Minutes=10", stats[3])
	}
}

func TestTopics_OrderedByVideos(t *testing.T) {
	ts := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	events := []models.WatchEvent{
		event("Monday", 14, "", "", "2", 1, 5, ts),
		event("Monday", 14, "", "", "0", 1, 5, ts),
		event("Monday", 14, "", "", "0", 1, 5, ts),
		event("Monday", 14, "", "", "1", 1, 50, ts),
	}

	stats := Topics(events)
	wantOrder := []string{"0", "1", "2"}
	if len(stats) != len(wantOrder) {
		t.Fatalf("got %d topics, want %d", len(stats), len(wantOrder))
	}
	for i, want := range wantOrder {
		if stats[i].Topic != want {
			t.Errorf("stats[%d].Topic = %q, want %q", i, stats[i].Topic, want)
		}
	}
}

func TestSessions(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	events := []models.WatchEvent{
		event("Monday", 10, "", "", "", 1, 10, start),
		event("Monday", 10, "", "", "", 1, 15, start.Add(10*time.Minute)),
		event("Monday", 14, "", "", "", 2, 30, start.Add(4*time.Hour)),
	}
	events[0].IsBingeSession = true
	events[1].IsBingeSession = true

	sessions := []models.Session{
		{ID: 2, Start: start.Add(4 * time.Hour), End: start.Add(4 * time.Hour), VideoCount: 1, DurationMinutes: 0},
		{ID: 1, Start: start, End: start.Add(10 * time.Minute), VideoCount: 2, DurationMinutes: 10},
	}

	stats := Sessions(events, sessions)
	if len(stats) != 2 {
		t.Fatalf("got %d sessions, want 2", len(stats))
	}
	if stats[0].SessionID != 1 || stats[1].SessionID != 2 {
		t.Errorf("sessions not ordered by id: %v %v", stats[0].SessionID, stats[1].SessionID)
	}
	if stats[0].WatchMinutes != 25 {
		t.Errorf("session 1 watch minutes = %v, want 25", stats[0].WatchMinutes)
	}
	if stats[0].DurationMinutes != 10 {
		t.Errorf("session 1 span minutes = %v, want 10", stats[0].DurationMinutes)
	}
	if !stats[0].IsBinge || stats[1].IsBinge {
		t.Errorf("binge flags = %v %v, want true false", stats[0].IsBinge, stats[1].IsBinge)
	}
}

func TestBingeSessions_Subset(t *testing.T) {
	sessions := []models.SessionStats{
		{SessionID: 1, IsBinge: true},
		{SessionID: 2},
		{SessionID: 3, IsBinge: true},
	}

	binges := BingeSessions(sessions)
	if len(binges) != 2 {
		t.Fatalf("got %d binge sessions, want 2", len(binges))
	}
	if binges[0].SessionID != 1 || binges[1].SessionID != 3 {
		t.Errorf("binge sessions = %v, want ids 1 and 3 in order", binges)
	}
	if len(BingeSessions(nil)) != 0 {
		t.Error("BingeSessions(nil) not empty")
	}
}

func TestDaily(t *testing.T) {
	day1 := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	events := []models.WatchEvent{
		event("Tuesday", 9, "", "", "", 3, 5, day2),
		event("Monday", 10, "", "", "", 1, 10, day1),
		event("Monday", 10, "", "", "", 1, 10, day1.Add(5*time.Minute)),
		event("Monday", 22, "", "", "", 2, 20, day1.Add(12*time.Hour)),
	}

	stats := Daily(events)
	if len(stats) != 2 {
		t.Fatalf("got %d days, want 2", len(stats))
	}
	if stats[0].Date != "2026-03-02" || stats[1].Date != "2026-03-03" {
		t.Errorf("dates = %q %q, want ascending", stats[0].Date, stats[1].Date)
	}
	first := stats[0]
	if first.Videos != 3 || first.Minutes != 40 || first.Sessions != 2 {
		t.Errorf("day 1 stats = %+v, want Videos=3 Minutes=40 Sessions=2", first)
	}
}
