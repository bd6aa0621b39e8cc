// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

package pipeline

import (
	"testing"
	"time"

	"github.com/tomtom215/rewind/internal/models"
)

func TestSeason(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, "Winter"},
		{time.February, "Winter"},
		{time.March, "Spring"},
		{time.May, "Spring"},
		{time.June, "Summer"},
		{time.August, "Summer"},
		{time.September, "Fall"},
		{time.November, "Fall"},
		{time.December, "Winter"},
	}

	for _, tt := range tests {
		if got := season(tt.month); got != tt.want {
			t.Errorf("season(%v) = %q, want %q", tt.month, got, tt.want)
		}
	}
}

func TestTimePeriod(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "Dawn"},
		{5, "Dawn"},
		{6, "Morning"},
		{11, "Morning"},
		{12, "Afternoon"},
		{17, "Afternoon"},
		{18, "Evening"},
		{23, "Evening"},
	}

	for _, tt := range tests {
		if got := timePeriod(tt.hour); got != tt.want {
			t.Errorf("timePeriod(%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestDurationCategory(t *testing.T) {
	d := NewDeriver(3, 4, 20)

	tests := []struct {
		minutes float64
		want    string
	}{
		{0, "Short"},
		{3.99, "Short"},
		{4, "Medium"},
		{19.99, "Medium"},
		{20, "Long"},
		{65.5, "Long"},
	}

	for _, tt := range tests {
		if got := d.durationCategory(tt.minutes); got != tt.want {
			t.Errorf("durationCategory(%v) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestDeriver_Derive(t *testing.T) {
	// Saturday evening session of three videos, then a lone Sunday
	// morning event. All events sorted and session-assigned.
	sat := time.Date(2025, 4, 12, 21, 0, 0, 0, time.UTC) // Saturday
	sun := time.Date(2025, 4, 13, 9, 0, 0, 0, time.UTC)  // Sunday

	events := []models.WatchEvent{
		{Title: "a", Channel: "Alpha", SessionID: 1, WatchedAt: sat, DurationMinutes: 2},
		{Title: "b", Channel: "Alpha", SessionID: 1, WatchedAt: sat.Add(5 * time.Minute), DurationMinutes: 10},
		{Title: "c", Channel: "Beta", SessionID: 1, WatchedAt: sat.Add(10 * time.Minute), DurationMinutes: 30},
		{Title: "d", Channel: "Alpha", SessionID: 2, WatchedAt: sun, DurationMinutes: 5},
	}
	sessions := []models.Session{
		{ID: 1, Start: sat, End: sat.Add(10 * time.Minute), VideoCount: 3, DurationMinutes: 10},
		{ID: 2, Start: sun, End: sun, VideoCount: 1},
	}

	NewDeriver(3, 4, 20).Derive(events, sessions)

	t.Run("time fields", func(t *testing.T) {
		if events[0].Weekday != "Saturday" || events[0].Hour != 21 {
			t.Errorf("weekday/hour = %q/%d", events[0].Weekday, events[0].Hour)
		}
		if events[0].Season != "Spring" {
			t.Errorf("Season = %q, want Spring", events[0].Season)
		}
		if events[0].TimePeriod != "Evening" {
			t.Errorf("TimePeriod = %q, want Evening", events[0].TimePeriod)
		}
		if events[3].TimePeriod != "Morning" {
			t.Errorf("TimePeriod = %q, want Morning", events[3].TimePeriod)
		}
		if !events[0].IsWeekend || !events[3].IsWeekend {
			t.Error("Saturday and Sunday should both be weekend")
		}
	})

	t.Run("duration categories", func(t *testing.T) {
		want := []string{"Short", "Medium", "Long", "Medium"}
		for i, w := range want {
			if events[i].DurationCategory != w {
				t.Errorf("event %d DurationCategory = %q, want %q", i, events[i].DurationCategory, w)
			}
		}
	})

	t.Run("binge flag broadcasts to every session member", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			if !events[i].IsBingeSession {
				t.Errorf("event %d IsBingeSession = false, want true", i)
			}
		}
		if events[3].IsBingeSession {
			t.Error("single-event session flagged as binge")
		}
	})

	t.Run("channel binge is session scoped", func(t *testing.T) {
		// First event of a session never qualifies.
		if events[0].IsChannelBinge {
			t.Error("first event of session 1 flagged as channel binge")
		}
		// Same channel as previous event within the session.
		if !events[1].IsChannelBinge {
			t.Error("event 1 repeats channel Alpha, want channel binge")
		}
		// Different channel.
		if events[2].IsChannelBinge {
			t.Error("event 2 switches to Beta, should not be channel binge")
		}
		// Same channel as previous event but across a session boundary.
		if events[3].IsChannelBinge {
			t.Error("first event of session 2 flagged as channel binge")
		}
	})
}

func TestDeriver_WeekdayMonday(t *testing.T) {
	mon := time.Date(2025, 4, 14, 10, 0, 0, 0, time.UTC)
	events := []models.WatchEvent{{SessionID: 1, WatchedAt: mon}}
	NewDeriver(3, 4, 20).Derive(events, []models.Session{{ID: 1, VideoCount: 1}})

	if events[0].Weekday != "Monday" {
		t.Errorf("Weekday = %q, want Monday", events[0].Weekday)
	}
	if events[0].IsWeekend {
		t.Error("Monday flagged as weekend")
	}
}
